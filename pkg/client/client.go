// Package client is the Go client for the listing-intelligence HTTP API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/stayscope/listing-intelligence/pkg/errors"
	"github.com/stayscope/listing-intelligence/pkg/types/insight"
)

const defaultTimeout = 30 * time.Second

// Client talks to one API server.  Safe for concurrent use.
type Client struct {
	baseURL string
	hc      *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

// New builds a client for the API server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetProfile fetches the intelligence profile of a listing, computing it
// server-side if necessary.
func (c *Client) GetProfile(ctx context.Context, listingID string) (*insight.ProfileDTO, error) {
	var out insight.ProfileDTO
	err := c.do(ctx, http.MethodGet,
		"/api/v1/listings/"+url.PathEscape(listingID)+"/profile", &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RecomputeProfile forces a fresh computation.
func (c *Client) RecomputeProfile(ctx context.Context, listingID string) (*insight.ProfileDTO, error) {
	var out insight.ProfileDTO
	err := c.do(ctx, http.MethodPost,
		"/api/v1/listings/"+url.PathEscape(listingID)+"/profile/recompute", &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// OwnerSummary aggregates an owner's portfolio.
func (c *Client) OwnerSummary(ctx context.Context, ownerID string) (*insight.OwnerSummaryDTO, error) {
	var out insight.OwnerSummaryDTO
	err := c.do(ctx, http.MethodGet,
		"/api/v1/owners/"+url.PathEscape(ownerID)+"/summary", &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RecomputeOwner recomputes every listing of an owner and returns the
// recomputed profiles with per-listing outcome counts.
func (c *Client) RecomputeOwner(ctx context.Context, ownerID string) (*insight.OwnerRecomputeDTO, error) {
	var out insight.OwnerRecomputeDTO
	err := c.do(ctx, http.MethodPost,
		"/api/v1/owners/"+url.PathEscape(ownerID)+"/recompute", &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// MarketOverview fetches the per-city market roll-up; an empty city means
// every city.
func (c *Client) MarketOverview(ctx context.Context, city string) (*insight.MarketOverviewDTO, error) {
	path := "/api/v1/market/overview"
	if city != "" {
		path += "?city=" + url.QueryEscape(city)
	}
	var out insight.MarketOverviewDTO
	if err := c.do(ctx, http.MethodGet, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Detail  string `json:"detail"`
	} `json:"error"`
}

// do issues the request and decodes the response.  Error responses carrying
// the service's error body are mapped back onto AppError codes, so callers
// can use errors.IsNotFound and friends across the wire.
func (c *Client) do(ctx context.Context, method, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "build request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeServiceUnavailable, "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var body apiError
		if json.NewDecoder(resp.Body).Decode(&body) == nil && body.Error.Code != "" {
			return errors.New(errors.ErrorCode(body.Error.Code), body.Error.Message).
				WithDetail(body.Error.Detail)
		}
		return errors.New(errors.ErrCodeInternal,
			fmt.Sprintf("unexpected status %s", resp.Status))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "decode response")
	}
	return nil
}
