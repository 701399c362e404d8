// Package integration wires the full service in-process — orchestrator,
// store, controller, router, and client — without external dependencies.
package integration

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stayscope/listing-intelligence/internal/application/insight"
	"github.com/stayscope/listing-intelligence/internal/domain/listing"
	"github.com/stayscope/listing-intelligence/internal/infrastructure/database/memory"
	"github.com/stayscope/listing-intelligence/internal/infrastructure/monitoring/logging"
	"github.com/stayscope/listing-intelligence/internal/intelligence/orchestrator"
	httpiface "github.com/stayscope/listing-intelligence/internal/interfaces/http"
	"github.com/stayscope/listing-intelligence/internal/interfaces/http/handlers"
	"github.com/stayscope/listing-intelligence/pkg/client"
	"github.com/stayscope/listing-intelligence/pkg/errors"
	"github.com/stayscope/listing-intelligence/pkg/types/common"
)

// listingDirectory is the fake listing service backing the pipeline.
type listingDirectory struct {
	contexts map[common.ID]*listing.Context
	prices   map[string][]float64
}

func (d *listingDirectory) GetContext(_ context.Context, id common.ID) (*listing.Context, error) {
	c, ok := d.contexts[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeListingNotFound, "listing not found").WithDetail(id.String())
	}
	cp := *c
	return &cp, nil
}

func (d *listingDirectory) GetComparablePrices(_ context.Context, city string, excludeID common.ID, limit int) ([]float64, error) {
	prices := d.prices[city]
	if len(prices) > limit {
		prices = prices[:limit]
	}
	return prices, nil
}

func (d *listingDirectory) ListOwnerListingIDs(_ context.Context, ownerID common.OwnerID) ([]common.ID, error) {
	var ids []common.ID
	for id, c := range d.contexts {
		if c.OwnerID == ownerID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// stack bundles everything an integration test touches.
type stack struct {
	directory  *listingDirectory
	store      *memory.ProfileStore
	service    *insight.Service
	controller *insight.RecalcController
	api        *client.Client
}

func newStack(t *testing.T) *stack {
	t.Helper()
	logger := logging.NewNopLogger()

	directory := &listingDirectory{
		contexts: make(map[common.ID]*listing.Context),
		prices:   make(map[string][]float64),
	}
	store := memory.NewProfileStore()
	orch := orchestrator.New(directory, 0, logger)
	service := insight.NewService(orch, store, directory, logger, nil)
	controller := insight.NewRecalcController(service, 4, logger, nil)
	aggregator := insight.NewAggregator(store)

	router := httpiface.NewRouter(httpiface.RouterDeps{
		Profiles: handlers.NewProfileHandler(service, aggregator),
		Health: handlers.NewHealthHandler(map[string]handlers.Checker{
			"store": func(context.Context) error { return nil },
		}),
		Logger: logger,
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &stack{
		directory:  directory,
		store:      store,
		service:    service,
		controller: controller,
		api:        client.New(srv.URL),
	}
}

func (s *stack) addListing(c *listing.Context) {
	s.directory.contexts[c.ID] = c
}

func publishedListing(id common.ID, ownerID common.OwnerID, city string, price float64) *listing.Context {
	return &listing.Context{
		ID:             id,
		OwnerID:        ownerID,
		City:           city,
		BasePrice:      price,
		Currency:       "EUR",
		Title:          "Comfortable stay close to the center",
		Description:    "A quiet flat two minutes from the metro station, in a lively neighborhood with cafes nearby. Self check-in, no smoking. Sleeps four comfortably with a full kitchen, fast wifi and a balcony over a courtyard garden below.",
		PhotoCount:     8,
		AmenityCount:   9,
		ReviewCount:    10,
		BookingCount:   8,
		AverageRating:  4.6,
		HasCoordinates: true,
		OwnerStatus:    listing.OwnerActive,
		Published:      true,
	}
}
