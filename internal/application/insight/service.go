// Package insight is the application layer of the intelligence pipeline: it
// serves profiles out of the store, recomputes them when they are missing or
// stale, aggregates them into owner and market views, and reacts to domain
// events.
package insight

import (
	"context"
	"time"

	"github.com/stayscope/listing-intelligence/internal/domain/listing"
	"github.com/stayscope/listing-intelligence/internal/domain/profile"
	"github.com/stayscope/listing-intelligence/internal/infrastructure/monitoring/logging"
	"github.com/stayscope/listing-intelligence/pkg/errors"
	"github.com/stayscope/listing-intelligence/pkg/types/common"
)

// ProfileComputer runs one full profile computation.  Implemented by the
// orchestrator; faked in tests.
type ProfileComputer interface {
	ComputeProfile(ctx context.Context, id common.ID) (*profile.IntelligenceProfile, error)
}

// Metrics is the counter surface the service reports into.  Implemented by
// the prometheus adapter; NopMetrics discards everything.
type Metrics interface {
	ProfileServedFromStore()
	ProfileComputed(outcome string, elapsed time.Duration)
	RecalcTriggered(kind string)
	RecalcSkipped(kind string)
	RecalcFailed(kind string)
}

// Computation outcome labels.
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeNotFound = "not_found"
)

// NopMetrics is a Metrics that records nothing.
type NopMetrics struct{}

func (NopMetrics) ProfileServedFromStore()               {}
func (NopMetrics) ProfileComputed(string, time.Duration) {}
func (NopMetrics) RecalcTriggered(string)                {}
func (NopMetrics) RecalcSkipped(string)                  {}
func (NopMetrics) RecalcFailed(string)                   {}

// Service answers profile reads, triggering recomputation for cold or stale
// entries, and owns explicit recompute operations.
type Service struct {
	computer ProfileComputer
	store    profile.Repository
	reader   listing.Reader
	logger   logging.Logger
	metrics  Metrics
}

// NewService wires the profile service.  A nil metrics gets NopMetrics.
func NewService(computer ProfileComputer, store profile.Repository, reader listing.Reader, logger logging.Logger, metrics Metrics) *Service {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &Service{
		computer: computer,
		store:    store,
		reader:   reader,
		logger:   logger.Named("insight"),
		metrics:  metrics,
	}
}

// GetOrComputeProfile returns the stored profile when it is fresh, and
// recomputes it when the store is cold, errors, or holds a profile produced
// by an older algorithm revision.
func (s *Service) GetOrComputeProfile(ctx context.Context, id common.ID) (*profile.IntelligenceProfile, error) {
	stored, err := s.store.Get(ctx, id)
	if err == nil && !stored.Stale(profile.CalcVersion) {
		s.metrics.ProfileServedFromStore()
		return stored, nil
	}
	if err != nil && !errors.IsNotFound(err) {
		// A broken store must not take reads down; recompute instead.
		s.logger.Warn("profile store read failed, recomputing",
			logging.String("listing_id", id.String()), logging.Err(err))
	}
	return s.RecomputeProfile(ctx, id)
}

// RecomputeProfile always runs a fresh computation and persists the result.
// A missing listing surfaces as ErrCodeListingNotFound; a store write failure
// is logged but does not discard the freshly computed profile.
func (s *Service) RecomputeProfile(ctx context.Context, id common.ID) (*profile.IntelligenceProfile, error) {
	start := time.Now()
	p, err := s.computer.ComputeProfile(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			s.metrics.ProfileComputed(OutcomeNotFound, time.Since(start))
		} else {
			s.metrics.ProfileComputed(OutcomeError, time.Since(start))
		}
		return nil, err
	}
	s.metrics.ProfileComputed(OutcomeOK, time.Since(start))

	if err := s.store.Upsert(ctx, p); err != nil {
		s.logger.Error("profile store write failed",
			logging.String("listing_id", id.String()), logging.Err(err))
	}
	return p, nil
}

// OwnerRecomputeResult carries the freshly recomputed profiles of a bulk
// owner recomputation, plus per-listing outcome counts.
type OwnerRecomputeResult struct {
	OwnerID   common.OwnerID
	Total     int
	Succeeded int
	Failed    int
	Profiles  []*profile.IntelligenceProfile
}

// RecomputeAllForOwner recomputes every listing the owner has and returns
// the recomputed profiles.  Listings are isolated from each other: one
// failure is counted and logged, the rest proceed.
func (s *Service) RecomputeAllForOwner(ctx context.Context, ownerID common.OwnerID) (*OwnerRecomputeResult, error) {
	ids, err := s.reader.ListOwnerListingIDs(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeAggregationFailed, "list owner listings")
	}

	res := &OwnerRecomputeResult{OwnerID: ownerID, Total: len(ids)}
	for _, id := range ids {
		p, err := s.RecomputeProfile(ctx, id)
		if err != nil {
			res.Failed++
			s.logger.Warn("owner recompute: listing failed",
				logging.String("owner_id", string(ownerID)),
				logging.String("listing_id", id.String()),
				logging.Err(err))
			continue
		}
		res.Succeeded++
		res.Profiles = append(res.Profiles, p)
	}
	return res, nil
}
