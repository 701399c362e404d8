package insight

import (
	"context"
	"sync"
	"time"

	"github.com/stayscope/listing-intelligence/internal/domain/listing"
	"github.com/stayscope/listing-intelligence/internal/infrastructure/monitoring/logging"
)

// significantFields are the listing.updated fields whose change can move a
// score.  Updates touching none of them are skipped.
var significantFields = map[string]bool{
	"title":       true,
	"description": true,
	"basePrice":   true,
	"photos":      true,
	"amenities":   true,
}

// recalcTimeout bounds one background recomputation.
const recalcTimeout = 30 * time.Second

// defaultConcurrency bounds simultaneous recomputations when the caller does
// not supply a limit.
const defaultConcurrency = 8

// RecalcController reacts to domain events by recomputing the affected
// listing's profile in the background.  Recalculation is best-effort: the
// controller never propagates an error to the event source, it only logs and
// counts failures.
type RecalcController struct {
	service *Service
	logger  logging.Logger
	metrics Metrics
	sem     chan struct{}

	wg sync.WaitGroup
}

// NewRecalcController wires a controller over the profile service.  At most
// concurrency recomputations run at once; zero or negative falls back to a
// small default.
func NewRecalcController(service *Service, concurrency int, logger logging.Logger, metrics Metrics) *RecalcController {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &RecalcController{
		service: service,
		logger:  logger.Named("recalc"),
		metrics: metrics,
		sem:     make(chan struct{}, concurrency),
	}
}

// HandleEvent decides whether the event warrants recomputation and, if so,
// fires it asynchronously.  It always returns immediately.
func (rc *RecalcController) HandleEvent(ev listing.Event) {
	if !rc.shouldRecalc(ev) {
		rc.metrics.RecalcSkipped(string(ev.Kind))
		rc.logger.Debug("event skipped",
			logging.String("kind", string(ev.Kind)),
			logging.String("listing_id", ev.ListingID.String()))
		return
	}

	rc.metrics.RecalcTriggered(string(ev.Kind))
	rc.wg.Add(1)
	go func() {
		defer rc.wg.Done()
		rc.sem <- struct{}{}
		defer func() { <-rc.sem }()
		ctx, cancel := context.WithTimeout(context.Background(), recalcTimeout)
		defer cancel()
		if _, err := rc.service.RecomputeProfile(ctx, ev.ListingID); err != nil {
			rc.metrics.RecalcFailed(string(ev.Kind))
			rc.logger.Warn("background recompute failed",
				logging.String("kind", string(ev.Kind)),
				logging.String("listing_id", ev.ListingID.String()),
				logging.Err(err))
		}
	}()
}

// shouldRecalc implements the significance filter.  Creation, publication,
// booking, and review events always recompute; updates recompute only when a
// score-relevant field changed; unknown kinds never do.
func (rc *RecalcController) shouldRecalc(ev listing.Event) bool {
	if ev.ListingID.IsZero() {
		return false
	}
	switch ev.Kind {
	case listing.EventListingCreated, listing.EventListingPublished,
		listing.EventBookingCreated, listing.EventBookingConfirmed,
		listing.EventBookingCanceled, listing.EventReviewAdded:
		return true
	case listing.EventListingUpdated:
		for _, f := range ev.ChangedFields {
			if significantFields[f] {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Wait blocks until every in-flight background recomputation finishes.  Used
// on shutdown and in tests.
func (rc *RecalcController) Wait() {
	rc.wg.Wait()
}
