package insight

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/stayscope/listing-intelligence/internal/domain/listing"
	"github.com/stayscope/listing-intelligence/internal/infrastructure/monitoring/logging"
	"github.com/stayscope/listing-intelligence/pkg/errors"
	"github.com/stayscope/listing-intelligence/pkg/types/common"
)

// countingMetrics records the recalc counters for assertions.
type countingMetrics struct {
	mu        sync.Mutex
	triggered int
	skipped   int
	failed    int
}

func (m *countingMetrics) ProfileServedFromStore()               {}
func (m *countingMetrics) ProfileComputed(string, time.Duration) {}

func (m *countingMetrics) RecalcTriggered(string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.triggered++
}

func (m *countingMetrics) RecalcSkipped(string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.skipped++
}

func (m *countingMetrics) RecalcFailed(string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failed++
}

func newTestController(c *fakeComputer, st *fakeStore, m Metrics) *RecalcController {
	svc := NewService(c, st, &ownerReader{}, logging.NewNopLogger(), nil)
	return NewRecalcController(svc, 2, logging.NewNopLogger(), m)
}

func TestShouldRecalc(t *testing.T) {
	rc := newTestController(&fakeComputer{}, newFakeStore(), nil)
	tests := []struct {
		name string
		ev   listing.Event
		want bool
	}{
		{"created", listing.NewEvent(listing.EventListingCreated, "lst_1"), true},
		{"published", listing.NewEvent(listing.EventListingPublished, "lst_1"), true},
		{"booking confirmed", listing.NewEvent(listing.EventBookingConfirmed, "lst_1"), true},
		{"booking canceled", listing.NewEvent(listing.EventBookingCanceled, "lst_1"), true},
		{"review added", listing.NewEvent(listing.EventReviewAdded, "lst_1"), true},
		{"booking created", listing.NewEvent(listing.EventBookingCreated, "lst_1"), true},
		{"update base price", listing.NewEvent(listing.EventListingUpdated, "lst_1", "basePrice"), true},
		{"update title and house rules", listing.NewEvent(listing.EventListingUpdated, "lst_1", "houseRules", "title"), true},
		{"update house rules only", listing.NewEvent(listing.EventListingUpdated, "lst_1", "houseRules"), false},
		{"update nothing", listing.NewEvent(listing.EventListingUpdated, "lst_1"), false},
		{"unknown kind", listing.NewEvent(listing.EventKind("listing.viewed"), "lst_1"), false},
		{"missing listing id", listing.NewEvent(listing.EventListingCreated, ""), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rc.shouldRecalc(tt.ev))
		})
	}
}

func TestHandleEvent_TriggersBackgroundRecompute(t *testing.T) {
	c := &fakeComputer{}
	st := newFakeStore()
	m := &countingMetrics{}
	rc := newTestController(c, st, m)

	rc.HandleEvent(listing.NewEvent(listing.EventListingPublished, "lst_1"))
	rc.Wait()

	assert.Equal(t, 1, c.callCount())
	assert.Equal(t, 1, m.triggered)
	_, ok := st.profiles["lst_1"]
	assert.True(t, ok)
}

func TestHandleEvent_SkipsInsignificantUpdate(t *testing.T) {
	c := &fakeComputer{}
	m := &countingMetrics{}
	rc := newTestController(c, newFakeStore(), m)

	rc.HandleEvent(listing.NewEvent(listing.EventListingUpdated, "lst_1", "houseRules"))
	rc.Wait()

	assert.Equal(t, 0, c.callCount())
	assert.Equal(t, 1, m.skipped)
}

func TestHandleEvent_SwallowsComputeFailure(t *testing.T) {
	c := &fakeComputer{errs: map[common.ID]error{
		"lst_gone": errors.New(errors.ErrCodeListingNotFound, "listing not found"),
	}}
	m := &countingMetrics{}
	rc := newTestController(c, newFakeStore(), m)

	// Must not panic or block; the failure is only counted.
	rc.HandleEvent(listing.NewEvent(listing.EventReviewAdded, "lst_gone"))
	rc.Wait()

	assert.Equal(t, 1, m.failed)
}
