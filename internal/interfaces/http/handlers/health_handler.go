package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/stayscope/listing-intelligence/pkg/types/common"
)

// Checker probes one dependency.  A nil return means the dependency is up.
type Checker func(ctx context.Context) error

const checkTimeout = 2 * time.Second

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	checkers map[string]Checker
}

// NewHealthHandler builds a handler over named dependency checkers.
func NewHealthHandler(checkers map[string]Checker) *HealthHandler {
	return &HealthHandler{checkers: checkers}
}

// Liveness handles GET /healthz.  The process answering at all is the check.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]common.HealthStatus{"status": common.HealthUp})
}

// Readiness handles GET /readyz: every dependency is probed and the worst
// result decides the status code.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	components := make([]common.ComponentHealth, 0, len(h.checkers))
	status := common.HealthUp
	for name, check := range h.checkers {
		components = append(components, h.probe(r.Context(), name, check, &status))
	}

	code := http.StatusOK
	if status == common.HealthDown {
		code = http.StatusServiceUnavailable
	}
	respondJSON(w, code, map[string]any{
		"status":     status,
		"components": components,
	})
}

func (h *HealthHandler) probe(ctx context.Context, name string, check Checker, overall *common.HealthStatus) common.ComponentHealth {
	probeCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	start := time.Now()
	err := check(probeCtx)
	ch := common.ComponentHealth{
		Name:    name,
		Status:  common.HealthUp,
		Latency: time.Since(start),
	}
	if err != nil {
		ch.Status = common.HealthDown
		ch.Message = err.Error()
		*overall = common.HealthDown
	}
	return ch
}
