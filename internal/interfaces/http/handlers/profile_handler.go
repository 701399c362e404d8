package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stayscope/listing-intelligence/internal/application/insight"
	"github.com/stayscope/listing-intelligence/pkg/errors"
	"github.com/stayscope/listing-intelligence/pkg/types/common"
	insighttypes "github.com/stayscope/listing-intelligence/pkg/types/insight"
)

// ProfileHandler serves the profile, owner, and market endpoints.
type ProfileHandler struct {
	service    *insight.Service
	aggregator *insight.Aggregator
}

// NewProfileHandler wires the handler over the application services.
func NewProfileHandler(service *insight.Service, aggregator *insight.Aggregator) *ProfileHandler {
	return &ProfileHandler{service: service, aggregator: aggregator}
}

// GetProfile handles GET /api/v1/listings/{id}/profile.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id := common.ID(chi.URLParam(r, "id"))
	if id.IsZero() {
		respondError(w, errors.InvalidParam("listing id is required"))
		return
	}
	p, err := h.service.GetOrComputeProfile(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toProfileDTO(p))
}

// RecomputeProfile handles POST /api/v1/listings/{id}/profile/recompute.
func (h *ProfileHandler) RecomputeProfile(w http.ResponseWriter, r *http.Request) {
	id := common.ID(chi.URLParam(r, "id"))
	if id.IsZero() {
		respondError(w, errors.InvalidParam("listing id is required"))
		return
	}
	p, err := h.service.RecomputeProfile(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toProfileDTO(p))
}

// OwnerSummary handles GET /api/v1/owners/{id}/summary.
func (h *ProfileHandler) OwnerSummary(w http.ResponseWriter, r *http.Request) {
	ownerID := common.OwnerID(chi.URLParam(r, "id"))
	if ownerID == "" {
		respondError(w, errors.InvalidParam("owner id is required"))
		return
	}
	sum, err := h.aggregator.GetOwnerSummary(r.Context(), ownerID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sum)
}

// OwnerRecompute handles POST /api/v1/owners/{id}/recompute.
func (h *ProfileHandler) OwnerRecompute(w http.ResponseWriter, r *http.Request) {
	ownerID := common.OwnerID(chi.URLParam(r, "id"))
	if ownerID == "" {
		respondError(w, errors.InvalidParam("owner id is required"))
		return
	}
	res, err := h.service.RecomputeAllForOwner(r.Context(), ownerID)
	if err != nil {
		respondError(w, err)
		return
	}
	out := insighttypes.OwnerRecomputeDTO{
		OwnerID:   string(res.OwnerID),
		Total:     res.Total,
		Succeeded: res.Succeeded,
		Failed:    res.Failed,
		Profiles:  make([]insighttypes.ProfileDTO, 0, len(res.Profiles)),
	}
	for _, p := range res.Profiles {
		out.Profiles = append(out.Profiles, toProfileDTO(p))
	}
	respondJSON(w, http.StatusOK, out)
}

// MarketOverview handles GET /api/v1/market/overview?city=.
func (h *ProfileHandler) MarketOverview(w http.ResponseWriter, r *http.Request) {
	ov, err := h.aggregator.GetMarketOverview(r.Context(), r.URL.Query().Get("city"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ov)
}
