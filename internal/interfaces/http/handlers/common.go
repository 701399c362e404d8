// Package handlers implements the HTTP handlers of the listing-intelligence
// API.
package handlers

import (
	"encoding/json"
	gerrors "errors"
	"net/http"

	"github.com/stayscope/listing-intelligence/internal/domain/profile"
	"github.com/stayscope/listing-intelligence/pkg/errors"
	"github.com/stayscope/listing-intelligence/pkg/types/insight"
)

// errorBody is the uniform error response shape.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// respondError maps an application error to its HTTP status via the error
// code table.  Non-AppError values become opaque 500s.
func respondError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	body := errorBody{Error: errorDetail{
		Code:    string(code),
		Message: errors.DefaultMessageForCode(code),
	}}
	var appErr *errors.AppError
	if gerrors.As(err, &appErr) {
		body.Error.Message = appErr.Message
		body.Error.Detail = appErr.Detail
	}
	respondJSON(w, errors.HTTPStatusForCode(code), body)
}

// toProfileDTO converts the domain profile into its wire form.
func toProfileDTO(p *profile.IntelligenceProfile) insight.ProfileDTO {
	return insight.ProfileDTO{
		ListingID:          p.ListingID.String(),
		OwnerID:            string(p.OwnerID),
		City:               p.City,
		QualityScore:       p.QualityScore,
		DemandScore:        p.DemandScore,
		RiskScore:          p.RiskScore,
		CompletenessScore:  p.CompletenessScore,
		BookingProbability: p.BookingProbability,
		RecommendedPrice:   p.RecommendedPrice,
		PriceDeltaPercent:  p.PriceDeltaPercent,
		MarketPosition:     string(p.MarketPosition),
		RiskLevel:          string(p.RiskLevel),
		RiskFactors:        p.RiskFactors,
		Explanation: insight.ExplanationDTO{
			Summary:     p.Explanation.Summary,
			Bullets:     p.Explanation.Bullets,
			Suggestions: p.Explanation.Suggestions,
		},
		CalculatedAt: p.CalculatedAt,
		CalcVersion:  p.CalcVersion,
	}
}
