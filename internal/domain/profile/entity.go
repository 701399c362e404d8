// Package profile defines the intelligence profile — the cached composite
// scoring artifact for one listing — and its repository port.
package profile

import (
	"time"

	"github.com/stayscope/listing-intelligence/pkg/errors"
	"github.com/stayscope/listing-intelligence/pkg/types/common"
)

// CalcVersion tags the scoring algorithm revision that produced a profile.
// Bumping it marks every stored profile stale, forcing recomputation on the
// next read.
const CalcVersion = "2025.08"

// MarketPosition classifies a listing's price relative to the city reference
// price.
type MarketPosition string

const (
	BelowMarket MarketPosition = "below_market"
	AtMarket    MarketPosition = "at_market"
	AboveMarket MarketPosition = "above_market"
)

// RiskLevel buckets the numeric risk score.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Risk level thresholds.  Level is always derived from the score through
// RiskLevelForScore, never stored independently, so the two cannot drift.
const (
	riskHighThreshold   = 60.0
	riskMediumThreshold = 35.0
)

// RiskLevelForScore derives the categorical level from a risk score.
func RiskLevelForScore(score float64) RiskLevel {
	switch {
	case score >= riskHighThreshold:
		return RiskHigh
	case score >= riskMediumThreshold:
		return RiskMedium
	default:
		return RiskLow
	}
}

// MarketPositionForDelta derives the market position from a price delta
// percent.  The delta is recommended-vs-current: a strongly positive delta
// means the listing is priced below what the market supports.
func MarketPositionForDelta(deltaPercent int) MarketPosition {
	switch {
	case deltaPercent >= 10:
		return BelowMarket
	case deltaPercent <= -10:
		return AboveMarket
	default:
		return AtMarket
	}
}

// ClampScore bounds a score to [0, 100].
func ClampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// ClampProbability bounds a booking probability to [0.05, 0.95].
func ClampProbability(p float64) float64 {
	if p < 0.05 {
		return 0.05
	}
	if p > 0.95 {
		return 0.95
	}
	return p
}

// Explanation is the human-readable narrative attached to a profile.
type Explanation struct {
	Summary     string   `json:"summary"`
	Bullets     []string `json:"bullets"`
	Suggestions []string `json:"suggestions"`
}

// IntelligenceProfile is the cached composite scoring artifact for one
// listing.  One profile per listing; recomputation replaces the record
// wholesale (idempotent upsert, last-writer-wins, no history).
type IntelligenceProfile struct {
	ListingID common.ID      `json:"listing_id"`
	OwnerID   common.OwnerID `json:"owner_id"`
	City      string         `json:"city"`

	QualityScore      float64 `json:"quality_score"`
	DemandScore       float64 `json:"demand_score"`
	RiskScore         float64 `json:"risk_score"`
	CompletenessScore float64 `json:"completeness_score"`

	BookingProbability float64 `json:"booking_probability"`

	RecommendedPrice  int            `json:"recommended_price"`
	PriceDeltaPercent int            `json:"price_delta_percent"`
	MarketPosition    MarketPosition `json:"market_position"`

	RiskLevel   RiskLevel `json:"risk_level"`
	RiskFactors []string  `json:"risk_factors"`

	Explanation Explanation `json:"explanation"`

	CalculatedAt time.Time `json:"calculated_at"`
	CalcVersion  string    `json:"calc_version"`
}

// Clone returns a deep copy: the slice fields are duplicated so mutations on
// the copy never reach the original.
func (p *IntelligenceProfile) Clone() *IntelligenceProfile {
	cp := *p
	cp.RiskFactors = append([]string(nil), p.RiskFactors...)
	cp.Explanation.Bullets = append([]string(nil), p.Explanation.Bullets...)
	cp.Explanation.Suggestions = append([]string(nil), p.Explanation.Suggestions...)
	return &cp
}

// Stale reports whether the profile was produced by an older algorithm
// revision than current.
func (p *IntelligenceProfile) Stale(current string) bool {
	return p.CalcVersion != current
}

// Validate checks the profile's declared invariants before it is stored.
func (p *IntelligenceProfile) Validate() error {
	if p.ListingID.IsZero() {
		return errors.New(errors.ErrCodeValidation, "profile listing id is empty")
	}
	for name, s := range map[string]float64{
		"quality":      p.QualityScore,
		"demand":       p.DemandScore,
		"risk":         p.RiskScore,
		"completeness": p.CompletenessScore,
	} {
		if s < 0 || s > 100 {
			return errors.New(errors.ErrCodeValidation, "score out of range").
				WithDetail(name)
		}
	}
	if p.BookingProbability < 0.05 || p.BookingProbability > 0.95 {
		return errors.New(errors.ErrCodeValidation, "booking probability out of range")
	}
	if p.RiskLevel != RiskLevelForScore(p.RiskScore) {
		return errors.New(errors.ErrCodeValidation, "risk level inconsistent with risk score")
	}
	if p.MarketPosition != MarketPositionForDelta(p.PriceDeltaPercent) {
		return errors.New(errors.ErrCodeValidation, "market position inconsistent with price delta")
	}
	return nil
}
