// Package insight defines the transport DTOs exposed by the
// listing-intelligence API.  These types are the wire contract; domain
// entities are converted into them at the interface boundary.
package insight

import "time"

// ProfileDTO is the serialized form of a listing's intelligence profile.
type ProfileDTO struct {
	ListingID          string         `json:"listing_id"`
	OwnerID            string         `json:"owner_id"`
	City               string         `json:"city"`
	QualityScore       float64        `json:"quality_score"`
	DemandScore        float64        `json:"demand_score"`
	RiskScore          float64        `json:"risk_score"`
	CompletenessScore  float64        `json:"completeness_score"`
	BookingProbability float64        `json:"booking_probability"`
	RecommendedPrice   int            `json:"recommended_price"`
	PriceDeltaPercent  int            `json:"price_delta_percent"`
	MarketPosition     string         `json:"market_position"`
	RiskLevel          string         `json:"risk_level"`
	RiskFactors        []string       `json:"risk_factors"`
	Explanation        ExplanationDTO `json:"explanation"`
	CalculatedAt       time.Time      `json:"calculated_at"`
	CalcVersion        string         `json:"calc_version"`
}

// ExplanationDTO carries the human-readable scoring narrative.
type ExplanationDTO struct {
	Summary     string   `json:"summary"`
	Bullets     []string `json:"bullets"`
	Suggestions []string `json:"suggestions"`
}

// OwnerRecomputeDTO reports a bulk owner recomputation: the recomputed
// profiles plus per-listing outcome counts.
type OwnerRecomputeDTO struct {
	OwnerID   string       `json:"owner_id"`
	Total     int          `json:"total"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Profiles  []ProfileDTO `json:"profiles"`
}

// OwnerSummaryDTO is the aggregate view over one owner's listings.
type OwnerSummaryDTO struct {
	OwnerID                string    `json:"owner_id"`
	ListingCount           int       `json:"listing_count"`
	AvgQualityScore        float64   `json:"avg_quality_score"`
	AvgDemandScore         float64   `json:"avg_demand_score"`
	AvgRiskScore           float64   `json:"avg_risk_score"`
	AvgBookingProbability  float64   `json:"avg_booking_probability"`
	MonthlyRevenueForecast float64   `json:"monthly_revenue_forecast"`
	Health                 string    `json:"health"`
	GeneratedAt            time.Time `json:"generated_at"`
}

// CityMarketDTO is the per-city slice of the market overview.
type CityMarketDTO struct {
	City                   string  `json:"city"`
	ListingCount           int     `json:"listing_count"`
	AvgQualityScore        float64 `json:"avg_quality_score"`
	MedianRecommendedPrice float64 `json:"median_recommended_price"`
	DemandTier             string  `json:"demand_tier"`
}

// MarketOverviewDTO is the market view, optionally filtered to one city.
type MarketOverviewDTO struct {
	Cities      []CityMarketDTO `json:"cities"`
	GeneratedAt time.Time       `json:"generated_at"`
}
