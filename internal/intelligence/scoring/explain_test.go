package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stayscope/listing-intelligence/internal/domain/profile"
)

func explainInput() ExplainInput {
	return ExplainInput{
		Quality: 82,
		Demand:  65,
		Risk:    RiskResult{Score: 18, Level: profile.RiskLow},
		Pricing: PricingResult{
			ReferencePrice:   110,
			RecommendedPrice: 118,
			DeltaPercent:     4,
			Position:         profile.AtMarket,
		},
		BookingProbability: 0.62,
		Completeness:       90,
	}
}

func TestBuildExplanation_BulletOrder(t *testing.T) {
	e := BuildExplanation(richListing(), explainInput())
	if assert.Len(t, e.Bullets, 5) {
		assert.Contains(t, e.Bullets[0], "Presentation quality")
		assert.Contains(t, e.Bullets[1], "Demand in this market")
		assert.Contains(t, e.Bullets[2], "Risk is low")
		assert.Contains(t, e.Bullets[3], "in line with the market")
		assert.Contains(t, e.Bullets[4], "booking probability")
	}
}

func TestBuildExplanation_CompletenessNudge(t *testing.T) {
	in := explainInput()
	in.Completeness = 55
	e := BuildExplanation(richListing(), in)
	if assert.Len(t, e.Bullets, 6) {
		assert.Contains(t, e.Bullets[5], "55% complete")
	}
}

func TestBuildExplanation_SummaryTiers(t *testing.T) {
	tests := []struct {
		name string
		in   ExplainInput
		want string
	}{
		{"excellent", explainInput(), "excellent shape"},
		{
			"solid",
			ExplainInput{Quality: 50, Demand: 50, Risk: RiskResult{Score: 40, Level: profile.RiskMedium}, Completeness: 60},
			"room for improvement",
		},
		{
			"needs attention",
			ExplainInput{Quality: 10, Demand: 20, Risk: RiskResult{Score: 85, Level: profile.RiskHigh}, Completeness: 20},
			"needs attention",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := BuildExplanation(bareListing(), tt.in)
			assert.Contains(t, e.Summary, tt.want)
		})
	}
}

func TestBuildExplanation_SuggestionsFromRiskFactors(t *testing.T) {
	in := explainInput()
	in.Risk = RiskResult{
		Score: 70,
		Level: profile.RiskHigh,
		Factors: []string{
			"owner account is not active",
			"listing has no photos",
			"location coordinates are missing",
			"no booking or review history",
		},
	}
	e := BuildExplanation(richListing(), in)

	var resolves []string
	for _, s := range e.Suggestions {
		if strings.HasPrefix(s, "Resolve: ") {
			resolves = append(resolves, s)
		}
	}
	assert.Len(t, resolves, explainMaxRiskSuggestions)
	assert.Equal(t, "Resolve: owner account is not active", resolves[0])
}

func TestBuildExplanation_ContentSuggestions(t *testing.T) {
	in := explainInput()
	in.Pricing.Position = profile.BelowMarket
	in.Pricing.DeltaPercent = 15
	e := BuildExplanation(bareListing(), in)

	joined := strings.Join(e.Suggestions, "\n")
	assert.Contains(t, joined, "Add more photos")
	assert.Contains(t, joined, "Expand the description")
	assert.Contains(t, joined, "raising the nightly price toward 118")
}

func TestBuildExplanation_Deterministic(t *testing.T) {
	c := richListing()
	in := explainInput()
	first := BuildExplanation(c, in)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, BuildExplanation(c, in))
	}
}
