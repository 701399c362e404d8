package scoring

import (
	"fmt"

	"github.com/stayscope/listing-intelligence/internal/domain/listing"
	"github.com/stayscope/listing-intelligence/internal/domain/profile"
)

// ExplainInput bundles the already-computed scoring outputs the narrative is
// built from.  The generator only describes numbers, it never recomputes
// them.
type ExplainInput struct {
	Quality            float64
	Demand             float64
	Risk               RiskResult
	Pricing            PricingResult
	BookingProbability float64
	Completeness       float64
}

// BuildExplanation renders the human-readable narrative for a profile.  The
// bullet order is fixed (quality, demand, risk, pricing, probability, then a
// completeness note only when the score is low) so repeated computations
// produce identical output.
func BuildExplanation(c *listing.Context, in ExplainInput) profile.Explanation {
	bullets := []string{
		qualityRemark(in.Quality),
		demandRemark(in.Demand),
		riskRemark(in.Risk),
		pricingRemark(c, in.Pricing),
		fmt.Sprintf("Estimated booking probability over the next 30 days is %.0f%%.", in.BookingProbability*100),
	}
	if in.Completeness < explainCompletenessNudge {
		bullets = append(bullets, fmt.Sprintf("The listing is only %.0f%% complete; filling the gaps lifts every other score.", in.Completeness))
	}

	return profile.Explanation{
		Summary:     summaryLine(in),
		Bullets:     bullets,
		Suggestions: suggestions(c, in),
	}
}

func summaryLine(in ExplainInput) string {
	composite := summaryQualityWeight*in.Quality +
		summaryDemandWeight*in.Demand +
		summaryRiskWeight*(100-in.Risk.Score) +
		summaryCompletenessWeight*in.Completeness
	switch {
	case composite >= summaryExcellent:
		return "This listing is in excellent shape and well positioned in its market."
	case composite >= summarySolid:
		return "This listing is solid but has clear room for improvement."
	default:
		return "This listing needs attention before it can perform well."
	}
}

func qualityRemark(score float64) string {
	switch {
	case score >= explainHighScore:
		return fmt.Sprintf("Presentation quality is excellent (%.0f/100).", score)
	case score >= explainGoodScore:
		return fmt.Sprintf("Presentation quality is good (%.0f/100).", score)
	case score >= explainMediumScore:
		return fmt.Sprintf("Presentation quality is average (%.0f/100); better photos and a longer description would help.", score)
	default:
		return fmt.Sprintf("Presentation quality is weak (%.0f/100); the listing is missing basic content.", score)
	}
}

func demandRemark(score float64) string {
	switch {
	case score >= explainHighScore:
		return fmt.Sprintf("Demand in this market is very strong (%.0f/100).", score)
	case score >= explainGoodScore:
		return fmt.Sprintf("Demand in this market is healthy (%.0f/100).", score)
	case score >= explainMediumScore:
		return fmt.Sprintf("Demand in this market is moderate (%.0f/100).", score)
	default:
		return fmt.Sprintf("Demand in this market is currently low (%.0f/100).", score)
	}
}

func riskRemark(r RiskResult) string {
	switch r.Level {
	case profile.RiskHigh:
		return fmt.Sprintf("Risk is high (%.0f/100): %d issue(s) need fixing.", r.Score, len(r.Factors))
	case profile.RiskMedium:
		return fmt.Sprintf("Risk is moderate (%.0f/100).", r.Score)
	default:
		return fmt.Sprintf("Risk is low (%.0f/100).", r.Score)
	}
}

func pricingRemark(c *listing.Context, p PricingResult) string {
	switch p.Position {
	case profile.BelowMarket:
		return fmt.Sprintf("The current price of %.0f looks below market; %d is recommended (%+d%%).", c.BasePrice, p.RecommendedPrice, p.DeltaPercent)
	case profile.AboveMarket:
		return fmt.Sprintf("The current price of %.0f looks above market; %d is recommended (%+d%%).", c.BasePrice, p.RecommendedPrice, p.DeltaPercent)
	default:
		return fmt.Sprintf("The current price is in line with the market; %d is recommended.", p.RecommendedPrice)
	}
}

// suggestions turns the most pressing risk factors and content gaps into
// actionable advice.  At most explainMaxRiskSuggestions risk factors are
// surfaced so the list stays digestible.
func suggestions(c *listing.Context, in ExplainInput) []string {
	var out []string
	for i, f := range in.Risk.Factors {
		if i == explainMaxRiskSuggestions {
			break
		}
		out = append(out, "Resolve: "+f)
	}
	if c.PhotoCount < demandPhotoThreshold {
		out = append(out, "Add more photos; listings with 5+ photos book noticeably better.")
	}
	if len(c.Description) < descriptionGoodLen {
		out = append(out, "Expand the description to at least 200 characters.")
	}
	if in.Pricing.Position == profile.BelowMarket {
		out = append(out, fmt.Sprintf("Consider raising the nightly price toward %d.", in.Pricing.RecommendedPrice))
	}
	return out
}
