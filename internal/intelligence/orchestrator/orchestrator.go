// Package orchestrator assembles complete intelligence profiles by running
// the scoring strategies in order and merging their outputs.
package orchestrator

import (
	"context"
	"time"

	"github.com/stayscope/listing-intelligence/internal/domain/listing"
	"github.com/stayscope/listing-intelligence/internal/domain/profile"
	"github.com/stayscope/listing-intelligence/internal/infrastructure/monitoring/logging"
	"github.com/stayscope/listing-intelligence/internal/intelligence/scoring"
	"github.com/stayscope/listing-intelligence/pkg/errors"
	"github.com/stayscope/listing-intelligence/pkg/types/common"
)

// Booking probability blend weights and the market-position adjustment.
const (
	probQualityWeight = 0.30
	probDemandWeight  = 0.40
	probSafetyWeight  = 0.30
	probPositionSwing = 0.15
)

// Orchestrator computes a full intelligence profile from a listing snapshot.
// It holds no mutable state and is safe for concurrent use.
type Orchestrator struct {
	reader    listing.Reader
	estimator *scoring.MarketEstimator
	demand    *scoring.DemandScorer
	logger    logging.Logger
	now       func() time.Time
}

// New wires an orchestrator over the listing reader.  comparableLimit caps
// the market estimator's sample; zero means the default.
func New(reader listing.Reader, comparableLimit int, logger logging.Logger) *Orchestrator {
	return &Orchestrator{
		reader:    reader,
		estimator: scoring.NewMarketEstimator(reader, comparableLimit),
		demand:    scoring.NewDemandScorer(),
		logger:    logger.Named("orchestrator"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ComputeProfile fetches the listing snapshot and runs the full scoring
// pipeline.  It returns ErrCodeListingNotFound untouched when the listing
// does not exist and ErrCodeInvalidContext when the snapshot cannot be
// scored; every profile returned satisfies profile.Validate.
func (o *Orchestrator) ComputeProfile(ctx context.Context, id common.ID) (*profile.IntelligenceProfile, error) {
	c, err := o.reader.GetContext(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, err
		}
		return nil, errors.Wrap(err, errors.ErrCodeComputationFailed, "fetch listing context")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	quality := scoring.QualityScore(c)
	demand := o.demand.Score(c)
	risk := scoring.AssessRisk(c)
	completeness := CompletenessScore(c)

	reference := o.estimator.ReferencePrice(ctx, c.NormalizedCity(), c.ID)
	pricing := scoring.RecommendPrice(c, reference, demand)

	probability := bookingProbability(quality, demand, risk.Score, pricing.Position)

	explanation := scoring.BuildExplanation(c, scoring.ExplainInput{
		Quality:            quality,
		Demand:             demand,
		Risk:               risk,
		Pricing:            pricing,
		BookingProbability: probability,
		Completeness:       completeness,
	})

	p := &profile.IntelligenceProfile{
		ListingID:          c.ID,
		OwnerID:            c.OwnerID,
		City:               c.NormalizedCity(),
		QualityScore:       quality,
		DemandScore:        demand,
		RiskScore:          risk.Score,
		CompletenessScore:  completeness,
		BookingProbability: probability,
		RecommendedPrice:   pricing.RecommendedPrice,
		PriceDeltaPercent:  pricing.DeltaPercent,
		MarketPosition:     pricing.Position,
		RiskLevel:          risk.Level,
		RiskFactors:        risk.Factors,
		Explanation:        explanation,
		CalculatedAt:       o.now(),
		CalcVersion:        profile.CalcVersion,
	}
	if err := p.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeComputationFailed, "computed profile failed validation")
	}

	o.logger.Debug("profile computed",
		logging.String("listing_id", id.String()),
		logging.Float64("quality", quality),
		logging.Float64("demand", demand),
		logging.Float64("risk", risk.Score),
		logging.Int("recommended_price", pricing.RecommendedPrice),
	)
	return p, nil
}

// bookingProbability blends the three scores into a 30-day booking
// probability, nudged by the price position and clamped to [0.05, 0.95].
func bookingProbability(quality, demand, risk float64, position profile.MarketPosition) float64 {
	p := (probQualityWeight*quality + probDemandWeight*demand + probSafetyWeight*(100-risk)) / 100
	switch position {
	case profile.BelowMarket:
		p *= 1 + probPositionSwing
	case profile.AboveMarket:
		p *= 1 - probPositionSwing
	}
	return profile.ClampProbability(p)
}
