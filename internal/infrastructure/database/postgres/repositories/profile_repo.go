package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	gerrors "errors"

	"github.com/stayscope/listing-intelligence/internal/domain/profile"
	"github.com/stayscope/listing-intelligence/pkg/errors"
	"github.com/stayscope/listing-intelligence/pkg/types/common"
)

// ProfileRepository persists intelligence profiles in the listing_profiles
// table, one row per listing.  It implements profile.Repository.
type ProfileRepository struct {
	db *sql.DB
}

// NewProfileRepository wires a profile store over the given pool.
func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const profileColumns = `
listing_id, owner_id, city, quality_score, demand_score, risk_score,
completeness_score, booking_probability, recommended_price,
price_delta_percent, market_position, risk_level, risk_factors, explanation,
calculated_at, calc_version`

const getProfileQuery = `
SELECT ` + profileColumns + `
FROM listing_profiles
WHERE listing_id = $1`

// Get returns the stored profile, or ErrCodeProfileNotFound.
func (r *ProfileRepository) Get(ctx context.Context, listingID common.ID) (*profile.IntelligenceProfile, error) {
	p, err := scanProfile(r.db.QueryRowContext(ctx, getProfileQuery, listingID.String()))
	if gerrors.Is(err, sql.ErrNoRows) {
		return nil, errors.New(errors.ErrCodeProfileNotFound, "profile not found").
			WithDetail(listingID.String())
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeProfileStore, "query profile")
	}
	return p, nil
}

const upsertProfileQuery = `
INSERT INTO listing_profiles (` + profileColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
ON CONFLICT (listing_id) DO UPDATE SET
    owner_id            = EXCLUDED.owner_id,
    city                = EXCLUDED.city,
    quality_score       = EXCLUDED.quality_score,
    demand_score        = EXCLUDED.demand_score,
    risk_score          = EXCLUDED.risk_score,
    completeness_score  = EXCLUDED.completeness_score,
    booking_probability = EXCLUDED.booking_probability,
    recommended_price   = EXCLUDED.recommended_price,
    price_delta_percent = EXCLUDED.price_delta_percent,
    market_position     = EXCLUDED.market_position,
    risk_level          = EXCLUDED.risk_level,
    risk_factors        = EXCLUDED.risk_factors,
    explanation         = EXCLUDED.explanation,
    calculated_at       = EXCLUDED.calculated_at,
    calc_version        = EXCLUDED.calc_version`

// Upsert stores the profile, replacing any previous record for the listing.
func (r *ProfileRepository) Upsert(ctx context.Context, p *profile.IntelligenceProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	factors, err := json.Marshal(p.RiskFactors)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "marshal risk factors")
	}
	explanation, err := json.Marshal(p.Explanation)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "marshal explanation")
	}

	_, err = r.db.ExecContext(ctx, upsertProfileQuery,
		p.ListingID.String(), string(p.OwnerID), p.City,
		p.QualityScore, p.DemandScore, p.RiskScore, p.CompletenessScore,
		p.BookingProbability, p.RecommendedPrice, p.PriceDeltaPercent,
		string(p.MarketPosition), string(p.RiskLevel), factors, explanation,
		p.CalculatedAt, p.CalcVersion,
	)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeProfileStore, "upsert profile")
	}
	return nil
}

// Delete removes the stored profile; deleting a missing profile is a no-op.
func (r *ProfileRepository) Delete(ctx context.Context, listingID common.ID) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM listing_profiles WHERE listing_id = $1`, listingID.String())
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeProfileStore, "delete profile")
	}
	return nil
}

const listByOwnerQuery = `
SELECT ` + profileColumns + `
FROM listing_profiles
WHERE owner_id = $1
ORDER BY listing_id`

// ListByOwner returns every stored profile for the owner's listings.
func (r *ProfileRepository) ListByOwner(ctx context.Context, ownerID common.OwnerID) ([]*profile.IntelligenceProfile, error) {
	rows, err := r.db.QueryContext(ctx, listByOwnerQuery, string(ownerID))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeProfileStore, "query profiles by owner")
	}
	return collectProfiles(rows)
}

const listByCityQuery = `
SELECT ` + profileColumns + `
FROM listing_profiles
WHERE $1 = '' OR city = $1
ORDER BY listing_id`

// ListByCity returns stored profiles in the city; empty city means all.
func (r *ProfileRepository) ListByCity(ctx context.Context, city string) ([]*profile.IntelligenceProfile, error) {
	rows, err := r.db.QueryContext(ctx, listByCityQuery, city)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeProfileStore, "query profiles by city")
	}
	return collectProfiles(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*profile.IntelligenceProfile, error) {
	var (
		p           profile.IntelligenceProfile
		factors     []byte
		explanation []byte
	)
	err := row.Scan(
		&p.ListingID, &p.OwnerID, &p.City,
		&p.QualityScore, &p.DemandScore, &p.RiskScore, &p.CompletenessScore,
		&p.BookingProbability, &p.RecommendedPrice, &p.PriceDeltaPercent,
		&p.MarketPosition, &p.RiskLevel, &factors, &explanation,
		&p.CalculatedAt, &p.CalcVersion,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(factors, &p.RiskFactors); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "unmarshal risk factors")
	}
	if err := json.Unmarshal(explanation, &p.Explanation); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "unmarshal explanation")
	}
	return &p, nil
}

func collectProfiles(rows *sql.Rows) ([]*profile.IntelligenceProfile, error) {
	defer rows.Close()
	var out []*profile.IntelligenceProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeProfileStore, "scan profile")
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeProfileStore, "iterate profiles")
	}
	return out, nil
}
