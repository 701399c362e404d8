package orchestrator

import "github.com/stayscope/listing-intelligence/internal/domain/listing"

// Completeness checklist weights (sum = 100).
const (
	completenessTitleMax       = 15.0
	completenessDescriptionMax = 25.0
	completenessPhotosMax      = 25.0
	completenessAmenitiesMax   = 15.0
	completenessCoordinates    = 10.0
	completenessPrice          = 10.0
)

// CompletenessScore rates how much of the listing form is filled in, on a
// fixed checklist.  Partial credit is granted per attribute so owners see
// progress before hitting the full thresholds.
func CompletenessScore(c *listing.Context) float64 {
	score := 0.0

	switch {
	case len(c.Title) >= 20:
		score += completenessTitleMax
	case len(c.Title) > 0:
		score += 8
	}

	switch {
	case len(c.Description) >= 200:
		score += completenessDescriptionMax
	case len(c.Description) >= 50:
		score += 15
	case len(c.Description) > 0:
		score += 8
	}

	switch {
	case c.PhotoCount >= 5:
		score += completenessPhotosMax
	case c.PhotoCount >= 3:
		score += 15
	case c.PhotoCount >= 1:
		score += 8
	}

	switch {
	case c.AmenityCount >= 8:
		score += completenessAmenitiesMax
	case c.AmenityCount >= 3:
		score += 8
	case c.AmenityCount >= 1:
		score += 4
	}

	if c.HasCoordinates {
		score += completenessCoordinates
	}
	if c.BasePrice > 0 {
		score += completenessPrice
	}

	return score
}
