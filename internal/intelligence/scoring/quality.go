package scoring

import (
	"strings"

	"github.com/stayscope/listing-intelligence/internal/domain/listing"
	"github.com/stayscope/listing-intelligence/internal/domain/profile"
)

// lexicalGroups are keyword families whose presence in a description signals
// effort put into the text.  Each group that matches at least once earns
// qualityLexicalBonusStep, capped at qualityLexicalBonusCap.
var lexicalGroups = [][]string{
	{"metro", "tram", "station", "transit", "bus"},
	{"quiet", "calm", "peaceful"},
	{"check-in", "checkout", "house rules", "no smoking"},
	{"neighborhood", "neighbourhood", "district", "nearby"},
}

// QualityScore rates presentation quality of a listing in [0, 100].
//
// Contributions: photos up to 25, description length up to 20, lexical bonus
// up to 6, amenities up to 16, review rating up to 20, coordinates 5,
// title 8.
func QualityScore(c *listing.Context) float64 {
	score := 0.0

	photos := float64(c.PhotoCount) * qualityPhotoPoints
	if photos > qualityPhotoCap {
		photos = qualityPhotoCap
	}
	score += photos

	score += descriptionPoints(len(c.Description))
	score += lexicalBonus(c.Description)

	amenities := float64(c.AmenityCount) * qualityAmenityPoints
	if amenities > qualityAmenityCap {
		amenities = qualityAmenityCap
	}
	score += amenities

	if c.ReviewCount > 0 {
		score += c.AverageRating / 5 * qualityRatingCap
	}
	if c.HasCoordinates {
		score += qualityCoordinatesBonus
	}
	if len(c.Title) >= qualityTitleMinLen {
		score += qualityTitleBonus
	}

	return profile.ClampScore(score)
}

func descriptionPoints(length int) float64 {
	switch {
	case length >= descriptionFullLen:
		return 20
	case length >= descriptionGoodLen:
		return 14
	case length >= descriptionMinimalLen:
		return 8
	case length > 0:
		return 2
	default:
		return 0
	}
}

func lexicalBonus(description string) float64 {
	if description == "" {
		return 0
	}
	text := strings.ToLower(description)
	bonus := 0.0
	for _, group := range lexicalGroups {
		for _, kw := range group {
			if strings.Contains(text, kw) {
				bonus += qualityLexicalBonusStep
				break
			}
		}
	}
	if bonus > qualityLexicalBonusCap {
		bonus = qualityLexicalBonusCap
	}
	return bonus
}
