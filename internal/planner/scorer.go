package planner

import (
	"math"
	"sort"
	"strings"

	"github.com/alexanderramin/outing/internal/domain"
)

// Proximity scoring bounds in metres.
const (
	proximityFullM = 500.0
	proximityZeroM = 5000.0
)

// Neutral component values for unknown attributes.
const (
	neutralRating     = 0.5
	neutralPriceMatch = 0.5
	neutralProximity  = 0.5
	basePreference    = 0.5
	likeBonus         = 0.15
	vibeBonus         = 0.10
	aboveBudgetScore  = 0.8
)

// ScoringContext carries everything a venue is scored against.
type ScoringContext struct {
	// Reference is the point proximity is measured from. RankVenues fills
	// it with the centroid of the ranked set when nil.
	Reference *domain.Location

	// TargetPerPerson is the intended EUR spend per person at this stop.
	// Zero or negative means unknown.
	TargetPerPerson float64

	Preferences domain.Preferences
	Tables      Tables
}

type ScoreComponents struct {
	Rating     float64 `json:"rating"`
	Proximity  float64 `json:"proximity"`
	PriceMatch float64 `json:"price_match"`
	Preference float64 `json:"preference"`
	Reviews    float64 `json:"reviews"`
}

type ScoredVenue struct {
	Venue      domain.Venue    `json:"venue"`
	Score      float64         `json:"score"`
	Components ScoreComponents `json:"components"`
}

// ScoreVenue computes the composite desirability of a single venue.
func ScoreVenue(v domain.Venue, ctx ScoringContext) ScoredVenue {
	c := ScoreComponents{
		Rating:     scoreRating(v.Rating),
		Proximity:  scoreProximity(v.Location, ctx.Reference),
		PriceMatch: scorePriceMatch(v.PriceLevel, ctx.TargetPerPerson, ctx.Tables.PriceBands),
		Preference: scorePreference(v, ctx.Preferences, ctx.Tables.VibeKeywords),
		Reviews:    scoreReviews(v.ReviewCount),
	}
	w := ctx.Tables.Weights
	score := w.Rating*c.Rating +
		w.Proximity*c.Proximity +
		w.PriceMatch*c.PriceMatch +
		w.Preference*c.Preference +
		w.Reviews*c.Reviews
	return ScoredVenue{
		Venue:      v,
		Score:      clamp01(score),
		Components: c,
	}
}

// RankVenues scores every venue and sorts descending by composite score.
// Ties keep input order. With no reference point the centroid of venues
// is used.
func RankVenues(venues []domain.Venue, ctx ScoringContext) []ScoredVenue {
	if len(venues) == 0 {
		return nil
	}
	if ctx.Reference == nil {
		if c, ok := Centroid(venues); ok {
			ctx.Reference = &c
		}
	}
	scored := make([]ScoredVenue, len(venues))
	for i, v := range venues {
		scored[i] = ScoreVenue(v, ctx)
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

func scoreRating(r *float64) float64 {
	if r == nil {
		return neutralRating
	}
	return clamp01((*r - 3) / 2)
}

func scoreProximity(loc domain.Location, ref *domain.Location) float64 {
	if ref == nil {
		return neutralProximity
	}
	d := HaversineM(loc, *ref)
	switch {
	case d <= proximityFullM:
		return 1.0
	case d >= proximityZeroM:
		return 0.0
	default:
		return 1.0 - (d-proximityFullM)/(proximityZeroM-proximityFullM)
	}
}

// scorePriceMatch penalises venues above the target harder than venues
// below it: a cheaper venue always scores 0.8.
func scorePriceMatch(level *int, target float64, bands []PriceBand) float64 {
	if level == nil || *level < 0 || *level >= len(bands) || target <= 0 {
		return neutralPriceMatch
	}
	band := bands[*level]
	switch {
	case target >= band.Min && target <= band.Max:
		return 1.0
	case target < band.Min:
		return math.Max(0.1, 0.7-(band.Min-target)/50)
	default:
		return aboveBudgetScore
	}
}

func scorePreference(v domain.Venue, prefs domain.Preferences, vibes map[string][]string) float64 {
	score := basePreference
	text := v.SearchText()
	for _, like := range prefs.Likes {
		kw := strings.ToLower(strings.TrimSpace(like))
		if kw != "" && strings.Contains(text, kw) {
			score += likeBonus
		}
	}
	name := strings.ToLower(v.Name)
	for _, vibe := range prefs.Vibes {
		for _, kw := range vibes[strings.ToLower(strings.TrimSpace(vibe))] {
			if strings.Contains(name, kw) {
				score += vibeBonus
			}
		}
	}
	return math.Min(score, 1.0)
}

func scoreReviews(n *int) float64 {
	if n == nil {
		return 0.3
	}
	switch {
	case *n >= 500:
		return 1.0
	case *n >= 100:
		return 0.8
	case *n >= 50:
		return 0.6
	case *n >= 20:
		return 0.4
	default:
		return 0.3
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
