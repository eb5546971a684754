package planner

import "github.com/alexanderramin/outing/internal/domain"

// PoolCategories are the candidate pools a request searches, in the order
// plans visit them.
var PoolCategories = []domain.Category{
	domain.CategoryActivity,
	domain.CategoryDinner,
	domain.CategoryFinish,
}

// Pools maps a pool category to its candidate venues.
type Pools map[domain.Category][]domain.Venue

// All returns every pooled venue in pool order.
func (p Pools) All() []domain.Venue {
	var out []domain.Venue
	for _, c := range PoolCategories {
		out = append(out, p[c]...)
	}
	return out
}

type SelectionInput struct {
	Pools Pools

	// TargetPerPerson is the intended per-person spend for each pool.
	TargetPerPerson map[domain.Category]float64

	Preferences domain.Preferences

	// Reference overrides the first-pass proximity point; nil uses each
	// pool's centroid.
	Reference *domain.Location

	Tables Tables
}

// Selection is the finalist pick per pool plus its fallbacks.
type Selection struct {
	Picks   map[domain.Category]domain.Venue
	Backups map[domain.Category][]domain.Venue
	Ranked  map[domain.Category][]ScoredVenue

	// Anchor is the dinner pick that activity and finish were re-ranked
	// around, nil when the dinner pool was empty.
	Anchor *domain.Venue
}

func backupDepth(c domain.Category) int {
	if c == domain.CategoryDinner {
		return 3
	}
	return 2
}

// SelectFinalists ranks every pool, fixes dinner as the anchor and then
// re-ranks activity and finish around the anchor's location. This is two
// explicit scoring passes; the anchor itself is never re-ranked.
func SelectFinalists(in SelectionInput) Selection {
	sel := Selection{
		Picks:   make(map[domain.Category]domain.Venue),
		Backups: make(map[domain.Category][]domain.Venue),
		Ranked:  make(map[domain.Category][]ScoredVenue),
	}

	for _, c := range PoolCategories {
		ranked := RankVenues(in.Pools[c], in.scoringContext(c, in.Reference))
		sel.apply(c, ranked)
	}

	dinner, ok := sel.Picks[domain.CategoryDinner]
	if !ok {
		return sel
	}
	anchor := dinner
	sel.Anchor = &anchor
	ref := anchor.Location
	for _, c := range []domain.Category{domain.CategoryActivity, domain.CategoryFinish} {
		ranked := RankVenues(in.Pools[c], in.scoringContext(c, &ref))
		sel.apply(c, ranked)
	}
	return sel
}

func (in SelectionInput) scoringContext(c domain.Category, ref *domain.Location) ScoringContext {
	return ScoringContext{
		Reference:       ref,
		TargetPerPerson: in.TargetPerPerson[c],
		Preferences:     in.Preferences,
		Tables:          in.Tables,
	}
}

func (s *Selection) apply(c domain.Category, ranked []ScoredVenue) {
	s.Ranked[c] = ranked
	delete(s.Picks, c)
	delete(s.Backups, c)
	if len(ranked) == 0 {
		return
	}
	s.Picks[c] = ranked[0].Venue
	var backups []domain.Venue
	for i := 1; i < len(ranked) && len(backups) < backupDepth(c); i++ {
		backups = append(backups, ranked[i].Venue)
	}
	if len(backups) > 0 {
		s.Backups[c] = backups
	}
}

// RankedVenues returns the venues of a pool in ranked order.
func (s Selection) RankedVenues(c domain.Category) []domain.Venue {
	ranked := s.Ranked[c]
	out := make([]domain.Venue, len(ranked))
	for i, sv := range ranked {
		out[i] = sv.Venue
	}
	return out
}
