package planner

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/alexanderramin/outing/internal/domain"
)

const (
	minutesPerActivity = 120
	maxActivityStops   = 3
	unknownCostShare   = 0.10
)

// TravelTimes holds looked-up travel minutes keyed by TravelKey.
type TravelTimes map[string]int

// TravelKey builds the "fromPlaceId->toPlaceId" lookup key.
func TravelKey(fromID, toID string) string {
	return fromID + "->" + toID
}

// Minutes returns the travel time between two venues, 10 when unknown.
func (t TravelTimes) Minutes(fromID, toID string) int {
	if m, ok := t[TravelKey(fromID, toID)]; ok && m >= 0 {
		return m
	}
	return defaultTravelMin
}

type AssemblyInput struct {
	Skeleton  domain.Skeleton
	Selection Selection
	PerPerson float64
	Travel    TravelTimes
	Family    bool
	Tables    Tables
}

var planTitles = map[domain.PlanID]string{
	domain.PlanA: "Best fit",
	domain.PlanB: "Alternative",
	domain.PlanC: "Budget-friendly",
}

// AssemblePlans builds up to three itinerary variants from the selection.
// Variants that end up with no stops are omitted.
func AssemblePlans(in AssemblyInput) []domain.Plan {
	aVenues := planAVenues(in)
	usedA := placeIDSet(aVenues)

	bVenues := planBVenues(in.Selection, usedA)
	usedAB := placeIDSet(append(append([]domain.Venue(nil), aVenues...), bVenues...))

	cVenues := planCVenues(in.Selection, usedAB, usedA)

	var plans []domain.Plan
	for _, alt := range []struct {
		id     domain.PlanID
		venues []domain.Venue
		factor float64
	}{
		{domain.PlanA, aVenues, 1.0},
		{domain.PlanB, bVenues, 1.0},
		{domain.PlanC, cVenues, budgetPlanFactor},
	} {
		p := buildPlan(alt.id, alt.venues, alt.factor, in)
		if len(p.Stops) > 0 {
			plans = append(plans, p)
		}
	}
	return plans
}

// activityStopCount allows roughly one activity per two hours, 1..3.
func activityStopCount(windowMin int) int {
	n := windowMin / minutesPerActivity
	if n < 1 {
		return 1
	}
	if n > maxActivityStops {
		return maxActivityStops
	}
	return n
}

func planAVenues(in AssemblyInput) []domain.Venue {
	var venues []domain.Venue
	for _, c := range PoolCategories {
		if v, ok := in.Selection.Picks[c]; ok {
			venues = append(venues, v)
		}
	}
	pick, ok := in.Selection.Picks[domain.CategoryActivity]
	if !ok {
		return venues
	}

	used := placeIDSet(venues)
	activities := 1
	want := activityStopCount(in.Skeleton.WindowMinutes)
	for _, v := range in.Selection.RankedVenues(domain.CategoryActivity) {
		if activities >= want {
			break
		}
		if used[v.PlaceID] || v.PlaceID == pick.PlaceID {
			continue
		}
		venues = append(venues, v)
		used[v.PlaceID] = true
		activities++
	}
	return venues
}

func planBVenues(sel Selection, usedA map[string]bool) []domain.Venue {
	var venues []domain.Venue
	for _, c := range PoolCategories {
		ranked := sel.RankedVenues(c)
		if len(ranked) == 0 {
			continue
		}
		chosen := ranked[0]
		for _, v := range ranked {
			if !usedA[v.PlaceID] {
				chosen = v
				break
			}
		}
		venues = append(venues, chosen)
	}
	return venues
}

// planCVenues takes the cheapest venue per pool, preferring venues unused
// by A and B, then venues unused by A, then the top-ranked venue.
func planCVenues(sel Selection, usedAB, usedA map[string]bool) []domain.Venue {
	var venues []domain.Venue
	for _, c := range PoolCategories {
		ranked := sel.RankedVenues(c)
		if len(ranked) == 0 {
			continue
		}
		v, ok := cheapest(ranked, usedAB)
		if !ok {
			v, ok = cheapest(ranked, usedA)
		}
		if !ok {
			v = ranked[0]
		}
		venues = append(venues, v)
	}
	return venues
}

func cheapest(venues []domain.Venue, exclude map[string]bool) (domain.Venue, bool) {
	var best domain.Venue
	found := false
	for _, v := range venues {
		if exclude[v.PlaceID] {
			continue
		}
		if !found || v.PriceLevelOr(defaultPriceLevel) < best.PriceLevelOr(defaultPriceLevel) {
			best = v
			found = true
		}
	}
	return best, found
}

func buildPlan(id domain.PlanID, venues []domain.Venue, costFactor float64, in AssemblyInput) domain.Plan {
	venues = dedupeVenues(venues)
	orderVenues(venues, in.priorityOrder())

	startMin, _ := ParseClock(in.Skeleton.WindowStart)
	cursor := startMin
	labelCounts := make(map[string]int)
	stops := make([]domain.Stop, 0, len(venues))

	for i, v := range venues {
		travel := 0
		if i > 0 {
			prev := venues[i-1]
			travel = in.Travel.Minutes(prev.PlaceID, v.PlaceID)
			cursor += in.Tables.dwell(prev.Category) + travel
		}

		base := in.Tables.label(v.Category)
		labelCounts[base]++
		label := base
		if n := labelCounts[base]; n > 1 {
			label = fmt.Sprintf("%s %d", base, n)
		}

		stops = append(stops, domain.Stop{
			Time:      FormatClock(cursor),
			Label:     label,
			Venue:     v,
			Cost:      stopCost(v, in.PerPerson, costFactor, in.Tables),
			TravelMin: travel,
			OpenCheck: openCheck(v),
		})
	}

	p := domain.Plan{ID: id, Title: planTitles[id], Stops: stops}
	p.Backups = planBackups(in.Selection, p.PlaceIDs(), in.Tables)
	return p
}

func (in AssemblyInput) priorityOrder() []domain.Category {
	if in.Family {
		return in.Tables.FamilyOrder
	}
	return in.Tables.StandardOrder
}

func orderVenues(venues []domain.Venue, order []domain.Category) {
	rank := make(map[domain.Category]int, len(order))
	for i, c := range order {
		rank[c] = i
	}
	pos := func(c domain.Category) int {
		if r, ok := rank[c]; ok {
			return r
		}
		return len(order)
	}
	sort.SliceStable(venues, func(i, j int) bool {
		return pos(venues[i].Category) < pos(venues[j].Category)
	})
}

func dedupeVenues(venues []domain.Venue) []domain.Venue {
	seen := make(map[string]bool, len(venues))
	out := make([]domain.Venue, 0, len(venues))
	for _, v := range venues {
		if seen[v.PlaceID] {
			continue
		}
		seen[v.PlaceID] = true
		out = append(out, v)
	}
	return out
}

// stopCost is share × per-person budget × price multiplier, spread 0.8..1.2.
func stopCost(v domain.Venue, perPerson, factor float64, t Tables) domain.CostRange {
	share, ok := t.CostShare[v.Category]
	if !ok {
		share = unknownCostShare
	}
	nominal := share * perPerson * t.multiplier(v.PriceLevelOr(defaultPriceLevel)) * factor
	if nominal < 0 {
		nominal = 0
	}
	return domain.CostRange{
		Low:  int(math.Round(nominal * 0.8)),
		High: int(math.Round(nominal * 1.2)),
	}
}

func openCheck(v domain.Venue) string {
	switch {
	case v.OpenNow == nil:
		return "Hours not verified"
	case *v.OpenNow:
		return "Open now"
	default:
		return "Closed right now, check hours before going"
	}
}

func planBackups(sel Selection, used map[string]bool, t Tables) []domain.Backup {
	var backups []domain.Backup
	for _, c := range PoolCategories {
		for _, v := range sel.Backups[c] {
			if used[v.PlaceID] {
				continue
			}
			backups = append(backups, domain.Backup{
				Label:     "Backup " + strings.ToLower(t.label(c)),
				Name:      v.Name,
				Link:      v.Link,
				Rationale: backupRationale(c, v, t),
			})
		}
	}
	return backups
}

func backupRationale(c domain.Category, v domain.Venue, t Tables) string {
	kind := strings.ToLower(t.label(c))
	if v.Rating == nil {
		return fmt.Sprintf("Unrated %s alternative close to the plan", kind)
	}
	return fmt.Sprintf("Alternative %s rated %.1f/5", kind, *v.Rating)
}

func placeIDSet(venues []domain.Venue) map[string]bool {
	ids := make(map[string]bool, len(venues))
	for _, v := range venues {
		ids[v.PlaceID] = true
	}
	return ids
}
