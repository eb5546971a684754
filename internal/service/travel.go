package service

import (
	"context"

	"github.com/alexanderramin/outing/internal/domain"
	"github.com/alexanderramin/outing/internal/places"
	"github.com/alexanderramin/outing/internal/planner"
)

type leg struct {
	from, to domain.Venue
}

// travelTimes looks up minutes for every consecutive stop pair of the draft
// plans with as few Distance Matrix calls as the element ceiling allows.
// Pairs left unresolved fall back to the planner default.
func (s *planService) travelTimes(ctx context.Context, run *planRun, plans []domain.Plan) planner.TravelTimes {
	legs := planLegs(plans)
	if len(legs) == 0 {
		return nil
	}

	var origins, dests []domain.Venue
	originIdx := map[string]int{}
	destIdx := map[string]int{}
	for _, l := range legs {
		if _, ok := originIdx[l.from.PlaceID]; !ok {
			originIdx[l.from.PlaceID] = len(origins)
			origins = append(origins, l.from)
		}
		if _, ok := destIdx[l.to.PlaceID]; !ok {
			destIdx[l.to.PlaceID] = len(dests)
			dests = append(dests, l.to)
		}
	}
	if len(dests) > places.MaxMatrixElements {
		dests = dests[:places.MaxMatrixElements]
	}

	mode := places.ModeFor(run.req.Preferences.Walking)
	travel := make(planner.TravelTimes, len(legs))
	rowsPerCall := max(1, places.MaxMatrixElements/len(dests))

	for start := 0; start < len(origins); start += rowsPerCall {
		if err := run.calls.Reserve(places.CallRoute); err != nil {
			if isBudgetExhausted(err) {
				run.warn("travel times estimated for some stops; route lookups used up")
			}
			break
		}
		end := min(start+rowsPerCall, len(origins))
		chunk := origins[start:end]
		matrix, err := s.source.DistanceMatrix(ctx, locations(chunk), locations(dests), mode)
		if err != nil {
			s.logger.WarnContext(ctx, "distance matrix failed", "mode", mode, "error", err)
			run.warn("travel times are estimates; route lookup failed")
			break
		}
		for i, row := range matrix {
			if i >= len(chunk) {
				break
			}
			for j, minutes := range row {
				if j >= len(dests) || minutes < 0 {
					continue
				}
				travel[planner.TravelKey(chunk[i].PlaceID, dests[j].PlaceID)] = minutes
			}
		}
	}
	return travel
}

// planLegs lists each distinct consecutive stop pair across the plans.
func planLegs(plans []domain.Plan) []leg {
	seen := map[string]bool{}
	var legs []leg
	for _, p := range plans {
		for i := 1; i < len(p.Stops); i++ {
			from, to := p.Stops[i-1].Venue, p.Stops[i].Venue
			key := planner.TravelKey(from.PlaceID, to.PlaceID)
			if seen[key] {
				continue
			}
			seen[key] = true
			legs = append(legs, leg{from: from, to: to})
		}
	}
	return legs
}

func locations(venues []domain.Venue) []domain.Location {
	out := make([]domain.Location, len(venues))
	for i, v := range venues {
		out[i] = v.Location
	}
	return out
}
