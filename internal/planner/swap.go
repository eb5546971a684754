package planner

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/outing/internal/domain"
)

type SwapInput struct {
	Pools  Pools
	PlanA  *domain.Plan
	Tables Tables
}

// BuildSwapMenu returns the four fixed contingency instructions in the
// order rain_mode, budget_lower, no_alcohol, more_walkable.
func BuildSwapMenu(in SwapInput) []domain.SwapMenuItem {
	return []domain.SwapMenuItem{
		{Tag: domain.SwapRainMode, Instruction: rainMode(in)},
		{Tag: domain.SwapBudgetLower, Instruction: budgetLower(in)},
		{Tag: domain.SwapNoAlcohol, Instruction: noAlcohol(in)},
		{Tag: domain.SwapMoreWalkable, Instruction: moreWalkable(in)},
	}
}

func rainMode(in SwapInput) string {
	if v, ok := firstMatch(in.Pools[domain.CategoryActivity], in.Tables.IndoorActivityKeywords); ok {
		return fmt.Sprintf("If it rains, move the activity indoors to %s.", v.Name)
	}
	if v, ok := firstMatch(in.Pools[domain.CategoryFinish], in.Tables.IndoorFinishKeywords); ok {
		return fmt.Sprintf("If it rains, skip the outdoor stops and head to %s early.", v.Name)
	}
	return "If it rains, swap outdoor stops for a museum, cinema or a covered market nearby."
}

func budgetLower(in SwapInput) string {
	var best *domain.Venue
	for _, c := range []domain.Category{domain.CategoryDinner, domain.CategoryActivity} {
		for i := range in.Pools[c] {
			v := in.Pools[c][i]
			if v.PriceLevel == nil || *v.PriceLevel > 1 {
				continue
			}
			if best == nil || *v.PriceLevel < *best.PriceLevel {
				best = &v
			}
		}
	}
	if best != nil {
		return fmt.Sprintf("To spend less, swap in %s, one of the cheapest options nearby.", best.Name)
	}
	return "To spend less, share plates at dinner, look for happy-hour deals and skip the paid activity for a free walk."
}

func noAlcohol(in SwapInput) string {
	if v, ok := firstMatch(in.Pools[domain.CategoryFinish], in.Tables.NoAlcoholKeywords); ok {
		return fmt.Sprintf("For an alcohol-free finish, go to %s instead of the bar.", v.Name)
	}
	return "For an alcohol-free evening, ask for the mocktail menu or swap the bar for a late-night dessert spot."
}

func moreWalkable(in SwapInput) string {
	if avg, ok := averageTravel(in.PlanA); ok && avg > walkableThresholdMin {
		return fmt.Sprintf("Stops are about %.0f minutes apart on average; use public transit or a short taxi between them.", avg)
	}
	return "To walk more, pick the backups closest to dinner and keep all stops within one neighbourhood."
}

func averageTravel(p *domain.Plan) (float64, bool) {
	if p == nil || len(p.Stops) < 2 {
		return 0, false
	}
	total := 0
	for _, s := range p.Stops[1:] {
		total += s.TravelMin
	}
	return float64(total) / float64(len(p.Stops)-1), true
}

func firstMatch(venues []domain.Venue, keywords []string) (domain.Venue, bool) {
	for _, v := range venues {
		text := v.SearchText()
		for _, kw := range keywords {
			if kw != "" && strings.Contains(text, strings.ToLower(kw)) {
				return v, true
			}
		}
	}
	return domain.Venue{}, false
}
