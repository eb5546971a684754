package places

import (
	"strings"

	"github.com/alexanderramin/outing/internal/domain"
)

// SearchQuery builds the Text Search query for one candidate pool.
func SearchQuery(pool domain.Category, city string, prefs domain.Preferences) string {
	var terms []string
	switch pool {
	case domain.CategoryActivity:
		if len(prefs.Vibes) > 0 {
			terms = append(terms, strings.ToLower(prefs.Vibes[0]))
		}
		switch {
		case prefs.FamilyFriendly:
			terms = append(terms, "family friendly activities")
		case prefs.IndoorsPreferred:
			terms = append(terms, "indoor activities")
		default:
			terms = append(terms, "things to do")
		}
	case domain.CategoryDinner:
		terms = append(terms, lowerAll(prefs.Dietary)...)
		if prefs.FamilyFriendly {
			terms = append(terms, "family")
		}
		terms = append(terms, "restaurant")
	case domain.CategoryFinish:
		if prefs.AlcoholOK && !prefs.FamilyFriendly {
			terms = append(terms, "cocktail bar")
		} else {
			terms = append(terms, "dessert cafe")
		}
	default:
		terms = append(terms, string(pool))
	}
	if city = strings.TrimSpace(city); city != "" {
		terms = append(terms, "in", city)
	}
	return strings.Join(terms, " ")
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
