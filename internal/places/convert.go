package places

import (
	"github.com/alexanderramin/outing/internal/domain"
)

const mapsPlaceURL = "https://www.google.com/maps/place/?q=place_id:"

// MapsLink returns a Google Maps link for a place id.
func MapsLink(placeID string) string {
	return mapsPlaceURL + placeID
}

// ToVenue converts an upstream place into a domain venue for the given
// candidate pool.
func ToVenue(p PlaceResult, pool domain.Category) domain.Venue {
	v := domain.Venue{
		PlaceID:     p.PlaceID,
		Name:        p.Name,
		Location:    domain.Location{Lat: p.Geometry.Location.Lat, Lng: p.Geometry.Location.Lng},
		Category:    Categorize(pool, p.Types),
		Rating:      p.Rating,
		ReviewCount: p.UserRatingsTotal,
		PriceLevel:  p.PriceLevel,
		Address:     domain.CoalesceStr(p.FormattedAddress, p.Vicinity),
		Link:        domain.CoalesceStr(p.URL, MapsLink(p.PlaceID)),
		Website:     p.Website,
		Phone:       p.FormattedPhoneNumber,
	}
	if p.OpeningHours != nil {
		v.OpenNow = p.OpeningHours.OpenNow
	}
	if len(p.Types) > 0 {
		v.Types = append([]string(nil), p.Types...)
	}
	return v
}

// Categorize assigns the venue category. Activity and dinner pools keep
// their own category; the finish pool is refined from the place types.
func Categorize(pool domain.Category, types []string) domain.Category {
	if pool != domain.CategoryFinish {
		if pool == domain.CategoryActivity && hasAny(types, "park", "natural_feature") && !hasAny(types, "amusement_park") {
			return domain.CategoryScenic
		}
		return pool
	}
	switch {
	case hasAny(types, "bar", "night_club", "liquor_store"):
		return domain.CategoryDrinks
	case hasAny(types, "cafe", "bakery", "ice_cream_shop", "dessert_shop"):
		return domain.CategoryDessert
	case hasAny(types, "park", "tourist_attraction", "natural_feature"):
		return domain.CategoryScenic
	default:
		return domain.CategoryFinish
	}
}

func hasAny(types []string, want ...string) bool {
	for _, t := range types {
		for _, w := range want {
			if t == w {
				return true
			}
		}
	}
	return false
}
