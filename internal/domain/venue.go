package domain

import "strings"

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Venue struct {
	PlaceID     string   `json:"place_id"`
	Name        string   `json:"name"`
	Location    Location `json:"location"`
	Category    Category `json:"category"`
	Rating      *float64 `json:"rating,omitempty"`
	ReviewCount *int     `json:"review_count,omitempty"`
	PriceLevel  *int     `json:"price_level,omitempty"`
	Address     string   `json:"address,omitempty"`
	Link        string   `json:"link,omitempty"`

	// Detail fields, filled by enrichment.
	OpenNow *bool    `json:"open_now,omitempty"`
	Website string   `json:"website,omitempty"`
	Phone   string   `json:"phone,omitempty"`
	Types   []string `json:"types,omitempty"`
}

// SearchText is the lowercase name plus category, used for keyword matching.
func (v Venue) SearchText() string {
	return strings.ToLower(v.Name + " " + string(v.Category))
}

// PriceLevelOr returns the venue's price level or the fallback when unknown.
func (v Venue) PriceLevelOr(fallback int) int {
	return IntFromPtrWithDefault(fallback, v.PriceLevel)
}

// MergeVenue folds late-arriving detail fields into an existing record.
// A fetched field wins only when it is present; absent fields never
// overwrite existing data. Identity (PlaceID) always comes from existing
// unless existing has none.
func MergeVenue(existing, fetched Venue) Venue {
	merged := Venue{
		PlaceID:     CoalesceStr(existing.PlaceID, fetched.PlaceID),
		Name:        CoalesceStr(fetched.Name, existing.Name),
		Location:    existing.Location,
		Category:    existing.Category,
		Rating:      coalescePtr(fetched.Rating, existing.Rating),
		ReviewCount: coalescePtr(fetched.ReviewCount, existing.ReviewCount),
		PriceLevel:  coalescePtr(fetched.PriceLevel, existing.PriceLevel),
		Address:     CoalesceStr(fetched.Address, existing.Address),
		Link:        CoalesceStr(fetched.Link, existing.Link),
		OpenNow:     coalescePtr(fetched.OpenNow, existing.OpenNow),
		Website:     CoalesceStr(fetched.Website, existing.Website),
		Phone:       CoalesceStr(fetched.Phone, existing.Phone),
		Types:       existing.Types,
	}
	if fetched.Location != (Location{}) {
		merged.Location = fetched.Location
	}
	if merged.Category == "" || merged.Category == CategoryOther {
		if fetched.Category != "" {
			merged.Category = fetched.Category
		}
	}
	if len(fetched.Types) > 0 {
		merged.Types = append([]string(nil), fetched.Types...)
	}
	return merged
}
