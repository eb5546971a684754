package testutil

import (
	"github.com/alexanderramin/outing/internal/domain"
	"github.com/google/uuid"
)

// Venue options
type VenueOption func(*domain.Venue)

func WithCategory(c domain.Category) VenueOption {
	return func(v *domain.Venue) {
		v.Category = c
	}
}

func WithLocation(lat, lng float64) VenueOption {
	return func(v *domain.Venue) {
		v.Location = domain.Location{Lat: lat, Lng: lng}
	}
}

func WithRating(r float64) VenueOption {
	return func(v *domain.Venue) {
		v.Rating = &r
	}
}

func WithReviews(n int) VenueOption {
	return func(v *domain.Venue) {
		v.ReviewCount = &n
	}
}

func WithPriceLevel(l int) VenueOption {
	return func(v *domain.Venue) {
		v.PriceLevel = &l
	}
}

func WithOpenNow(open bool) VenueOption {
	return func(v *domain.Venue) {
		v.OpenNow = &open
	}
}

func WithAddress(a string) VenueOption {
	return func(v *domain.Venue) {
		v.Address = a
	}
}

// NewTestVenue builds a venue at Lisbon's Baixa with no optional attributes.
// An empty id gets a random UUID.
func NewTestVenue(id, name string, opts ...VenueOption) domain.Venue {
	if id == "" {
		id = uuid.New().String()
	}
	v := domain.Venue{
		PlaceID:  id,
		Name:     name,
		Location: domain.Location{Lat: 38.7100, Lng: -9.1370},
		Category: domain.CategoryOther,
		Link:     "https://www.google.com/maps/place/?q=place_id:" + id,
	}
	for _, opt := range opts {
		opt(&v)
	}
	return v
}

// NewTestRequest returns a valid two-person evening request in Lisbon.
func NewTestRequest() domain.OutingRequest {
	return domain.OutingRequest{
		Budget:      domain.Budget{Amount: 150, Currency: "EUR"},
		StartTime:   "18:00",
		EndTime:     "23:00",
		City:        "Lisbon",
		PartySize:   2,
		Preferences: domain.DefaultPreferences(),
	}
}
