package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestMergeVenue_FetchedFieldsFillGaps(t *testing.T) {
	existing := Venue{
		PlaceID:  "p1",
		Name:     "Bar Uno",
		Location: Location{Lat: 38.7, Lng: -9.1},
		Category: CategoryDrinks,
		Rating:   ptr(4.1),
	}
	fetched := Venue{
		PlaceID:     "p1",
		ReviewCount: ptr(230),
		PriceLevel:  ptr(2),
		OpenNow:     ptr(true),
		Website:     "https://bar-uno.example",
	}

	merged := MergeVenue(existing, fetched)

	assert.Equal(t, "Bar Uno", merged.Name)
	assert.Equal(t, 4.1, *merged.Rating)
	assert.Equal(t, 230, *merged.ReviewCount)
	assert.Equal(t, 2, *merged.PriceLevel)
	assert.True(t, *merged.OpenNow)
	assert.Equal(t, "https://bar-uno.example", merged.Website)
	assert.Equal(t, existing.Location, merged.Location)
	assert.Equal(t, CategoryDrinks, merged.Category)
}

func TestMergeVenue_PresentFieldsOverrideStale(t *testing.T) {
	existing := Venue{PlaceID: "p1", Name: "Old Name", Rating: ptr(3.9), Address: "1 Old St"}
	fetched := Venue{PlaceID: "p1", Name: "New Name", Rating: ptr(4.4)}

	merged := MergeVenue(existing, fetched)

	assert.Equal(t, "New Name", merged.Name)
	assert.Equal(t, 4.4, *merged.Rating)
	assert.Equal(t, "1 Old St", merged.Address, "absent address must not erase existing")
}

func TestMergeVenue_DoesNotAliasPointers(t *testing.T) {
	existing := Venue{PlaceID: "p1", Rating: ptr(4.0)}
	merged := MergeVenue(existing, Venue{})

	*merged.Rating = 1.0
	assert.Equal(t, 4.0, *existing.Rating)
}

func TestParseCategory(t *testing.T) {
	assert.Equal(t, CategoryDinner, ParseCategory("dinner"))
	assert.Equal(t, CategoryOther, ParseCategory("brunch"))
}

func TestOutingRequest_PerPerson(t *testing.T) {
	req := OutingRequest{Budget: Budget{Amount: 120, Currency: "EUR"}}
	assert.Equal(t, 60.0, req.PerPerson(), "party size defaults to two")

	req.PartySize = 4
	assert.Equal(t, 30.0, req.PerPerson())
}

func TestPlan_TotalCostAndPlaceIDs(t *testing.T) {
	p := Plan{Stops: []Stop{
		{Venue: Venue{PlaceID: "a"}, Cost: CostRange{Low: 8, High: 12}},
		{Venue: Venue{PlaceID: "b"}, Cost: CostRange{Low: 20, High: 30}},
	}}
	assert.Equal(t, CostRange{Low: 28, High: 42}, p.TotalCost())
	assert.Equal(t, map[string]bool{"a": true, "b": true}, p.PlaceIDs())
}
