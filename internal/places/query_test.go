package places

import (
	"testing"

	"github.com/alexanderramin/outing/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestSearchQuery(t *testing.T) {
	prefs := domain.DefaultPreferences()
	prefs.Vibes = []string{"Romantic"}
	prefs.Dietary = []string{" Vegetarian "}

	assert.Equal(t, "romantic things to do in Lisbon", SearchQuery(domain.CategoryActivity, "Lisbon", prefs))
	assert.Equal(t, "vegetarian restaurant in Lisbon", SearchQuery(domain.CategoryDinner, "Lisbon", prefs))
	assert.Equal(t, "cocktail bar in Lisbon", SearchQuery(domain.CategoryFinish, "Lisbon", prefs))
}

func TestSearchQuery_FamilyAndNoAlcohol(t *testing.T) {
	prefs := domain.DefaultPreferences()
	prefs.FamilyFriendly = true

	assert.Equal(t, "family friendly activities in Porto", SearchQuery(domain.CategoryActivity, "Porto", prefs))
	assert.Equal(t, "family restaurant in Porto", SearchQuery(domain.CategoryDinner, "Porto", prefs))
	assert.Equal(t, "dessert cafe in Porto", SearchQuery(domain.CategoryFinish, "Porto", prefs))

	sober := domain.DefaultPreferences()
	sober.AlcoholOK = false
	sober.IndoorsPreferred = true
	assert.Equal(t, "dessert cafe in Porto", SearchQuery(domain.CategoryFinish, "Porto", sober))
	assert.Equal(t, "indoor activities in Porto", SearchQuery(domain.CategoryActivity, "Porto", sober))
}
