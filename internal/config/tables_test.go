package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/outing/internal/domain"
	"github.com/alexanderramin/outing/internal/planner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTables(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tables.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadTables_EmptyPathIsDefault(t *testing.T) {
	tables, err := LoadTables("")
	require.NoError(t, err)
	assert.Equal(t, planner.DefaultTables(), tables)
}

func TestLoadTables_OverlaysDefaults(t *testing.T) {
	path := writeTables(t, `
weights:
  rating: 0.4
  proximity: 0.2
  price_match: 0.2
  preference: 0.1
  reviews: 0.1
vibe_keywords:
  cozy: [fireplace, snug]
dwell_min:
  dinner: 120
standard_order: [activity, dinner, drinks]
`)

	tables, err := LoadTables(path)
	require.NoError(t, err)

	assert.Equal(t, 0.4, tables.Weights.Rating)
	assert.Equal(t, []string{"fireplace", "snug"}, tables.VibeKeywords["cozy"])
	assert.NotEmpty(t, tables.VibeKeywords["romantic"], "untouched keys keep defaults")
	assert.Equal(t, 120, tables.DwellMin[domain.CategoryDinner])
	assert.Equal(t, 45, tables.DwellMin[domain.CategoryDrinks])
	assert.Equal(t, []domain.Category{domain.CategoryActivity, domain.CategoryDinner, domain.CategoryDrinks}, tables.StandardOrder)
	assert.Equal(t, planner.DefaultTables().PriceBands, tables.PriceBands)
}

func TestLoadTables_TemplateOverride(t *testing.T) {
	path := writeTables(t, `
templates:
  SHORT:
    - {label: "Tapas crawl", category: dinner, percent: 100, nominal_min: 120}
`)
	tables, err := LoadTables(path)
	require.NoError(t, err)

	short := tables.Templates[domain.TemplateShort]
	require.Len(t, short, 1)
	assert.Equal(t, "Tapas crawl", short[0].Label)
	assert.Len(t, tables.Templates[domain.TemplateDefault], 4)

	s := planner.BuildSkeleton(domain.Budget{Amount: 150, Currency: "EUR"}, "18:00", "20:00", tables)
	require.Len(t, s.Slots, 1)
	assert.Equal(t, 120, s.Slots[0].DurationMin)
}

func TestLoadTables_Invalid(t *testing.T) {
	cases := map[string]string{
		"weights off":     "weights: {rating: 0.9}",
		"short bands":     "price_bands: [{min: 0, max: 10}]",
		"inverted band":   "price_bands: [{min: 0, max: 10}, {min: 10, max: 25}, {min: 50, max: 25}, {min: 50, max: 100}, {min: 100, max: 200}]",
		"multipliers":     "price_multipliers: [1, 1]",
		"template shares": "templates: {DEFAULT: [{label: x, category: dinner, percent: 50, nominal_min: 60}]}",
		"not yaml":        "weights: [",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadTables(writeTables(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadTables_MissingFile(t *testing.T) {
	_, err := LoadTables(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
