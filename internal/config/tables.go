package config

import (
	"fmt"
	"math"
	"os"

	"github.com/alexanderramin/outing/internal/planner"
	"gopkg.in/yaml.v3"
)

// LoadTables returns the default planner tables with the YAML file at path
// laid over them. An empty path returns the defaults. Keys absent from the
// file keep their default values; lists present in the file replace the
// default list.
func LoadTables(path string) (planner.Tables, error) {
	tables := planner.DefaultTables()
	if path == "" {
		return tables, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return planner.Tables{}, fmt.Errorf("reading tables %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return planner.Tables{}, fmt.Errorf("parsing tables %s: %w", path, err)
	}
	if err := ValidateTables(tables); err != nil {
		return planner.Tables{}, fmt.Errorf("tables %s: %w", path, err)
	}
	return tables, nil
}

// ValidateTables checks the structural rules the planner relies on.
func ValidateTables(t planner.Tables) error {
	w := t.Weights
	sum := w.Rating + w.Proximity + w.PriceMatch + w.Preference + w.Reviews
	if math.Abs(sum-1) > 0.001 {
		return fmt.Errorf("scoring weights must sum to 1, got %.3f", sum)
	}
	for _, v := range []float64{w.Rating, w.Proximity, w.PriceMatch, w.Preference, w.Reviews} {
		if v < 0 {
			return fmt.Errorf("scoring weights must be non-negative")
		}
	}
	if len(t.PriceBands) != 5 {
		return fmt.Errorf("price_bands needs 5 entries (levels 0-4), got %d", len(t.PriceBands))
	}
	for i, b := range t.PriceBands {
		if b.Max < b.Min {
			return fmt.Errorf("price band %d has max below min", i)
		}
	}
	if len(t.PriceMultipliers) != 5 {
		return fmt.Errorf("price_multipliers needs 5 entries (levels 0-4), got %d", len(t.PriceMultipliers))
	}
	for name, slots := range t.Templates {
		if len(slots) == 0 {
			return fmt.Errorf("template %s has no slots", name)
		}
		total := 0.0
		for _, s := range slots {
			total += s.Percent
		}
		if total < 95 || total > 105 {
			return fmt.Errorf("template %s budget shares sum to %.0f%%, want 95-105%%", name, total)
		}
	}
	return nil
}
