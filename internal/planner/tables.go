package planner

import "github.com/alexanderramin/outing/internal/domain"

// ScoringWeights are the composite score weights. The defaults sum to 1.
type ScoringWeights struct {
	Rating     float64 `yaml:"rating"`
	Proximity  float64 `yaml:"proximity"`
	PriceMatch float64 `yaml:"price_match"`
	Preference float64 `yaml:"preference"`
	Reviews    float64 `yaml:"reviews"`
}

func DefaultWeights() ScoringWeights {
	return ScoringWeights{
		Rating:     0.30,
		Proximity:  0.25,
		PriceMatch: 0.20,
		Preference: 0.15,
		Reviews:    0.10,
	}
}

// PriceBand is a per-person EUR range for one Places price level.
type PriceBand struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// SlotTemplate is one nominal slot of a skeleton template.
type SlotTemplate struct {
	Label      string          `yaml:"label"`
	Category   domain.Category `yaml:"category"`
	Percent    float64         `yaml:"percent"`
	NominalMin int             `yaml:"nominal_min"`
}

// Tables holds every fixed lookup table used by the planner. Callers
// receive DefaultTables and may override any field, e.g. from YAML.
type Tables struct {
	Weights ScoringWeights `yaml:"weights"`

	// PriceBands is indexed by price level 0..4.
	PriceBands []PriceBand `yaml:"price_bands"`

	// VibeKeywords maps a vibe tag to name keywords that signal it.
	VibeKeywords map[string][]string `yaml:"vibe_keywords"`

	Templates map[domain.TemplateName][]SlotTemplate `yaml:"templates"`

	StandardOrder []domain.Category `yaml:"standard_order"`
	FamilyOrder   []domain.Category `yaml:"family_order"`

	DwellMin map[domain.Category]int `yaml:"dwell_min"`

	// CostShare is the share of the per-person budget spent at a stop of
	// each category.
	CostShare map[domain.Category]float64 `yaml:"cost_share"`

	// PriceMultipliers is indexed by price level 0..4.
	PriceMultipliers []float64 `yaml:"price_multipliers"`

	CategoryLabels map[domain.Category]string `yaml:"category_labels"`

	IndoorActivityKeywords []string `yaml:"indoor_activity_keywords"`
	IndoorFinishKeywords   []string `yaml:"indoor_finish_keywords"`
	NoAlcoholKeywords      []string `yaml:"no_alcohol_keywords"`
}

const (
	defaultTravelMin      = 10
	defaultDwellMin       = 30
	defaultPriceLevel     = 2
	travelBufferMin       = 10
	defaultClusterRadiusM = 1500.0
	budgetPlanFactor      = 0.7
	walkableThresholdMin  = 15.0
)

// DefaultTables returns a fresh copy of the built-in tables.
func DefaultTables() Tables {
	return Tables{
		Weights: DefaultWeights(),
		PriceBands: []PriceBand{
			{Min: 0, Max: 10},
			{Min: 10, Max: 25},
			{Min: 25, Max: 50},
			{Min: 50, Max: 100},
			{Min: 100, Max: 200},
		},
		VibeKeywords: map[string][]string{
			"romantic":    {"romantic", "candle", "wine", "rooftop", "view", "intimate", "bistro"},
			"adventurous": {"escape", "climb", "kayak", "axe", "adventure", "trampoline", "karting"},
			"relaxed":     {"cafe", "garden", "park", "tea", "lounge", "spa"},
			"fancy":       {"fine", "michelin", "champagne", "cocktail", "tasting", "gourmet", "luxury"},
			"playful":     {"arcade", "bowling", "karaoke", "games", "mini golf", "comedy", "board game"},
		},
		Templates: map[domain.TemplateName][]SlotTemplate{
			domain.TemplateBudget: {
				{Label: "Scenic stroll", Category: domain.CategoryScenic, Percent: 5, NominalMin: 30},
				{Label: "Activity", Category: domain.CategoryActivity, Percent: 30, NominalMin: 90},
				{Label: "Dinner", Category: domain.CategoryDinner, Percent: 55, NominalMin: 90},
				{Label: "Dessert", Category: domain.CategoryDessert, Percent: 10, NominalMin: 30},
			},
			domain.TemplateFancy: {
				{Label: "Aperitif", Category: domain.CategoryDrinks, Percent: 12, NominalMin: 45},
				{Label: "Activity", Category: domain.CategoryActivity, Percent: 28, NominalMin: 90},
				{Label: "Dinner", Category: domain.CategoryDinner, Percent: 50, NominalMin: 120},
				{Label: "Nightcap", Category: domain.CategoryDrinks, Percent: 10, NominalMin: 45},
			},
			domain.TemplateLateStart: {
				{Label: "Dinner", Category: domain.CategoryDinner, Percent: 55, NominalMin: 90},
				{Label: "Activity", Category: domain.CategoryActivity, Percent: 25, NominalMin: 60},
				{Label: "Drinks", Category: domain.CategoryDrinks, Percent: 20, NominalMin: 60},
			},
			domain.TemplateAfternoon: {
				{Label: "Drinks", Category: domain.CategoryDrinks, Percent: 15, NominalMin: 45},
				{Label: "Activity", Category: domain.CategoryActivity, Percent: 50, NominalMin: 120},
				{Label: "Early dinner", Category: domain.CategoryDinner, Percent: 35, NominalMin: 90},
			},
			domain.TemplateShort: {
				{Label: "Activity", Category: domain.CategoryActivity, Percent: 40, NominalMin: 40},
				{Label: "Dinner & drinks", Category: domain.CategoryDinner, Percent: 60, NominalMin: 60},
			},
			domain.TemplateDefault: {
				{Label: "Drinks", Category: domain.CategoryDrinks, Percent: 15, NominalMin: 45},
				{Label: "Activity", Category: domain.CategoryActivity, Percent: 25, NominalMin: 90},
				{Label: "Dinner", Category: domain.CategoryDinner, Percent: 50, NominalMin: 90},
				{Label: "Dessert", Category: domain.CategoryDessert, Percent: 10, NominalMin: 30},
			},
		},
		StandardOrder: []domain.Category{
			domain.CategoryDrinks, domain.CategoryActivity, domain.CategoryDinner,
			domain.CategoryDessert, domain.CategoryFinish, domain.CategoryScenic,
		},
		FamilyOrder: []domain.Category{
			domain.CategoryActivity, domain.CategoryDinner, domain.CategoryDessert,
			domain.CategoryScenic, domain.CategoryFinish, domain.CategoryDrinks,
		},
		DwellMin: map[domain.Category]int{
			domain.CategoryDrinks:   45,
			domain.CategoryActivity: 90,
			domain.CategoryDinner:   90,
			domain.CategoryDessert:  30,
			domain.CategoryFinish:   60,
			domain.CategoryScenic:   30,
		},
		CostShare: map[domain.Category]float64{
			domain.CategoryDinner:   0.45,
			domain.CategoryActivity: 0.30,
			domain.CategoryDrinks:   0.15,
			domain.CategoryDessert:  0.10,
			domain.CategoryFinish:   0.15,
			domain.CategoryScenic:   0.05,
		},
		PriceMultipliers: []float64{0.5, 0.75, 1.0, 1.3, 1.6},
		CategoryLabels: map[domain.Category]string{
			domain.CategoryActivity: "Activity",
			domain.CategoryDinner:   "Dinner",
			domain.CategoryDrinks:   "Drinks",
			domain.CategoryDessert:  "Dessert",
			domain.CategoryFinish:   "Finish",
			domain.CategoryScenic:   "Scenic",
			domain.CategoryOther:    "Stop",
		},
		IndoorActivityKeywords: []string{"museum", "gallery", "cinema", "theater", "escape", "bowling", "spa"},
		IndoorFinishKeywords:   []string{"bar", "lounge", "club", "jazz", "cocktail"},
		NoAlcoholKeywords:      []string{"cafe", "café", "coffee", "dessert", "gelato", "ice cream", "tea", "bakery", "patisserie", "chocolate"},
	}
}

func (t Tables) label(c domain.Category) string {
	if l, ok := t.CategoryLabels[c]; ok {
		return l
	}
	return string(c)
}

func (t Tables) dwell(c domain.Category) int {
	if d, ok := t.DwellMin[c]; ok {
		return d
	}
	return defaultDwellMin
}

func (t Tables) multiplier(level int) float64 {
	if level < 0 || level >= len(t.PriceMultipliers) {
		level = defaultPriceLevel
	}
	if level >= len(t.PriceMultipliers) {
		return 1.0
	}
	return t.PriceMultipliers[level]
}
