package domain

import (
	"fmt"
	"strings"
)

type Category string

const (
	CategoryActivity Category = "activity"
	CategoryDinner   Category = "dinner"
	CategoryDrinks   Category = "drinks"
	CategoryDessert  Category = "dessert"
	CategoryFinish   Category = "finish"
	CategoryScenic   Category = "scenic"
	CategoryOther    Category = "other"
)

// ValidCategories is the canonical set of accepted venue categories.
var ValidCategories = map[Category]bool{
	CategoryActivity: true, CategoryDinner: true, CategoryDrinks: true,
	CategoryDessert: true, CategoryFinish: true, CategoryScenic: true,
	CategoryOther: true,
}

// ParseCategory maps a free-form string to a Category, falling back to other.
func ParseCategory(s string) Category {
	c := Category(s)
	if ValidCategories[c] {
		return c
	}
	return CategoryOther
}

type WalkingTolerance string

const (
	WalkingLow    WalkingTolerance = "low"
	WalkingMedium WalkingTolerance = "medium"
	WalkingHigh   WalkingTolerance = "high"
)

func ParseWalkingTolerance(s string) (WalkingTolerance, error) {
	switch w := WalkingTolerance(strings.ToLower(strings.TrimSpace(s))); w {
	case WalkingLow, WalkingMedium, WalkingHigh:
		return w, nil
	}
	return "", fmt.Errorf("invalid walking tolerance %q (want low, medium or high)", s)
}

type PlanID string

const (
	PlanA PlanID = "A"
	PlanB PlanID = "B"
	PlanC PlanID = "C"
)

type SwapTag string

const (
	SwapRainMode     SwapTag = "rain_mode"
	SwapBudgetLower  SwapTag = "budget_lower"
	SwapNoAlcohol    SwapTag = "no_alcohol"
	SwapMoreWalkable SwapTag = "more_walkable"
)

type TemplateName string

const (
	TemplateBudget    TemplateName = "BUDGET"
	TemplateFancy     TemplateName = "FANCY"
	TemplateLateStart TemplateName = "LATE_START"
	TemplateAfternoon TemplateName = "AFTERNOON"
	TemplateShort     TemplateName = "SHORT"
	TemplateDefault   TemplateName = "DEFAULT"
)
