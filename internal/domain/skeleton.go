package domain

type Slot struct {
	Label         string   `json:"label"`
	Category      Category `json:"category"`
	BudgetPercent float64  `json:"budget_percent"`
	DurationMin   int      `json:"duration_min"`
	StartTime     string   `json:"start_time"`
}

// Skeleton is the time/budget template of an outing before venues are
// assigned. It is built once per request and never mutated afterwards.
type Skeleton struct {
	Template      TemplateName `json:"template"`
	Budget        Budget       `json:"budget"`
	WindowStart   string       `json:"window_start"`
	WindowMinutes int          `json:"window_minutes"`
	Slots         []Slot       `json:"slots"`
}

// TotalPercent sums the budget share of every slot.
func (s Skeleton) TotalPercent() float64 {
	var total float64
	for _, sl := range s.Slots {
		total += sl.BudgetPercent
	}
	return total
}

// TotalDuration sums the planned duration of every slot.
func (s Skeleton) TotalDuration() int {
	total := 0
	for _, sl := range s.Slots {
		total += sl.DurationMin
	}
	return total
}
