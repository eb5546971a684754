package domain

type CostRange struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

type Stop struct {
	Time      string    `json:"time"`
	Label     string    `json:"label"`
	Venue     Venue     `json:"venue"`
	Cost      CostRange `json:"cost"`
	TravelMin int       `json:"travel_min"`
	OpenCheck string    `json:"open_check"`
}

type Backup struct {
	Label     string `json:"label"`
	Name      string `json:"name"`
	Link      string `json:"link,omitempty"`
	Rationale string `json:"rationale"`
}

type Plan struct {
	ID      PlanID   `json:"id"`
	Title   string   `json:"title"`
	Stops   []Stop   `json:"stops"`
	Backups []Backup `json:"backups,omitempty"`
}

// TotalCost sums the per-person cost range over all stops.
func (p Plan) TotalCost() CostRange {
	var total CostRange
	for _, s := range p.Stops {
		total.Low += s.Cost.Low
		total.High += s.Cost.High
	}
	return total
}

// PlaceIDs returns the set of venues used by the plan.
func (p Plan) PlaceIDs() map[string]bool {
	ids := make(map[string]bool, len(p.Stops))
	for _, s := range p.Stops {
		ids[s.Venue.PlaceID] = true
	}
	return ids
}

type SwapMenuItem struct {
	Tag         SwapTag `json:"tag"`
	Instruction string  `json:"instruction"`
}
