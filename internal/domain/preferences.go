package domain

type Preferences struct {
	Vibes            []string         `json:"vibes,omitempty"`
	Likes            []string         `json:"likes,omitempty"`
	Dietary          []string         `json:"dietary,omitempty"`
	AlcoholOK        bool             `json:"alcohol_ok"`
	FamilyFriendly   bool             `json:"family_friendly"`
	Walking          WalkingTolerance `json:"walking,omitempty" validate:"omitempty,oneof=low medium high"`
	IndoorsPreferred bool             `json:"indoors_preferred"`
}

// DefaultPreferences is a neutral adult outing: alcohol fine, medium walking.
func DefaultPreferences() Preferences {
	return Preferences{
		AlcoholOK: true,
		Walking:   WalkingMedium,
	}
}

type Budget struct {
	Amount   float64 `json:"amount" validate:"gt=0"`
	Currency string  `json:"currency" validate:"len=3,alpha"`
}

// OutingRequest is the fully structured form of one planning request.
type OutingRequest struct {
	Budget      Budget      `json:"budget" validate:"required"`
	StartTime   string      `json:"start_time" validate:"required,hhmm"`
	EndTime     string      `json:"end_time" validate:"required,hhmm"`
	City        string      `json:"city" validate:"required"`
	PartySize   int         `json:"party_size" validate:"gte=1,lte=20"`
	Preferences Preferences `json:"preferences"`
}

// PerPerson splits the total budget across the party, defaulting to a pair.
func (r OutingRequest) PerPerson() float64 {
	n := r.PartySize
	if n <= 0 {
		n = 2
	}
	return r.Budget.Amount / float64(n)
}
