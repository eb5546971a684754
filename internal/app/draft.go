package app

import "github.com/alexanderramin/outing/internal/domain"

// OutingDraft is a partially specified outing request, typically parsed
// from free text. Nil and empty fields are unknown.
type OutingDraft struct {
	Budget           *float64 `json:"budget,omitempty" validate:"omitempty,gt=0"`
	Currency         string   `json:"currency,omitempty" validate:"omitempty,len=3,alpha"`
	StartTime        string   `json:"start_time,omitempty" validate:"omitempty,hhmm"`
	EndTime          string   `json:"end_time,omitempty" validate:"omitempty,hhmm"`
	City             string   `json:"city,omitempty"`
	PartySize        *int     `json:"party_size,omitempty" validate:"omitempty,gte=1,lte=20"`
	Vibes            []string `json:"vibes,omitempty"`
	Likes            []string `json:"likes,omitempty"`
	Dietary          []string `json:"dietary,omitempty"`
	AlcoholOK        *bool    `json:"alcohol_ok,omitempty"`
	FamilyFriendly   *bool    `json:"family_friendly,omitempty"`
	Walking          string   `json:"walking,omitempty" validate:"omitempty,oneof=low medium high"`
	IndoorsPreferred *bool    `json:"indoors_preferred,omitempty"`
	Confidence       float64  `json:"confidence" validate:"gte=0,lte=1"`

	// Warnings are notes for the user about how the text was read.
	Warnings []string `json:"-"`
}

// Draft field names, used to record which fields were set explicitly.
const (
	FieldBudget    = "budget"
	FieldCurrency  = "currency"
	FieldStart     = "start"
	FieldEnd       = "end"
	FieldCity      = "city"
	FieldParty     = "party"
	FieldVibe      = "vibe"
	FieldLike      = "like"
	FieldDietary   = "dietary"
	FieldNoAlcohol = "no-alcohol"
	FieldFamily    = "family"
	FieldWalking   = "walking"
	FieldIndoors   = "indoors"
)

// ApplyDraft fills req from d for every field not listed in explicit.
// Explicitly set fields always win over the draft.
func ApplyDraft(req domain.OutingRequest, d OutingDraft, explicit map[string]bool) domain.OutingRequest {
	if !explicit[FieldBudget] && d.Budget != nil {
		req.Budget.Amount = *d.Budget
	}
	if !explicit[FieldCurrency] && d.Currency != "" {
		req.Budget.Currency = d.Currency
	}
	if !explicit[FieldStart] && d.StartTime != "" {
		req.StartTime = d.StartTime
	}
	if !explicit[FieldEnd] && d.EndTime != "" {
		req.EndTime = d.EndTime
	}
	if !explicit[FieldCity] && d.City != "" {
		req.City = d.City
	}
	if !explicit[FieldParty] && d.PartySize != nil {
		req.PartySize = *d.PartySize
	}
	p := &req.Preferences
	if !explicit[FieldVibe] && len(d.Vibes) > 0 {
		p.Vibes = d.Vibes
	}
	if !explicit[FieldLike] && len(d.Likes) > 0 {
		p.Likes = d.Likes
	}
	if !explicit[FieldDietary] && len(d.Dietary) > 0 {
		p.Dietary = d.Dietary
	}
	if !explicit[FieldNoAlcohol] && d.AlcoholOK != nil {
		p.AlcoholOK = *d.AlcoholOK
	}
	if !explicit[FieldFamily] && d.FamilyFriendly != nil {
		p.FamilyFriendly = *d.FamilyFriendly
	}
	if !explicit[FieldWalking] && d.Walking != "" {
		if w, err := domain.ParseWalkingTolerance(d.Walking); err == nil {
			p.Walking = w
		}
	}
	if !explicit[FieldIndoors] && d.IndoorsPreferred != nil {
		p.IndoorsPreferred = *d.IndoorsPreferred
	}
	return req
}
