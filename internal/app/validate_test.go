package app

import (
	"errors"
	"testing"

	"github.com/alexanderramin/outing/internal/domain"
	"github.com/alexanderramin/outing/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRequest_Valid(t *testing.T) {
	assert.NoError(t, ValidateRequest(testutil.NewTestRequest()))
}

func TestValidateRequest_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *domain.OutingRequest)
		message string
	}{
		{"zero budget", func(r *domain.OutingRequest) { r.Budget.Amount = 0 }, "budget.amount must be greater than 0"},
		{"negative budget", func(r *domain.OutingRequest) { r.Budget.Amount = -5 }, "budget.amount"},
		{"bad currency", func(r *domain.OutingRequest) { r.Budget.Currency = "EURO" }, "budget.currency must be a three-letter code"},
		{"malformed start", func(r *domain.OutingRequest) { r.StartTime = "6pm" }, `start_time must be HH:MM (got "6pm")`},
		{"out of range end", func(r *domain.OutingRequest) { r.EndTime = "25:00" }, "end_time must be HH:MM"},
		{"missing city", func(r *domain.OutingRequest) { r.City = "" }, "city is required"},
		{"empty party", func(r *domain.OutingRequest) { r.PartySize = 0 }, "party_size must be at least 1"},
		{"bad walking", func(r *domain.OutingRequest) { r.Preferences.Walking = "extreme" }, "preferences.walking must be one of"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.NewTestRequest()
			tt.mutate(&req)

			err := ValidateRequest(req)
			require.Error(t, err)

			var pe *PlanError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, ErrInvalidRequest, pe.Code)
			assert.Contains(t, pe.Message, tt.message)
		})
	}
}

func TestValidateRequest_CollectsEveryFailure(t *testing.T) {
	req := testutil.NewTestRequest()
	req.City = ""
	req.StartTime = "nope"

	err := ValidateRequest(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "city is required")
	assert.Contains(t, err.Error(), "start_time must be HH:MM")
}

func TestValidateRequest_EmptyWalkingAllowed(t *testing.T) {
	req := testutil.NewTestRequest()
	req.Preferences.Walking = ""
	assert.NoError(t, ValidateRequest(req))
}

func TestValidateDraft(t *testing.T) {
	budget := 80.0
	party := 40
	tests := []struct {
		name  string
		draft OutingDraft
		ok    bool
	}{
		{"empty draft", OutingDraft{Confidence: 0.4}, true},
		{"partial draft", OutingDraft{Budget: &budget, City: "Lisbon", StartTime: "19:30", Confidence: 0.9}, true},
		{"bad time", OutingDraft{StartTime: "7pm", Confidence: 0.9}, false},
		{"huge party", OutingDraft{PartySize: &party, Confidence: 0.9}, false},
		{"confidence above one", OutingDraft{Confidence: 1.5}, false},
		{"unknown walking", OutingDraft{Walking: "lots", Confidence: 0.9}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDraft(tt.draft)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
