package intent

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/alexanderramin/outing/internal/app"
	"github.com/alexanderramin/outing/internal/llm"
	"github.com/alexanderramin/outing/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockLLMClient struct {
	response string
	err      error
	last     llm.GenerateRequest
}

func (m *mockLLMClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	m.last = req
	if m.err != nil {
		return nil, m.err
	}
	return &llm.GenerateResponse{Text: m.response, Model: "llama3.2"}, nil
}

func (m *mockLLMClient) Available(_ context.Context) bool { return m.err == nil }

func TestParseOuting_FullDescription(t *testing.T) {
	client := &mockLLMClient{response: `{
		"budget": 150, "currency": "eur", "start_time": "19:00", "end_time": "23:30",
		"city": "Lisbon", "party_size": 2, "vibes": ["romantic"], "likes": ["fado"],
		"alcohol_ok": true, "walking": "High", "confidence": 0.92
	}`}
	svc := NewService(client, 0.6)

	draft, err := svc.ParseOuting(context.Background(), "romantic fado night in Lisbon for two, 150 euros, 7pm to 11:30")
	require.NoError(t, err)

	require.NotNil(t, draft.Budget)
	assert.Equal(t, 150.0, *draft.Budget)
	assert.Equal(t, "EUR", draft.Currency)
	assert.Equal(t, "19:00", draft.StartTime)
	assert.Equal(t, "23:30", draft.EndTime)
	assert.Equal(t, "Lisbon", draft.City)
	require.NotNil(t, draft.PartySize)
	assert.Equal(t, 2, *draft.PartySize)
	assert.Equal(t, []string{"romantic"}, draft.Vibes)
	assert.Equal(t, "high", draft.Walking)
	assert.Empty(t, draft.Warnings)

	assert.Equal(t, llm.TaskIntent, client.last.Task)
	assert.Contains(t, client.last.SystemPrompt, "start_time")
}

func TestParseOuting_MarkdownWrappedOutput(t *testing.T) {
	client := &mockLLMClient{response: "Sure!\n```json\n{\"city\": \"Porto\", \"confidence\": .8}\n```"}
	svc := NewService(client, 0.6)

	draft, err := svc.ParseOuting(context.Background(), "something in Porto")
	require.NoError(t, err)
	assert.Equal(t, "Porto", draft.City)
	assert.Nil(t, draft.Budget)
	assert.InDelta(t, 0.8, draft.Confidence, 1e-9)
}

func TestParseOuting_LowConfidenceWarns(t *testing.T) {
	client := &mockLLMClient{response: `{"city": "Lisbon", "confidence": 0.3}`}
	svc := NewService(client, 0.6)

	draft, err := svc.ParseOuting(context.Background(), "something fun maybe")
	require.NoError(t, err)
	require.Len(t, draft.Warnings, 1)
	assert.Contains(t, draft.Warnings[0], "30%")
}

func TestParseOuting_InvalidFieldsRejected(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"not json", "I cannot help with that"},
		{"bad clock", `{"start_time": "7pm", "confidence": 0.9}`},
		{"negative budget", `{"budget": -20, "confidence": 0.9}`},
		{"confidence out of range", `{"confidence": 3}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&mockLLMClient{response: tt.response}, 0.6)

			_, err := svc.ParseOuting(context.Background(), "dinner tonight")
			require.Error(t, err)
			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, ErrCodeInvalidOutput, pe.Code)
		})
	}
}

func TestParseOuting_LLMUnavailable(t *testing.T) {
	client := &mockLLMClient{err: fmt.Errorf("dial: %w", llm.ErrUnavailable)}
	svc := NewService(client, 0.6)

	_, err := svc.ParseOuting(context.Background(), "drinks in Lisbon")
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, ErrCodeUnavailable, pe.Code)
	assert.ErrorIs(t, err, llm.ErrUnavailable)
}

func TestParseOuting_EmptyText(t *testing.T) {
	client := &mockLLMClient{response: `{"confidence": 1}`}
	svc := NewService(client, 0.6)

	_, err := svc.ParseOuting(context.Background(), "   ")
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, ErrCodeEmptyText, pe.Code)
	assert.Empty(t, client.last.UserPrompt, "no LLM call for empty text")
}

func TestParseOuting_DraftAppliesUnderFlags(t *testing.T) {
	client := &mockLLMClient{response: `{"budget": 90, "city": "Porto", "start_time": "20:00", "confidence": 0.9}`}
	svc := NewService(client, 0.6)

	draft, err := svc.ParseOuting(context.Background(), "90 euros in Porto from 8pm")
	require.NoError(t, err)

	base := testutil.NewTestRequest()
	base.City = "Braga"
	merged := app.ApplyDraft(base, *draft, map[string]bool{app.FieldCity: true})

	assert.Equal(t, "Braga", merged.City, "explicit flag wins")
	assert.Equal(t, 90.0, merged.Budget.Amount)
	assert.Equal(t, "20:00", merged.StartTime)
}
