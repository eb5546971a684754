// Package intent turns free-text outing descriptions into structured drafts
// with the help of an LLM.
package intent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/outing/internal/app"
	"github.com/alexanderramin/outing/internal/llm"
)

type ErrorCode string

const (
	ErrCodeUnavailable   ErrorCode = "LLM_UNAVAILABLE"
	ErrCodeInvalidOutput ErrorCode = "INVALID_OUTPUT_FORMAT"
	ErrCodeEmptyText     ErrorCode = "EMPTY_TEXT"
)

// ParseError is returned when free text cannot be turned into a draft.
type ParseError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Service implements app.IntentUseCase.
type Service struct {
	client    llm.LLMClient
	threshold float64
}

// NewService creates a Service. Drafts with confidence below threshold are
// returned with a warning instead of being rejected.
func NewService(client llm.LLMClient, threshold float64) *Service {
	return &Service{client: client, threshold: threshold}
}

var _ app.IntentUseCase = (*Service)(nil)

func (s *Service) ParseOuting(ctx context.Context, text string) (*app.OutingDraft, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &ParseError{Code: ErrCodeEmptyText, Message: "describe the outing you want to plan"}
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskIntent,
		SystemPrompt: parseOutingPrompt,
		UserPrompt:   text,
	})
	if err != nil {
		code := ErrCodeInvalidOutput
		if errors.Is(err, llm.ErrUnavailable) || errors.Is(err, llm.ErrTimeout) ||
			errors.Is(err, llm.ErrRetryExhausted) || errors.Is(err, llm.ErrMissingAPIKey) {
			code = ErrCodeUnavailable
		}
		return nil, &ParseError{Code: code, Message: "could not reach the language model; use flags instead", Err: err}
	}

	draft, err := llm.ExtractJSON[app.OutingDraft](resp.Text, validateDraft)
	if err != nil {
		return nil, &ParseError{
			Code:    ErrCodeInvalidOutput,
			Message: fmt.Sprintf("failed to extract outing: %v", err),
			Err:     err,
		}
	}

	normalize(&draft)
	if draft.Confidence < s.threshold {
		draft.Warnings = append(draft.Warnings, fmt.Sprintf(
			"low confidence (%.0f%%) reading the description; check the request below", draft.Confidence*100))
	}
	return &draft, nil
}

func validateDraft(d app.OutingDraft) error {
	normalize(&d)
	return app.ValidateDraft(d)
}

// normalize fixes casing the model tends to get wrong.
func normalize(d *app.OutingDraft) {
	d.Currency = strings.ToUpper(strings.TrimSpace(d.Currency))
	d.Walking = strings.ToLower(strings.TrimSpace(d.Walking))
	d.City = strings.TrimSpace(d.City)
	d.StartTime = strings.TrimSpace(d.StartTime)
	d.EndTime = strings.TrimSpace(d.EndTime)
}
