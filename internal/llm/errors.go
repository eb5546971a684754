package llm

import "errors"

var (
	// ErrUnavailable indicates the model backend is unreachable.
	ErrUnavailable = errors.New("llm backend unavailable")

	// ErrTimeout indicates the LLM request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput indicates the LLM response could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")

	// ErrMissingAPIKey is returned when a hosted provider has no credentials.
	ErrMissingAPIKey = errors.New("llm api key not configured")
)
