package places

import (
	"errors"
	"fmt"
)

var (
	// ErrBudgetExhausted is returned when a request has used up its
	// allowance for a kind of upstream call.
	ErrBudgetExhausted = errors.New("call budget exhausted")

	// ErrNotFound is returned when the upstream has no match.
	ErrNotFound = errors.New("place not found")

	// ErrRequestDenied covers a missing, invalid or unauthorised API key.
	ErrRequestDenied = errors.New("places request denied")

	// ErrRateLimited maps the upstream OVER_QUERY_LIMIT status.
	ErrRateLimited = errors.New("places rate limited")

	// ErrUpstream covers any other non-OK upstream status.
	ErrUpstream = errors.New("places upstream error")
)

// statusError converts a Google Maps status string to a sentinel error.
func statusError(endpoint, status, message string) error {
	var base error
	switch status {
	case "OK":
		return nil
	case "ZERO_RESULTS", "NOT_FOUND":
		base = ErrNotFound
	case "REQUEST_DENIED":
		base = ErrRequestDenied
	case "OVER_QUERY_LIMIT", "OVER_DAILY_LIMIT":
		base = ErrRateLimited
	default:
		base = ErrUpstream
	}
	if message != "" {
		return fmt.Errorf("%s: %w (%s: %s)", endpoint, base, status, message)
	}
	return fmt.Errorf("%s: %w (%s)", endpoint, base, status)
}
