package planner

import (
	"errors"
	"fmt"
)

// --- Error Definitions ---
// Every error carries a message that can be shown to the user as is.
var (
	ErrConfiguration  = errors.New("API key is required. Please add your Anthropic API key in settings.")
	ErrAuthentication = errors.New("Invalid API key. Please check your Anthropic API key in settings.")
	ErrRateLimited    = errors.New("Rate limit exceeded. Please wait a moment and try again.")
	ErrEmptyResponse  = errors.New("No response received from the API")
	ErrMalformedPlan  = errors.New("The generated workout plan could not be read. Please try again.")
)

// UpstreamError is any other non-2xx answer from the completions endpoint,
// or a transport failure (Status 0).
type UpstreamError struct {
	Status  int
	Message string // Server-reported message, if any
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("API request failed: %d", e.Status)
}
