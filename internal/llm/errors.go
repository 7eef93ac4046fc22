package llm

import (
	"errors"
	"fmt"
)

var (
	ErrMissingCredential = errors.New("missing provider api key")
	ErrEmptyPrompt       = errors.New("prompt must not be blank")
	ErrNoChoices         = errors.New("no choices in response")
	ErrUnsupportedModel  = errors.New("unsupported model")
)

// RequestFailedError is returned when a completion request could not be
// served, either because the transport failed, the provider answered with
// a non-success status, or the response payload held no choices.
type RequestFailedError struct {
	Provider string
	Err      error
}

func (e RequestFailedError) Error() string {
	if e.Provider == "" {
		return fmt.Sprintf("request failed: %v", e.Err)
	}
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
}

func (e RequestFailedError) Unwrap() error {
	return e.Err
}
