package activity

import (
	"errors"
	"fmt"
)

// NoMaterialsMessage is the caller-facing message for ErrInvalidInput.
const NoMaterialsMessage = "No materials provided"

var (
	// ErrInvalidInput indicates the request carried no usable material names.
	ErrInvalidInput = errors.New("no materials provided")
	// ErrUpstreamUnavailable indicates the generation service could not be reached or refused the call.
	ErrUpstreamUnavailable = errors.New("generation service unavailable")
	// ErrMalformedResponse indicates the generation service answered with text that is not a usable activity.
	ErrMalformedResponse = errors.New("malformed generation response")
)

// ParseError describes why raw generation text could not be turned into an Activity.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrMalformedResponse, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrMalformedResponse, e.Reason)
}

func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformedResponse, e.Err}
	}
	return []error{ErrMalformedResponse}
}

func parseError(reason string, err error) *ParseError {
	return &ParseError{Reason: reason, Err: err}
}
