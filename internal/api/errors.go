package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrValidationFailed means required input was missing or malformed. No request was sent.
	ErrValidationFailed = errors.New("validation failed")
	// ErrUnknownLocation means a location id is not in the cost-of-living table.
	ErrUnknownLocation = errors.New("unknown location")
	// ErrInsufficientData means the analytics service found no cohort for the criteria.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrTransportFailure covers network errors and unexpected upstream responses.
	ErrTransportFailure = errors.New("transport failure")
	// ErrRequestInFlight means the session already has an outstanding comparison.
	ErrRequestInFlight = errors.New("comparison already in progress")
	// ErrPrefillNotFound means a prefill token is unknown or expired.
	ErrPrefillNotFound = errors.New("prefill not found")
)

// User-facing messages. Insufficient data is the expected empty-result case and
// gets a softer wording than a generic failure.
const (
	MsgInsufficientData = "We don't have enough data for this combination of criteria yet. Try broadening your search, for example a nearby location or a different industry."
	MsgTransportFailure = "Comparison failed. Please try again in a moment."
	MsgRequestInFlight  = "A comparison is already running. Please wait for it to finish."
)

// ValidationError names the form field that failed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// StatusFor maps an error from the service layer to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrValidationFailed):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnknownLocation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrInsufficientData):
		return http.StatusNotFound
	case errors.Is(err, ErrPrefillNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrRequestInFlight):
		return http.StatusConflict
	case errors.Is(err, ErrTransportFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage returns the text shown to the user for err.
func UserMessage(err error) string {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		return vErr.Error()
	case errors.Is(err, ErrInsufficientData):
		return MsgInsufficientData
	case errors.Is(err, ErrRequestInFlight):
		return MsgRequestInFlight
	case errors.Is(err, ErrTransportFailure):
		return MsgTransportFailure
	case errors.Is(err, ErrUnknownLocation), errors.Is(err, ErrPrefillNotFound), errors.Is(err, ErrValidationFailed):
		return err.Error()
	default:
		return "Internal server error"
	}
}
