package core

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidRequest is the sentinel all builder validation errors unwrap to.
// Use errors.Is(err, core.ErrInvalidRequest) to detect a client-side
// validation failure, and errors.As with the concrete types below to branch
// on the specific constraint that was violated.
var ErrInvalidRequest = errors.New("invalid request")

// MissingFieldError reports a required field that was left empty.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("Invalid request: %s cannot be empty", e.Field)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrInvalidRequest
}

// EmptyCollectionError reports a collection that must contain at least one
// element.
type EmptyCollectionError struct {
	Collection string
}

func (e *EmptyCollectionError) Error() string {
	return fmt.Sprintf("Invalid request: At least one %s is required", e.Collection)
}

func (e *EmptyCollectionError) Is(target error) bool {
	return target == ErrInvalidRequest
}

// OutOfRangeError reports a numeric field outside its inclusive [Min, Max]
// range.
type OutOfRangeError struct {
	Field  string
	Min    float64
	Max    float64
	Actual float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("Invalid request: %s must be between %s and %s, got %s",
		e.Field, formatBound(e.Min), formatBound(e.Max),
		strconv.FormatFloat(e.Actual, 'f', -1, 64))
}

func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrInvalidRequest
}

// NotPositiveError reports an integer field that must be strictly positive.
type NotPositiveError struct {
	Field  string
	Actual int
}

func (e *NotPositiveError) Error() string {
	return fmt.Sprintf("Invalid request: %s must be positive, got %d", e.Field, e.Actual)
}

func (e *NotPositiveError) Is(target error) bool {
	return target == ErrInvalidRequest
}

// InvalidRequestError carries a free-form message for structural constraints
// that do not fit the shaped types above (malformed JSON schemas, invalid
// identifier characters, and the like).
type InvalidRequestError struct {
	Message string
}

func (e *InvalidRequestError) Error() string {
	return "Invalid request: " + e.Message
}

func (e *InvalidRequestError) Is(target error) bool {
	return target == ErrInvalidRequest
}

// formatBound renders a numeric bound the way it reads in API docs: whole
// numbers keep one decimal (0.0, 2.0) so range messages stay unambiguous.
func formatBound(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatFloat(f, 'f', 1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ProviderError represents an error returned by the remote API with full
// context for debugging.
type ProviderError struct {
	Status    int
	RequestID string
	Code      string
	Type      string
	Message   string
	Err       error
}

func (e *ProviderError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("openai: %s (status=%d, code=%s, request_id=%s)",
			e.Message, e.Status, e.Code, e.RequestID)
	}
	return fmt.Sprintf("openai: %s (status=%d, code=%s)", e.Message, e.Status, e.Code)
}

// Unwrap returns the classification sentinel for error chaining.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Sentinel errors for classifying provider failures.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrRateLimited  = errors.New("rate limited")
	ErrBadRequest   = errors.New("bad request")
	ErrNotFound     = errors.New("not found")
	ErrServer       = errors.New("server error")
	ErrNetwork      = errors.New("network error")
	ErrDecode       = errors.New("decode error")
)
