// Package apierror holds the failure kinds surfaced by the ForSign client:
// configuration errors, argument errors, API failures (including transport
// failures, status code 0) and validation failures.
package apierror

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrMissingCredential is returned before any network call when no API key is configured.
var ErrMissingCredential = errors.New("credential must be set before making API calls")

// ErrInvalidArgument matches every *ArgumentError through errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrInvalidResponse is the cause of an APIError raised when the expected envelope key is missing.
var ErrInvalidResponse = errors.New("invalid response format from server")

// ArgumentError reports malformed construction input. It never reaches the network.
type ArgumentError struct {
	Field string
	Err   error
}

func (e *ArgumentError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ArgumentError) Unwrap() error { return e.Err }

func (e *ArgumentError) Is(target error) bool { return target == ErrInvalidArgument }

// Argumentf builds an ArgumentError for field with a formatted reason.
func Argumentf(field, format string, args ...any) *ArgumentError {
	return &ArgumentError{Field: field, Err: fmt.Errorf(format, args...)}
}

// Validate runs ozzo rules against value and wraps a failure as an ArgumentError.
func Validate(field string, value any, rules ...validation.Rule) error {
	if err := validation.Validate(value, rules...); err != nil {
		return &ArgumentError{Field: field, Err: err}
	}
	return nil
}

// ValidateStruct wraps validation.ValidateStruct failures as an ArgumentError.
func ValidateStruct(structPtr any, fields ...*validation.FieldRules) error {
	if err := validation.ValidateStruct(structPtr, fields...); err != nil {
		return &ArgumentError{Err: err}
	}
	return nil
}

// APIError is a failed call: an HTTP status >= 400, an unparseable success body,
// or a transport failure (StatusCode 0, cause in Err).
type APIError struct {
	StatusCode    int
	Message       string
	Messages      []any  // Raw messages/errors/error entries from the body
	Snippet       string // Trimmed raw body, at most 800 characters
	CorrelationID string
	Err           error
}

func (e *APIError) Error() string { return e.Message }

func (e *APIError) Unwrap() error { return e.Err }

// IsTransport reports whether the call never got an HTTP response.
func (e *APIError) IsTransport() bool { return e.StatusCode == 0 }

// FormattedMessages renders "key: value" and plain string entries one per line.
func (e *APIError) FormattedMessages() string {
	formatted := make([]string, 0, len(e.Messages))
	for _, m := range e.Messages {
		if key, value, ok := keyValue(m); ok {
			formatted = append(formatted, key+": "+value)
			continue
		}
		if s, ok := m.(string); ok {
			formatted = append(formatted, s)
		}
	}
	return strings.Join(formatted, "\n")
}

// ValidationError is a 422 response carrying a field keyed message list.
type ValidationError struct {
	APIError
}

// Unwrap exposes the embedded APIError so errors.As(err, **APIError) matches.
func (e *ValidationError) Unwrap() error { return &e.APIError }

// Errors maps each {"key": ..., "value": ...} entry to field -> message.
func (e *ValidationError) Errors() map[string]string {
	out := make(map[string]string)
	for _, m := range e.Messages {
		if key, value, ok := keyValue(m); ok {
			out[key] = value
		}
	}
	return out
}

func (e *ValidationError) HasErrorFor(field string) bool {
	_, ok := e.Errors()[field]
	return ok
}

func (e *ValidationError) ErrorFor(field string) (string, bool) {
	msg, ok := e.Errors()[field]
	return msg, ok
}

func keyValue(m any) (string, string, bool) {
	entry, ok := m.(map[string]any)
	if !ok {
		return "", "", false
	}
	key, hasKey := entry["key"]
	value, hasValue := entry["value"]
	if !hasKey || !hasValue || key == nil || value == nil {
		return "", "", false
	}
	return fmt.Sprint(key), fmt.Sprint(value), true
}

// NewInvalidResponse reports a successful call whose body lacks the expected
// envelope key.
func NewInvalidResponse(statusCode int, missingKey, correlationID string) *APIError {
	return &APIError{
		StatusCode:    statusCode,
		Message:       "Invalid response format from server",
		Snippet:       "missing " + missingKey,
		CorrelationID: correlationID,
		Err:           ErrInvalidResponse,
	}
}

// StatusCode returns the HTTP status of an APIError anywhere in err's chain.
func StatusCode(err error) (int, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode, true
	}
	return 0, false
}

// ValidateID rejects identifiers that are not strictly positive.
func ValidateID(field string, id int64) error {
	return Validate(field, id,
		validation.Required.Error("must be greater than zero"),
		validation.Min(int64(1)).Error("must be greater than zero"),
	)
}
