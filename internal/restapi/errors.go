package restapi

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rangerclubhouse/clubhouse/internal/shared"
)

// ErrMissingResource is returned when a request body lacks the resource
// wrapper key.
var ErrMissingResource = fmt.Errorf("%w: %s", shared.ErrInvalidArgument, MissingResourceMessage)

// MissingResourceMessage is the client-facing text of ErrMissingResource.
const MissingResourceMessage = "missing resource identifier field"

// ErrMalformedResource is returned when the wrapper key holds something other
// than an object.
var ErrMalformedResource = fmt.Errorf("%w: resource must be an object", shared.ErrInvalidArgument)

// FieldError is one validation failure reported back to the submitter.
type FieldError struct {
	Message string `json:"message"`
	Field   string `json:"field"`
}

// ValidationErrors maps a field name to its failure messages.
type ValidationErrors map[string][]string

// Add appends a message for field.
func (v ValidationErrors) Add(field, message string) {
	v[field] = append(v[field], message)
}

// Empty reports whether no failure was recorded.
func (v ValidationErrors) Empty() bool {
	return len(v) == 0
}

// ValidationErrors lets the map itself be passed to ToRestError.
func (v ValidationErrors) ValidationErrors() ValidationErrors {
	return v
}

// Error implements error so failed validation can travel as an error value.
func (v ValidationErrors) Error() string {
	return fmt.Sprintf("restapi: %d invalid field(s)", len(v))
}

// Is makes ValidationErrors match shared.ErrValidation.
func (v ValidationErrors) Is(target error) bool {
	return target == shared.ErrValidation
}

// Validated is implemented by anything carrying validation failures.
type Validated interface {
	ValidationErrors() ValidationErrors
}

// ToRestError flattens validation failures into message/field pairs ordered
// by field name. No field filtering applies: these are the submitter's own
// errors.
func ToRestError(v Validated) []FieldError {
	if v == nil {
		return nil
	}
	failures := v.ValidationErrors()
	fields := make([]string, 0, len(failures))
	for field := range failures {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	out := make([]FieldError, 0, len(fields))
	for _, field := range fields {
		for _, msg := range failures[field] {
			out = append(out, FieldError{Message: msg, Field: field})
		}
	}
	return out
}

// AsValidationErrors extracts ValidationErrors from err.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		return verrs, true
	}
	return nil, false
}

// ErrorTitle is a transport level error.
type ErrorTitle struct {
	Title string `json:"title"`
}

// ErrorEnvelope is the body of a request level error response.
type ErrorEnvelope struct {
	Errors []ErrorTitle `json:"errors"`
}

// RequestErrors wraps messages into the request error envelope.
func RequestErrors(messages ...string) ErrorEnvelope {
	env := ErrorEnvelope{Errors: make([]ErrorTitle, 0, len(messages))}
	for _, msg := range messages {
		env.Errors = append(env.Errors, ErrorTitle{Title: msg})
	}
	return env
}
