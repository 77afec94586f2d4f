package ai

import (
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/tastevine/v1/pkg/errors"
)

// Parse-failure taxonomy. Every failure path out of the parser carries
// one of these so callers can surface a precise message; no partial or
// guessed records are ever returned.

// ErrNoJSONFound reports that no JSON fragment of the expected shape was
// present in the model response.
var ErrNoJSONFound = errors.New("no valid JSON found in model response")

// ErrModelTimeout reports that the model call exceeded its deadline.
// It is distinct from parse failures: the response never arrived.
var ErrModelTimeout = errors.New("model call timed out")

// MalformedJSONError reports a JSON syntax failure. It carries the
// original response text for diagnostics.
type MalformedJSONError struct {
	Raw string
	Err error
}

func (e *MalformedJSONError) Error() string {
	return fmt.Sprintf("malformed JSON in model response: %v", e.Err)
}

func (e *MalformedJSONError) Unwrap() error {
	return e.Err
}

// MissingFieldsError reports required fields absent from an otherwise
// well-formed response object.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// SchemaError reports a field that is present but has the wrong shape.
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("field %q: %s", e.Field, e.Reason)
}

// ToAppError maps a generation or parse failure to the transport-level
// error taxonomy. Unknown errors become external-service failures.
func ToAppError(err error) *apperrors.AppError {
	var (
		appErr    *apperrors.AppError
		malformed *MalformedJSONError
		missing   *MissingFieldsError
		schema    *SchemaError
	)
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, ErrNoJSONFound):
		return apperrors.NewAppError(apperrors.CodeAINoJSON, "The model response contained no usable JSON", "")
	case errors.Is(err, ErrModelTimeout):
		return apperrors.NewAppError(apperrors.CodeAITimeout, "The model took too long to respond", "")
	case errors.As(err, &malformed):
		return apperrors.NewAppError(apperrors.CodeAIMalformedJSON, "The model response could not be parsed", malformed.Err.Error())
	case errors.As(err, &missing):
		return apperrors.NewAppError(apperrors.CodeAIMissingFields, "The model response was incomplete", missing.Error())
	case errors.As(err, &schema):
		return apperrors.NewAppError(apperrors.CodeAISchema, "The model response had the wrong shape", schema.Error())
	default:
		return apperrors.NewExternalServiceError("model", err)
	}
}

// parseFailureReason labels a parse failure for metrics.
func parseFailureReason(err error) string {
	var (
		malformed *MalformedJSONError
		missing   *MissingFieldsError
		schema    *SchemaError
	)
	switch {
	case errors.Is(err, ErrNoJSONFound):
		return "no_json"
	case errors.As(err, &malformed):
		return "malformed_json"
	case errors.As(err, &missing):
		return "missing_fields"
	case errors.As(err, &schema):
		return "schema"
	default:
		return "other"
	}
}
