package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/usestring/adinsights-mcp/pkg/insights"
)

// Error codes for MCP tool responses.
const (
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeUnknownField      = "UNKNOWN_FIELD"
	ErrCodeMalformedResponse = "MALFORMED_RESPONSE"
	ErrCodeTimeout           = "TIMEOUT"
)

// Next steps a caller can take for a coded failure.
const (
	hintListCatalog   = "call insights_classify_fields with list_catalog=true for known names"
	hintCheckResponse = "check rows_expression and the per-record failures of insights_transform"
	hintListRuns      = "runs are evicted oldest first; call insights_query_rows without run_id to list them"
)

// CodedError is an error with an associated error code and an optional hint
// pointing the caller at the tool that resolves it.
type CodedError struct {
	Code    string
	Message string
	Hint    string
	Cause   error
}

func (e *CodedError) Error() string {
	msg := e.Code + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	if e.Hint != "" {
		msg += " (" + e.Hint + ")"
	}
	return msg
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// WrapInsightsError maps an error from the insights core to a coded error.
func WrapInsightsError(err error) error {
	if err == nil {
		return nil
	}
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded
	}

	var transformErr *insights.TransformError
	switch {
	case errors.Is(err, insights.ErrUnknownField):
		coded = &CodedError{Code: ErrCodeUnknownField, Message: "field cannot be classified", Hint: hintListCatalog, Cause: err}
	case errors.Is(err, insights.ErrMalformedMetricValue), errors.As(err, &transformErr):
		coded = &CodedError{Code: ErrCodeMalformedResponse, Message: "response does not match schema", Hint: hintCheckResponse, Cause: err}
	case errors.Is(err, context.DeadlineExceeded):
		coded = &CodedError{Code: ErrCodeTimeout, Message: "request timed out", Cause: err}
	default:
		coded = &CodedError{Code: ErrCodeInvalidInput, Message: err.Error()}
	}

	slog.Debug("insights error",
		slog.String("code", coded.Code),
		slog.String("error", err.Error()),
	)
	return coded
}

// ErrNotFound reports a missing schema or run.
func ErrNotFound(resource, id string) error {
	e := &CodedError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, id),
	}
	if resource == "run" {
		e.Hint = hintListRuns
	}
	return e
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string) error {
	return &CodedError{
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}
