package insights

import (
	"errors"
	"fmt"
)

// ErrUnknownField is matched by every *UnknownFieldError via errors.Is.
var ErrUnknownField = errors.New("unknown insights field")

// ErrMalformedMetricValue is matched by every *MalformedMetricValueError via errors.Is.
var ErrMalformedMetricValue = errors.New("malformed metric value")

// UnknownFieldError reports a requested or breakdown-introduced field that
// has no entry in the classification catalog.
type UnknownFieldError struct {
	Name string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown insights field %q", e.Name)
}

func (e *UnknownFieldError) Is(target error) bool {
	return target == ErrUnknownField
}

// MalformedMetricValueError reports a time-series value that is not a number.
type MalformedMetricValueError struct {
	Metric string
	Index  int
	Raw    string
}

func (e *MalformedMetricValueError) Error() string {
	return fmt.Sprintf("metric %q values[%d]: value %s is not numeric", e.Metric, e.Index, e.Raw)
}

func (e *MalformedMetricValueError) Is(target error) bool {
	return target == ErrMalformedMetricValue
}

// TransformError reports a raw value whose JSON shape does not match its
// field category. Snippet holds a bounded rendering of the offending value.
type TransformError struct {
	Field   string
	Snippet string
	Err     error
}

func (e *TransformError) Error() string {
	if e.Snippet != "" {
		return fmt.Sprintf("field %q: %v (raw: %s)", e.Field, e.Err, e.Snippet)
	}
	return fmt.Sprintf("field %q: %v", e.Field, e.Err)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}
