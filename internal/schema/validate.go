// Package schema checks transformed records against the JSON Schema
// document advertised for their insights schema.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/usestring/adinsights-mcp/pkg/insights"
	"github.com/usestring/adinsights-mcp/pkg/types"
)

// RecordValidator validates output rows against a compiled schema document.
type RecordValidator struct {
	fingerprint string
	schema      *jsonschema.Schema
}

// NewRecordValidator compiles the JSON Schema rendering of s.
func NewRecordValidator(s *insights.Schema) (*RecordValidator, error) {
	doc, err := json.Marshal(s.JSONSchema())
	if err != nil {
		return nil, fmt.Errorf("marshaling schema: %w", err)
	}
	compiled, err := compile(s.Fingerprint()+".json", doc)
	if err != nil {
		return nil, err
	}
	return &RecordValidator{fingerprint: s.Fingerprint(), schema: compiled}, nil
}

func compile(name string, doc []byte) (*jsonschema.Schema, error) {
	// The compiler wants a decoded JSON value, not raw bytes.
	value, err := jsonschema.UnmarshalJSON(bytes.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("unmarshaling schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, value); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}
	return compiled, nil
}

// Fingerprint identifies the schema this validator was compiled from.
func (v *RecordValidator) Fingerprint() string {
	return v.fingerprint
}

// ValidateRow validates one transformed row.
func (v *RecordValidator) ValidateRow(row insights.Row) *types.ValidationResult {
	data, err := json.Marshal(row)
	if err != nil {
		return &types.ValidationResult{
			Valid:  false,
			Errors: []string{fmt.Sprintf("encoding row: %s", err.Error())},
		}
	}
	return v.Validate(data)
}

// Validate validates an encoded record.
func (v *RecordValidator) Validate(data []byte) *types.ValidationResult {
	value, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return &types.ValidationResult{
			Valid:  false,
			Errors: []string{fmt.Sprintf("invalid JSON: %s", err.Error())},
		}
	}

	if err := v.schema.Validate(value); err != nil {
		return &types.ValidationResult{
			Valid:  false,
			Errors: extractValidationErrors(err),
		}
	}
	return &types.ValidationResult{Valid: true}
}

// extractValidationErrors extracts human-readable error messages from a validation error.
func extractValidationErrors(err error) []string {
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) {
		return extractDetailedErrors(validationErr)
	}
	return []string{err.Error()}
}

// printer is a default English printer for localized error messages.
var printer = message.NewPrinter(language.English)

func extractDetailedErrors(err *jsonschema.ValidationError) []string {
	errorsByPath := make(map[string][]string)
	collectErrors(err, errorsByPath)

	paths := make([]string, 0, len(errorsByPath))
	for p := range errorsByPath {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var result []string
	for _, path := range paths {
		seen := make(map[string]bool)
		for _, msg := range errorsByPath[path] {
			if seen[msg] {
				continue
			}
			seen[msg] = true
			if path != "" {
				result = append(result, fmt.Sprintf("%s: %s", path, msg))
			} else {
				result = append(result, msg)
			}
		}
	}
	return result
}

// collectErrors collects leaf errors (those without causes).
func collectErrors(err *jsonschema.ValidationError, errorsByPath map[string][]string) {
	instancePath := ""
	if len(err.InstanceLocation) > 0 {
		instancePath = "/" + strings.Join(err.InstanceLocation, "/")
	}

	if err.ErrorKind != nil && len(err.Causes) == 0 {
		msg := err.ErrorKind.LocalizedString(printer)
		// $ref and anyOf wrappers carry no useful detail.
		if !strings.HasPrefix(msg, "$ref ") && !strings.HasPrefix(msg, "doesn't validate with") {
			errorsByPath[instancePath] = append(errorsByPath[instancePath], msg)
		}
	}

	for _, cause := range err.Causes {
		collectErrors(cause, errorsByPath)
	}
}
