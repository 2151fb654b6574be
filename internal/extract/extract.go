// Package extract pulls insight rows out of raw response bodies with jq
// expressions.
package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	"github.com/itchyny/gojq"

	"github.com/usestring/adinsights-mcp/pkg/insights"
)

// Extractor selects row objects from a response body.
//
// Rows are resolved by path: the expression runs as path(EXPR) over the
// body, and each path is then followed through a copy decoded with
// json.Decoder.UseNumber so numbers keep their original text. Expressions
// that are not valid paths fall back to their plain output over the same
// copy, so copied numbers still keep their text. Numbers the expression
// computes are re-rendered, which is reported in Result.NumbersNormalized.
type Extractor struct {
	expression string
	paths      *gojq.Code
	values     *gojq.Code
}

// Result holds the rows selected from one body.
type Result struct {
	Rows      []insights.RawObject `json:"-"`
	Errors    []string             `json:"errors,omitempty"`
	Skipped   int                  `json:"skipped"`
	Truncated bool                 `json:"truncated,omitempty"`
	ByPath    bool                 `json:"by_path"`

	// NumbersNormalized is set when a fallback row carries a computed
	// decimal, whose text need not match any source text.
	NumbersNormalized bool `json:"numbers_normalized,omitempty"`
}

// New compiles expression.
func New(expression string) (*Extractor, error) {
	values, err := compile(expression)
	if err != nil {
		return nil, err
	}
	paths, err := compile("path(" + expression + ")")
	if err != nil {
		return nil, err
	}
	return &Extractor{expression: expression, paths: paths, values: values}, nil
}

func compile(expression string) (*gojq.Code, error) {
	query, err := gojq.Parse(expression)
	if err != nil {
		var parseErr *gojq.ParseError
		if errors.As(err, &parseErr) {
			return nil, fmt.Errorf("invalid jq expression at position %d: %w", parseErr.Offset, err)
		}
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq expression: %w", err)
	}
	return code, nil
}

// Expression returns the source expression.
func (e *Extractor) Expression() string {
	return e.expression
}

// Rows selects up to maxRows row objects (0 = unlimited). Selected values
// that are not objects are counted in Skipped.
func (e *Extractor) Rows(ctx context.Context, body []byte, maxRows int) (*Result, error) {
	exact, err := decodeNumbers(body)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}

	result := &Result{ByPath: true}
	add := func(v any) bool {
		obj, ok := v.(map[string]any)
		if !ok {
			result.Skipped++
			return true
		}
		if maxRows > 0 && len(result.Rows) >= maxRows {
			result.Truncated = true
			return false
		}
		result.Rows = append(result.Rows, obj)
		return true
	}

	var selected []any
	iter := e.paths.RunWithContext(ctx, exact)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			if isPathError(err) {
				selected = nil
				result.ByPath = false
				break
			}
			result.Errors = append(result.Errors, formatJQError(err))
			continue
		}
		path, ok := v.([]any)
		if !ok {
			continue
		}
		value, err := follow(exact, path)
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		selected = append(selected, value)
	}

	if !result.ByPath {
		result.Errors = nil
		iter := e.values.RunWithContext(ctx, exact)
		for {
			v, ok := iter.Next()
			if !ok {
				break
			}
			if err, isErr := v.(error); isErr {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return nil, ctxErr
				}
				result.Errors = append(result.Errors, formatJQError(err))
				continue
			}
			selected = append(selected, restoreNumbers(v, &result.NumbersNormalized))
		}
	}

	for _, v := range selected {
		if !add(v) {
			break
		}
	}
	return result, nil
}

func decodeNumbers(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after the top-level value")
	}
	return v, nil
}

// follow walks a jq path (string keys, int indices) through v.
func follow(v any, path []any) (any, error) {
	cur := v
	for _, step := range path {
		switch s := step.(type) {
		case string:
			obj, ok := cur.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("path %v: cannot index %T with %q", path, cur, s)
			}
			cur = obj[s]
		case int:
			arr, ok := cur.([]any)
			if !ok {
				return nil, fmt.Errorf("path %v: cannot index %T with %d", path, cur, s)
			}
			if s < 0 {
				s += len(arr)
			}
			if s < 0 || s >= len(arr) {
				cur = nil
				continue
			}
			cur = arr[s]
		case float64:
			return follow(cur, []any{int(s)})
		default:
			return nil, fmt.Errorf("path %v: unsupported step %v", path, step)
		}
	}
	return cur, nil
}

func isPathError(err error) bool {
	return strings.Contains(err.Error(), "invalid path")
}

// restoreNumbers turns gojq numeric output back into json.Number so the
// row transformer sees the same types on both extraction routes. Copied
// json.Number values pass through; arithmetic yields int, *big.Int or
// float64, and only float64 can lose text, which sets *lossy.
func restoreNumbers(v any, lossy *bool) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, x := range val {
			out[k] = restoreNumbers(x, lossy)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, x := range val {
			out[i] = restoreNumbers(x, lossy)
		}
		return out
	case int:
		return json.Number(strconv.Itoa(val))
	case *big.Int:
		return json.Number(val.String())
	case float64:
		*lossy = true
		return json.Number(strconv.FormatFloat(val, 'f', -1, 64))
	default:
		return v
	}
}

// formatJQError adds hints for common runtime errors. gojq runtime errors
// are untyped, so the hints are picked by message text.
func formatJQError(err error) string {
	var haltErr *gojq.HaltError
	if errors.As(err, &haltErr) {
		if haltErr.Value() == nil {
			return "query halted"
		}
		return fmt.Sprintf("query halted with: %v", haltErr.Value())
	}

	errStr := err.Error()
	var hint string
	switch {
	case strings.Contains(errStr, "cannot iterate over: null"):
		hint = " (the path may not exist in this response)"
	case strings.Contains(errStr, "cannot index") && strings.Contains(errStr, "with"):
		hint = " (field not found or wrong type)"
	case strings.Contains(errStr, "object") && strings.Contains(errStr, "cannot be iterated"):
		hint = " (expected array but got object, try removing '[]')"
	case strings.Contains(errStr, "array") && strings.Contains(errStr, "cannot be indexed"):
		hint = " (expected object but got array, try adding '[]')"
	}
	return errStr + hint
}
