// Package jsoncompact bounds decoded JSON values for log lines and error
// messages by trimming arrays, strings and depth.
package jsoncompact

import (
	"encoding/json"
	"fmt"
)

// Options controls compaction.
type Options struct {
	MaxArrayItems int // Trim arrays to N items (0 = no limit)
	MaxStringLen  int // Truncate strings longer than N chars (0 = no limit)
	MaxDepth      int // Max recursion depth (0 = unlimited)
	MaxBytes      int // Cap on the rendered snippet (0 = no limit)
}

// Default values for compaction options.
const (
	DefaultMaxArrayItems = 3
	DefaultMaxStringLen  = 120
	DefaultMaxDepth      = 4
	DefaultMaxBytes      = 512
)

// DefaultOptions returns the default compaction settings.
func DefaultOptions() *Options {
	return &Options{
		MaxArrayItems: DefaultMaxArrayItems,
		MaxStringLen:  DefaultMaxStringLen,
		MaxDepth:      DefaultMaxDepth,
		MaxBytes:      DefaultMaxBytes,
	}
}

// CompactValue compacts a decoded JSON value. Numbers decoded with
// json.Decoder.UseNumber are kept as json.Number.
// If opts is nil, DefaultOptions() is used.
func CompactValue(v any, opts *Options) any {
	if opts == nil {
		opts = DefaultOptions()
	}
	return compactRecursive(v, opts, 0)
}

// Snippet renders a compacted value as a single-line JSON string suitable
// for error context. It never fails; unencodable values fall back to %v.
func Snippet(v any, opts *Options) string {
	if opts == nil {
		opts = DefaultOptions()
	}
	b, err := json.Marshal(compactRecursive(v, opts, 0))
	s := string(b)
	if err != nil {
		s = fmt.Sprintf("%v", v)
	}
	if opts.MaxBytes > 0 && len(s) > opts.MaxBytes {
		s = s[:opts.MaxBytes] + "..."
	}
	return s
}

func compactRecursive(v any, opts *Options, depth int) any {
	if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
		switch v.(type) {
		case []any, map[string]any:
			return "[max depth]"
		}
	}

	switch val := v.(type) {
	case []any:
		return compactArray(val, opts, depth)
	case map[string]any:
		return compactObject(val, opts, depth)
	case string:
		return compactString(val, opts)
	default:
		return v
	}
}

func compactString(s string, opts *Options) string {
	if opts.MaxStringLen <= 0 || len(s) <= opts.MaxStringLen {
		return s
	}
	return s[:opts.MaxStringLen] + fmt.Sprintf("... (%d more chars)", len(s)-opts.MaxStringLen)
}

func compactArray(arr []any, opts *Options, depth int) []any {
	n := len(arr)
	if opts.MaxArrayItems > 0 && n > opts.MaxArrayItems {
		n = opts.MaxArrayItems
	}
	result := make([]any, 0, n+1)
	for _, item := range arr[:n] {
		result = append(result, compactRecursive(item, opts, depth+1))
	}
	if n < len(arr) {
		result = append(result, fmt.Sprintf("... (%d more items)", len(arr)-n))
	}
	return result
}

func compactObject(obj map[string]any, opts *Options, depth int) map[string]any {
	result := make(map[string]any, len(obj))
	for k, v := range obj {
		result[k] = compactRecursive(v, opts, depth+1)
	}
	return result
}
