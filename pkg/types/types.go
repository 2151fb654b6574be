// Package types provides shared types for adinsights-mcp tool and resource
// payloads. They carry plain strings and numbers so the inferred output
// schemas match what is serialized.
package types

import "encoding/json"

// ToAny round-trips a typed value through JSON to produce an untyped any.
// Use this when a tool output field must be any (instead of json.RawMessage)
// to satisfy the MCP SDK's schema validation.
func ToAny(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ResourceRef points to an MCP resource.
type ResourceRef struct {
	URI  string `json:"uri"`
	MIME string `json:"mime"`
	Hint string `json:"hint,omitempty"`
}

// RunInfo describes a stored transform run.
type RunInfo struct {
	RunID             string      `json:"run_id"`
	CreatedAt         string      `json:"created_at"`
	Kind              string      `json:"kind"`
	SchemaFingerprint string      `json:"schema_fingerprint"`
	Rows              int         `json:"rows"`
	Failures          int         `json:"failures"`
	Resource          ResourceRef `json:"resource"`
}

// RecordFailure is one raw record that did not transform.
type RecordFailure struct {
	Index int    `json:"index"`
	Code  string `json:"code"`
	Error string `json:"error"`
}
