package types

// ValidationResult contains the result of validating a single value.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// FieldInfo is one classified schema field.
type FieldInfo struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Nullable bool   `json:"nullable"`
}

// ColumnInfo is one fixed time-series column.
type ColumnInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// SchemaSummary describes an assembled output schema. Insights schemas list
// Fields; time-series schemas list Columns.
type SchemaSummary struct {
	Kind        string       `json:"kind"`
	Fingerprint string       `json:"fingerprint"`
	Fields      []FieldInfo  `json:"fields,omitzero"`
	Columns     []ColumnInfo `json:"columns,omitzero"`
	Resource    ResourceRef  `json:"resource"`
}
