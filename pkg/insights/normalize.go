package insights

// apiNameToSchemaName renames attribution-window keys that start with a
// digit and cannot be used as record field identifiers.
var apiNameToSchemaName = map[string]string{
	"1d_click":  "click_1d",
	"1d_view":   "view_1d",
	"7d_click":  "click_7d",
	"7d_view":   "view_7d",
	"28d_click": "click_28d",
	"28d_view":  "view_28d",
}

// NormalizeFieldName maps an API field name to its schema name.
// Names without a mapping are returned unchanged.
func NormalizeFieldName(name string) string {
	if mapped, ok := apiNameToSchemaName[name]; ok {
		return mapped
	}
	return name
}
