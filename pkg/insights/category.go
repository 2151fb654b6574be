package insights

import "fmt"

// FieldCategory decides how a raw field value is interpreted.
type FieldCategory int

// Field categories. The set is closed.
const (
	CategoryScalarString FieldCategory = iota
	CategoryNestedRecord
	CategoryArrayOfNestedRecord
)

var categoryNames = [...]string{
	CategoryScalarString:        "SCALAR_STRING",
	CategoryNestedRecord:        "NESTED_RECORD",
	CategoryArrayOfNestedRecord: "ARRAY_OF_NESTED_RECORD",
}

func (c FieldCategory) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("FieldCategory(%d)", int(c))
	}
	return categoryNames[c]
}

// MarshalText implements encoding.TextMarshaler.
func (c FieldCategory) MarshalText() ([]byte, error) {
	if c < 0 || int(c) >= len(categoryNames) {
		return nil, fmt.Errorf("unknown field category %d", int(c))
	}
	return []byte(categoryNames[c]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *FieldCategory) UnmarshalText(b []byte) error {
	for i, name := range categoryNames {
		if name == string(b) {
			*c = FieldCategory(i)
			return nil
		}
	}
	return fmt.Errorf("unknown field category %q", string(b))
}

// SchemaField is one classified output field. Classified fields are always
// nullable: the API may omit any of them per response.
type SchemaField struct {
	Name     string        `json:"name"`
	Category FieldCategory `json:"category"`
	Nullable bool          `json:"nullable"`
}
