package tools

import (
	"encoding"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// AddTool registers an insights tool. Out is checked with CheckOutputSchema
// first, so a payload the SDK would reject fails at startup instead of on
// the first call that returns it.
func AddTool[In, Out any](srv *sdkmcp.Server, t *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, Out]) {
	CheckOutputSchema[Out](t.Name)
	sdkmcp.AddTool(srv, t, h)
}

var (
	rawMessageType    = reflect.TypeFor[json.RawMessage]()
	jsonMarshalerType = reflect.TypeFor[json.Marshaler]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
)

// wireMismatch is a field whose JSON encoding disagrees with the schema the
// SDK infers from its Go type.
type wireMismatch struct {
	path string
	fix  string
}

// CheckOutputSchema panics when tool output type T cannot round-trip
// through the SDK's structured-output validation:
//
//   - a field's type customizes its JSON (json.RawMessage, SchemaKind,
//     FieldCategory, time.Time), so the inferred schema describes the Go
//     type and not the wire form;
//   - the zero value of T fails the inferred schema, typically a nil slice
//     or map that encodes as null without omitzero.
//
// Untyped any outputs are skipped, as are types the inference cannot handle.
func CheckOutputSchema[T any](toolName string) {
	rt := reflect.TypeFor[T]()
	if rt == reflect.TypeFor[any]() {
		return
	}
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}

	if found := wireMismatches(rt, nil, make(map[reflect.Type]bool)); len(found) > 0 {
		lines := make([]string, 0, len(found))
		for _, m := range found {
			lines = append(lines, fmt.Sprintf("  %s: %s", m.path, m.fix))
		}
		panic(fmt.Sprintf("tool %q: output %s has fields whose JSON differs from their schema:\n%s",
			toolName, rt, strings.Join(lines, "\n")))
	}

	if data, err := zeroValueError(rt); err != nil {
		panic(fmt.Sprintf("tool %q: zero %s fails its output schema: %v\n  JSON: %s\n"+
			"  tag slices and maps that default to nil with omitzero",
			toolName, rt, err, data))
	}
}

// zeroValueError validates the encoded zero value of rt against the schema
// inferred for rt. Inference or encoding failures are not reported here;
// the SDK surfaces those itself when the tool is added.
func zeroValueError(rt reflect.Type) ([]byte, error) {
	schema, err := jsonschema.ForType(rt, &jsonschema.ForOptions{})
	if err != nil {
		return nil, nil
	}
	resolved, err := schema.Resolve(&jsonschema.ResolveOptions{})
	if err != nil {
		return nil, nil
	}
	data, err := json.Marshal(reflect.Zero(rt).Interface())
	if err != nil {
		return nil, nil
	}
	var v map[string]any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, nil
	}
	return data, resolved.Validate(&v)
}

func customEncoding(t reflect.Type) bool {
	pt := reflect.PointerTo(t)
	return t.Implements(jsonMarshalerType) || pt.Implements(jsonMarshalerType) ||
		t.Implements(textMarshalerType) || pt.Implements(textMarshalerType)
}

// wireMismatches walks the exported fields of t. It stops at the first type
// on each path that encodes itself.
func wireMismatches(t reflect.Type, path []string, visiting map[reflect.Type]bool) []wireMismatch {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	here := strings.Join(path, ".")
	switch {
	case t == rawMessageType:
		return []wireMismatch{{here, "use any and fill it with types.ToAny"}}
	case len(path) > 0 && customEncoding(t):
		return []wireMismatch{{here, fmt.Sprintf("%s encodes itself; expose its string form as a plain string", t)}}
	case visiting[t]:
		return nil
	}
	visiting[t] = true
	defer delete(visiting, t)

	var found []wireMismatch
	switch t.Kind() {
	case reflect.Struct:
		for i := range t.NumField() {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			found = append(found, wireMismatches(f.Type, append(path, f.Name), visiting)...)
		}
	case reflect.Slice, reflect.Array:
		found = append(found, wireMismatches(t.Elem(), append(path, "[]"), visiting)...)
	case reflect.Map:
		found = append(found, wireMismatches(t.Elem(), append(path, "[value]"), visiting)...)
	}
	return found
}
