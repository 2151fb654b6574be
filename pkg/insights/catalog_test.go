package insights

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_CatalogCategories(t *testing.T) {
	tests := []struct {
		category FieldCategory
		names    []string
	}{
		{CategoryScalarString, scalarFields},
		{CategoryNestedRecord, singleActionFields},
		{CategoryArrayOfNestedRecord, multiActionFields},
	}

	for _, tt := range tests {
		t.Run(tt.category.String(), func(t *testing.T) {
			require.NotEmpty(t, tt.names)
			for _, name := range tt.names {
				f, err := Classify(name)
				require.NoError(t, err, name)
				assert.Equal(t, tt.category, f.Category, name)
				assert.Equal(t, name, f.Name)
				assert.True(t, f.Nullable)
			}
		})
	}
}

func TestClassify_KnownFields(t *testing.T) {
	tests := []struct {
		name     string
		expected FieldCategory
	}{
		{"spend", CategoryScalarString},
		{"impressions", CategoryScalarString},
		{"date_start", CategoryScalarString},
		{"actions_results", CategoryNestedRecord},
		{"cost_per_action_result", CategoryNestedRecord},
		{"actions", CategoryArrayOfNestedRecord},
		{"video_p25_watched_actions", CategoryArrayOfNestedRecord},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Classify(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, f.Category)
		})
	}
}

func TestClassify_UnknownField(t *testing.T) {
	for _, name := range []string{"", "not_a_field", "Spend", "click_1d"} {
		t.Run(name, func(t *testing.T) {
			_, err := Classify(name)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnknownField))

			var unknown *UnknownFieldError
			require.True(t, errors.As(err, &unknown))
			assert.Equal(t, name, unknown.Name)
			assert.Contains(t, err.Error(), `"`+name+`"`)
			assert.False(t, IsClassifiable(name))
		})
	}
}

func TestCatalog_NoDuplicates(t *testing.T) {
	seen := make(map[string]bool)
	for _, e := range fieldCatalog {
		assert.False(t, seen[e.name], "duplicate catalog entry %q", e.name)
		seen[e.name] = true
	}
	assert.Len(t, catalogIndex, len(fieldCatalog))
}

func TestCatalog_Sizes(t *testing.T) {
	assert.Len(t, CatalogNames(CategoryScalarString), 132)
	assert.Len(t, CatalogNames(CategoryNestedRecord), 2)
	assert.Len(t, CatalogNames(CategoryArrayOfNestedRecord), 83)
}

func TestCatalogNames_Sorted(t *testing.T) {
	names := CatalogNames(CategoryNestedRecord)
	assert.Equal(t, []string{"actions_results", "cost_per_action_result"}, names)

	scalars := CatalogNames(CategoryScalarString)
	assert.Len(t, scalars, len(scalarFields))
	assert.IsNonDecreasing(t, scalars)
}

func TestIndexCatalog_PanicsOnConflict(t *testing.T) {
	assert.Panics(t, func() {
		indexCatalog([]catalogEntry{
			{name: "spend", category: CategoryScalarString},
			{name: "spend", category: CategoryNestedRecord},
		})
	})
}

func TestFieldCategory_Text(t *testing.T) {
	f := SchemaField{Name: "actions", Category: CategoryArrayOfNestedRecord, Nullable: true}

	b, err := json.Marshal(f)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"actions","category":"ARRAY_OF_NESTED_RECORD","nullable":true}`, string(b))

	var back SchemaField
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, f, back)

	var c FieldCategory
	assert.Error(t, c.UnmarshalText([]byte("DOUBLE")))
	assert.Equal(t, "FieldCategory(7)", FieldCategory(7).String())
}

func TestNormalizeFieldName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"1d_click", "click_1d"},
		{"1d_view", "view_1d"},
		{"7d_click", "click_7d"},
		{"7d_view", "view_7d"},
		{"28d_click", "click_28d"},
		{"28d_view", "view_28d"},
		{"action_type", "action_type"},
		{"click_1d", "click_1d"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeFieldName(tt.in))
		})
	}

	for _, mapped := range apiNameToSchemaName {
		assert.True(t, IsActionStatAttribute(mapped), mapped)
	}
}

func TestActionStat_Attributes(t *testing.T) {
	attrs := ActionStatAttributes()
	require.Len(t, attrs, 26)
	assert.Equal(t, "click_1d", attrs[0])
	assert.Equal(t, "value", attrs[len(attrs)-1])

	var a ActionStat
	assert.True(t, a.Set("action_type", "like"))
	assert.True(t, a.Set("value", "3"))
	assert.False(t, a.Set("bogus", "x"))

	v, ok := a.Get("action_type")
	assert.True(t, ok)
	assert.Equal(t, "like", v)
	_, ok = a.Get("click_7d")
	assert.False(t, ok)

	assert.Equal(t, map[string]string{"action_type": "like", "value": "3"}, a.Attributes())
	require.NotNil(t, a.ActionType)
	assert.Equal(t, "like", *a.ActionType)
}
