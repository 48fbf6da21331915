package load

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CreativeUnicorns/simpleprefs"
	"github.com/CreativeUnicorns/simpleprefs/schema"
)

func strPtr(s string) *string { return &s }

func holder(name, store string, fields ...FieldDecl) Declaration {
	return Declaration{
		Name:      name,
		Namespace: schema.NewNamespace("example.com/app", "app"),
		Holder:    &Marker{Value: store},
		Fields:    fields,
		Struct:    true,
		Pos:       token.Position{Filename: "app.go", Line: 3, Column: 6},
	}
}

func keyed(name, typ, key string) FieldDecl {
	return FieldDecl{Name: name, Type: typ, Key: &Marker{Value: key}}
}

func TestExtract_UserSettings(t *testing.T) {
	theme := keyed("theme", "string", "")
	theme.Default = strPtr("light")
	volume := keyed("Volume", "int32", " vol ")

	results := Extract([]Declaration{
		holder("UserSettings", "  user_store  ",
			theme,
			volume,
			FieldDecl{Name: "cache", Type: "map[string]int"},
			keyed("Tags", "[]string", "tags"),
		),
	})
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)

	s := results[0].Schema
	assert.Equal(t, "UserSettings", s.SourceType)
	assert.Equal(t, "UserSettingsPrefs", s.GeneratedTypeName())
	assert.Equal(t, "example.com/app.UserSettingsPrefs", s.QualifiedGeneratedTypeName())
	assert.Equal(t, "user_store", s.StoreName)
	assert.Equal(t, 3, s.Pos.Line)

	require.Len(t, s.Fields, 3, "unmarked fields are ignored")

	assert.Equal(t, "theme", s.Fields[0].StoreKey, "empty key argument falls back to the field name")
	assert.Equal(t, "Theme", s.Fields[0].AccessorBaseName)
	assert.Equal(t, simpleprefs.TypeString, s.Fields[0].ValueType)
	assert.Equal(t, "light", s.Fields[0].Default)

	assert.Equal(t, "vol", s.Fields[1].StoreKey, "key argument is trimmed")
	assert.Equal(t, int32(0), s.Fields[1].Default, "no literal means the zero value")

	assert.Equal(t, simpleprefs.TypeStringSet, s.Fields[2].ValueType)
	assert.Equal(t, []string{}, s.Fields[2].Default)
}

func TestExtract_StoreNameDefaulting(t *testing.T) {
	for _, arg := range []string{"", "   ", "\t"} {
		results := Extract([]Declaration{holder("Flags", arg)})
		require.Len(t, results, 1)
		require.NoError(t, results[0].Err)
		assert.Equal(t, simpleprefs.DefaultStoreName, results[0].Schema.StoreName)
		assert.True(t, results[0].Schema.UsesDefaultStore())
	}
}

func TestExtract_SkipsUnmarked(t *testing.T) {
	plain := holder("Plain", "")
	plain.Holder = nil
	results := Extract([]Declaration{plain, holder("Flags", "")})
	require.Len(t, results, 1)
	assert.Equal(t, "Flags", results[0].Decl.Name)
}

func TestExtract_Diagnostics(t *testing.T) {
	badDefault := keyed("On", "bool", "")
	badDefault.Default = strPtr("maybe")
	withOption := keyed("X", "int32", "")
	withOption.Options = []string{"omitempty"}
	nonStruct := holder("Mode", "")
	nonStruct.Struct = false
	generic := holder("Box", "")
	generic.Generic = true

	tests := []struct {
		name     string
		decl     Declaration
		sentinel error
		contains string
	}{
		{
			name:     "unsupported_type",
			decl:     holder("H", "s", keyed("Count", "int", "")),
			sentinel: schema.ErrUnsupportedFieldType,
			contains: "field Count (type int)",
		},
		{
			name:     "complex_type",
			decl:     holder("H", "s", keyed("Profile", "map[string]string", "")),
			sentinel: schema.ErrUnsupportedFieldType,
		},
		{
			name:     "duplicate_key",
			decl:     holder("H", "s", keyed("A", "bool", "same"), keyed("B", "string", "same")),
			sentinel: schema.ErrDuplicateKey,
			contains: "field A and B",
		},
		{
			name:     "duplicate_key_via_field_name",
			decl:     holder("H", "s", keyed("dark", "bool", ""), keyed("Other", "bool", "dark")),
			sentinel: schema.ErrDuplicateKey,
		},
		{
			name:     "bad_default",
			decl:     holder("H", "s", badDefault),
			sentinel: schema.ErrInvalidConfiguration,
			contains: "field On",
		},
		{
			name:     "unknown_option",
			decl:     holder("H", "s", withOption),
			sentinel: schema.ErrInvalidConfiguration,
			contains: "omitempty",
		},
		{
			name:     "non_struct",
			decl:     nonStruct,
			sentinel: schema.ErrInvalidConfiguration,
			contains: "non-struct",
		},
		{
			name:     "generic",
			decl:     generic,
			sentinel: schema.ErrInvalidConfiguration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := Extract([]Declaration{tt.decl})
			require.Len(t, results, 1)
			assert.Nil(t, results[0].Schema)
			require.Error(t, results[0].Err)
			assert.ErrorIs(t, results[0].Err, tt.sentinel)
			if tt.contains != "" {
				assert.Contains(t, results[0].Err.Error(), tt.contains)
			}
		})
	}
}

func TestExtract_FailureIsolated(t *testing.T) {
	results := Extract([]Declaration{
		holder("Good", "a", keyed("On", "bool", "")),
		holder("Bad", "b", keyed("Blob", "[]byte", "")),
		holder("AlsoGood", "", keyed("Name", "string", "")),
	})
	require.Len(t, results, 3)
	assert.NoError(t, results[0].Err)
	assert.True(t, schema.IsUnsupportedFieldType(results[1].Err))
	assert.NoError(t, results[2].Err)
	assert.Equal(t, "AlsoGood", results[2].Schema.SourceType)
}

func TestExtract_DiagnosticPosition(t *testing.T) {
	f := keyed("Count", "uint8", "")
	f.Pos = token.Position{Filename: "app.go", Line: 9, Column: 2}

	results := Extract([]Declaration{holder("H", "s", f)})
	var d *schema.Diagnostic
	require.ErrorAs(t, results[0].Err, &d)
	assert.Equal(t, 9, d.Pos.Line, "field diagnostics point at the field")

	results = Extract([]Declaration{holder("H", "s", keyed("A", "bool", "k"), keyed("B", "bool", "k"))})
	require.ErrorAs(t, results[0].Err, &d)
	assert.Equal(t, "example.com/app.H", d.Decl)
}
