package schema

import (
	"github.com/CreativeUnicorns/simpleprefs"
)

// goTypes maps a declared Go field type, as rendered by go/types.ExprString,
// to the value type it is stored as. Anything not listed is unsupported.
var goTypes = map[string]simpleprefs.ValueType{
	"bool":     simpleprefs.TypeBool,
	"int32":    simpleprefs.TypeInt32,
	"int64":    simpleprefs.TypeInt64,
	"float32":  simpleprefs.TypeFloat32,
	"string":   simpleprefs.TypeString,
	"[]string": simpleprefs.TypeStringSet,
}

// ValueTypeOf returns the value type for a declared Go field type.
func ValueTypeOf(goType string) (simpleprefs.ValueType, bool) {
	vt, ok := goTypes[goType]
	return vt, ok
}

// GoTypeOf returns the Go field type for a value type.
func GoTypeOf(vt simpleprefs.ValueType) (string, bool) {
	for g, t := range goTypes {
		if t == vt {
			return g, true
		}
	}
	return "", false
}

// ResolveDefault returns the default for a field of type vt.
// A nil literal yields the zero value; otherwise the literal is parsed with the type's syntax.
func ResolveDefault(vt simpleprefs.ValueType, literal *string) (any, error) {
	if literal == nil {
		return simpleprefs.ZeroValue(vt)
	}
	return simpleprefs.ParseLiteral(vt, *literal)
}
