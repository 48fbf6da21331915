// Package schema holds the validated model a preferences holder is compiled into.
//
// A PreferenceSchema is built once by New, which enforces every structural
// invariant, and is treated as read-only by the generator.
package schema

import (
	"fmt"
	"go/token"
	"slices"
	"strings"

	"github.com/CreativeUnicorns/simpleprefs"
)

// GeneratedSuffix is appended to the holder name to form the accessor type name.
const GeneratedSuffix = "Prefs"

// Namespace identifies the package a holder is declared in.
// The zero value is the unnamed namespace, which is distinct from a package
// whose path happens to be empty.
type Namespace struct {
	Path  string
	Name  string
	named bool
}

// NewNamespace returns the namespace of the package with the given import path and name.
func NewNamespace(path, name string) Namespace {
	return Namespace{Path: path, Name: name, named: true}
}

// Unnamed reports whether n is the unnamed namespace.
func (n Namespace) Unnamed() bool { return !n.named }

// PackageName returns the Go package clause name for generated code.
func (n Namespace) PackageName() string {
	if n.Unnamed() || n.Name == "" {
		return "main"
	}
	return n.Name
}

// Qualify returns name qualified by the namespace.
func (n Namespace) Qualify(name string) string {
	switch {
	case n.Unnamed():
		return name
	case n.Path != "":
		return n.Path + "." + name
	default:
		return n.Name + "." + name
	}
}

func (n Namespace) String() string {
	switch {
	case n.Unnamed():
		return "unnamed"
	case n.Path != "":
		return n.Path
	default:
		return n.Name
	}
}

// KeyField is one persisted field of a holder.
type KeyField struct {
	Name             string
	StoreKey         string
	ValueType        simpleprefs.ValueType
	Default          any
	AccessorBaseName string
	Pos              token.Position
}

// GoType returns the Go type accessors use for the field.
func (f KeyField) GoType() string {
	t, _ := GoTypeOf(f.ValueType)
	return t
}

// PreferenceSchema is the validated model of one preferences holder.
type PreferenceSchema struct {
	SourceType          string
	QualifiedSourceType string
	StoreName           string
	Namespace           Namespace
	Fields              []KeyField
	Pos                 token.Position
}

// GeneratedTypeName returns the simple name of the accessor type.
func (s *PreferenceSchema) GeneratedTypeName() string {
	return s.SourceType + GeneratedSuffix
}

// QualifiedGeneratedTypeName returns the namespace-qualified name of the accessor type.
func (s *PreferenceSchema) QualifiedGeneratedTypeName() string {
	return s.QualifiedSourceType + GeneratedSuffix
}

// UsesDefaultStore reports whether accessors resolve the process default store.
func (s *PreferenceSchema) UsesDefaultStore() bool {
	return s.StoreName == simpleprefs.DefaultStoreName
}

// New validates and builds a schema. Fields keep their declaration order.
// Errors are *Diagnostic values.
func New(ns Namespace, sourceType, storeName string, fields []KeyField) (*PreferenceSchema, error) {
	qualified := ns.Qualify(sourceType)

	if !token.IsIdentifier(sourceType) {
		return nil, NewInvalidConfiguration(qualified, "", fmt.Sprintf("%q is not a valid type name", sourceType), nil)
	}
	if strings.TrimSpace(storeName) == "" {
		return nil, NewInvalidConfiguration(qualified, "", "store name resolves to an empty string", nil)
	}

	byKey := make(map[string]string, len(fields))
	byAccessor := make(map[string]string, len(fields))
	for _, f := range fields {
		if err := checkField(qualified, f); err != nil {
			return nil, At(err, f.Pos)
		}
		if other, ok := byKey[f.StoreKey]; ok {
			return nil, At(NewDuplicateKey(qualified, other, f.Name, f.StoreKey), f.Pos)
		}
		byKey[f.StoreKey] = f.Name
		if other, ok := byAccessor[f.AccessorBaseName]; ok {
			msg := fmt.Sprintf("accessor name %q is also produced by field %s", f.AccessorBaseName, other)
			return nil, At(NewInvalidConfiguration(qualified, f.Name, msg, nil), f.Pos)
		}
		byAccessor[f.AccessorBaseName] = f.Name
	}

	return &PreferenceSchema{
		SourceType:          sourceType,
		QualifiedSourceType: qualified,
		StoreName:           storeName,
		Namespace:           ns,
		Fields:              slices.Clone(fields),
	}, nil
}

func checkField(decl string, f KeyField) error {
	if !token.IsIdentifier(f.Name) {
		return NewInvalidConfiguration(decl, f.Name, "field name is not an identifier", nil)
	}
	if !f.ValueType.Valid() {
		return NewUnsupportedFieldType(decl, f.Name, string(f.ValueType))
	}
	if strings.TrimSpace(f.StoreKey) == "" {
		return NewInvalidConfiguration(decl, f.Name, "store key is empty", nil)
	}
	if !token.IsIdentifier(f.AccessorBaseName) {
		return NewInvalidConfiguration(decl, f.Name, fmt.Sprintf("accessor name %q is not an identifier", f.AccessorBaseName), nil)
	}
	if !defaultMatches(f.ValueType, f.Default) {
		return NewInvalidConfiguration(decl, f.Name, fmt.Sprintf("default %v (%T) does not match type %s", f.Default, f.Default, f.ValueType), nil)
	}
	return nil
}

func defaultMatches(vt simpleprefs.ValueType, v any) bool {
	var ok bool
	switch vt {
	case simpleprefs.TypeBool:
		_, ok = v.(bool)
	case simpleprefs.TypeInt32:
		_, ok = v.(int32)
	case simpleprefs.TypeInt64:
		_, ok = v.(int64)
	case simpleprefs.TypeFloat32:
		_, ok = v.(float32)
	case simpleprefs.TypeString:
		_, ok = v.(string)
	case simpleprefs.TypeStringSet:
		_, ok = v.([]string)
	}
	return ok
}
