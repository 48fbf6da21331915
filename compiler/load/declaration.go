// Package load turns marked Go declarations into validated preference schemas.
//
// The scanner in this package reads holder and key markers from Go source;
// Extract validates the resulting declarations one holder at a time.
package load

import (
	"fmt"
	"go/token"
	"strings"

	"github.com/go-openapi/inflect"

	"github.com/CreativeUnicorns/simpleprefs"
	"github.com/CreativeUnicorns/simpleprefs/schema"
)

// Marker is a holder or key marker found on a declaration. Value is its raw argument.
type Marker struct {
	Value string
}

// FieldDecl is one field of a scanned struct type.
type FieldDecl struct {
	Name string
	Type string
	// Key is nil for fields without a key marker; such fields are not persisted.
	Key *Marker
	// Default is the literal following default= in the key marker, if any.
	Default *string
	// Options lists key marker options other than default=.
	Options []string
	Pos     token.Position
}

// Declaration is a scanned type declaration.
type Declaration struct {
	Name      string
	Namespace schema.Namespace
	// Holder is nil for types without a holder marker.
	Holder  *Marker
	Fields  []FieldDecl
	Struct  bool
	Generic bool
	Pos     token.Position
}

// QualifiedName returns the declaration name qualified by its namespace.
func (d Declaration) QualifiedName() string {
	return d.Namespace.Qualify(d.Name)
}

// Result is the outcome of extracting one holder: exactly one of Schema and Err is set.
type Result struct {
	Decl   Declaration
	Schema *schema.PreferenceSchema
	Err    error
}

// Extract builds one Result per holder-marked declaration, in input order.
// Declarations without a holder marker are skipped. A failing holder never
// affects the others.
func Extract(decls []Declaration) []Result {
	var results []Result
	for _, d := range decls {
		if d.Holder == nil {
			continue
		}
		s, err := extract(d)
		results = append(results, Result{Decl: d, Schema: s, Err: err})
	}
	return results
}

func extract(d Declaration) (*schema.PreferenceSchema, error) {
	qualified := d.QualifiedName()

	storeName := strings.TrimSpace(d.Holder.Value)
	if storeName == "" {
		storeName = simpleprefs.DefaultStoreName
	}
	if storeName == "" {
		return nil, schema.At(schema.NewInvalidConfiguration(qualified, "", "store name resolves to an empty string", nil), d.Pos)
	}
	if !d.Struct {
		return nil, schema.At(schema.NewInvalidConfiguration(qualified, "", "holder marker on a non-struct type", nil), d.Pos)
	}
	if d.Generic {
		return nil, schema.At(schema.NewInvalidConfiguration(qualified, "", "holder types cannot have type parameters", nil), d.Pos)
	}

	var fields []schema.KeyField
	for _, fd := range d.Fields {
		if fd.Key == nil {
			continue
		}
		f, err := keyField(qualified, fd)
		if err != nil {
			return nil, schema.At(err, fd.Pos)
		}
		fields = append(fields, f)
	}

	s, err := schema.New(d.Namespace, d.Name, storeName, fields)
	if err != nil {
		return nil, schema.At(err, d.Pos)
	}
	s.Pos = d.Pos
	return s, nil
}

func keyField(decl string, fd FieldDecl) (schema.KeyField, error) {
	if len(fd.Options) > 0 {
		msg := fmt.Sprintf("unknown pref tag option %q", fd.Options[0])
		return schema.KeyField{}, schema.NewInvalidConfiguration(decl, fd.Name, msg, nil)
	}

	vt, ok := schema.ValueTypeOf(fd.Type)
	if !ok {
		return schema.KeyField{}, schema.NewUnsupportedFieldType(decl, fd.Name, fd.Type)
	}

	storeKey := strings.TrimSpace(fd.Key.Value)
	if storeKey == "" {
		storeKey = fd.Name
	}

	def, err := schema.ResolveDefault(vt, fd.Default)
	if err != nil {
		return schema.KeyField{}, schema.NewInvalidConfiguration(decl, fd.Name, "invalid default", err)
	}

	return schema.KeyField{
		Name:             fd.Name,
		StoreKey:         storeKey,
		ValueType:        vt,
		Default:          def,
		AccessorBaseName: inflect.Capitalize(fd.Name),
		Pos:              fd.Pos,
	}, nil
}
