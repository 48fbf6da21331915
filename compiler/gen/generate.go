package gen

import (
	"bytes"
	"fmt"

	"github.com/dave/jennifer/jen"
	"github.com/go-openapi/inflect"
	"golang.org/x/tools/imports"

	"github.com/CreativeUnicorns/simpleprefs"
	"github.com/CreativeUnicorns/simpleprefs/schema"
)

const (
	// DefaultHeader is the header comment placed at the top of every generated file.
	DefaultHeader = "Code generated by prefsgen. DO NOT EDIT."
	// DefaultRuntimePackage is the import path of the runtime generated code calls into.
	DefaultRuntimePackage = "github.com/CreativeUnicorns/simpleprefs"
)

// SourceUnit is one rendered accessor file.
type SourceUnit struct {
	Namespace schema.Namespace
	TypeName  string
	FileName  string
	Body      []byte
}

// Generator renders schemas into Go source.
// The zero value uses DefaultHeader and DefaultRuntimePackage.
type Generator struct {
	Header         string
	RuntimePackage string
}

// Generate renders s with a zero Generator.
func Generate(s *schema.PreferenceSchema) (*SourceUnit, error) {
	return (&Generator{}).Generate(s)
}

// FileName returns the name of the file holding the accessor type typeName.
func FileName(typeName string) string {
	return inflect.Underscore(typeName) + ".go"
}

// Generate renders the accessor type for s. The output is gofmt'ed and
// depends only on s, so repeated calls produce identical bytes.
func (g *Generator) Generate(s *schema.PreferenceSchema) (*SourceUnit, error) {
	typeName := s.GeneratedTypeName()
	fileName := FileName(typeName)

	f, err := g.file(s)
	if err != nil {
		return nil, NewGenerationError("render", fileName, s.QualifiedGeneratedTypeName(), err)
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, NewGenerationError("render", fileName, s.QualifiedGeneratedTypeName(), err)
	}
	body, err := imports.Process(fileName, buf.Bytes(), nil)
	if err != nil {
		return nil, NewGenerationError("format", fileName, s.QualifiedGeneratedTypeName(), err)
	}

	return &SourceUnit{
		Namespace: s.Namespace,
		TypeName:  typeName,
		FileName:  fileName,
		Body:      body,
	}, nil
}

func (g *Generator) header() string {
	if g.Header != "" {
		return g.Header
	}
	return DefaultHeader
}

func (g *Generator) runtime() string {
	if g.RuntimePackage != "" {
		return g.RuntimePackage
	}
	return DefaultRuntimePackage
}

func (g *Generator) file(s *schema.PreferenceSchema) (*jen.File, error) {
	rt := g.runtime()
	name := s.GeneratedTypeName()
	handle := handleField(s)

	f := jen.NewFile(s.Namespace.PackageName())
	f.HeaderComment(g.header())
	f.ImportName(rt, "simpleprefs")

	if s.UsesDefaultStore() {
		f.Commentf("%s provides typed access to the %s preferences in the default store.", name, s.SourceType)
	} else {
		f.Commentf("%s provides typed access to the %s preferences in the %q store.", name, s.SourceType, s.StoreName)
	}
	f.Type().Id(name).Struct(
		jen.Id(s.SourceType),
		jen.Id(handle).Op("*").Qual(rt, "Store"),
	)

	resolve := jen.Id("pc").Dot("DefaultStore").Call()
	if !s.UsesDefaultStore() {
		resolve = jen.Id("pc").Dot("NamedStore").Call(jen.Lit(s.StoreName))
	}

	f.Line()
	f.Commentf("New%s binds the accessor to the store resolved from pc.", name)
	f.Func().Id("New"+name).
		Params(jen.Id("pc").Qual(rt, "StoreContext")).
		Params(jen.Op("*").Id(name), jen.Error()).
		Block(
			nullContextGuard(rt),
			jen.List(jen.Id("store"), jen.Err()).Op(":=").Add(resolve),
			jen.If(jen.Err().Op("!=").Nil()).Block(
				jen.Return(jen.Nil(), jen.Err()),
			),
			jen.Return(jen.Op("&").Id(name).Values(jen.Id(handle).Op(":").Id("store")), jen.Nil()),
		)

	f.Line()
	f.Commentf("Create%s is a factory for New%s.", name, name)
	f.Func().Id("Create"+name).
		Params(jen.Id("pc").Qual(rt, "StoreContext")).
		Params(jen.Op("*").Id(name), jen.Error()).
		Block(
			nullContextGuard(rt),
			jen.Return(jen.Id("New"+name).Call(jen.Id("pc"))),
		)

	f.Line()
	f.Comment("Clear removes every preference in the backing store.")
	f.Func().Params(jen.Id("p").Op("*").Id(name)).Id("Clear").
		Params(ctxParam()).
		Error().
		Block(
			jen.Return(jen.Id("p").Dot(handle).Dot("Clear").Call(jen.Id("ctx"))),
		)

	for _, field := range s.Fields {
		if err := accessors(f, name, handle, field); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func accessors(f *jen.File, name, handle string, field schema.KeyField) error {
	op, ok := ops[field.ValueType]
	if !ok {
		return fmt.Errorf("field %s: %w: %s", field.Name, simpleprefs.ErrInvalidType, field.ValueType)
	}
	def, err := op.literal(field.Default)
	if err != nil {
		return fmt.Errorf("field %s: %w", field.Name, err)
	}

	recv := jen.Id("p").Op("*").Id(name)
	key := jen.Lit(field.StoreKey)
	base := field.AccessorBaseName
	store := func() *jen.Statement { return jen.Id("p").Dot(handle) }

	f.Line()
	f.Commentf("Get%s returns the %q preference, or its default when unset.", base, field.StoreKey)
	f.Func().Params(recv.Clone()).Id("Get"+base).
		Params(ctxParam()).
		Params(op.goType(), jen.Error()).
		Block(
			jen.Return(store().Dot(op.read).Call(jen.Id("ctx"), key.Clone(), def)),
		)

	f.Line()
	f.Commentf("Set%s stores the %q preference.", base, field.StoreKey)
	f.Func().Params(recv.Clone()).Id("Set"+base).
		Params(ctxParam(), jen.Id("value").Add(op.goType())).
		Error().
		Block(
			jen.Return(store().Dot(op.write).Call(jen.Id("ctx"), key.Clone(), jen.Id("value"))),
		)

	f.Line()
	f.Commentf("Has%s reports whether the %q preference has been stored.", base, field.StoreKey)
	f.Func().Params(recv.Clone()).Id("Has"+base).
		Params(ctxParam()).
		Params(jen.Bool(), jen.Error()).
		Block(
			jen.Return(store().Dot("Contains").Call(jen.Id("ctx"), key.Clone())),
		)

	f.Line()
	f.Commentf("Remove%s deletes the %q preference so Get%s returns the default again.", base, field.StoreKey, base)
	f.Func().Params(recv.Clone()).Id("Remove"+base).
		Params(ctxParam()).
		Error().
		Block(
			jen.Return(store().Dot("Remove").Call(jen.Id("ctx"), key.Clone())),
		)
	return nil
}

func nullContextGuard(rt string) jen.Code {
	return jen.If(jen.Id("pc").Op("==").Nil()).Block(
		jen.Return(jen.Nil(), jen.Qual(rt, "ErrNullContext")),
	)
}

func ctxParam() jen.Code {
	return jen.Id("ctx").Qual("context", "Context")
}

// handleField picks the name of the unexported store field so it never
// shadows the embedded holder.
func handleField(s *schema.PreferenceSchema) string {
	handle := "prefs"
	for handle == s.SourceType || fieldNamed(s, handle) {
		handle += "Store"
	}
	return handle
}

func fieldNamed(s *schema.PreferenceSchema, name string) bool {
	for _, f := range s.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}
