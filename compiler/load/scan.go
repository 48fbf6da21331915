package load

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"reflect"
	"strconv"
	"strings"

	"github.com/CreativeUnicorns/simpleprefs/schema"
)

const (
	// HolderDirective marks a struct type as a preferences holder.
	HolderDirective = "//prefs:holder"
	// KeyTag is the struct tag key marking a persisted field.
	KeyTag = "pref"

	defaultOption = "default="
)

// ParseFile parses one Go source file and scans its type declarations.
// src follows go/parser.ParseFile: nil reads filename from disk.
func ParseFile(fset *token.FileSet, filename string, src any, ns schema.Namespace) ([]Declaration, error) {
	f, err := parser.ParseFile(fset, filename, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return nil, err
	}
	return ScanFiles(fset, ns, f), nil
}

// ScanFiles returns the type declarations of files in source order.
// Generated files are skipped so their own output is never rescanned.
func ScanFiles(fset *token.FileSet, ns schema.Namespace, files ...*ast.File) []Declaration {
	var decls []Declaration
	for _, f := range files {
		if ast.IsGenerated(f) {
			continue
		}
		for _, decl := range f.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts := spec.(*ast.TypeSpec)
				doc := ts.Doc
				if doc == nil && !gd.Lparen.IsValid() {
					doc = gd.Doc
				}
				decls = append(decls, scanType(fset, ns, ts, doc))
			}
		}
	}
	return decls
}

func scanType(fset *token.FileSet, ns schema.Namespace, ts *ast.TypeSpec, doc *ast.CommentGroup) Declaration {
	d := Declaration{
		Name:      ts.Name.Name,
		Namespace: ns,
		Holder:    holderMarker(doc),
		Generic:   ts.TypeParams != nil && len(ts.TypeParams.List) > 0,
		Pos:       fset.Position(ts.Pos()),
	}

	st, ok := ts.Type.(*ast.StructType)
	if !ok {
		return d
	}
	d.Struct = true
	for _, field := range st.Fields.List {
		typ := types.ExprString(field.Type)
		key, def, opts := keyMarker(field.Tag)

		names := field.Names
		if len(names) == 0 {
			names = []*ast.Ident{embeddedName(field.Type)}
		}
		for _, name := range names {
			if name == nil {
				continue
			}
			d.Fields = append(d.Fields, FieldDecl{
				Name:    name.Name,
				Type:    typ,
				Key:     key,
				Default: def,
				Options: opts,
				Pos:     fset.Position(name.Pos()),
			})
		}
	}
	return d
}

// holderMarker returns the holder marker in doc, or nil.
// The directive must start the comment line and be followed by whitespace or nothing.
func holderMarker(doc *ast.CommentGroup) *Marker {
	if doc == nil {
		return nil
	}
	for _, c := range doc.List {
		rest, ok := strings.CutPrefix(c.Text, HolderDirective)
		if !ok {
			continue
		}
		if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
			continue
		}
		return &Marker{Value: strings.TrimSpace(rest)}
	}
	return nil
}

// keyMarker parses `pref:"[storeKey][,default=<literal>]"`.
// default= must come last; its literal runs to the end of the tag.
func keyMarker(tag *ast.BasicLit) (*Marker, *string, []string) {
	if tag == nil {
		return nil, nil, nil
	}
	raw, err := strconv.Unquote(tag.Value)
	if err != nil {
		return nil, nil, nil
	}
	value, ok := reflect.StructTag(raw).Lookup(KeyTag)
	if !ok {
		return nil, nil, nil
	}

	key, rest, _ := strings.Cut(value, ",")
	var (
		def  *string
		opts []string
	)
	for rest != "" {
		if lit, found := strings.CutPrefix(rest, defaultOption); found {
			def = &lit
			break
		}
		var opt string
		opt, rest, _ = strings.Cut(rest, ",")
		if opt = strings.TrimSpace(opt); opt != "" {
			opts = append(opts, opt)
		}
	}
	return &Marker{Value: key}, def, opts
}

func embeddedName(expr ast.Expr) *ast.Ident {
	switch t := expr.(type) {
	case *ast.Ident:
		return t
	case *ast.StarExpr:
		return embeddedName(t.X)
	case *ast.SelectorExpr:
		return t.Sel
	case *ast.IndexExpr:
		return embeddedName(t.X)
	case *ast.IndexListExpr:
		return embeddedName(t.X)
	}
	return nil
}
