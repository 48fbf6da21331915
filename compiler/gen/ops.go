package gen

import (
	"fmt"
	"math"

	"github.com/dave/jennifer/jen"

	"github.com/CreativeUnicorns/simpleprefs"
)

// typeOps describes how accessors for one value type are rendered:
// the Go type, the Store read and write methods, and the default literal.
type typeOps struct {
	goType  func() *jen.Statement
	read    string
	write   string
	literal func(v any) (jen.Code, error)
}

// ops is keyed by value type. Supporting a new type means adding one entry
// here and one in the runtime codec table.
var ops = map[simpleprefs.ValueType]typeOps{
	simpleprefs.TypeBool: {
		goType:  jen.Bool,
		read:    "GetBool",
		write:   "PutBool",
		literal: scalarLiteral[bool],
	},
	simpleprefs.TypeInt32: {
		goType:  jen.Int32,
		read:    "GetInt32",
		write:   "PutInt32",
		literal: scalarLiteral[int32],
	},
	simpleprefs.TypeInt64: {
		goType:  jen.Int64,
		read:    "GetInt64",
		write:   "PutInt64",
		literal: scalarLiteral[int64],
	},
	simpleprefs.TypeFloat32: {
		goType:  jen.Float32,
		read:    "GetFloat32",
		write:   "PutFloat32",
		literal: floatLiteral,
	},
	simpleprefs.TypeString: {
		goType:  jen.String,
		read:    "GetString",
		write:   "PutString",
		literal: scalarLiteral[string],
	},
	simpleprefs.TypeStringSet: {
		goType: func() *jen.Statement { return jen.Index().String() },
		read:   "GetStringSet",
		write:  "PutStringSet",
		literal: func(v any) (jen.Code, error) {
			set, ok := v.([]string)
			if !ok {
				return nil, fmt.Errorf("default %v is %T, not []string", v, v)
			}
			return jen.Index().String().ValuesFunc(func(g *jen.Group) {
				for _, s := range simpleprefs.NormalizeStringSet(set) {
					g.Lit(s)
				}
			}), nil
		},
	},
}

func scalarLiteral[T bool | int32 | int64 | float32 | string](v any) (jen.Code, error) {
	t, ok := v.(T)
	if !ok {
		var zero T
		return nil, fmt.Errorf("default %v is %T, not %T", v, v, zero)
	}
	return jen.Lit(t), nil
}

// floatLiteral spells NaN and the infinities through package math, which
// jen.Lit cannot express as constants.
func floatLiteral(v any) (jen.Code, error) {
	f, ok := v.(float32)
	if !ok {
		return nil, fmt.Errorf("default %v is %T, not float32", v, v)
	}
	x := float64(f)
	switch {
	case math.IsNaN(x):
		return jen.Float32().Call(jen.Qual("math", "NaN").Call()), nil
	case math.IsInf(x, 1):
		return jen.Float32().Call(jen.Qual("math", "Inf").Call(jen.Lit(1))), nil
	case math.IsInf(x, -1):
		return jen.Float32().Call(jen.Qual("math", "Inf").Call(jen.Lit(-1))), nil
	}
	return jen.Lit(f), nil
}
