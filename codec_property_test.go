package simpleprefs

import (
	"slices"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func roundTrips(t ValueType, v any) bool {
	s, err := EncodeValue(t, v)
	if err != nil {
		return false
	}
	got, err := DecodeValue(t, s)
	if err != nil {
		return false
	}
	return got == v
}

// TestCodecRoundTripProperty checks that every scalar decodes to the value it was encoded from.
func TestCodecRoundTripProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("int32 round trips", prop.ForAll(
		func(v int32) bool { return roundTrips(TypeInt32, v) },
		gen.Int32(),
	))
	properties.Property("int64 round trips", prop.ForAll(
		func(v int64) bool { return roundTrips(TypeInt64, v) },
		gen.Int64(),
	))
	properties.Property("float32 round trips", prop.ForAll(
		func(v float32) bool { return roundTrips(TypeFloat32, v) },
		gen.Float32(),
	))
	properties.Property("string round trips", prop.ForAll(
		func(v string) bool { return roundTrips(TypeString, v) },
		gen.AnyString(),
	))
	properties.Property("bool round trips", prop.ForAll(
		func(v bool) bool { return roundTrips(TypeBool, v) },
		gen.Bool(),
	))

	properties.TestingRun(t)
}

// TestStringSetProperty checks that sets come back sorted, duplicate-free and stable.
func TestStringSetProperty(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("normalization is idempotent", prop.ForAll(
		func(members []string) bool {
			once := NormalizeStringSet(members)
			return slices.Equal(once, NormalizeStringSet(once))
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.Property("normalized sets are strictly increasing", prop.ForAll(
		func(members []string) bool {
			set := NormalizeStringSet(members)
			for i := 1; i < len(set); i++ {
				if set[i-1] >= set[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.Property("sets round trip through storage", prop.ForAll(
		func(members []string) bool {
			s, err := EncodeValue(TypeStringSet, members)
			if err != nil {
				return false
			}
			got, err := DecodeValue(TypeStringSet, s)
			if err != nil {
				return false
			}
			return slices.Equal(got.([]string), NormalizeStringSet(members))
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.Property("set literals drop blanks", prop.ForAll(
		func(members []string) bool {
			got, err := ParseLiteral(TypeStringSet, strings.Join(members, " , "))
			if err != nil {
				return false
			}
			var want []string
			for _, m := range members {
				if m != "" {
					want = append(want, m)
				}
			}
			return slices.Equal(got.([]string), NormalizeStringSet(want))
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}
