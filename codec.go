// codec.go
package simpleprefs

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// codec converts between a Go value and the canonical string stored for one ValueType.
type codec struct {
	encode func(v any) (string, error)
	decode func(s string) (any, error)
	// literal parses the human-written default syntax used in key markers.
	literal func(s string) (any, error)
	zero    func() any
}

var codecs = map[ValueType]codec{
	TypeBool: {
		encode: func(v any) (string, error) {
			b, ok := v.(bool)
			if !ok {
				return "", typeError(TypeBool, v)
			}
			return strconv.FormatBool(b), nil
		},
		decode:  func(s string) (any, error) { return strconv.ParseBool(s) },
		literal: func(s string) (any, error) { return strconv.ParseBool(strings.TrimSpace(s)) },
		zero:    func() any { return false },
	},
	TypeInt32: {
		encode: func(v any) (string, error) {
			i, ok := v.(int32)
			if !ok {
				return "", typeError(TypeInt32, v)
			}
			return strconv.FormatInt(int64(i), 10), nil
		},
		decode:  parseInt32,
		literal: func(s string) (any, error) { return parseInt32(strings.TrimSpace(s)) },
		zero:    func() any { return int32(0) },
	},
	TypeInt64: {
		encode: func(v any) (string, error) {
			i, ok := v.(int64)
			if !ok {
				return "", typeError(TypeInt64, v)
			}
			return strconv.FormatInt(i, 10), nil
		},
		decode:  func(s string) (any, error) { return strconv.ParseInt(s, 10, 64) },
		literal: func(s string) (any, error) { return strconv.ParseInt(strings.TrimSpace(s), 10, 64) },
		zero:    func() any { return int64(0) },
	},
	TypeFloat32: {
		encode: func(v any) (string, error) {
			f, ok := v.(float32)
			if !ok {
				return "", typeError(TypeFloat32, v)
			}
			return strconv.FormatFloat(float64(f), 'g', -1, 32), nil
		},
		decode:  parseFloat32,
		literal: func(s string) (any, error) { return parseFloat32(strings.TrimSpace(s)) },
		zero:    func() any { return float32(0) },
	},
	TypeString: {
		encode: func(v any) (string, error) {
			s, ok := v.(string)
			if !ok {
				return "", typeError(TypeString, v)
			}
			return s, nil
		},
		decode:  func(s string) (any, error) { return s, nil },
		literal: func(s string) (any, error) { return s, nil },
		zero:    func() any { return "" },
	},
	TypeStringSet: {
		encode: func(v any) (string, error) {
			set, ok := v.([]string)
			if !ok {
				return "", typeError(TypeStringSet, v)
			}
			data, err := json.Marshal(NormalizeStringSet(set))
			if err != nil {
				return "", fmt.Errorf("%w: %v", ErrInvalidValue, err)
			}
			return string(data), nil
		},
		decode: func(s string) (any, error) {
			var set []string
			if err := json.Unmarshal([]byte(s), &set); err != nil {
				return nil, err
			}
			return NormalizeStringSet(set), nil
		},
		literal: parseSetLiteral,
		zero:    func() any { return []string{} },
	},
}

// EncodeValue returns the canonical string for v, which must have the Go type of t.
func EncodeValue(t ValueType, v any) (string, error) {
	c, ok := codecs[t]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidType, t)
	}
	return c.encode(v)
}

// DecodeValue parses a canonical string produced by EncodeValue.
func DecodeValue(t ValueType, s string) (any, error) {
	c, ok := codecs[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidType, t)
	}
	v, err := c.decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", ErrInvalidValue, t, err)
	}
	return v, nil
}

// ParseLiteral parses a default literal as written in a key marker.
// String-set literals are comma-separated; members are trimmed and empty members dropped.
func ParseLiteral(t ValueType, lit string) (any, error) {
	c, ok := codecs[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidType, t)
	}
	v, err := c.literal(lit)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a valid %s literal", ErrInvalidValue, lit, t)
	}
	return v, nil
}

// ZeroValue returns the Go zero value for t, with an empty (non-nil) slice for sets.
func ZeroValue(t ValueType) (any, error) {
	c, ok := codecs[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidType, t)
	}
	return c.zero(), nil
}

func parseInt32(s string) (any, error) {
	i, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return nil, err
	}
	return int32(i), nil
}

func parseFloat32(s string) (any, error) {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return nil, err
	}
	return float32(f), nil
}

func parseSetLiteral(s string) (any, error) {
	var members []string
	for _, m := range strings.Split(s, ",") {
		if m = strings.TrimSpace(m); m != "" {
			members = append(members, m)
		}
	}
	return NormalizeStringSet(members), nil
}

func typeError(t ValueType, v any) error {
	return fmt.Errorf("%w: expected %s, got %T", ErrInvalidValue, t, v)
}
