package schema

import (
	"errors"
	"go/token"
	"strconv"
	"strings"
)

// Sentinel errors for the extraction diagnostics.
var (
	// ErrInvalidConfiguration indicates a holder or key marker that cannot produce a schema.
	ErrInvalidConfiguration = errors.New("prefsgen: invalid configuration")
	// ErrUnsupportedFieldType indicates a key field whose type is outside the supported set.
	ErrUnsupportedFieldType = errors.New("prefsgen: unsupported field type")
	// ErrDuplicateKey indicates two fields of one holder resolving to the same store key.
	ErrDuplicateKey = errors.New("prefsgen: duplicate store key")
)

// Kind classifies a Diagnostic.
type Kind int

// Diagnostic kinds.
const (
	InvalidConfiguration Kind = iota + 1
	UnsupportedFieldType
	DuplicateKey
)

func (k Kind) String() string {
	switch k {
	case InvalidConfiguration:
		return "invalid configuration"
	case UnsupportedFieldType:
		return "unsupported field type"
	case DuplicateKey:
		return "duplicate key"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case InvalidConfiguration:
		return ErrInvalidConfiguration
	case UnsupportedFieldType:
		return ErrUnsupportedFieldType
	case DuplicateKey:
		return ErrDuplicateKey
	default:
		return nil
	}
}

// Diagnostic is an extraction error scoped to one holder declaration.
type Diagnostic struct {
	Kind    Kind
	Decl    string         // qualified holder name
	Field   string         // offending field, if any
	Other   string         // second field of a duplicate pair
	Type    string         // declared field type, for unsupported types
	Pos     token.Position // source position, when known
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Diagnostic) Error() string {
	var b strings.Builder
	if e.Pos.IsValid() {
		b.WriteString(e.Pos.String())
		b.WriteString(": ")
	}
	b.WriteString("prefsgen: ")
	b.WriteString(e.Kind.String())
	if e.Decl != "" {
		b.WriteString(" on ")
		b.WriteString(e.Decl)
	}
	if e.Field != "" {
		b.WriteString(" field ")
		b.WriteString(e.Field)
	}
	if e.Other != "" {
		b.WriteString(" and ")
		b.WriteString(e.Other)
	}
	if e.Type != "" {
		b.WriteString(" (type ")
		b.WriteString(e.Type)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *Diagnostic) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the sentinel for the diagnostic's kind.
func (e *Diagnostic) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// NewInvalidConfiguration creates an InvalidConfiguration diagnostic.
func NewInvalidConfiguration(decl, field, message string, cause error) *Diagnostic {
	return &Diagnostic{
		Kind:    InvalidConfiguration,
		Decl:    decl,
		Field:   field,
		Message: message,
		Cause:   cause,
	}
}

// NewUnsupportedFieldType creates an UnsupportedFieldType diagnostic citing the field and its type.
func NewUnsupportedFieldType(decl, field, typ string) *Diagnostic {
	return &Diagnostic{
		Kind:    UnsupportedFieldType,
		Decl:    decl,
		Field:   field,
		Type:    typ,
		Message: "supported types are bool, int32, int64, float32, string and []string",
	}
}

// NewDuplicateKey creates a DuplicateKey diagnostic citing both fields.
func NewDuplicateKey(decl, field, other, key string) *Diagnostic {
	return &Diagnostic{
		Kind:    DuplicateKey,
		Decl:    decl,
		Field:   field,
		Other:   other,
		Message: "both use store key " + strconv.Quote(key),
	}
}

// IsInvalidConfiguration reports whether err is an InvalidConfiguration diagnostic.
func IsInvalidConfiguration(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration)
}

// IsUnsupportedFieldType reports whether err is an UnsupportedFieldType diagnostic.
func IsUnsupportedFieldType(err error) bool {
	return errors.Is(err, ErrUnsupportedFieldType)
}

// IsDuplicateKey reports whether err is a DuplicateKey diagnostic.
func IsDuplicateKey(err error) bool {
	return errors.Is(err, ErrDuplicateKey)
}

// At returns err with pos attached when err is a Diagnostic without a position.
func At(err error, pos token.Position) error {
	var d *Diagnostic
	if errors.As(err, &d) && !d.Pos.IsValid() {
		d.Pos = pos
	}
	return err
}
