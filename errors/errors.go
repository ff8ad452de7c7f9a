package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseCompile Phase = "compile" // metadata and codec construction
	PhaseEncode  Phase = "encode"  // value to JSON tree
	PhaseDecode  Phase = "decode"  // JSON tree to value
)

// Kind categorizes the error
type Kind string

const (
	KindShapeMismatch        Kind = "shape_mismatch"        // tree does not match the expected JSON shape
	KindFieldMissing         Kind = "field_missing"         // required field or discriminator absent
	KindInvalidDiscriminator Kind = "invalid_discriminator" // discriminator value matches no alternative
	KindInvalidEnum          Kind = "invalid_enum"          // string matches no enumeration member
	KindInvalidData          Kind = "invalid_data"          // value cannot be represented
	KindConfig               Kind = "config"                // programmer misconfiguration, never a decode result
)

// Error is the structured error type used throughout the library
type Error struct {
	Cause    error
	Phase    Phase
	Kind     Kind
	Detail   string
	Fragment string
	Path     []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Fragment != "" {
		b.WriteString(" in ")
		b.WriteString(e.Fragment)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// WithPathPrefix returns a copy of e with segments prepended to its field
// path. Used when a parent codec attributes a child codec's error to one
// of its fields.
func (e *Error) WithPathPrefix(segments ...string) *Error {
	if len(segments) == 0 {
		return e
	}
	clone := *e
	clone.Path = append(append([]string{}, segments...), e.Path...)
	return &clone
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path to the error location
func (b *Builder) Path(segments ...string) *Builder {
	b.err.Path = segments
	return b
}

// Fragment sets the compact rendering of the offending JSON fragment
func (b *Builder) Fragment(rendered string) *Builder {
	b.err.Fragment = rendered
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// ObjectExpected creates a shape error for a tree that is not a JSON object
func ObjectExpected(path []string, fragment string) *Error {
	return &Error{
		Phase:    PhaseDecode,
		Kind:     KindShapeMismatch,
		Path:     path,
		Detail:   "JSON object expected",
		Fragment: fragment,
	}
}

// StringExpected creates a shape error for a tree that is not the expected
// JSON string literal
func StringExpected(path []string, want, fragment string) *Error {
	return &Error{
		Phase:    PhaseDecode,
		Kind:     KindShapeMismatch,
		Path:     path,
		Detail:   fmt.Sprintf("JSON string %q expected", want),
		Fragment: fragment,
	}
}

// FieldMissing creates a missing field error
func FieldMissing(path []string, fieldName string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindFieldMissing,
		Path:   path,
		Detail: fmt.Sprintf("missing field %q", fieldName),
	}
}

// TypeFieldMissing creates a missing discriminator field error
func TypeFieldMissing(path []string, fieldName, fragment string) *Error {
	return &Error{
		Phase:    PhaseDecode,
		Kind:     KindFieldMissing,
		Path:     path,
		Detail:   fmt.Sprintf("missing type field %q", fieldName),
		Fragment: fragment,
	}
}

// InvalidDiscriminator creates an error for a discriminator value that
// matches no registered alternative
func InvalidDiscriminator(path []string, value, fragment string) *Error {
	return &Error{
		Phase:    PhaseDecode,
		Kind:     KindInvalidDiscriminator,
		Path:     path,
		Detail:   fmt.Sprintf("invalid type value %q", value),
		Fragment: fragment,
	}
}

// InvalidEnum creates an error for a string that matches no enumeration
// member, listing every valid name
func InvalidEnum(path []string, got string, valid []string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidEnum,
		Path:   path,
		Detail: fmt.Sprintf("invalid enum value %q, expected one of: %s", got, strings.Join(valid, ", ")),
	}
}

// Config creates a programmer-misconfiguration error. Config errors are
// raised from codec construction or encode, never accumulated into a
// decode result.
func Config(phase Phase, msg string, args ...any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindConfig,
		Detail: fmt.Sprintf(msg, args...),
	}
}
