// Package meta defines the per-type structural metadata the codec engine
// consumes: field configuration (name overrides, defaults, embedding,
// ignore flags) and the optional type-hint discriminator.
//
// Metadata is supplied declaratively as a Descriptor and compiled into an
// immutable TypeMeta. Compiled metadata is memoized process-wide per Go
// type; see For.
package meta

import (
	"strings"

	"github.com/wippyai/treecodec/errors"
)

// DefaultHintField is the discriminator object key used when a type's hint
// configuration does not name one.
const DefaultHintField = "type"

// FieldDescriptor configures one declared field of a product type.
type FieldDescriptor struct {
	// Name is the JSON object key for this field.
	Name string

	// Default is the fallback value used when the field is absent from the
	// input object, or always when the field is Ignored. Only meaningful
	// when HasDefault is true.
	Default    any
	HasDefault bool

	// Embedded splices the field's own encoded object members directly into
	// the parent object instead of nesting them under Name.
	Embedded bool

	// Ignored fields are never read from or written to the tree; their
	// value always comes from Default. Ignored requires HasDefault.
	Ignored bool
}

// HintDescriptor configures a type's discriminator. The zero value means
// the type carries no hint. An empty Field with a non-empty Value uses
// DefaultHintField; an empty Value with a non-empty Field derives the value
// from the type's simple name.
type HintDescriptor struct {
	Field string
	Value string
}

// Descriptor is the full declarative configuration for one type. It is the
// input every metadata provider (manual registration, the descriptor
// package, code generation) must produce.
type Descriptor struct {
	Fields []FieldDescriptor
	Hint   HintDescriptor
}

// FieldMeta is the compiled form of a FieldDescriptor.
type FieldMeta struct {
	Name       string
	Default    any
	HasDefault bool
	Embedded   bool
	Ignored    bool
}

// TypeHint is a compiled discriminator: the object key and the value
// identifying this type among its siblings.
type TypeHint struct {
	Field string
	Value string
}

// TypeMeta is the compiled, immutable metadata for one type. Fields keep
// declaration order; encode emits them in that order, with the hint first.
type TypeMeta struct {
	Fields []FieldMeta
	Hint   *TypeHint
}

// Compile validates desc and builds its TypeMeta. typeName is the simple
// name of the described type, used to derive a hint value when the
// configuration names a hint field but no value.
//
// A field marked Ignored without a default is a programmer error and fails
// compilation; it is never deferred to decode time.
func Compile(typeName string, desc Descriptor) (*TypeMeta, error) {
	fields := make([]FieldMeta, len(desc.Fields))
	for i, fd := range desc.Fields {
		if fd.Ignored && !fd.HasDefault {
			return nil, errors.Config(errors.PhaseCompile,
				"type %s: field %q is ignored but has no default", typeName, fd.Name)
		}
		if fd.Name == "" && !fd.Embedded {
			return nil, errors.Config(errors.PhaseCompile,
				"type %s: field %d has no name", typeName, i)
		}
		fields[i] = FieldMeta{
			Name:       fd.Name,
			Default:    fd.Default,
			HasDefault: fd.HasDefault,
			Embedded:   fd.Embedded,
			Ignored:    fd.Ignored,
		}
	}

	return &TypeMeta{
		Fields: fields,
		Hint:   hintFor(typeName, desc.Hint),
	}, nil
}

// hintFor resolves the hint precedence: explicit field and value win;
// a lone value pairs with DefaultHintField; a lone field pairs with a value
// derived from the type name; neither means no hint.
func hintFor(typeName string, h HintDescriptor) *TypeHint {
	switch {
	case h.Field != "" && h.Value != "":
		return &TypeHint{Field: h.Field, Value: h.Value}
	case h.Value != "":
		return &TypeHint{Field: DefaultHintField, Value: h.Value}
	case h.Field != "":
		return &TypeHint{Field: h.Field, Value: HintValueForName(typeName)}
	default:
		return nil
	}
}

// HintValueForName derives a discriminator value from a simple type name,
// stripping synthetic companion-object marker runes.
func HintValueForName(typeName string) string {
	return strings.ReplaceAll(typeName, "$", "")
}
