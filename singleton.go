package treecodec

import (
	"reflect"

	"github.com/wippyai/treecodec/errors"
	"github.com/wippyai/treecodec/jtree"
	"github.com/wippyai/treecodec/meta"
)

type singletonCodec struct {
	value any
	hint  meta.TypeHint
}

// NewSingleton derives a codec for a zero-field alternative that stands
// alone: it encodes as the bare JSON string hint.Value and decodes only
// that exact string, yielding value.
func NewSingleton(value any, hint meta.TypeHint) (Codec, error) {
	if hint.Value == "" {
		return nil, errors.Config(errors.PhaseCompile, "singleton has no discriminator value")
	}
	return &singletonCodec{value: value, hint: hint}, nil
}

func (c *singletonCodec) Encode(any) (jtree.Value, error) {
	return jtree.String(c.hint.Value), nil
}

func (c *singletonCodec) Decode(tree jtree.Value) (any, error) {
	if s, ok := tree.AsString(); ok && s == c.hint.Value {
		return c.value, nil
	}
	return nil, errors.StringExpected(nil, c.hint.Value, tree.Compact())
}

type caseCodec struct {
	value any
	hint  meta.TypeHint
}

// NewCase derives a codec for a zero-field alternative that participates in
// an object-shaped type switch: it encodes as {hint.Field: hint.Value} and
// decodes any object whose discriminator member equals hint.Value. An empty
// hint field means meta.DefaultHintField.
func NewCase(value any, hint meta.TypeHint) (Codec, error) {
	if hint.Value == "" {
		return nil, errors.Config(errors.PhaseCompile, "case has no discriminator value")
	}
	if hint.Field == "" {
		hint.Field = meta.DefaultHintField
	}
	return &caseCodec{value: value, hint: hint}, nil
}

func (c *caseCodec) Encode(any) (jtree.Value, error) {
	return jtree.Object(jtree.Field(c.hint.Field, jtree.String(c.hint.Value))), nil
}

func (c *caseCodec) Decode(tree jtree.Value) (any, error) {
	if _, ok := tree.AsObject(); !ok {
		return nil, errors.ObjectExpected(nil, tree.Compact())
	}
	disc, present := tree.Lookup(c.hint.Field)
	value, isString := disc.AsString()
	if !present || !isString {
		return nil, errors.TypeFieldMissing(nil, c.hint.Field, tree.Compact())
	}
	if value != c.hint.Value {
		return nil, errors.InvalidDiscriminator(nil, value, tree.Compact())
	}
	return c.value, nil
}

type enumCodec struct {
	goType  reflect.Type
	names   []string
	indexOf map[string]int
}

// NewEnum derives a codec for an integer-kind enumeration type. Members
// encode as their textual name from names, indexed by the member's integer
// value; decoding matches names case-sensitively and reports every valid
// name on a miss.
func NewEnum(goType reflect.Type, names ...string) (Codec, error) {
	if goType == nil {
		return nil, errors.Config(errors.PhaseCompile, "enum type cannot be nil")
	}
	switch goType.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return nil, errors.Config(errors.PhaseCompile,
			"enum type must have integer kind, got %s", goType)
	}
	if len(names) == 0 {
		return nil, errors.Config(errors.PhaseCompile, "enum %s has no members", goType)
	}

	indexOf := make(map[string]int, len(names))
	for i, n := range names {
		if n == "" {
			return nil, errors.Config(errors.PhaseCompile, "enum %s: member %d has no name", goType, i)
		}
		if _, dup := indexOf[n]; dup {
			return nil, errors.Config(errors.PhaseCompile, "enum %s: duplicate member name %q", goType, n)
		}
		indexOf[n] = i
	}

	return &enumCodec{goType: goType, names: names, indexOf: indexOf}, nil
}

func (c *enumCodec) Encode(v any) (jtree.Value, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Type() != c.goType {
		return jtree.Value{}, errors.New(errors.PhaseEncode, errors.KindInvalidData).
			Detail("value of type %T cannot be encoded as enum %s", v, c.goType).
			Build()
	}

	var idx int64
	if rv.CanInt() {
		idx = rv.Int()
	} else {
		idx = int64(rv.Uint())
	}
	if idx < 0 || idx >= int64(len(c.names)) {
		return jtree.Value{}, errors.Config(errors.PhaseEncode,
			"enum %s value %d has no member name", c.goType, idx)
	}
	return jtree.String(c.names[idx]), nil
}

func (c *enumCodec) Decode(tree jtree.Value) (any, error) {
	s, ok := tree.AsString()
	if !ok {
		return nil, errors.New(errors.PhaseDecode, errors.KindShapeMismatch).
			Detail("JSON string expected").
			Fragment(tree.Compact()).
			Build()
	}
	idx, ok := c.indexOf[s]
	if !ok {
		return nil, errors.InvalidEnum(nil, s, c.names)
	}
	return reflect.ValueOf(idx).Convert(c.goType).Interface(), nil
}
