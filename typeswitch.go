package treecodec

import (
	"reflect"

	"go.uber.org/zap"

	"github.com/wippyai/treecodec/errors"
	"github.com/wippyai/treecodec/jtree"
	"github.com/wippyai/treecodec/meta"
)

// Selector binds one alternative of a sum type to its codec and its
// discriminator. Type identifies the alternative at encode time; Hint.Value
// identifies it at decode time.
type Selector struct {
	Type  reflect.Type
	Codec Codec
	Hint  meta.TypeHint
}

type typeSwitchCodec struct {
	field    string
	byValue  map[string]*Selector
	byType   map[reflect.Type]*Selector
	selector []Selector
}

// NewTypeSwitch derives a codec for a closed set of alternatives encoded as
// JSON objects disambiguated by one discriminator field. field is the
// object key read on decode; empty means meta.DefaultHintField. At least
// two selectors are required; an N-way switch is the two-way switch over
// first and second extended with rest.
//
// Duplicate discriminator values and duplicate alternative types are
// rejected at construction. Encoding a value whose runtime type has no
// selector is a config error: there is no fallback alternative.
func NewTypeSwitch(field string, first, second Selector, rest ...Selector) (Codec, error) {
	if field == "" {
		field = meta.DefaultHintField
	}

	selectors := make([]Selector, 0, 2+len(rest))
	selectors = append(selectors, first, second)
	selectors = append(selectors, rest...)

	sw := &typeSwitchCodec{
		field:    field,
		byValue:  make(map[string]*Selector, len(selectors)),
		byType:   make(map[reflect.Type]*Selector, len(selectors)),
		selector: selectors,
	}

	for i := range sw.selector {
		sel := &sw.selector[i]
		if sel.Type == nil {
			return nil, errors.Config(errors.PhaseCompile, "selector %d has no alternative type", i)
		}
		if sel.Codec == nil {
			return nil, errors.Config(errors.PhaseCompile,
				"selector for %s has no codec", sel.Type)
		}
		if sel.Hint.Value == "" {
			return nil, errors.Config(errors.PhaseCompile,
				"selector for %s has no discriminator value", sel.Type)
		}
		if sel.Hint.Field == "" {
			sel.Hint.Field = field
		}
		if prev, dup := sw.byValue[sel.Hint.Value]; dup {
			return nil, errors.Config(errors.PhaseCompile,
				"discriminator value %q registered for both %s and %s", sel.Hint.Value, prev.Type, sel.Type)
		}
		if _, dup := sw.byType[sel.Type]; dup {
			return nil, errors.Config(errors.PhaseCompile,
				"alternative type %s registered twice", sel.Type)
		}
		sw.byValue[sel.Hint.Value] = sel
		sw.byType[sel.Type] = sel
	}

	Logger().Debug("derived type-switch codec",
		zap.String("field", field),
		zap.Int("alternatives", len(selectors)))

	return sw, nil
}

func (c *typeSwitchCodec) Decode(tree jtree.Value) (any, error) {
	if _, ok := tree.AsObject(); !ok {
		return nil, errors.ObjectExpected(nil, tree.Compact())
	}

	// A discriminator member that is present but not a string counts as
	// absent.
	disc, present := tree.Lookup(c.field)
	value, isString := disc.AsString()
	if !present || !isString {
		return nil, errors.TypeFieldMissing(nil, c.field, tree.Compact())
	}

	sel, ok := c.byValue[value]
	if !ok {
		return nil, errors.InvalidDiscriminator(nil, value, tree.Compact())
	}
	// The matched alternative decodes the whole object, not a sub-tree.
	return sel.Codec.Decode(tree)
}

func (c *typeSwitchCodec) Encode(v any) (jtree.Value, error) {
	sel, ok := c.selectorFor(v)
	if !ok {
		return jtree.Value{}, errors.Config(errors.PhaseEncode,
			"no selector registered for runtime type %T", v)
	}

	encoded, err := sel.Codec.Encode(v)
	if err != nil {
		return jtree.Value{}, err
	}

	// An alternative that already self-tags (a nested type switch, or a
	// product with its own hint on the same field) must not be tagged
	// twice.
	if members, ok := encoded.AsObject(); ok && len(members) > 0 && members[0].Key == sel.Hint.Field {
		return encoded, nil
	}
	return encoded.Prepend(sel.Hint.Field, jtree.String(sel.Hint.Value)), nil
}

func (c *typeSwitchCodec) selectorFor(v any) (*Selector, bool) {
	rt := reflect.TypeOf(v)
	if rt == nil {
		return nil, false
	}
	if sel, ok := c.byType[rt]; ok {
		return sel, true
	}
	if rt.Kind() == reflect.Ptr {
		if sel, ok := c.byType[rt.Elem()]; ok {
			return sel, true
		}
	}
	return nil, false
}
