package treecodec

import (
	"reflect"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wippyai/treecodec/errors"
	"github.com/wippyai/treecodec/jtree"
	"github.com/wippyai/treecodec/meta"
)

type productCodec struct {
	goType reflect.Type
	meta   *meta.TypeMeta
	fields []Codec
}

// NewProduct derives an object codec for the struct type goType. desc
// describes each declared field in order; fieldCodecs supplies one codec
// per field, matching that order. Struct fields, descriptor fields and
// codecs must agree in count, and every struct field must be exported.
//
// Encoding emits the type hint first (when configured), then each
// non-ignored field in declaration order; embedded fields splice their
// object members into the parent. Decoding reads every field independently
// and accumulates all failures.
func NewProduct(goType reflect.Type, desc meta.Descriptor, fieldCodecs ...Codec) (Codec, error) {
	if goType == nil {
		return nil, errors.Config(errors.PhaseCompile, "product type cannot be nil")
	}
	if goType.Kind() == reflect.Ptr {
		goType = goType.Elem()
	}
	if goType.Kind() != reflect.Struct {
		return nil, errors.Config(errors.PhaseCompile,
			"product type must be a struct, got %s", goType)
	}

	tm, err := meta.For(goType, desc)
	if err != nil {
		return nil, err
	}

	if len(tm.Fields) != len(fieldCodecs) {
		return nil, errors.Config(errors.PhaseCompile,
			"type %s: %d field descriptors but %d field codecs", goType, len(tm.Fields), len(fieldCodecs))
	}
	if goType.NumField() != len(tm.Fields) {
		return nil, errors.Config(errors.PhaseCompile,
			"type %s: struct has %d fields but descriptor declares %d", goType, goType.NumField(), len(tm.Fields))
	}
	for i := 0; i < goType.NumField(); i++ {
		if goType.Field(i).PkgPath != "" {
			return nil, errors.Config(errors.PhaseCompile,
				"type %s: field %s is unexported", goType, goType.Field(i).Name)
		}
	}
	for i, fc := range fieldCodecs {
		if fc == nil {
			return nil, errors.Config(errors.PhaseCompile,
				"type %s: codec for field %q is nil", goType, tm.Fields[i].Name)
		}
	}

	Logger().Debug("derived product codec",
		zap.String("type", goType.String()),
		zap.Int("fields", len(tm.Fields)))

	return &productCodec{goType: goType, meta: tm, fields: fieldCodecs}, nil
}

func (c *productCodec) Encode(v any) (jtree.Value, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr && !rv.IsNil() {
		rv = rv.Elem()
	}
	if !rv.IsValid() || rv.Type() != c.goType {
		return jtree.Value{}, errors.New(errors.PhaseEncode, errors.KindInvalidData).
			Detail("value of type %T cannot be encoded as %s", v, c.goType).
			Build()
	}

	var members []jtree.Member
	if c.meta.Hint != nil {
		members = append(members, jtree.Field(c.meta.Hint.Field, jtree.String(c.meta.Hint.Value)))
	}

	for i, fm := range c.meta.Fields {
		if fm.Ignored {
			continue
		}
		encoded, err := c.fields[i].Encode(rv.Field(i).Interface())
		if err != nil {
			var ce *errors.Error
			if asStructured(err, &ce) {
				return jtree.Value{}, ce.WithPathPrefix(fm.Name)
			}
			return jtree.Value{}, errors.New(errors.PhaseEncode, errors.KindInvalidData).
				Path(fm.Name).
				Cause(err).
				Build()
		}
		if fm.Embedded {
			// Splice the embedded object's members into the parent. A codec
			// that did not produce an object contributes nothing.
			if inner, ok := encoded.AsObject(); ok {
				members = append(members, inner...)
			}
			continue
		}
		members = append(members, jtree.Field(fm.Name, encoded))
	}

	return jtree.Object(members...), nil
}

func (c *productCodec) Decode(tree jtree.Value) (any, error) {
	if _, ok := tree.AsObject(); !ok {
		return nil, errors.ObjectExpected(nil, tree.Compact())
	}

	out := reflect.New(c.goType).Elem()
	var errs []error

	for i, fm := range c.meta.Fields {
		switch {
		case fm.Ignored:
			// Validated at metadata compile time: ignored implies default.
			if err := setField(out.Field(i), fm.Default); err != nil {
				return nil, err
			}

		case fm.Embedded:
			// The embedded codec reinterprets the entire object.
			val, err := c.fields[i].Decode(tree)
			if err != nil {
				errs = append(errs, multierr.Errors(err)...)
				continue
			}
			if err := setField(out.Field(i), val); err != nil {
				return nil, err
			}

		default:
			memberTree, present := tree.Lookup(fm.Name)
			if !present {
				if fm.HasDefault {
					if err := setField(out.Field(i), fm.Default); err != nil {
						return nil, err
					}
					continue
				}
				errs = append(errs, errors.FieldMissing(nil, fm.Name))
				continue
			}
			val, err := c.fields[i].Decode(memberTree)
			if err != nil {
				errs = append(errs, prefixFieldErrors(fm.Name, err)...)
				continue
			}
			if err := setField(out.Field(i), val); err != nil {
				return nil, err
			}
		}
	}

	if len(errs) > 0 {
		return nil, multierr.Combine(errs...)
	}
	return out.Interface(), nil
}

// setField assigns v to the struct field dst, converting between
// compatible types (e.g. a float64 from a number codec into an int field).
// Incompatible types indicate a miswired codec, reported as a config error.
func setField(dst reflect.Value, v any) error {
	if v == nil {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Type() != dst.Type() {
		if !rv.Type().ConvertibleTo(dst.Type()) {
			return errors.Config(errors.PhaseDecode,
				"cannot assign %s to field of type %s", rv.Type(), dst.Type())
		}
		rv = rv.Convert(dst.Type())
	}
	dst.Set(rv)
	return nil
}

func asStructured(err error, target **errors.Error) bool {
	ce, ok := err.(*errors.Error)
	if ok {
		*target = ce
	}
	return ok
}
