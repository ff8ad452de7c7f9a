package treecodec

import (
	"math"
	"reflect"
	"sort"
	"strconv"

	"go.uber.org/multierr"

	"github.com/wippyai/treecodec/errors"
	"github.com/wippyai/treecodec/jtree"
)

// Primitive codecs composed by the derivation engine. Each follows the
// Func boundary: pure encode, pure decode, structured errors.
var (
	// String converts Go strings to and from JSON strings.
	String = Func(encodeString, decodeString)

	// Bool converts Go bools to and from JSON booleans.
	Bool = Func(encodeBool, decodeBool)

	// Float64 converts Go float64 values to and from JSON numbers.
	Float64 = Func(encodeFloat64, decodeFloat64)

	// Int converts Go ints to and from integral JSON numbers.
	Int = Func(encodeInt, decodeInt)
)

func encodeString(v any) (jtree.Value, error) {
	s, ok := v.(string)
	if !ok {
		return jtree.Value{}, encodeMismatch(v, "string")
	}
	return jtree.String(s), nil
}

func decodeString(tree jtree.Value) (any, error) {
	s, ok := tree.AsString()
	if !ok {
		return nil, decodeMismatch(tree, "string")
	}
	return s, nil
}

func encodeBool(v any) (jtree.Value, error) {
	b, ok := v.(bool)
	if !ok {
		return jtree.Value{}, encodeMismatch(v, "boolean")
	}
	return jtree.Bool(b), nil
}

func decodeBool(tree jtree.Value) (any, error) {
	b, ok := tree.AsBool()
	if !ok {
		return nil, decodeMismatch(tree, "boolean")
	}
	return b, nil
}

func encodeFloat64(v any) (jtree.Value, error) {
	f, ok := v.(float64)
	if !ok {
		return jtree.Value{}, encodeMismatch(v, "number")
	}
	return jtree.Number(f), nil
}

func decodeFloat64(tree jtree.Value) (any, error) {
	f, ok := tree.AsNumber()
	if !ok {
		return nil, decodeMismatch(tree, "number")
	}
	return f, nil
}

func encodeInt(v any) (jtree.Value, error) {
	i, ok := v.(int)
	if !ok {
		return jtree.Value{}, encodeMismatch(v, "integer")
	}
	return jtree.Number(float64(i)), nil
}

func decodeInt(tree jtree.Value) (any, error) {
	f, ok := tree.AsNumber()
	if !ok || f != math.Trunc(f) {
		return nil, decodeMismatch(tree, "integer")
	}
	return int(f), nil
}

func encodeMismatch(v any, want string) *errors.Error {
	return errors.New(errors.PhaseEncode, errors.KindInvalidData).
		Detail("value of type %T cannot be encoded as %s", v, want).
		Build()
}

func decodeMismatch(tree jtree.Value, want string) *errors.Error {
	return errors.New(errors.PhaseDecode, errors.KindShapeMismatch).
		Detail("JSON %s expected", want).
		Fragment(tree.Compact()).
		Build()
}

type listCodec struct {
	sliceType reflect.Type
	elem      Codec
}

// List derives a codec between the slice type sliceType and JSON arrays,
// applying elem to every element. Element failures on decode accumulate,
// each attributed to its index.
func List(sliceType reflect.Type, elem Codec) (Codec, error) {
	if sliceType == nil || sliceType.Kind() != reflect.Slice {
		return nil, errors.Config(errors.PhaseCompile, "list type must be a slice, got %v", sliceType)
	}
	if elem == nil {
		return nil, errors.Config(errors.PhaseCompile, "list element codec is nil")
	}
	return &listCodec{sliceType: sliceType, elem: elem}, nil
}

func (c *listCodec) Encode(v any) (jtree.Value, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Type() != c.sliceType {
		return jtree.Value{}, encodeMismatch(v, c.sliceType.String())
	}

	elems := make([]jtree.Value, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		encoded, err := c.elem.Encode(rv.Index(i).Interface())
		if err != nil {
			return jtree.Value{}, err
		}
		elems[i] = encoded
	}
	return jtree.Array(elems...), nil
}

func (c *listCodec) Decode(tree jtree.Value) (any, error) {
	arr, ok := tree.AsArray()
	if !ok {
		return nil, errors.New(errors.PhaseDecode, errors.KindShapeMismatch).
			Detail("JSON array expected").
			Fragment(tree.Compact()).
			Build()
	}

	out := reflect.MakeSlice(c.sliceType, len(arr), len(arr))
	var errs []error
	for i, elemTree := range arr {
		val, err := c.elem.Decode(elemTree)
		if err != nil {
			errs = append(errs, prefixFieldErrors(strconv.Itoa(i), err)...)
			continue
		}
		if err := setField(out.Index(i), val); err != nil {
			return nil, err
		}
	}
	if len(errs) > 0 {
		return nil, multierr.Combine(errs...)
	}
	return out.Interface(), nil
}

type stringMapCodec struct {
	mapType reflect.Type
	elem    Codec
}

// StringMap derives a codec between the string-keyed map type mapType and
// JSON objects with arbitrary keys. Encoding sorts keys for a stable
// rendering; decoding lets a repeated key's last occurrence win.
func StringMap(mapType reflect.Type, elem Codec) (Codec, error) {
	if mapType == nil || mapType.Kind() != reflect.Map || mapType.Key().Kind() != reflect.String {
		return nil, errors.Config(errors.PhaseCompile, "map type must be string-keyed, got %v", mapType)
	}
	if elem == nil {
		return nil, errors.Config(errors.PhaseCompile, "map value codec is nil")
	}
	return &stringMapCodec{mapType: mapType, elem: elem}, nil
}

func (c *stringMapCodec) Encode(v any) (jtree.Value, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Type() != c.mapType {
		return jtree.Value{}, encodeMismatch(v, c.mapType.String())
	}

	keys := make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		keys = append(keys, k.String())
	}
	sort.Strings(keys)

	members := make([]jtree.Member, 0, len(keys))
	for _, k := range keys {
		encoded, err := c.elem.Encode(rv.MapIndex(reflect.ValueOf(k).Convert(c.mapType.Key())).Interface())
		if err != nil {
			return jtree.Value{}, err
		}
		members = append(members, jtree.Field(k, encoded))
	}
	return jtree.Object(members...), nil
}

func (c *stringMapCodec) Decode(tree jtree.Value) (any, error) {
	obj, ok := tree.AsObject()
	if !ok {
		return nil, errors.ObjectExpected(nil, tree.Compact())
	}

	out := reflect.MakeMapWithSize(c.mapType, len(obj))
	var errs []error
	for _, m := range obj {
		val, err := c.elem.Decode(m.Value)
		if err != nil {
			errs = append(errs, prefixFieldErrors(m.Key, err)...)
			continue
		}
		rv := reflect.ValueOf(val)
		if rv.Type() != c.mapType.Elem() {
			if !rv.Type().ConvertibleTo(c.mapType.Elem()) {
				return nil, errors.Config(errors.PhaseDecode,
					"cannot assign %s to map value of type %s", rv.Type(), c.mapType.Elem())
			}
			rv = rv.Convert(c.mapType.Elem())
		}
		out.SetMapIndex(reflect.ValueOf(m.Key).Convert(c.mapType.Key()), rv)
	}
	if len(errs) > 0 {
		return nil, multierr.Combine(errs...)
	}
	return out.Interface(), nil
}

type optionalCodec struct {
	ptrType reflect.Type
	elem    Codec
}

// Optional derives a codec between the pointer type ptrType and a nullable
// JSON value: nil encodes as null, null decodes to nil, anything else goes
// through elem.
func Optional(ptrType reflect.Type, elem Codec) (Codec, error) {
	if ptrType == nil || ptrType.Kind() != reflect.Ptr {
		return nil, errors.Config(errors.PhaseCompile, "optional type must be a pointer, got %v", ptrType)
	}
	if elem == nil {
		return nil, errors.Config(errors.PhaseCompile, "optional element codec is nil")
	}
	return &optionalCodec{ptrType: ptrType, elem: elem}, nil
}

func (c *optionalCodec) Encode(v any) (jtree.Value, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Type() != c.ptrType {
		return jtree.Value{}, encodeMismatch(v, c.ptrType.String())
	}
	if rv.IsNil() {
		return jtree.Null(), nil
	}
	return c.elem.Encode(rv.Elem().Interface())
}

func (c *optionalCodec) Decode(tree jtree.Value) (any, error) {
	if tree.IsNull() {
		return reflect.Zero(c.ptrType).Interface(), nil
	}
	val, err := c.elem.Decode(tree)
	if err != nil {
		return nil, err
	}
	out := reflect.New(c.ptrType.Elem())
	if err := setField(out.Elem(), val); err != nil {
		return nil, err
	}
	return out.Interface(), nil
}
