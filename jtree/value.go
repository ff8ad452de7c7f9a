// Package jtree provides the generic JSON tree value consumed and produced
// by the codec engine.
//
// Unlike map-based JSON representations, object members keep their insertion
// order and duplicate keys are representable. Lookup by key returns the first
// occurrence, matching how most JSON consumers resolve duplicates.
package jtree

import (
	"math"
	"strconv"
)

// Kind identifies the variant a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// Member is one key/value pair of an object. Objects are member slices, so
// order is preserved and keys may repeat.
type Member struct {
	Key   string
	Value Value
}

// Value is an immutable JSON tree node. The zero value is null.
type Value struct {
	arr     []Value
	members []Member
	str     string
	num     float64
	boolean bool
	kind    Kind
}

// Null returns the JSON null value.
func Null() Value {
	return Value{kind: KindNull}
}

// Bool returns a JSON boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, boolean: b}
}

// Number returns a JSON number value.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// String returns a JSON string value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Array returns a JSON array of the given elements.
func Array(elems ...Value) Value {
	return Value{kind: KindArray, arr: elems}
}

// Object returns a JSON object with the given members, in order.
func Object(members ...Member) Value {
	return Value{kind: KindObject, members: members}
}

// Field constructs one object member.
func Field(key string, value Value) Member {
	return Member{Key: key, Value: value}
}

// Kind reports which JSON variant v holds.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is JSON null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// AsBool returns the boolean payload. The second result is false when v is
// not a boolean.
func (v Value) AsBool() (bool, bool) {
	return v.boolean, v.kind == KindBool
}

// AsNumber returns the numeric payload. The second result is false when v is
// not a number.
func (v Value) AsNumber() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// AsString returns the string payload. The second result is false when v is
// not a string.
func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

// AsArray returns the element slice. The second result is false when v is
// not an array. Callers must not mutate the returned slice.
func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

// AsObject returns the member slice in declaration order. The second result
// is false when v is not an object. Callers must not mutate the returned
// slice.
func (v Value) AsObject() ([]Member, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return v.members, true
}

// Lookup returns the value of the first member named key. The second result
// is false when v is not an object or has no such member.
func (v Value) Lookup(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	for _, m := range v.members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Prepend returns a copy of the object v with member (key, value) inserted
// before all existing members. Prepending onto a non-object returns a
// single-member object.
func (v Value) Prepend(key string, value Value) Value {
	if v.kind != KindObject {
		return Object(Field(key, value))
	}
	members := make([]Member, 0, len(v.members)+1)
	members = append(members, Field(key, value))
	members = append(members, v.members...)
	return Object(members...)
}

// Equal reports deep structural equality, including member order and
// duplicate keys.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.boolean == o.boolean
	case KindNumber:
		return v.num == o.num
	case KindString:
		return v.str == o.str
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.members) != len(o.members) {
			return false
		}
		for i := range v.members {
			if v.members[i].Key != o.members[i].Key {
				return false
			}
			if !v.members[i].Value.Equal(o.members[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// String renders v compactly. Used for error messages and diagnostics, not
// for protocol framing.
func (v Value) String() string {
	return v.Compact()
}

func formatNumber(f float64) string {
	// Integral values within int64 range render without a fractional part,
	// matching the usual JSON printer behavior for whole numbers.
	if f == math.Trunc(f) && math.Abs(f) < 1<<62 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
