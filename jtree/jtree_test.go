package jtree

import (
	"testing"
)

func TestCompact(t *testing.T) {
	tests := []struct {
		name string
		val  Value
		want string
	}{
		{"null", Null(), "null"},
		{"true", Bool(true), "true"},
		{"false", Bool(false), "false"},
		{"integer", Number(42), "42"},
		{"negative", Number(-7), "-7"},
		{"fraction", Number(1.5), "1.5"},
		{"string", String("hi"), `"hi"`},
		{"escaped string", String("a\"b\\c\nd"), `"a\"b\\c\nd"`},
		{"control char", String("\x01"), `"\u0001"`},
		{"empty array", Array(), "[]"},
		{"array", Array(Number(1), String("x"), Null()), `[1,"x",null]`},
		{"empty object", Object(), "{}"},
		{
			"object keeps order",
			Object(Field("b", Number(2)), Field("a", Number(1))),
			`{"b":2,"a":1}`,
		},
		{
			"duplicate keys kept",
			Object(Field("k", Number(1)), Field("k", Number(2))),
			`{"k":1,"k":2}`,
		},
		{
			"nested",
			Object(Field("xs", Array(Object(Field("y", Bool(true)))))),
			`{"xs":[{"y":true}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.val.Compact(); got != tt.want {
				t.Errorf("Compact() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	inputs := []string{
		"null",
		"true",
		"42",
		"-1.25",
		`"hello"`,
		"[]",
		"[1,2,3]",
		"{}",
		`{"a":1,"b":[true,null],"c":{"d":"e"}}`,
		`{"b":2,"a":1}`,
		`{"k":1,"k":2}`,
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			v, err := Parse([]byte(in))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if got := v.Compact(); got != in {
				t.Errorf("Parse/Compact round trip = %q, want %q", got, in)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	inputs := []string{
		"",
		"{",
		"[1,",
		`{"a"}`,
		"1 2",
		"tru",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			if _, err := Parse([]byte(in)); err == nil {
				t.Errorf("Parse(%q) succeeded, want error", in)
			}
		})
	}
}

func TestLookup_FirstOccurrenceWins(t *testing.T) {
	obj := Object(
		Field("k", Number(1)),
		Field("other", Bool(true)),
		Field("k", Number(2)),
	)

	v, ok := obj.Lookup("k")
	if !ok {
		t.Fatal("Lookup(k) not found")
	}
	if f, _ := v.AsNumber(); f != 1 {
		t.Errorf("Lookup(k) = %v, want first occurrence 1", f)
	}

	if _, ok := obj.Lookup("absent"); ok {
		t.Error("Lookup(absent) found a member")
	}
	if _, ok := Number(3).Lookup("k"); ok {
		t.Error("Lookup on a non-object found a member")
	}
}

func TestPrepend(t *testing.T) {
	base := Object(Field("a", Number(1)))
	got := base.Prepend("type", String("x"))

	if want := `{"type":"x","a":1}`; got.Compact() != want {
		t.Errorf("Prepend = %s, want %s", got.Compact(), want)
	}
	// Original is untouched.
	if want := `{"a":1}`; base.Compact() != want {
		t.Errorf("original mutated to %s", base.Compact())
	}
	// Prepending onto a non-object yields a fresh single-member object.
	if want := `{"type":"x"}`; Number(1).Prepend("type", String("x")).Compact() != want {
		t.Errorf("Prepend on non-object = %s, want %s", Number(1).Prepend("type", String("x")).Compact(), want)
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"same object", Object(Field("a", Number(1))), Object(Field("a", Number(1))), true},
		{"different member order", Object(Field("a", Number(1)), Field("b", Number(2))), Object(Field("b", Number(2)), Field("a", Number(1))), false},
		{"kind mismatch", Number(1), String("1"), false},
		{"null equal", Null(), Value{}, true},
		{"arrays", Array(Number(1)), Array(Number(1)), true},
		{"array length", Array(Number(1)), Array(Number(1), Number(2)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	kinds := map[Kind]string{
		KindNull:   "null",
		KindBool:   "boolean",
		KindNumber: "number",
		KindString: "string",
		KindArray:  "array",
		KindObject: "object",
	}
	for k, want := range kinds {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}
