package treecodec

import (
	stderrors "errors"
	"reflect"
	"strings"
	"testing"

	"github.com/wippyai/treecodec/errors"
	"github.com/wippyai/treecodec/jtree"
	"github.com/wippyai/treecodec/meta"
)

type stoppedState struct{}

func TestSingleton_BareStringRoundTrip(t *testing.T) {
	c, err := NewSingleton(stoppedState{}, meta.TypeHint{Value: "Stopped"})
	if err != nil {
		t.Fatalf("NewSingleton failed: %v", err)
	}

	tree, err := c.Encode(stoppedState{})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if want := `"Stopped"`; tree.Compact() != want {
		t.Errorf("Encode = %s, want %s", tree.Compact(), want)
	}

	out, err := c.Decode(tree)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if _, ok := out.(stoppedState); !ok {
		t.Errorf("Decode = %T, want stoppedState", out)
	}
}

func TestSingleton_DecodeMismatch(t *testing.T) {
	c, err := NewSingleton(stoppedState{}, meta.TypeHint{Value: "Stopped"})
	if err != nil {
		t.Fatalf("NewSingleton failed: %v", err)
	}

	tests := []struct {
		name string
		tree jtree.Value
	}{
		{"other string", jtree.String("Running")},
		{"non-string", jtree.Number(1)},
		{"object", jtree.Object(jtree.Field("type", jtree.String("Stopped")))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Decode(tt.tree)
			if err == nil {
				t.Fatal("Decode succeeded, want error")
			}
			var ce *errors.Error
			if !stderrors.As(err, &ce) || ce.Kind != errors.KindShapeMismatch {
				t.Fatalf("error = %v, want shape mismatch", err)
			}
			if !strings.Contains(ce.Error(), `"Stopped"`) {
				t.Errorf("error %q does not name the expected literal", ce.Error())
			}
		})
	}
}

func TestCase_ObjectShapedRoundTrip(t *testing.T) {
	c, err := NewCase(stoppedState{}, meta.TypeHint{Value: "stopped"})
	if err != nil {
		t.Fatalf("NewCase failed: %v", err)
	}

	tree, err := c.Encode(stoppedState{})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if want := `{"type":"stopped"}`; tree.Compact() != want {
		t.Errorf("Encode = %s, want %s", tree.Compact(), want)
	}

	out, err := c.Decode(tree)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if _, ok := out.(stoppedState); !ok {
		t.Errorf("Decode = %T, want stoppedState", out)
	}
}

func TestCase_DistinguishesMissingFromWrongValue(t *testing.T) {
	c, err := NewCase(stoppedState{}, meta.TypeHint{Field: "state", Value: "stopped"})
	if err != nil {
		t.Fatalf("NewCase failed: %v", err)
	}

	tests := []struct {
		name string
		tree jtree.Value
		kind errors.Kind
	}{
		{"non-object", jtree.String("stopped"), errors.KindShapeMismatch},
		{"field missing", jtree.Object(jtree.Field("other", jtree.String("x"))), errors.KindFieldMissing},
		{"non-string field counts as missing", jtree.Object(jtree.Field("state", jtree.Number(1))), errors.KindFieldMissing},
		{"wrong value", jtree.Object(jtree.Field("state", jtree.String("running"))), errors.KindInvalidDiscriminator},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Decode(tt.tree)
			if err == nil {
				t.Fatal("Decode succeeded, want error")
			}
			var ce *errors.Error
			if !stderrors.As(err, &ce) || ce.Kind != tt.kind {
				t.Errorf("error = %v, want kind %s", err, tt.kind)
			}
		})
	}
}

type color int

const (
	colorRed color = iota
	colorGreen
	colorBlue
)

func colorCodec(t *testing.T) Codec {
	t.Helper()
	c, err := NewEnum(reflect.TypeOf(colorRed), "Red", "Green", "Blue")
	if err != nil {
		t.Fatalf("NewEnum failed: %v", err)
	}
	return c
}

func TestEnum_RoundTrip(t *testing.T) {
	c := colorCodec(t)

	for member, name := range map[color]string{
		colorRed:   "Red",
		colorGreen: "Green",
		colorBlue:  "Blue",
	} {
		tree, err := c.Encode(member)
		if err != nil {
			t.Fatalf("Encode(%d) failed: %v", member, err)
		}
		if s, _ := tree.AsString(); s != name {
			t.Errorf("Encode(%d) = %q, want %q", member, s, name)
		}

		out, err := c.Decode(tree)
		if err != nil {
			t.Fatalf("Decode(%q) failed: %v", name, err)
		}
		if out.(color) != member {
			t.Errorf("Decode(%q) = %v, want %v", name, out, member)
		}
	}
}

func TestEnum_InvalidNameListsMembers(t *testing.T) {
	c := colorCodec(t)

	_, err := c.Decode(jtree.String("Purple"))
	if err == nil {
		t.Fatal("Decode accepted an unknown member name")
	}
	var ce *errors.Error
	if !stderrors.As(err, &ce) || ce.Kind != errors.KindInvalidEnum {
		t.Fatalf("error = %v, want invalid enum", err)
	}
	msg := ce.Error()
	for _, name := range []string{"Purple", "Red", "Green", "Blue"} {
		if !strings.Contains(msg, name) {
			t.Errorf("error %q does not mention %q", msg, name)
		}
	}
}

func TestEnum_CaseSensitive(t *testing.T) {
	c := colorCodec(t)
	if _, err := c.Decode(jtree.String("red")); err == nil {
		t.Error("Decode accepted a case-mismatched member name")
	}
}

func TestEnum_DecodeNonString(t *testing.T) {
	c := colorCodec(t)
	_, err := c.Decode(jtree.Number(0))
	if err == nil {
		t.Fatal("Decode accepted a non-string")
	}
	var ce *errors.Error
	if !stderrors.As(err, &ce) || ce.Kind != errors.KindShapeMismatch {
		t.Errorf("error = %v, want shape mismatch", err)
	}
}

func TestEnum_EncodeOutOfRange(t *testing.T) {
	c := colorCodec(t)
	_, err := c.Encode(color(99))
	if err == nil {
		t.Fatal("Encode accepted an out-of-range member")
	}
	var ce *errors.Error
	if !stderrors.As(err, &ce) || ce.Kind != errors.KindConfig {
		t.Errorf("error = %v, want config error", err)
	}
}

func TestNewEnum_ConfigErrors(t *testing.T) {
	tests := []struct {
		name  string
		build func() (Codec, error)
	}{
		{"nil type", func() (Codec, error) { return NewEnum(nil, "A") }},
		{"non-integer kind", func() (Codec, error) { return NewEnum(reflect.TypeOf(""), "A") }},
		{"no members", func() (Codec, error) { return NewEnum(reflect.TypeOf(colorRed)) }},
		{"duplicate name", func() (Codec, error) { return NewEnum(reflect.TypeOf(colorRed), "A", "A") }},
		{"empty name", func() (Codec, error) { return NewEnum(reflect.TypeOf(colorRed), "A", "") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.build(); err == nil {
				t.Error("NewEnum succeeded, want config error")
			}
		})
	}
}
