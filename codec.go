package treecodec

import (
	stderrors "errors"
	"sync"

	"go.uber.org/multierr"

	"github.com/wippyai/treecodec/errors"
	"github.com/wippyai/treecodec/jtree"
)

// Codec converts values of one Go type to and from the JSON tree. Both
// directions are pure, synchronous tree transformations; Decode reports
// every independent failure it finds, combined with multierr.
type Codec interface {
	Encode(v any) (jtree.Value, error)
	Decode(tree jtree.Value) (any, error)
}

type funcCodec struct {
	encode func(any) (jtree.Value, error)
	decode func(jtree.Value) (any, error)
}

// Func adapts a pair of pure functions into a Codec. This is the boundary
// for caller-supplied per-field codecs.
func Func(encode func(any) (jtree.Value, error), decode func(jtree.Value) (any, error)) Codec {
	return &funcCodec{encode: encode, decode: decode}
}

func (c *funcCodec) Encode(v any) (jtree.Value, error) {
	return c.encode(v)
}

func (c *funcCodec) Decode(tree jtree.Value) (any, error) {
	return c.decode(tree)
}

type lazyCodec struct {
	resolve func() Codec
	once    sync.Once
	codec   Codec
}

// Lazy defers codec resolution until first use, breaking construction
// cycles for recursive types.
func Lazy(resolve func() Codec) Codec {
	return &lazyCodec{resolve: resolve}
}

func (c *lazyCodec) get() Codec {
	c.once.Do(func() {
		c.codec = c.resolve()
	})
	return c.codec
}

func (c *lazyCodec) Encode(v any) (jtree.Value, error) {
	return c.get().Encode(v)
}

func (c *lazyCodec) Decode(tree jtree.Value) (any, error) {
	return c.get().Decode(tree)
}

// DecodeErrors unpacks an error returned by Codec.Decode into the ordered
// list of structured decode errors it accumulated. A nil error yields nil.
// Errors that did not originate in this library are wrapped.
func DecodeErrors(err error) []*errors.Error {
	if err == nil {
		return nil
	}
	flat := multierr.Errors(err)
	out := make([]*errors.Error, 0, len(flat))
	for _, e := range flat {
		var ce *errors.Error
		if stderrors.As(e, &ce) {
			out = append(out, ce)
			continue
		}
		out = append(out, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Detail("%s", e.Error()).
			Cause(e).
			Build())
	}
	return out
}

// prefixFieldErrors attributes every error in err to the named field by
// prepending it to each structured error's path. Combined errors are
// flattened first so accumulation stays order-preserving.
func prefixFieldErrors(field string, err error) []error {
	flat := multierr.Errors(err)
	out := make([]error, 0, len(flat))
	for _, e := range flat {
		var ce *errors.Error
		if stderrors.As(e, &ce) {
			out = append(out, ce.WithPathPrefix(field))
			continue
		}
		out = append(out, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Path(field).
			Detail("%s", e.Error()).
			Cause(e).
			Build())
	}
	return out
}
