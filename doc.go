// Package treecodec derives bidirectional converters between Go types and a
// generic JSON tree, from declarative structural metadata instead of
// hand-written per-type conversion code.
//
// # Architecture Overview
//
// The library is organized into a small set of packages with distinct
// responsibilities:
//
//	treecodec/           Root package: codec derivation for products, sums,
//	                     singletons and enumerations, plus primitive codecs
//	├── jtree/           Generic JSON tree value (ordered object members,
//	                     duplicate keys), compact rendering, parser
//	├── meta/            Field/type metadata model and the process-wide
//	                     metadata cache
//	├── errors/          Structured error types for debugging
//	├── descriptor/      YAML metadata provider
//	└── cmd/codecheck/   Descriptor validation CLI
//
// # Quick Start
//
// Derive an object codec for a struct:
//
//	type User struct {
//		Name string
//		Age  int
//	}
//
//	userCodec, err := treecodec.NewProduct(reflect.TypeOf(User{}), meta.Descriptor{
//		Fields: []meta.FieldDescriptor{
//			{Name: "name"},
//			{Name: "age", Default: 0, HasDefault: true},
//		},
//	}, treecodec.String, treecodec.Int)
//
//	tree, err := userCodec.Encode(User{Name: "ada", Age: 36})
//	v, err := userCodec.Decode(tree) // v.(User)
//
// # Error Accumulation
//
// Decoding a product never stops at the first failing field: every field is
// decoded independently and all failures are combined into one error with
// go.uber.org/multierr. Use DecodeErrors to recover the ordered list:
//
//	_, err := userCodec.Decode(tree)
//	for _, e := range treecodec.DecodeErrors(err) {
//		fmt.Println(e)
//	}
//
// Programmer misconfiguration (an ignored field without a default, an
// unregistered type-switch alternative) is reported as a config-kind error
// from codec construction or encode, never mixed into decode results.
package treecodec
