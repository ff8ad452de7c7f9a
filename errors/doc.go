// Package errors provides structured error types for the treecodec library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes rich context: field path, the expected
// shape, and a compact rendering of the offending JSON fragment.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindShapeMismatch).
//		Path("user", "age").
//		Detail("number expected").
//		Fragment(fragment).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.ObjectExpected(path, fragment)
//	err := errors.FieldMissing(path, "name")
//
// All errors implement the standard error interface and support errors.Is/As.
// Decode errors for independent fields are accumulated with
// go.uber.org/multierr rather than short-circuiting; see the root package.
package errors
