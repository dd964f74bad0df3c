// Package errors provides structured error types for the stl-inspect
// library's outer API surface.
//
// Errors are categorized by Phase (where the error occurred) and Kind
// (error category). The Error type carries the inspected type name and
// address along with a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseValidate, errors.KindInvalidContents).
//		TypeName("std::vector<int>").
//		Addr(0x7ffe1000).
//		Detail("size exceeds capacity").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnknownContainer(typeName)
//	err := errors.InvalidContents(typeName, addr)
//
// All errors implement the standard error interface and support
// errors.Is/As.
//
// The core inspection path deliberately does not build these errors: it
// runs in crash/diagnostic contexts and reports failure through plain
// result codes (see the root package). FromResult bridges the two
// worlds for callers that prefer error values.
package errors
