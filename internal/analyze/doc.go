// Package analyze loads Go packages and enumerates annotated records.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to find
// struct types selected for generation and to pair each field with the
// accessor directives written on it.
//
// Key types:
//   - TypeID: package import path + type name
//   - Record: a selected struct type with its type parameters and fields
//   - Field: a named struct field with its declared type and directives
package analyze
