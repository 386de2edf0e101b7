// Package attr parses accessor directives and resolves them into options.
//
// A directive is a line comment of the form
//
//	//accessor:name(key, key = literal, ...)
//
// attached to a type declaration or a struct field. Bare keys are recorded
// as boolean true; literal values are kept as go/constant values. Keys are
// validated against a Schema supplied by the consumer, and options from
// several sites are combined with Merge, later layers winning.
package attr
