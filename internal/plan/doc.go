// Package plan turns enumerated records into generated-function descriptors
// consumed by code generation.
//
// Resolution pipeline, per record:
//  1. Parse record-level getters/setters directives against their schemas
//  2. For each field, parse field-level directives and merge the layers
//     settings defaults < record < field
//  3. Synthesize accessors (unless ignored), then mutators
//
// Any error aborts the whole plan; there is no partial result.
package plan
