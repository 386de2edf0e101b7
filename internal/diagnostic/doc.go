// Package diagnostic provides the error taxonomy, structured warnings and
// informational notes for the accessor generator.
//
// Key capabilities:
//   - Typed generation errors (MalformedAttribute, UnknownOption, ...)
//   - Source positions and record/field context for every message
//   - Non-fatal notes for skipped fields and unselected types
package diagnostic
