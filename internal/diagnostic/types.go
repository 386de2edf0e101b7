package diagnostic

import (
	"fmt"
	"go/token"
	"strings"

	"accessor-generator/internal/common"
)

// Error is a fatal generation error. Any Error aborts the whole run.
type Error struct {
	// Kind classifies the error.
	Kind Kind
	// Message is the human-readable description.
	Message string
	// Pos locates the offending directive or declaration (may be invalid).
	Pos token.Position
	// Record is the record type name this relates to (if any).
	Record string
	// Field is the field name this relates to (if any).
	Field string
}

// Errorf creates an Error of the given kind at pos.
func Errorf(kind Kind, pos token.Position, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Pos:     pos,
	}
}

// In fills in the record and field context when not already set.
func (e *Error) In(record, field string) *Error {
	if e.Record == "" {
		e.Record = record
	}

	if e.Field == "" {
		e.Field = field
	}

	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder

	if e.Pos.IsValid() || e.Pos.Filename != "" {
		sb.WriteString(e.Pos.String())
		sb.WriteString(": ")
	}

	if path := joinPath(e.Record, e.Field); path != "" {
		sb.WriteString(path)
		sb.WriteString(": ")
	}

	sb.WriteString(e.Kind.String())

	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}

	return sb.String()
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Kind == e.Kind && t.Message == ""
}

// Diagnostics holds the non-fatal notes collected during a run.
type Diagnostics struct {
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single non-fatal message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a short identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Record identifies which record this relates to (if any).
	Record string
	// Field identifies which field this relates to (if any).
	Field string
	// Pos locates the declaration (may be invalid).
	Pos token.Position
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	default:
		return common.UnknownStr
	}
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, record, field string, pos token.Position) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  message,
		Record:   record,
		Field:    field,
		Pos:      pos,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, record, field string, pos token.Position) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: SeverityInfo,
		Code:     code,
		Message:  message,
		Record:   record,
		Field:    field,
		Pos:      pos,
	})
}

// HasWarnings returns true if there are any warning diagnostics.
func (d *Diagnostics) HasWarnings() bool {
	return len(d.Warnings) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// All returns warnings followed by infos.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.Warnings)+len(d.Infos))
	all = append(all, d.Warnings...)

	return append(all, d.Infos...)
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Pos.IsValid() {
		prefix = append(prefix, d.Pos.String()+":")
	}

	if path := joinPath(d.Record, d.Field); path != "" {
		prefix = append(prefix, path+":")
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + " " + msg
	}

	return msg
}

func joinPath(record, field string) string {
	switch {
	case record != "" && field != "":
		return record + "." + field
	case record != "":
		return record
	default:
		return field
	}
}
