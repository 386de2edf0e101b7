package analyze

import (
	"go/token"
	"go/types"

	"accessor-generator/internal/attr"
	"accessor-generator/internal/diagnostic"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "accessor-generator/examples/simple"
	Name    string // e.g., "Simple"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// Derive records which synthesizers run for a record.
type Derive struct {
	Getters bool
	Setters bool
}

// Record is a struct type selected for generation.
type Record struct {
	ID         TypeID
	Named      *types.Named
	TypeParams []*types.TypeParam
	Fields     []Field
	// Attrs are the record-level directives other than derive.
	Attrs  []attr.Attribute
	Derive Derive
	// Imports maps the package names visible in the declaring file to
	// the packages they refer to.
	Imports map[string]ImportRef
	// Receiver is the receiver name used by existing methods, if any.
	Receiver string
	Pos      token.Position
}

// ImportRef is an imported package as seen from a source file.
type ImportRef struct {
	Path string
	// Name is the package's declared name, which may differ from the
	// name it is imported under.
	Name string
}

// Field describes a named struct field.
type Field struct {
	Name  string
	Type  types.Type
	Attrs []attr.Attribute
	Pos   token.Position
}

// Exported returns whether the field is exported.
func (f *Field) Exported() bool {
	return token.IsExported(f.Name)
}

// Package holds the records found in one loaded package.
type Package struct {
	Path    string // Import path
	Name    string // Package name
	Dir     string // Directory holding the package sources
	Types   *types.Package
	Records []*Record
	// Diagnostics collects non-fatal notes found while enumerating.
	Diagnostics diagnostic.Diagnostics
}

// Record returns the record with the given name, or nil.
func (p *Package) Record(name string) *Record {
	for _, r := range p.Records {
		if r.ID.Name == name {
			return r
		}
	}

	return nil
}
