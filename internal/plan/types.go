package plan

import (
	"go/token"
	"strings"

	"accessor-generator/internal/diagnostic"
)

// Plan holds everything needed to generate the accessor file of one package.
type Plan struct {
	PkgPath string
	PkgName string
	Dir     string
	Records []RecordPlan
	Imports []Import
	// Diagnostics carries the loader's non-fatal notes.
	Diagnostics diagnostic.Diagnostics
}

// Functions returns the number of generated functions across all records.
func (p *Plan) Functions() int {
	n := 0
	for _, r := range p.Records {
		n += len(r.Functions)
	}

	return n
}

// RecordPlan lists the functions generated for one record.
type RecordPlan struct {
	Name       string
	TypeParams []TypeParam
	Receiver   Param
	Functions  []Function
	Pos        token.Position
}

// Import is a package imported by the generated file.
type Import struct {
	Name string
	Path string
	// Alias is true when Name differs from the imported package's own name.
	Alias bool
}

// FunctionKind distinguishes accessors from mutators.
type FunctionKind int

const (
	KindAccessor FunctionKind = iota
	KindMutator
)

// String returns a human-readable kind name.
func (k FunctionKind) String() string {
	switch k {
	case KindAccessor:
		return "accessor"
	case KindMutator:
		return "mutator"
	default:
		return "unknown"
	}
}

// TypeParam is a type parameter with its constraint, as Go source.
type TypeParam struct {
	Name       string
	Constraint string
}

// Param is a named parameter (or receiver) and its type, as Go source.
type Param struct {
	Name string
	Type string
}

// Function describes one generated function.
type Function struct {
	Kind FunctionKind
	Name string
	// Field is the struct field the function reads or writes.
	Field string
	// Receiver is nil for package-level functions.
	Receiver   *Param
	TypeParams []TypeParam
	Params     []Param
	// Result is the result type, empty for none.
	Result string
	// Body is the single statement making up the function body.
	Body string
	Doc  string
}

// Signature renders the function header without the body, e.g.
// "func (s *Simple) NormalField() string".
func (f Function) Signature() string {
	var sb strings.Builder

	sb.WriteString("func ")

	if f.Receiver != nil {
		sb.WriteString("(" + f.Receiver.Name + " " + f.Receiver.Type + ") ")
	}

	sb.WriteString(f.Name)

	if len(f.TypeParams) > 0 {
		tps := make([]string, 0, len(f.TypeParams))
		for _, tp := range f.TypeParams {
			tps = append(tps, tp.Name+" "+tp.Constraint)
		}

		sb.WriteString("[" + strings.Join(tps, ", ") + "]")
	}

	params := make([]string, 0, len(f.Params))
	for _, p := range f.Params {
		params = append(params, p.Name+" "+p.Type)
	}

	sb.WriteString("(" + strings.Join(params, ", ") + ")")

	if f.Result != "" {
		sb.WriteString(" " + f.Result)
	}

	return sb.String()
}
