package plan

import (
	"errors"
	"fmt"
	"go/constant"
	"go/token"
	"go/types"
	"strings"
	"unicode"
	"unicode/utf8"

	"accessor-generator/internal/analyze"
	"accessor-generator/internal/attr"
	"accessor-generator/internal/diagnostic"
)

// Option names.
const (
	OptIgnore     = "ignore"
	OptReturnType = "return_type"
	OptInto       = "into"
)

// Recognized option sets per directive and scope.
var (
	recordSchemas = map[string]attr.Schema{
		attr.NameGetters: {OptIgnore: constant.Bool},
		attr.NameSetters: {OptInto: constant.Bool},
	}
	fieldSchemas = map[string]attr.Schema{
		attr.NameGetters: {OptIgnore: constant.Bool, OptReturnType: constant.String},
		attr.NameSetters: {OptInto: constant.Bool},
	}
)

// Defaults is the base option layer, keyed by directive name. It uses the
// record-scope schemas.
type Defaults map[string]attr.Options

// Config holds planner configuration.
type Config struct {
	// Defaults are applied below record and field directives.
	Defaults Defaults
	// Receiver overrides the receiver name of generated methods.
	Receiver string
}

// Planner builds generation plans. It holds no per-run state and may be
// used from several goroutines.
type Planner struct {
	config Config
}

// NewPlanner creates a Planner, validating the default options.
func NewPlanner(config Config) (*Planner, error) {
	for name, opts := range config.Defaults {
		schema, ok := recordSchemas[name]
		if !ok {
			return nil, diagnostic.Errorf(diagnostic.InvalidConfig, token.Position{},
				"defaults: %q is not a known directive", name)
		}

		if err := opts.Check(name, schema); err != nil {
			return nil, err
		}
	}

	return &Planner{config: config}, nil
}

// Plan builds the generation plan for one package.
func (p *Planner) Plan(pkg *analyze.Package) (*Plan, error) {
	imports := newImportSet(pkg.Path)

	out := &Plan{
		PkgPath:     pkg.Path,
		PkgName:     pkg.Name,
		Dir:         pkg.Dir,
		Diagnostics: pkg.Diagnostics,
	}

	for _, rec := range pkg.Records {
		rp, err := p.planRecord(rec, imports)
		if err != nil {
			return nil, fmt.Errorf("planning %s: %w", rec.ID, err)
		}

		out.Records = append(out.Records, *rp)
	}

	out.Imports = imports.list()

	return out, nil
}

// resolvedOptions are the merged options of one field.
type resolvedOptions struct {
	getters attr.Options
	setters attr.Options
}

func (p *Planner) planRecord(rec *analyze.Record, imports *importSet) (*RecordPlan, error) {
	recGetters, err := attr.Parse(attr.Filter(rec.Attrs, attr.NameGetters), recordSchemas[attr.NameGetters])
	if err != nil {
		return nil, inRecord(err, rec.ID.Name, "")
	}

	recSetters, err := attr.Parse(attr.Filter(rec.Attrs, attr.NameSetters), recordSchemas[attr.NameSetters])
	if err != nil {
		return nil, inRecord(err, rec.ID.Name, "")
	}

	resolved := make([]resolvedOptions, len(rec.Fields))

	for i, f := range rec.Fields {
		fieldGetters, err := attr.Parse(attr.Filter(f.Attrs, attr.NameGetters), fieldSchemas[attr.NameGetters])
		if err != nil {
			return nil, inRecord(err, rec.ID.Name, f.Name)
		}

		fieldSetters, err := attr.Parse(attr.Filter(f.Attrs, attr.NameSetters), fieldSchemas[attr.NameSetters])
		if err != nil {
			return nil, inRecord(err, rec.ID.Name, f.Name)
		}

		resolved[i] = resolvedOptions{
			getters: attr.Merge(p.config.Defaults[attr.NameGetters], recGetters, fieldGetters),
			setters: attr.Merge(p.config.Defaults[attr.NameSetters], recSetters, fieldSetters),
		}
	}

	rc := p.newRecordContext(rec, imports)

	rp := &RecordPlan{
		Name:     rec.ID.Name,
		Receiver: rc.receiver,
		Pos:      rec.Pos,
	}

	for _, tp := range rec.TypeParams {
		rp.TypeParams = append(rp.TypeParams, TypeParam{
			Name:       tp.Obj().Name(),
			Constraint: types.TypeString(tp.Constraint(), analyze.RelativeTo(rec.Named.Obj().Pkg())),
		})
	}

	if rec.Derive.Getters {
		for i := range rec.Fields {
			fn, err := rc.accessor(&rec.Fields[i], resolved[i].getters)
			if err != nil {
				return nil, inRecord(err, rec.ID.Name, rec.Fields[i].Name)
			}

			if fn != nil {
				rp.Functions = append(rp.Functions, *fn)
			}
		}
	}

	if rec.Derive.Setters {
		for i := range rec.Fields {
			fn, err := rc.mutator(&rec.Fields[i], resolved[i].setters)
			if err != nil {
				return nil, inRecord(err, rec.ID.Name, rec.Fields[i].Name)
			}

			rp.Functions = append(rp.Functions, *fn)
		}
	}

	return rp, nil
}

// recordContext carries what both synthesizers need about one record.
type recordContext struct {
	rec      *analyze.Record
	imports  *importSet
	receiver Param
}

func (p *Planner) newRecordContext(rec *analyze.Record, imports *importSet) *recordContext {
	name := p.config.Receiver
	if name == "" {
		name = rec.Receiver
	}

	if name == "" {
		name = receiverName(rec.ID.Name)
	}

	typ := rec.ID.Name
	if len(rec.TypeParams) > 0 {
		names := make([]string, 0, len(rec.TypeParams))
		for _, tp := range rec.TypeParams {
			names = append(names, tp.Obj().Name())
		}

		typ += "[" + strings.Join(names, ", ") + "]"
	}

	return &recordContext{
		rec:      rec,
		imports:  imports,
		receiver: Param{Name: name, Type: "*" + typ},
	}
}

// typeParamDecls returns the record's type parameters with constraints.
// Constraints are qualified on demand so only functions that declare them
// pull in their imports.
func (rc *recordContext) typeParamDecls() []TypeParam {
	decls := make([]TypeParam, 0, len(rc.rec.TypeParams)+1)
	for _, tp := range rc.rec.TypeParams {
		decls = append(decls, TypeParam{
			Name:       tp.Obj().Name(),
			Constraint: types.TypeString(tp.Constraint(), rc.imports.qualifier),
		})
	}

	return decls
}

// freshTypeParam returns a type parameter name that shadows nothing the
// function refers to: the record's type parameters, package-level names
// and any identifier appearing in the given type expressions.
func (rc *recordContext) freshTypeParam(exprs ...string) string {
	taken := make(map[string]bool, len(rc.rec.TypeParams))
	for _, tp := range rc.typeParamDecls() {
		taken[tp.Name] = true
		exprs = append(exprs, tp.Constraint)
	}

	for _, expr := range exprs {
		for _, ident := range strings.FieldsFunc(expr, notIdentRune) {
			taken[ident] = true
		}
	}

	scope := rc.pkg().Scope()

	name := "V"
	for i := 1; taken[name] || scope.Lookup(name) != nil; i++ {
		name = fmt.Sprintf("V%d", i)
	}

	return name
}

func (rc *recordContext) pkg() *types.Package {
	return rc.rec.Named.Obj().Pkg()
}

func notIdentRune(r rune) bool {
	return r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// exportName upper-cases the first letter of name.
func exportName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}

	return string(unicode.ToUpper(r)) + name[size:]
}

// receiverName derives a receiver name from a type name: its lower-cased
// first letter.
func receiverName(typeName string) string {
	r, _ := utf8.DecodeRuneInString(typeName)
	if r == utf8.RuneError || !unicode.IsLetter(r) {
		return "r"
	}

	return string(unicode.ToLower(r))
}

func inRecord(err error, record, field string) error {
	var de *diagnostic.Error
	if errors.As(err, &de) {
		de.In(record, field)
	}

	return err
}
