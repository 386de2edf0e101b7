package analyze

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"

	"accessor-generator/internal/attr"
	"accessor-generator/internal/common"
	"accessor-generator/internal/diagnostic"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports |
	packages.NeedDeps

// DefaultBuildTag excludes previously generated files while loading.
const DefaultBuildTag = "accessorgen"

// deriveSchema is the recognized option set of the derive directive.
var deriveSchema = attr.Schema{
	attr.NameGetters: constant.Bool,
	attr.NameSetters: constant.Bool,
}

// LoadOptions configures a Loader.
type LoadOptions struct {
	// Dir is the working directory for package patterns (default: current).
	Dir string
	// Env overrides the environment of the underlying go command.
	Env []string
	// BuildTag is set while loading so generated files can opt out.
	BuildTag string
	// Tags are additional build tags.
	Tags []string
	// Types selects records by name in addition to derive directives.
	Types []string
}

// Loader loads Go packages and enumerates their records.
type Loader struct {
	opts LoadOptions
}

// NewLoader creates a new Loader.
func NewLoader(opts LoadOptions) *Loader {
	if opts.BuildTag == "" {
		opts.BuildTag = DefaultBuildTag
	}

	return &Loader{opts: opts}
}

// Load loads the packages matching patterns and enumerates their records.
// Patterns are standard Go package patterns (e.g., ".", "./examples/...").
//
// List and parse errors are fatal. Type errors are not, since sources may
// already call accessors that have not been generated yet; they are recorded
// as infos on the package.
func (l *Loader) Load(ctx context.Context, patterns ...string) ([]*Package, error) {
	cfg := &packages.Config{
		Mode:       LoadMode,
		Context:    ctx,
		Dir:        l.opts.Dir,
		Env:        l.opts.Env,
		BuildFlags: []string{"-tags=" + strings.Join(append([]string{l.opts.BuildTag}, l.opts.Tags...), ",")},
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found: %v", patterns)
	}

	var errs error
	for _, pkg := range pkgs {
		typeErrors := slices.ContainsFunc(pkg.Errors, func(e packages.Error) bool {
			return e.Kind == packages.TypeError
		})

		for _, e := range pkg.Errors {
			if e.Kind == packages.TypeError || typeErrors && compilerOutput(pkg, e) {
				continue
			}

			errs = errors.Join(errs, e)
		}
	}

	if errs != nil {
		return nil, fmt.Errorf("package errors: %w", errs)
	}

	result := make([]*Package, 0, len(pkgs))
	for _, pkg := range pkgs {
		p, err := l.processPackage(pkg)
		if err != nil {
			return nil, err
		}

		result = append(result, p)
	}

	for _, name := range l.opts.Types {
		if !slices.ContainsFunc(result, func(p *Package) bool { return p.Record(name) != nil }) {
			err := diagnostic.Errorf(diagnostic.UnsupportedShape, token.Position{},
				"type %s is not declared in %v", name, patterns)

			return nil, err.In(name, "")
		}
	}

	return result, nil
}

// compilerOutput reports whether e is the compiler restating pkg's type
// errors, which go list does when it builds export data.
func compilerOutput(pkg *packages.Package, e packages.Error) bool {
	return e.Kind == packages.ListError && strings.HasPrefix(e.Msg, "# "+pkg.PkgPath)
}

// processPackage finds the selected records of a loaded package.
func (l *Loader) processPackage(pkg *packages.Package) (*Package, error) {
	out := &Package{
		Path:  pkg.PkgPath,
		Name:  pkg.Name,
		Types: pkg.Types,
	}

	if file, ok := common.First(pkg.GoFiles); ok {
		out.Dir = filepath.Dir(file)
	}

	for _, e := range pkg.Errors {
		out.Diagnostics.AddInfo("type-error", e.Msg, "", "", token.Position{})
	}

	wanted := make(map[string]bool, len(l.opts.Types))
	for _, name := range l.opts.Types {
		wanted[name] = true
	}

	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}

			for _, s := range gen.Specs {
				spec := s.(*ast.TypeSpec)
				rec, err := l.processTypeSpec(pkg, file, gen, spec, wanted[spec.Name.Name], &out.Diagnostics)
				if err != nil {
					return nil, fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
				}

				if rec != nil {
					out.Records = append(out.Records, rec)
				}
			}
		}
	}

	return out, nil
}

// processTypeSpec returns the record for spec, or nil if spec is not selected.
func (l *Loader) processTypeSpec(
	pkg *packages.Package,
	file *ast.File,
	gen *ast.GenDecl,
	spec *ast.TypeSpec,
	wanted bool,
	diags *diagnostic.Diagnostics,
) (*Record, error) {
	name := spec.Name.Name
	pos := pkg.Fset.Position(spec.Pos())

	docs := []*ast.CommentGroup{spec.Doc}
	if !gen.Lparen.IsValid() {
		docs = append(docs, gen.Doc)
	}

	attrs, err := attr.Extract(pkg.Fset, docs...)
	if err != nil {
		return nil, withRecord(err, name)
	}

	derives := attr.Filter(attrs, attr.NameDerive)
	if len(derives) == 0 && !wanted {
		if len(attrs) > 0 {
			diags.AddWarning("not-derived",
				"type has accessor directives but no //accessor:derive directive; skipped", name, "", pos)
		}

		return nil, nil
	}

	derive, err := parseDerive(derives)
	if err != nil {
		return nil, withRecord(err, name)
	}

	if spec.Assign.IsValid() {
		return nil, diagnostic.Errorf(diagnostic.UnsupportedShape, pos,
			"alias declarations cannot carry generated methods").In(name, "")
	}

	obj, ok := pkg.TypesInfo.Defs[spec.Name].(*types.TypeName)
	if !ok {
		return nil, diagnostic.Errorf(diagnostic.UnsupportedShape, pos, "no type information").In(name, "")
	}

	named, ok := obj.Type().(*types.Named)
	if !ok {
		return nil, diagnostic.Errorf(diagnostic.UnsupportedShape, pos, "not a defined type").In(name, "")
	}

	st, ok := named.Underlying().(*types.Struct)
	if !ok {
		return nil, diagnostic.Errorf(diagnostic.UnsupportedShape, pos,
			"accessors can only be derived for structs with named fields, not %s", Describe(named)).In(name, "")
	}

	rec := &Record{
		ID:       TypeID{PkgPath: pkg.PkgPath, Name: name},
		Named:    named,
		Attrs:    slices.DeleteFunc(attrs, func(a attr.Attribute) bool { return a.Name == attr.NameDerive }),
		Derive:   derive,
		Imports:  fileImports(pkg.TypesInfo, file),
		Receiver: existingReceiver(named),
		Pos:      pos,
	}

	for i := 0; i < named.TypeParams().Len(); i++ {
		rec.TypeParams = append(rec.TypeParams, named.TypeParams().At(i))
	}

	astFields := make(map[token.Pos]*ast.Field)
	if structType, ok := spec.Type.(*ast.StructType); ok {
		for _, f := range structType.Fields.List {
			for _, ident := range f.Names {
				astFields[ident.Pos()] = f
			}
		}
	}

	for i := 0; i < st.NumFields(); i++ {
		v := st.Field(i)
		fieldPos := pkg.Fset.Position(v.Pos())

		if v.Embedded() {
			diags.AddInfo("embedded", "embedded field skipped", name, v.Name(), fieldPos)
			continue
		}

		if v.Name() == "_" {
			diags.AddInfo("blank", "blank field skipped", name, v.Name(), fieldPos)
			continue
		}

		field := Field{
			Name: v.Name(),
			Type: v.Type(),
			Pos:  fieldPos,
		}

		if af, ok := astFields[v.Pos()]; ok {
			field.Attrs, err = attr.Extract(pkg.Fset, af.Doc, af.Comment)
			if err != nil {
				return nil, withField(err, name, field.Name)
			}
		}

		if d := attr.Filter(field.Attrs, attr.NameDerive); len(d) > 0 {
			return nil, diagnostic.Errorf(diagnostic.MalformedAttribute, d[0].Pos,
				"%s%s is only valid on a type declaration", attr.Prefix, d[0].Text).In(name, field.Name)
		}

		rec.Fields = append(rec.Fields, field)
	}

	return rec, nil
}

// parseDerive resolves the derive directives of a record. A record selected
// without any derive directive gets both synthesizers.
func parseDerive(derives []attr.Attribute) (Derive, error) {
	if len(derives) == 0 {
		return Derive{Getters: true, Setters: true}, nil
	}

	opts, err := attr.Parse(derives, deriveSchema)
	if err != nil {
		return Derive{}, err
	}

	var d Derive

	if d.Getters, err = opts.Bool(attr.NameGetters, false); err != nil {
		return Derive{}, err
	}

	if d.Setters, err = opts.Bool(attr.NameSetters, false); err != nil {
		return Derive{}, err
	}

	return d, nil
}

// fileImports maps the package names visible in file to their packages.
// Blank and dot imports are omitted.
func fileImports(info *types.Info, file *ast.File) map[string]ImportRef {
	imports := make(map[string]ImportRef)

	for _, spec := range file.Imports {
		var obj types.Object
		if spec.Name != nil {
			obj = info.Defs[spec.Name]
		} else {
			obj = info.Implicits[spec]
		}

		pkgName, ok := obj.(*types.PkgName)
		if ok {
			if name := pkgName.Name(); name != "_" && name != "." {
				imports[name] = ImportRef{Path: pkgName.Imported().Path(), Name: pkgName.Imported().Name()}
			}
			continue
		}

		// Unresolved import: fall back to the last path element.
		if spec.Name == nil {
			if path, err := strconv.Unquote(spec.Path.Value); err == nil {
				imports[common.PkgAlias(path)] = ImportRef{Path: path, Name: common.PkgAlias(path)}
			}
		}
	}

	return imports
}

// existingReceiver returns the receiver name of the first named method of
// named, so generated methods match hand-written ones.
func existingReceiver(named *types.Named) string {
	for i := 0; i < named.NumMethods(); i++ {
		sig, ok := named.Method(i).Type().(*types.Signature)
		if !ok || sig.Recv() == nil {
			continue
		}

		if name := sig.Recv().Name(); name != "" && name != "_" {
			return name
		}
	}

	return ""
}

func withRecord(err error, record string) error {
	var de *diagnostic.Error
	if errors.As(err, &de) {
		return de.In(record, "")
	}

	return err
}

func withField(err error, record, field string) error {
	var de *diagnostic.Error
	if errors.As(err, &de) {
		return de.In(record, field)
	}

	return err
}
