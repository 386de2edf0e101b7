package plan

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/types"

	"accessor-generator/internal/analyze"
	"accessor-generator/internal/attr"
	"accessor-generator/internal/diagnostic"
)

// accessor synthesizes the accessor of f, or returns nil when the field is
// marked getters(ignore).
func (rc *recordContext) accessor(f *analyze.Field, opts attr.Options) (*Function, error) {
	ignore, err := opts.Bool(OptIgnore, false)
	if err != nil {
		return nil, err
	}

	if ignore {
		return nil, nil
	}

	name := exportName(f.Name)
	switch {
	case f.Exported():
		return nil, diagnostic.Errorf(diagnostic.NameCollision, f.Pos,
			"accessor %s() would collide with the field itself; mark it %sgetters(ignore)", name, attr.Prefix)
	case name == f.Name:
		return nil, diagnostic.Errorf(diagnostic.NameCollision, f.Pos,
			"field %s has no exported form to name an accessor after; mark it %sgetters(ignore)", f.Name, attr.Prefix)
	}

	result, err := rc.returnType(f, opts)
	if err != nil {
		return nil, err
	}

	return &Function{
		Kind:     KindAccessor,
		Name:     name,
		Field:    f.Name,
		Receiver: &rc.receiver,
		Result:   result,
		Body:     fmt.Sprintf("return %s.%s", rc.receiver.Name, f.Name),
		Doc:      fmt.Sprintf("%s returns the %s field of %s.", name, f.Name, rc.rec.ID.Name),
	}, nil
}

// returnType resolves the accessor's result type: return_type verbatim when
// set, the field's declared type otherwise.
func (rc *recordContext) returnType(f *analyze.Field, opts attr.Options) (string, error) {
	rt, ok, err := opts.String(OptReturnType)
	if err != nil {
		return "", err
	}

	if !ok {
		return types.TypeString(f.Type, rc.imports.qualifier), nil
	}

	pos := opts[OptReturnType].Pos

	expr, err := parser.ParseExpr(rt)
	if err != nil || !isTypeExpr(expr) {
		return "", diagnostic.Errorf(diagnostic.InvalidOptionType, pos,
			"%s %q is not a Go type", OptReturnType, rt)
	}

	for _, q := range qualifiers(expr) {
		ref, ok := rc.rec.Imports[q]
		if !ok {
			return "", diagnostic.Errorf(diagnostic.InvalidOptionType, pos,
				"%s %q refers to package %s, which the file declaring %s does not import",
				OptReturnType, rt, q, rc.rec.ID.Name)
		}

		if err := rc.imports.use(q, ref.Path, ref.Name); err != nil {
			return "", diagnostic.Errorf(diagnostic.InvalidOptionType, pos, "%s %q: %v", OptReturnType, rt, err)
		}
	}

	return rt, nil
}

// isTypeExpr reports whether e has the syntax of a type.
func isTypeExpr(e ast.Expr) bool {
	switch t := e.(type) {
	case *ast.Ident:
		return true
	case *ast.SelectorExpr:
		_, ok := t.X.(*ast.Ident)
		return ok
	case *ast.StarExpr:
		return isTypeExpr(t.X)
	case *ast.ParenExpr:
		return isTypeExpr(t.X)
	case *ast.ArrayType:
		return isTypeExpr(t.Elt)
	case *ast.MapType:
		return isTypeExpr(t.Key) && isTypeExpr(t.Value)
	case *ast.ChanType:
		return isTypeExpr(t.Value)
	case *ast.FuncType, *ast.InterfaceType, *ast.StructType:
		return true
	case *ast.IndexExpr:
		return isTypeExpr(t.X) && isTypeExpr(t.Index)
	case *ast.IndexListExpr:
		if !isTypeExpr(t.X) {
			return false
		}

		for _, idx := range t.Indices {
			if !isTypeExpr(idx) {
				return false
			}
		}

		return true
	default:
		return false
	}
}

// qualifiers returns the package names referenced by e, in order of first
// appearance.
func qualifiers(e ast.Expr) []string {
	var names []string

	seen := make(map[string]bool)

	ast.Inspect(e, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}

		if id, ok := sel.X.(*ast.Ident); ok && !seen[id.Name] {
			seen[id.Name] = true
			names = append(names, id.Name)
		}

		return false
	})

	return names
}
