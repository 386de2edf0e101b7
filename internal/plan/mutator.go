package plan

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/types"

	"accessor-generator/internal/analyze"
	"accessor-generator/internal/attr"
)

// mutator synthesizes the mutator of f. Without into it is a method taking
// exactly the field type. With into it is a generic function, since Go
// methods cannot declare type parameters, accepting any value whose type
// converts to the field type.
func (rc *recordContext) mutator(f *analyze.Field, opts attr.Options) (*Function, error) {
	into, err := opts.Bool(OptInto, false)
	if err != nil {
		return nil, err
	}

	recName := rc.rec.ID.Name
	fieldType := types.TypeString(f.Type, rc.imports.qualifier)
	target := rc.receiver.Name + "." + f.Name

	if !into {
		name := "Set" + exportName(f.Name)

		return &Function{
			Kind:     KindMutator,
			Name:     name,
			Field:    f.Name,
			Receiver: &rc.receiver,
			Params:   []Param{{Name: "value", Type: fieldType}},
			Body:     target + " = value",
			Doc:      fmt.Sprintf("%s sets the %s field of %s.", name, f.Name, recName),
		}, nil
	}

	name := "Set" + exportName(recName) + exportName(f.Name)
	fn := &Function{
		Kind:       KindMutator,
		Name:       name,
		Field:      f.Name,
		TypeParams: rc.typeParamDecls(),
		Body:       target + " = value",
		Doc:        fmt.Sprintf("%s sets the %s field of %s.", name, f.Name, recName),
	}

	valueType := fieldType

	switch {
	case isTypeParam(f.Type):
		// The record's own type parameter already admits any instantiation.
	case types.IsInterface(f.Type):
		valueType = rc.freshTypeParam(fieldType)
		fn.TypeParams = append(fn.TypeParams, TypeParam{Name: valueType, Constraint: fieldType})
	case !spellable(f.Type.Underlying(), rc.pkg()):
		// The underlying type has parts this package cannot name, so only
		// the field type itself is admitted.
		valueType = rc.freshTypeParam(fieldType)
		fn.TypeParams = append(fn.TypeParams, TypeParam{Name: valueType, Constraint: fieldType})
		fn.Body = fmt.Sprintf("%s = %s(value)", target, conversionType(fieldType))
	default:
		underlying := types.TypeString(f.Type.Underlying(), rc.imports.qualifier)
		valueType = rc.freshTypeParam(fieldType, underlying)
		fn.TypeParams = append(fn.TypeParams, TypeParam{Name: valueType, Constraint: "~" + underlying})
		fn.Body = fmt.Sprintf("%s = %s(value)", target, conversionType(fieldType))
		fn.Doc = fmt.Sprintf("%s sets the %s field of %s, converting value to %s.", name, f.Name, recName, fieldType)
	}

	fn.Params = []Param{rc.receiver, {Name: "value", Type: valueType}}

	return fn, nil
}

func isTypeParam(t types.Type) bool {
	_, ok := types.Unalias(t).(*types.TypeParam)
	return ok
}

// spellable reports whether t can be written out in package self. Types
// declared elsewhere are spellable only through their exported parts.
func spellable(t types.Type, self *types.Package) bool {
	foreign := func(obj types.Object) bool {
		return obj.Pkg() != nil && obj.Pkg() != self && !obj.Exported()
	}

	switch t := types.Unalias(t).(type) {
	case *types.Named:
		if foreign(t.Obj()) {
			return false
		}

		for i := range t.TypeArgs().Len() {
			if !spellable(t.TypeArgs().At(i), self) {
				return false
			}
		}
	case *types.Pointer:
		return spellable(t.Elem(), self)
	case *types.Slice:
		return spellable(t.Elem(), self)
	case *types.Array:
		return spellable(t.Elem(), self)
	case *types.Chan:
		return spellable(t.Elem(), self)
	case *types.Map:
		return spellable(t.Key(), self) && spellable(t.Elem(), self)
	case *types.Struct:
		for i := range t.NumFields() {
			if v := t.Field(i); foreign(v) || !spellable(v.Type(), self) {
				return false
			}
		}
	case *types.Signature:
		return spellableTuple(t.Params(), self) && spellableTuple(t.Results(), self)
	case *types.Interface:
		for i := range t.NumExplicitMethods() {
			if m := t.ExplicitMethod(i); foreign(m) || !spellable(m.Type(), self) {
				return false
			}
		}

		for i := range t.NumEmbeddeds() {
			if !spellable(t.EmbeddedType(i), self) {
				return false
			}
		}
	case *types.Union:
		for i := range t.Len() {
			if !spellable(t.Term(i).Type(), self) {
				return false
			}
		}
	}

	return true
}

func spellableTuple(tuple *types.Tuple, self *types.Package) bool {
	for i := range tuple.Len() {
		if !spellable(tuple.At(i).Type(), self) {
			return false
		}
	}

	return true
}

// conversionType parenthesizes typ unless it can be used as a conversion
// as written, e.g. "string" or "pkg.List[int]" but not "*T" or "func()".
func conversionType(typ string) string {
	expr, err := parser.ParseExpr(typ)
	if err == nil {
		switch expr.(type) {
		case *ast.Ident, *ast.SelectorExpr, *ast.IndexExpr, *ast.IndexListExpr, *ast.ArrayType, *ast.MapType:
			return typ
		}
	}

	return "(" + typ + ")"
}
