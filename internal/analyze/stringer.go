package analyze

import (
	"go/types"
)

// Describe returns a short description of t's shape for error messages.
// Examples:
//   - "struct" for struct types
//   - "basic type float64" for type Celsius float64
//   - "interface" for interface types
func Describe(t types.Type) string {
	switch u := t.Underlying().(type) {
	case *types.Struct:
		return "struct"
	case *types.Basic:
		return "basic type " + u.Name()
	case *types.Interface:
		return "interface"
	case *types.Pointer:
		return "pointer"
	case *types.Slice:
		return "slice"
	case *types.Array:
		return "array"
	case *types.Map:
		return "map"
	case *types.Chan:
		return "channel"
	case *types.Signature:
		return "func"
	default:
		return t.String()
	}
}

// RelativeTo returns a qualifier that omits the package name for types
// declared in pkg and uses the package name otherwise.
func RelativeTo(pkg *types.Package) types.Qualifier {
	return func(other *types.Package) string {
		if pkg == other || (pkg != nil && other != nil && pkg.Path() == other.Path()) {
			return ""
		}

		return other.Name()
	}
}
