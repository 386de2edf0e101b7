package attr

import (
	"fmt"
	"go/constant"
	"go/token"
	"maps"
	"slices"

	"accessor-generator/internal/diagnostic"
	"accessor-generator/internal/match"
)

// Schema is the set of option names a consumer recognizes, with the kind of
// value each option expects.
type Schema map[string]constant.Kind

// Names returns the recognized option names in sorted order.
func (s Schema) Names() []string {
	return slices.Sorted(maps.Keys(s))
}

// Value is a resolved option value together with where it was set.
type Value struct {
	Val constant.Value
	Pos token.Position
}

// Options maps option names to values for one scope. Keys are unique and
// order is irrelevant.
type Options map[string]Value

// Parse validates the arguments of attrs against schema and collects them
// into Options. A repeated key overwrites the earlier value.
func Parse(attrs []Attribute, schema Schema) (Options, error) {
	opts := Options{}

	for _, a := range attrs {
		for _, arg := range a.Args {
			if _, ok := schema[arg.Key]; !ok {
				return nil, diagnostic.Errorf(diagnostic.UnknownOption, arg.Pos,
					"%q is not a known %s option (known: %v)%s", arg.Key, a.Name, schema.Names(), match.Hint(arg.Key, schema.Names()))
			}

			opts[arg.Key] = Value{Val: arg.Value, Pos: arg.Pos}
		}
	}

	return opts, nil
}

// Merge layers options from lowest to highest precedence and returns the
// result. Inputs are not modified.
func Merge(layers ...Options) Options {
	out := Options{}

	for _, layer := range layers {
		maps.Copy(out, layer)
	}

	return out
}

// Check reports an UnknownOption error for the first key (in sorted order)
// that schema does not recognize.
func (o Options) Check(name string, schema Schema) error {
	for _, key := range slices.Sorted(maps.Keys(o)) {
		if _, ok := schema[key]; !ok {
			return diagnostic.Errorf(diagnostic.UnknownOption, o[key].Pos,
				"%q is not a known %s option (known: %v)%s", key, name, schema.Names(), match.Hint(key, schema.Names()))
		}
	}

	return nil
}

// Bool returns the boolean option key, or def when unset.
func (o Options) Bool(key string, def bool) (bool, error) {
	v, ok := o[key]
	if !ok {
		return def, nil
	}

	if v.Val.Kind() != constant.Bool {
		return false, diagnostic.Errorf(diagnostic.InvalidOptionType, v.Pos,
			"%s must be a boolean, not %s", key, v.Val.ExactString())
	}

	return constant.BoolVal(v.Val), nil
}

// String returns the string option key. The second result reports whether
// the option was set.
func (o Options) String(key string) (string, bool, error) {
	v, ok := o[key]
	if !ok {
		return "", false, nil
	}

	if v.Val.Kind() != constant.String {
		return "", true, diagnostic.Errorf(diagnostic.InvalidOptionType, v.Pos,
			"%s must be a string literal, not %s", key, v.Val.ExactString())
	}

	return constant.StringVal(v.Val), true, nil
}

// ValueOf converts a decoded configuration value (as produced by a YAML or
// JSON decoder) into a constant.
func ValueOf(v any) (constant.Value, error) {
	switch x := v.(type) {
	case bool:
		return constant.MakeBool(x), nil
	case string:
		return constant.MakeString(x), nil
	case int:
		return constant.MakeInt64(int64(x)), nil
	case int64:
		return constant.MakeInt64(x), nil
	case uint64:
		return constant.MakeUint64(x), nil
	case float64:
		return constant.MakeFloat64(x), nil
	default:
		return constant.MakeUnknown(), fmt.Errorf("unsupported option value %v (%T)", v, v)
	}
}
