package config

import (
	"errors"
	"fmt"
	"go/token"
	"maps"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"accessor-generator/internal/attr"
)

var buildTagPattern = regexp.MustCompile(`^[A-Za-z0-9_.]+$`)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// structValidator returns the shared validator with the custom tags
// registered.
func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		must(v.RegisterValidation("goident", func(fl validator.FieldLevel) bool {
			return token.IsIdentifier(fl.Field().String())
		}))
		must(v.RegisterValidation("gobuildtag", func(fl validator.FieldLevel) bool {
			return buildTagPattern.MatchString(fl.Field().String())
		}))
		must(v.RegisterValidation("gofile", func(fl validator.FieldLevel) bool {
			name := fl.Field().String()
			return filepath.Base(name) == name &&
				strings.HasSuffix(name, ".go") &&
				!strings.HasSuffix(name, "_test.go")
		}))

		validate = v
	})

	return validate
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// Validate checks the settings. Problems are reported as one InvalidConfig
// error listing every failing field.
func (c *Config) Validate() error {
	err := structValidator().Struct(c)
	if err == nil {
		_, err = c.DefaultOptions()
		return err
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return invalid(c.path, "%v", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: %q fails %q", fe.Namespace(), fmt.Sprint(fe.Value()), fe.Tag()))
	}

	return invalid(c.path, "invalid settings: %s", strings.Join(msgs, "; "))
}

// DefaultOptions converts Defaults into option layers keyed by directive
// name. Option names are checked later against the directive schemas.
func (c *Config) DefaultOptions() (map[string]attr.Options, error) {
	out := make(map[string]attr.Options)

	for name, values := range map[string]map[string]any{
		attr.NameGetters: c.Defaults.Getters,
		attr.NameSetters: c.Defaults.Setters,
	} {
		if len(values) == 0 {
			continue
		}

		opts := attr.Options{}
		pos := token.Position{Filename: c.path}

		for _, key := range slices.Sorted(maps.Keys(values)) {
			val, err := attr.ValueOf(values[key])
			if err != nil {
				return nil, invalid(c.path, "defaults.%s.%s: %v", name, key, err)
			}

			opts[key] = attr.Value{Val: val, Pos: pos}
		}

		out[name] = opts
	}

	return out, nil
}
