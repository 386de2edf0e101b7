package config

// Config is the root settings document.
type Config struct {
	// Version is the settings format version.
	Version string `yaml:"version" validate:"oneof=1"`
	// Output is the name of the generated file in each package.
	Output string `yaml:"output" validate:"required,gofile"`
	// BuildTag is set while loading and negated in the generated file.
	BuildTag string `yaml:"build_tag" validate:"required,gobuildtag"`
	// Tags are extra build tags used while loading.
	Tags []string `yaml:"tags,omitempty" validate:"dive,gobuildtag"`
	// Receiver overrides the receiver name of generated methods.
	Receiver string `yaml:"receiver,omitempty" validate:"omitempty,goident"`
	// Types selects records by name in addition to derive directives.
	Types []string `yaml:"types,omitempty" validate:"dive,goident"`
	// Defaults is the lowest option layer, below record and field
	// directives.
	Defaults Defaults `yaml:"defaults,omitempty"`

	// path is the file the settings were read from, if any.
	path string
}

// Defaults holds default options per directive, using record-scope option
// names.
type Defaults struct {
	Getters map[string]any `yaml:"getters,omitempty"`
	Setters map[string]any `yaml:"setters,omitempty"`
}

// Path returns the file the settings were read from, or "" for built-in
// defaults.
func (c *Config) Path() string {
	return c.path
}
