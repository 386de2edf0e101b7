package config

import (
	"bytes"
	"errors"
	"fmt"
	"go/token"
	"io"
	"os"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"

	"accessor-generator/internal/analyze"
	"accessor-generator/internal/diagnostic"
	"accessor-generator/internal/gen"
)

// DefaultPath is the settings file looked up in the working directory.
const DefaultPath = "accessor-generator.yaml"

// Default returns the settings used when no file is present.
func Default() *Config {
	c := &Config{}
	applyDefaults(c)

	return c
}

// LoadFile loads and validates the settings file at path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, invalid(path, "failed to read settings file: %v", err)
	}

	return Parse(data, path)
}

// Find loads path when it exists. A missing file yields the defaults
// unless required is set.
func Find(path string, required bool) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) && !required {
		return Default(), nil
	}

	return LoadFile(path)
}

// Parse parses and validates YAML settings. path is used in error
// positions only. Unknown keys are rejected.
func Parse(data []byte, path string) (*Config, error) {
	var c Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, invalid(path, "failed to parse settings YAML: %v", err)
	}

	c.path = path

	// Apply defaults and normalize
	applyDefaults(&c)

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(c *Config) {
	if c.Version == "" {
		c.Version = "1"
	}

	if c.Output == "" {
		c.Output = gen.DefaultFilename
	}

	if c.BuildTag == "" {
		c.BuildTag = analyze.DefaultBuildTag
	}
}

// Merge layers the non-zero fields of override on top of c.
func (c *Config) Merge(override *Config) error {
	if override == nil {
		return nil
	}

	path := c.path
	if err := mergo.Merge(c, override, mergo.WithOverride); err != nil {
		return fmt.Errorf("failed to merge settings: %w", err)
	}

	c.path = path

	return c.Validate()
}

// Marshal serializes settings to YAML.
func Marshal(c *Config) ([]byte, error) {
	return yaml.Marshal(c)
}

func invalid(path, format string, args ...any) *diagnostic.Error {
	return diagnostic.Errorf(diagnostic.InvalidConfig, token.Position{Filename: path}, format, args...)
}
