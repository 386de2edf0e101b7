package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"path/filepath"
	"text/template"

	"accessor-generator/internal/analyze"
	"accessor-generator/internal/plan"
)

// DefaultFilename is the name of the generated file in each package.
const DefaultFilename = "accessors_gen.go"

// Header is the first line of every generated file.
const Header = "// Code generated by accessor-generator. DO NOT EDIT."

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Filename is the name of the generated file in each package directory.
	Filename string
	// BuildTag is negated in the file's build constraint. Empty omits the
	// constraint.
	BuildTag string
	// DebugUnformatted writes the raw rendering next to the output when it
	// fails to format.
	DebugUnformatted bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Filename:         DefaultFilename,
		BuildTag:         analyze.DefaultBuildTag,
		DebugUnformatted: true,
	}
}

// Generator renders plans.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	if config.Filename == "" {
		config.Filename = DefaultFilename
	}

	return &Generator{config: config}
}

// Filename returns the name of the files this generator produces.
func (g *Generator) Filename() string {
	return g.config.Filename
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the package directory the file belongs in.
	Dir string
	// Filename is the base name of the file (e.g., "accessors_gen.go").
	Filename string
	// PkgPath is the import path of the package.
	PkgPath string
	// Content is the formatted Go source code.
	Content []byte
}

// Path returns the full path of the file.
func (f *GeneratedFile) Path() string {
	return filepath.Join(f.Dir, f.Filename)
}

// Generate renders the plan of one package. It returns nil when the plan
// has no functions.
func (g *Generator) Generate(p *plan.Plan) (*GeneratedFile, error) {
	if p.Functions() == 0 {
		return nil, nil
	}

	data := templateData{
		Header:      Header,
		BuildTag:    g.config.BuildTag,
		PackageName: p.PkgName,
		Imports:     p.Imports,
	}

	for _, r := range p.Records {
		data.Functions = append(data.Functions, r.Functions...)
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template for %s: %w", p.PkgPath, err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if g.config.DebugUnformatted {
			_ = writeDebugUnformatted(p.Dir, g.config.Filename, buf.Bytes())
		}

		return nil, fmt.Errorf("formatting generated code for %s: %w", p.PkgPath, err)
	}

	return &GeneratedFile{
		Dir:      p.Dir,
		Filename: g.config.Filename,
		PkgPath:  p.PkgPath,
		Content:  formatted,
	}, nil
}

// templateData holds all data needed for the file template.
type templateData struct {
	Header      string
	BuildTag    string
	PackageName string
	Imports     []plan.Import
	Functions   []plan.Function
}

var fileTemplate = template.Must(template.New("accessors").Parse(`{{.Header}}

{{if .BuildTag}}//go:build !{{.BuildTag}}

{{end}}package {{.PackageName}}
{{if .Imports}}
import (
{{- range .Imports}}
	{{if .Alias}}{{.Name}} {{end}}{{printf "%q" .Path}}
{{- end}}
)
{{end}}
{{- range .Functions}}
// {{.Doc}}
{{.Signature}} {
	{{.Body}}
}
{{end}}`))
