package plan

import (
	"gopkg.in/yaml.v3"
)

// Summary is the reviewable form of a plan, as printed by the plan command.
type Summary struct {
	Package string          `yaml:"package"`
	Dir     string          `yaml:"dir,omitempty"`
	Imports []string        `yaml:"imports,omitempty"`
	Records []RecordSummary `yaml:"records"`
}

// RecordSummary lists the functions planned for one record.
type RecordSummary struct {
	Name      string            `yaml:"name"`
	Receiver  string            `yaml:"receiver"`
	Functions []FunctionSummary `yaml:"functions,omitempty"`
}

// FunctionSummary describes one planned function.
type FunctionSummary struct {
	Kind      string `yaml:"kind"`
	Field     string `yaml:"field"`
	Signature string `yaml:"signature"`
}

// Export converts plans into summaries.
func Export(plans ...*Plan) []Summary {
	out := make([]Summary, 0, len(plans))

	for _, p := range plans {
		s := Summary{
			Package: p.PkgPath,
			Dir:     p.Dir,
			Records: []RecordSummary{},
		}

		for _, imp := range p.Imports {
			if imp.Alias {
				s.Imports = append(s.Imports, imp.Name+" "+imp.Path)
			} else {
				s.Imports = append(s.Imports, imp.Path)
			}
		}

		for _, r := range p.Records {
			rs := RecordSummary{
				Name:     r.Name,
				Receiver: r.Receiver.Name + " " + r.Receiver.Type,
			}

			for _, fn := range r.Functions {
				rs.Functions = append(rs.Functions, FunctionSummary{
					Kind:      fn.Kind.String(),
					Field:     fn.Field,
					Signature: fn.Signature(),
				})
			}

			s.Records = append(s.Records, rs)
		}

		out = append(out, s)
	}

	return out
}

// ExportYAML renders plans as a YAML list of summaries.
func ExportYAML(plans ...*Plan) ([]byte, error) {
	return yaml.Marshal(Export(plans...))
}
