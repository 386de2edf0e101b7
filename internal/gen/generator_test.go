package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accessor-generator/internal/analyze"
	"accessor-generator/internal/plan"
)

func repoRoot(t *testing.T) string {
	t.Helper()

	root, err := filepath.Abs(filepath.Join("..", ".."))
	require.NoError(t, err)

	return root
}

func planFor(t *testing.T, pattern string) *plan.Plan {
	t.Helper()

	pkgs, err := analyze.NewLoader(analyze.LoadOptions{Dir: repoRoot(t)}).Load(t.Context(), pattern)
	require.NoError(t, err)
	require.Len(t, pkgs, 1)

	planner, err := plan.NewPlanner(plan.Config{})
	require.NoError(t, err)

	p, err := planner.Plan(pkgs[0])
	require.NoError(t, err)

	return p
}

func TestGenerator_MatchesCheckedInExamples(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"simple", "generic"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			p := planFor(t, "./examples/"+name)

			file, err := NewGenerator(DefaultGeneratorConfig()).Generate(p)
			require.NoError(t, err)
			require.NotNil(t, file)

			want, err := os.ReadFile(filepath.Join(repoRoot(t), "examples", name, DefaultFilename))
			require.NoError(t, err)

			assert.Equal(t, string(want), string(file.Content), "plan:\n%s", spew.Sdump(p.Records))
			assert.Equal(t, filepath.Join(repoRoot(t), "examples", name, DefaultFilename), file.Path())
			assert.Equal(t, "accessor-generator/examples/"+name, file.PkgPath)
		})
	}
}

func TestGenerator_SimpleOmitsIgnoredAccessor(t *testing.T) {
	t.Parallel()

	file, err := NewGenerator(DefaultGeneratorConfig()).Generate(planFor(t, "./examples/simple"))
	require.NoError(t, err)

	content := string(file.Content)
	assert.Contains(t, content, "func (s *Simple) CustomReturnTypeField() fmt.Stringer {")
	assert.NotContains(t, content, ") IgnoredField()")
	assert.Contains(t, content, "func SetSimpleIgnoredField[V ~string](s *Simple, value V) {")
}

func TestGenerator_Idempotent(t *testing.T) {
	t.Parallel()

	g := NewGenerator(DefaultGeneratorConfig())

	first, err := g.Generate(planFor(t, "./testdata/mixed"))
	require.NoError(t, err)

	second, err := g.Generate(planFor(t, "./testdata/mixed"))
	require.NoError(t, err)

	assert.Equal(t, first.Content, second.Content)
	assert.Contains(t, string(first.Content), "import (\n\t\"io\"\n)")
}

func TestGenerator_Config(t *testing.T) {
	t.Parallel()

	g := NewGenerator(GeneratorConfig{Filename: "zz_accessors.go"})

	file, err := g.Generate(planFor(t, "./testdata/mixed"))
	require.NoError(t, err)

	assert.Equal(t, "zz_accessors.go", file.Filename)
	assert.NotContains(t, string(file.Content), "//go:build")
	assert.True(t, IsGenerated(file.Content))
}

func TestGenerator_EmptyPlan(t *testing.T) {
	t.Parallel()

	file, err := NewGenerator(DefaultGeneratorConfig()).Generate(&plan.Plan{PkgName: "empty"})
	require.NoError(t, err)
	assert.Nil(t, file)
}

func TestGenerator_AliasedImport(t *testing.T) {
	t.Parallel()

	p := &plan.Plan{
		PkgPath: "example.com/demo",
		PkgName: "demo",
		Imports: []plan.Import{{Name: "stdstrings", Path: "strings", Alias: true}},
		Records: []plan.RecordPlan{{
			Name:     "Demo",
			Receiver: plan.Param{Name: "d", Type: "*Demo"},
			Functions: []plan.Function{{
				Kind:     plan.KindAccessor,
				Name:     "Body",
				Field:    "body",
				Receiver: &plan.Param{Name: "d", Type: "*Demo"},
				Result:   "*stdstrings.Reader",
				Body:     "return d.body",
				Doc:      "Body returns the body field of Demo.",
			}},
		}},
	}

	file, err := NewGenerator(DefaultGeneratorConfig()).Generate(p)
	require.NoError(t, err)
	assert.Contains(t, string(file.Content), "import (\n\tstdstrings \"strings\"\n)")
}

func TestGenerator_FormatFailureWritesDebugFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := &plan.Plan{
		PkgPath: "example.com/broken",
		PkgName: "broken",
		Dir:     dir,
		Records: []plan.RecordPlan{{
			Name: "Broken",
			Functions: []plan.Function{{
				Kind: plan.KindAccessor,
				Name: "Bad",
				Body: "return {{",
				Doc:  "Bad is not valid Go.",
			}},
		}},
	}

	_, err := NewGenerator(DefaultGeneratorConfig()).Generate(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "formatting generated code for example.com/broken")

	_, statErr := os.Stat(filepath.Join(dir, "accessors_gen.unformatted.go.txt"))
	assert.NoError(t, statErr)
}
