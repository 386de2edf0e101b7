package plan

import (
	"go/constant"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accessor-generator/internal/analyze"
	"accessor-generator/internal/attr"
	"accessor-generator/internal/diagnostic"
)

func loadPackage(t *testing.T, pattern string) *analyze.Package {
	t.Helper()

	root, err := filepath.Abs(filepath.Join("..", ".."))
	require.NoError(t, err)

	pkgs, err := analyze.NewLoader(analyze.LoadOptions{Dir: root}).Load(t.Context(), pattern)
	require.NoError(t, err)
	require.Len(t, pkgs, 1)

	return pkgs[0]
}

func planPackage(t *testing.T, config Config, pattern string) (*Plan, error) {
	t.Helper()

	planner, err := NewPlanner(config)
	require.NoError(t, err)

	return planner.Plan(loadPackage(t, pattern))
}

func signatures(rp RecordPlan) []string {
	out := make([]string, 0, len(rp.Functions))
	for _, fn := range rp.Functions {
		out = append(out, fn.Signature())
	}

	return out
}

func TestPlanner_Simple(t *testing.T) {
	t.Parallel()

	p, err := planPackage(t, Config{}, "./examples/simple")
	require.NoError(t, err)
	require.Len(t, p.Records, 1)

	rp := p.Records[0]
	assert.Equal(t, Param{Name: "s", Type: "*Simple"}, rp.Receiver)

	want := []string{
		"func (s *Simple) NormalField() string",
		"func (s *Simple) CustomReturnTypeField() fmt.Stringer",
		"func SetSimpleNormalField[V ~string](s *Simple, value V)",
		"func SetSimpleIgnoredField[V ~string](s *Simple, value V)",
		"func SetSimpleCustomReturnTypeField[V ~*strings.Builder](s *Simple, value V)",
	}
	if diff := cmp.Diff(want, signatures(rp)); diff != "" {
		t.Errorf("signatures mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "s.customReturnTypeField = (*strings.Builder)(value)", rp.Functions[4].Body)
	assert.Equal(t, []Import{
		{Name: "fmt", Path: "fmt"},
		{Name: "strings", Path: "strings"},
	}, p.Imports)
	assert.Equal(t, 5, p.Functions())
}

func TestPlanner_Generic(t *testing.T) {
	t.Parallel()

	p, err := planPackage(t, Config{}, "./examples/generic")
	require.NoError(t, err)
	require.Len(t, p.Records, 2)

	box := p.Records[0]
	assert.Equal(t, "Box", box.Name)
	assert.Equal(t, []TypeParam{{Name: "T", Constraint: "any"}}, box.TypeParams)
	assert.Equal(t, []string{
		"func (b *Box[T]) Value() T",
		"func (b *Box[T]) Label() string",
		"func (b *Box[T]) Tags() []string",
		"func (b *Box[T]) SetValue(value T)",
		"func SetBoxLabel[T any, V ~string](b *Box[T], value V)",
		"func (b *Box[T]) SetTags(value []string)",
	}, signatures(box))

	pair := p.Records[1]
	assert.Equal(t, []string{
		"func SetPairKey[K comparable, V any](p *Pair[K, V], value K)",
		"func SetPairValue[K comparable, V any](p *Pair[K, V], value V)",
		"func SetPairWeight[K comparable, V any, V1 ~float64](p *Pair[K, V], value V1)",
		"func SetPairTtl[K comparable, V any, V1 ~int64](p *Pair[K, V], value V1)",
	}, signatures(pair))
	assert.Equal(t, "p.ttl = time.Duration(value)", pair.Functions[3].Body)
	assert.Equal(t, "p.key = value", pair.Functions[0].Body)

	assert.Equal(t, []Import{{Name: "time", Path: "time"}}, p.Imports)
}

func TestPlanner_ReturnTypeImport(t *testing.T) {
	t.Parallel()

	p, err := planPackage(t, Config{}, "./testdata/mixed")
	require.NoError(t, err)
	require.Len(t, p.Records, 1)

	rp := p.Records[0]
	assert.Equal(t, "srv", rp.Receiver.Name)
	assert.Equal(t, []string{
		"func (srv *Server) Host() string",
		"func (srv *Server) Path() string",
		"func (srv *Server) Body() io.Reader",
		"func (srv *Server) Port() int",
	}, signatures(rp))
	assert.Equal(t, []Import{{Name: "io", Path: "io"}}, p.Imports, "the aliased strings import is not needed")
	assert.NotEmpty(t, p.Diagnostics.All(), "loader notes are carried over")
}

func TestPlanner_ForeignFieldTypes(t *testing.T) {
	t.Parallel()

	p, err := planPackage(t, Config{}, "./testdata/foreign")
	require.NoError(t, err)
	require.Len(t, p.Records, 1)

	rp := p.Records[0]
	mutators := signatures(rp)[6:]
	bodies := make([]string, 0, len(mutators))
	for _, fn := range rp.Functions[6:] {
		bodies = append(bodies, fn.Body)
	}

	// Underlying types with unexported parts cannot be written here, so
	// those fields admit exactly their own type.
	assert.Equal(t, []string{
		"func SetEventAt[V time.Time](e *Event, value V)",
		"func SetEventTtl[V ~int64](e *Event, value V)",
		"func SetEventAmount[V big.Int](e *Event, value V)",
		"func SetEventBuf[V ~*strings.Builder](e *Event, value V)",
		"func SetEventBody[V io.Reader](e *Event, value V)",
		"func SetEventStamp[V stamp](e *Event, value V)",
	}, mutators)
	assert.Equal(t, []string{
		"e.at = time.Time(value)",
		"e.ttl = time.Duration(value)",
		"e.amount = big.Int(value)",
		"e.buf = (*strings.Builder)(value)",
		"e.body = value",
		"e.stamp = stamp(value)",
	}, bodies)
	assert.Equal(t, []Import{
		{Name: "io", Path: "io"},
		{Name: "big", Path: "math/big"},
		{Name: "strings", Path: "strings"},
		{Name: "time", Path: "time"},
	}, p.Imports)
}

func TestPlanner_OpaqueLocalType(t *testing.T) {
	t.Parallel()

	p, err := planPackage(t, Config{}, "./testdata/wrapped")
	require.NoError(t, err)
	require.Len(t, p.Records, 1)

	assert.Equal(t, []string{"func SetJobAt[V stamp](j *Job, value V)"}, signatures(p.Records[0]))
	assert.Empty(t, p.Imports, "time only appears in the underlying type")
}

func TestPlanner_TypeParamAvoidsPackageNames(t *testing.T) {
	t.Parallel()

	p, err := planPackage(t, Config{}, "./testdata/shadow")
	require.NoError(t, err)
	require.Len(t, p.Records, 1)

	rp := p.Records[0]
	assert.Equal(t, []string{
		"func SetRecN[V2 ~int](r *Rec, value V2)",
		"func SetRecLabel[V2 ~string](r *Rec, value V2)",
	}, signatures(rp))
	assert.Equal(t, "r.n = V(value)", rp.Functions[0].Body)
}

func TestPlanner_ReceiverOverride(t *testing.T) {
	t.Parallel()

	p, err := planPackage(t, Config{Receiver: "self"}, "./examples/simple")
	require.NoError(t, err)

	rp := p.Records[0]
	assert.Equal(t, "self", rp.Receiver.Name)
	assert.Equal(t, "return self.normalField", rp.Functions[0].Body)
}

func TestPlanner_Defaults(t *testing.T) {
	t.Parallel()

	// into from the defaults layer reaches every Box field.
	p, err := planPackage(t, Config{
		Defaults: Defaults{
			attr.NameSetters: {OptInto: {Val: constant.MakeBool(true)}},
		},
	}, "./examples/generic")
	require.NoError(t, err)

	box := p.Records[0]
	assert.Equal(t, "func SetBoxValue[T any](b *Box[T], value T)", box.Functions[3].Signature())
	assert.Equal(t, "func SetBoxTags[T any, V ~[]string](b *Box[T], value V)", box.Functions[5].Signature())
	assert.Equal(t, "b.tags = []string(value)", box.Functions[5].Body)
}

func TestPlanner_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		want    error
		record  string
		field   string
	}{
		{name: "unknown option", pattern: "./testdata/unknownopt", want: diagnostic.ErrUnknownOption, record: "Config", field: "name"},
		{name: "option type", pattern: "./testdata/badtype", want: diagnostic.ErrInvalidOptionType, record: "Config", field: "name"},
		{name: "exported field", pattern: "./testdata/exported", want: diagnostic.ErrNameCollision, record: "Config", field: "Name"},
		{name: "no exported form", pattern: "./testdata/underscore", want: diagnostic.ErrNameCollision, record: "Config", field: "_name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := planPackage(t, Config{}, tt.pattern)
			require.Error(t, err)
			require.ErrorIs(t, err, tt.want)

			var de *diagnostic.Error
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.record, de.Record)
			assert.Equal(t, tt.field, de.Field)
			assert.NotZero(t, de.Pos.Line)
		})
	}
}

func TestPlanner_AccessorNameMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pattern string
		want    string
	}{
		{pattern: "./testdata/exported", want: "accessor Name() would collide with the field itself"},
		{pattern: "./testdata/underscore", want: "field _name has no exported form"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			t.Parallel()

			_, err := planPackage(t, Config{}, tt.pattern)
			require.ErrorIs(t, err, diagnostic.ErrNameCollision)
			assert.Contains(t, err.Error(), tt.want)
			assert.NotContains(t, err.Error(), "_name() would collide")
		})
	}
}

func TestNewPlanner_InvalidDefaults(t *testing.T) {
	t.Parallel()

	_, err := NewPlanner(Config{Defaults: Defaults{"derive": {}}})
	require.ErrorIs(t, err, diagnostic.ErrInvalidConfig)

	_, err = NewPlanner(Config{Defaults: Defaults{
		attr.NameGetters: {OptReturnType: {Val: constant.MakeString("int")}},
	}})
	require.ErrorIs(t, err, diagnostic.ErrUnknownOption, "return_type is field-scoped")
}

func TestPlanner_Deterministic(t *testing.T) {
	t.Parallel()

	first, err := planPackage(t, Config{}, "./examples/generic")
	require.NoError(t, err)

	second, err := planPackage(t, Config{}, "./examples/generic")
	require.NoError(t, err)

	assert.Equal(t, Export(first), Export(second))
}

func TestExportYAML(t *testing.T) {
	t.Parallel()

	p, err := planPackage(t, Config{}, "./testdata/mixed")
	require.NoError(t, err)

	out, err := ExportYAML(p)
	require.NoError(t, err)
	assert.Contains(t, string(out), "package: accessor-generator/testdata/mixed")
	assert.Contains(t, string(out), "signature: func (srv *Server) Body() io.Reader")
	assert.Contains(t, string(out), "kind: accessor")
}
