package plan

import (
	"cmp"
	"fmt"
	"go/types"
	"maps"
	"slices"
	"strconv"
)

// importSet tracks the packages referenced by generated code and the names
// they are imported under.
type importSet struct {
	self    string
	byName  map[string]string // import name -> path
	byPath  map[string]string // path -> first import name
	pkgName map[string]string // path -> declared package name
}

func newImportSet(selfPath string) *importSet {
	return &importSet{
		self:    selfPath,
		byName:  make(map[string]string),
		byPath:  make(map[string]string),
		pkgName: make(map[string]string),
	}
}

// qualifier is a types.Qualifier that records every package it is asked
// about and picks a free import name for it.
func (s *importSet) qualifier(pkg *types.Package) string {
	if pkg == nil || pkg.Path() == s.self {
		return ""
	}

	if name, ok := s.byPath[pkg.Path()]; ok {
		return name
	}

	name := pkg.Name()
	for i := 2; s.byName[name] != ""; i++ {
		name = pkg.Name() + strconv.Itoa(i)
	}

	s.add(name, pkg.Path(), pkg.Name())

	return name
}

// use records that name must refer to path in the generated file.
func (s *importSet) use(name, path, pkgName string) error {
	if existing, ok := s.byName[name]; ok {
		if existing == path {
			return nil
		}

		return fmt.Errorf("package name %s already refers to %q", name, existing)
	}

	s.add(name, path, pkgName)

	return nil
}

func (s *importSet) add(name, path, pkgName string) {
	s.byName[name] = path
	if _, ok := s.byPath[path]; !ok {
		s.byPath[path] = name
	}

	s.pkgName[path] = pkgName
}

// list returns the imports sorted by path, then name.
func (s *importSet) list() []Import {
	names := slices.SortedFunc(maps.Keys(s.byName), func(a, b string) int {
		return cmp.Or(cmp.Compare(s.byName[a], s.byName[b]), cmp.Compare(a, b))
	})

	imports := make([]Import, 0, len(names))
	for _, name := range names {
		path := s.byName[name]
		imports = append(imports, Import{
			Name:  name,
			Path:  path,
			Alias: name != s.pkgName[path],
		})
	}

	return imports
}
