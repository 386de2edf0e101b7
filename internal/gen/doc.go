// Package gen renders accessor plans into Go source.
//
// Generation uses text/template + go/format, so output is gofmt'ed and
// byte-identical for identical plans. Each package gets one file, by
// default accessors_gen.go, excluded from the generator's own loads by a
// negated build constraint.
package gen
