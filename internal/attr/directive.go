package attr

import (
	"go/ast"
	"go/constant"
	"go/scanner"
	"go/token"
	"slices"
	"strings"

	"accessor-generator/internal/diagnostic"
	"accessor-generator/internal/match"
)

// Prefix introduces an accessor directive inside a line comment.
const Prefix = "//accessor:"

// Directive names.
const (
	NameDerive  = "derive"
	NameGetters = "getters"
	NameSetters = "setters"
)

var knownNames = []string{NameDerive, NameGetters, NameSetters}

// Attribute is one parsed directive: a name and its keyed argument list.
type Attribute struct {
	Name string
	Args []Arg
	// Text is the directive as written, without the comment prefix.
	Text string
	Pos  token.Position
}

// Arg is a single key inside a directive's argument list.
type Arg struct {
	Key   string
	Value constant.Value
	Pos   token.Position
}

// Extract collects every directive found in the given comment groups, in
// source order. Nil groups are skipped.
func Extract(fset *token.FileSet, groups ...*ast.CommentGroup) ([]Attribute, error) {
	var attrs []Attribute

	for _, group := range groups {
		if group == nil {
			continue
		}

		for _, c := range group.List {
			if !strings.HasPrefix(c.Text, Prefix) {
				continue
			}

			a, err := ParseDirective(strings.TrimPrefix(c.Text, Prefix), fset.Position(c.Slash))
			if err != nil {
				return nil, err
			}

			attrs = append(attrs, a)
		}
	}

	return attrs, nil
}

// Filter returns the attributes with the given name.
func Filter(attrs []Attribute, name string) []Attribute {
	var out []Attribute

	for _, a := range attrs {
		if a.Name == name {
			out = append(out, a)
		}
	}

	return out
}

// ParseDirective parses the text following the directive prefix. pos is the
// position of the comment and is used for error reporting only.
func ParseDirective(text string, pos token.Position) (Attribute, error) {
	p := newDirectiveParser(text, pos)

	return p.parse()
}

type directiveParser struct {
	text string
	base token.Position
	file *token.File
	s    scanner.Scanner
	err  string

	pos token.Pos
	tok token.Token
	lit string
}

func newDirectiveParser(text string, base token.Position) *directiveParser {
	fset := token.NewFileSet()
	p := &directiveParser{
		text: text,
		base: base,
		file: fset.AddFile("", fset.Base(), len(text)),
	}

	p.s.Init(p.file, []byte(text), func(_ token.Position, msg string) {
		if p.err == "" {
			p.err = msg
		}
	}, 0)

	return p
}

func (p *directiveParser) next() {
	p.pos, p.tok, p.lit = p.s.Scan()
}

// position maps a scanner position back into the source file. Directives
// never span lines, so only the column shifts.
func (p *directiveParser) position(pos token.Pos) token.Position {
	out := p.base
	if out.IsValid() {
		offset := p.file.Offset(pos)
		out.Offset += len(Prefix) + offset
		out.Column += len(Prefix) + offset
	}

	return out
}

func (p *directiveParser) malformed(format string, args ...any) error {
	return diagnostic.Errorf(diagnostic.MalformedAttribute, p.base,
		"%s%s: "+format, append([]any{Prefix, p.text}, args...)...)
}

func (p *directiveParser) parse() (Attribute, error) {
	a := Attribute{Text: p.text, Pos: p.base}

	p.next()
	if p.tok != token.IDENT {
		return a, p.malformed("expected directive name")
	}

	a.Name = p.lit
	if !slices.Contains(knownNames, a.Name) {
		return a, p.malformed("unknown directive %q%s", a.Name, match.Hint(a.Name, knownNames))
	}

	p.next()
	if p.tok != token.LPAREN {
		return a, p.malformed("expected keyed list %s(key, key = value, ...)", a.Name)
	}

	for p.next(); p.tok != token.RPAREN; {
		arg, err := p.parseArg()
		if err != nil {
			return a, err
		}

		a.Args = append(a.Args, arg)

		switch p.tok {
		case token.COMMA:
			p.next()
		case token.RPAREN:
		default:
			return a, p.malformed("expected ',' or ')' after %s", arg.Key)
		}
	}

	// The scanner inserts a semicolon after ')' at end of input.
	p.next()
	if p.tok == token.SEMICOLON && p.lit == "\n" {
		p.next()
	}

	if p.tok != token.EOF {
		return a, p.malformed("unexpected %s after argument list", p.tok)
	}

	if p.err != "" {
		return a, p.malformed("%s", p.err)
	}

	return a, nil
}

func (p *directiveParser) parseArg() (Arg, error) {
	if p.tok != token.IDENT {
		return Arg{}, p.malformed("expected option name, found %s", p.tok)
	}

	arg := Arg{Key: p.lit, Value: constant.MakeBool(true), Pos: p.position(p.pos)}

	p.next()
	if p.tok != token.ASSIGN {
		return arg, nil
	}

	p.next()
	switch p.tok {
	case token.STRING, token.INT, token.FLOAT, token.IMAG, token.CHAR:
		arg.Value = constant.MakeFromLiteral(p.lit, p.tok, 0)
		if arg.Value.Kind() == constant.Unknown {
			return arg, p.malformed("invalid literal %s for %s", p.lit, arg.Key)
		}
	case token.IDENT:
		switch p.lit {
		case "true":
			arg.Value = constant.MakeBool(true)
		case "false":
			arg.Value = constant.MakeBool(false)
		default:
			return arg, p.malformed("value of %s must be a literal, found %s", arg.Key, p.lit)
		}
	default:
		return arg, p.malformed("value of %s must be a literal, found %s", arg.Key, p.tok)
	}

	p.next()

	return arg, nil
}
