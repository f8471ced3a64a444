/*
Package langdef reads token-definition files.

A definition file names the token types of a language, one definition per
statement: a token name (or the keyword 'skip' for patterns to be matched and
dropped) followed by the pattern as a quoted string and a terminating
semicolon. Go-style comments are allowed.

	// a tiny language
	skip    "[ \t\n\r]+" ;
	IDENT   "[a-z_]+" ;
	DECIMAL "[0-9]+\\.[0-9]+" ;
	INT     "[0-9]+" ;
	OP      "=|\\+|-" ;

Declaration order is priority order: when two patterns match the same longest
prefix, the one declared first wins.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2025 The tokmach authors

*/
package langdef

import (
	"fmt"
	"io"

	"github.com/alecthomas/participle/v2"
	"github.com/npillmayer/schuko/tracing"
	"github.com/tokmach/tokmach"
)

// tracer traces with key 'tokmach.langdef'.
func tracer() tracing.Trace {
	return tracing.Select("tokmach.langdef")
}

// defFile is the parse tree of a definition file.
type defFile struct {
	Defs []*def `parser:"@@*"`
}

type def struct {
	Skip  bool   `parser:"( @'skip'"`
	Name  string `parser:"  | @Ident )"`
	Regex string `parser:"@String ';'"`
}

var defParser = participle.MustBuild[defFile](
	participle.Unquote("String"),
)

// Set is a compiled token-definition file: the ordered pattern list plus the
// name↔type mappings of all non-skip definitions.
type Set struct {
	Patterns []tokmach.Pattern
	Types    map[string]tokmach.TokType
	Names    map[tokmach.TokType]string
}

// TypeName returns the declared name of a token type, suitable as a
// tokmach.TokTypeStringer.
func (s *Set) TypeName(t tokmach.TokType) string {
	switch t {
	case tokmach.EOF:
		return "EOF"
	case tokmach.IgnoreType:
		return "skip"
	}
	if name, ok := s.Names[t]; ok {
		return name
	}
	return fmt.Sprintf("%d", t)
}

// Parse reads a definition file. Token types are assigned in declaration
// order, starting at 0; skip definitions map to tokmach.IgnoreType. A
// duplicate token name is an error.
func Parse(name string, r io.Reader) (*Set, error) {
	file, err := defParser.Parse(name, r)
	if err != nil {
		return nil, err
	}
	return build(file)
}

// ParseString is Parse over a string.
func ParseString(name, src string) (*Set, error) {
	file, err := defParser.ParseString(name, src)
	if err != nil {
		return nil, err
	}
	return build(file)
}

func build(file *defFile) (*Set, error) {
	set := &Set{
		Types: make(map[string]tokmach.TokType),
		Names: make(map[tokmach.TokType]string),
	}
	next := tokmach.TokType(0)
	for prio, d := range file.Defs {
		typ := tokmach.IgnoreType
		if !d.Skip {
			if _, ok := set.Types[d.Name]; ok {
				return nil, fmt.Errorf("duplicate token name %q", d.Name)
			}
			typ = next
			next++
			set.Types[d.Name] = typ
			set.Names[typ] = d.Name
		}
		set.Patterns = append(set.Patterns, tokmach.Pattern{
			Source: d.Regex,
			Type:   typ,
			Prio:   prio,
		})
	}
	tracer().Debugf("definition file declares %d patterns", len(set.Patterns))
	return set, nil
}
