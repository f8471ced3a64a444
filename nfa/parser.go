package nfa

import "fmt"

// ParseError is a compile-time pattern error. It carries the position of the
// offending character within the pattern source.
type ParseError struct {
	Pattern string // pattern source being parsed
	Pos     int    // rune offset of the error within Pattern
	Msg     string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("pattern /%s/: %s at position %d", e.Pattern, e.Msg, e.Pos)
}

// parser is a recursive-descent parser for the pattern dialect, producing NFA
// fragments in the enclosing arena.
//
// Grammar:
//
//    Expression ::= Term ('|' Term)*
//    Term       ::= Factor+
//    Factor     ::= Base ('*' | '+' | '?')*
//    Base       ::= '(' Expression ')' | CharClass | StringLiteral
//                 | '\' AnyChar | AnyChar
//    CharClass  ::= '[' ['^'] (char | char '-' char)* ']'
//
type parser struct {
	n        *NFA
	input    []rune
	pos      int
	alphabet Alphabet
}

// ParsePattern parses one pattern source into a fragment. Parsing aborts on
// the first malformed construct; no partial fragment is returned. The alphabet
// bounds negated character classes (see Alphabet).
func (n *NFA) ParsePattern(source string, alphabet Alphabet) (Fragment, error) {
	p := &parser{
		n:        n,
		input:    []rune(source),
		alphabet: alphabet,
	}
	frag, err := p.parseExpression()
	if err != nil {
		return Fragment{Start: none, Accept: none}, err
	}
	if p.pos < len(p.input) {
		return Fragment{Start: none, Accept: none},
			p.errorf("unexpected character %q after complete expression", p.input[p.pos])
	}
	return frag, nil
}

func (p *parser) errorf(format string, args ...interface{}) *ParseError {
	return &ParseError{
		Pattern: string(p.input),
		Pos:     p.pos,
		Msg:     fmt.Sprintf(format, args...),
	}
}

func (p *parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *parser) peek() rune {
	return p.input[p.pos]
}

func (p *parser) consume() rune {
	c := p.input[p.pos]
	p.pos++
	return c
}

func (p *parser) match(expected rune) bool {
	if p.pos < len(p.input) && p.input[p.pos] == expected {
		p.pos++
		return true
	}
	return false
}

// Expression ::= Term ('|' Term)*
func (p *parser) parseExpression() (Fragment, error) {
	frag, err := p.parseTerm()
	if err != nil {
		return frag, err
	}
	for p.match('|') {
		right, err := p.parseTerm()
		if err != nil {
			return right, err
		}
		frag = p.n.Union(frag, right)
	}
	return frag, nil
}

// Term ::= Factor+  (an empty term yields an ε-fragment)
func (p *parser) parseTerm() (Fragment, error) {
	var frag Fragment
	first := true
	for !p.eof() && p.peek() != '|' && p.peek() != ')' {
		factor, err := p.parseFactor()
		if err != nil {
			return factor, err
		}
		if first {
			frag = factor
			first = false
		} else {
			frag = p.n.Concat(frag, factor)
		}
	}
	if first {
		return p.n.Epsilon(), nil
	}
	return frag, nil
}

// Factor ::= Base ('*' | '+' | '?')*
func (p *parser) parseFactor() (Fragment, error) {
	frag, err := p.parseBase()
	if err != nil {
		return frag, err
	}
	for !p.eof() {
		switch p.peek() {
		case '*':
			p.consume()
			frag = p.n.Star(frag)
		case '+':
			p.consume()
			frag = p.n.Plus(frag)
		case '?':
			p.consume()
			frag = p.n.Optional(frag)
		default:
			return frag, nil
		}
	}
	return frag, nil
}

// Base ::= '(' Expression ')' | CharClass | StringLiteral | '\' AnyChar | AnyChar
func (p *parser) parseBase() (Fragment, error) {
	switch p.peek() {
	case '(':
		p.consume()
		frag, err := p.parseExpression()
		if err != nil {
			return frag, err
		}
		if !p.match(')') {
			return frag, p.errorf("unmatched '('")
		}
		return frag, nil
	case ')':
		return Fragment{}, p.errorf("unmatched ')'")
	case '[':
		return p.parseCharClass()
	case ']':
		return Fragment{}, p.errorf("unmatched ']'")
	case '"':
		return p.parseStringLiteral()
	case '\\':
		p.consume()
		if p.eof() {
			return Fragment{}, p.errorf("dangling escape at end of pattern")
		}
		return p.n.Literal(p.consume()), nil
	default:
		return p.n.Literal(p.consume()), nil
	}
}

// CharClass ::= '[' ['^'] (char | char '-' char)* ']'
//
// Ranges expand to their individual symbols. A leading '^' negates the class
// against the configured alphabet. An empty resulting class is an error.
func (p *parser) parseCharClass() (Fragment, error) {
	p.consume() // '['
	set := make(map[rune]struct{})
	negate := false
	if !p.eof() && p.peek() == '^' {
		negate = true
		p.consume()
	}
	for !p.eof() && p.peek() != ']' {
		start := p.consume()
		if !p.eof() && p.peek() == '-' &&
			p.pos+1 < len(p.input) && p.input[p.pos+1] != ']' {
			p.consume() // '-'
			end := p.consume()
			for c := start; c <= end; c++ {
				set[c] = struct{}{}
			}
		} else {
			set[start] = struct{}{}
		}
	}
	if !p.match(']') {
		return Fragment{}, p.errorf("unmatched '['")
	}
	var chars []rune
	if negate {
		chars = p.alphabet.complement(set)
	} else {
		chars = make([]rune, 0, len(set))
		for c := range set {
			chars = append(chars, c)
		}
	}
	if len(chars) == 0 {
		return Fragment{}, p.errorf("empty character class")
	}
	return p.n.charSet(chars), nil
}

// StringLiteral ::= '"' (('\' AnyChar) | AnyChar)* '"'
//
// Compiles to a concatenation of literal matches; the empty literal is an
// ε-fragment.
func (p *parser) parseStringLiteral() (Fragment, error) {
	p.consume() // '"'
	var frag Fragment
	first := true
	for !p.eof() && p.peek() != '"' {
		c := p.consume()
		if c == '\\' {
			if p.eof() {
				return Fragment{}, p.errorf("dangling escape in string literal")
			}
			c = p.consume()
		}
		lit := p.n.Literal(c)
		if first {
			frag = lit
			first = false
		} else {
			frag = p.n.Concat(frag, lit)
		}
	}
	if !p.match('"') {
		return Fragment{}, p.errorf("unterminated string literal")
	}
	if first {
		return p.n.Epsilon(), nil
	}
	return frag, nil
}
