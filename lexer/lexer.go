/*
Package lexer is a driving layer on top of the DFA scanner.

The scanner core knows nothing but patterns; this package adds the usual
language-flavored bookkeeping around it: comment stripping before each scan
step, promotion of identifiers to reserved words, and recording of declared
identifiers in a scope-aware symbol table. All of it consumes only the public
core API — the core never assumes this layer exists.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2025 The tokmach authors

*/
package lexer

import (
	"fmt"
	"unicode"

	"github.com/npillmayer/schuko/tracing"
	"github.com/tokmach/tokmach"
	"github.com/tokmach/tokmach/dfa"
	"github.com/tokmach/tokmach/runtime"
	"github.com/tokmach/tokmach/scanner"
)

// tracer traces with key 'tokmach.lexer'.
func tracer() tracing.Trace {
	return tracing.Select("tokmach.lexer")
}

// Declared is one symbol-table entry in declaration order.
type Declared struct {
	Name  string
	Type  string // lexeme of the declaring keyword
	Scope string // scope name, "globals" or a local block
}

// Lexer tokenizes one input over a compiled automaton, stripping comments,
// promoting reserved words and recording declarations. Create one with New.
type Lexer struct {
	auto        *dfa.Automaton
	input       []rune
	pos         int
	policy      scanner.ErrorPolicy
	skip        map[tokmach.TokType]bool
	lineMarker  []rune
	blockOpen   []rune
	blockClose  []rune
	scopeOpen   string
	scopeClose  string
	identType   tokmach.TokType
	keywordType tokmach.TokType
	keywords    map[string]bool
	declWords   map[string]int8
	scopes      *runtime.ScopeTree
	declared    []Declared
	buffer      []tokmach.Token // lookahead tokens already scanned
	tokenCount  int
	blockCount  int
	Error       func(error)
}

func logError(e error) {
	tracer().Errorf("lexer error: " + e.Error())
}

// New creates a lexer session for an input. The automaton is read-only and
// may back any number of concurrent sessions.
//
// Without options the lexer behaves like a plain scanner session with the
// default comment markers ("^.^" to end of line, "<3" … "<3") stripped.
func New(auto *dfa.Automaton, input string, opts ...Option) *Lexer {
	l := &Lexer{
		auto:        auto,
		input:       []rune(input),
		skip:        map[tokmach.TokType]bool{tokmach.IgnoreType: true},
		lineMarker:  []rune("^.^"),
		blockOpen:   []rune("<3"),
		blockClose:  []rune("<3"),
		scopeOpen:   "{",
		scopeClose:  "}",
		identType:   tokmach.IgnoreType, // no promotion unless configured
		keywordType: tokmach.IgnoreType,
		scopes:      runtime.NewScopeTree(),
		Error:       logError,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ scanner.Tokenizer = (*Lexer)(nil)

// SetErrorHandler sets an error handler for the lexer.
func (l *Lexer) SetErrorHandler(h func(error)) {
	if h == nil {
		l.Error = logError
		return
	}
	l.Error = h
}

// TokenCount returns the number of tokens emitted so far.
func (l *Lexer) TokenCount() int {
	return l.tokenCount
}

// Scopes returns the scope tree with all recorded declarations.
func (l *Lexer) Scopes() *runtime.ScopeTree {
	return l.scopes
}

// Declared returns the symbol-table entries in declaration order.
func (l *Lexer) Declared() []Declared {
	return l.declared
}

// NextToken emits the next token. Comments and skip-type matches are
// dropped, reserved words are promoted, declarations are recorded. At the end
// of input — and after a lexical error under AbortOnError — an EOF token is
// returned.
func (l *Lexer) NextToken() tokmach.Token {
	if len(l.buffer) > 0 {
		token := l.buffer[0]
		l.buffer = l.buffer[1:]
		l.trackScopes(token)
		l.tokenCount++
		return token
	}
	token := l.scanToken()
	token = l.promote(token)
	l.trackScopes(token)
	if token.TokType() == l.keywordType {
		l.trackDeclaration(token)
	}
	if token.TokType() != tokmach.EOF {
		l.tokenCount++
	}
	return token
}

// Tokens drains the session and returns all remaining tokens, without the
// trailing EOF.
func (l *Lexer) Tokens() []tokmach.Token {
	var tokens []tokmach.Token
	for {
		token := l.NextToken()
		if token.TokType() == tokmach.EOF {
			return tokens
		}
		tokens = append(tokens, token)
	}
}

// scanToken is one scan step: strip layout, then run the automaton,
// applying skip-type filtering and the error policy.
func (l *Lexer) scanToken() tokmach.Token {
	for {
		l.skipLayout()
		token, newpos, err := scanner.Scan(l.auto, l.input, l.pos)
		if err != nil {
			l.Error(err)
			if l.policy == scanner.SkipAndRetry && l.pos < len(l.input) {
				l.pos++
				continue
			}
			return tokmach.MakeToken(tokmach.EOF, "",
				tokmach.Span{uint64(l.pos), uint64(l.pos)})
		}
		l.pos = newpos
		if token.TokType() != tokmach.EOF && l.skip[token.TokType()] {
			continue
		}
		return token
	}
}

// skipLayout advances the cursor over whitespace and comments. An
// unterminated block comment runs to the end of input.
func (l *Lexer) skipLayout() {
	for {
		for l.pos < len(l.input) && unicode.IsSpace(l.input[l.pos]) {
			l.pos++
		}
		if l.lookingAt(l.lineMarker) {
			for l.pos < len(l.input) && l.input[l.pos] != '\n' {
				l.pos++
			}
			continue
		}
		if l.lookingAt(l.blockOpen) {
			l.pos += len(l.blockOpen)
			for l.pos < len(l.input) && !l.lookingAt(l.blockClose) {
				l.pos++
			}
			if l.pos < len(l.input) {
				l.pos += len(l.blockClose)
			}
			continue
		}
		return
	}
}

func (l *Lexer) lookingAt(marker []rune) bool {
	if len(marker) == 0 || l.pos+len(marker) > len(l.input) {
		return false
	}
	for i, c := range marker {
		if l.input[l.pos+i] != c {
			return false
		}
	}
	return true
}

// promote reclassifies an identifier token as a keyword if its lexeme is a
// reserved word.
func (l *Lexer) promote(token tokmach.Token) tokmach.Token {
	if token.TokType() != l.identType || !l.keywords[token.Lexeme()] {
		return token
	}
	tracer().Debugf("promoting %q to reserved word", token.Lexeme())
	return tokmach.MakeToken(l.keywordType, token.Lexeme(), token.Span())
}

// trackScopes pushes/pops a local scope on block delimiters.
func (l *Lexer) trackScopes(token tokmach.Token) {
	switch token.Lexeme() {
	case l.scopeOpen:
		l.blockCount++
		l.scopes.PushNewScope(blockName(l.blockCount))
	case l.scopeClose:
		l.scopes.PopScope()
	}
}

func blockName(n int) string {
	return fmt.Sprintf("block-%d", n)
}

// trackDeclaration records the identifier following a declaration keyword in
// the active scope. The lookahead token is buffered and emitted on the next
// call, whether it was an identifier or not.
func (l *Lexer) trackDeclaration(keyword tokmach.Token) {
	typ, ok := l.declWords[keyword.Lexeme()]
	if !ok {
		return
	}
	next := l.scanToken()
	next = l.promote(next)
	if next.TokType() == l.identType {
		scope := l.scopes.Current()
		tag, _ := scope.DefineTag(next.Lexeme())
		tag.WithType(typ)
		l.declared = append(l.declared, Declared{
			Name:  next.Lexeme(),
			Type:  keyword.Lexeme(),
			Scope: scopeLabel(scope),
		})
		tracer().Debugf("declared %q as %s in %s", next.Lexeme(), keyword.Lexeme(), scope.Name)
	}
	if next.TokType() != tokmach.EOF {
		l.buffer = append(l.buffer, next)
	}
}

func scopeLabel(scope *runtime.Scope) string {
	if scope.IsGlobal() {
		return "global"
	}
	return "local"
}
