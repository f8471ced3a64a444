package lexer

import (
	"github.com/tokmach/tokmach"
	"github.com/tokmach/tokmach/runtime"
	"github.com/tokmach/tokmach/scanner"
)

// Option configures a lexer session.
type Option func(l *Lexer)

// OnError selects the session's reaction to lexical errors: abort (default)
// or skip one character and retry.
func OnError(policy scanner.ErrorPolicy) Option {
	return func(l *Lexer) {
		l.policy = policy
	}
}

// SkipTypes replaces the set of token types which are matched but not
// emitted. The default set contains only tokmach.IgnoreType.
func SkipTypes(types ...tokmach.TokType) Option {
	return func(l *Lexer) {
		l.skip = make(map[tokmach.TokType]bool, len(types))
		for _, t := range types {
			l.skip[t] = true
		}
	}
}

// LineComment sets the marker starting a comment that runs to the end of the
// line. The default marker is "^.^". An empty marker disables line comments.
func LineComment(marker string) Option {
	return func(l *Lexer) {
		l.lineMarker = []rune(marker)
	}
}

// BlockComment sets the opening and closing markers of block comments. The
// default is "<3" for both. Empty markers disable block comments.
func BlockComment(open, close string) Option {
	return func(l *Lexer) {
		l.blockOpen = []rune(open)
		l.blockClose = []rune(close)
	}
}

// Keywords configures reserved-word promotion: tokens of type ident whose
// lexeme appears in words are re-tagged as keyword tokens.
func Keywords(ident, keyword tokmach.TokType, words ...string) Option {
	return func(l *Lexer) {
		l.identType = ident
		l.keywordType = keyword
		l.keywords = make(map[string]bool, len(words))
		for _, w := range words {
			l.keywords[w] = true
		}
	}
}

// Declarations names the reserved words which declare a variable: whenever
// one of them is followed by an identifier token, the identifier is recorded
// in the active scope. Words must also be configured via Keywords to take
// effect.
func Declarations(words ...string) Option {
	return func(l *Lexer) {
		l.declWords = make(map[string]int8, len(words))
		for _, w := range words {
			l.declWords[w] = declType(w)
		}
	}
}

// ScopeDelims sets the lexemes opening and closing a local scope; defaults
// are "{" and "}".
func ScopeDelims(open, close string) Option {
	return func(l *Lexer) {
		l.scopeOpen = open
		l.scopeClose = close
	}
}

func declType(word string) int8 {
	switch word {
	case "int":
		return runtime.IntegerType
	case "double", "float":
		return runtime.FloatType
	case "char":
		return runtime.CharType
	case "bool":
		return runtime.BooleanType
	}
	return runtime.Undefined
}
