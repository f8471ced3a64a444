package tokmach

import "fmt"

// --- Token types -----------------------------------------------------------

// TokType is a category type for a Token. Applications define their own token
// type constants; tokmach reserves the negative values below.
type TokType int

// Reserved token types. User-defined token types are small non-negative
// integers; patterns tagged with IgnoreType are matched but never emitted.
const (
	IgnoreType TokType = -1 // tag for patterns to be matched and dropped
	EOF        TokType = -2 // synthesized at end of input
)

// TokTypeStringer is a type to be provided by a scanner/application combination
// to be able to print out token categories.
type TokTypeStringer func(TokType) string

// --- Tokens ----------------------------------------------------------------

// Tokens represent input tokens. They are produced by a scanner and reflect
// terminals in a language.
//
// An example would be a token for an integer literal:
//
//    TokType = Int         // identifier for this kind of tokens (application specific)
//    Lexeme  = "4711"      // lexeme how it appeared in the input stream
//    Span    = 67…71       // occurred from position 67 in the input stream
//
type Token interface {
	TokType() TokType
	Lexeme() string
	Span() Span
}

// DefaultToken is an unsophisticated token type, used as the default token
// implementation for the DFA scanner as well as the lexmachine adapter.
type DefaultToken struct {
	kind   TokType
	lexeme string
	span   Span
}

// MakeToken creates a DefaultToken from a type, a lexeme and an input span.
func MakeToken(typ TokType, lexeme string, span Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

func (t DefaultToken) TokType() TokType {
	return t.kind
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Span() Span {
	return t.span
}

func (t DefaultToken) String() string {
	return fmt.Sprintf("%d(%q)%s", t.kind, t.lexeme, t.span)
}

var _ Token = DefaultToken{}

// --- Spans -----------------------------------------------------------------

// Span is a small type for capturing a length of input covered by a token.
// A span denotes a start position and the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}

// --- Patterns --------------------------------------------------------------

// Pattern associates a regular expression with a token type. Patterns are
// immutable once handed to the compiler.
//
// Prio is the declaration priority used for tie-breaking whenever two patterns
// match the same longest prefix: the pattern with the lower Prio value wins.
// Priority is an explicit field and not inferred from token type constants, so
// reordering pattern declarations keeps tie-breaking under the client's
// control.
type Pattern struct {
	Source string  // regular expression, in the dialect of package nfa
	Type   TokType // token type to emit for a match
	Prio   int     // declaration priority; lower wins ties
}

func (p Pattern) String() string {
	return fmt.Sprintf("%d ≔ /%s/ [%d]", p.Type, p.Source, p.Prio)
}

// Patterns is a convenience constructor for a pattern list. If every pattern
// carries the zero priority, priorities are filled in from list positions,
// realizing first-declared-pattern-wins.
func Patterns(patterns ...Pattern) []Pattern {
	allzero := true
	for _, p := range patterns {
		if p.Prio != 0 {
			allzero = false
			break
		}
	}
	if allzero {
		for i := range patterns {
			patterns[i].Prio = i
		}
	}
	return patterns
}
