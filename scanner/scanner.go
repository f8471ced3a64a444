/*
Package scanner drives a compiled automaton over input text and produces
tokens.

The scanner implements true maximal munch: for each token it walks the DFA as
far as the input allows, recording the most recent accepting state, and only
falls back (conceptually) to that last recorded accept point once the
automaton is stuck or the input is exhausted. If no accept point was ever
recorded, the scan fails with a LexError; whether the session aborts or skips
one character and retries is an explicit configuration choice.

A Scanner owns nothing but its cursor and a reference to its input; the
automaton is read-only and may be shared between any number of concurrent
scanning sessions.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2025 The tokmach authors

*/
package scanner

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"github.com/tokmach/tokmach"
	"github.com/tokmach/tokmach/dfa"
)

// tracer traces with key 'tokmach.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("tokmach.scanner")
}

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() tokmach.Token
	SetErrorHandler(func(error))
}

// LexError is a scan-time error: no input prefix starting at Offset matches
// any pattern. Nothing has been consumed when a LexError is reported.
type LexError struct {
	Offset  int    // rune offset into the input
	Context string // short snippet of the input following Offset
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lexical error at position %d: no pattern matches; context: %q",
		e.Offset, e.Context)
}

// contextLen bounds the snippet carried by a LexError.
const contextLen = 10

func contextSnippet(input []rune, offset int) string {
	end := offset + contextLen
	if end > len(input) {
		end = len(input)
	}
	return string(input[offset:end])
}

// ErrorPolicy selects how a scanning session reacts to a LexError.
type ErrorPolicy int

const (
	// AbortOnError ends the session: the cursor stays put and NextToken
	// returns an EOF token after reporting the error.
	AbortOnError ErrorPolicy = iota
	// SkipAndRetry reports the error, advances the cursor by one character
	// and retries scanning.
	SkipAndRetry
)

// Scan is the single-token step: starting at offset, it walks the automaton
// and returns the longest-match token together with the new cursor offset.
// At the end of input it returns an EOF token, with the offset unchanged.
// On failure it returns a *LexError and the unchanged offset; no characters
// are consumed and no partial token is salvaged, since without an accept
// point none was ever recorded.
func Scan(a *dfa.Automaton, input []rune, offset int) (tokmach.Token, int, error) {
	if offset >= len(input) {
		eof := tokmach.MakeToken(tokmach.EOF, "",
			tokmach.Span{uint64(len(input)), uint64(len(input))})
		return eof, offset, nil
	}
	current := a.Start()
	lastAccept := -1
	var lastTag tokmach.TokType
	i := offset
	for i < len(input) {
		next, ok := a.Next(current, input[i])
		if !ok {
			break
		}
		current = next
		i++
		if accepting, tag := a.Accepting(current); accepting {
			lastAccept = i // longest match so far
			lastTag = tag
		}
	}
	if lastAccept < 0 {
		return nil, offset, &LexError{
			Offset:  offset,
			Context: contextSnippet(input, offset),
		}
	}
	token := tokmach.MakeToken(lastTag, string(input[offset:lastAccept]),
		tokmach.Span{uint64(offset), uint64(lastAccept)})
	return token, lastAccept, nil
}

// Scanner is a scanning session over one input. Create one with New; the
// cursor is the only mutable state.
type Scanner struct {
	auto   *dfa.Automaton
	input  []rune
	pos    int
	policy ErrorPolicy
	skip   map[tokmach.TokType]bool
	Error  func(error) // error handler
}

var _ Tokenizer = (*Scanner)(nil)

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// New creates a scanning session for an input over a compiled automaton.
// By default, tokens of type tokmach.IgnoreType are matched but not emitted,
// and the session aborts on lexical errors.
func New(a *dfa.Automaton, input string, opts ...Option) *Scanner {
	s := &Scanner{
		auto:  a,
		input: []rune(input),
		skip:  map[tokmach.TokType]bool{tokmach.IgnoreType: true},
		Error: logError,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Pos returns the current cursor offset (in runes).
func (s *Scanner) Pos() int {
	return s.pos
}

// SetErrorHandler sets an error handler for the scanner.
func (s *Scanner) SetErrorHandler(h func(error)) {
	if h == nil {
		s.Error = logError
		return
	}
	s.Error = h
}

// NextToken returns the next token of the session, applying skip-type
// filtering and the configured error policy. At the end of input — and after
// an error under AbortOnError — it returns an EOF token.
func (s *Scanner) NextToken() tokmach.Token {
	for {
		token, newpos, err := Scan(s.auto, s.input, s.pos)
		if err != nil {
			s.Error(err)
			if s.policy == SkipAndRetry && s.pos < len(s.input) {
				s.pos++
				continue
			}
			return tokmach.MakeToken(tokmach.EOF, "",
				tokmach.Span{uint64(s.pos), uint64(s.pos)})
		}
		s.pos = newpos
		if token.TokType() == tokmach.EOF {
			tracer().Debugf("scanner reached end of input")
			return token
		}
		if s.skip[token.TokType()] {
			continue
		}
		return token
	}
}

// --- Scanner options -------------------------------------------------------

// Option configures a scanning session.
type Option func(s *Scanner)

// SkipTypes replaces the set of token types which are matched but not
// emitted. The default set contains only tokmach.IgnoreType.
func SkipTypes(types ...tokmach.TokType) Option {
	return func(s *Scanner) {
		s.skip = make(map[tokmach.TokType]bool, len(types))
		for _, t := range types {
			s.skip[t] = true
		}
	}
}

// OnError selects the session's error policy.
func OnError(policy ErrorPolicy) Option {
	return func(s *Scanner) {
		s.policy = policy
	}
}
