/*
Package nfa builds nondeterministic finite automata from token patterns.

Patterns are regular expressions in a small dialect (alternation, concatenation,
'*', '+', '?', grouping, character classes with ranges and negation, and quoted
string literals). Each pattern is parsed by recursive descent and assembled into
an automaton fragment via Thompson's construction. All fragments of a pattern
set share one state arena; a synthetic master start state with ε-edges to every
fragment start lets a single automaton recognize any of the configured token
types at once.

States are addressed by integer ids into the arena. Composition of fragments
only ever adds edges, never copies states, so the arena stays free of reference
cycles even for Kleene-star loops.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2025 The tokmach authors

*/
package nfa

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'tokmach.nfa'.
func tracer() tracing.Trace {
	return tracing.Select("tokmach.nfa")
}
