/*
Package dfa turns a merged pattern NFA into a deterministic finite automaton
and optionally collapses it to its minimal equivalent.

The subset construction discovers DFA states breadth-first from the start
state, so every state of a constructed automaton is reachable. Discovered
states are deduplicated by the exact set of constituent NFA state ids, never by
object identity. A DFA state is accepting iff at least one constituent NFA
state carries an accept tag; among those, the tag of the pattern with the
lowest declaration priority wins, which realizes first-declared-pattern-wins
for overlapping patterns.

Minimization is a Moore-style partition refinement: the initial partition
separates states by their (accepting, tag) signature, and blocks are split
until no block contains states that disagree on any symbol's target block.
Merging is exact-language-preserving per tag — for every input string, the
minimized automaton recognizes the same tag at the same length as the original.

A constructed Automaton is immutable and may be shared across any number of
concurrent scanning sessions.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2025 The tokmach authors

*/
package dfa

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'tokmach.dfa'.
func tracer() tracing.Trace {
	return tracing.Select("tokmach.dfa")
}
