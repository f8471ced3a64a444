package dfa

import (
	"sort"

	"github.com/tokmach/tokmach"
	"github.com/tokmach/tokmach/nfa"
)

// StateID addresses a state within an Automaton.
type StateID int32

// None is returned by Next for missing transitions.
const None StateID = -1

// state is one DFA state. For a given symbol there is at most one target
// state; this is an invariant of the construction, not a convention.
type state struct {
	id        StateID
	trans     map[rune]StateID
	accepting bool
	tag       tokmach.TokType // valid iff accepting
	prio      int             // declaration priority of the winning pattern
	subset    []nfa.StateID   // constituent NFA ids, sorted; diagnostics only
}

// Automaton is a deterministic finite automaton over a pattern set. It is
// immutable once constructed and safe for concurrent scanning sessions.
type Automaton struct {
	states   []state
	start    StateID
	alphabet []rune // symbols observed on any transition, ascending
}

// Compile builds the automaton for an ordered pattern list: every pattern is
// parsed and merged into one NFA (see package nfa), which is then subjected to
// the subset construction. The alphabet parameter bounds negated character
// classes. Compilation aborts on the first malformed pattern; no partial
// automaton is returned.
func Compile(patterns []tokmach.Pattern, alphabet nfa.Alphabet) (*Automaton, error) {
	n, master, err := nfa.CompilePatterns(patterns, alphabet)
	if err != nil {
		return nil, err
	}
	return FromNFA(n, master), nil
}

// Start returns the automaton's start state.
func (a *Automaton) Start() StateID {
	return a.start
}

// StateCount returns the number of states.
func (a *Automaton) StateCount() int {
	return len(a.states)
}

// Next returns the target of the transition from s on symbol c, or (None,
// false) if the automaton is stuck.
func (a *Automaton) Next(s StateID, c rune) (StateID, bool) {
	t, ok := a.states[s].trans[c]
	if !ok {
		return None, false
	}
	return t, true
}

// Accepting reports whether s is an accepting state and, if so, which token
// type it accepts.
func (a *Automaton) Accepting(s StateID) (bool, tokmach.TokType) {
	st := &a.states[s]
	return st.accepting, st.tag
}

// Alphabet returns all symbols appearing on any transition, ascending.
func (a *Automaton) Alphabet() []rune {
	return a.alphabet
}

// Subset returns the constituent NFA state ids of s (sorted). The subsets are
// kept for diagnostics and tests; scanning never consults them.
func (a *Automaton) Subset(s StateID) []nfa.StateID {
	return a.states[s].subset
}

// collectAlphabet gathers the symbols observed on any transition.
func (a *Automaton) collectAlphabet() {
	set := make(map[rune]struct{})
	for i := range a.states {
		for c := range a.states[i].trans {
			set[c] = struct{}{}
		}
	}
	a.alphabet = make([]rune, 0, len(set))
	for c := range set {
		a.alphabet = append(a.alphabet, c)
	}
	sort.Slice(a.alphabet, func(i, j int) bool { return a.alphabet[i] < a.alphabet[j] })
}
