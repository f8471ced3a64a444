package dfa

import (
	"sort"
	"strconv"
	"strings"

	"github.com/tokmach/tokmach/nfa"
)

// FromNFA runs the subset construction on an NFA, starting from the given
// master start state. Discovery is breadth-first, so every state of the
// resulting automaton is reachable from its start state.
func FromNFA(n *nfa.NFA, start nfa.StateID) *Automaton {
	tracer().Debugf("=== subset construction =========================================")
	a := &Automaton{}
	startSet := epsilonClosure(n, map[nfa.StateID]struct{}{start: {}})
	a.start = a.addState(n, startSet)
	seen := map[string]StateID{subsetKey(a.states[a.start].subset): a.start}
	queue := []StateID{a.start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		symbols := make(map[rune]struct{})
		for _, s := range a.states[current].subset {
			n.Symbols(s, symbols)
		}
		for _, c := range sortedSymbols(symbols) {
			move := make(map[nfa.StateID]struct{})
			for _, s := range a.states[current].subset {
				n.Move(s, c, move)
			}
			if len(move) == 0 {
				continue
			}
			target := epsilonClosure(n, move)
			key := subsetKey(sortedIDs(target))
			tid, ok := seen[key]
			if !ok {
				tid = a.addState(n, target)
				seen[key] = tid
				queue = append(queue, tid)
			}
			a.states[current].trans[c] = tid
		}
	}
	a.collectAlphabet()
	tracer().Debugf("subset construction yields %d DFA states", len(a.states))
	return a
}

// epsilonClosure extends the given set to its transitive closure over ε-edges.
// The visited set bounds the worklist to at most |NFA states| steps.
func epsilonClosure(n *nfa.NFA, set map[nfa.StateID]struct{}) map[nfa.StateID]struct{} {
	stack := make([]nfa.StateID, 0, len(set))
	for s := range set {
		stack = append(stack, s)
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, t := range n.EpsTargets(s) {
			if _, ok := set[t]; !ok {
				set[t] = struct{}{}
				stack = append(stack, t)
			}
		}
	}
	return set
}

// addState allocates a DFA state for a closed set of NFA states and resolves
// its acceptance: accepting iff any constituent accepts, tagged with the token
// type of the minimum-priority accepting constituent.
func (a *Automaton) addState(n *nfa.NFA, subset map[nfa.StateID]struct{}) StateID {
	id := StateID(len(a.states))
	st := state{
		id:     id,
		trans:  make(map[rune]StateID),
		subset: sortedIDs(subset),
	}
	best := int(^uint(0) >> 1) // max int
	for _, s := range st.subset {
		if ok, tag, prio := n.Accepting(s); ok {
			if !st.accepting || prio < best {
				st.accepting = true
				st.tag = tag
				best = prio
			}
		}
	}
	st.prio = best
	a.states = append(a.states, st)
	return id
}

func sortedIDs(set map[nfa.StateID]struct{}) []nfa.StateID {
	ids := make([]nfa.StateID, 0, len(set))
	for s := range set {
		ids = append(ids, s)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// subsetKey renders a sorted id set into a canonical lookup key. Dedup of
// discovered DFA states is keyed by the exact constituent set, never by
// object identity.
func subsetKey(ids []nfa.StateID) string {
	var sb strings.Builder
	for i, s := range ids {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(int(s)))
	}
	return sb.String()
}

func sortedSymbols(set map[rune]struct{}) []rune {
	symbols := make([]rune, 0, len(set))
	for c := range set {
		symbols = append(symbols, c)
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })
	return symbols
}
