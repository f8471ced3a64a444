package nfa

import (
	"fmt"
	"io"
	"sort"

	"github.com/tokmach/tokmach"
)

// StateID addresses a state within the arena of an NFA. Ids are handed out by
// a monotonic counter and are never reused; they stay unique across all
// fragments of one compiled pattern set.
type StateID int32

// none is the null state id.
const none StateID = -1

// edge is a transition consuming one input symbol.
type edge struct {
	symbol rune
	to     StateID
}

// state is one NFA state. ε-transitions are kept separate from symbol
// transitions. A state may carry an accept tag, marking it as the accepting
// state of a pattern's fragment.
type state struct {
	edges     []edge
	eps       []StateID
	accepting bool
	tag       tokmach.TokType // valid iff accepting
	prio      int             // declaration priority, valid iff accepting
}

// NFA is an arena of states. The zero value is not usable; create automata
// with New. An NFA is mutable while fragments are being composed and should be
// treated as frozen once handed to the subset construction.
type NFA struct {
	states []state
}

// New creates an empty automaton arena.
func New() *NFA {
	return &NFA{
		states: make([]state, 0, 64),
	}
}

// StateCount returns the number of allocated states.
func (n *NFA) StateCount() int {
	return len(n.states)
}

// newState allocates a fresh state and returns its id.
func (n *NFA) newState() StateID {
	n.states = append(n.states, state{})
	return StateID(len(n.states) - 1)
}

func (n *NFA) addEdge(from StateID, symbol rune, to StateID) {
	n.states[from].edges = append(n.states[from].edges, edge{symbol: symbol, to: to})
}

func (n *NFA) addEps(from, to StateID) {
	n.states[from].eps = append(n.states[from].eps, to)
}

// --- Fragments -------------------------------------------------------------

// Fragment is a sub-automaton under construction: a start state and a single
// accept state within the shared arena. Fragments compose by adding edges.
type Fragment struct {
	Start  StateID
	Accept StateID
}

// Literal returns a fragment matching exactly the symbol c.
func (n *NFA) Literal(c rune) Fragment {
	start := n.newState()
	accept := n.newState()
	n.addEdge(start, c, accept)
	return Fragment{Start: start, Accept: accept}
}

// Epsilon returns a fragment matching the empty string.
func (n *NFA) Epsilon() Fragment {
	start := n.newState()
	accept := n.newState()
	n.addEps(start, accept)
	return Fragment{Start: start, Accept: accept}
}

// charSet returns a fragment matching any one symbol of the given set.
// Equivalent to a union of literals, but with a single start/accept pair.
func (n *NFA) charSet(chars []rune) Fragment {
	start := n.newState()
	accept := n.newState()
	for _, c := range chars {
		n.addEdge(start, c, accept)
	}
	return Fragment{Start: start, Accept: accept}
}

// Concat chains two fragments: first a, then b.
func (n *NFA) Concat(a, b Fragment) Fragment {
	n.addEps(a.Accept, b.Start)
	return Fragment{Start: a.Start, Accept: b.Accept}
}

// Union returns a fragment matching either a or b.
func (n *NFA) Union(a, b Fragment) Fragment {
	start := n.newState()
	accept := n.newState()
	n.addEps(start, a.Start)
	n.addEps(start, b.Start)
	n.addEps(a.Accept, accept)
	n.addEps(b.Accept, accept)
	return Fragment{Start: start, Accept: accept}
}

// Star returns a fragment matching zero or more repetitions of a.
func (n *NFA) Star(a Fragment) Fragment {
	start := n.newState()
	accept := n.newState()
	n.addEps(start, a.Start)
	n.addEps(start, accept)
	n.addEps(a.Accept, a.Start)
	n.addEps(a.Accept, accept)
	return Fragment{Start: start, Accept: accept}
}

// Plus returns a fragment matching one or more repetitions of a.
func (n *NFA) Plus(a Fragment) Fragment {
	return n.Concat(a, n.Star(a))
}

// Optional returns a fragment matching a or the empty string.
func (n *NFA) Optional(a Fragment) Fragment {
	return n.Union(n.Epsilon(), a)
}

// TagAccept marks the fragment's accept state as accepting for the given token
// type and declaration priority.
func (n *NFA) TagAccept(f Fragment, typ tokmach.TokType, prio int) {
	n.states[f.Accept].accepting = true
	n.states[f.Accept].tag = typ
	n.states[f.Accept].prio = prio
}

// --- Queries used by the subset construction -------------------------------

// EpsTargets returns the ε-successors of state s.
func (n *NFA) EpsTargets(s StateID) []StateID {
	return n.states[s].eps
}

// Symbols appends all distinct non-ε symbols on edges leaving s to the given
// set.
func (n *NFA) Symbols(s StateID, into map[rune]struct{}) {
	for _, e := range n.states[s].edges {
		into[e.symbol] = struct{}{}
	}
}

// Move appends to the given set all states reachable from s over one edge
// labeled with symbol c.
func (n *NFA) Move(s StateID, c rune, into map[StateID]struct{}) {
	for _, e := range n.states[s].edges {
		if e.symbol == c {
			into[e.to] = struct{}{}
		}
	}
}

// Accepting reports whether s is an accepting state and, if so, its tag and
// priority.
func (n *NFA) Accepting(s StateID) (bool, tokmach.TokType, int) {
	st := &n.states[s]
	return st.accepting, st.tag, st.prio
}

// --- Pattern-set compilation -----------------------------------------------

// CompilePatterns parses every pattern and merges the resulting fragments
// under one synthetic master start state, which is returned together with the
// arena. The accept state reached during a scan determines which token type
// matched; on ties the pattern with the lower priority value wins.
//
// Compilation aborts on the first malformed pattern; no partial automaton is
// returned.
func CompilePatterns(patterns []tokmach.Pattern, alphabet Alphabet) (*NFA, StateID, error) {
	n := New()
	frags := make([]Fragment, 0, len(patterns))
	for _, p := range patterns {
		f, err := n.ParsePattern(p.Source, alphabet)
		if err != nil {
			tracer().Errorf("pattern %v: %v", p, err)
			return nil, none, err
		}
		n.TagAccept(f, p.Type, p.Prio)
		frags = append(frags, f)
	}
	master := n.newState()
	for _, f := range frags {
		n.addEps(master, f.Start)
	}
	tracer().Debugf("compiled %d patterns into %d NFA states", len(patterns), n.StateCount())
	return n, master, nil
}

// --- Diagnostics -----------------------------------------------------------

// Dump writes a human-readable rendering of all states reachable from start,
// in breadth-first order, followed by the reachable state count. It is meant
// for inspection and tests, not for serialization.
func (n *NFA) Dump(w io.Writer, start StateID) {
	visited := map[StateID]bool{start: true}
	queue := []StateID{start}
	count := 0
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		count++
		fmt.Fprintf(w, "State %d: ", s)
		st := &n.states[s]
		if st.accepting {
			fmt.Fprintf(w, "[accept %d] ", st.tag)
		}
		for _, e := range sortedEdges(st.edges) {
			fmt.Fprintf(w, "[%q -> %d] ", e.symbol, e.to)
			if !visited[e.to] {
				visited[e.to] = true
				queue = append(queue, e.to)
			}
		}
		for _, t := range st.eps {
			fmt.Fprintf(w, "[ε -> %d] ", t)
			if !visited[t] {
				visited[t] = true
				queue = append(queue, t)
			}
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Total unique NFA states: %d\n", count)
}

func sortedEdges(edges []edge) []edge {
	r := make([]edge, len(edges))
	copy(r, edges)
	sort.Slice(r, func(i, j int) bool {
		if r[i].symbol != r[j].symbol {
			return r[i].symbol < r[j].symbol
		}
		return r[i].to < r[j].to
	})
	return r
}
