package dfa

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/cnf/structhash"
	"github.com/tokmach/tokmach/sparse"
)

// Dump writes all states with id, acceptance, tag and transitions to w. The
// rendering is for inspection and tests; it is not a serialization format.
func (a *Automaton) Dump(w io.Writer) {
	for i := range a.states {
		st := &a.states[i]
		fmt.Fprintf(w, "DFA State %d", st.id)
		if st.accepting {
			fmt.Fprintf(w, " [Accepting, tokenType=%d]", st.tag)
		}
		fmt.Fprint(w, ": ")
		for _, c := range sortedTransSymbols(st.trans) {
			fmt.Fprintf(w, "[%q -> %d] ", c, st.trans[c])
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Total DFA states: %d\n", len(a.states))
}

// WriteTransitionTable writes a fixed-width transition table to w, with one
// column per symbol of the automaton's alphabet, ascending. Missing
// transitions render as '-'.
func (a *Automaton) WriteTransitionTable(w io.Writer) {
	fmt.Fprintf(w, "%-10s", "State")
	for _, c := range a.alphabet {
		fmt.Fprintf(w, "%-10s", string(c))
	}
	fmt.Fprintln(w)
	for i := range a.states {
		st := &a.states[i]
		fmt.Fprintf(w, "%-10d", st.id)
		for _, c := range a.alphabet {
			cell := "-"
			if t, ok := st.trans[c]; ok {
				cell = fmt.Sprintf("%d", t)
			}
			fmt.Fprintf(w, "%-10s", cell)
		}
		fmt.Fprintln(w)
	}
}

// SaveGraphViz exports the automaton to the Graphviz Dot format, given a
// filename.
func (a *Automaton) SaveGraphViz(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("file open error: %w", err)
	}
	defer f.Close()
	f.WriteString(`digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=circle, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for i := range a.states {
		st := &a.states[i]
		label := fmt.Sprintf("%d", st.id)
		if st.accepting {
			label = fmt.Sprintf("%d | %d", st.id, st.tag)
		}
		f.WriteString(fmt.Sprintf("s%03d [fillcolor=%s label=\"%s\"]\n",
			st.id, nodecolor(st), label))
	}
	for i := range a.states {
		st := &a.states[i]
		for _, c := range sortedTransSymbols(st.trans) {
			f.WriteString(fmt.Sprintf("s%03d -> s%03d [label=\"%s\"]\n",
				st.id, st.trans[c], string(c)))
		}
	}
	f.WriteString("}\n")
	return nil
}

func nodecolor(st *state) string {
	if st.accepting {
		return "lightgray"
	}
	return "white"
}

// --- Fingerprints ----------------------------------------------------------

// canonical renderings for hashing; field order and slice order are fixed
type autoPrint struct {
	Start  int32
	States []statePrint
}

type statePrint struct {
	ID        int32
	Accepting bool
	Tag       int
	Trans     []transPrint
}

type transPrint struct {
	Symbol int32
	To     int32
}

// Signature returns a version-tagged hash over the automaton's canonical
// structure (start state, per-state acceptance and transitions). Two automata
// with identical structure have identical signatures; the signature is meant
// for diagnostics and test assertions, not for equivalence checking.
func (a *Automaton) Signature() string {
	ap := autoPrint{Start: int32(a.start)}
	for i := range a.states {
		st := &a.states[i]
		sp := statePrint{
			ID:        int32(st.id),
			Accepting: st.accepting,
		}
		if st.accepting {
			sp.Tag = int(st.tag)
		}
		for _, c := range sortedTransSymbols(st.trans) {
			sp.Trans = append(sp.Trans, transPrint{Symbol: int32(c), To: int32(st.trans[c])})
		}
		ap.States = append(ap.States, sp)
	}
	h, err := structhash.Hash(ap, 1)
	if err != nil {
		tracer().Errorf("cannot hash automaton: %v", err)
		return ""
	}
	return h
}

// Compact renders the transition function into a sparse matrix of size
// states × |alphabet|, with column j standing for Alphabet()[j] and -1 as the
// null value for missing transitions.
func (a *Automaton) Compact() *sparse.IntMatrix {
	m := sparse.NewIntMatrix(len(a.states), len(a.alphabet), -1)
	col := make(map[rune]int, len(a.alphabet))
	for j, c := range a.alphabet {
		col[c] = j
	}
	for i := range a.states {
		for c, t := range a.states[i].trans {
			m.Set(i, col[c], int32(t))
		}
	}
	return m
}

func sortedTransSymbols(trans map[rune]StateID) []rune {
	symbols := make([]rune, 0, len(trans))
	for c := range trans {
		symbols = append(symbols, c)
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })
	return symbols
}
