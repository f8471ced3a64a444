package dfa

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/tokmach/tokmach"
	"github.com/tokmach/tokmach/nfa"
)

const (
	typSkip tokmach.TokType = iota
	typIdent
	typInt
	typBool
)

func testPatterns() []tokmach.Pattern {
	return tokmach.Patterns(
		tokmach.Pattern{Source: "[ \t\n]+", Type: typSkip},
		tokmach.Pattern{Source: "[a-z]+", Type: typIdent},
		tokmach.Pattern{Source: "[0-9]+", Type: typInt},
		tokmach.Pattern{Source: "0|1", Type: typBool},
	)
}

// simulate is a maximal-munch walk over the automaton, mirroring what the
// scanner does: it returns the tag and length of the longest match starting
// at the beginning of input, or (-1, 0).
func simulate(a *Automaton, input string) (tokmach.TokType, int) {
	current := a.Start()
	tag := tokmach.TokType(-1)
	length := 0
	pos := 0
	for _, c := range input {
		next, ok := a.Next(current, c)
		if !ok {
			break
		}
		current = next
		pos++
		if ok, t := a.Accepting(current); ok {
			tag = t
			length = pos
		}
	}
	return tag, length
}

func TestSubsetDedup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tokmach.dfa")
	defer teardown()
	//
	a, err := Compile(testPatterns(), nfa.DefaultAlphabet())
	if err != nil {
		t.Fatalf("patterns should compile, got: %v", err)
	}
	seen := make(map[string]StateID)
	for s := StateID(0); int(s) < a.StateCount(); s++ {
		key := subsetKey(a.Subset(s))
		if other, ok := seen[key]; ok {
			t.Errorf("states %d and %d share the constituent set {%s}", other, s, key)
		}
		seen[key] = s
	}
}

func TestAllStatesReachable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tokmach.dfa")
	defer teardown()
	//
	a, err := Compile(testPatterns(), nfa.DefaultAlphabet())
	if err != nil {
		t.Fatalf("patterns should compile, got: %v", err)
	}
	visited := map[StateID]bool{a.Start(): true}
	queue := []StateID{a.Start()}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for _, c := range a.Alphabet() {
			if to, ok := a.Next(s, c); ok && !visited[to] {
				visited[to] = true
				queue = append(queue, to)
			}
		}
	}
	if len(visited) != a.StateCount() {
		t.Errorf("%d of %d states reachable from start", len(visited), a.StateCount())
	}
}

func TestPriorityTieBreak(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tokmach.dfa")
	defer teardown()
	//
	// "1" matches both [0-9]+ (prio 2) and 0|1 (prio 3) at length 1;
	// the lower priority value must win.
	a, err := Compile(testPatterns(), nfa.DefaultAlphabet())
	if err != nil {
		t.Fatalf("patterns should compile, got: %v", err)
	}
	tag, length := simulate(a, "1")
	if tag != typInt || length != 1 {
		t.Errorf("expected INT match of length 1, got tag=%d length=%d", tag, length)
	}
}

func TestMaximalMunch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tokmach.dfa")
	defer teardown()
	//
	a, err := Compile(testPatterns(), nfa.DefaultAlphabet())
	if err != nil {
		t.Fatalf("patterns should compile, got: %v", err)
	}
	tag, length := simulate(a, "abcde!")
	if tag != typIdent || length != 5 {
		t.Errorf("expected IDENT match of length 5, got tag=%d length=%d", tag, length)
	}
}

func TestMinimizePreservesScans(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tokmach.dfa")
	defer teardown()
	//
	a, err := Compile(testPatterns(), nfa.DefaultAlphabet())
	if err != nil {
		t.Fatalf("patterns should compile, got: %v", err)
	}
	min := a.Minimize()
	if min.StateCount() > a.StateCount() {
		t.Errorf("minimization grew the automaton: %d > %d", min.StateCount(), a.StateCount())
	}
	inputs := []string{
		"hello", "0", "1", "10", "0x", "   ", "a1", "1a", "Z", "", "abc def",
	}
	for _, input := range inputs {
		tag1, len1 := simulate(a, input)
		tag2, len2 := simulate(min, input)
		if tag1 != tag2 || len1 != len2 {
			t.Errorf("minimization changed %q: (%d,%d) vs (%d,%d)",
				input, tag1, len1, tag2, len2)
		}
	}
}

func TestMinimizeIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tokmach.dfa")
	defer teardown()
	//
	a, err := Compile(testPatterns(), nfa.DefaultAlphabet())
	if err != nil {
		t.Fatalf("patterns should compile, got: %v", err)
	}
	min := a.Minimize()
	again := min.Minimize()
	if min.StateCount() != again.StateCount() {
		t.Errorf("re-minimization changed state count: %d vs %d",
			min.StateCount(), again.StateCount())
	}
}

func TestSignatureStable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tokmach.dfa")
	defer teardown()
	//
	a1, err := Compile(testPatterns(), nfa.DefaultAlphabet())
	if err != nil {
		t.Fatalf("patterns should compile, got: %v", err)
	}
	a2, _ := Compile(testPatterns(), nfa.DefaultAlphabet())
	if a1.Signature() == "" || a1.Signature() != a2.Signature() {
		t.Errorf("recompiling identical patterns should yield identical signatures")
	}
}

func TestDumpAndTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tokmach.dfa")
	defer teardown()
	//
	a, err := Compile(tokmach.Patterns(
		tokmach.Pattern{Source: "ab", Type: 1},
	), nfa.DefaultAlphabet())
	if err != nil {
		t.Fatalf("pattern should compile, got: %v", err)
	}
	var sb strings.Builder
	a.Dump(&sb)
	if !strings.Contains(sb.String(), "Total DFA states: 3") {
		t.Errorf("dump should report 3 states:\n%s", sb.String())
	}
	sb.Reset()
	a.WriteTransitionTable(&sb)
	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	if len(lines) != 4 { // header + 3 states
		t.Errorf("expected 4 table lines, got %d:\n%s", len(lines), sb.String())
	}
	if !strings.HasPrefix(lines[0], "State") {
		t.Errorf("table header malformed: %q", lines[0])
	}
}

func TestCompact(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tokmach.dfa")
	defer teardown()
	//
	a, err := Compile(tokmach.Patterns(
		tokmach.Pattern{Source: "ab", Type: 1},
	), nfa.DefaultAlphabet())
	if err != nil {
		t.Fatalf("pattern should compile, got: %v", err)
	}
	m := a.Compact()
	if m.M() != a.StateCount() || m.N() != len(a.Alphabet()) {
		t.Errorf("matrix dimensions %dx%d do not match automaton", m.M(), m.N())
	}
	if m.ValueCount() != 2 { // a then b
		t.Errorf("expected 2 transitions, matrix has %d", m.ValueCount())
	}
}
