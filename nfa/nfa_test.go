package nfa

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/tokmach/tokmach"
)

func TestCombinators(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tokmach.nfa")
	defer teardown()
	//
	n := New()
	a := n.Literal('a')
	if n.StateCount() != 2 {
		t.Errorf("expected literal to allocate 2 states, got %d", n.StateCount())
	}
	star := n.Star(a)
	if len(n.states[star.Start].eps) != 2 {
		t.Errorf("expected star start to have 2 ε-edges, has %d", len(n.states[star.Start].eps))
	}
	if len(n.states[a.Accept].eps) != 2 {
		t.Errorf("expected inner accept to loop back and exit, has %d ε-edges",
			len(n.states[a.Accept].eps))
	}
	n.TagAccept(star, 7, 1)
	ok, tag, prio := n.Accepting(star.Accept)
	if !ok || tag != 7 || prio != 1 {
		t.Errorf("accept tagging broken: ok=%v tag=%d prio=%d", ok, tag, prio)
	}
}

func TestParsePatterns(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tokmach.nfa")
	defer teardown()
	//
	good := []string{
		"a",
		"ab|cd",
		"(a|b)*c+d?",
		"[a-z_]+",
		"[0-9]+\\.[0-9]+",
		`"while"`,
		`""`,
		"\\(",
		"[^a-z]",
		"",
	}
	for _, pattern := range good {
		n := New()
		if _, err := n.ParsePattern(pattern, DefaultAlphabet()); err != nil {
			t.Errorf("pattern /%s/ should parse, got: %v", pattern, err)
		}
	}
}

func TestParseErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tokmach.nfa")
	defer teardown()
	//
	bad := []struct {
		pattern string
		msg     string
	}{
		{"(ab", "unmatched '('"},
		{"ab)", "unmatched ')'"},
		{"[abc", "unmatched '['"},
		{"abc]", "unmatched ']'"},
		{"ab\\", "dangling escape"},
		{`"abc`, "unterminated string literal"},
		{"[]", "empty character class"},
		{"[^ -~\t\n\r]", "empty character class"},
	}
	for _, test := range bad {
		n := New()
		_, err := n.ParsePattern(test.pattern, DefaultAlphabet())
		if err == nil {
			t.Errorf("pattern /%s/ should not parse", test.pattern)
			continue
		}
		perr, ok := err.(*ParseError)
		if !ok {
			t.Errorf("pattern /%s/: expected *ParseError, got %T", test.pattern, err)
			continue
		}
		if !strings.Contains(perr.Msg, test.msg) {
			t.Errorf("pattern /%s/: expected error %q, got %q", test.pattern, test.msg, perr.Msg)
		}
	}
}

func TestNegatedClassBounds(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tokmach.nfa")
	defer teardown()
	//
	alphabet := DefaultAlphabet()
	n := New()
	frag, err := n.ParsePattern("[^a-z]", alphabet)
	if err != nil {
		t.Fatalf("pattern should parse, got: %v", err)
	}
	matched := make(map[rune]bool)
	for _, e := range n.states[frag.Start].edges {
		matched[e.symbol] = true
	}
	if len(matched) != len(alphabet)-26 {
		t.Errorf("expected %d symbols in complement, got %d", len(alphabet)-26, len(matched))
	}
	for c := 'a'; c <= 'z'; c++ {
		if matched[c] {
			t.Errorf("negated class must not match %q", c)
		}
	}
	for _, c := range alphabet {
		if c >= 'a' && c <= 'z' {
			continue
		}
		if !matched[c] {
			t.Errorf("negated class should match alphabet symbol %q", c)
		}
	}
}

func TestCompilePatterns(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tokmach.nfa")
	defer teardown()
	//
	patterns := tokmach.Patterns(
		tokmach.Pattern{Source: "[ \t\n]+", Type: tokmach.IgnoreType},
		tokmach.Pattern{Source: "[a-z]+", Type: 1},
		tokmach.Pattern{Source: "[0-9]+", Type: 2},
	)
	n, master, err := CompilePatterns(patterns, DefaultAlphabet())
	if err != nil {
		t.Fatalf("patterns should compile, got: %v", err)
	}
	if len(n.EpsTargets(master)) != 3 {
		t.Errorf("master start should have 3 ε-edges, has %d", len(n.EpsTargets(master)))
	}
	// ids must be unique and dense
	if n.StateCount() == 0 || int(master) != n.StateCount()-1 {
		t.Errorf("master start should be the last allocated state")
	}
}

func TestCompileAbortsOnFirstError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tokmach.nfa")
	defer teardown()
	//
	patterns := tokmach.Patterns(
		tokmach.Pattern{Source: "[a-z]+", Type: 1},
		tokmach.Pattern{Source: "(boom", Type: 2},
	)
	n, _, err := CompilePatterns(patterns, DefaultAlphabet())
	if err == nil {
		t.Fatal("compilation should fail on malformed pattern")
	}
	if n != nil {
		t.Error("no partial automaton may be returned")
	}
}
