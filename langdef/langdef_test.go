package langdef

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/tokmach/tokmach"
)

const defs = `
// whitespace is dropped
skip    "[ \t\n\r]+" ;
IDENT   "[a-z_]+" ;
DECIMAL "[0-9]+\\.[0-9]+" ;
INT     "[0-9]+" ;
`

func TestParseDefs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tokmach.langdef")
	defer teardown()
	//
	set, err := ParseString("defs", defs)
	if err != nil {
		t.Fatalf("definition file should parse, got: %v", err)
	}
	if len(set.Patterns) != 4 {
		t.Fatalf("expected 4 patterns, got %d", len(set.Patterns))
	}
	if set.Patterns[0].Type != tokmach.IgnoreType {
		t.Errorf("first pattern should be a skip pattern, is %d", set.Patterns[0].Type)
	}
	if set.Patterns[2].Source != `[0-9]+\.[0-9]+` {
		t.Errorf("quoted pattern not unquoted correctly: %q", set.Patterns[2].Source)
	}
	for i, p := range set.Patterns {
		if p.Prio != i {
			t.Errorf("pattern #%d should have priority %d, has %d", i, i, p.Prio)
		}
	}
	if set.Types["INT"] != 2 || set.TypeName(2) != "INT" {
		t.Errorf("name mapping broken: %v", set.Types)
	}
	if set.TypeName(tokmach.EOF) != "EOF" {
		t.Errorf("EOF should render as EOF")
	}
}

func TestDuplicateName(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tokmach.langdef")
	defer teardown()
	//
	if _, err := ParseString("defs", `A "a" ; A "b" ;`); err == nil {
		t.Error("duplicate token name should be rejected")
	}
}

func TestSyntaxError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tokmach.langdef")
	defer teardown()
	//
	if _, err := ParseString("defs", `IDENT [a-z]+ ;`); err == nil {
		t.Error("unquoted pattern should be rejected")
	}
}
