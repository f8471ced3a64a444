package lexmach

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/timtadh/lexmachine"
	"github.com/tokmach/tokmach"
	"github.com/tokmach/tokmach/dfa"
	"github.com/tokmach/tokmach/nfa"
	"github.com/tokmach/tokmach/scanner"
)

const (
	typIdent = iota + 1
	typNum
)

var inputStrings = []string{
	"1",
	"1+12",
	"hello world",
	"x=y+1",
	"1 22 333",
}

var tokenCounts = []int{1, 3, 2, 5, 3}

func initLexer(lexer *lexmachine.Lexer) {
	lexer.Add([]byte(`[a-z]+`), MakeToken("ID", typIdent))
	lexer.Add([]byte(`[0-9]+`), MakeToken("NUM", typNum))
	lexer.Add([]byte(`( |\t|\n|\r)+`), Skip)
}

func TestLM(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tokmach.scanner")
	defer teardown()
	//
	literals := []string{"=", "+", "-"}
	tokenIds := map[string]int{"=": 10, "+": 11, "-": 12}
	LM, err := NewLMAdapter(initLexer, literals, nil, tokenIds)
	if err != nil {
		t.Error(err)
	}
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		sc, err := LM.Scanner(input)
		if err != nil {
			t.Error(err)
		}
		token := sc.NextToken()
		count := 0
		for token.TokType() != tokmach.EOF {
			t.Logf(" %4d | %15s | @%5d", token.TokType(), token.Lexeme(), token.Span().From())
			token = sc.NextToken()
			count++
		}
		if count != tokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, tokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

// The DFA scanner and the lexmachine backend must agree on the token streams
// for a shared pattern set.
func TestDifferentialStreams(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tokmach.scanner")
	defer teardown()
	//
	literals := []string{"=", "+", "-"}
	tokenIds := map[string]int{"=": 10, "+": 11, "-": 12}
	LM, err := NewLMAdapter(initLexer, literals, nil, tokenIds)
	if err != nil {
		t.Fatal(err)
	}
	auto, err := dfa.Compile(tokmach.Patterns(
		tokmach.Pattern{Source: "[a-z]+", Type: typIdent, Prio: 1},
		tokmach.Pattern{Source: "[0-9]+", Type: typNum, Prio: 2},
		tokmach.Pattern{Source: "[ \t\n\r]+", Type: tokmach.IgnoreType, Prio: 3},
		tokmach.Pattern{Source: "=", Type: 10, Prio: 4},
		tokmach.Pattern{Source: "\\+", Type: 11, Prio: 5},
		tokmach.Pattern{Source: "-", Type: 12, Prio: 6},
	), nfa.DefaultAlphabet())
	if err != nil {
		t.Fatal(err)
	}
	for _, input := range inputStrings {
		lmscan, err := LM.Scanner(input)
		if err != nil {
			t.Fatal(err)
		}
		ourscan := scanner.New(auto, input)
		for {
			want := lmscan.NextToken()
			got := ourscan.NextToken()
			if want.TokType() != got.TokType() || want.Lexeme() != got.Lexeme() {
				t.Errorf("input %q: backends disagree: lexmachine %d(%q), dfa %d(%q)",
					input, want.TokType(), want.Lexeme(), got.TokType(), got.Lexeme())
				break
			}
			if want.TokType() == tokmach.EOF {
				break
			}
		}
	}
}
