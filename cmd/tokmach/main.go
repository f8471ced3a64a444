package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/tokmach/tokmach"
	"github.com/tokmach/tokmach/dfa"
	"github.com/tokmach/tokmach/langdef"
	"github.com/tokmach/tokmach/nfa"
	"github.com/tokmach/tokmach/scanner"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2025 The tokmach authors

*/

// tracer traces with key 'tokmach.cli'.
func tracer() tracing.Trace {
	return tracing.Select("tokmach.cli")
}

// main() starts an interactive CLI: it compiles a token-definition file into
// a DFA and then tokenizes every line the user types, printing the resulting
// token stream. Useful as a sandbox while designing the token patterns of a
// language.
func main() {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	defsname := flag.String("defs", "", "Token definition file")
	minimize := flag.Bool("min", true, "Minimize the automaton")
	dump := flag.Bool("dump", false, "Dump automata and transition table")
	dotfile := flag.String("dot", "", "Export the automaton to a GraphViz file")
	resync := flag.Bool("resync", false, "Skip offending characters instead of aborting")
	flag.Parse()
	tracer().SetTraceLevel(traceLevel(*tlevel))
	pterm.Info.Println("Welcome to tokmach") // colored welcome message
	tracer().Infof("Trace level is %s", *tlevel)
	//
	set, err := loadDefs(*defsname)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
	n, master, err := nfa.CompilePatterns(set.Patterns, nfa.DefaultAlphabet())
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
	auto := dfa.FromNFA(n, master)
	statecnt := auto.StateCount()
	if *minimize {
		auto = auto.Minimize()
	}
	pterm.Info.Printf("%d patterns, %d NFA states, %d DFA states (%d minimized)\n",
		len(set.Patterns), n.StateCount(), statecnt, auto.StateCount())
	tracer().Infof("automaton signature is %s", auto.Signature())
	if *dump {
		n.Dump(os.Stdout, master)
		auto.Dump(os.Stdout)
		auto.WriteTransitionTable(os.Stdout)
		m := auto.Compact()
		pterm.Info.Printf("compact table %dx%d with %d transitions\n",
			m.M(), m.N(), m.ValueCount())
	}
	if *dotfile != "" {
		if err := auto.SaveGraphViz(*dotfile); err != nil {
			pterm.Error.Println(err.Error())
		}
	}
	//
	// set up REPL
	repl, err := readline.New("tokmach> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	tracer().Infof("Quit with <ctrl>D") // inform user how to stop the CLI
	policy := scanner.AbortOnError
	if *resync {
		policy = scanner.SkipAndRetry
	}
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		tokenize(auto, set, line, policy)
	}
	println("Good bye!")
}

// tokenize scans one input line and prints the token stream as a table.
func tokenize(auto *dfa.Automaton, set *langdef.Set, input string, policy scanner.ErrorPolicy) {
	sc := scanner.New(auto, input, scanner.OnError(policy))
	sc.SetErrorHandler(func(e error) {
		pterm.Error.Println(e.Error())
	})
	rows := pterm.TableData{{"Type", "Lexeme", "Span"}}
	for {
		token := sc.NextToken()
		if token.TokType() == tokmach.EOF {
			break
		}
		rows = append(rows, []string{
			set.TypeName(token.TokType()),
			fmt.Sprintf("%q", token.Lexeme()),
			token.Span().String(),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
		tracer().Errorf(err.Error())
	}
}

func loadDefs(filename string) (*langdef.Set, error) {
	if filename == "" {
		return nil, fmt.Errorf("no token definition file given; use -defs")
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("unable to open definition file: %w", err)
	}
	defer f.Close()
	return langdef.Parse(filename, f)
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func traceLevel(l string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(l)
}
