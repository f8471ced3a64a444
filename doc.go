/*
Package tokmach is a tokenizing toolbox built around deterministic finite
automata.

tokmach compiles a set of token patterns — regular expressions, each tagged
with a token type — into a single DFA and drives that DFA over input text with
longest-match (maximal-munch) semantics. Package structure is as follows:

■ nfa: Package nfa parses the regular expressions and assembles them into one
nondeterministic automaton via Thompson's construction, all states living in a
shared arena.

■ dfa: Package dfa turns the merged NFA into a deterministic automaton (subset
construction) and optionally collapses it to its minimal equivalent (partition
refinement).

■ scanner: Package scanner walks a compiled automaton over input text and
produces tokens, with longest-match and declaration-priority tie-breaking.

■ lexer: Package lexer is a driving layer on top of the scanner: comment
stripping, reserved-word promotion and symbol-table bookkeeping.

■ runtime: Package runtime provides some unsophisticated supporting data types
for scopes and symbol tables.

The base package contains data types which are used throughout all the other
packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2025 The tokmach authors

*/
package tokmach
