/*
Package runtime implements supporting data structures for lexer driving
layers: scopes and symbol tables (variable declarations and references).

For a thorough discussion of symbol tables and scope trees, refer to
"Language Implementation Patterns" by Terence Parr.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2025 The tokmach authors

*/
package runtime

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the global syntax tracer.
func T() tracing.Trace {
	return gtrace.SyntaxTracer
}

// GlobalScopeName is the name of the outermost scope of every scope tree.
const GlobalScopeName = "globals"

// NewScopeTree creates a scope tree with the global scope already pushed.
func NewScopeTree() *ScopeTree {
	tree := &ScopeTree{}
	tree.PushNewScope(GlobalScopeName)
	return tree
}
