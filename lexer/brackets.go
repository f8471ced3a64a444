package lexer

import (
	"fmt"
	"io"
)

// BracketError reports an unbalanced '(' / ')' or '{' / '}' pair.
type BracketError struct {
	Offset int  // rune offset; -1 for unclosed brackets left at end of input
	Char   rune // the offending bracket, 0 for the end-of-input case
}

func (e *BracketError) Error() string {
	if e.Offset < 0 {
		return "unmatched opening bracket(s) at end of input"
	}
	return fmt.Sprintf("unmatched %q at position %d", e.Char, e.Offset)
}

// CheckBrackets checks the input for balanced parentheses and braces,
// ignoring brackets inside double-quoted string literals. It returns one
// error per unbalanced closing bracket, plus one trailing error if opening
// brackets are left unclosed.
func CheckBrackets(input string) []error {
	var errors []error
	var stack []rune
	inString := false
	for i, ch := range []rune(input) {
		if ch == '"' {
			inString = !inString
		}
		if inString {
			continue
		}
		switch ch {
		case '(', '{':
			stack = append(stack, ch)
		case ')':
			if len(stack) == 0 || stack[len(stack)-1] != '(' {
				errors = append(errors, &BracketError{Offset: i, Char: ch})
			} else {
				stack = stack[:len(stack)-1]
			}
		case '}':
			if len(stack) == 0 || stack[len(stack)-1] != '{' {
				errors = append(errors, &BracketError{Offset: i, Char: ch})
			} else {
				stack = stack[:len(stack)-1]
			}
		}
	}
	if len(stack) > 0 {
		errors = append(errors, &BracketError{Offset: -1})
	}
	return errors
}

// WriteSymbolTable writes the recorded declarations as a fixed-width table.
func (l *Lexer) WriteSymbolTable(w io.Writer) {
	fmt.Fprintln(w, "Symbol Table:")
	fmt.Fprintf(w, "%-10s %-10s %-10s\n", "Variable", "Type", "Scope")
	for _, d := range l.declared {
		fmt.Fprintf(w, "%-10s %-10s %-10s\n", d.Name, d.Type, d.Scope)
	}
}
