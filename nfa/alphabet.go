package nfa

import "sort"

// Alphabet is the set of symbols a negated character class complements
// against. It is an explicit parameter of pattern compilation, not a property
// of the host platform: symbols outside the alphabet are never produced by a
// negated class, while positive literals are unaffected by it.
//
// Alphabets are kept sorted ascending; construct them with NewAlphabet or use
// DefaultAlphabet.
type Alphabet []rune

// NewAlphabet creates an alphabet from the given symbols, deduplicated and
// sorted.
func NewAlphabet(symbols ...rune) Alphabet {
	set := make(map[rune]struct{}, len(symbols))
	for _, c := range symbols {
		set[c] = struct{}{}
	}
	a := make(Alphabet, 0, len(set))
	for c := range set {
		a = append(a, c)
	}
	sort.Slice(a, func(i, j int) bool { return a[i] < a[j] })
	return a
}

// DefaultAlphabet is the printable ASCII range 32–126 plus tab, newline and
// carriage return.
func DefaultAlphabet() Alphabet {
	a := make(Alphabet, 0, 98)
	a = append(a, '\t', '\n', '\r')
	for c := rune(32); c < 127; c++ {
		a = append(a, c)
	}
	return a
}

// Contains reports whether c is a symbol of the alphabet.
func (a Alphabet) Contains(c rune) bool {
	i := sort.Search(len(a), func(i int) bool { return a[i] >= c })
	return i < len(a) && a[i] == c
}

// complement returns all alphabet symbols not contained in the given set, in
// ascending order.
func (a Alphabet) complement(set map[rune]struct{}) []rune {
	r := make([]rune, 0, len(a))
	for _, c := range a {
		if _, ok := set[c]; !ok {
			r = append(r, c)
		}
	}
	return r
}
