// Package grapheme wraps uniseg for the few cluster-level questions the
// editing core asks: where clusters start and end.
package grapheme

import "github.com/rivo/uniseg"

// Split returns grapheme clusters for text in visual order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len(text))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Boundaries returns the rune offsets where clusters of text start, followed
// by the total rune count. The result always begins with 0.
func Boundaries(text string) []int {
	out := make([]int, 1, len(text)+1)
	if text == "" {
		return out
	}
	g := uniseg.NewGraphemes(text)
	n := 0
	for g.Next() {
		n += len(g.Runes())
		out = append(out, n)
	}
	return out
}

// PrevBoundary returns the last cluster boundary strictly before col.
func PrevBoundary(text string, col int) int {
	b := Boundaries(text)
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] < col {
			return b[i]
		}
	}
	return 0
}

// NextBoundary returns the first cluster boundary strictly after col, or the
// rune length of text.
func NextBoundary(text string, col int) int {
	b := Boundaries(text)
	for _, x := range b {
		if x > col {
			return x
		}
	}
	return b[len(b)-1]
}
