package layout

import "unicode"

// splitWords breaks s before every word that follows a run of spaces, so
// trailing spaces stay with the word they follow. Segments whose text does
// not line up with their source span come back whole.
func (w *Wrapper) splitWords(s Segment) []Segment {
	if !s.splittable() {
		return []Segment{s}
	}

	runes := []rune(s.Text)
	var out []Segment
	start := 0
	for i := 1; i < len(runes); i++ {
		if unicode.IsSpace(runes[i-1]) && !unicode.IsSpace(runes[i]) {
			out = append(out, w.piece(s, runes, start, i))
			start = i
		}
	}
	out = append(out, w.piece(s, runes, start, len(runes)))
	return out
}

func (w *Wrapper) piece(s Segment, runes []rune, from, to int) Segment {
	p := Segment{
		Text:  string(runes[from:to]),
		Font:  s.Font,
		Start: s.Start + from,
		End:   s.Start + to,
	}
	p.Width = w.measure(p)
	return p
}
