package markup

import (
	"sort"

	"github.com/iw2rmb/scribe/layout"
)

// RenderMode decides how a span is displayed.
type RenderMode int

const (
	// ModeRendered hides markup markers and applies the span's styling.
	ModeRendered RenderMode = iota
	// ModeRaw shows the span's source text, markers included.
	ModeRaw
)

// ModeFunc picks a RenderMode per span.
type ModeFunc func(Span) RenderMode

// AllRendered renders every span.
func AllRendered(Span) RenderMode { return ModeRendered }

// AllRaw shows every span as source.
func AllRaw(Span) RenderMode { return ModeRaw }

// RawAt shows raw source for spans the cursor column touches and renders the
// rest.
func RawAt(col int) ModeFunc {
	return func(s Span) RenderMode {
		if s.Touches(col) {
			return ModeRaw
		}
		return ModeRendered
	}
}

var headingScale = []float64{2.0, 1.5, 1.25, 1.1}

// Styler converts a line and its spans into layout segments.
type Styler struct {
	BaseSize float64
}

func (s Styler) base() layout.Font {
	size := s.BaseSize
	if size <= 0 {
		size = layout.DefaultFontSize
	}
	return layout.Font{Size: size}
}

// Segments returns contiguous segments covering every character of line.
// Rendered spans emit their markers as hidden segments. mode may be nil, in
// which case every span is rendered.
func (s Styler) Segments(line string, spans []Span, mode ModeFunc) []layout.Segment {
	runes := []rune(line)
	if len(runes) == 0 {
		return nil
	}
	if mode == nil {
		mode = AllRendered
	}

	spans = normalizeSpans(spans, len(runes))
	base := s.base()
	var out []layout.Segment
	emit := func(start, end int, font layout.Font, hidden bool) {
		if start >= end {
			return
		}
		seg := layout.Segment{Font: font, Start: start, End: end}
		if !hidden {
			seg.Text = string(runes[start:end])
		}
		out = append(out, seg)
	}

	pos := 0
	for _, sp := range spans {
		emit(pos, sp.Start, base, false)
		font := s.fontFor(sp, runes)
		if mode(sp) == ModeRaw {
			emit(sp.Start, sp.End, font, false)
		} else {
			lead, trail := markers(sp, runes)
			emit(sp.Start, sp.Start+lead, font, true)
			emit(sp.Start+lead, sp.End-trail, font, false)
			emit(sp.End-trail, sp.End, font, true)
		}
		pos = sp.End
	}
	emit(pos, len(runes), base, false)
	return out
}

func (s Styler) fontFor(sp Span, runes []rune) layout.Font {
	f := s.base()
	switch sp.Kind {
	case KindHeading:
		level := 0
		for i := sp.Start; i < sp.End && runes[i] == '#'; i++ {
			level++
		}
		if level > 0 {
			f.Size *= headingScale[min(level, len(headingScale))-1]
		}
		f.Bold = true
	case KindStrong:
		f.Bold = true
	case KindEmphasis:
		f.Italic = true
	case KindCode:
		f.Code = true
	}
	return f
}

// markers returns how many characters at each end of sp are markup syntax.
// Spans too short to hold their markers report none and display as source.
func markers(sp Span, runes []rune) (lead, trail int) {
	text := runes[sp.Start:sp.End]
	switch sp.Kind {
	case KindHeading:
		i := 0
		for i < len(text) && text[i] == '#' {
			i++
		}
		for i < len(text) && text[i] == ' ' {
			i++
		}
		if i == len(text) {
			return 0, 0
		}
		return i, 0
	case KindStrong, KindStrike:
		if len(text) >= 5 {
			return 2, 2
		}
	case KindEmphasis, KindCode:
		if len(text) >= 3 {
			return 1, 1
		}
	}
	return 0, 0
}

// normalizeSpans clips spans to n, drops empty or overlapping ones and
// orders them by start.
func normalizeSpans(spans []Span, n int) []Span {
	out := make([]Span, 0, len(spans))
	for _, sp := range spans {
		sp.Start = max(sp.Start, 0)
		sp.End = min(sp.End, n)
		if sp.Start < sp.End {
			out = append(out, sp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })

	kept := out[:0]
	end := 0
	for _, sp := range out {
		if sp.Start < end {
			continue
		}
		kept = append(kept, sp)
		end = sp.End
	}
	return kept
}
