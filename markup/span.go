// Package markup produces styled layout segments for markdown text.
//
// A Tokenizer finds markup spans in a line, a Styler turns the line and its
// spans into layout.Segments, and LineSource ties both to a buffer so a
// layout.Manager can consume it.
package markup

type SpanKind int

const (
	KindHeading SpanKind = iota + 1
	KindStrong
	KindEmphasis
	KindCode
	KindStrike
	KindLink
	KindMarker
)

func (k SpanKind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindStrong:
		return "strong"
	case KindEmphasis:
		return "emphasis"
	case KindCode:
		return "code"
	case KindStrike:
		return "strike"
	case KindLink:
		return "link"
	case KindMarker:
		return "marker"
	default:
		return "none"
	}
}

// Span is a markup construct over [Start, End) character offsets.
type Span struct {
	Start int
	End   int
	Kind  SpanKind
}

func (s Span) Len() int { return s.End - s.Start }

// Touches reports whether col lies within the span, ends included.
func (s Span) Touches(col int) bool { return col >= s.Start && col <= s.End }

type Tokenizer interface {
	Tokenize(text string) []Span
}
