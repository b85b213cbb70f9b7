package layout

// DefaultFontSize is assumed for segments that leave Font.Size unset.
const DefaultFontSize = 14.0

// lineHeightFactor converts the tallest font size on a visual line into the
// line's height.
const lineHeightFactor = 1.5

type Font struct {
	Size   float64
	Bold   bool
	Italic bool
	Code   bool
}

func (f Font) size() float64 {
	if f.Size <= 0 {
		return DefaultFontSize
	}
	return f.Size
}

// Segment is one styled run of a logical line.
//
// Start and End are the character offsets of the source text the segment
// covers. Text is either exactly those characters or empty, the latter for
// source that is hidden when displayed (markup markers, for example).
// Segments whose Text does not match their span are never split.
type Segment struct {
	Text  string
	Font  Font
	Start int
	End   int

	// Width is filled in by the wrapper.
	Width float64
}

func (s Segment) Len() int { return s.End - s.Start }

// Hidden reports whether the segment covers source but displays nothing.
func (s Segment) Hidden() bool { return s.Text == "" && s.End > s.Start }

func (s Segment) splittable() bool {
	return s.Text != "" && len([]rune(s.Text)) == s.End-s.Start
}

// PlainSegments returns line as a single unstyled segment. An empty line
// yields no segments.
func PlainSegments(line string, font Font) []Segment {
	if line == "" {
		return nil
	}
	return []Segment{{
		Text:  line,
		Font:  font,
		Start: 0,
		End:   len([]rune(line)),
	}}
}
