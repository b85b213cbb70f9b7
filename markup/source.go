package markup

import (
	"github.com/iw2rmb/scribe/buffer"
	"github.com/iw2rmb/scribe/layout"
)

// LineSource adapts a buffer into a layout.SegmentSource. With CursorRaw set,
// spans on the cursor's line that the cursor touches are shown as source.
// Spans are recomputed on every call; callers mark lines dirty when content
// or the cursor line changes.
type LineSource struct {
	Buffer    *buffer.Buffer
	Tokenizer Tokenizer
	Styler    Styler
	CursorRaw bool
}

func (s LineSource) LineCount() int { return s.Buffer.Text().LineCount() }

func (s LineSource) Segments(line int) []layout.Segment {
	text := s.Buffer.Text().Line(line)
	if text == "" {
		return nil
	}
	if s.Tokenizer == nil {
		return layout.PlainSegments(text, s.Styler.base())
	}

	spans := s.Tokenizer.Tokenize(text)
	mode := ModeFunc(AllRendered)
	if s.CursorRaw {
		if p := s.Buffer.CursorPoint(); int(p.Row) == line {
			mode = RawAt(int(p.Column))
		}
	}
	return s.Styler.Segments(text, spans, mode)
}
