package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/scribe/buffer"
	"github.com/iw2rmb/scribe/layout"
)

type fixedTokenizer map[string][]Span

func (f fixedTokenizer) Tokenize(text string) []Span { return f[text] }

func segmentTexts(segs []layout.Segment) []string {
	out := make([]string, len(segs))
	for i, s := range segs {
		out[i] = s.Text
	}
	return out
}

func assertContiguous(t *testing.T, segs []layout.Segment, n int) {
	t.Helper()
	pos := 0
	for _, s := range segs {
		require.Equal(t, pos, s.Start, "segments must be contiguous")
		if s.Text != "" {
			require.Equal(t, s.End-s.Start, len([]rune(s.Text)))
		}
		pos = s.End
	}
	require.Equal(t, n, pos)
}

func TestStyler_RenderedHidesMarkers(t *testing.T) {
	line := "say **hi** now"
	spans := []Span{{Start: 4, End: 10, Kind: KindStrong}}
	segs := Styler{BaseSize: 10}.Segments(line, spans, nil)

	assertContiguous(t, segs, 14)
	assert.Equal(t, []string{"say ", "", "hi", "", " now"}, segmentTexts(segs))
	assert.True(t, segs[2].Font.Bold)
	assert.True(t, segs[1].Hidden())
	assert.False(t, segs[0].Font.Bold)
}

func TestStyler_RawShowsSource(t *testing.T) {
	line := "say **hi** now"
	spans := []Span{{Start: 4, End: 10, Kind: KindStrong}}
	segs := Styler{}.Segments(line, spans, AllRaw)

	assertContiguous(t, segs, 14)
	assert.Equal(t, []string{"say ", "**hi**", " now"}, segmentTexts(segs))
	assert.True(t, segs[1].Font.Bold)
}

func TestStyler_HeadingScalesAndHidesHashes(t *testing.T) {
	line := "## Title"
	spans := []Span{{Start: 0, End: 8, Kind: KindHeading}}
	segs := Styler{BaseSize: 10}.Segments(line, spans, nil)

	assertContiguous(t, segs, 8)
	assert.Equal(t, []string{"", "Title"}, segmentTexts(segs))
	assert.Equal(t, 15.0, segs[1].Font.Size)
}

func TestStyler_RawAtCursor(t *testing.T) {
	line := "a `b` c `d`"
	spans := []Span{{Start: 2, End: 5, Kind: KindCode}, {Start: 8, End: 11, Kind: KindCode}}
	segs := Styler{}.Segments(line, spans, RawAt(3))

	assertContiguous(t, segs, 11)
	assert.Equal(t, []string{"a ", "`b`", " c ", "", "d", ""}, segmentTexts(segs))
	assert.True(t, segs[4].Font.Code)
}

func TestStyler_DropsOverlappingAndClips(t *testing.T) {
	line := "abcdef"
	spans := []Span{
		{Start: 3, End: 99, Kind: KindCode},
		{Start: 0, End: 4, Kind: KindMarker},
		{Start: 2, End: 2, Kind: KindStrong},
	}
	segs := Styler{}.Segments(line, spans, AllRaw)

	assertContiguous(t, segs, 6)
	assert.Equal(t, []string{"abcd", "ef"}, segmentTexts(segs))
}

func TestStyler_ShortSpanKeepsMarkers(t *testing.T) {
	segs := Styler{}.Segments("****", []Span{{Start: 0, End: 4, Kind: KindStrong}}, nil)
	assert.Equal(t, []string{"****"}, segmentTexts(segs))
}

func TestLineSource_CursorLineIsRaw(t *testing.T) {
	b := buffer.New("**a** x\n**a** x", buffer.Options{})
	tok := fixedTokenizer{"**a** x": {{Start: 0, End: 5, Kind: KindStrong}}}
	src := LineSource{Buffer: b, Tokenizer: tok, CursorRaw: true}

	b.SetCursorPosition(2)
	require.Equal(t, 2, src.LineCount())
	assert.Equal(t, []string{"**a**", " x"}, segmentTexts(src.Segments(0)))
	assert.Equal(t, []string{"", "a", "", " x"}, segmentTexts(src.Segments(1)))

	b.SetCursorPosition(7)
	assert.Equal(t, []string{"", "a", "", " x"}, segmentTexts(src.Segments(0)), "cursor past the span")
}

func TestLineSource_FeedsManager(t *testing.T) {
	b := buffer.New("# Title\nbody", buffer.Options{})
	src := LineSource{Buffer: b, Tokenizer: NewChromaTokenizer("markdown"), Styler: Styler{BaseSize: 10}}
	vm := layout.NewManager(layout.NewWrapper(layout.CellMeasurer{}, 80))
	vm.Rebuild(src)

	require.Equal(t, 2, vm.Len())
	assert.Equal(t, "Title", vm.VisualLine(0).Text())
	assert.Equal(t, 7, vm.VisualLine(0).EndOffset)
	assert.Greater(t, vm.VisualLine(0).Height, vm.VisualLine(1).Height)
}
