package motion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/scribe/buffer"
	"github.com/iw2rmb/scribe/layout"
)

type plainSource struct {
	b *buffer.Buffer
}

func (s plainSource) LineCount() int { return s.b.Text().LineCount() }

func (s plainSource) Segments(line int) []layout.Segment {
	return layout.PlainSegments(s.b.Text().Line(line), layout.Font{})
}

func setup(t *testing.T, content string, width float64) (*buffer.Buffer, *layout.Manager, *Service) {
	t.Helper()
	b := buffer.New(content, buffer.Options{})
	vm := layout.NewManager(layout.NewWrapper(layout.CellMeasurer{}, width))
	vm.Rebuild(plainSource{b: b})
	return b, vm, New(3)
}

func TestMove_DownWalksVisualLines(t *testing.T) {
	// Row 0 wraps into "hello " "world " "foo".
	b, vm, s := setup(t, "hello world foo\nabc", 8)
	b.SetCursorPosition(2)

	for _, want := range []int{8, 14, 18} {
		require.True(t, s.Move(b, vm, Down, false))
		assert.Equal(t, want, b.CursorPosition())
	}
	col, ok := s.PreferredColumn()
	require.True(t, ok)
	assert.Equal(t, 2, col)

	assert.False(t, s.Move(b, vm, Down, false), "last visual line")
	assert.Equal(t, 18, b.CursorPosition())
	assert.Equal(t, 18, s.LastOffset())

	require.True(t, s.Move(b, vm, Up, false))
	assert.Equal(t, 14, b.CursorPosition())
}

func TestMove_PreferredColumnSurvivesShortLines(t *testing.T) {
	b, vm, s := setup(t, "abcdef\nx\nabcdef", 80)
	b.SetCursorPosition(5)

	require.True(t, s.Move(b, vm, Down, false))
	assert.Equal(t, 8, b.CursorPosition())
	require.True(t, s.Move(b, vm, Down, false))
	assert.Equal(t, 14, b.CursorPosition())

	require.True(t, s.Move(b, vm, Left, false))
	_, ok := s.PreferredColumn()
	assert.False(t, ok, "horizontal movement clears the preferred column")
}

func TestMove_UpAtTopIsNoop(t *testing.T) {
	b, vm, s := setup(t, "abc\ndef", 80)
	b.SetCursorPosition(2)
	b.StartSelectionAt(0)

	assert.False(t, s.Move(b, vm, Up, false))
	assert.Equal(t, 2, b.CursorPosition())
	assert.True(t, b.HasSelection(), "no-op moves leave the selection alone")
	_, ok := s.PreferredColumn()
	assert.False(t, ok)
}

func TestMove_LineBoundsFollowVisualLine(t *testing.T) {
	b, vm, s := setup(t, "hello world foo\nabc", 8)
	b.SetCursorPosition(8)

	require.True(t, s.Move(b, vm, LineEnd, false))
	assert.Equal(t, 12, b.CursorPosition())
	require.True(t, s.Move(b, vm, LineStart, false))
	assert.Equal(t, 6, b.CursorPosition())

	b.SetCursorPosition(8)
	require.True(t, s.Move(b, nil, LineEnd, false))
	assert.Equal(t, 15, b.CursorPosition(), "logical fallback without a manager")
	require.True(t, s.Move(b, nil, LineStart, false))
	assert.Equal(t, 0, b.CursorPosition())
}

func TestMove_LeftRight(t *testing.T) {
	b, vm, s := setup(t, "ab\ncd", 80)

	assert.False(t, s.Move(b, vm, Left, false))
	require.True(t, s.Move(b, vm, Right, false))
	assert.Equal(t, 1, b.CursorPosition())

	b.SetCursorPosition(2)
	require.True(t, s.Move(b, vm, Right, false))
	assert.Equal(t, 3, b.CursorPosition(), "crosses the line terminator")
	assert.Equal(t, buffer.Point{Row: 1, Column: 0}, b.CursorPoint())

	b.SetCursorPosition(5)
	assert.False(t, s.Move(b, vm, Right, false))
}

func visualLine(t *testing.T, s *Service, b *buffer.Buffer, vm *layout.Manager) int {
	t.Helper()
	idx, ok := s.CursorVisualLine(b, vm)
	require.True(t, ok)
	return idx
}

func TestMove_LeftRightAcrossWrapBoundary(t *testing.T) {
	// "hello " and "world" share offset 6.
	b, vm, s := setup(t, "hello world", 8)
	b.SetCursorPosition(5)

	require.True(t, s.Move(b, vm, Right, false))
	assert.Equal(t, 6, b.CursorPosition())
	assert.Equal(t, 0, visualLine(t, s, b, vm), "stepping right ends the earlier line")

	require.True(t, s.Move(b, vm, Right, false))
	assert.Equal(t, 6, b.CursorPosition())
	assert.Equal(t, 1, visualLine(t, s, b, vm), "second step starts the later line")

	require.True(t, s.Move(b, vm, Right, false))
	assert.Equal(t, 7, b.CursorPosition())

	require.True(t, s.Move(b, vm, Left, false))
	assert.Equal(t, 6, b.CursorPosition())
	assert.Equal(t, 1, visualLine(t, s, b, vm))

	require.True(t, s.Move(b, vm, Left, false))
	assert.Equal(t, 6, b.CursorPosition())
	assert.Equal(t, 0, visualLine(t, s, b, vm))

	require.True(t, s.Move(b, vm, Left, false))
	assert.Equal(t, 5, b.CursorPosition())
}

func TestMove_LineStartThenUpOnContinuationLine(t *testing.T) {
	// Wraps into [0,6] [6,12] [12,19].
	b, vm, s := setup(t, "hello world foo bar", 8)
	b.SetCursorPosition(8)

	require.True(t, s.Move(b, vm, LineStart, false))
	assert.Equal(t, 6, b.CursorPosition())
	assert.Equal(t, 1, visualLine(t, s, b, vm))
	assert.True(t, s.Downstream(6))

	assert.False(t, s.Move(b, vm, LineStart, false), "already at the start of this visual line")
	assert.Equal(t, 6, b.CursorPosition())

	require.True(t, s.Move(b, vm, Up, false))
	assert.Equal(t, 0, b.CursorPosition())
	assert.Equal(t, 0, visualLine(t, s, b, vm))
}

func TestMove_LineEndFromContinuationStart(t *testing.T) {
	b, vm, s := setup(t, "hello world foo bar", 8)
	b.SetCursorPosition(8)
	require.True(t, s.Move(b, vm, LineStart, false))

	require.True(t, s.Move(b, vm, LineEnd, false))
	assert.Equal(t, 12, b.CursorPosition())
	assert.Equal(t, 1, visualLine(t, s, b, vm), "the end of line 1, not the start of line 2")
	assert.False(t, s.Move(b, vm, LineEnd, false))

	require.True(t, s.Move(b, vm, Down, false))
	assert.Equal(t, 18, b.CursorPosition(), "column 6 of the last visual line")
	assert.Equal(t, 2, visualLine(t, s, b, vm))

	require.True(t, s.Move(b, vm, LineStart, false))
	assert.Equal(t, 12, b.CursorPosition())
	assert.Equal(t, 2, visualLine(t, s, b, vm))
}

func TestMove_DownOntoWrapBoundaryKeepsLaterLine(t *testing.T) {
	b, vm, s := setup(t, "hello world foo bar", 8)

	require.True(t, s.Move(b, vm, Down, false))
	assert.Equal(t, 6, b.CursorPosition())
	assert.Equal(t, 1, visualLine(t, s, b, vm))

	require.True(t, s.Move(b, vm, Down, false))
	assert.Equal(t, 12, b.CursorPosition())
	assert.Equal(t, 2, visualLine(t, s, b, vm))

	assert.False(t, s.Move(b, vm, Down, false), "last visual line")

	require.True(t, s.Move(b, vm, Up, false))
	require.True(t, s.Move(b, vm, Up, false))
	assert.Equal(t, 0, b.CursorPosition())
}

func TestService_AffinityFollowsCursor(t *testing.T) {
	b, vm, s := setup(t, "hello world foo bar", 8)
	b.SetCursorPosition(12)

	s.Place(12, true)
	assert.Equal(t, 2, visualLine(t, s, b, vm))
	s.Place(12, false)
	assert.Equal(t, 1, visualLine(t, s, b, vm))

	s.Place(12, true)
	b.SetCursorPosition(6)
	assert.False(t, s.Downstream(6), "affinity belongs to the placed offset only")
	assert.Equal(t, 0, visualLine(t, s, b, vm))

	s.Reset()
	assert.False(t, s.Downstream(0))
	_, ok := s.CursorVisualLine(b, nil)
	assert.False(t, ok)
}

func TestMove_ExtendStartsAndKeepsSelection(t *testing.T) {
	b, vm, s := setup(t, "hello world foo", 80)
	b.SetCursorPosition(6)

	require.True(t, s.Move(b, vm, WordEnd, true))
	assert.Equal(t, "world", b.SelectedText())

	require.True(t, s.Move(b, vm, WordEnd, true))
	assert.Equal(t, "world foo", b.SelectedText(), "anchor stays at the first position")

	require.True(t, s.Move(b, vm, WordStart, false))
	assert.False(t, b.HasSelection())
	assert.Equal(t, 12, b.CursorPosition())
}

func TestMove_DocumentAndPage(t *testing.T) {
	b, vm, s := setup(t, "l0\nl1\nl2\nl3\nl4\nl5", 80)

	assert.False(t, s.Move(b, vm, PageUp, false))
	require.True(t, s.Move(b, vm, PageDown, false))
	assert.Equal(t, 9, b.CursorPosition())

	require.True(t, s.Move(b, vm, DocumentEnd, false))
	assert.Equal(t, b.Len(), b.CursorPosition())
	assert.False(t, s.Move(b, vm, DocumentEnd, false))
	assert.False(t, s.Move(b, vm, PageDown, false))

	require.True(t, s.Move(b, vm, DocumentStart, false))
	assert.Equal(t, 0, b.CursorPosition())
	assert.Equal(t, 0, s.LastOffset())
}

func TestMove_VerticalWithoutManager(t *testing.T) {
	b := buffer.New("abcdef\nx\nabcdef", buffer.Options{})
	s := New(0)
	b.SetCursorPosition(4)

	require.True(t, s.Move(b, nil, Down, false))
	assert.Equal(t, 8, b.CursorPosition())
	require.True(t, s.Move(b, nil, Down, false))
	assert.Equal(t, 13, b.CursorPosition())
	assert.False(t, s.Move(b, nil, Down, false))
	assert.Equal(t, DefaultPageSize, s.PageSize)
}

func TestService_Reset(t *testing.T) {
	b, vm, s := setup(t, "abc\ndef", 80)
	require.True(t, s.Move(b, vm, Down, false))
	s.Reset()

	_, ok := s.PreferredColumn()
	assert.False(t, ok)
	assert.Equal(t, 0, s.LastOffset())
}

func TestIntent_String(t *testing.T) {
	assert.Equal(t, "word_start", WordStart.String())
	assert.Equal(t, "page_down", PageDown.String())
	assert.Equal(t, "unknown", Intent(99).String())
}
