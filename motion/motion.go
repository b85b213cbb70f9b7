// Package motion turns navigation intents into cursor movement, using visual
// lines from a layout.Manager when one is available and logical lines
// otherwise.
package motion

import (
	"github.com/iw2rmb/scribe/buffer"
	"github.com/iw2rmb/scribe/layout"
)

type Intent int

const (
	Left Intent = iota
	Right
	Up
	Down
	LineStart
	LineEnd
	WordStart
	WordEnd
	DocumentStart
	DocumentEnd
	PageUp
	PageDown
)

func (i Intent) String() string {
	switch i {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	case LineStart:
		return "line_start"
	case LineEnd:
		return "line_end"
	case WordStart:
		return "word_start"
	case WordEnd:
		return "word_end"
	case DocumentStart:
		return "document_start"
	case DocumentEnd:
		return "document_end"
	case PageUp:
		return "page_up"
	case PageDown:
		return "page_down"
	default:
		return "unknown"
	}
}

func (i Intent) vertical() bool { return i == Up || i == Down }

const DefaultPageSize = 20

// Service remembers the column vertical movement aims for, the offset of
// the last successful move, and which visual line owns that offset when it
// sits on a wrap boundary.
type Service struct {
	PageSize int

	preferred    int
	hasPreferred bool
	lastOffset   int
	downstream   bool
}

func New(pageSize int) *Service {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Service{PageSize: pageSize}
}

// PreferredColumn is the column, relative to the visual line start, that
// consecutive vertical moves try to keep.
func (s *Service) PreferredColumn() (int, bool) { return s.preferred, s.hasPreferred }

func (s *Service) LastOffset() int { return s.lastOffset }

// Downstream reports whether a cursor at off belongs to the later of the two
// visual lines sharing a wrap boundary. It only holds for the offset the
// service last placed the cursor at.
func (s *Service) Downstream(off int) bool { return s.downstream && off == s.lastOffset }

// Place records a cursor positioned by other means, such as a mouse click.
func (s *Service) Place(off int, downstream bool) {
	s.lastOffset = off
	s.downstream = downstream
	s.hasPreferred = false
}

func (s *Service) Reset() {
	s.preferred = 0
	s.hasPreferred = false
	s.lastOffset = 0
	s.downstream = false
}

// CursorVisualLine returns the visual index of b's cursor, resolving a wrap
// boundary with the remembered affinity.
func (s *Service) CursorVisualLine(b *buffer.Buffer, vm *layout.Manager) (int, bool) {
	if vm == nil {
		return 0, false
	}
	off := b.CursorPosition()
	idx, _, ok := locate(b.Text(), vm, off, s.Downstream(off))
	return idx, ok
}

// Move applies intent to b's cursor. With extend, a selection is anchored at
// the pre-move position unless one is already active; without it, any
// selection is cleared. vm may be nil and must reflect b's current content
// when it is not.
//
// At a wrap boundary Left and Right may only switch the visual line the
// cursor is shown on; that counts as a move even though the offset stays.
//
// Move reports false and leaves everything untouched when the cursor cannot
// go anywhere.
func (s *Service) Move(b *buffer.Buffer, vm *layout.Manager, intent Intent, extend bool) bool {
	text := b.Text()
	before := b.CursorPosition()
	down := boundary(text, vm, before) && s.Downstream(before)
	t := s.target(b, vm, intent, before, down)
	after := t.downstream && boundary(text, vm, t.offset)
	if t.offset == before && after == down {
		return false
	}

	if extend {
		if !b.HasSelection() {
			b.StartSelectionAt(before)
		}
	} else {
		b.ClearSelection()
	}

	switch {
	case t.offset == before:
	case t.step == -1:
		b.MoveLeft()
	case t.step == 1:
		b.MoveRight()
	default:
		b.SetCursorPosition(t.offset)
	}

	if intent.vertical() {
		s.preferred, s.hasPreferred = t.column, true
	} else {
		s.hasPreferred = false
	}
	s.lastOffset = b.CursorPosition()
	s.downstream = after
	return true
}

type target struct {
	offset int
	// step is -1 or 1 for single-character moves, which go through the
	// buffer's incremental cursor update.
	step int
	// column is the visual column vertical moves aimed for.
	column int
	// downstream places a boundary offset on the later visual line.
	downstream bool
}

func (s *Service) target(b *buffer.Buffer, vm *layout.Manager, intent Intent, off int, down bool) target {
	text := b.Text()
	switch intent {
	case Left:
		return s.horizontal(text, vm, off, -1, down)
	case Right:
		return s.horizontal(text, vm, off, 1, down)
	case Up:
		return s.vertical(text, vm, off, -1, down)
	case Down:
		return s.vertical(text, vm, off, 1, down)
	case LineStart:
		if idx, start, ok := locate(text, vm, off, down); ok {
			return target{offset: start + vm.VisualLine(idx).StartOffset, downstream: true}
		}
		return target{offset: text.LineStartOf(off)}
	case LineEnd:
		if idx, start, ok := locate(text, vm, off, down); ok {
			return target{offset: start + vm.VisualLine(idx).EndOffset}
		}
		return target{offset: text.LineEndOf(off)}
	case WordStart:
		return target{offset: text.WordStartFrom(off)}
	case WordEnd:
		return target{offset: text.WordEndFrom(off)}
	case DocumentStart:
		return target{offset: 0}
	case DocumentEnd:
		return target{offset: text.Len()}
	case PageUp:
		return target{offset: pageTarget(text, off, -s.pageSize())}
	case PageDown:
		return target{offset: pageTarget(text, off, s.pageSize())}
	}
	return target{offset: off, downstream: down}
}

func (s *Service) pageSize() int {
	if s.PageSize <= 0 {
		return DefaultPageSize
	}
	return s.PageSize
}

func pageTarget(text *buffer.Text, off, rows int) int {
	row := text.RowForOffset(off) + rows
	if row < 0 || row >= text.LineCount() {
		// Past either end the page move lands on the document boundary.
		if rows < 0 {
			return 0
		}
		return text.Len()
	}
	return text.VerticalOffset(off, rows, text.ColumnOf(off))
}

// horizontal steps one character. On a wrap boundary shown at the end of the
// earlier visual line, Right first moves the cursor to the start of the later
// one without changing the offset; Left does the reverse.
func (s *Service) horizontal(text *buffer.Text, vm *layout.Manager, off, dir int, down bool) target {
	if boundary(text, vm, off) {
		if dir > 0 && !down {
			return target{offset: off, downstream: true}
		}
		if dir < 0 && down {
			return target{offset: off}
		}
	}
	if (dir < 0 && off == 0) || (dir > 0 && off >= text.Len()) {
		return target{offset: off, downstream: down}
	}
	// Stepping left lands at the end of the line it came from only when that
	// line is the later one.
	return target{offset: off + dir, step: dir, downstream: dir < 0}
}

// vertical moves to the adjacent visual line, or logical line without a
// manager, keeping the preferred column when one is remembered.
func (s *Service) vertical(text *buffer.Text, vm *layout.Manager, off, dir int, down bool) target {
	if idx, start, ok := locate(text, vm, off, down); ok {
		cur := vm.VisualLine(idx)
		want := off - start - cur.StartOffset
		if s.hasPreferred {
			want = s.preferred
		}
		next := idx + dir
		if next < 0 || next >= vm.Len() {
			return target{offset: off, downstream: down}
		}
		vl := vm.VisualLine(next)
		c := vl.StartOffset + min(max(want, 0), vl.Len())
		return target{
			offset:     text.LineStart(vl.LogicalLine) + c,
			column:     want,
			downstream: c == vl.StartOffset,
		}
	}

	row := text.RowForOffset(off)
	want := off - text.LineStart(row)
	if s.hasPreferred {
		want = s.preferred
	}
	next := row + dir
	if next < 0 || next >= text.LineCount() {
		return target{offset: off}
	}
	return target{offset: text.VerticalOffset(off, dir, want), column: want}
}

// locate returns the visual index holding off and the offset of its logical
// line start.
func locate(text *buffer.Text, vm *layout.Manager, off int, down bool) (int, int, bool) {
	if vm == nil {
		return 0, 0, false
	}
	row := text.RowForOffset(off)
	start := text.LineStart(row)
	idx, ok := vm.FindVisualLine(row, off-start, down)
	return idx, start, ok
}

// boundary reports whether off is shared by two visual lines of the same
// logical line.
func boundary(text *buffer.Text, vm *layout.Manager, off int) bool {
	if vm == nil {
		return false
	}
	row := text.RowForOffset(off)
	col := off - text.LineStart(row)
	up, ok := vm.FindVisualLine(row, col, false)
	if !ok {
		return false
	}
	down, _ := vm.FindVisualLine(row, col, true)
	return up != down
}
