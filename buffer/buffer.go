package buffer

import "log/slog"

// Options configures an editing session.
type Options struct {
	History HistoryOptions

	// Diagnostics enables internal consistency checks that report through
	// Logger. Failed checks are logged, never returned.
	Diagnostics bool
	Logger      *slog.Logger
}

// Buffer is one editing session: content, cursor, selection and history.
// It is not safe for concurrent use.
type Buffer struct {
	text    *Text
	cursor  Cursor
	sel     Selection
	hist    *History
	version uint64

	opt Options
	log *slog.Logger

	lastChange    Change
	hasLastChange bool
}

func New(text string, opt Options) *Buffer {
	log := opt.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	b := &Buffer{
		text: NewText(text),
		hist: NewHistory(opt.History),
		opt:  opt,
		log:  log,
	}
	b.cursor.SetOffset(0)
	return b
}

func (b *Buffer) Content() string { return b.text.String() }

func (b *Buffer) Len() int { return b.text.Len() }

// Version increases only when content changes.
func (b *Buffer) Version() uint64 { return b.version }

// Text exposes the document for read-only queries (mapping, line lookups).
// Mutating it directly bypasses history.
func (b *Buffer) Text() *Text { return b.text }

func (b *Buffer) History() *History { return b.hist }

// Cursor returns a copy of the cursor with its freshness flags.
func (b *Buffer) Cursor() Cursor { return b.cursor }

func (b *Buffer) SetCursorPosition(off int) {
	b.cursor.SetOffset(clampInt(off, 0, b.text.Len()))
}

func (b *Buffer) CursorPosition() int {
	if off, ok := b.cursor.Offset(); ok {
		return off
	}
	b.cursor.Synchronize(b.text)
	off, _ := b.cursor.Offset()
	return off
}

func (b *Buffer) SetCursorPoint(p Point) {
	b.cursor.SetPoint(b.text.ClampPoint(p))
}

// CursorPoint returns the exact cursor point, synchronizing first.
func (b *Buffer) CursorPoint() Point {
	b.SyncCursor()
	p, _ := b.cursor.Point()
	return p
}

// LineColumn returns the cursor's 0-based line and column.
func (b *Buffer) LineColumn() (line, column int) {
	p := b.CursorPoint()
	return int(p.Row), int(p.Column)
}

func (b *Buffer) SyncCursor() {
	b.cursor.Synchronize(b.text)
}

// MoveLeft moves the cursor one character back. The cached point is patched
// without the mapper and may drift until SyncCursor.
func (b *Buffer) MoveLeft() bool {
	b.CursorPosition()
	moved := b.cursor.nudge(-1, b.text.Len())
	b.checkCursorPoint("move_left")
	return moved
}

// MoveRight is MoveLeft's counterpart.
func (b *Buffer) MoveRight() bool {
	b.CursorPosition()
	moved := b.cursor.nudge(1, b.text.Len())
	b.checkCursorPoint("move_right")
	return moved
}

// StartSelection anchors a selection at the cursor.
func (b *Buffer) StartSelection() {
	b.sel.Start(b.CursorPosition())
}

// StartSelectionAt anchors a selection at off (clamped).
func (b *Buffer) StartSelectionAt(off int) {
	b.sel.Start(clampInt(off, 0, b.text.Len()))
}

func (b *Buffer) ClearSelection() { b.sel.Clear() }

func (b *Buffer) HasSelection() bool { return b.sel.Active() }

// SelectionRange returns the selected [start, end) and whether a selection
// is active.
func (b *Buffer) SelectionRange() (start, end int, ok bool) {
	if !b.sel.Active() {
		return 0, 0, false
	}
	r := b.sel.Range(b.CursorPosition())
	return r.Start, r.End, true
}

func (b *Buffer) SelectedText() string {
	start, end, ok := b.SelectionRange()
	if !ok {
		return ""
	}
	return b.text.Slice(start, end)
}

func (b *Buffer) SelectAll() {
	b.sel.Start(0)
	b.cursor.SetOffset(b.text.Len())
}

// FinishTransaction closes the open undo group.
func (b *Buffer) FinishTransaction() { b.hist.FinishTransaction() }

func (b *Buffer) CanUndo() bool { return b.hist.CanUndo() }

func (b *Buffer) CanRedo() bool { return b.hist.CanRedo() }

func (b *Buffer) HistoryStats() HistoryStats { return b.hist.Stats() }

// Undo reverts the last transaction and returns the new content, or false
// when there is nothing to undo.
func (b *Buffer) Undo() (string, bool) {
	return b.replay(b.hist.Undo, "undo")
}

// Redo reapplies the last undone transaction.
func (b *Buffer) Redo() (string, bool) {
	return b.replay(b.hist.Redo, "redo")
}

func (b *Buffer) replay(step func(*Text) (string, int, bool), op string) (string, bool) {
	cb := b.beginChange(0, b.text.Len())
	content, cursor, ok := step(b.text)
	if !ok {
		return "", false
	}
	b.version++
	b.sel.Clear()
	b.cursor.SetOffset(clampInt(cursor, 0, b.text.Len()))
	b.commitChange(cb, b.text.Len())
	b.checkConsistency(op)
	return content, true
}

func (b *Buffer) checkConsistency(op string) {
	if !b.opt.Diagnostics {
		return
	}
	off := b.CursorPosition()
	p := b.text.OffsetToPoint(off)
	if back := b.text.PointToOffset(p); back != off {
		b.log.Warn("coordinate round trip mismatch",
			"op", op, "offset", off, "row", p.Row, "column", p.Column, "back", back)
	}
	if b.sel.Active() && b.sel.Anchor() > b.text.Len() {
		b.log.Warn("selection anchor out of bounds", "op", op, "anchor", b.sel.Anchor(), "len", b.text.Len())
	}
}

func (b *Buffer) checkCursorPoint(op string) {
	if !b.opt.Diagnostics {
		return
	}
	cached, fresh := b.cursor.Point()
	off, _ := b.cursor.Offset()
	if exact := b.text.OffsetToPoint(off); fresh && exact != cached {
		b.log.Debug("cursor point drift", "op", op, "offset", off, "cached", cached, "exact", exact)
	}
}
