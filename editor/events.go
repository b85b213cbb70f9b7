package editor

import "github.com/iw2rmb/scribe/buffer"

// ChangeEvent describes the editor state after an update that changed
// content, cursor or selection.
type ChangeEvent struct {
	Version uint64

	// Cursor is the character offset; Line and Column are 0-based.
	Cursor int
	Line   int
	Column int

	Selection struct {
		Start, End int
		Active     bool
	}

	// Text is the full content; hosts diff if they need to.
	Text string
}

func buildChangeEvent(b *buffer.Buffer) ChangeEvent {
	line, col := b.LineColumn()
	ev := ChangeEvent{
		Version: b.Version(),
		Cursor:  b.CursorPosition(),
		Line:    line,
		Column:  col,
		Text:    b.Content(),
	}
	ev.Selection.Start, ev.Selection.End, ev.Selection.Active = b.SelectionRange()
	return ev
}
