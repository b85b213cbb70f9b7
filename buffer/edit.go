package buffer

import "github.com/iw2rmb/scribe/internal/grapheme"

// Insert inserts text at pos (clamped). The cursor moves to the end of the
// inserted text and any selection is cleared.
func (b *Buffer) Insert(pos int, text string) bool {
	return b.edit(pos, pos, text, "insert")
}

// Delete removes [start, end) (clamped, either order). The cursor moves to
// the start of the removed range.
func (b *Buffer) Delete(start, end int) bool {
	return b.edit(start, end, "", "delete")
}

// Replace swaps [start, end) for text as a single command.
func (b *Buffer) Replace(start, end int, text string) bool {
	return b.edit(start, end, text, "replace")
}

// InsertText inserts at the cursor, or replaces the active selection.
func (b *Buffer) InsertText(text string) bool {
	if start, end, ok := b.SelectionRange(); ok && start != end {
		return b.edit(start, end, text, "insert_text")
	}
	if text == "" {
		return false
	}
	cur := b.CursorPosition()
	return b.edit(cur, cur, text, "insert_text")
}

func (b *Buffer) InsertChar(r rune) bool { return b.InsertText(string(r)) }

func (b *Buffer) InsertNewline() bool { return b.InsertText("\n") }

// DeleteSelection removes the selected text, collapsing the selection and
// leaving the cursor at its start.
func (b *Buffer) DeleteSelection() bool {
	start, end, ok := b.SelectionRange()
	if !ok {
		return false
	}
	if start == end {
		b.sel.Clear()
		return false
	}
	return b.edit(start, end, "", "delete_selection")
}

// DeleteBackward applies backspace semantics: the selection if any, else the
// grapheme cluster before the cursor (or the preceding line terminator).
func (b *Buffer) DeleteBackward() bool {
	if start, end, ok := b.SelectionRange(); ok && start != end {
		return b.DeleteSelection()
	}
	cur := b.CursorPosition()
	if cur == 0 {
		return false
	}
	row := b.text.RowForOffset(cur)
	lineStart := b.text.LineStart(row)
	start := cur - 1
	if cur > lineStart {
		start = lineStart + grapheme.PrevBoundary(b.text.Line(row), cur-lineStart)
	}
	return b.edit(start, cur, "", "delete_backward")
}

// DeleteForward applies delete-key semantics.
func (b *Buffer) DeleteForward() bool {
	if start, end, ok := b.SelectionRange(); ok && start != end {
		return b.DeleteSelection()
	}
	cur := b.CursorPosition()
	if cur >= b.text.Len() {
		return false
	}
	row := b.text.RowForOffset(cur)
	lineStart := b.text.LineStart(row)
	end := cur + 1
	if cur < b.text.LineEnd(row) {
		end = lineStart + grapheme.NextBoundary(b.text.Line(row), cur-lineStart)
	}
	return b.edit(cur, end, "", "delete_forward")
}

// SetContent replaces the whole document with text as its own undo step. Only
// the differing middle is recorded.
func (b *Buffer) SetContent(text string) bool {
	old := []rune(b.text.String())
	next := []rune(text)

	prefix := 0
	for prefix < len(old) && prefix < len(next) && old[prefix] == next[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(old)-prefix && suffix < len(next)-prefix &&
		old[len(old)-1-suffix] == next[len(next)-1-suffix] {
		suffix++
	}

	b.hist.FinishTransaction()
	changed := b.edit(prefix, len(old)-suffix, string(next[prefix:len(next)-suffix]), "set_content")
	b.hist.FinishTransaction()
	return changed
}

func (b *Buffer) edit(start, end int, text, op string) bool {
	r := Range{Start: start, End: end}.Normalize()
	r.Start = clampInt(r.Start, 0, b.text.Len())
	r.End = clampInt(r.End, 0, b.text.Len())

	old := b.text.Slice(r.Start, r.End)
	if old == text {
		return false
	}

	var cmd Command
	switch {
	case r.IsEmpty():
		cmd = InsertCommand(r.Start, text)
	case text == "":
		cmd = DeleteCommand(r.Start, r.End, old)
	default:
		cmd = ReplaceCommand(r.Start, r.End, old, text)
	}

	cb := b.beginChange(r.Start, r.End)
	cmd.Apply(b.text)
	b.hist.AddCommand(cmd)
	b.version++
	b.sel.Clear()
	b.cursor.SetOffset(cmd.CursorAfter())
	b.commitChange(cb, cmd.CursorAfter())
	b.checkConsistency(op)
	return true
}
