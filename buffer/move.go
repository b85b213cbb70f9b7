package buffer

import "unicode"

// Logical-line navigation. These helpers know nothing about soft wrapping;
// the motion package layers visual-line semantics on top.

// WordStartFrom returns the start of the word before off. A line terminator
// directly before off is a boundary of its own.
func (t *Text) WordStartFrom(off int) int {
	i := clampInt(off, 0, len(t.runes))
	if i > 0 && t.runes[i-1] == '\n' {
		return i - 1
	}
	for i > 0 && isInlineSpace(t.runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(t.runes[i-1]) {
		i--
	}
	return i
}

// WordEndFrom returns the end of the word after off.
func (t *Text) WordEndFrom(off int) int {
	i := clampInt(off, 0, len(t.runes))
	if i < len(t.runes) && t.runes[i] == '\n' {
		return i + 1
	}
	for i < len(t.runes) && isInlineSpace(t.runes[i]) {
		i++
	}
	for i < len(t.runes) && !unicode.IsSpace(t.runes[i]) {
		i++
	}
	return i
}

// VerticalOffset moves off by rows logical lines, placing the result at col
// clamped to the target line's length.
func (t *Text) VerticalOffset(off, rows, col int) int {
	row := t.clampRow(t.RowForOffset(off) + rows)
	return t.LineStart(row) + clampInt(col, 0, t.LineLen(row))
}

// ColumnOf returns off's column within its logical line.
func (t *Text) ColumnOf(off int) int {
	off = clampInt(off, 0, len(t.runes))
	return off - t.lineStarts[t.rowForOffset(off)]
}

func (t *Text) LineStartOf(off int) int { return t.LineStart(t.RowForOffset(off)) }

func (t *Text) LineEndOf(off int) int { return t.LineEnd(t.RowForOffset(off)) }

func isInlineSpace(r rune) bool {
	return r != '\n' && unicode.IsSpace(r)
}
