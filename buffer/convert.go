package buffer

import "unicode/utf8"

// Mapper converts between character offsets and points.
type Mapper interface {
	PointToOffset(p Point) int
	OffsetToPoint(off int) Point
}

var _ Mapper = (*Text)(nil)

// PointToOffset maps p to a character offset.
//
// Row 0 clamps the column to the content length. Other rows clamp the column
// to the row's span, terminator included, so Column == LineLen(row)+1 lands on
// the next row's start.
func (t *Text) PointToOffset(p Point) int {
	if p.Row == 0 {
		return clampInt(int(p.Column), 0, len(t.runes))
	}

	row := t.clampRow(int(p.Row))
	start := t.lineStarts[row]
	next := len(t.runes)
	if row+1 < len(t.lineStarts) {
		next = t.lineStarts[row+1]
	}
	return start + clampInt(int(p.Column), 0, next-start)
}

func (t *Text) OffsetToPoint(off int) Point {
	off = clampInt(off, 0, len(t.runes))
	row := t.rowForOffset(off)
	return Point{Row: uint32(row), Column: uint32(off - t.lineStarts[row])}
}

// MaxPoint is the point at the end of the last line.
func (t *Text) MaxPoint() Point {
	last := len(t.lineStarts) - 1
	return Point{Row: uint32(last), Column: uint32(t.LineLen(last))}
}

// ClampPoint clamps p to an existing row and to that row's length, never
// past its line terminator.
func (t *Text) ClampPoint(p Point) Point {
	row := t.clampRow(int(p.Row))
	col := clampInt(int(p.Column), 0, t.LineLen(row))
	return Point{Row: uint32(row), Column: uint32(col)}
}

// CharOffsetFromByte converts a byte offset within s into a character offset.
// This is the only place byte offsets are read. Offsets that fall inside a
// multi-byte character snap to its start.
func CharOffsetFromByte(s string, b int) int {
	if b <= 0 {
		return 0
	}
	if b >= len(s) {
		return utf8.RuneCountInString(s)
	}
	for !utf8.RuneStart(s[b]) && b > 0 {
		b--
	}
	return utf8.RuneCountInString(s[:b])
}
