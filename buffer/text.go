package buffer

import (
	"sort"
	"strings"
)

// Text is a mutable character sequence with a logical line index.
//
// lineStarts holds the character offset of every logical line; the first
// entry is always 0. Lookups binary-search the index.
type Text struct {
	runes      []rune
	lineStarts []int
}

func NewText(s string) *Text {
	t := &Text{runes: []rune(s)}
	t.reindex()
	return t
}

func (t *Text) reindex() {
	t.lineStarts = append(t.lineStarts[:0], 0)
	for i, r := range t.runes {
		if r == '\n' {
			t.lineStarts = append(t.lineStarts, i+1)
		}
	}
}

func (t *Text) Len() int { return len(t.runes) }

func (t *Text) String() string { return string(t.runes) }

// Slice returns the characters in [start, end). Bounds are clamped and may be
// given in either order.
func (t *Text) Slice(start, end int) string {
	r := Range{Start: start, End: end}.Normalize()
	r.Start = clampInt(r.Start, 0, len(t.runes))
	r.End = clampInt(r.End, 0, len(t.runes))
	if r.Start >= r.End {
		return ""
	}
	return string(t.runes[r.Start:r.End])
}

func (t *Text) RuneAt(off int) (rune, bool) {
	if off < 0 || off >= len(t.runes) {
		return 0, false
	}
	return t.runes[off], true
}

// Insert places s at pos (clamped) and returns the effective position and the
// number of characters inserted.
func (t *Text) Insert(pos int, s string) (int, int) {
	pos = clampInt(pos, 0, len(t.runes))
	ins := []rune(s)
	n := len(ins)
	if n == 0 {
		return pos, 0
	}

	t.runes = append(t.runes, ins...)
	copy(t.runes[pos+n:], t.runes[pos:len(t.runes)-n])
	copy(t.runes[pos:], ins)

	row := t.rowForOffset(pos)
	for i := row + 1; i < len(t.lineStarts); i++ {
		t.lineStarts[i] += n
	}

	var added []int
	for i, r := range ins {
		if r == '\n' {
			added = append(added, pos+i+1)
		}
	}
	if len(added) > 0 {
		next := make([]int, 0, len(t.lineStarts)+len(added))
		next = append(next, t.lineStarts[:row+1]...)
		next = append(next, added...)
		next = append(next, t.lineStarts[row+1:]...)
		t.lineStarts = next
	}
	return pos, n
}

// Remove deletes the characters in [start, end) and returns them.
func (t *Text) Remove(start, end int) string {
	r := Range{Start: start, End: end}.Normalize()
	start = clampInt(r.Start, 0, len(t.runes))
	end = clampInt(r.End, 0, len(t.runes))
	if start >= end {
		return ""
	}

	removed := string(t.runes[start:end])
	n := end - start
	t.runes = append(t.runes[:start], t.runes[end:]...)

	j := 0
	for _, s := range t.lineStarts {
		if s > start && s <= end {
			continue
		}
		if s > end {
			s -= n
		}
		t.lineStarts[j] = s
		j++
	}
	t.lineStarts = t.lineStarts[:j]
	return removed
}

func (t *Text) LineCount() int { return len(t.lineStarts) }

func (t *Text) clampRow(row int) int {
	return clampInt(row, 0, len(t.lineStarts)-1)
}

func (t *Text) LineStart(row int) int {
	return t.lineStarts[t.clampRow(row)]
}

// LineEnd returns the offset just before the row's line terminator, or the
// end of content on the last row.
func (t *Text) LineEnd(row int) int {
	row = t.clampRow(row)
	if row+1 < len(t.lineStarts) {
		return t.lineStarts[row+1] - 1
	}
	return len(t.runes)
}

func (t *Text) LineLen(row int) int {
	return t.LineEnd(row) - t.LineStart(row)
}

func (t *Text) Line(row int) string {
	return string(t.runes[t.LineStart(row):t.LineEnd(row)])
}

// Lines returns every logical line without terminators.
func (t *Text) Lines() []string {
	return strings.Split(t.String(), "\n")
}

// RowForOffset returns the logical line owning off (clamped).
func (t *Text) RowForOffset(off int) int {
	return t.rowForOffset(clampInt(off, 0, len(t.runes)))
}

func (t *Text) rowForOffset(off int) int {
	i := sort.Search(len(t.lineStarts), func(i int) bool { return t.lineStarts[i] > off })
	return i - 1
}
