package buffer

// Change describes one effective content mutation in row terms. Consumers
// such as the visual line manager use it to decide which logical lines need
// to be laid out again.
type Change struct {
	VersionBefore uint64
	VersionAfter  uint64

	// StartRow is the first affected row. OldEndRow and NewEndRow are the
	// last affected rows before and after the edit.
	StartRow  int
	OldEndRow int
	NewEndRow int

	CursorBefore int
	CursorAfter  int
}

// LineCountDelta is the number of logical lines gained (or lost, if negative).
func (c Change) LineCountDelta() int { return c.NewEndRow - c.OldEndRow }

// LastChange returns the most recent effective change.
func (b *Buffer) LastChange() (Change, bool) {
	return b.lastChange, b.hasLastChange
}

type changeBuilder struct {
	versionBefore uint64
	cursorBefore  int
	startRow      int
	oldEndRow     int
}

func (b *Buffer) beginChange(start, end int) changeBuilder {
	return changeBuilder{
		versionBefore: b.version,
		cursorBefore:  b.CursorPosition(),
		startRow:      b.text.RowForOffset(start),
		oldEndRow:     b.text.RowForOffset(end),
	}
}

func (b *Buffer) commitChange(cb changeBuilder, newEnd int) {
	if b.version == cb.versionBefore {
		return
	}
	b.lastChange = Change{
		VersionBefore: cb.versionBefore,
		VersionAfter:  b.version,
		StartRow:      cb.startRow,
		OldEndRow:     cb.oldEndRow,
		NewEndRow:     b.text.RowForOffset(newEnd),
		CursorBefore:  cb.cursorBefore,
		CursorAfter:   b.CursorPosition(),
	}
	b.hasLastChange = true
}
