package editor

// screenToOffset maps viewport-local cell coordinates to a document offset.
//
// (0,0) is the top-left of the visible content region. Clicks in the gutter
// map to the start of the visual line; coordinates past the content clamp to
// the nearest line. downstream is set when the offset is the start of the
// clicked visual line, so a wrap boundary stays on the row that was clicked.
func (m *Model) screenToOffset(x, y int) (off int, downstream bool) {
	idx, ok := m.vm.VisualLineAtY(float64(m.viewport.YOffset + y))
	if !ok {
		return 0, false
	}
	vl := m.vm.VisualLine(idx)

	x -= m.gutterWidth()
	if x < 0 {
		x = 0
	}
	col := vl.ColumnAtX(float64(x), m.measurer)
	return m.buf.Text().LineStart(vl.LogicalLine) + col, col == vl.StartOffset
}

// offsetToScreen maps a document offset to viewport-local cell coordinates.
//
// ok is false when the coordinate is outside the visible viewport. The cursor
// offset is placed on the visual row the cursor is shown on.
func (m *Model) offsetToScreen(off int) (x, y int, ok bool) {
	text := m.buf.Text()
	off = max(0, min(off, text.Len()))
	row := text.RowForOffset(off)
	col := off - text.LineStart(row)

	down := off == m.buf.CursorPosition() && m.mover.Downstream(off)
	idx, found := m.vm.FindVisualLine(row, col, down)
	if !found {
		return 0, 0, false
	}
	vl := m.vm.VisualLine(idx)

	x = int(vl.XForColumn(col, m.measurer)) + m.gutterWidth()
	y = idx - m.viewport.YOffset
	if y < 0 || y >= m.visibleRowCount() || x < 0 || x >= m.viewport.Width {
		return x, y, false
	}
	return x, y, true
}
