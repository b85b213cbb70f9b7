package editor

// ViewportState is a host-facing snapshot of the editor camera.
type ViewportState struct {
	// TopVisualRow is the visual row rendered at screen row 0.
	TopVisualRow int
	// VisibleRows is the number of content rows available for rendering.
	VisibleRows int
	// VisualRows is the total number of visual lines in the document.
	VisualRows int
	// WrapWidth is the active wrap width in cells, 0 when not wrapping.
	WrapWidth int
}

func (m Model) ViewportState() ViewportState {
	wrap := 0
	if m.wrapper.Enabled() {
		wrap = int(m.wrapper.WrapWidth())
	}
	return ViewportState{
		TopVisualRow: max(m.viewport.YOffset, 0),
		VisibleRows:  m.visibleRowCount(),
		VisualRows:   m.vm.Len(),
		WrapWidth:    wrap,
	}
}

// ScreenToOffset maps viewport-local screen coordinates to a document offset.
func (m Model) ScreenToOffset(x, y int) int {
	off, _ := (&m).screenToOffset(x, y)
	return off
}

// OffsetToScreen maps a document offset to viewport-local screen coordinates.
//
// ok is false when the offset is outside the visible viewport content.
func (m Model) OffsetToScreen(off int) (x, y int, ok bool) {
	return (&m).offsetToScreen(off)
}

func (m Model) visibleRowCount() int {
	h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	if h < 0 {
		return 0
	}
	return h
}
