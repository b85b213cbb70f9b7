package editor

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.cfg.ScrollPolicy == ScrollAllowManual || !isWheel(msg) {
		m.viewport, cmd = m.viewport.Update(msg)
	}

	if !m.focused {
		return m, cmd
	}

	// Only left button interactions move the cursor or select.
	switch msg.Action { //nolint:exhaustive
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !m.insideViewport(msg.X, msg.Y) {
			return m, cmd
		}

		off, down := m.screenToOffset(msg.X, msg.Y)
		if msg.Shift {
			anchor := m.buf.CursorPosition()
			if start, end, ok := m.buf.SelectionRange(); ok {
				// Keep the end farther from the click as the anchor.
				anchor = start
				if off < start {
					anchor = end
				}
			}
			m.mouseAnchor = anchor
			m.buf.StartSelectionAt(anchor)
		} else {
			m.mouseAnchor = off
			m.buf.ClearSelection()
		}
		m.buf.SetCursorPosition(off)
		m.mover.Reset()
		m.mover.Place(off, down)
		m.mouseDragging = true

	case tea.MouseActionMotion:
		if !m.mouseDragging {
			return m, cmd
		}

		x, y := m.clampToViewport(msg.X, msg.Y)
		off, down := m.screenToOffset(x, y)
		if off != m.mouseAnchor || m.buf.HasSelection() {
			if !m.buf.HasSelection() {
				m.buf.StartSelectionAt(m.mouseAnchor)
			}
			m.buf.SetCursorPosition(off)
			m.mover.Place(off, down)
		}

	case tea.MouseActionRelease:
		m.mouseDragging = false
	}

	return m, cmd
}

// isWheel reports wheel presses, which only scroll and never touch the
// cursor.
func isWheel(msg tea.MouseMsg) bool {
	if msg.Action != tea.MouseActionPress {
		return false
	}
	switch msg.Button { //nolint:exhaustive
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown,
		tea.MouseButtonWheelLeft, tea.MouseButtonWheelRight:
		return true
	}
	return false
}

// insideViewport reports whether a cell lies within the viewport.
func (m Model) insideViewport(x, y int) bool {
	w, h := m.viewport.Width, m.viewport.Height
	return w > 0 && h > 0 && x >= 0 && x < w && y >= 0 && y < h
}

// clampToViewport pulls drag coordinates that left the viewport back onto
// its edge.
func (m Model) clampToViewport(x, y int) (int, int) {
	if w := m.viewport.Width; w > 0 {
		x = max(0, min(x, w-1))
	}
	if h := m.viewport.Height; h > 0 {
		y = max(0, min(y, h-1))
	}
	return x, y
}
