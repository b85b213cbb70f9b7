package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/scribe/motion"
)

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	// Paste events should always insert literal text and never trigger shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		m.insert(normalizeNewlines(string(msg.Runes)))
		return m, nil
	}

	km := m.cfg.KeyMap
	switch {
	case key.Matches(msg, km.Left):
		m.move(motion.Left, false)
	case key.Matches(msg, km.Right):
		m.move(motion.Right, false)
	case key.Matches(msg, km.Up):
		m.move(motion.Up, false)
	case key.Matches(msg, km.Down):
		m.move(motion.Down, false)

	case key.Matches(msg, km.ShiftLeft):
		m.move(motion.Left, true)
	case key.Matches(msg, km.ShiftRight):
		m.move(motion.Right, true)
	case key.Matches(msg, km.ShiftUp):
		m.move(motion.Up, true)
	case key.Matches(msg, km.ShiftDown):
		m.move(motion.Down, true)

	case key.Matches(msg, km.WordLeft):
		m.move(motion.WordStart, false)
	case key.Matches(msg, km.WordRight):
		m.move(motion.WordEnd, false)
	case key.Matches(msg, km.ShiftWordLeft):
		m.move(motion.WordStart, true)
	case key.Matches(msg, km.ShiftWordRight):
		m.move(motion.WordEnd, true)

	case key.Matches(msg, km.Home):
		m.move(motion.LineStart, false)
	case key.Matches(msg, km.End):
		m.move(motion.LineEnd, false)
	case key.Matches(msg, km.ShiftHome):
		m.move(motion.LineStart, true)
	case key.Matches(msg, km.ShiftEnd):
		m.move(motion.LineEnd, true)

	case key.Matches(msg, km.PageUp):
		m.move(motion.PageUp, false)
	case key.Matches(msg, km.PageDown):
		m.move(motion.PageDown, false)
	case key.Matches(msg, km.DocStart):
		m.move(motion.DocumentStart, false)
	case key.Matches(msg, km.DocEnd):
		m.move(motion.DocumentEnd, false)
	case key.Matches(msg, km.SelectAll):
		m.buf.SelectAll()
		m.mover.Reset()

	case key.Matches(msg, km.Backspace):
		m.edit(m.buf.DeleteBackward)
	case key.Matches(msg, km.Delete):
		m.edit(m.buf.DeleteForward)
	case key.Matches(msg, km.Enter):
		m.edit(m.buf.InsertNewline)
	case key.Matches(msg, km.Tab):
		m.insert("\t")

	case key.Matches(msg, km.Undo):
		if !m.cfg.ReadOnly {
			_, _ = m.buf.Undo()
			m.mover.Reset()
		}
	case key.Matches(msg, km.Redo):
		if !m.cfg.ReadOnly {
			_, _ = m.buf.Redo()
			m.mover.Reset()
		}

	case key.Matches(msg, km.Copy):
		m.copySelection()
	case key.Matches(msg, km.Cut):
		if !m.cfg.ReadOnly {
			m.cutSelection()
		} else {
			m.copySelection()
		}
	case key.Matches(msg, km.Paste):
		m.pasteClipboard()

	default:
		if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt {
			m.insert(string(msg.Runes))
		}
	}

	return m, nil
}

// move runs a motion intent against the current visual layout.
func (m Model) move(intent motion.Intent, extend bool) {
	m.mover.Move(m.buf, m.vm, intent, extend)
}

func (m Model) edit(op func() bool) {
	if m.cfg.ReadOnly {
		return
	}
	if op() {
		m.mover.Reset()
	}
}

func (m Model) insert(s string) {
	if s == "" {
		return
	}
	m.edit(func() bool { return m.buf.InsertText(s) })
}

func (m Model) copySelection() {
	if m.cfg.Clipboard == nil {
		return
	}
	if s := m.buf.SelectedText(); s != "" {
		_ = m.cfg.Clipboard.WriteText(s)
	}
}

func (m Model) cutSelection() {
	if m.cfg.Clipboard == nil || !m.buf.HasSelection() {
		return
	}
	m.copySelection()
	m.edit(m.buf.DeleteSelection)
}

func (m Model) pasteClipboard() {
	if m.cfg.Clipboard == nil || m.cfg.ReadOnly {
		return
	}
	s, err := m.cfg.Clipboard.ReadText()
	if err != nil {
		return
	}
	m.insert(normalizeNewlines(s))
}

// normalizeNewlines converts newlines from external sources to "\n".
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
