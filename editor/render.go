package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/scribe/internal/grapheme"
	"github.com/iw2rmb/scribe/layout"
)

// cellRole selects how a character is drawn on top of its font style.
type cellRole int

const (
	roleText cellRole = iota
	roleSelection
	roleCursor
)

// runKey groups consecutive characters rendered with the same style.
type runKey struct {
	role cellRole
	font layout.Font
}

// lineState carries what a visual line needs to know about the cursor and
// selection, in columns of its logical line.
type lineState struct {
	cursorCol int // -1 when the cursor is not on this visual line
	selStart  int
	selEnd    int
	hasSel    bool
}

func (m *Model) renderContent() string {
	text := m.buf.Text()
	lines := m.vm.VisualLines()
	if len(lines) == 0 {
		return ""
	}

	cursorRow := -1
	if m.focused {
		if i, ok := m.cursorVisualRow(); ok {
			cursorRow = i
		}
	}
	p := m.buf.CursorPoint()
	selStart, selEnd, hasSel := m.buf.SelectionRange()

	digits := 0
	if m.cfg.ShowLineNums {
		digits = gutterDigits(text.LineCount())
	}

	out := make([]string, 0, len(lines))
	for i, vl := range lines {
		var sb strings.Builder

		if m.cfg.ShowLineNums {
			numStyle := m.cfg.Style.LineNum
			if m.focused && vl.LogicalLine == int(p.Row) && vl.StartOffset == 0 {
				numStyle = m.cfg.Style.LineNumActive
			}
			num := fmt.Sprintf("%*s", digits, "")
			if vl.StartOffset == 0 {
				num = fmt.Sprintf("%*d", digits, vl.LogicalLine+1)
			}
			sb.WriteString(numStyle.Render(num))
			sb.WriteString(m.cfg.Style.Gutter.Render(" "))
		}

		ls := lineState{cursorCol: -1}
		if i == cursorRow {
			ls.cursorCol = int(p.Column)
		}
		if hasSel {
			start := text.LineStart(vl.LogicalLine)
			ls.selStart, ls.selEnd, ls.hasSel = selStart-start, selEnd-start, true
		}
		sb.WriteString(m.renderVisualLine(vl, ls))

		out = append(out, sb.String())
	}
	return strings.Join(out, "\n")
}

func (m *Model) renderVisualLine(vl layout.VisualLine, ls lineState) string {
	st := m.cfg.Style

	var (
		sb      strings.Builder
		run     strings.Builder
		cur     runKey
		started bool
		// pending is set when the cursor sits in hidden source; it is drawn
		// on the next visible character instead.
		pending bool
	)
	flush := func() {
		if run.Len() == 0 {
			return
		}
		sb.WriteString(st.render(cur).Render(run.String()))
		run.Reset()
	}
	emit := func(k runKey, s string) {
		if !started || k != cur {
			flush()
			cur, started = k, true
		}
		run.WriteString(s)
	}

	for _, seg := range vl.Segments {
		if seg.Hidden() {
			if ls.cursorCol >= seg.Start && ls.cursorCol < seg.End {
				pending = true
			}
			continue
		}
		col := seg.Start
		for _, g := range grapheme.Split(seg.Text) {
			n := len([]rune(g))
			k := runKey{font: seg.Font}
			switch {
			case pending || (ls.cursorCol >= col && ls.cursorCol < col+n):
				k.role = roleCursor
				pending = false
			case ls.hasSel && col >= ls.selStart && col < ls.selEnd:
				k.role = roleSelection
			}
			emit(k, m.cellText(g, seg.Font))
			col += n
		}
	}

	// Cursor at the end of the visual line is a 1-cell placeholder.
	if pending || ls.cursorCol >= vl.EndOffset {
		emit(runKey{role: roleCursor}, " ")
	}
	flush()
	return sb.String()
}

func (m *Model) cellText(g string, f layout.Font) string {
	if g == "\t" {
		return strings.Repeat(" ", max(int(m.measurer.Measure(g, f)), 1))
	}
	return g
}

// render resolves the lipgloss style for a run.
func (st Style) render(k runKey) lipgloss.Style {
	s := st.Text
	switch {
	case k.font.Size > layout.DefaultFontSize:
		s = st.Heading.Inherit(s)
	case k.font.Code:
		s = st.Code.Inherit(s)
	}
	if k.font.Bold {
		s = st.Strong.Inherit(s)
	}
	if k.font.Italic {
		s = st.Emphasis.Inherit(s)
	}

	switch k.role {
	case roleCursor:
		return st.Cursor.Inherit(s)
	case roleSelection:
		return st.Selection.Inherit(s)
	}
	return s
}

func (m Model) gutterWidth() int {
	if !m.cfg.ShowLineNums {
		return 0
	}
	return gutterDigits(m.buf.Text().LineCount()) + 1
}

func gutterDigits(lines int) int {
	n := 1
	for lines >= 10 {
		lines /= 10
		n++
	}
	return n
}
