package editor

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/scribe/buffer"
	"github.com/iw2rmb/scribe/layout"
	"github.com/iw2rmb/scribe/markup"
	"github.com/iw2rmb/scribe/motion"
)

// Model is a Bubble Tea component that renders and interacts with a buffer.
type Model struct {
	cfg Config
	buf *buffer.Buffer

	measurer layout.Measurer
	wrapper  *layout.Wrapper
	vm       *layout.Manager
	src      markup.LineSource
	mover    *motion.Service

	focused  bool
	viewport viewport.Model

	lastVersion uint64
	lastRow     int
	last        snapshot

	mouseDragging bool
	mouseAnchor   int
}

// snapshot is the state compared before and after an update to decide
// whether OnChange fires.
type snapshot struct {
	version  uint64
	cursor   int
	selStart int
	selEnd   int
	selOK    bool

	// downstream only changes which row the cursor is drawn on. It forces a
	// redraw but is not reported.
	downstream bool
}

func (s snapshot) reported() snapshot {
	s.downstream = false
	return s
}

func New(cfg Config) Model {
	if cfg.KeyMap.isZero() {
		cfg.KeyMap = DefaultKeyMap()
	}

	buf := buffer.New(cfg.Text, buffer.Options{
		History:     cfg.History,
		Diagnostics: cfg.Diagnostics,
		Logger:      cfg.Logger,
	})

	// Widths are terminal cells, memoized per string and font.
	meas := layout.NewCachedMeasurer(layout.CellMeasurer{TabWidth: cfg.tabWidth()}, 0, 0)
	wrapper := layout.NewWrapper(meas, 0)
	wrapper.SetEnabled(cfg.Wrap)

	src := markup.LineSource{Buffer: buf, CursorRaw: true}
	if cfg.Markup {
		src.Tokenizer = markup.NewChromaTokenizer("markdown")
	}

	m := Model{
		cfg:      cfg,
		buf:      buf,
		measurer: meas,
		wrapper:  wrapper,
		vm:       layout.NewManager(wrapper),
		src:      src,
		mover:    motion.New(cfg.PageSize),
		focused:  true,
		viewport: viewport.New(0, 0),
	}
	m.vm.Rebuild(m.src)
	m.lastVersion = buf.Version()
	m.last = m.snapshot()
	m.rebuildContent()
	return m
}

func (m Model) Buffer() *buffer.Buffer { return m.buf }

// KeyMap returns the active bindings; it satisfies help.KeyMap.
func (m Model) KeyMap() KeyMap { return m.cfg.KeyMap }

// Layout exposes the visual line manager, e.g. for hosts drawing overlays.
func (m Model) Layout() *layout.Manager { return m.vm }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetSize(width, height int) Model {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.viewport.Width = width
	m.viewport.Height = height
	if m.cfg.PageSize <= 0 {
		m.mover.PageSize = max(m.visibleRowCount(), 1)
	}

	m.relayout()
	m.followCursor()
	return m
}

// SetWrap switches soft wrapping at runtime. A zero width wraps at the
// content width.
func (m Model) SetWrap(enabled bool, width int) Model {
	m.cfg.Wrap, m.cfg.WrapWidth = enabled, width
	m.wrapper.SetEnabled(enabled)
	m.relayout()
	m.followCursor()
	return m
}

// SetMarkup switches markdown styling at runtime.
func (m Model) SetMarkup(enabled bool) Model {
	m.cfg.Markup = enabled
	m.src.Tokenizer = nil
	if enabled {
		m.src.Tokenizer = markup.NewChromaTokenizer("markdown")
	}
	m.relayout()
	m.followCursor()
	return m
}

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		m.rebuildContent()
		m.followCursor()
	}
	return m
}

func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.rebuildContent()
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		return m.SetSize(size.Width, size.Height), nil
	}

	var cmd tea.Cmd
	follow := false
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m, cmd = m.updateKey(msg)
		follow = true
	case tea.MouseMsg:
		m, cmd = m.updateMouse(msg)
	}
	// Hosts may also mutate the buffer directly between messages.
	m.afterInput(follow)
	return m, cmd
}

func (m Model) View() string { return m.viewport.View() }

// afterInput brings layout and rendering up to date with the buffer and
// reports the change to the host.
func (m *Model) afterInput(follow bool) {
	now := m.snapshot()
	if now == m.last {
		return
	}
	m.syncLayout()
	m.rebuildContent()
	if follow || now.cursor != m.last.cursor {
		m.followCursor()
	}
	report := now.reported() != m.last.reported()
	m.last = now
	if report && m.cfg.OnChange != nil {
		m.cfg.OnChange(buildChangeEvent(m.buf))
	}
}

func (m *Model) snapshot() snapshot {
	s := snapshot{version: m.buf.Version(), cursor: m.buf.CursorPosition()}
	s.selStart, s.selEnd, s.selOK = m.buf.SelectionRange()
	s.downstream = m.mover.Downstream(s.cursor)
	return s
}

// syncLayout feeds buffer changes to the visual line manager. With markup on,
// the lines the cursor left and entered are restyled as well.
func (m *Model) syncLayout() {
	if ver := m.buf.Version(); ver != m.lastVersion {
		ch, ok := m.buf.LastChange()
		if ok && ch.VersionBefore == m.lastVersion && ch.VersionAfter == ver {
			m.vm.ApplyChange(ch)
		} else {
			m.vm.MarkRangeDirty(0, m.buf.Text().LineCount()-1)
		}
		m.lastVersion = ver
	}

	row := int(m.buf.CursorPoint().Row)
	if m.cfg.Markup {
		m.vm.MarkLineDirty(m.lastRow)
		m.vm.MarkLineDirty(row)
	}
	m.lastRow = row
	m.vm.Refresh(m.src)
}

// relayout applies the current wrap width and lays out the whole document.
func (m *Model) relayout() {
	m.wrapper.SetWrapWidth(float64(m.wrapWidth()))
	m.vm.Rebuild(m.src)
	m.rebuildContent()
}

func (m Model) wrapWidth() int {
	content := m.contentWidth()
	if m.cfg.WrapWidth > 0 && (content <= 0 || m.cfg.WrapWidth < content) {
		return m.cfg.WrapWidth
	}
	return content
}

func (m Model) contentWidth() int {
	w := m.viewport.Width - m.viewport.Style.GetHorizontalFrameSize() - m.gutterWidth()
	if w < 0 {
		return 0
	}
	return w
}

func (m *Model) rebuildContent() {
	m.viewport.SetContent(m.renderContent())

	// One terminal row per visual line.
	m.vm.UpdateYPositions(m.vm.LayoutYPositions(0, func(layout.VisualLine) float64 { return 1 }))
}

func (m *Model) followCursor() {
	h := m.visibleRowCount()
	if h <= 0 {
		return
	}
	row, ok := m.cursorVisualRow()
	if !ok {
		return
	}

	y := m.viewport.YOffset
	if row < y {
		m.viewport.SetYOffset(row)
		return
	}
	if row >= y+h {
		m.viewport.SetYOffset(row - h + 1)
	}
}

func (m Model) cursorVisualRow() (int, bool) {
	return m.mover.CursorVisualLine(m.buf, m.vm)
}
