package layout

import (
	"sort"

	"github.com/iw2rmb/scribe/buffer"
)

// SegmentSource supplies the styled segments of each logical line.
type SegmentSource interface {
	LineCount() int
	Segments(line int) []Segment
}

// lineSpan is a half-open range into Manager.lines.
type lineSpan struct {
	start int
	end   int
}

// Manager aggregates the visual lines of a whole document.
//
// Visual lines live in one flat slice in document order. index maps each
// logical line to the range it owns. After InvalidateLines the flat slice may
// hold stale entries that are only dropped by the next Refresh or Rebuild.
type Manager struct {
	wrapper *Wrapper

	lines []VisualLine
	index map[int]lineSpan
	ys    []float64

	dirty   map[int]struct{}
	version uint64

	// lineVersions[i] is the document version at which logical line i last
	// changed. Clean lines are wrapped with their own stamp and hit the cache.
	lineVersions []uint64
	lineCount    int
}

func NewManager(w *Wrapper) *Manager {
	if w == nil {
		w = NewWrapper(nil, 0)
	}
	return &Manager{
		wrapper: w,
		index:   make(map[int]lineSpan),
		dirty:   make(map[int]struct{}),
	}
}

func (m *Manager) Wrapper() *Wrapper { return m.wrapper }

// Version increases only when ApplyChange sees a content change.
func (m *Manager) Version() uint64 { return m.version }

// Rebuild lays out every line of src from scratch.
func (m *Manager) Rebuild(src SegmentSource) {
	m.wrapper.Invalidate()
	m.resize(src.LineCount())
	m.layout(src, 0)
}

// Refresh re-wraps dirty lines and reports whether anything was done. Clean
// lines keep their visual lines without asking src for segments again.
func (m *Manager) Refresh(src SegmentSource) bool {
	n := src.LineCount()
	if len(m.dirty) == 0 && n == m.lineCount && len(m.index) == n {
		return false
	}

	// When the line count moved, lines past the first dirty one may have
	// shifted and cannot be reused.
	reuse := n
	if n != m.lineCount {
		reuse = 0
		if d := m.DirtyLines(); len(d) > 0 {
			reuse = d[0]
		}
	}
	m.resize(n)
	m.layout(src, reuse)
	return true
}

func (m *Manager) resize(n int) {
	for len(m.lineVersions) < n {
		m.lineVersions = append(m.lineVersions, m.version)
	}
	m.lineVersions = m.lineVersions[:n]
	m.lineCount = n
}

// layout rebuilds the flat slice. Lines below reuse that are clean and still
// indexed are copied from the previous layout.
func (m *Manager) layout(src SegmentSource, reuse int) {
	old, oldIndex := m.lines, m.index
	lines := make([]VisualLine, 0, max(len(old), m.lineCount))
	index := make(map[int]lineSpan, m.lineCount)
	for l := 0; l < m.lineCount; l++ {
		start := len(lines)
		span, ok := oldIndex[l]
		if ok && l < reuse && !m.IsDirty(l) {
			for _, vl := range old[span.start:span.end] {
				vl.VisualIndex = len(lines)
				lines = append(lines, vl)
			}
		} else {
			for _, vl := range m.wrapper.WrapLine(l, src.Segments(l), m.lineVersions[l]) {
				vl.VisualIndex = len(lines)
				lines = append(lines, vl)
			}
		}
		index[l] = lineSpan{start: start, end: len(lines)}
	}
	m.lines = lines
	m.index = index
	m.ys = nil
	clear(m.dirty)
}

// ApplyChange records a buffer mutation. Rows from the change start are
// marked dirty, through the end of the document when the line count moved.
func (m *Manager) ApplyChange(ch buffer.Change) {
	if ch.VersionAfter == ch.VersionBefore {
		return
	}
	m.version++

	last := ch.NewEndRow
	if ch.LineCountDelta() != 0 {
		last = m.lineCount + ch.LineCountDelta() - 1
	}
	m.MarkRangeDirty(ch.StartRow, max(last, ch.NewEndRow))
}

// MarkLineDirty queues line for re-wrapping. Its cached layout is dropped
// even when content is unchanged, since the segments may have been restyled.
func (m *Manager) MarkLineDirty(line int) {
	if line < 0 {
		return
	}
	m.dirty[line] = struct{}{}
	if line < len(m.lineVersions) {
		m.lineVersions[line] = m.version
	}
	m.wrapper.InvalidateLine(line)
}

// MarkRangeDirty marks logical lines start..end inclusive.
func (m *Manager) MarkRangeDirty(start, end int) {
	if start > end {
		start, end = end, start
	}
	for l := max(start, 0); l <= end; l++ {
		m.MarkLineDirty(l)
	}
}

// InvalidateLines drops start..end from the logical index and marks them
// dirty. The flat slice keeps their old entries until the next layout.
func (m *Manager) InvalidateLines(start, end int) {
	if start > end {
		start, end = end, start
	}
	for l := max(start, 0); l <= end; l++ {
		delete(m.index, l)
		m.MarkLineDirty(l)
	}
}

func (m *Manager) IsDirty(line int) bool {
	_, ok := m.dirty[line]
	return ok
}

// DirtyLines returns the pending logical lines in ascending order.
func (m *Manager) DirtyLines() []int {
	out := make([]int, 0, len(m.dirty))
	for l := range m.dirty {
		out = append(out, l)
	}
	sort.Ints(out)
	return out
}

func (m *Manager) Len() int { return len(m.lines) }

// VisualLine returns the visual line at i clamped to the valid range. The
// zero VisualLine is returned when there are none.
func (m *Manager) VisualLine(i int) VisualLine {
	if len(m.lines) == 0 {
		return VisualLine{}
	}
	if i < 0 {
		i = 0
	}
	if i >= len(m.lines) {
		i = len(m.lines) - 1
	}
	return m.lines[i]
}

func (m *Manager) VisualLines() []VisualLine { return m.lines }

// LineRange returns the half-open range of visual indices owned by logical.
func (m *Manager) LineRange(logical int) (start, end int, ok bool) {
	span, ok := m.index[logical]
	if !ok {
		return 0, 0, false
	}
	return span.start, span.end, true
}

// FindVisualLineAtPosition returns the visual index of the line of logical
// that contains column. At a wrap boundary the earlier line wins.
func (m *Manager) FindVisualLineAtPosition(logical, column int) (int, bool) {
	return m.FindVisualLine(logical, column, false)
}

// FindVisualLine is FindVisualLineAtPosition with an affinity: when column is
// the boundary shared by two visual lines, downstream picks the later one.
func (m *Manager) FindVisualLine(logical, column int, downstream bool) (int, bool) {
	span, ok := m.index[logical]
	if !ok {
		return 0, false
	}
	for i := span.start; i < span.end; i++ {
		if !m.lines[i].Contains(column) {
			continue
		}
		if downstream && i+1 < span.end && m.lines[i+1].StartOffset == column {
			return i + 1, true
		}
		return i, true
	}
	return 0, false
}

// FindVisualLinesInSelection returns the visual indices touched by the range
// between start and end, in document order. The end is exclusive, so a range
// ending at column 0 does not touch its last row.
func (m *Manager) FindVisualLinesInSelection(start, end buffer.Point) []int {
	if end.Less(start) {
		start, end = end, start
	}
	if start == end {
		if i, ok := m.FindVisualLineAtPosition(int(start.Row), int(start.Column)); ok {
			return []int{i}
		}
		return nil
	}

	var out []int
	for row := int(start.Row); row <= int(end.Row); row++ {
		span, ok := m.index[row]
		if !ok {
			continue
		}
		from, to := 0, int(^uint(0)>>1)
		if row == int(start.Row) {
			from = int(start.Column)
		}
		if row == int(end.Row) {
			if end.Column == 0 && row > int(start.Row) {
				break
			}
			to = int(end.Column)
		}
		for i := span.start; i < span.end; i++ {
			if m.lines[i].Intersects(from, to) {
				out = append(out, i)
			}
		}
	}
	return out
}

// UpdateYPositions stores the top Y of each visual line as measured by the
// renderer. ys[i] belongs to visual index i and must be non-decreasing.
func (m *Manager) UpdateYPositions(ys []float64) {
	m.ys = append(m.ys[:0], ys...)
}

func (m *Manager) YPosition(i int) (float64, bool) {
	if i < 0 || i >= len(m.ys) {
		return 0, false
	}
	return m.ys[i], true
}

// VisualLineAtY returns the visual line whose band contains y. Positions
// above the first line or below the last clamp to them.
func (m *Manager) VisualLineAtY(y float64) (int, bool) {
	if len(m.ys) == 0 {
		return 0, false
	}
	i := sort.Search(len(m.ys), func(i int) bool { return m.ys[i] > y }) - 1
	if i < 0 {
		i = 0
	}
	if i >= len(m.lines) && len(m.lines) > 0 {
		i = len(m.lines) - 1
	}
	return i, true
}

// LayoutYPositions computes Y positions by stacking line heights from top.
// height overrides VisualLine.Height when the renderer measures lines in its
// own units; nil keeps the wrapped height. The result is meant for
// UpdateYPositions.
func (m *Manager) LayoutYPositions(top float64, height func(VisualLine) float64) []float64 {
	ys := make([]float64, len(m.lines))
	y := top
	for i, vl := range m.lines {
		ys[i] = y
		if height != nil {
			y += height(vl)
		} else {
			y += vl.Height
		}
	}
	return ys
}
