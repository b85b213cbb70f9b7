package layout

// Wrapper splits styled logical lines into visual lines no wider than the
// wrap width, caching the result per logical line.
//
// The cache is keyed by logical line and stamped with the document version
// the caller passed in. A lookup with any other version recomputes.
type Wrapper struct {
	measurer Measurer
	width    float64
	enabled  bool

	cache map[int]wrapEntry
}

type wrapEntry struct {
	version uint64
	lines   []VisualLine
}

// NewWrapper returns an enabled wrapper. A width <= 0 disables breaking.
func NewWrapper(m Measurer, width float64) *Wrapper {
	if m == nil {
		m = CellMeasurer{}
	}
	return &Wrapper{
		measurer: m,
		width:    width,
		enabled:  true,
		cache:    make(map[int]wrapEntry),
	}
}

func (w *Wrapper) Measurer() Measurer { return w.measurer }

func (w *Wrapper) WrapWidth() float64 { return w.width }

func (w *Wrapper) Enabled() bool { return w.enabled }

// SetWrapWidth changes the width and drops the whole cache if it differs.
func (w *Wrapper) SetWrapWidth(width float64) {
	if width == w.width {
		return
	}
	w.width = width
	w.Invalidate()
}

// SetEnabled toggles wrapping and drops the whole cache if it differs.
func (w *Wrapper) SetEnabled(enabled bool) {
	if enabled == w.enabled {
		return
	}
	w.enabled = enabled
	w.Invalidate()
}

func (w *Wrapper) Invalidate() {
	clear(w.cache)
}

func (w *Wrapper) InvalidateLine(line int) {
	delete(w.cache, line)
}

func (w *Wrapper) CacheLen() int { return len(w.cache) }

// WrapLine returns the visual lines for logical line line. segs must be in
// source order and contiguous. The returned slice is shared with the cache
// and must not be modified.
func (w *Wrapper) WrapLine(line int, segs []Segment, version uint64) []VisualLine {
	if e, ok := w.cache[line]; ok && e.version == version {
		return e.lines
	}

	measured := make([]Segment, len(segs))
	for i, s := range segs {
		s.Width = w.measure(s)
		measured[i] = s
	}

	var lines []VisualLine
	if !w.enabled || w.width <= 0 {
		lines = []VisualLine{newVisualLine(line, 0, measured)}
	} else {
		lines = w.wrap(line, measured)
	}
	w.cache[line] = wrapEntry{version: version, lines: lines}
	return lines
}

func (w *Wrapper) measure(s Segment) float64 {
	if s.Text == "" {
		return 0
	}
	return w.measurer.Measure(s.Text, s.Font)
}

// wrap folds segments into lines greedily. A segment that alone exceeds the
// width is broken into words first; a word that still does not fit gets a
// line of its own.
func (w *Wrapper) wrap(line int, segs []Segment) []VisualLine {
	var (
		lines []VisualLine
		cur   []Segment
		used  float64
	)
	flush := func() {
		if len(cur) == 0 {
			return
		}
		lines = append(lines, newVisualLine(line, len(lines), cur))
		cur = nil
		used = 0
	}
	place := func(s Segment) {
		if used > 0 && s.Width > 0 && used+s.Width > w.width {
			flush()
		}
		cur = append(cur, s)
		used += s.Width
	}

	for _, s := range segs {
		if s.Width == 0 || used+s.Width <= w.width {
			cur = append(cur, s)
			used += s.Width
			continue
		}
		if s.Width <= w.width {
			place(s)
			continue
		}
		for _, piece := range w.splitWords(s) {
			place(piece)
		}
	}
	flush()

	if len(lines) == 0 {
		lines = append(lines, newVisualLine(line, 0, nil))
	}
	return lines
}

func newVisualLine(line, index int, segs []Segment) VisualLine {
	vl := VisualLine{
		LogicalLine: line,
		VisualIndex: index,
		Segments:    segs,
	}
	maxSize := 0.0
	for i, s := range segs {
		if i == 0 {
			vl.StartOffset = s.Start
		}
		vl.EndOffset = s.End
		vl.Width += s.Width
		if sz := s.Font.size(); sz > maxSize {
			maxSize = sz
		}
	}
	if maxSize == 0 {
		maxSize = DefaultFontSize
	}
	vl.Height = maxSize * lineHeightFactor
	return vl
}
