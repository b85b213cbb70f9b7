package layout

// VisualLine is one row of a soft-wrapped logical line.
//
// StartOffset and EndOffset are character offsets within LogicalLine.
// Consecutive visual lines of a logical line share their boundary offset.
type VisualLine struct {
	LogicalLine int
	StartOffset int
	EndOffset   int

	// VisualIndex is the line's position in the document-wide ordering. It is
	// assigned by the Manager; the wrapper leaves it relative to the logical
	// line.
	VisualIndex int

	Width  float64
	Height float64

	Segments []Segment
}

func (vl VisualLine) Len() int { return vl.EndOffset - vl.StartOffset }

// Contains reports whether col falls within the line, end inclusive so a
// cursor after the last character still belongs to it.
func (vl VisualLine) Contains(col int) bool {
	return col >= vl.StartOffset && col <= vl.EndOffset
}

// Intersects reports whether the half-open column range [start, end) touches
// the line. An empty range behaves like Contains, and an empty line is
// touched by any range that covers its position.
func (vl VisualLine) Intersects(start, end int) bool {
	if start > end {
		start, end = end, start
	}
	if start == end {
		return vl.Contains(start)
	}
	if vl.Len() == 0 {
		return start <= vl.StartOffset && vl.StartOffset < end
	}
	return vl.StartOffset < end && start < vl.EndOffset
}

// Text concatenates the displayed text of the line's segments.
func (vl VisualLine) Text() string {
	n := 0
	for _, s := range vl.Segments {
		n += len(s.Text)
	}
	buf := make([]byte, 0, n)
	for _, s := range vl.Segments {
		buf = append(buf, s.Text...)
	}
	return string(buf)
}

// ColumnAtX returns the source column under horizontal position x, rounding
// to the nearest character boundary. Hidden segments are skipped.
func (vl VisualLine) ColumnAtX(x float64, m Measurer) int {
	if x <= 0 || len(vl.Segments) == 0 {
		return vl.StartOffset
	}
	pos := 0.0
	for _, s := range vl.Segments {
		if s.Hidden() {
			continue
		}
		if x >= pos+s.Width {
			pos += s.Width
			continue
		}
		if !s.splittable() {
			if x-pos < s.Width/2 {
				return s.Start
			}
			return s.End
		}
		runes := []rune(s.Text)
		for i := range runes {
			w := m.Measure(string(runes[i]), s.Font)
			if x < pos+w/2 {
				return s.Start + i
			}
			pos += w
		}
		return s.End
	}
	return vl.EndOffset
}

// XForColumn is the inverse of ColumnAtX.
func (vl VisualLine) XForColumn(col int, m Measurer) float64 {
	x := 0.0
	for _, s := range vl.Segments {
		if col <= s.Start {
			break
		}
		if col >= s.End || !s.splittable() {
			x += s.Width
			continue
		}
		x += m.Measure(string([]rune(s.Text)[:col-s.Start]), s.Font)
		break
	}
	return x
}
