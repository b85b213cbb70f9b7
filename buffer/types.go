package buffer

// Point addresses the document by (row, column) in characters.
// Row and Column are 0-based.
type Point struct {
	Row    uint32
	Column uint32
}

// ComparePoints orders points row-major.
func ComparePoints(a, b Point) int {
	if a.Row < b.Row {
		return -1
	}
	if a.Row > b.Row {
		return 1
	}
	if a.Column < b.Column {
		return -1
	}
	if a.Column > b.Column {
		return 1
	}
	return 0
}

func (p Point) Less(o Point) bool { return ComparePoints(p, o) < 0 }

// Add applies a line delta. When d spans at least one row the column is
// replaced by d.Column instead of summed; line-delta arithmetic relies on it.
func (p Point) Add(d Point) Point {
	if d.Row > 0 {
		return Point{Row: p.Row + d.Row, Column: d.Column}
	}
	return Point{Row: p.Row, Column: p.Column + d.Column}
}

// Sub returns the delta d such that o.Add(d) == p. p must not precede o.
func (p Point) Sub(o Point) Point {
	if ComparePoints(p, o) <= 0 {
		return Point{}
	}
	if p.Row > o.Row {
		return Point{Row: p.Row - o.Row, Column: p.Column}
	}
	return Point{Column: p.Column - o.Column}
}

// Range is a half-open span of character offsets: [Start, End).
type Range struct {
	Start int
	End   int
}

func (r Range) Normalize() Range {
	if r.Start <= r.End {
		return r
	}
	return Range{Start: r.End, End: r.Start}
}

func (r Range) Len() int {
	n := r.Normalize()
	return n.End - n.Start
}

func (r Range) IsEmpty() bool { return r.Start == r.End }

func (r Range) Contains(off int) bool {
	n := r.Normalize()
	return off >= n.Start && off < n.End
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
