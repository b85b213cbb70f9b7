package buffer

// Cursor holds the caret as both a character offset and a Point.
//
// After any movement exactly one representation is guaranteed fresh.
// Synchronize recomputes the stale one through a Mapper.
type Cursor struct {
	offset int
	point  Point

	offsetValid bool
	pointValid  bool
}

// Offset returns the cached offset and whether it is fresh.
func (c *Cursor) Offset() (int, bool) { return c.offset, c.offsetValid }

// Point returns the cached point and whether it is fresh. The point may be
// an approximation after nudge; call Synchronize before trusting it.
func (c *Cursor) Point() (Point, bool) { return c.point, c.pointValid }

func (c *Cursor) SetOffset(off int) {
	c.offset = off
	c.offsetValid = true
	c.pointValid = false
}

func (c *Cursor) SetPoint(p Point) {
	c.point = p
	c.pointValid = true
	c.offsetValid = false
}

// Synchronize reconciles the stale representation. When both are stale the
// offset wins and is clamped by the mapper round trip.
func (c *Cursor) Synchronize(m Mapper) {
	switch {
	case c.offsetValid:
		c.point = m.OffsetToPoint(c.offset)
		c.offset = m.PointToOffset(c.point)
	case c.pointValid:
		c.offset = m.PointToOffset(c.point)
		c.point = m.OffsetToPoint(c.offset)
	default:
		c.point = m.OffsetToPoint(c.offset)
		c.offset = m.PointToOffset(c.point)
	}
	c.offsetValid = true
	c.pointValid = true
}

// nudge moves the offset by delta within [0, max] and patches the cached
// point column without consulting a mapper. The point is left as is when the
// offset did not move, and is only a guess across line terminators or for
// wide characters.
func (c *Cursor) nudge(delta, max int) bool {
	next := clampInt(c.offset+delta, 0, max)
	if next == c.offset {
		return false
	}
	c.offset = next
	c.offsetValid = true
	switch {
	case delta < 0 && c.point.Column > 0:
		c.point.Column--
	case delta > 0:
		c.point.Column++
	}
	return true
}
