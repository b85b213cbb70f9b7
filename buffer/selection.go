package buffer

// Selection is an optional anchor. The selected range runs between the anchor
// and the cursor. Cursor movement never clears it implicitly.
type Selection struct {
	anchor int
	active bool
}

func (s *Selection) Start(at int) {
	s.anchor = at
	s.active = true
}

func (s *Selection) Clear() { *s = Selection{} }

func (s Selection) Active() bool { return s.active }

func (s Selection) Anchor() int { return s.anchor }

// Range returns [min(anchor, cursor), max(anchor, cursor)).
func (s Selection) Range(cursor int) Range {
	return Range{Start: s.anchor, End: cursor}.Normalize()
}

func (s *Selection) clamp(max int) {
	if s.active {
		s.anchor = clampInt(s.anchor, 0, max)
	}
}
