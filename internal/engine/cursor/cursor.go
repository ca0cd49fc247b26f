package cursor

// Cursor is a single insertion point in a buffer, optionally anchoring
// a selection. The zero value is a cursor at byte 0 with no selection.
type Cursor struct {
	// Position is the byte offset of the insertion point.
	Position int

	// Anchor is the fixed end of the selection. Only meaningful when
	// HasAnchor is true.
	Anchor int

	// HasAnchor reports whether a selection is active.
	HasAnchor bool

	// StickyColumn remembers the visual column vertical movement aims
	// for. Negative means unset.
	StickyColumn int
}

// New returns a cursor at the given byte position with no selection.
func New(position int) Cursor {
	return Cursor{Position: position, StickyColumn: -1}
}

// HasSelection reports whether the cursor has a non-empty selection.
func (c Cursor) HasSelection() bool {
	return c.HasAnchor && c.Anchor != c.Position
}

// Collapsed reports whether the cursor selects nothing.
func (c Cursor) Collapsed() bool {
	return !c.HasSelection()
}

// SelectionRange returns the selection as an ordered [start, end) byte
// range. Without an anchor both ends equal Position.
func (c Cursor) SelectionRange() (start, end int) {
	if !c.HasAnchor {
		return c.Position, c.Position
	}
	if c.Anchor <= c.Position {
		return c.Anchor, c.Position
	}
	return c.Position, c.Anchor
}

// SelectionStart returns the lower bound of the selection.
func (c Cursor) SelectionStart() int {
	start, _ := c.SelectionRange()
	return start
}

// SelectionEnd returns the upper bound of the selection.
func (c Cursor) SelectionEnd() int {
	_, end := c.SelectionRange()
	return end
}

// MoveTo moves the cursor to pos. With extend true the current anchor
// is kept (or set at the old position if absent) so the selection
// grows; otherwise any selection is dropped.
func (c Cursor) MoveTo(pos int, extend bool) Cursor {
	if extend {
		if !c.HasAnchor {
			c.Anchor = c.Position
			c.HasAnchor = true
		}
	} else {
		c.HasAnchor = false
		c.Anchor = 0
	}
	c.Position = pos
	c.StickyColumn = -1
	return c
}

// SetAnchor pins the selection anchor at pos.
func (c Cursor) SetAnchor(pos int) Cursor {
	c.Anchor = pos
	c.HasAnchor = true
	return c
}

// ClearSelection drops the anchor, leaving the position unchanged.
func (c Cursor) ClearSelection() Cursor {
	c.HasAnchor = false
	c.Anchor = 0
	return c
}

// AdjustForEdit relocates the cursor after a buffer edit that replaced
// oldLen bytes at editPos with newLen bytes. Positions before the edit
// are unchanged, positions after it shift by the length delta, and
// positions inside the replaced span snap to the end of the new text.
// The anchor, when present, is adjusted by the same rule.
func (c Cursor) AdjustForEdit(editPos, oldLen, newLen int) Cursor {
	c.Position = adjustPos(c.Position, editPos, oldLen, newLen)
	if c.HasAnchor {
		c.Anchor = adjustPos(c.Anchor, editPos, oldLen, newLen)
	}
	return c
}

func adjustPos(pos, editPos, oldLen, newLen int) int {
	switch {
	case pos >= editPos+oldLen:
		return pos + newLen - oldLen
	case pos <= editPos:
		return pos
	default:
		return editPos + newLen
	}
}
