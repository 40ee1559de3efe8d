// Package cursor tracks the selected entry and scroll offset of a list.
package cursor

// Cursor is a selection in a list drawn through a viewport. The list
// length and viewport height are passed on each call since both change
// while the list is shown.
type Cursor struct {
	pos    int
	offset int // first visible entry
	margin int // entries kept visible around pos
}

// New returns a cursor on the first entry.
func New(margin int) Cursor {
	return Cursor{margin: max(margin, 0)}
}

func (c Cursor) Pos() int { return c.pos }

func (c Cursor) Offset() int { return c.offset }

// Move selects the entry delta away from the current one.
func (c *Cursor) Move(delta, n, height int) {
	c.Jump(c.pos+delta, n, height)
}

// Jump selects entry pos, clamped to the list, and scrolls it into view.
// It does nothing on an empty list.
func (c *Cursor) Jump(pos, n, height int) {
	if n == 0 {
		return
	}
	c.pos = clamp(pos, 0, n-1)
	c.scroll(n, height)
}

// JumpStart selects the first entry.
func (c *Cursor) JumpStart() {
	c.Reset()
}

// JumpEnd selects the last entry.
func (c *Cursor) JumpEnd(n, height int) {
	c.Jump(n-1, n, height)
}

// ClampToBounds pulls the cursor back into a list that shrank to n
// entries and reports whether it moved.
func (c *Cursor) ClampToBounds(n int) bool {
	if n == 0 {
		moved := c.pos != 0 || c.offset != 0
		c.Reset()
		return moved
	}
	prev := c.pos
	c.pos = clamp(c.pos, 0, n-1)
	c.offset = clamp(c.offset, 0, c.pos)
	return c.pos != prev
}

// VisibleRange returns the half-open range of entries in the viewport.
func (c Cursor) VisibleRange(n, height int) (start, end int) {
	if n == 0 || height <= 0 {
		return 0, 0
	}
	start = min(c.offset, n-1)
	return start, min(start+height, n)
}

// Reset selects the first entry.
func (c *Cursor) Reset() {
	c.pos, c.offset = 0, 0
}

// scroll moves the viewport so that pos sits at least margin entries from
// its edges, as far as the list allows.
func (c *Cursor) scroll(n, height int) {
	if height <= 0 {
		return
	}
	margin := min(c.margin, (height-1)/2)
	if c.pos-margin < c.offset {
		c.offset = c.pos - margin
	}
	if c.pos+margin >= c.offset+height {
		c.offset = c.pos + margin - height + 1
	}
	c.offset = clamp(c.offset, 0, max(n-height, 0))
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
