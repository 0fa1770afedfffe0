package model

// Cursor is a position in the ordered image sequence, always within [0, n-1].
type Cursor struct {
	idx int
	n   int
}

// NewCursor creates a cursor over n items starting at start (clamped).
func NewCursor(n, start int) Cursor {
	c := Cursor{n: n}
	c.JumpTo(start)
	return c
}

// Index returns the current position.
func (c Cursor) Index() int {
	return c.idx
}

// Len returns the sequence length.
func (c Cursor) Len() int {
	return c.n
}

// Advance moves forward one item. Returns false at the last item.
func (c *Cursor) Advance() bool {
	if c.idx >= c.n-1 {
		return false
	}
	c.idx++
	return true
}

// Retreat moves back one item. Returns false at the first item.
func (c *Cursor) Retreat() bool {
	if c.idx <= 0 {
		return false
	}
	c.idx--
	return true
}

// JumpTo moves to index i, clamped to the valid range.
func (c *Cursor) JumpTo(i int) {
	switch {
	case c.n == 0, i < 0:
		c.idx = 0
	case i >= c.n:
		c.idx = c.n - 1
	default:
		c.idx = i
	}
}

// AtStart reports whether the cursor is on the first item.
func (c Cursor) AtStart() bool {
	return c.idx == 0
}

// AtEnd reports whether the cursor is on the last item.
func (c Cursor) AtEnd() bool {
	return c.idx >= c.n-1
}
