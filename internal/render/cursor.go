package render

// Cursor tracks document-level rendering state across diff sections: the
// page-break headroom checks and the running count of emitted body rows
// for the global line limit. One Cursor lives for the whole document, so
// the limit and its truncation notice span every item rendered into it.
type Cursor struct {
	surface     Surface
	maxLines    int
	emitted     int
	noticeShown bool
}

// NewCursor creates a cursor over the given surface. maxLines bounds the
// total number of diff body rows emitted into the document; zero or
// negative disables the limit.
func NewCursor(surface Surface, maxLines int) *Cursor {
	return &Cursor{surface: surface, maxLines: maxLines}
}

// Surface returns the drawing target this cursor tracks.
func (c *Cursor) Surface() Surface {
	return c.surface
}

// EnsureRoom starts a new page when less than needed vertical space
// remains, and reports whether a page break happened so the caller can
// re-apply fonts.
func (c *Cursor) EnsureRoom(needed float64) bool {
	limit := c.surface.PageHeight() - c.surface.BottomMargin()
	if c.surface.Y()+needed <= limit {
		return false
	}
	c.surface.AddPage()
	return true
}

// LimitReached reports whether the body-row budget is exhausted.
func (c *Cursor) LimitReached() bool {
	return c.maxLines > 0 && c.emitted >= c.maxLines
}

// CountRow records one emitted body row against the limit.
func (c *Cursor) CountRow() {
	c.emitted++
}

// EmittedRows returns the number of body rows emitted so far.
func (c *Cursor) EmittedRows() int {
	return c.emitted
}

// markNoticeShown records that the truncation notice has been emitted;
// it is shown at most once per document.
func (c *Cursor) markNoticeShown() bool {
	if c.noticeShown {
		return false
	}
	c.noticeShown = true
	return true
}
