// Package render turns parsed diff structures into paginated tabular
// output on a document surface.
//
// The renderer does not own a document type; it writes through the Surface
// interface so the layout math stays independent of the PDF backend.
package render

// Surface is the page-based drawing target the renderer writes into.
// The PDF adapter implements it; tests substitute a recording fake.
type Surface interface {
	// AddPage starts a new page and moves the write position to its top.
	AddPage()

	// SetFont selects the active font family, style ("", "B", "I") and size.
	SetFont(family, style string, size float64)

	// SetFillColor sets the background color for filled cells.
	SetFillColor(r, g, b int)

	// SetTextColor sets the text color for subsequent cells.
	SetTextColor(r, g, b int)

	// Cell draws one text cell of the given width and height at the current
	// position. align is "L", "C" or "R"; fill paints the background; ln
	// moves the position to the start of the next line instead of the cell's
	// right edge.
	Cell(w, h float64, text, align string, fill, ln bool)

	// StringWidth reports the rendered width of text in the active font.
	StringWidth(text string) float64

	// Y reports the current vertical write position.
	Y() float64

	// PageHeight reports the full page height.
	PageHeight() float64

	// ContentWidth reports the usable width between the side margins.
	ContentWidth() float64

	// BottomMargin reports the reserved space at the bottom of each page.
	BottomMargin() float64
}
