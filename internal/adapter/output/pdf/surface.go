package pdf

import "time"

// render.Surface implementation. The diff renderer drives the document
// through this narrow interface instead of holding the fpdf handle.

func (d *document) AddPage() {
	d.pdf.AddPage()
}

func (d *document) SetFont(family, style string, size float64) {
	d.pdf.SetFont(family, style, size)
}

func (d *document) SetFillColor(r, g, b int) {
	d.pdf.SetFillColor(r, g, b)
}

func (d *document) SetTextColor(r, g, b int) {
	d.pdf.SetTextColor(r, g, b)
}

func (d *document) Cell(w, h float64, text, align string, fill, ln bool) {
	lnVal := 0
	if ln {
		lnVal = 1
	}
	d.pdf.CellFormat(w, h, text, "", lnVal, align, fill, 0, "")
}

func (d *document) StringWidth(text string) float64 {
	return d.pdf.GetStringWidth(text)
}

func (d *document) Y() float64 {
	return d.pdf.GetY()
}

func (d *document) PageHeight() float64 {
	_, h := d.pdf.GetPageSize()
	return h
}

func (d *document) ContentWidth() float64 {
	w, _ := d.pdf.GetPageSize()
	left, _, right, _ := d.pdf.GetMargins()
	return w - left - right
}

func (d *document) BottomMargin() float64 {
	_, _, _, bottom := d.pdf.GetMargins()
	return bottom
}

// wrapWidth matches the original document's 80-character message wrap.
const wrapWidth = 80

// formatTimestamp renders an ISO-8601 timestamp as "2006-01-02 15:04:05",
// falling back to the raw string when it does not parse.
func formatTimestamp(iso string) string {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	return t.Format("2006-01-02 15:04:05")
}
