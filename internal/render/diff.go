package render

import (
	"strconv"
	"strings"

	"github.com/bkyoung/gh-summary/internal/diff"
)

// Document defaults restored after a diff section finishes.
const (
	DefaultFontFamily = "Helvetica"
	DefaultFontSize   = 11.0
)

// Monospaced font used for diff rows; re-applied after every page break.
const (
	monoFamily = "Courier"
	monoSize   = 7.5
)

// Fixed row geometry in document units (mm).
const (
	fileHeaderHeight = 5.5
	hunkRowHeight    = 4.6
	bodyRowHeight    = 4.2

	// Headroom required before starting each element; a file header needs
	// enough room to be worth starting, a body row only needs itself.
	fileHeaderRoom = 18.0
	hunkHeaderRoom = 12.0
	bodyRowRoom    = 7.0

	signColWidth    = 5.0
	numberColWidth  = 10.0
	minContentWidth = 60.0
)

const ellipsis = "..."

// GitHub-style palette for the diff table.
var (
	fileHeaderFill = rgb{246, 248, 250}
	hunkFill       = rgb{221, 244, 255}
	hunkText       = rgb{87, 96, 106}
	additionFill   = rgb{230, 255, 236}
	additionText   = rgb{26, 127, 55}
	deletionFill   = rgb{255, 235, 233}
	deletionText   = rgb{207, 34, 46}
	contextFill    = rgb{255, 255, 255}
	contextText    = rgb{36, 41, 47}
	noticeText     = rgb{87, 96, 106}
)

type rgb struct{ r, g, b int }

// DefaultExtensions returns the file extensions rendered when none are
// configured.
func DefaultExtensions() []string {
	return []string{".py", ".c", ".cpp", ".md"}
}

// DiffRenderer draws parsed diff files as a colored fixed-width table.
type DiffRenderer struct {
	extensions []string
}

// NewDiffRenderer creates a renderer that keeps only files whose display
// path ends in one of the given lowercase dot-prefixed extensions. An
// empty list falls back to DefaultExtensions.
func NewDiffRenderer(extensions []string) *DiffRenderer {
	if len(extensions) == 0 {
		extensions = DefaultExtensions()
	}
	lowered := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		lowered = append(lowered, ext)
	}
	return &DiffRenderer{extensions: lowered}
}

// Render draws the given diff files into the cursor's surface. Rendering
// is best effort and never fails: filtered-out or empty input simply draws
// nothing, and document default styling is restored on the way out.
func (r *DiffRenderer) Render(files []diff.File, cursor *Cursor) {
	kept := r.Filter(files)
	if len(kept) == 0 {
		return
	}

	surface := cursor.Surface()
	defer restoreDefaults(surface)

	contentWidth := surface.ContentWidth() - signColWidth - 2*numberColWidth
	if contentWidth < minContentWidth {
		contentWidth = minContentWidth
	}

	for _, file := range kept {
		if cursor.LimitReached() {
			r.truncationNotice(cursor)
			return
		}
		r.fileHeader(cursor, file.DisplayPath)

		for _, hunk := range file.Hunks {
			if cursor.LimitReached() {
				r.truncationNotice(cursor)
				return
			}
			r.hunkHeader(cursor, hunk.Header, contentWidth)

			oldNo := hunk.OldStart
			newNo := hunk.NewStart
			for _, line := range hunk.Lines {
				if cursor.LimitReached() {
					r.truncationNotice(cursor)
					return
				}
				r.bodyRow(cursor, line, &oldNo, &newNo, contentWidth)
				cursor.CountRow()
			}
		}
	}
}

// Filter returns the files whose display path ends with one of the
// renderer's extensions. Matching is case-insensitive.
func (r *DiffRenderer) Filter(files []diff.File) []diff.File {
	kept := make([]diff.File, 0, len(files))
	for _, file := range files {
		lower := strings.ToLower(file.DisplayPath)
		for _, ext := range r.extensions {
			if strings.HasSuffix(lower, ext) {
				kept = append(kept, file)
				break
			}
		}
	}
	return kept
}

func (r *DiffRenderer) fileHeader(cursor *Cursor, path string) {
	surface := cursor.Surface()
	cursor.EnsureRoom(fileHeaderRoom)
	surface.SetFont(DefaultFontFamily, "B", 9)
	surface.SetFillColor(fileHeaderFill.r, fileHeaderFill.g, fileHeaderFill.b)
	surface.SetTextColor(contextText.r, contextText.g, contextText.b)
	surface.Cell(surface.ContentWidth(), fileHeaderHeight, Sanitize(path), "L", true, true)
}

func (r *DiffRenderer) hunkHeader(cursor *Cursor, header string, contentWidth float64) {
	surface := cursor.Surface()
	cursor.EnsureRoom(hunkHeaderRoom)
	surface.SetFont(monoFamily, "", monoSize)
	surface.SetFillColor(hunkFill.r, hunkFill.g, hunkFill.b)
	surface.SetTextColor(hunkText.r, hunkText.g, hunkText.b)
	text := TruncateToWidth(surface, Sanitize(header), surface.ContentWidth()-2)
	surface.Cell(surface.ContentWidth(), hunkRowHeight, text, "L", true, true)
}

// bodyRow emits one diff line as a single visual row: sign, old line
// number, new line number, truncated content. Additions advance only the
// new counter, deletions only the old one, context rows both.
func (r *DiffRenderer) bodyRow(cursor *Cursor, line diff.Line, oldNo, newNo *int, contentWidth float64) {
	surface := cursor.Surface()
	if cursor.EnsureRoom(bodyRowRoom) {
		surface.SetFont(monoFamily, "", monoSize)
	}

	var sign, oldCol, newCol string
	var fill, text rgb
	switch line.Type {
	case diff.LineAddition:
		sign = "+"
		newCol = strconv.Itoa(*newNo)
		*newNo++
		fill, text = additionFill, additionText
	case diff.LineDeletion:
		sign = "-"
		oldCol = strconv.Itoa(*oldNo)
		*oldNo++
		fill, text = deletionFill, deletionText
	default:
		oldCol = strconv.Itoa(*oldNo)
		newCol = strconv.Itoa(*newNo)
		*oldNo++
		*newNo++
		fill, text = contextFill, contextText
	}

	surface.SetFillColor(fill.r, fill.g, fill.b)
	surface.SetTextColor(text.r, text.g, text.b)

	content := TruncateToWidth(surface, Sanitize(line.Content), contentWidth-2)
	surface.Cell(signColWidth, bodyRowHeight, sign, "C", true, false)
	surface.Cell(numberColWidth, bodyRowHeight, oldCol, "R", true, false)
	surface.Cell(numberColWidth, bodyRowHeight, newCol, "R", true, false)
	surface.Cell(contentWidth, bodyRowHeight, content, "L", true, true)
}

// truncationNotice marks that the line budget was hit. Emitted at most
// once per document even when several diff sections share the cursor.
func (r *DiffRenderer) truncationNotice(cursor *Cursor) {
	if !cursor.markNoticeShown() {
		return
	}
	surface := cursor.Surface()
	cursor.EnsureRoom(bodyRowRoom)
	surface.SetFont(DefaultFontFamily, "I", 8)
	surface.SetTextColor(noticeText.r, noticeText.g, noticeText.b)
	surface.Cell(surface.ContentWidth(), bodyRowHeight, "[diff truncated]", "L", false, true)
}

func restoreDefaults(surface Surface) {
	surface.SetFont(DefaultFontFamily, "", DefaultFontSize)
	surface.SetTextColor(0, 0, 0)
	surface.SetFillColor(255, 255, 255)
}

// TruncateToWidth returns text unchanged when it fits in width, otherwise
// the longest prefix that still fits with the ellipsis marker appended.
// The search is binary over the prefix length in runes.
func TruncateToWidth(surface Surface, text string, width float64) string {
	if surface.StringWidth(text) <= width {
		return text
	}

	runes := []rune(text)
	lo, hi := 0, len(runes)
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if surface.StringWidth(string(runes[:mid])+ellipsis) <= width {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return string(runes[:lo]) + ellipsis
}
