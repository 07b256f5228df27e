package render

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// placeholder replaces characters that survive substitution and
// decomposition but still fall outside the output charset.
const placeholder = "?"

// substitutions maps common symbols to ASCII-safe equivalents. Applied in
// order before the lossy fallback.
var substitutions = []struct {
	from string
	to   string
}{
	{"…", "..."}, // ellipsis
	{"—", "--"},  // em dash
	{"–", "-"},   // en dash
	{"‒", "-"},   // figure dash
	{"•", "*"},   // bullet
	{"●", "*"},   // black circle
	{"◦", "*"},   // white bullet
	{"✓", "v"},   // check mark
	{"✔", "v"},   // heavy check mark
	{"✗", "x"},   // ballot x
	{"✘", "x"},   // heavy ballot x
	{"→", "->"},  // rightwards arrow
	{"←", "<-"},  // leftwards arrow
	{"⇒", "=>"},  // rightwards double arrow
	{"‘", "'"},   // left single quote
	{"’", "'"},   // right single quote
	{"“", `"`},   // left double quote
	{"”", `"`},   // right double quote
	{"«", `"`},   // left guillemet
	{"»", `"`},   // right guillemet
	{" ", " "},   // non-breaking space
	{"\t", "    "},
	{"\r", ""},
}

// decompose strips combining marks after canonical decomposition, so that
// accented letters reduce to their base letter instead of the placeholder.
var decompose = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Sanitize narrows arbitrary text into the restricted charset the document
// fonts can represent. Common symbols become ASCII lookalikes, accented
// letters lose their marks, and whatever remains unrepresentable is
// replaced with a placeholder. Sanitize is idempotent and never fails.
func Sanitize(text string) string {
	if representable(text) {
		return text
	}

	for _, sub := range substitutions {
		text = strings.ReplaceAll(text, sub.from, sub.to)
	}

	if stripped, _, err := transform.String(decompose, text); err == nil {
		text = stripped
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if representableRune(r) {
			b.WriteRune(r)
		} else {
			b.WriteString(placeholder)
		}
	}
	return b.String()
}

func representable(text string) bool {
	for _, r := range text {
		if !representableRune(r) {
			return false
		}
	}
	return true
}

func representableRune(r rune) bool {
	return (r >= 0x20 && r < 0x7f) || r == '\n'
}
