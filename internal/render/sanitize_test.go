package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bkyoung/gh-summary/internal/render"
)

func TestSanitizePassesCleanTextUnchanged(t *testing.T) {
	tests := []string{
		"",
		"plain ascii text",
		"symbols !@#$%^&*() are fine",
		"multi\nline\ntext",
	}
	for _, input := range tests {
		assert.Equal(t, input, render.Sanitize(input))
	}
}

func TestSanitizeSubstitutions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"ellipsis", "wait…", "wait..."},
		{"em dash", "a—b", "a--b"},
		{"en dash", "1–2", "1-2"},
		{"bullet", "• item", "* item"},
		{"check mark", "✓ done", "v done"},
		{"ballot x", "✗ failed", "x failed"},
		{"arrow", "a → b", "a -> b"},
		{"smart quotes", "“hi” and ‘lo’", `"hi" and 'lo'`},
		{"nbsp", "a b", "a b"},
		{"tab", "a\tb", "a    b"},
		{"accented letters", "café résumé", "cafe resume"},
		{"unsupported emoji", "ship \U0001f680 it", "ship ? it"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render.Sanitize(tt.input))
		})
	}
}

func TestSanitizeEntirelyUnsupportedInput(t *testing.T) {
	got := render.Sanitize("\U0001f600\U0001f601\U0001f602")
	assert.Equal(t, "???", got)
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"wait… café → \U0001f680",
		"\U0001f600\U0001f601",
		"“quoted” text\t•",
	}
	for _, input := range inputs {
		once := render.Sanitize(input)
		assert.Equal(t, once, render.Sanitize(once), "input %q", input)
	}
}
