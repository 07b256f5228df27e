// Package diff parses multi-file unified diff text into structured types
// for rendering.
//
// The parser is deliberately forgiving: malformed hunk headers degrade to
// zeroed line numbers, metadata lines are skipped, and garbage input yields
// at worst an empty result. It never returns an error, matching the
// best-effort nature of the diff fetch that feeds it.
package diff
