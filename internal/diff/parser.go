package diff

import (
	"strconv"
	"strings"
)

// LineType represents the type of a line in a diff.
type LineType int

const (
	// LineContext represents an unchanged context line (starts with ' ').
	LineContext LineType = iota
	// LineAddition represents an added line (starts with '+').
	LineAddition
	// LineDeletion represents a deleted line (starts with '-').
	LineDeletion
)

// Line represents a single body line in a diff hunk.
type Line struct {
	Type    LineType // The type of change
	Content string   // The line content (without the prefix)
}

// Hunk represents a single @@ hunk in a unified diff.
// OldStart and NewStart are the line numbers the first body line maps to in
// the old and new file; malformed headers leave them zero.
type Hunk struct {
	Header   string // The raw @@ header line
	OldStart int    // Starting line in old file
	OldLines int    // Number of lines from old file
	NewStart int    // Starting line in new file
	NewLines int    // Number of lines in new file
	Lines    []Line // The lines in this hunk
}

// File represents one file section of a multi-file diff, in order of
// appearance in the diff stream.
type File struct {
	DisplayPath string // Path shown to the reader (new path, or old when absent)
	OldPath     string // The a/ path from the file marker
	NewPath     string // The b/ path from the file marker
	Hunks       []Hunk
}

const fileMarker = "diff --git "

// Parse parses multi-file unified diff text into file sections.
// Empty input yields an empty result; a file section with no hunks is
// still emitted. Parse never fails.
func Parse(diffText string) []File {
	if diffText == "" {
		return nil
	}

	var files []File
	var current *File

	for _, line := range strings.Split(diffText, "\n") {
		// File marker starts a new section and closes the previous one.
		if strings.HasPrefix(line, fileMarker) {
			if current != nil {
				files = append(files, *current)
			}
			current = newFile(line)
			continue
		}

		if current == nil {
			continue
		}

		// Hunk header opens a new hunk on the current file.
		if strings.HasPrefix(line, "@@") {
			current.Hunks = append(current.Hunks, parseHunkHeader(line))
			continue
		}

		// Body lines only exist inside an open hunk; anything seen before
		// the first hunk ("index ...", "--- a/...", "+++ b/...") is file
		// metadata and is skipped.
		if len(current.Hunks) == 0 || line == "" {
			continue
		}
		hunk := &current.Hunks[len(current.Hunks)-1]

		switch line[0] {
		case '+':
			hunk.Lines = append(hunk.Lines, Line{Type: LineAddition, Content: line[1:]})
		case '-':
			hunk.Lines = append(hunk.Lines, Line{Type: LineDeletion, Content: line[1:]})
		case ' ':
			hunk.Lines = append(hunk.Lines, Line{Type: LineContext, Content: line[1:]})
		}
	}

	if current != nil {
		files = append(files, *current)
	}
	return files
}

// newFile builds a File from a "diff --git a/<path> b/<path>" marker line.
// When the b/ path is missing the a/ path serves as the display name.
func newFile(line string) *File {
	file := &File{}
	for _, token := range strings.Fields(line[len(fileMarker):]) {
		switch {
		case strings.HasPrefix(token, "a/"):
			file.OldPath = token[2:]
		case strings.HasPrefix(token, "b/"):
			file.NewPath = token[2:]
		}
	}
	file.DisplayPath = file.NewPath
	if file.DisplayPath == "" {
		file.DisplayPath = file.OldPath
	}
	return file
}

// parseHunkHeader parses a hunk header line like "@@ -10,7 +10,8 @@ optional context".
// Any parse failure leaves the affected fields at zero rather than erroring.
func parseHunkHeader(line string) Hunk {
	hunk := Hunk{Header: line}

	// Find the @@ markers
	parts := strings.Split(line, "@@")
	if len(parts) < 2 {
		return hunk
	}

	// Parse the range info between @@ markers
	rangeInfo := strings.TrimSpace(parts[1])
	for _, part := range strings.Fields(rangeInfo) {
		if strings.HasPrefix(part, "-") {
			hunk.OldStart, hunk.OldLines = parseRange(strings.TrimPrefix(part, "-"))
		} else if strings.HasPrefix(part, "+") {
			hunk.NewStart, hunk.NewLines = parseRange(strings.TrimPrefix(part, "+"))
		}
	}

	return hunk
}

// parseRange parses "start,count" or "start" format.
func parseRange(s string) (start, count int) {
	if idx := strings.Index(s, ","); idx >= 0 {
		start, _ = strconv.Atoi(s[:idx])
		count, _ = strconv.Atoi(s[idx+1:])
	} else {
		start, _ = strconv.Atoi(s)
		count = 1
	}
	return
}
