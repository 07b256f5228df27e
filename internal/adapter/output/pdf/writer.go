// Package pdf renders activity summaries into a paginated PDF document,
// including the colored diff view for merged pull requests.
package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"github.com/bkyoung/gh-summary/internal/diff"
	"github.com/bkyoung/gh-summary/internal/domain"
	"github.com/bkyoung/gh-summary/internal/render"
)

// Options configures the diff view embedded in the document.
type Options struct {
	IncludeDiffs   bool
	MaxDiffLines   int
	DiffExtensions []string
}

// Writer renders summaries into PDF files.
type Writer struct {
	opts Options
}

// NewWriter constructs a PDF writer.
func NewWriter(opts Options) *Writer {
	return &Writer{opts: opts}
}

// Write persists a PDF artifact to disk and returns its path.
func (w *Writer) Write(ctx context.Context, artifact domain.Artifact) (string, error) {
	if err := os.MkdirAll(artifact.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	doc := newDocument(w.opts)
	doc.addPullRequests(artifact.Summary.PullRequests)
	doc.addCommits(artifact.Summary.Commits)

	path := filepath.Join(artifact.OutputDir, artifact.Filename+".pdf")
	if err := doc.save(path); err != nil {
		return "", fmt.Errorf("write pdf: %w", err)
	}
	return path, nil
}

// document composes the summary sections and doubles as the render.Surface
// the diff renderer draws into.
type document struct {
	pdf          *fpdf.Fpdf
	renderer     *render.DiffRenderer
	cursor       *render.Cursor
	includeDiffs bool
}

func newDocument(opts Options) *document {
	p := fpdf.New("P", "mm", "A4", "")
	p.SetFont(render.DefaultFontFamily, "", render.DefaultFontSize)
	p.SetAutoPageBreak(true, 15)

	d := &document{pdf: p, includeDiffs: opts.IncludeDiffs}
	d.renderer = render.NewDiffRenderer(opts.DiffExtensions)
	d.cursor = render.NewCursor(d, opts.MaxDiffLines)
	return d
}

func (d *document) save(path string) error {
	return d.pdf.OutputFileAndClose(path)
}

// addCommits renders the commits section. Empty input renders nothing.
func (d *document) addCommits(commits []domain.Commit) {
	if len(commits) == 0 {
		return
	}

	d.sectionTitle("Commits Summary", fmt.Sprintf("Total Commits: %d", len(commits)))

	for i, commit := range commits {
		d.addCommit(commit, i+1)
		if i < len(commits)-1 {
			d.pdf.Ln(3)
		}
	}
}

func (d *document) addCommit(commit domain.Commit, index int) {
	_, pageHeight := d.pdf.GetPageSize()
	if d.pdf.GetY() > pageHeight-60 {
		d.pdf.AddPage()
	}

	d.pdf.SetFont(render.DefaultFontFamily, "B", 12)
	d.cell(8, fmt.Sprintf("Commit #%d", index))

	d.pdf.SetFont(render.DefaultFontFamily, "B", 10)
	d.cell(6, "Repository: "+render.Sanitize(commit.RepoName))

	d.pdf.SetFont(render.DefaultFontFamily, "", 10)
	d.pdf.SetTextColor(100, 100, 100)
	d.cell(6, "Commit ID: "+commit.SHA)
	d.pdf.SetTextColor(0, 0, 0)

	d.cell(6, "Date: "+formatTimestamp(commit.Date))
	d.cell(6, "Author: "+render.Sanitize(commit.Author))

	d.pdf.Ln(2)
	d.pdf.SetFont(render.DefaultFontFamily, "B", 10)
	d.cell(6, "Message:")
	d.pdf.SetFont(render.DefaultFontFamily, "", 10)
	for _, line := range wrapText(render.Sanitize(commit.Message), wrapWidth) {
		d.cell(5, line)
	}

	d.link(4, "URL: "+commit.HTMLURL)
	d.separator()
}

// addPullRequests renders the pull requests section, with the diff view
// after each item when enabled. Empty input renders nothing.
func (d *document) addPullRequests(prs []domain.PullRequest) {
	if len(prs) == 0 {
		return
	}

	d.sectionTitle("Pull Requests Summary", fmt.Sprintf("Total Pull Requests: %d", len(prs)))

	for i, pr := range prs {
		d.addPullRequest(pr, i+1)
		if i < len(prs)-1 {
			d.pdf.Ln(3)
		}
	}
}

func (d *document) addPullRequest(pr domain.PullRequest, index int) {
	_, pageHeight := d.pdf.GetPageSize()
	if d.pdf.GetY() > pageHeight-80 {
		d.pdf.AddPage()
	}

	d.pdf.SetFont(render.DefaultFontFamily, "B", 12)
	d.cell(8, fmt.Sprintf("Pull Request #%d", index))

	d.pdf.SetFont(render.DefaultFontFamily, "B", 10)
	d.cell(6, "Repository: "+render.Sanitize(pr.RepoName()))

	d.pdf.SetFont(render.DefaultFontFamily, "B", 11)
	d.cell(6, "Title:")
	d.pdf.SetFont(render.DefaultFontFamily, "", 10)
	for _, line := range wrapText(render.Sanitize(pr.Title), wrapWidth) {
		d.cell(5, line)
	}

	if pr.MergedAt != "" {
		d.pdf.SetFont(render.DefaultFontFamily, "", 10)
		d.cell(6, "Merged: "+formatTimestamp(pr.MergedAt))
	}

	if pr.Body != "" {
		d.pdf.Ln(2)
		d.pdf.SetFont(render.DefaultFontFamily, "B", 10)
		d.cell(6, "Description:")
		d.pdf.SetFont(render.DefaultFontFamily, "", 10)
		for _, line := range wrapText(render.Sanitize(pr.Body), wrapWidth) {
			d.cell(5, line)
		}
	}

	d.link(4, "PR URL: "+pr.HTMLURL)
	d.link(4, "Diff URL: "+pr.DiffURL)

	if d.includeDiffs && pr.Diff != "" {
		d.pdf.Ln(2)
		d.renderer.Render(diff.Parse(pr.Diff), d.cursor)
	}

	d.separator()
}

func (d *document) sectionTitle(title, count string) {
	d.pdf.AddPage()
	d.pdf.SetFont(render.DefaultFontFamily, "B", 16)
	d.pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	d.pdf.Ln(5)

	d.pdf.SetFont(render.DefaultFontFamily, "", 12)
	d.cell(8, count)
	d.pdf.Ln(5)
}

func (d *document) cell(h float64, text string) {
	d.pdf.CellFormat(0, h, text, "", 1, "L", false, 0, "")
}

func (d *document) link(h float64, text string) {
	d.pdf.Ln(2)
	d.pdf.SetFont(render.DefaultFontFamily, "", 8)
	d.pdf.SetTextColor(0, 0, 255)
	d.pdf.CellFormat(0, h, text, "", 1, "L", false, 0, "")
	d.pdf.SetTextColor(0, 0, 0)
	d.pdf.SetFont(render.DefaultFontFamily, "", 10)
}

func (d *document) separator() {
	d.pdf.Ln(2)
	pageWidth, _ := d.pdf.GetPageSize()
	y := d.pdf.GetY()
	d.pdf.Line(10, y, pageWidth-10, y)
}
