package docx

import (
	"fmt"
	"strings"

	"github.com/unidoc/unioffice/document"
)

// Intermediate representation for DOCX. Only the text structure and the
// formatting the renderer emits are kept.

// RunStyle captures the character formatting for a run of text.
type RunStyle struct {
	Bold   bool
	Italic bool
}

func (s RunStyle) String() string {
	return fmt.Sprintf("Bold: %t, Italic: %t", s.Bold, s.Italic)
}

// RenderRun represents a single run (<w:r>) within a paragraph.
type RenderRun struct {
	Run   document.Run
	Text  string
	Style RunStyle
}

func (r RenderRun) String() string {
	return fmt.Sprintf("Text: %q, Style: [%s]", r.Text, r.Style)
}

// ParagraphStyle captures paragraph-level formatting.
type ParagraphStyle struct {
	Name         string // style ID, e.g. "Heading2"
	HeadingLevel int    // 0 for body text, 1-6 for headings
}

func (s ParagraphStyle) String() string {
	return fmt.Sprintf("Name: %s, HeadingLevel: %d", s.Name, s.HeadingLevel)
}

// RenderParagraph is the IR for a paragraph.
type RenderParagraph struct {
	Runs  []RenderRun
	Style ParagraphStyle
}

// Text joins the paragraph's runs.
func (p RenderParagraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

func (p RenderParagraph) String() string {
	return fmt.Sprintf("Runs: %d, Style: [%s]", len(p.Runs), p.Style)
}

// RenderTableCell is the IR for a single table cell. It can hold several
// paragraphs.
type RenderTableCell struct {
	Paragraphs []RenderParagraph
	ColSpan    int // 1 if not horizontally merged
	RowSpan    int // 1 if not vertically merged
}

func (c RenderTableCell) String() string {
	return fmt.Sprintf("Paragraphs: %d, ColSpan: %d, RowSpan: %d", len(c.Paragraphs), c.ColSpan, c.RowSpan)
}

// RenderTableRow is a row of a table. Cells covered by a vertical merge are
// left out; their master carries the RowSpan.
type RenderTableRow struct {
	Number int // 1-based position in the source table
	Cells  []*RenderTableCell
}

func (r RenderTableRow) String() string {
	return fmt.Sprintf("Number: %d, Cells: %d", r.Number, len(r.Cells))
}

// RenderTable is the IR for a table. The first HeaderRows rows are column
// headers; the rest are the sortable body.
type RenderTable struct {
	HeaderRows int
	Rows       []*RenderTableRow
}

// Columns is the widest row's cell count.
func (t RenderTable) Columns() int {
	n := 0
	for _, r := range t.Rows {
		n = max(n, len(r.Cells))
	}
	return n
}

func (t RenderTable) String() string {
	return fmt.Sprintf("HeaderRows: %d, Rows: %d", t.HeaderRows, len(t.Rows))
}

// DocumentBlock is a top-level block of the body. Exactly one of
// Paragraph and Table is set.
type DocumentBlock struct {
	Paragraph *RenderParagraph
	Table     *RenderTable
}

// DocumentModel is the body as a sequence of blocks, plus every table in
// document order. Tables and the Table blocks share pointers.
type DocumentModel struct {
	Blocks []DocumentBlock
	Tables []*RenderTable
}

func (d DocumentModel) String() string {
	return fmt.Sprintf("Blocks: %d, Tables: %d", len(d.Blocks), len(d.Tables))
}
