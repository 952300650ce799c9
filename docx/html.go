package docx

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/aerissecure/sorttable/constants"
)

// DebugHTML adds the resolved paragraph and run styles as data attributes.
var DebugHTML bool

// DocxToHTML converts a DOCX document to HTML. Every table is rendered as a
// sortable table.
func DocxToHTML(r io.ReaderAt, size int64) (string, error) {
	ir, err := ParseDocumentModel(r, size)
	if err != nil {
		return "", err
	}
	return RenderDocumentHTML(ir), nil
}

func renderRunsHTML(b *strings.Builder, runs []RenderRun) {
	for _, run := range runs {
		if run.Text == "" {
			continue
		}
		text := strings.ReplaceAll(html.EscapeString(run.Text), "\n", "<br>")
		if DebugHTML {
			fmt.Fprintf(b, "<span data-run-style=\"%s\">", html.EscapeString(run.Style.String()))
		}
		if run.Style.Bold {
			b.WriteString("<b>")
		}
		if run.Style.Italic {
			b.WriteString("<i>")
		}
		b.WriteString(text)
		if run.Style.Italic {
			b.WriteString("</i>")
		}
		if run.Style.Bold {
			b.WriteString("</b>")
		}
		if DebugHTML {
			b.WriteString("</span>")
		}
	}
}

func renderParagraphHTML(b *strings.Builder, p RenderParagraph) {
	tag := "p"
	if p.Style.HeadingLevel > 0 {
		tag = fmt.Sprintf("h%d", p.Style.HeadingLevel)
	}
	debugAttr := ""
	if DebugHTML {
		debugAttr = fmt.Sprintf(" data-para-style=\"%s\"", html.EscapeString(p.Style.String()))
	}
	fmt.Fprintf(b, "<%s%s>", tag, debugAttr)
	renderRunsHTML(b, p.Runs)
	fmt.Fprintf(b, "</%s>\n", tag)
}

func renderRowHTML(b *strings.Builder, row *RenderTableRow, tag string) {
	fmt.Fprintf(b, "    <tr data-row=\"%d\">\n", row.Number)
	for _, cell := range row.Cells {
		attrs := ""
		if cell.ColSpan > 1 {
			attrs += fmt.Sprintf(" colspan=\"%d\"", cell.ColSpan)
		}
		if cell.RowSpan > 1 {
			attrs += fmt.Sprintf(" rowspan=\"%d\"", cell.RowSpan)
		}
		fmt.Fprintf(b, "      <%s%s>", tag, attrs)
		// a single plain paragraph renders inline so the cell text stays flat
		if len(cell.Paragraphs) == 1 && cell.Paragraphs[0].Style.HeadingLevel == 0 {
			renderRunsHTML(b, cell.Paragraphs[0].Runs)
		} else {
			for _, p := range cell.Paragraphs {
				renderParagraphHTML(b, p)
			}
		}
		fmt.Fprintf(b, "</%s>\n", tag)
	}
	b.WriteString("    </tr>\n")
}

func renderTableHTML(b *strings.Builder, t *RenderTable) {
	fmt.Fprintf(b, "<table class=\"table %s\">\n", constants.SortableClass)
	head := min(t.HeaderRows, len(t.Rows))
	if head > 0 {
		b.WriteString("  <thead>\n")
		for _, row := range t.Rows[:head] {
			renderRowHTML(b, row, "th")
		}
		b.WriteString("  </thead>\n")
	}
	b.WriteString("  <tbody>\n")
	for _, row := range t.Rows[head:] {
		renderRowHTML(b, row, "td")
	}
	b.WriteString("  </tbody>\n</table>\n")
}

// RenderDocumentHTML converts the DocumentModel into an HTML page.
func RenderDocumentHTML(m DocumentModel) string {
	var b strings.Builder
	b.WriteString("<html><head><style>\n")
	b.WriteString(".table { border-collapse: collapse; margin-bottom: 1em; }\n")
	b.WriteString(".table td, .table th { border: 1px solid #333; padding: 4px; }\n")
	b.WriteString("</style></head><body>\n")
	for _, blk := range m.Blocks {
		switch {
		case blk.Paragraph != nil:
			renderParagraphHTML(&b, *blk.Paragraph)
		case blk.Table != nil:
			renderTableHTML(&b, blk.Table)
		}
	}
	b.WriteString("</body></html>\n")
	return b.String()
}
