package xlsx

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/aerissecure/sorttable/constants"
)

// DebugHTML adds each cell's resolved style as a data attribute.
var DebugHTML bool

// XLSXToHTML converts a workbook to HTML with one sortable table per sheet.
func XLSXToHTML(r io.ReaderAt, size int64) (string, error) {
	m, err := ParseWorkbookModel(r, size)
	if err != nil {
		return "", err
	}
	return RenderWorkbookHTML(m), nil
}

// tally counts property values across cells.
type tally[K comparable] map[K]int

// dominant returns the value held by more than half of total cells.
func (t tally[K]) dominant(total int) (K, bool) {
	for k, n := range t {
		if n > total/2 {
			return k, true
		}
	}
	var zero K
	return zero, false
}

// defaultStyle picks, per property, the value most cells share so that
// per-cell classes only carry the differences.
func defaultStyle(m WorkbookModel) CellStyle {
	var (
		family, fontColor, bg, border, hAlign, vAlign tally[string]
		size                                          tally[float64]
		wrap                                          tally[bool]
	)
	family, fontColor, bg, border, hAlign, vAlign = tally[string]{}, tally[string]{}, tally[string]{}, tally[string]{}, tally[string]{}, tally[string]{}
	size, wrap = tally[float64]{}, tally[bool]{}

	total := 0
	for _, sheet := range m.Sheets {
		for _, row := range sheet.Rows {
			for _, c := range row.Cells {
				if c == nil {
					continue
				}
				total++
				st := c.Style
				family[st.FontFamily]++
				size[st.FontSizePt]++
				fontColor[st.FontColor]++
				bg[st.BackgroundColor]++
				border[st.BorderColor]++
				hAlign[st.HorizontalAlign]++
				vAlign[st.VerticalAlign]++
				wrap[st.WrapText]++
			}
		}
	}

	var def CellStyle
	def.FontFamily, _ = family.dominant(total)
	def.FontSizePt, _ = size.dominant(total)
	def.FontColor, _ = fontColor.dominant(total)
	def.BackgroundColor, _ = bg.dominant(total)
	def.BorderColor, _ = border.dominant(total)
	def.HorizontalAlign, _ = hAlign.dominant(total)
	def.VerticalAlign, _ = vAlign.dominant(total)
	def.WrapText, _ = wrap.dominant(total)
	return def
}

func textAlign(h string) string {
	switch h {
	case "center", "centerContinuous", "distributed":
		return "text-align:center;"
	case "right":
		return "text-align:right;"
	case "justify":
		return "text-align:justify;"
	}
	return "text-align:left;"
}

func verticalAlign(v string) string {
	switch v {
	case "top":
		return "vertical-align:top;"
	case "middle":
		return "vertical-align:middle;"
	}
	return "vertical-align:bottom;"
}

// cssDiff returns the declarations of s that differ from def.
func cssDiff(s, def CellStyle) string {
	var b strings.Builder
	if s.FontFamily != "" && s.FontFamily != def.FontFamily {
		fmt.Fprintf(&b, "font-family:'%s';", s.FontFamily)
	}
	if s.FontSizePt > 0 && s.FontSizePt != def.FontSizePt {
		fmt.Fprintf(&b, "font-size:%.1fpt;", s.FontSizePt)
	}
	if s.FontColor != "" && s.FontColor != def.FontColor {
		fmt.Fprintf(&b, "color:#%s;", s.FontColor)
	}
	if s.BackgroundColor != "" && s.BackgroundColor != def.BackgroundColor {
		fmt.Fprintf(&b, "background-color:#%s;", s.BackgroundColor)
	}
	if s.BorderColor != "" && s.BorderColor != def.BorderColor {
		fmt.Fprintf(&b, "border:1px solid #%s;", s.BorderColor)
	}
	if s.HorizontalAlign != "" && s.HorizontalAlign != def.HorizontalAlign {
		b.WriteString(textAlign(s.HorizontalAlign))
	}
	if s.VerticalAlign != "" && s.VerticalAlign != def.VerticalAlign {
		b.WriteString(verticalAlign(s.VerticalAlign))
	}
	if s.WrapText != def.WrapText {
		if s.WrapText {
			b.WriteString("white-space:normal;")
		} else {
			b.WriteString("white-space:nowrap;overflow:hidden;")
		}
	}
	if s.IndentPx > 0 {
		side := "left"
		if s.HorizontalAlign == "right" {
			side = "right"
		}
		fmt.Fprintf(&b, "padding-%s:%.0fpx;", side, s.IndentPx)
	}
	return b.String()
}

// RenderWorkbookHTML converts the IR into an HTML string. Each sheet becomes a
// sortable table: header rows go in <thead>, numeric cells carry their raw
// value as the sort key.
func RenderWorkbookHTML(m WorkbookModel) string {
	def := defaultStyle(m)

	classes := make(map[CellStyle]string)
	var css strings.Builder
	for _, sheet := range m.Sheets {
		for _, row := range sheet.Rows {
			for _, c := range row.Cells {
				if c == nil {
					continue
				}
				if _, ok := classes[c.Style]; ok {
					continue
				}
				name := fmt.Sprintf("cellstyle%d", len(classes)+1)
				classes[c.Style] = name
				if diff := cssDiff(c.Style, def); diff != "" {
					fmt.Fprintf(&css, ".%s { %s }\n", name, diff)
				}
			}
		}
	}

	var b strings.Builder
	b.WriteString("<style>\n")
	b.WriteString(".table { border-collapse: collapse; table-layout: fixed; margin-bottom: 2em; }\n")
	b.WriteString(".table td, .table th { padding: 4px 8px;")
	if def.FontFamily != "" {
		fmt.Fprintf(&b, " font-family:'%s';", def.FontFamily)
	}
	if def.FontSizePt > 0 {
		fmt.Fprintf(&b, " font-size:%.1fpt;", def.FontSizePt)
	}
	if def.FontColor != "" {
		fmt.Fprintf(&b, " color:#%s;", def.FontColor)
	}
	if def.BackgroundColor != "" {
		fmt.Fprintf(&b, " background-color:#%s;", def.BackgroundColor)
	}
	border := def.BorderColor
	if border == "" {
		border = "333"
	}
	fmt.Fprintf(&b, " border:1px solid #%s;", border)
	if !def.WrapText {
		b.WriteString(" white-space:nowrap; overflow:hidden;")
	}
	if def.HorizontalAlign != "" {
		b.WriteString(" " + textAlign(def.HorizontalAlign))
	}
	if def.VerticalAlign != "" {
		b.WriteString(" " + verticalAlign(def.VerticalAlign))
	}
	b.WriteString(" }\n.sheet { margin-bottom: 2em; }\n")
	b.WriteString(css.String())
	b.WriteString("</style>\n")

	for _, sheet := range m.Sheets {
		renderSheet(&b, sheet, classes)
	}
	return b.String()
}

func renderSheet(b *strings.Builder, sheet RenderSheet, classes map[CellStyle]string) {
	totalPx := 0.0
	for _, w := range sheet.ColWidths {
		totalPx += w
	}
	fmt.Fprintf(b, "<div class=\"sheet\" data-name=\"%s\">\n", html.EscapeString(sheet.Name))
	b.WriteString("<div style=\"width:100%;overflow-x:auto;\">\n")
	fmt.Fprintf(b, "<table class=\"table %s\" style=\"width:%.0fpx;\">\n", constants.SortableClass, totalPx)
	b.WriteString("  <colgroup>\n")
	for i, w := range sheet.ColWidths {
		if sheet.ColHidden[i] {
			b.WriteString("    <col style=\"display:none;\">\n")
			continue
		}
		fmt.Fprintf(b, "    <col style=\"width:%.0fpx;\">\n", w)
	}
	b.WriteString("  </colgroup>\n")

	head := min(sheet.HeaderRows, len(sheet.Rows))
	if head > 0 {
		b.WriteString("  <thead>\n")
		for _, row := range sheet.Rows[:head] {
			renderRow(b, row, "th", classes)
		}
		b.WriteString("  </thead>\n")
	}
	b.WriteString("  <tbody>\n")
	for _, row := range sheet.Rows[head:] {
		renderRow(b, row, "td", classes)
	}
	b.WriteString("  </tbody>\n")
	b.WriteString("</table>\n</div>\n</div>\n")
}

func renderRow(b *strings.Builder, row *RenderRow, tag string, classes map[CellStyle]string) {
	style := fmt.Sprintf("height:%.0fpx;", row.HeightPx)
	if row.Hidden {
		style += "display:none;"
	}
	fmt.Fprintf(b, "    <tr data-row=\"%d\" style=\"%s\">\n", row.Number, style)
	for colIdx := 0; colIdx < len(row.Cells); colIdx++ {
		c := row.Cells[colIdx]
		if c == nil {
			fmt.Fprintf(b, "      <%s></%s>\n", tag, tag)
			continue
		}
		var attrs strings.Builder
		fmt.Fprintf(&attrs, " data-cell=\"%s\"", c.Ref)
		if c.ColSpan > 1 {
			fmt.Fprintf(&attrs, " colspan=\"%d\"", c.ColSpan)
		}
		if c.RowSpan > 1 {
			fmt.Fprintf(&attrs, " rowspan=\"%d\"", c.RowSpan)
		}
		if c.SortKey != "" && tag == "td" {
			fmt.Fprintf(&attrs, " %s=\"%s\"", constants.SortKeyAttr, html.EscapeString(c.SortKey))
		}
		fmt.Fprintf(&attrs, " class=\"%s\"", classes[c.Style])
		if DebugHTML {
			fmt.Fprintf(&attrs, " data-cell-style=\"%s\"", html.EscapeString(c.Style.String()))
		}
		// Excel stores explicit line breaks as \n; preserve them in HTML
		text := strings.ReplaceAll(html.EscapeString(c.Value), "\n", "<br>")
		fmt.Fprintf(b, "      <%s%s>%s</%s>\n", tag, attrs.String(), text, tag)
		// skip over columns covered by this cell's colspan
		if c.ColSpan > 1 {
			colIdx += c.ColSpan - 1
		}
	}
	b.WriteString("    </tr>\n")
}
