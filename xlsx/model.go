package xlsx

import (
	"fmt"

	"github.com/unidoc/unioffice/spreadsheet"
)

// Intermediate representation for XLSX.

// Pixel values are floats to allow fractional widths/heights if desired.

// CellStyle captures the limited set of Excel styles we currently support.
type CellStyle struct {
	FontFamily      string  // e.g. "Calibri"
	FontSizePt      float64 // original size in points
	FontColor       string  // "RRGGBB"
	BackgroundColor string  // "RRGGBB"
	BorderColor     string  // we use left-border color as representative
	HorizontalAlign string  // left|center|right|justify
	VerticalAlign   string  // top|middle|bottom
	WrapText        bool
	IndentPx        float64 // computed indent in pixels
}

func (s CellStyle) String() string {
	return fmt.Sprintf("FontFamily: %s, FontSizePt: %.1f, FontColor: %s, BackgroundColor: %s, HorizontalAlign: %s, WrapText: %t",
		s.FontFamily, s.FontSizePt, s.FontColor, s.BackgroundColor, s.HorizontalAlign, s.WrapText)
}

// RenderCell is the IR for a single cell (or merged master).
type RenderCell struct {
	Cell    spreadsheet.Cell
	Ref     string    // e.g. "A1"
	Value   string    // already formatted value, what a reader sees
	SortKey string    // raw value for numeric cells, "" otherwise
	ColSpan int       // 1 if not merged
	RowSpan int       // 1 if not merged
	Style   CellStyle // resolved style
}

func (c RenderCell) String() string {
	return fmt.Sprintf("Ref: %s, Value: %q, SortKey: %q, ColSpan: %d, RowSpan: %d", c.Ref, c.Value, c.SortKey, c.ColSpan, c.RowSpan)
}

// RenderRow represents one logical row in a sheet.
type RenderRow struct {
	Number   int     // 1-based row number in the source sheet
	HeightPx float64 // resolved height in px
	Hidden   bool
	Cells    []*RenderCell // length == ColCount of parent sheet; may contain nil for blank cells
}

func (r RenderRow) String() string {
	return fmt.Sprintf("Number: %d, HeightPx: %.0f, Hidden: %t, Cells: %d", r.Number, r.HeightPx, r.Hidden, len(r.Cells))
}

// RenderSheet is the intermediate representation of a worksheet. The first
// HeaderRows rows are column headers; the rest are the sortable body.
type RenderSheet struct {
	Name       string
	ColWidths  []float64 // per column pixel widths, len == ColCount
	ColHidden  []bool    // true if column hidden
	HeaderRows int
	Rows       []*RenderRow // in display order
}

func (s RenderSheet) String() string {
	return fmt.Sprintf("Name: %s, Columns: %d, HeaderRows: %d, Rows: %d", s.Name, len(s.ColWidths), s.HeaderRows, len(s.Rows))
}

// WorkbookModel is the top-level IR containing all sheets.
type WorkbookModel struct {
	Sheets []RenderSheet
}
