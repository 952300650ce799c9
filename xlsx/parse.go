package xlsx

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/errors"
	"github.com/unidoc/unioffice/spreadsheet"
	"github.com/unidoc/unioffice/spreadsheet/reference"
)

type span struct{ rows, cols int }

// merges maps merge masters to their span and marks the cells they cover.
type merges struct {
	master  map[[2]int]span
	covered map[[2]int]bool
}

func sheetMerges(sheet spreadsheet.Sheet) merges {
	m := merges{master: make(map[[2]int]span), covered: make(map[[2]int]bool)}
	if sheet.X().MergeCells == nil {
		return m
	}
	for _, mc := range sheet.X().MergeCells.MergeCell {
		from, to, err := reference.ParseRangeReference(mc.RefAttr)
		if err != nil {
			continue
		}
		fromRow, fromCol := int(from.RowIdx-1), int(from.ColumnIdx)
		toRow, toCol := int(to.RowIdx-1), int(to.ColumnIdx)
		m.master[[2]int{fromRow, fromCol}] = span{toRow - fromRow + 1, toCol - fromCol + 1}
		for r := fromRow; r <= toRow; r++ {
			for c := fromCol; c <= toCol; c++ {
				if r != fromRow || c != fromCol {
					m.covered[[2]int{r, c}] = true
				}
			}
		}
	}
	return m
}

// ParseWorkbookModel reads an XLSX from r/size and returns the intermediate
// representation. The first row of each sheet is taken as its header.
func ParseWorkbookModel(r io.ReaderAt, size int64) (WorkbookModel, error) {
	wb, err := spreadsheet.Read(r, size)
	if err != nil {
		return WorkbookModel{}, errors.Newf("read workbook").Wrap(err)
	}
	styles := newStyleResolver(wb)

	var model WorkbookModel
	for _, sheet := range wb.Sheets() {
		model.Sheets = append(model.Sheets, parseSheet(sheet, styles))
	}
	return model, nil
}

func parseSheet(sheet spreadsheet.Sheet, styles styleResolver) RenderSheet {
	rows := sheet.Rows()
	maxCols := 0
	for _, row := range rows {
		maxCols = max(maxCols, len(row.Cells()))
	}

	rs := RenderSheet{
		Name:       sheet.Name(),
		ColWidths:  make([]float64, maxCols),
		ColHidden:  make([]bool, maxCols),
		HeaderRows: 1,
	}
	for c := 0; c < maxCols; c++ {
		col := sheet.Column(uint32(c + 1)).X()
		rs.ColWidths[c] = 8.43 * 8.3 // Excel default, approximated
		if col.CustomWidthAttr != nil && *col.CustomWidthAttr && col.WidthAttr != nil {
			rs.ColWidths[c] = *col.WidthAttr * 8.3
		}
		if col.HiddenAttr != nil {
			rs.ColHidden[c] = *col.HiddenAttr
		}
	}

	mg := sheetMerges(sheet)
	for _, row := range rows {
		rowIdx := int(row.RowNumber()) - 1
		// sparse sheets skip row numbers; keep the gaps as blank rows
		for len(rs.Rows) <= rowIdx {
			rs.Rows = append(rs.Rows, &RenderRow{Number: len(rs.Rows) + 1, HeightPx: 15.0 * 1.333, Cells: make([]*RenderCell, maxCols)})
		}
		rr := rs.Rows[rowIdx]
		rr.Hidden = row.IsHidden()
		if row.X().CustomHeightAttr != nil && *row.X().CustomHeightAttr && row.X().HtAttr != nil {
			rr.HeightPx = *row.X().HtAttr * 1.333 // pt -> px
		}

		for _, cell := range row.Cells() {
			colName, err := cell.Column()
			if err != nil {
				continue
			}
			colIdx := int(reference.ColumnToIndex(colName))
			if colIdx >= maxCols || mg.covered[[2]int{rowIdx, colIdx}] {
				continue
			}
			rc := &RenderCell{
				Cell:    cell,
				Ref:     fmt.Sprintf("%s%d", colName, rowIdx+1),
				Value:   cell.GetFormattedValue(),
				SortKey: rawNumber(cell),
				ColSpan: 1,
				RowSpan: 1,
			}
			if cell.X().SAttr != nil {
				rc.Style = styles.resolve(*cell.X().SAttr)
			}
			if sp, ok := mg.master[[2]int{rowIdx, colIdx}]; ok {
				rc.RowSpan, rc.ColSpan = sp.rows, sp.cols
			}
			rr.Cells[colIdx] = rc
		}
	}
	if len(rs.Rows) == 0 {
		rs.HeaderRows = 0
	}
	return rs
}

// rawNumber returns the stored value of a numeric cell, so that "$1,200.00"
// and dates formatted for display still sort by their underlying number.
func rawNumber(cell spreadsheet.Cell) string {
	if !cell.IsNumber() {
		return ""
	}
	raw, err := cell.GetRawValue()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(raw)
}

// normalizeColor converts an 8-digit ARGB hex (as used in XLSX) to a 6-digit RGB string.
// If the string is already 6 digits (or any other length), it is returned unchanged.
func normalizeColor(hex string) string {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) == 8 {
		return hex[2:]
	}
	return hex
}
