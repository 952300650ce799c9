package xlsx

import (
	"github.com/aerissecure/sorttable"
	"github.com/aerissecure/sorttable/constants"
	"github.com/olekukonko/errors"
)

// ErrMergedRows is returned when a sheet's body has vertically merged cells.
var ErrMergedRows = errors.New(constants.MergedRowsError)

// sheetTable exposes a RenderSheet to the sort engine. Body rows are the
// rows after the header rows.
type sheetTable struct {
	sheet *RenderSheet
}

func (t sheetTable) HeaderRowCount() int {
	return min(t.sheet.HeaderRows, len(t.sheet.Rows))
}

func (t sheetTable) Headers() []sorttable.Header {
	return make([]sorttable.Header, len(t.sheet.ColWidths))
}

func (t sheetTable) BodyRows() []*RenderRow {
	return t.sheet.Rows[t.HeaderRowCount():]
}

func (t sheetTable) Cell(row *RenderRow, col int) sorttable.Cell {
	if col < 0 || col >= len(row.Cells) || row.Cells[col] == nil {
		return cellView{}
	}
	return cellView{row.Cells[col]}
}

// cellView adapts a RenderCell; the nil view is an empty cell.
type cellView struct {
	c *RenderCell
}

func (v cellView) SortKey() (string, bool) {
	if v.c == nil || v.c.SortKey == "" {
		return "", false
	}
	return v.c.SortKey, true
}

func (v cellView) InputValue() (string, bool) {
	return "", false
}

func (v cellView) Content() sorttable.Node {
	if v.c == nil {
		return nil
	}
	return sorttable.Text(v.c.Value)
}

// Sorter sorts a sheet's body rows in place, one column activation at a time.
type Sorter struct {
	sheet   *RenderSheet
	session *sorttable.Session[*RenderRow]
}

// NewSorter returns a Sorter for sheet. The sheet's Rows slice is rewritten
// by each sort.
func NewSorter(sheet *RenderSheet, opts sorttable.Options) *Sorter {
	return &Sorter{sheet: sheet, session: sorttable.NewSession[*RenderRow](sheetTable{sheet}, opts)}
}

// Session exposes the per-column state.
func (s *Sorter) Session() *sorttable.Session[*RenderRow] {
	return s.session
}

// Activate behaves like a click on the col-th header.
func (s *Sorter) Activate(col int) (sorttable.Result[*RenderRow], error) {
	if err := s.check(); err != nil {
		return sorttable.Result[*RenderRow]{}, err
	}
	res, err := s.session.Activate(col)
	if err == nil {
		s.apply(res)
	}
	return res, err
}

// SortAs sorts by col in an explicit direction.
func (s *Sorter) SortAs(col int, dir sorttable.Direction) (sorttable.Result[*RenderRow], error) {
	if err := s.check(); err != nil {
		return sorttable.Result[*RenderRow]{}, err
	}
	res, err := s.session.SortAs(col, dir)
	if err == nil {
		s.apply(res)
	}
	return res, err
}

// A row taking part in a vertical merge cannot move on its own.
func (s *Sorter) check() error {
	head := sheetTable{s.sheet}.HeaderRowCount()
	for i, row := range s.sheet.Rows {
		for _, c := range row.Cells {
			if c != nil && c.RowSpan > 1 && i+c.RowSpan > head {
				return errors.Newf("sheet %q, cell %s", s.sheet.Name, c.Ref).Wrap(ErrMergedRows)
			}
		}
	}
	return nil
}

func (s *Sorter) apply(res sorttable.Result[*RenderRow]) {
	if !res.Changed {
		return
	}
	copy(s.sheet.Rows[sheetTable{s.sheet}.HeaderRowCount():], res.Rows)
}
