package docx

import (
	"github.com/aerissecure/sorttable"
	"github.com/aerissecure/sorttable/constants"
	"github.com/olekukonko/errors"
)

// ErrMergedRows is returned when a table's body has vertically merged cells.
var ErrMergedRows = errors.New(constants.MergedRowsError)

type tableView struct {
	t *RenderTable
}

func (v tableView) HeaderRowCount() int {
	return min(v.t.HeaderRows, len(v.t.Rows))
}

func (v tableView) Headers() []sorttable.Header {
	return make([]sorttable.Header, v.t.Columns())
}

func (v tableView) BodyRows() []*RenderTableRow {
	return v.t.Rows[v.HeaderRowCount():]
}

func (v tableView) Cell(row *RenderTableRow, col int) sorttable.Cell {
	if col < 0 || col >= len(row.Cells) {
		return cellView{}
	}
	return cellView{row.Cells[col]}
}

// cellView exposes a cell's paragraphs as a content tree of runs.
type cellView struct {
	c *RenderTableCell
}

func (cellView) SortKey() (string, bool)    { return "", false }
func (cellView) InputValue() (string, bool) { return "", false }

func (v cellView) Content() sorttable.Node {
	if v.c == nil {
		return nil
	}
	paras := make(sorttable.Element, 0, len(v.c.Paragraphs))
	for _, p := range v.c.Paragraphs {
		runs := make(sorttable.Element, 0, len(p.Runs))
		for _, r := range p.Runs {
			runs = append(runs, sorttable.Text(r.Text))
		}
		paras = append(paras, runs)
	}
	return paras
}

// Sorter sorts a table's body rows in place.
type Sorter struct {
	table   *RenderTable
	session *sorttable.Session[*RenderTableRow]
}

func NewSorter(t *RenderTable, opts sorttable.Options) *Sorter {
	return &Sorter{table: t, session: sorttable.NewSession[*RenderTableRow](tableView{t}, opts)}
}

func (s *Sorter) Session() *sorttable.Session[*RenderTableRow] {
	return s.session
}

// Activate behaves like a click on the col-th header.
func (s *Sorter) Activate(col int) (sorttable.Result[*RenderTableRow], error) {
	return s.run(func() (sorttable.Result[*RenderTableRow], error) { return s.session.Activate(col) })
}

// SortAs sorts by col in an explicit direction.
func (s *Sorter) SortAs(col int, dir sorttable.Direction) (sorttable.Result[*RenderTableRow], error) {
	return s.run(func() (sorttable.Result[*RenderTableRow], error) { return s.session.SortAs(col, dir) })
}

func (s *Sorter) run(sort func() (sorttable.Result[*RenderTableRow], error)) (sorttable.Result[*RenderTableRow], error) {
	head := tableView{s.table}.HeaderRowCount()
	for i, row := range s.table.Rows {
		for _, c := range row.Cells {
			if c.RowSpan > 1 && i+c.RowSpan > head {
				return sorttable.Result[*RenderTableRow]{}, errors.Newf("table row %d", row.Number).Wrap(ErrMergedRows)
			}
		}
	}
	res, err := sort()
	if err == nil && res.Changed {
		copy(s.table.Rows[head:], res.Rows)
	}
	return res, err
}
