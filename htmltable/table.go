package htmltable

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aerissecure/sorttable"
	"github.com/aerissecure/sorttable/constants"
	"github.com/olekukonko/ll"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Table is a sortable HTML table. It implements sorttable.Table over the
// table's <tr> nodes and applies each sort result back to the markup.
type Table struct {
	sel     *goquery.Selection
	log     *ll.Logger
	session *sorttable.Session[*html.Node]
}

// NewTable prepares sel (a single <table>) for sorting. A table without a
// <thead> gets one, holding its first row.
func NewTable(sel *goquery.Selection, opts sorttable.Options) *Table {
	t := &Table{sel: sel.First(), log: opts.NewLogger("htmltable")}
	t.ensureHead()
	t.session = sorttable.NewSession[*html.Node](t, opts)
	return t
}

func (t *Table) ensureHead() {
	if t.sel.ChildrenFiltered("thead").Length() > 0 {
		return
	}
	first := t.sel.Children().ChildrenFiltered("tr").First()
	if first.Length() == 0 {
		return
	}
	table, row := t.sel.Get(0), first.Get(0)
	head := &html.Node{Type: html.ElementNode, Data: "thead", DataAtom: atom.Thead}
	row.Parent.RemoveChild(row)
	head.AppendChild(row)
	table.InsertBefore(head, table.FirstChild)
	t.log.Debugf("synthesized <thead> for table %q", t.sel.AttrOr("id", ""))
}

// Session exposes the per-column state, for callers that render it.
func (t *Table) Session() *sorttable.Session[*html.Node] {
	return t.session
}

func (t *Table) headRows() *goquery.Selection {
	return t.sel.ChildrenFiltered("thead").First().ChildrenFiltered("tr")
}

func (t *Table) headerCells() *goquery.Selection {
	return t.headRows().First().ChildrenFiltered("th,td")
}

func (t *Table) body() *goquery.Selection {
	return t.sel.ChildrenFiltered("tbody").First()
}

// HeaderRowCount is the number of rows in the <thead>.
func (t *Table) HeaderRowCount() int {
	return t.headRows().Length()
}

// Headers reads the exclusion flag and declared type from each header cell's classes.
func (t *Table) Headers() []sorttable.Header {
	var headers []sorttable.Header
	t.headerCells().Each(func(_ int, th *goquery.Selection) {
		var h sorttable.Header
		for _, class := range strings.Fields(th.AttrOr("class", "")) {
			switch class {
			case constants.NoSortClass:
				h.NoSort = true
			case constants.SortedClass, constants.SortedReverseClass:
			default:
				if name, ok := strings.CutPrefix(class, constants.DeclaredTypePrefix); ok && h.Declared == "" {
					h.Declared = name
				}
			}
		}
		headers = append(headers, h)
	})
	return headers
}

// BodyRows returns the <tr> nodes of the first <tbody> in display order.
func (t *Table) BodyRows() []*html.Node {
	return t.body().ChildrenFiltered("tr").Nodes
}

// Cell returns the col-th cell of row.
func (t *Table) Cell(row *html.Node, col int) sorttable.Cell {
	cs := cells(row)
	if col < 0 || col >= len(cs) {
		return emptyCell{}
	}
	return cell{cs[col]}
}

// Activate handles a click on the col-th header cell: the rows are
// reordered in place and the header indicator updated.
func (t *Table) Activate(col int) (sorttable.Result[*html.Node], error) {
	res, err := t.session.Activate(col)
	if err != nil {
		return res, err
	}
	t.apply(res)
	return res, nil
}

// SortAs sorts by col in an explicit direction and updates the markup.
func (t *Table) SortAs(col int, dir sorttable.Direction) (sorttable.Result[*html.Node], error) {
	res, err := t.session.SortAs(col, dir)
	if err != nil {
		return res, err
	}
	t.apply(res)
	return res, nil
}

func (t *Table) apply(res sorttable.Result[*html.Node]) {
	if !res.Changed {
		return
	}
	body := t.body().Get(0)
	for _, row := range res.Rows {
		if row.Parent != nil {
			row.Parent.RemoveChild(row)
		}
		body.AppendChild(row)
	}
	t.renderIndicators()
	t.log.Debugf("column %d: %d rows %s (%s)", res.Column, len(res.Rows), res.Direction, res.Type)
}

// renderIndicators redraws every header's sort decoration from the session state.
func (t *Table) renderIndicators() {
	headers := t.headerCells()
	headers.RemoveClass(constants.SortedClass, constants.SortedReverseClass)
	headers.ChildrenFiltered("span." + constants.ForwardIndicatorClass + ",span." + constants.ReverseIndicatorClass).Remove()

	col := t.session.Active()
	st, ok := t.session.State(col)
	if !ok || col >= headers.Length() {
		return
	}
	ind := st.Indicator()
	if !ind.Visible {
		return
	}
	class, spanClass, arrow := indicator(ind.Direction)
	th := headers.Eq(col)
	th.AddClass(class)
	span := &html.Node{
		Type:     html.ElementNode,
		Data:     "span",
		DataAtom: atom.Span,
		Attr:     []html.Attribute{{Key: "class", Val: spanClass}},
	}
	span.AppendChild(&html.Node{Type: html.TextNode, Data: arrow})
	th.Get(0).AppendChild(span)
}

func indicator(dir sorttable.Direction) (headerClass, spanClass, arrow string) {
	if dir == sorttable.Descending {
		return constants.SortedReverseClass, constants.ReverseIndicatorClass, constants.ReverseArrow
	}
	return constants.SortedClass, constants.ForwardIndicatorClass, constants.ForwardArrow
}

// HeaderTexts returns the header labels without sort indicators.
func (t *Table) HeaderTexts() []string {
	var out []string
	t.headerCells().Each(func(_ int, th *goquery.Selection) {
		label := th.Clone()
		label.ChildrenFiltered("span." + constants.ForwardIndicatorClass + ",span." + constants.ReverseIndicatorClass).Remove()
		out = append(out, strings.TrimSpace(label.Text()))
	})
	return out
}

// Rows returns the displayed text of every body cell, in display order.
func (t *Table) Rows() [][]string {
	var out [][]string
	for _, row := range t.BodyRows() {
		var texts []string
		for _, c := range cells(row) {
			texts = append(texts, sorttable.InnerText(contentNode{c}))
		}
		out = append(out, texts)
	}
	return out
}
