package htmltable

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/aerissecure/sorttable"
	"github.com/aerissecure/sorttable/constants"
	"github.com/franela/goblin"
	"github.com/olekukonko/ll"
	"github.com/olekukonko/ll/lh"
	"golang.org/x/net/html"
)

const fruitHTML = `<html><body>
<table class="sortable" id="fruit">
<tr><th>Name</th><th>Qty</th><th class="sorttable_nosort">Note</th><th>When</th><th class="sorttable_alpha">Code</th></tr>
<tr><td>apple</td><td>10</td><td>a</td><td>01/02/2020</td><td>10</td></tr>
<tr><td>Banana</td><td data-st-key="9">nine</td><td>b</td><td>13/01/2019</td><td>9</td></tr>
<tr><td>cherry</td><td> <b>100</b> </td><td>c</td><td><input value="05/05/2019"></td><td>100</td></tr>
</table>
<table id="plain"><tr><td>x</td></tr></table>
</body></html>`

func column(t *Table, col int) []string {
	var out []string
	for _, row := range t.Rows() {
		out = append(out, row[col])
	}
	return out
}

func Test_Table(t *testing.T) {
	g := goblin.Goblin(t)

	g.Describe("Table test suite", func() {
		var doc *Document
		var table *Table

		g.BeforeEach(func() {
			var err error
			doc, err = Load(strings.NewReader(fruitHTML), sorttable.Options{})
			g.Assert(err).IsNil()
			table, err = doc.Table(0)
			g.Assert(err).IsNil()
		})

		g.It("finds only tables marked sortable", func() {
			g.Assert(len(doc.Tables())).Equal(1)
			_, err := doc.Table(1)
			g.Assert(errors.Is(err, ErrNoSortableTable)).IsTrue()
		})

		g.It("moves the first row into a synthesized thead", func() {
			g.Assert(table.HeaderRowCount()).Equal(1)
			g.Assert(len(table.BodyRows())).Equal(3)
			g.Assert(table.HeaderTexts()).Equal([]string{"Name", "Qty", "Note", "When", "Code"})
		})

		g.It("reads header flags and declared types", func() {
			headers := table.Headers()
			g.Assert(headers[2].NoSort).IsTrue()
			g.Assert(headers[4].Declared).Equal("alpha")
			g.Assert(headers[0]).Equal(sorttable.Header{})
		})

		g.It("sorts numbers using the override attribute", func() {
			res, err := table.Activate(1)
			g.Assert(err).IsNil()
			g.Assert(res.Type).Equal(sorttable.TypeNumericPoint)
			g.Assert(column(table, 0)).Equal([]string{"Banana", "apple", "cherry"})
		})

		g.It("reverses on a second click and swaps the indicator", func() {
			table.Activate(1)
			res, _ := table.Activate(1)
			g.Assert(res.Reversed).IsTrue()
			g.Assert(column(table, 0)).Equal([]string{"cherry", "apple", "Banana"})

			th := table.headerCells().Eq(1)
			g.Assert(th.HasClass(constants.SortedReverseClass)).IsTrue()
			g.Assert(th.HasClass(constants.SortedClass)).IsFalse()
			g.Assert(th.Find("span." + constants.ReverseIndicatorClass).Length()).Equal(1)
			g.Assert(th.Find("span." + constants.ForwardIndicatorClass).Length()).Equal(0)
		})

		g.It("clears the previous column's indicator", func() {
			table.Activate(1)
			table.Activate(0)
			headers := table.headerCells()
			g.Assert(headers.Eq(1).HasClass(constants.SortedClass)).IsFalse()
			g.Assert(headers.Eq(1).Find("span").Length()).Equal(0)
			g.Assert(headers.Eq(0).HasClass(constants.SortedClass)).IsTrue()
			g.Assert(column(table, 0)).Equal([]string{"Banana", "apple", "cherry"})
		})

		g.It("sorts dates using embedded input values", func() {
			res, _ := table.Activate(3)
			g.Assert(res.Type).Equal(sorttable.TypeDateDayFirst)
			g.Assert(column(table, 0)).Equal([]string{"Banana", "cherry", "apple"})
		})

		g.It("honours a declared type", func() {
			table.Activate(4)
			g.Assert(column(table, 4)).Equal([]string{"10", "100", "9"})
		})

		g.It("refuses excluded columns", func() {
			_, err := table.Activate(2)
			g.Assert(errors.Is(err, sorttable.ErrNotSortable)).IsTrue()
			g.Assert(column(table, 0)).Equal([]string{"apple", "Banana", "cherry"})
		})

		g.It("sorts descending on request", func() {
			table.SortAs(1, sorttable.Descending)
			g.Assert(column(table, 1)).Equal([]string{"100", "10", "nine"})
			g.Assert(table.headerCells().Eq(1).HasClass(constants.SortedReverseClass)).IsTrue()
		})

		g.It("renders the reordered markup", func() {
			table.Activate(1)
			out := doc.String()
			g.Assert(strings.Contains(out, "<thead>")).IsTrue()
			g.Assert(strings.Contains(out, constants.ForwardIndicatorClass)).IsTrue()
			g.Assert(strings.Index(out, "Banana") < strings.Index(out, "apple")).IsTrue()
		})
	})
}

func TestTableTwoHeaderRows(t *testing.T) {
	src := `<table class="sortable"><thead><tr><th>a</th></tr><tr><th>b</th></tr></thead>
<tbody><tr><td>2</td></tr><tr><td>1</td></tr></tbody></table>`
	doc, err := Load(strings.NewReader(src), sorttable.Options{})
	if err != nil {
		t.Fatal(err)
	}
	table := doc.Tables()[0]
	res, err := table.Activate(0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Changed {
		t.Error("sorting a table with two header rows changed it")
	}
	if got := column(table, 0); got[0] != "2" || got[1] != "1" {
		t.Errorf("order = %q", got)
	}
}

func TestTableWithoutRows(t *testing.T) {
	doc, err := Load(strings.NewReader(`<table class="sortable"></table>`), sorttable.Options{})
	if err != nil {
		t.Fatal(err)
	}
	table := doc.Tables()[0]
	if n := table.HeaderRowCount(); n != 0 {
		t.Fatalf("HeaderRowCount = %d", n)
	}
	if _, err := table.Activate(0); !errors.Is(err, sorttable.ErrColumnRange) {
		t.Errorf("Activate on a table without columns = %v", err)
	}
}

func TestShortRowsReadEmpty(t *testing.T) {
	src := `<table class="sortable"><tr><th>a</th><th>b</th></tr>
<tr><td>x</td><td>2</td></tr><tr><td>y</td></tr><tr><td>z</td><td>1</td></tr></table>`
	doc, err := Load(strings.NewReader(src), sorttable.Options{})
	if err != nil {
		t.Fatal(err)
	}
	table := doc.Tables()[0]
	if _, err := table.Activate(1); err != nil {
		t.Fatal(err)
	}
	if got := column(table, 0); strings.Join(got, "") != "yzx" {
		t.Errorf("order = %q", got)
	}
}

func TestDocumentStringLogsRenderError(t *testing.T) {
	var buf bytes.Buffer
	logger := ll.New("test").Handler(lh.NewTextHandler(&buf))
	logger.Enable()

	doc, err := Load(strings.NewReader(fruitHTML), sorttable.Options{Logger: logger})
	if err != nil {
		t.Fatal(err)
	}
	if doc.String() == "" {
		t.Fatal("a well-formed document rendered empty")
	}

	doc.doc.Find("body").Get(0).AppendChild(&html.Node{Type: html.ErrorNode})
	if out := doc.String(); out != "" {
		t.Errorf("unrenderable document produced output %q", out)
	}
	if !strings.Contains(buf.String(), "render document") {
		t.Errorf("render error was not logged: %q", buf.String())
	}
}
