package sorttable

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/franela/goblin"
	"github.com/olekukonko/ll"
	"github.com/olekukonko/ll/lh"
)

// memTable keeps rows as indices into data, in display order.
type memTable struct {
	headerRows int
	headers    []Header
	data       [][]string
	order      []int
	cellReads  int
}

func newMemTable(headers []Header, data ...[]string) *memTable {
	t := &memTable{headerRows: 1, headers: headers, data: data}
	for i := range data {
		t.order = append(t.order, i)
	}
	return t
}

func (t *memTable) HeaderRowCount() int { return t.headerRows }
func (t *memTable) Headers() []Header   { return t.headers }
func (t *memTable) BodyRows() []int     { return slices.Clone(t.order) }

func (t *memTable) Cell(row, col int) Cell {
	t.cellReads++
	return testCell{content: Text(t.data[row][col])}
}

func (t *memTable) add(row ...string) {
	t.data = append(t.data, row)
	t.order = append(t.order, len(t.data)-1)
}

func (t *memTable) apply(res Result[int]) {
	t.order = res.Rows
}

func (t *memTable) column(col int) []string {
	var out []string
	for _, r := range t.order {
		out = append(out, t.data[r][col])
	}
	return out
}

func Test_Session(t *testing.T) {
	g := goblin.Goblin(t)

	g.Describe("Session test suite", func() {
		var table *memTable
		var session *Session[int]

		g.BeforeEach(func() {
			table = newMemTable(
				[]Header{{}, {}, {Declared: "alpha"}, {NoSort: true}},
				[]string{"10", "01/02/2020", "10", "x"},
				[]string{"9", "13/01/2019", "9", "y"},
				[]string{"100", "05/05/2019", "100", "z"},
			)
			session = NewSession[int](table, DefaultOptions())
		})

		g.It("sorts an unsorted numeric column ascending", func() {
			res, err := session.Activate(0)
			g.Assert(err).IsNil()
			table.apply(res)
			g.Assert(table.column(0)).Equal([]string{"9", "10", "100"})
			g.Assert(res.Type).Equal(TypeNumericPoint)
			g.Assert(res.Direction).Equal(Ascending)
			g.Assert(res.Classified).IsTrue()
		})

		g.It("reverses on the second activation without re-sorting", func() {
			res, _ := session.Activate(0)
			table.apply(res)
			reads := table.cellReads

			res, err := session.Activate(0)
			g.Assert(err).IsNil()
			table.apply(res)
			g.Assert(table.column(0)).Equal([]string{"100", "10", "9"})
			g.Assert(res.Reversed).IsTrue()
			g.Assert(res.Direction).Equal(Descending)
			g.Assert(table.cellReads).Equal(reads)
		})

		g.It("flips back to ascending on the third activation", func() {
			for i := 0; i < 3; i++ {
				res, _ := session.Activate(0)
				table.apply(res)
			}
			g.Assert(table.column(0)).Equal([]string{"9", "10", "100"})
			st, _ := session.State(0)
			g.Assert(st.Direction).Equal(Ascending)
		})

		g.It("preserves row contents when reversing", func() {
			res, _ := session.Activate(0)
			table.apply(res)
			before := table.column(3)
			res, _ = session.Activate(0)
			table.apply(res)
			after := table.column(3)
			slices.Reverse(after)
			g.Assert(after).Equal(before)
			g.Assert(len(table.order)).Equal(3)
		})

		g.It("extracts each key once per sort", func() {
			session.Activate(1)
			g.Assert(table.cellReads).Equal(3)
		})

		g.It("classifies day-first dates", func() {
			res, _ := session.Activate(1)
			table.apply(res)
			g.Assert(res.Type).Equal(TypeDateDayFirst)
			g.Assert(table.column(1)).Equal([]string{"13/01/2019", "05/05/2019", "01/02/2020"})
		})

		g.It("uses the declared type instead of classifying", func() {
			res, _ := session.Activate(2)
			table.apply(res)
			g.Assert(res.Type).Equal(TypeText)
			g.Assert(res.Classified).IsFalse()
			g.Assert(table.column(2)).Equal([]string{"10", "100", "9"})
		})

		g.It("classifies when the declared type is unknown", func() {
			table.headers[2].Declared = "currency"
			res, _ := session.Activate(2)
			g.Assert(res.Type).Equal(TypeNumericPoint)
			g.Assert(res.Classified).IsTrue()
		})

		g.It("re-reads the declared type when the row count changed", func() {
			res, _ := session.Activate(2)
			table.apply(res)
			g.Assert(res.Type).Equal(TypeText)

			table.headers[2].Declared = "numeric"
			table.add("1", "", "1", "w")
			res, _ = session.Activate(2)
			table.apply(res)
			g.Assert(res.Type).Equal(TypeNumericPoint)
			g.Assert(res.Classified).IsFalse()
			g.Assert(table.column(2)).Equal([]string{"1", "9", "10", "100"})
		})

		g.It("resets the previous column when another is activated", func() {
			res, _ := session.Activate(0)
			table.apply(res)
			res, _ = session.Activate(1)
			table.apply(res)
			st, _ := session.State(0)
			g.Assert(st.Sorted).IsFalse()
			g.Assert(session.Active()).Equal(1)

			res, _ = session.Activate(0)
			g.Assert(res.Reversed).IsFalse()
			g.Assert(res.Classified).IsFalse()
			g.Assert(res.Direction).Equal(Ascending)
		})

		g.It("re-classifies and sorts ascending when the row count changed", func() {
			res, _ := session.Activate(0)
			table.apply(res)
			table.add("apple", "", "", "")

			res, _ = session.Activate(0)
			table.apply(res)
			g.Assert(res.Reversed).IsFalse()
			g.Assert(res.Classified).IsTrue()
			g.Assert(res.Direction).Equal(Ascending)
			g.Assert(res.Type).Equal(TypeText)
			g.Assert(table.column(0)).Equal([]string{"10", "100", "9", "apple"})
		})

		g.It("is idempotent for repeated explicit ascending sorts", func() {
			res, _ := session.SortAs(0, Ascending)
			table.apply(res)
			once := table.column(0)
			res, _ = session.SortAs(0, Ascending)
			table.apply(res)
			g.Assert(table.column(0)).Equal(once)
		})

		g.It("sorts descending on request", func() {
			res, _ := session.SortAs(0, Descending)
			table.apply(res)
			g.Assert(table.column(0)).Equal([]string{"100", "10", "9"})
		})

		g.It("rejects excluded and missing columns", func() {
			_, err := session.Activate(3)
			g.Assert(errors.Is(err, ErrNotSortable)).IsTrue()
			_, err = session.Activate(4)
			g.Assert(errors.Is(err, ErrColumnRange)).IsTrue()
			_, err = session.Activate(-1)
			g.Assert(errors.Is(err, ErrColumnRange)).IsTrue()
		})

		g.It("does nothing for multiple header rows", func() {
			table.headerRows = 2
			res, err := session.Activate(0)
			g.Assert(err).IsNil()
			g.Assert(res.Changed).IsFalse()
			g.Assert(res.Rows).Equal([]int{0, 1, 2})
			_, ok := session.State(0)
			g.Assert(ok).IsFalse()
		})

		g.It("does nothing for an empty body", func() {
			empty := newMemTable([]Header{{}})
			res, err := NewSession[int](empty, Options{}).Activate(0)
			g.Assert(err).IsNil()
			g.Assert(res.Changed).IsFalse()
			g.Assert(len(res.Rows)).Equal(0)
		})
	})
}

func TestSessionAlgorithmsAgree(t *testing.T) {
	rows := [][]string{{"b", "1"}, {"a", "2"}, {"b", "3"}, {"a", "4"}, {"c", "5"}}
	var orders [][]string
	for _, alg := range []Algorithm{SortStable, SortShaker} {
		table := newMemTable([]Header{{}, {}}, rows...)
		res, err := NewSession[int](table, Options{Algorithm: alg}).Activate(0)
		if err != nil {
			t.Fatalf("%s: %v", alg, err)
		}
		table.apply(res)
		orders = append(orders, table.column(1))
	}
	want := []string{"2", "4", "1", "3", "5"}
	for i, got := range orders {
		if !slices.Equal(got, want) {
			t.Errorf("algorithm %d order = %q, want %q", i, got, want)
		}
	}
}

func TestSessionMixedColumnIsText(t *testing.T) {
	table := newMemTable([]Header{{}}, []string{"apple"}, []string{"Banana"}, []string{"10"})
	res, err := NewSession[int](table, Options{}).Activate(0)
	if err != nil {
		t.Fatal(err)
	}
	table.apply(res)
	if res.Type != TypeText {
		t.Errorf("type = %s", res.Type)
	}
	if got := table.column(0); !slices.Equal(got, []string{"10", "Banana", "apple"}) {
		t.Errorf("order = %q", got)
	}
}

func TestSessionMalformedDatesSortFirst(t *testing.T) {
	var buf bytes.Buffer
	logger := ll.New("test").Handler(lh.NewTextHandler(&buf))
	logger.Enable()

	table := newMemTable([]Header{{Declared: "ddmm"}},
		[]string{"01/02/2020"}, []string{"soon"}, []string{"13/01/2019"}, []string{""})
	res, err := NewSession[int](table, Options{Logger: logger}).Activate(0)
	if err != nil {
		t.Fatal(err)
	}
	table.apply(res)
	if res.Type != TypeDateDayFirst {
		t.Errorf("type = %s", res.Type)
	}
	if got := table.column(0); !slices.Equal(got, []string{"soon", "", "13/01/2019", "01/02/2020"}) {
		t.Errorf("order = %q", got)
	}
	if out := buf.String(); !strings.Contains(out, "soon") || !strings.Contains(out, "1 keys") {
		t.Errorf("expected a warning naming the malformed key, got %q", out)
	}
}

func TestSessionTypeReport(t *testing.T) {
	table := newMemTable([]Header{{}, {}}, []string{"1,5", "x"}, []string{"2,25", "y"})
	session := NewSession[int](table, Options{})
	if _, ok := session.Type(0); ok {
		t.Fatal("Type reported a column that was never activated")
	}
	if _, err := session.Activate(0); err != nil {
		t.Fatal(err)
	}
	if tag, ok := session.Type(0); !ok || tag != TypeNumericComma {
		t.Errorf("Type(0) = %s, %t", tag, ok)
	}
}
