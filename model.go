// Package sorttable infers how to order the rows of a table by one of its
// columns, without a declared schema, and remembers that decision per column
// across repeated header activations.
package sorttable

import (
	"fmt"
	"strings"
)

// TypeTag is the inferred (or declared) type of a column. It is a cached
// heuristic, not authoritative truth.
type TypeTag int

const (
	TypeText TypeTag = iota
	TypeNumericPoint
	TypeNumericComma
	TypeDateDayFirst
	TypeDateMonthFirst
)

var typeNames = map[TypeTag]string{
	TypeText:           "alpha",
	TypeNumericPoint:   "numeric",
	TypeNumericComma:   "numeric_comma",
	TypeDateDayFirst:   "ddmm",
	TypeDateMonthFirst: "mmdd",
}

// String returns the name used to declare the type in markup.
func (t TypeTag) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TypeTag(%d)", int(t))
}

// ParseTypeTag maps a declared type name (as in a "sorttable_<name>" class)
// to its tag. Unknown names report false so the caller classifies instead.
func ParseTypeTag(name string) (TypeTag, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for tag, n := range typeNames {
		if n == name {
			return tag, true
		}
	}
	return TypeText, false
}

// Direction is the order a sorted column is displayed in.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}

func (d Direction) String() string {
	if d == Descending {
		return "descending"
	}
	return "ascending"
}

// Row decorates a row reference with its extracted key for one sort.
type Row[R any] struct {
	Key string
	Ref R
}

// Header describes one column header cell.
type Header struct {
	Declared string // declared type name, "" when none
	NoSort   bool   // column is excluded from sorting
}

// Cell is a read-only view of a table cell.
type Cell interface {
	// SortKey returns the explicit sort key override, if the cell has one.
	SortKey() (string, bool)
	// InputValue returns the current value of an embedded input, if any.
	InputValue() (string, bool)
	// Content returns the cell's nested content.
	Content() Node
}

// Table is what the engine needs from the collaborator that owns the rows.
// R is an opaque handle to a body row.
type Table[R any] interface {
	HeaderRowCount() int
	Headers() []Header
	BodyRows() []R
	Cell(row R, col int) Cell
}

// ColumnState is the per-column memory kept by a Session.
type ColumnState struct {
	LastRowCount int        // body row count at the last classification, -1 before the first
	Type         TypeTag    // tag the comparator was resolved from
	Comparator   Comparator // nil until the first activation
	Override     *TypeTag   // declared type, if the header names a known one
	Direction    Direction
	Sorted       bool
}

// Indicator is the header presentation derived from a column's state.
type Indicator struct {
	Visible   bool
	Direction Direction
}

// Indicator returns how the column header should be decorated.
func (s ColumnState) Indicator() Indicator {
	return Indicator{Visible: s.Sorted, Direction: s.Direction}
}

// Result is the outcome of one activation.
type Result[R any] struct {
	Rows       []R // new body order; the table itself is not modified
	Column     int
	Direction  Direction
	Type       TypeTag
	Reversed   bool // order was obtained by reversing the current rows
	Classified bool // the column was (re)classified during this activation
	Changed    bool // false when the activation was a no-op
}

func (r Result[R]) String() string {
	return fmt.Sprintf("Column: %d, Rows: %d, Direction: %s, Type: %s, Reversed: %t, Classified: %t, Changed: %t",
		r.Column, len(r.Rows), r.Direction, r.Type, r.Reversed, r.Classified, r.Changed)
}
