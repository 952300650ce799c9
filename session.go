package sorttable

import (
	"slices"
	"strings"

	"github.com/olekukonko/errors"
	"github.com/olekukonko/ll"
)

// Session sorts one table. It owns the per-column state and is driven by
// header activations; it never touches the table's rows itself. A Session is
// not safe for concurrent use: activations are expected one at a time, from
// the code that handles header clicks.
type Session[R any] struct {
	table   Table[R]
	opts    Options
	log     *ll.Logger
	columns map[int]*ColumnState
	active  int
}

// NewSession creates a session for table. The zero Options value is valid.
func NewSession[R any](table Table[R], opts Options) *Session[R] {
	return &Session[R]{
		table:   table,
		opts:    opts,
		log:     opts.NewLogger("sorttable"),
		columns: make(map[int]*ColumnState),
		active:  -1,
	}
}

// Active returns the sorted column, or -1 when no column is sorted.
func (s *Session[R]) Active() int {
	return s.active
}

// State returns a copy of a column's state. Columns that were never
// activated report false.
func (s *Session[R]) State(col int) (ColumnState, bool) {
	st, ok := s.columns[col]
	if !ok {
		return ColumnState{}, false
	}
	return *st, true
}

// Type returns the tag a column is sorted by: its declared type if the
// header names one, otherwise the last inferred tag.
func (s *Session[R]) Type(col int) (TypeTag, bool) {
	st, ok := s.columns[col]
	if !ok || st.Comparator == nil {
		return TypeText, false
	}
	return st.Type, true
}

// Activate handles one activation of a column header.
//
// An unsorted column sorts ascending. Activating the sorted column again
// flips its direction by reversing the current rows, unless the row count
// changed since it was classified; then the column is classified and sorted
// ascending from scratch. Activating another column clears the previous one.
func (s *Session[R]) Activate(col int) (Result[R], error) {
	st, rows, ok, err := s.prepare(col)
	if err != nil || !ok {
		return Result[R]{Rows: rows, Column: col}, err
	}

	fresh := st.LastRowCount != len(rows) || st.Comparator == nil
	if !fresh && s.active == col && st.Sorted {
		st.Direction = st.Direction.Reverse()
		reversed := slices.Clone(rows)
		slices.Reverse(reversed)
		s.log.Debugf("column %d: reversed %d rows, now %s", col, len(rows), st.Direction)
		return Result[R]{
			Rows:      reversed,
			Column:    col,
			Direction: st.Direction,
			Type:      st.Type,
			Reversed:  true,
			Changed:   true,
		}, nil
	}
	return s.sort(col, st, rows, Ascending), nil
}

// SortAs sorts a column in the given direction regardless of its current
// state. Repeating the same call without changing the table yields the same
// order.
func (s *Session[R]) SortAs(col int, dir Direction) (Result[R], error) {
	st, rows, ok, err := s.prepare(col)
	if err != nil || !ok {
		return Result[R]{Rows: rows, Column: col, Direction: dir}, err
	}
	return s.sort(col, st, rows, dir), nil
}

// prepare validates an activation and returns the column's state and the
// live body rows. ok is false when sorting is a no-op.
func (s *Session[R]) prepare(col int) (*ColumnState, []R, bool, error) {
	headers := s.table.Headers()
	if col < 0 || col >= len(headers) {
		return nil, nil, false, errors.Newf("column %d of %d", col, len(headers)).Wrap(ErrColumnRange)
	}
	if headers[col].NoSort {
		return nil, nil, false, errors.Newf("column %d", col).Wrap(ErrNotSortable)
	}
	rows := s.table.BodyRows()
	if n := s.table.HeaderRowCount(); n != 1 {
		s.log.Debugf("column %d: %d header rows, nothing to do", col, n)
		return nil, rows, false, nil
	}
	if len(rows) == 0 {
		s.log.Debugf("column %d: empty body, nothing to do", col)
		return nil, rows, false, nil
	}

	st, ok := s.columns[col]
	if !ok {
		st = &ColumnState{LastRowCount: -1}
		s.columns[col] = st
	}
	return st, rows, true, nil
}

func (s *Session[R]) sort(col int, st *ColumnState, rows []R, dir Direction) Result[R] {
	// one extraction per row, shared by the classifier and the sort
	decorated := make([]Row[R], len(rows))
	for i, r := range rows {
		decorated[i] = Row[R]{Key: ExtractKey(s.table.Cell(r, col)), Ref: r}
	}

	classified := false
	if st.LastRowCount != len(rows) || st.Comparator == nil {
		st.LastRowCount = len(rows)
		st.Override = s.declared(col)
		if st.Override != nil {
			st.Type = *st.Override
		} else {
			keys := make([]string, len(decorated))
			for i, d := range decorated {
				keys[i] = d.Key
			}
			st.Type = ClassifyColumn(keys)
			classified = true
		}
		st.Comparator = ComparatorFor(st.Type)
		s.log.Debugf("column %d: resolved %s over %d rows", col, st.Type, len(rows))
	}

	if st.Type == TypeDateDayFirst || st.Type == TypeDateMonthFirst {
		s.warnMalformedDates(col, decorated)
	}

	compare := func(a, b Row[R]) int { return st.Comparator(a.Key, b.Key) }
	switch s.opts.Algorithm {
	case SortUnstable:
		slices.SortFunc(decorated, compare)
	case SortShaker:
		ShakerSort(decorated, compare)
	default:
		slices.SortStableFunc(decorated, compare)
	}
	if dir == Descending {
		slices.Reverse(decorated)
	}

	if s.active != col {
		if prev, ok := s.columns[s.active]; ok {
			prev.Sorted = false
		}
	}
	s.active = col
	st.Sorted = true
	st.Direction = dir

	ordered := make([]R, len(decorated))
	for i, d := range decorated {
		ordered[i] = d.Ref
	}
	return Result[R]{
		Rows:       ordered,
		Column:     col,
		Direction:  dir,
		Type:       st.Type,
		Classified: classified,
		Changed:    true,
	}
}

// declared reads the column's type declaration from its header; the
// header may change between classifications.
func (s *Session[R]) declared(col int) *TypeTag {
	name := s.table.Headers()[col].Declared
	if tag, known := ParseTypeTag(name); known {
		return &tag
	}
	if name != "" {
		s.log.Debugf("column %d: unknown declared type %q, will classify", col, name)
	}
	return nil
}

// Keys that do not parse sort as the earliest date. The column was committed
// to a date comparator (by classification or declaration), so say so.
func (s *Session[R]) warnMalformedDates(col int, rows []Row[R]) {
	var bad []string
	for _, r := range rows {
		if r.Key == "" {
			continue
		}
		if _, _, _, ok := MatchDate(r.Key); !ok {
			bad = append(bad, r.Key)
		}
	}
	if len(bad) == 0 {
		return
	}
	n := len(bad)
	if n > 3 {
		bad = append(bad[:3], "...")
	}
	s.log.Warnf("column %d: %d keys are not dates and sort first: %s", col, n, strings.Join(bad, ", "))
}
