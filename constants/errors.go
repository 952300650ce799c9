package constants

const (
	// ColumnRangeError is returned when an activation names a column the table does not have.
	ColumnRangeError = "column index out of range"

	// NotSortableError is returned when an activation names a column excluded from sorting.
	NotSortableError = "column is excluded from sorting"

	// NoSortableTableError is returned when a document holds no table the engine can work with.
	NoSortableTableError = "no sortable table found"

	// MergedRowsError is returned when a body row spans several rows, which cannot be reordered
	// independently of its neighbours.
	MergedRowsError = "table body contains vertically merged cells"
)
