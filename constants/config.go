package constants

const (
	// SortableClass marks a table element as sortable.
	SortableClass = "sortable"

	// SortKeyAttr is the cell attribute whose value supersedes the displayed text when sorting.
	SortKeyAttr = "data-st-key"

	// NoSortClass excludes a header cell's column from sorting.
	NoSortClass = "sorttable_nosort"

	// DeclaredTypePrefix prefixes a header class naming the column's comparator, e.g. "sorttable_numeric".
	DeclaredTypePrefix = "sorttable_"

	// SortedClass is added to the header of the column sorted ascending.
	SortedClass = "sorttable_sorted"

	// SortedReverseClass is added to the header of the column sorted descending.
	SortedReverseClass = "sorttable_sorted_reverse"

	// ForwardIndicatorClass is the class of the indicator span for an ascending sort.
	ForwardIndicatorClass = "sorttable_sortfwdind"

	// ReverseIndicatorClass is the class of the indicator span for a descending sort.
	ReverseIndicatorClass = "sorttable_sortrevind"

	// ForwardArrow is the indicator text for an ascending sort (nbsp + down-pointing small triangle).
	ForwardArrow = "\u00a0\u25be"

	// ReverseArrow is the indicator text for a descending sort (nbsp + up-pointing small triangle).
	ReverseArrow = "\u00a0\u25b4"
)
