package sorttable

import (
	"github.com/aerissecure/sorttable/constants"
	"github.com/olekukonko/errors"
)

var (
	// ErrColumnRange is returned for an activation outside the header's columns.
	ErrColumnRange = errors.New(constants.ColumnRangeError)

	// ErrNotSortable is returned for an activation of an excluded column.
	ErrNotSortable = errors.New(constants.NotSortableError)
)
