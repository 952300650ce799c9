package sorttable

import (
	"os"

	"github.com/olekukonko/ll"
	"github.com/olekukonko/ll/lh"
)

// Algorithm selects the sort used for a full (non-reversing) sort.
type Algorithm int

const (
	// SortStable is a stable merge-based sort; ties keep their current order.
	SortStable Algorithm = iota
	// SortUnstable is pattern-defeating quicksort; ties may move.
	SortUnstable
	// SortShaker is the stable cocktail sort.
	SortShaker
)

var algorithmNames = map[string]Algorithm{
	"stable":   SortStable,
	"unstable": SortUnstable,
	"shaker":   SortShaker,
}

// ParseAlgorithm maps "stable", "unstable" or "shaker" to an Algorithm.
func ParseAlgorithm(name string) (Algorithm, bool) {
	a, ok := algorithmNames[name]
	return a, ok
}

func (a Algorithm) String() string {
	for name, v := range algorithmNames {
		if v == a {
			return name
		}
	}
	return "unknown"
}

// Options configures a Session.
type Options struct {
	Algorithm Algorithm
	Debug     bool       // enable the debug trace on the default logger
	Logger    *ll.Logger // optional; a disabled stderr logger is used when nil
}

// DefaultOptions returns the options used by NewSession when none are given.
func DefaultOptions() Options {
	return Options{Algorithm: SortStable}
}

// NewLogger returns o.Logger when set, otherwise a stderr text logger with
// the given name that is enabled only when Debug is set.
func (o Options) NewLogger(name string) *ll.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	logger := ll.New(name).Handler(lh.NewTextHandler(os.Stderr))
	if o.Debug {
		logger.Enable()
	} else {
		logger.Disable()
	}
	return logger
}
