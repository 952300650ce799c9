// Package htmltable makes the sortable tables of an HTML document sortable
// by column. It finds every <table class="sortable">, gives it a <thead> if
// it has none, and applies sorttable sessions to the parsed markup.
package htmltable

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aerissecure/sorttable"
	"github.com/aerissecure/sorttable/constants"
	"github.com/olekukonko/errors"
	"github.com/olekukonko/ll"
	"golang.org/x/net/html"
)

// ErrNoSortableTable is returned when a table index does not name a sortable table.
var ErrNoSortableTable = errors.New(constants.NoSortableTableError)

// Document is a parsed HTML document and its sortable tables.
type Document struct {
	doc    *goquery.Document
	opts   sorttable.Options
	log    *ll.Logger
	tables []*Table
}

// Load parses an HTML document and prepares every sortable table in it.
func Load(r io.Reader, opts sorttable.Options) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, errors.Newf("parse html").Wrap(err)
	}
	return FromDocument(doc, opts), nil
}

// FromDocument prepares the sortable tables of an already parsed document.
func FromDocument(doc *goquery.Document, opts sorttable.Options) *Document {
	d := &Document{doc: doc, opts: opts, log: opts.NewLogger("htmltable")}
	doc.Find("table." + constants.SortableClass).Each(func(_ int, sel *goquery.Selection) {
		d.tables = append(d.tables, NewTable(sel, opts))
	})
	d.log.Debugf("found %d sortable tables", len(d.tables))
	return d
}

// Tables returns the document's sortable tables in document order.
func (d *Document) Tables() []*Table {
	return d.tables
}

// Table returns the i-th sortable table.
func (d *Document) Table(i int) (*Table, error) {
	if i < 0 || i >= len(d.tables) {
		return nil, errors.Newf("table %d of %d", i, len(d.tables)).Wrap(ErrNoSortableTable)
	}
	return d.tables[i], nil
}

// Render writes the document, including any reordering, as HTML.
func (d *Document) Render(w io.Writer) error {
	for _, n := range d.doc.Nodes {
		if err := html.Render(w, n); err != nil {
			return errors.Newf("render html").Wrap(err)
		}
	}
	return nil
}

// String renders the document to a string. A document that cannot be
// rendered yields "" and a logged error.
func (d *Document) String() string {
	var b strings.Builder
	if err := d.Render(&b); err != nil {
		d.log.Errorf("render document: %v", err)
		return ""
	}
	return b.String()
}
