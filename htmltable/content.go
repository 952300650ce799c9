package htmltable

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/aerissecure/sorttable"
	"github.com/aerissecure/sorttable/constants"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// contentNode exposes a parsed HTML node as a sorttable content tree.
type contentNode struct {
	n *html.Node
}

func (c contentNode) Accept(v sorttable.Visitor) {
	switch c.n.Type {
	case html.TextNode:
		v.VisitText(c.n.Data)
	case html.RawNode:
		v.VisitText(c.n.Data)
	case html.ElementNode, html.DocumentNode:
		var children []sorttable.Node
		for ch := c.n.FirstChild; ch != nil; ch = ch.NextSibling {
			children = append(children, contentNode{ch})
		}
		v.VisitElement(children)
	}
	// comments and doctypes carry no text
}

// cell is a <td> or <th> of a body row.
type cell struct {
	n *html.Node
}

func (c cell) SortKey() (string, bool) {
	return attr(c.n, constants.SortKeyAttr)
}

func (c cell) InputValue() (string, bool) {
	input := goquery.NewDocumentFromNode(c.n).Find("input").First()
	if input.Length() == 0 {
		return "", false
	}
	return input.AttrOr("value", ""), true
}

func (c cell) Content() sorttable.Node {
	return contentNode{c.n}
}

// missing cells (short rows) read as empty
type emptyCell struct{}

func (emptyCell) SortKey() (string, bool)    { return "", false }
func (emptyCell) InputValue() (string, bool) { return "", false }
func (emptyCell) Content() sorttable.Node    { return nil }

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func isCell(n *html.Node) bool {
	return n.Type == html.ElementNode && (n.DataAtom == atom.Td || n.DataAtom == atom.Th)
}

// cells returns the <td>/<th> children of a row in order.
func cells(row *html.Node) []*html.Node {
	var out []*html.Node
	for c := row.FirstChild; c != nil; c = c.NextSibling {
		if isCell(c) {
			out = append(out, c)
		}
	}
	return out
}
