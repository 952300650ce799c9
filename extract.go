package sorttable

import "strings"

// Visitor receives the nodes of a content tree.
type Visitor interface {
	VisitText(data string)
	VisitElement(children []Node)
}

// Node is a node of a cell's content tree.
type Node interface {
	Accept(v Visitor)
}

// Text is an ordinary text node.
type Text string

// CharData is raw character data (legacy CDATA-style nodes). It contributes
// its data verbatim, like Text.
type CharData string

// Element is a node whose text is the concatenation of its children.
type Element []Node

func (t Text) Accept(v Visitor)     { v.VisitText(string(t)) }
func (c CharData) Accept(v Visitor) { v.VisitText(string(c)) }
func (e Element) Accept(v Visitor)  { v.VisitElement(e) }

type textCollector struct {
	b strings.Builder
}

func (c *textCollector) VisitText(data string) {
	c.b.WriteString(data)
}

func (c *textCollector) VisitElement(children []Node) {
	for _, child := range children {
		if child != nil {
			child.Accept(c)
		}
	}
}

// InnerText concatenates every text node under n and trims the result.
// Whitespace between nodes is kept; only the ends are trimmed.
func InnerText(n Node) string {
	if n == nil {
		return ""
	}
	var c textCollector
	n.Accept(&c)
	return strings.TrimSpace(c.b.String())
}

// ExtractKey returns the string a cell is classified and compared by.
//
// A non-empty override is returned verbatim. Otherwise an embedded input's
// value wins over the surrounding text. An empty cell yields "".
func ExtractKey(c Cell) string {
	if c == nil {
		return ""
	}
	if key, ok := c.SortKey(); ok && key != "" {
		return key
	}
	if v, ok := c.InputValue(); ok {
		return strings.TrimSpace(v)
	}
	return InnerText(c.Content())
}
