package svgdoc

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"
)

// This file implements the textual serialization of a document,
// the inverse of ParseDocument up to attribute defaults.

const xmlNamespace = "http://www.w3.org/2000/svg"

// WriteDocument serializes the tree rooted at n, which must be a
// root node, into its textual markup form.
func (n *Node) WriteDocument(w io.Writer) error {
	if n.Kind != KindRoot {
		panic("svgdoc: WriteDocument called on a " + n.Kind.String() + " node")
	}
	var b strings.Builder
	b.WriteString(`<svg xmlns="` + xmlNamespace + `" width="` + strconv.Itoa(n.Width) +
		`" height="` + strconv.Itoa(n.Height) + `"`)
	writeAttrs(&b, n.Attrs)
	b.WriteString(">")
	if n.Version != "" {
		b.WriteString("<metadata>" + escape(n.Version) + "</metadata>")
	}
	for _, child := range n.Children {
		child.write(&b)
	}
	b.WriteString("</svg>")
	_, err := io.WriteString(w, b.String())
	return err
}

// MarshalDocument is a convenience wrapper returning the markup
// as a string.
func (n *Node) MarshalDocument() string {
	var b strings.Builder
	// the builder never fails
	_ = n.WriteDocument(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	switch n.Kind {
	case KindGroup:
		b.WriteString("<g")
		writeAttrs(b, n.Attrs)
		b.WriteString(">")
		for _, child := range n.Children {
			child.write(b)
		}
		b.WriteString("</g>")
	case KindPath:
		b.WriteString(`<path stroke="` + n.Color.Hex() +
			`" stroke-width="` + strconv.FormatFloat(n.StrokeWidth, 'f', -1, 64) +
			`" fill="none" d="` + escape(n.data) + `"`)
		writeAttrs(b, n.Attrs)
		b.WriteString("/>")
	case KindText:
		b.WriteString(escape(n.Text))
	}
}

func writeAttrs(b *strings.Builder, attrs []Attr) {
	for _, attr := range attrs {
		b.WriteString(" " + attr.Key + `="` + escape(attr.Value) + `"`)
	}
}

func escape(s string) string {
	var b strings.Builder
	// xml.EscapeText only fails on a failing writer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
