package svgdoc

import (
	"encoding/xml"
	"errors"
	"io"
	"log"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/bvannier/sketchvg/svgpath"
)

// ErrorMode determines if the parser ignores, errors out, or logs
// a warning when it meets an element outside the supported subset.
type ErrorMode uint8

const (
	IgnoreErrorMode ErrorMode = iota
	WarnErrorMode
	StrictErrorMode
)

// docCursor is used while parsing documents.
type docCursor struct {
	root          *Node
	stack         []*Node // open container elements, root first
	errorMode     ErrorMode
	inMetadata    bool
	recordVersion bool // false while inside a misplaced or repeated metadata element
	sawMetadata   bool
}

func (c *docCursor) top() *Node { return c.stack[len(c.stack)-1] }

func (c *docCursor) handleError(errStr string) error {
	switch c.errorMode {
	case StrictErrorMode:
		return errors.New(errStr)
	case WarnErrorMode:
		log.Println(errStr)
	}
	return nil
}

// ParseDocument reads the textual markup form of a document into
// its scene tree. The string must begin with the root element's
// opening tag and end with its closing tag; anything else is
// rejected as a FormatError before parsing. errMode determines
// how elements outside the subset are treated.
func ParseDocument(data string, errMode ErrorMode) (*Node, error) {
	trimmed := strings.TrimSpace(data)
	if !strings.HasPrefix(trimmed, "<svg") || !strings.HasSuffix(trimmed, "</svg>") {
		return nil, svgpath.NewFormatError("document is not wrapped in an svg element")
	}
	cursor := &docCursor{errorMode: errMode}
	decoder := xml.NewDecoder(strings.NewReader(trimmed))
	decoder.CharsetReader = charset.NewReaderLabel
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		switch se := t.(type) {
		case xml.StartElement:
			if err := cursor.readStartElement(se); err != nil {
				return nil, err
			}
		case xml.EndElement:
			switch se.Name.Local {
			case "g":
				if len(cursor.stack) > 1 {
					cursor.stack = cursor.stack[:len(cursor.stack)-1]
				}
			case "metadata":
				cursor.inMetadata = false
			}
		case xml.CharData:
			cursor.readCharData(string(se))
		}
	}
	if cursor.root == nil {
		return nil, svgpath.NewFormatError("document has no svg root element")
	}
	return cursor.root, nil
}

func (c *docCursor) readStartElement(se xml.StartElement) error {
	switch se.Name.Local {
	case "svg":
		if c.root != nil {
			return svgpath.NewFormatError("document has more than one svg root element")
		}
		root, err := rootFromAttrs(se.Attr)
		if err != nil {
			return err
		}
		c.root = root
		c.stack = []*Node{root}
	case "g":
		if c.root == nil {
			return svgpath.NewFormatError("element outside the svg root")
		}
		group := NewGroup()
		group.Attrs = passthroughAttrs(se.Attr, nil)
		c.top().Insert(group)
		c.stack = append(c.stack, group)
	case "path":
		if c.root == nil {
			return svgpath.NewFormatError("element outside the svg root")
		}
		path, err := pathFromAttrs(se.Attr)
		if err != nil {
			return err
		}
		c.top().Insert(path)
	case "metadata":
		if c.root == nil {
			return svgpath.NewFormatError("element outside the svg root")
		}
		// its character data is swallowed either way, but only a
		// first occurrence directly under the root carries the version
		c.inMetadata = true
		c.recordVersion = false
		if c.top() != c.root {
			return c.handleError("metadata element must be a direct child of the svg root")
		}
		if c.sawMetadata {
			return c.handleError("document carries more than one metadata element")
		}
		c.sawMetadata = true
		c.recordVersion = true
	default:
		return c.handleError("cannot process svg element " + se.Name.Local)
	}
	return nil
}

func (c *docCursor) readCharData(s string) {
	if c.root == nil {
		return
	}
	if c.inMetadata {
		if c.recordVersion {
			c.root.Version += strings.TrimSpace(s)
		}
		return
	}
	if text := strings.TrimSpace(s); text != "" {
		c.top().Insert(NewText(text))
	}
}

func rootFromAttrs(attrs []xml.Attr) (*Node, error) {
	root := NewRoot(0, 0)
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "width":
			w, err := parsePositiveInt(attr.Value)
			if err != nil {
				return nil, err
			}
			root.Width = w
		case "height":
			h, err := parsePositiveInt(attr.Value)
			if err != nil {
				return nil, err
			}
			root.Height = h
		case "xmlns":
			// implied on write; not worth carrying around
		default:
			root.Attrs = append(root.Attrs, Attr{attr.Name.Local, attr.Value})
		}
	}
	if root.Width == 0 || root.Height == 0 {
		return nil, svgpath.NewFormatError("svg root must carry positive width and height")
	}
	return root, nil
}

// defaultStrokeWidth applies when a path carries no explicit
// stroke-width attribute.
const defaultStrokeWidth = 2.0

func pathFromAttrs(attrs []xml.Attr) (*Node, error) {
	path := NewPath(RGB{}, defaultStrokeWidth, "")
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "stroke":
			c, err := ParseRGB(attr.Value)
			if err != nil {
				return nil, err
			}
			path.Color = c
		case "stroke-width":
			w, err := strconv.ParseFloat(attr.Value, 64)
			if err != nil || w <= 0 {
				return nil, svgpath.NewFormatError("stroke-width must be a positive number, got " + strconv.Quote(attr.Value))
			}
			path.StrokeWidth = w
		case "d":
			// validate the command string up front so malformed
			// geometry never reaches the hit testing
			if _, err := svgpath.Decode(attr.Value); err != nil {
				return nil, err
			}
			path.SetData(attr.Value)
		case "fill":
			// the subset is stroke-only; fill is regenerated on write
		default:
			path.Attrs = append(path.Attrs, Attr{attr.Name.Local, attr.Value})
		}
	}
	return path, nil
}

func parsePositiveInt(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return 0, svgpath.NewFormatError("expected positive integer, got " + strconv.Quote(s))
	}
	return v, nil
}

func passthroughAttrs(attrs []xml.Attr, skip map[string]bool) []Attr {
	var out []Attr
	for _, attr := range attrs {
		if skip[attr.Name.Local] {
			continue
		}
		out = append(out, Attr{attr.Name.Local, attr.Value})
	}
	return out
}
