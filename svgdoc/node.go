// Maintains the hierarchical scene tree behind a drawing
// surface: a root element holding groups and path leaves,
// parsed from and serialized to a small SVG subset.
// See the board package for how strokes enter and leave it.
package svgdoc

import (
	"fmt"

	"github.com/bvannier/sketchvg/svgpath"
)

// Kind discriminates the closed set of node variants. Adding a
// kind is a deliberate, compile-time-checked change.
type Kind uint8

const (
	KindRoot Kind = iota
	KindGroup
	KindPath
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindGroup:
		return "group"
	case KindPath:
		return "path"
	case KindText:
		return "text"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Attr is a passthrough attribute not otherwise modeled,
// preserved in document order for round-trip fidelity.
type Attr struct {
	Key, Value string
}

// Node is the universal tree element. The tree exclusively owns
// all descendant nodes: removal of a node discards its subtree.
type Node struct {
	Kind Kind

	// Root geometry. The width and height are positive.
	Width, Height int

	// Version is the format version carried by the root's
	// metadata element, empty when absent.
	Version string

	// Path styling.
	Color       RGB
	StrokeWidth float64

	// Text payload, opaque to every geometry operation.
	Text string

	// Attrs holds passthrough attributes.
	Attrs []Attr

	// Children is empty for path and text nodes.
	Children []*Node

	data string            // path commands; reassigned only through SetData
	geom []svgpath.Segment // lazily decoded from data, never serialized
}

// NewRoot returns the apex node of a fresh document.
func NewRoot(width, height int) *Node {
	return &Node{Kind: KindRoot, Width: width, Height: height}
}

// NewGroup returns an empty container node.
func NewGroup() *Node { return &Node{Kind: KindGroup} }

// NewPath returns a leaf drawable node with the given styling
// and command string.
func NewPath(color RGB, strokeWidth float64, data string) *Node {
	return &Node{Kind: KindPath, Color: color, StrokeWidth: strokeWidth, data: data}
}

// NewText returns an opaque text leaf.
func NewText(s string) *Node { return &Node{Kind: KindText, Text: s} }

// Data returns the node's path command string.
func (n *Node) Data() string { return n.data }

// SetData reassigns the path command string. This is the only
// mutation path for commands; it invalidates the cached geometry.
func (n *Node) SetData(d string) {
	n.data = d
	n.geom = nil
}

// Geometry returns the decoded path segments, decoding and
// caching them on first use. Only path nodes carry geometry.
func (n *Node) Geometry() ([]svgpath.Segment, error) {
	if n.Kind != KindPath {
		return nil, nil
	}
	if n.geom == nil {
		segs, err := svgpath.Decode(n.data)
		if err != nil {
			return nil, err
		}
		n.geom = segs
	}
	return n.geom, nil
}

// Insert appends child to n's children. Leaf kinds cannot take
// children and a root is unique at the apex; violating either is
// a programming error and panics rather than corrupting the tree.
func (n *Node) Insert(child *Node) {
	if n.Kind == KindPath || n.Kind == KindText {
		panic("svgdoc: cannot add children to a " + n.Kind.String() + " node")
	}
	if child.Kind == KindRoot {
		panic("svgdoc: a root node cannot be inserted below the apex")
	}
	n.Children = append(n.Children, child)
}

// FilterIntersecting walks the subtree in pre-order and tests
// every path child against the segment. Hit paths are collected
// in traversal order and, unless keepIntersecting, excised from
// their parent in place. With recurse the filter is applied
// independently to every surviving subtree: a group is never
// removed for containing an intersecting path, only the leaf is.
// Every removal commits a complete, consistent tree before the
// call returns.
func (n *Node) FilterIntersecting(seg svgpath.Line, keepIntersecting, recurse bool) []*Node {
	var removed []*Node
	n.filter(recurse, !keepIntersecting, &removed, func(child *Node) bool {
		geom, err := child.Geometry()
		if err != nil {
			// undecodable data cannot match geometrically; loading
			// validates commands so this only arises from misuse
			return false
		}
		return svgpath.Intersects(seg, geom)
	})
	return removed
}

// ClearPaths removes every path child of n, and of every
// descendant container when recurse is set. Removed nodes are
// returned in traversal order.
func (n *Node) ClearPaths(recurse bool) []*Node {
	var removed []*Node
	n.filter(recurse, true, &removed, func(*Node) bool { return true })
	return removed
}

// filter rebuilds the child list in pre-order: path children for
// which hit is true are collected and, when removeHits is set,
// left out of a freshly built retained slice (never mutating the
// sequence while iterating it).
func (n *Node) filter(recurse, removeHits bool, removed *[]*Node, hit func(*Node) bool) {
	kept := make([]*Node, 0, len(n.Children))
	for _, child := range n.Children {
		if child.Kind == KindPath && hit(child) {
			*removed = append(*removed, child)
			if removeHits {
				continue
			}
		}
		kept = append(kept, child)
	}
	n.Children = kept
	if recurse {
		for _, child := range n.Children {
			if child.Kind == KindGroup {
				child.filter(recurse, removeHits, removed, hit)
			}
		}
	}
}
