// Tracks live strokes on a drawing surface. Each concurrent
// input source (mouse, individual touches) runs its own session
// between gesture start and end; finished pen gestures become
// path nodes in the document tree, eraser gestures remove the
// nodes they cross as they cross them.
package board

import (
	"github.com/google/uuid"

	"github.com/bvannier/sketchvg/curvefit"
	"github.com/bvannier/sketchvg/svgdoc"
	"github.com/bvannier/sketchvg/svgpath"
)

// Tool selects what a gesture does to the document.
type Tool uint8

const (
	Pen Tool = iota
	Eraser
)

// DefaultMaxError is the curve fitting tolerance used by a fresh
// board, in surface units.
const DefaultMaxError = 2.0

// Board owns the document tree and the in-flight sessions. It is
// the single shared mutable state of the engine and is meant to
// be driven from one event thread; every operation commits a
// consistent tree before returning.
type Board struct {
	Doc *svgdoc.Node

	// Tool, StrokeColor and StrokeWidth are snapshotted into a
	// session when a gesture begins; changing them mid-gesture
	// does not affect strokes already in flight.
	Tool        Tool
	StrokeColor svgdoc.RGB
	StrokeWidth float64

	// MaxError bounds the deviation of fitted curves from the
	// captured points.
	MaxError float64

	sessions map[string]*session
}

// session is the live state of one gesture, keyed by its input
// source identifier.
type session struct {
	tool   Tool
	color  svgdoc.RGB
	width  float64
	points []svgpath.Point
}

// New returns a board over a fresh document of the given size.
func New(width, height int) *Board {
	return &Board{
		Doc:         svgdoc.NewRoot(width, height),
		StrokeColor: svgdoc.RGB{},
		StrokeWidth: 2,
		MaxError:    DefaultMaxError,
		sessions:    make(map[string]*session),
	}
}

// Load replaces the board's document with one parsed from its
// textual form, dropping any in-flight sessions.
func (b *Board) Load(data string, errMode svgdoc.ErrorMode) error {
	doc, err := svgdoc.ParseDocument(data, errMode)
	if err != nil {
		return err
	}
	b.Doc = doc
	b.sessions = make(map[string]*session)
	return nil
}

// Resize changes the document's surface size. Non-positive
// dimensions are ignored.
func (b *Board) Resize(width, height int) {
	if width > 0 {
		b.Doc.Width = width
	}
	if height > 0 {
		b.Doc.Height = height
	}
}

// Active reports whether id has a session in flight.
func (b *Board) Active(id string) bool {
	_, ok := b.sessions[id]
	return ok
}

// Begin starts a session for id at p, snapshotting the board's
// current tool and styling. Any session already active for id is
// overwritten.
func (b *Board) Begin(id string, p svgpath.Point) {
	b.sessions[id] = &session{
		tool:   b.Tool,
		color:  b.StrokeColor,
		width:  b.StrokeWidth,
		points: []svgpath.Point{p},
	}
}

// Extend appends p to id's stroke. Without an active session it
// is a no-op, tolerating spurious events. For an eraser session
// the tree is filtered against the segment from the previous
// point to p before appending, so removal decisions follow the
// path as traversed rather than waiting for gesture end.
func (b *Board) Extend(id string, p svgpath.Point) {
	s, ok := b.sessions[id]
	if !ok {
		return
	}
	if s.tool == Eraser {
		seg := svgpath.Line{Start: s.points[len(s.points)-1], End: p}
		b.Doc.FilterIntersecting(seg, false, true)
	}
	s.points = append(s.points, p)
}

// End performs a final extend with p and finalizes the session.
// A pen session with at least two distinct points produces
// exactly one new path node; an eraser session mutates nothing
// further, its removals having been applied incrementally. The
// session returns to idle either way.
func (b *Board) End(id string, p svgpath.Point) {
	s, ok := b.sessions[id]
	if !ok {
		return
	}
	b.Extend(id, p)
	delete(b.sessions, id)
	if s.tool != Pen || !moved(s.points) {
		// a tap that never left its starting point is not a stroke
		return
	}
	d := svgpath.Encode(curvefit.Fit(s.points, b.MaxError))
	if d == "" {
		// fitting fails only for degenerate strokes; keep the raw
		// polyline rather than losing user input
		d = svgpath.EncodePolyline(s.points)
	}
	path := svgdoc.NewPath(s.color, s.width, d)
	path.Attrs = append(path.Attrs, svgdoc.Attr{Key: "id", Value: uuid.NewString()})
	b.Doc.Insert(path)
}

// moved reports whether the stroke holds at least two distinct
// points.
func moved(points []svgpath.Point) bool {
	for _, p := range points[1:] {
		if p != points[0] {
			return true
		}
	}
	return false
}

// Cancel ends an interrupted gesture at its last known point, so
// a lost input source never leaves a session stuck active.
func (b *Board) Cancel(id string) {
	s, ok := b.sessions[id]
	if !ok {
		return
	}
	b.End(id, s.points[len(s.points)-1])
}
