package board

import (
	"testing"

	"github.com/google/uuid"

	"github.com/bvannier/sketchvg/svgdoc"
	"github.com/bvannier/sketchvg/svgpath"
)

func pt(x, y float64) svgpath.Point { return svgpath.Point{X: x, Y: y} }

// draw runs a full pen gesture over the given points.
func draw(b *Board, id string, pts ...svgpath.Point) {
	b.Begin(id, pts[0])
	for _, p := range pts[1 : len(pts)-1] {
		b.Extend(id, p)
	}
	b.End(id, pts[len(pts)-1])
}

func TestPenStroke(t *testing.T) {
	b := New(100, 100)
	b.StrokeColor = svgdoc.RGB{R: 0xff}
	b.StrokeWidth = 3
	draw(b, "mouse", pt(0, 0), pt(10, 0), pt(20, 0))
	if b.Active("mouse") {
		t.Error("session still active after End")
	}
	if len(b.Doc.Children) != 1 {
		t.Fatalf("document has %d children, want exactly one path", len(b.Doc.Children))
	}
	path := b.Doc.Children[0]
	if path.Kind != svgdoc.KindPath {
		t.Fatalf("child is a %s node", path.Kind)
	}
	if path.Color != (svgdoc.RGB{R: 0xff}) || path.StrokeWidth != 3 {
		t.Errorf("styling not carried over: %+v", path)
	}
	if path.Data() == "" {
		t.Error("path carries no command data")
	}
	if len(path.Attrs) != 1 || path.Attrs[0].Key != "id" {
		t.Fatalf("unexpected attrs %v", path.Attrs)
	}
	if _, err := uuid.Parse(path.Attrs[0].Value); err != nil {
		t.Errorf("path id %q is not a uuid", path.Attrs[0].Value)
	}
}

func TestStyleSnapshot(t *testing.T) {
	b := New(100, 100)
	b.StrokeColor = svgdoc.RGB{B: 0xff}
	b.Begin("mouse", pt(0, 0))
	b.StrokeColor = svgdoc.RGB{R: 0xff} // mid-gesture change
	b.Extend("mouse", pt(10, 0))
	b.End("mouse", pt(20, 0))
	if c := b.Doc.Children[0].Color; c != (svgdoc.RGB{B: 0xff}) {
		t.Errorf("stroke color %v, want the color at gesture start", c)
	}
}

func TestEraserRemovesIncrementally(t *testing.T) {
	b := New(100, 100)
	draw(b, "mouse", pt(0, 0), pt(10, 0), pt(20, 0))
	b.Tool = Eraser
	b.Begin("mouse", pt(5, -5))
	b.Extend("mouse", pt(5, 5))
	if len(b.Doc.Children) != 0 {
		t.Fatal("crossed path not removed during the gesture")
	}
	b.End("mouse", pt(5, 6))
	if len(b.Doc.Children) != 0 {
		t.Error("eraser gesture added a node")
	}
}

func TestEraserMiss(t *testing.T) {
	b := New(300, 300)
	draw(b, "mouse", pt(0, 0), pt(10, 0), pt(20, 0))
	b.Tool = Eraser
	b.Begin("mouse", pt(100, 100))
	b.Extend("mouse", pt(150, 150))
	b.End("mouse", pt(200, 200))
	if len(b.Doc.Children) != 1 {
		t.Errorf("document has %d children, want the untouched path", len(b.Doc.Children))
	}
}

func TestEraserReachesIntoGroups(t *testing.T) {
	b := New(100, 100)
	group := svgdoc.NewGroup()
	group.Insert(svgdoc.NewPath(svgdoc.RGB{}, 2, "M0,10 L10,10"))
	b.Doc.Insert(group)
	b.Tool = Eraser
	b.Begin("mouse", pt(5, 5))
	b.Extend("mouse", pt(5, 15))
	b.End("mouse", pt(5, 16))
	if len(group.Children) != 0 {
		t.Error("path inside a group survived the eraser")
	}
	if len(b.Doc.Children) != 1 {
		t.Error("group itself was removed")
	}
}

func TestInterleavedSessions(t *testing.T) {
	b := New(100, 100)
	b.Begin("a", pt(0, 0))
	b.Begin("b", pt(0, 50))
	b.Extend("a", pt(10, 0))
	b.Extend("b", pt(10, 50))
	b.End("a", pt(20, 0))
	if !b.Active("b") {
		t.Error("ending one session ended the other")
	}
	b.End("b", pt(20, 50))
	if len(b.Doc.Children) != 2 {
		t.Fatalf("document has %d children, want one path per gesture", len(b.Doc.Children))
	}
}

func TestSpuriousEvents(t *testing.T) {
	b := New(100, 100)
	b.Extend("ghost", pt(1, 1))
	b.End("ghost", pt(2, 2))
	b.Cancel("ghost")
	if len(b.Doc.Children) != 0 {
		t.Errorf("spurious events produced %d nodes", len(b.Doc.Children))
	}
}

func TestBeginOverwrites(t *testing.T) {
	b := New(100, 100)
	b.Begin("mouse", pt(0, 0))
	b.Begin("mouse", pt(5, 5))
	b.Extend("mouse", pt(10, 5))
	b.End("mouse", pt(15, 5))
	if len(b.Doc.Children) != 1 {
		t.Fatalf("document has %d children, want 1", len(b.Doc.Children))
	}
	geom, err := b.Doc.Children[0].Geometry()
	if err != nil {
		t.Fatal(err)
	}
	if start := geom[0].At(0); start != pt(5, 5) {
		t.Errorf("stroke starts at %v, want the point of the second Begin", start)
	}
}

func TestCancel(t *testing.T) {
	b := New(100, 100)
	b.Begin("touch", pt(0, 0))
	b.Extend("touch", pt(10, 2))
	b.Cancel("touch")
	if b.Active("touch") {
		t.Error("session still active after Cancel")
	}
	if len(b.Doc.Children) != 1 {
		t.Errorf("cancelled two-point stroke yielded %d nodes, want 1", len(b.Doc.Children))
	}

	// a gesture cancelled before moving leaves no mark
	b.Begin("touch", pt(50, 50))
	b.Cancel("touch")
	if len(b.Doc.Children) != 1 {
		t.Errorf("stationary cancel yielded %d nodes, want 1", len(b.Doc.Children))
	}
}

func TestStationaryGesture(t *testing.T) {
	b := New(100, 100)
	b.Begin("touch", pt(50, 50))
	b.End("touch", pt(50, 50))
	if len(b.Doc.Children) != 0 {
		t.Errorf("stationary tap yielded %d nodes, want none", len(b.Doc.Children))
	}

	// repeated coincident extends are still no stroke
	b.Begin("touch", pt(30, 30))
	b.Extend("touch", pt(30, 30))
	b.Extend("touch", pt(30, 30))
	b.Cancel("touch")
	if len(b.Doc.Children) != 0 {
		t.Errorf("coincident gesture yielded %d nodes, want none", len(b.Doc.Children))
	}
	if b.Active("touch") {
		t.Error("session still active after Cancel")
	}
}

func TestLoadAndResize(t *testing.T) {
	b := New(10, 10)
	b.Begin("mouse", pt(0, 0))
	doc := `<svg width="640" height="480"><path stroke="#000000" stroke-width="2" fill="none" d="M0,0 L5,5"/></svg>`
	if err := b.Load(doc, svgdoc.StrictErrorMode); err != nil {
		t.Fatal(err)
	}
	if b.Doc.Width != 640 || b.Doc.Height != 480 {
		t.Errorf("loaded size %dx%d", b.Doc.Width, b.Doc.Height)
	}
	if b.Active("mouse") {
		t.Error("session survived a document load")
	}
	b.Resize(800, 0)
	if b.Doc.Width != 800 || b.Doc.Height != 480 {
		t.Errorf("size after resize %dx%d, want 800x480", b.Doc.Width, b.Doc.Height)
	}
	if err := b.Load("not a document", svgdoc.StrictErrorMode); err == nil {
		t.Error("loading junk succeeded")
	}
}
