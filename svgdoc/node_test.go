package svgdoc

import (
	"testing"

	"github.com/bvannier/sketchvg/svgpath"
)

func vertical(x, y1, y2 float64) svgpath.Line {
	return svgpath.Line{Start: svgpath.Point{X: x, Y: y1}, End: svgpath.Point{X: x, Y: y2}}
}

// three horizontal strokes at y=0, y=10 (inside a group) and y=20
func buildTree() (root, group, pa, pb, pc *Node) {
	root = NewRoot(100, 100)
	pa = NewPath(RGB{}, 2, "M0,0 L10,0")
	pb = NewPath(RGB{}, 2, "M0,10 L10,10")
	pc = NewPath(RGB{}, 2, "M0,20 L10,20")
	group = NewGroup()
	group.Insert(pb)
	root.Insert(pa)
	root.Insert(group)
	root.Insert(pc)
	return
}

func TestInsertPanics(t *testing.T) {
	for _, tt := range []struct {
		name          string
		parent, child *Node
	}{
		{"path parent", NewPath(RGB{}, 2, ""), NewGroup()},
		{"text parent", NewText("hi"), NewGroup()},
		{"root child", NewGroup(), NewRoot(10, 10)},
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%s: Insert did not panic", tt.name)
				}
			}()
			tt.parent.Insert(tt.child)
		}()
	}
}

func TestFilterIntersecting(t *testing.T) {
	root, group, _, pb, _ := buildTree()
	removed := root.FilterIntersecting(vertical(5, 8, 12), false, true)
	if len(removed) != 1 || removed[0] != pb {
		t.Fatalf("removed %d nodes, want just the middle stroke", len(removed))
	}
	if len(group.Children) != 0 {
		t.Error("hit path still attached to its group")
	}
	if len(root.Children) != 3 {
		t.Error("group removed along with its hit child")
	}
}

func TestFilterKeepIntersecting(t *testing.T) {
	root, group, _, pb, _ := buildTree()
	removed := root.FilterIntersecting(vertical(5, 8, 12), true, true)
	if len(removed) != 1 || removed[0] != pb {
		t.Fatalf("collected %d nodes, want just the middle stroke", len(removed))
	}
	if len(group.Children) != 1 {
		t.Error("keepIntersecting still excised the hit path")
	}
}

func TestFilterNoRecurse(t *testing.T) {
	root, group, _, _, _ := buildTree()
	removed := root.FilterIntersecting(vertical(5, 8, 12), false, false)
	if len(removed) != 0 {
		t.Errorf("non-recursive filter reached into a group, removed %d", len(removed))
	}
	if len(group.Children) != 1 {
		t.Error("group child missing after non-recursive filter")
	}
}

func TestFilterMiss(t *testing.T) {
	root, _, _, _, _ := buildTree()
	if removed := root.FilterIntersecting(vertical(50, 0, 30), false, true); len(removed) != 0 {
		t.Errorf("distant segment removed %d nodes", len(removed))
	}
	if len(root.Children) != 3 {
		t.Error("tree changed on a miss")
	}
}

func TestFilterOrder(t *testing.T) {
	root, _, pa, pb, pc := buildTree()
	removed := root.FilterIntersecting(vertical(5, -5, 30), false, true)
	if len(removed) != 3 {
		t.Fatalf("removed %d nodes, want 3", len(removed))
	}
	// pre-order: direct children first, then inside the group
	if removed[0] != pa || removed[1] != pc || removed[2] != pb {
		t.Error("removal order does not follow the traversal")
	}
}

func TestClearPaths(t *testing.T) {
	root, group, _, _, _ := buildTree()
	root.Insert(NewText("label"))
	removed := root.ClearPaths(true)
	if len(removed) != 3 {
		t.Fatalf("cleared %d paths, want 3", len(removed))
	}
	if len(group.Children) != 0 {
		t.Error("group still holds a path")
	}
	// the emptied group and the text leaf survive
	if len(root.Children) != 2 {
		t.Errorf("root has %d children, want 2", len(root.Children))
	}
	if again := root.ClearPaths(true); len(again) != 0 {
		t.Errorf("second clear removed %d nodes", len(again))
	}
}

func TestGeometryCache(t *testing.T) {
	p := NewPath(RGB{}, 2, "M0,0 L10,0")
	first, err := p.Geometry()
	if err != nil {
		t.Fatal(err)
	}
	second, _ := p.Geometry()
	if &first[0] != &second[0] {
		t.Error("second call decoded again instead of using the cache")
	}
	p.SetData("M0,0 L10,0 L10,10")
	refreshed, err := p.Geometry()
	if err != nil {
		t.Fatal(err)
	}
	if len(refreshed) != 2 {
		t.Errorf("stale geometry after SetData: %d segments", len(refreshed))
	}
	p.SetData("Z bogus")
	if _, err := p.Geometry(); err == nil {
		t.Error("malformed data decoded without error")
	}
}
