// Implements a raster backend to paint documents, by wrapping
// rasterx. The drawing subset is stroke-only, so only the dasher
// half of the rasterizer is driven.
package render

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"github.com/bvannier/sketchvg/svgdoc"
	"github.com/bvannier/sketchvg/svgpath"
)

const miterLimit = 4

// toFixedP converts two floats to a fixed point.
func toFixedP(p svgpath.Point) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(p.X * 64), Y: fixed.Int26_6(p.Y * 64)}
}

// Document rasterizes the tree into an RGBA image of the root's
// size, stroking every path leaf in traversal order.
func Document(doc *svgdoc.Node) (*image.RGBA, error) {
	w, h := doc.Width, doc.Height
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)
	if err := strokeNode(doc, dasher, scanner); err != nil {
		return nil, err
	}
	return img, nil
}

// EncodePNG rasterizes the document and writes it as PNG.
func EncodePNG(w io.Writer, doc *svgdoc.Node) error {
	img, err := Document(doc)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

func strokeNode(n *svgdoc.Node, dasher *rasterx.Dasher, scanner rasterx.Scanner) error {
	for _, child := range n.Children {
		switch child.Kind {
		case svgdoc.KindGroup:
			if err := strokeNode(child, dasher, scanner); err != nil {
				return err
			}
		case svgdoc.KindPath:
			if err := strokePath(child, dasher, scanner); err != nil {
				return err
			}
		}
	}
	return nil
}

func strokePath(n *svgdoc.Node, dasher *rasterx.Dasher, scanner rasterx.Scanner) error {
	geom, err := n.Geometry()
	if err != nil {
		return err
	}
	if len(geom) == 0 {
		return nil
	}
	dasher.Clear()
	c := n.Color
	scanner.SetColor(rasterx.ApplyOpacity(color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}, 1))
	dasher.SetStroke(
		fixed.Int26_6(n.StrokeWidth*64), fixed.Int26_6(miterLimit*64),
		rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round, nil, 0,
	)

	var cur svgpath.Point
	started := false
	for _, seg := range geom {
		switch seg := seg.(type) {
		case svgpath.Line:
			if !started || seg.Start != cur {
				dasher.Stop(false)
				dasher.Start(toFixedP(seg.Start))
				started = true
			}
			dasher.Line(toFixedP(seg.End))
			cur = seg.End
		case svgpath.CubicBezier:
			if !started || seg.P0 != cur {
				dasher.Stop(false)
				dasher.Start(toFixedP(seg.P0))
				started = true
			}
			dasher.CubeBezier(toFixedP(seg.P1), toFixedP(seg.P2), toFixedP(seg.P3))
			cur = seg.P3
		}
	}
	dasher.Stop(false)
	dasher.Draw()
	return nil
}
