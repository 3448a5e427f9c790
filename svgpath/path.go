// Implements the abstract representation of stroke paths:
// points, line segments and cubic bezier curves, together
// with the textual path command codec consumed by the
// document tree and the hit testing used by the eraser.
package svgpath

import "math"

// This file defines the basic geometric primitives.

type pathCommand uint8

// Human readable path constants
const (
	pathMoveTo pathCommand = iota
	pathLineTo
	pathCubicTo
)

// Point is a location on the drawing surface.
type Point struct {
	X, Y float64
}

// Add returns the vector sum p + q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns the vector difference p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Mul returns p scaled by k.
func (p Point) Mul(k float64) Point { return Point{p.X * k, p.Y * k} }

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 { return p.X*q.X + p.Y*q.Y }

// PerpDot returns the perpendicular dot product (2D cross product) of p and q.
func (p Point) PerpDot(q Point) float64 { return p.X*q.Y - p.Y*q.X }

// Length is the distance from the origin of the point.
func (p Point) Length() float64 { return math.Hypot(p.X, p.Y) }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return p.Sub(q).Length() }

// Normalize returns the unit vector in the direction of p,
// or the zero vector if p is (numerically) the origin.
func (p Point) Normalize() Point {
	l := p.Length()
	if l < eps {
		return Point{}
	}
	return Point{p.X / l, p.Y / l}
}

// Segment groups the geometric primitives a decoded path is made of.
type Segment interface {
	command() pathCommand

	// At evaluates the segment at parameter t in [0, 1].
	At(t float64) Point
}

// Line is a straight segment between two points.
type Line struct {
	Start, End Point
}

// CubicBezier is a cubic bezier curve with fixed endpoints
// P0, P3 and control points P1, P2.
type CubicBezier struct {
	P0, P1, P2, P3 Point
}

func (Line) command() pathCommand        { return pathLineTo }
func (CubicBezier) command() pathCommand { return pathCubicTo }

// At evaluates the line at parameter t.
func (l Line) At(t float64) Point {
	return l.Start.Add(l.End.Sub(l.Start).Mul(t))
}

// At evaluates the curve at parameter t using the Bernstein form.
func (c CubicBezier) At(t float64) Point {
	u := 1 - t
	b0 := u * u * u
	b1 := 3 * u * u * t
	b2 := 3 * u * t * t
	b3 := t * t * t
	return Point{
		X: b0*c.P0.X + b1*c.P1.X + b2*c.P2.X + b3*c.P3.X,
		Y: b0*c.P0.Y + b1*c.P1.Y + b2*c.P2.Y + b3*c.P3.Y,
	}
}

// Derivative evaluates the first derivative of the curve at t.
func (c CubicBezier) Derivative(t float64) Point {
	u := 1 - t
	d0 := c.P1.Sub(c.P0).Mul(3 * u * u)
	d1 := c.P2.Sub(c.P1).Mul(6 * u * t)
	d2 := c.P3.Sub(c.P2).Mul(3 * t * t)
	return d0.Add(d1).Add(d2)
}

// SecondDerivative evaluates the second derivative of the curve at t.
func (c CubicBezier) SecondDerivative(t float64) Point {
	u := 1 - t
	a := c.P2.Sub(c.P1.Mul(2)).Add(c.P0).Mul(6 * u)
	b := c.P3.Sub(c.P2.Mul(2)).Add(c.P1).Mul(6 * t)
	return a.Add(b)
}
