// Converts a captured stroke, an ordered sequence of points,
// into a minimal run of smooth cubic bezier curves within a
// bounded error. The fit is pure and deterministic: identical
// input always yields identical output.
package curvefit

import (
	"math"

	"github.com/bvannier/sketchvg/svgpath"
)

// maxIterations bounds the Newton-Raphson reparameterization
// passes attempted before splitting a range.
const maxIterations = 4

// Fit covers the points left to right with cubic bezier curves
// whose maximum deviation from the source points stays within
// maxError. Exactly equal consecutive points are collapsed first;
// fewer than two distinct points yield no curves. Degenerate
// ranges (near-coincident points, ill-conditioned solves) fall
// back to a straight connecting segment instead of failing.
func Fit(points []svgpath.Point, maxError float64) []svgpath.CubicBezier {
	pts := dedupe(points)
	if len(pts) < 2 {
		return nil
	}
	var curves []svgpath.CubicBezier
	fitCubic(pts, leftTangent(pts), rightTangent(pts), maxError, &curves)
	return curves
}

func dedupe(points []svgpath.Point) []svgpath.Point {
	out := make([]svgpath.Point, 0, len(points))
	for _, p := range points {
		if len(out) > 0 && p == out[len(out)-1] {
			continue
		}
		out = append(out, p)
	}
	return out
}

// leftTangent estimates the unit tangent at the first point.
func leftTangent(pts []svgpath.Point) svgpath.Point {
	t := pts[1].Sub(pts[0]).Normalize()
	if t == (svgpath.Point{}) {
		t = pts[len(pts)-1].Sub(pts[0]).Normalize()
	}
	return t
}

// rightTangent estimates the unit tangent at the last point,
// directed into the range.
func rightTangent(pts []svgpath.Point) svgpath.Point {
	n := len(pts)
	t := pts[n-2].Sub(pts[n-1]).Normalize()
	if t == (svgpath.Point{}) {
		t = pts[0].Sub(pts[n-1]).Normalize()
	}
	return t
}

// centerTangent estimates the unit tangent at an interior split
// point from the local point-to-point direction.
func centerTangent(pts []svgpath.Point, center int) svgpath.Point {
	v1 := pts[center-1].Sub(pts[center])
	v2 := pts[center].Sub(pts[center+1])
	t := v1.Add(v2).Mul(0.5).Normalize()
	if t == (svgpath.Point{}) {
		t = v1.Normalize()
	}
	return t
}

// fitCubic fits the range with a single curve, retrying with
// reparameterization, and splits at the point of maximum error
// when the iteration budget is exhausted. tHat1 and tHat2 are the
// unit tangents at the range ends, both pointing into the range.
func fitCubic(pts []svgpath.Point, tHat1, tHat2 svgpath.Point, maxError float64, out *[]svgpath.CubicBezier) {
	if len(pts) == 2 {
		// two points: a straight (possibly near-zero-length) curve
		dist := pts[0].Dist(pts[1]) / 3
		*out = append(*out, svgpath.CubicBezier{
			P0: pts[0],
			P1: pts[0].Add(tHat1.Mul(dist)),
			P2: pts[1].Add(tHat2.Mul(dist)),
			P3: pts[1],
		})
		return
	}

	u := chordLengthParameterize(pts)
	curve := generateBezier(pts, u, tHat1, tHat2)
	maxDist, split := computeMaxError(pts, curve, u)
	if maxDist <= maxError {
		*out = append(*out, curve)
		return
	}

	// a fit not too far off can usually be saved by refining the
	// parameter values instead of splitting
	if maxDist < maxError*4 {
		for i := 0; i < maxIterations; i++ {
			u = reparameterize(pts, curve, u)
			curve = generateBezier(pts, u, tHat1, tHat2)
			maxDist, split = computeMaxError(pts, curve, u)
			if maxDist <= maxError {
				*out = append(*out, curve)
				return
			}
		}
	}

	tHatCenter := centerTangent(pts, split)
	fitCubic(pts[:split+1], tHat1, tHatCenter, maxError, out)
	fitCubic(pts[split:], tHatCenter.Mul(-1), tHat2, maxError, out)
}

// chordLengthParameterize assigns every point a parameter in
// [0, 1] proportional to its running chord length.
func chordLengthParameterize(pts []svgpath.Point) []float64 {
	u := make([]float64, len(pts))
	for i := 1; i < len(pts); i++ {
		u[i] = u[i-1] + pts[i].Dist(pts[i-1])
	}
	total := u[len(u)-1]
	if total == 0 {
		// coincident range; spread parameters evenly
		for i := range u {
			u[i] = float64(i) / float64(len(u)-1)
		}
		return u
	}
	for i := range u {
		u[i] /= total
	}
	return u
}

// generateBezier solves the least-squares system for the two free
// control points of a cubic with fixed endpoints and tangent
// directions. An ill-conditioned or degenerate solve falls back
// to control points a third of the chord along each tangent,
// which reduces the curve to a straight connecting segment.
func generateBezier(pts []svgpath.Point, u []float64, tHat1, tHat2 svgpath.Point) svgpath.CubicBezier {
	first, last := pts[0], pts[len(pts)-1]

	var c00, c01, c11, x0, x1 float64
	for i, t := range u {
		b0, b1, b2, b3 := bernstein(t)
		a0 := tHat1.Mul(b1)
		a1 := tHat2.Mul(b2)
		c00 += a0.Dot(a0)
		c01 += a0.Dot(a1)
		c11 += a1.Dot(a1)
		tmp := pts[i].Sub(first.Mul(b0 + b1)).Sub(last.Mul(b2 + b3))
		x0 += a0.Dot(tmp)
		x1 += a1.Dot(tmp)
	}

	detC0C1 := c00*c11 - c01*c01
	detC0X := c00*x1 - c01*x0
	detXC1 := x0*c11 - x1*c01

	var alphaL, alphaR float64
	if detC0C1 != 0 {
		alphaL = detXC1 / detC0C1
		alphaR = detC0X / detC0C1
	}

	segLength := first.Dist(last)
	if alphaL < 1e-6*segLength || alphaR < 1e-6*segLength {
		// Wu/Barsky heuristic for unusable alpha values
		dist := segLength / 3
		alphaL, alphaR = dist, dist
	}

	return svgpath.CubicBezier{
		P0: first,
		P1: first.Add(tHat1.Mul(alphaL)),
		P2: last.Add(tHat2.Mul(alphaR)),
		P3: last,
	}
}

func bernstein(t float64) (b0, b1, b2, b3 float64) {
	s := 1 - t
	b0 = s * s * s
	b1 = 3 * s * s * t
	b2 = 3 * s * t * t
	b3 = t * t * t
	return
}

// computeMaxError returns the maximum distance from the source
// points to the curve evaluated at their parameter values, and
// the index to split at if the error is too large.
func computeMaxError(pts []svgpath.Point, curve svgpath.CubicBezier, u []float64) (float64, int) {
	maxDist := 0.0
	split := len(pts) / 2
	for i := 1; i < len(pts)-1; i++ {
		dist := curve.At(u[i]).Dist(pts[i])
		if dist > maxDist {
			maxDist = dist
			split = i
		}
	}
	return maxDist, split
}

// reparameterize refines each parameter value by projecting its
// point onto the current curve with one Newton-Raphson step.
func reparameterize(pts []svgpath.Point, curve svgpath.CubicBezier, u []float64) []float64 {
	uPrime := make([]float64, len(u))
	for i := range u {
		uPrime[i] = newtonRaphson(curve, pts[i], u[i])
	}
	return uPrime
}

func newtonRaphson(curve svgpath.CubicBezier, p svgpath.Point, u float64) float64 {
	d := curve.At(u).Sub(p)
	d1 := curve.Derivative(u)
	d2 := curve.SecondDerivative(u)
	numerator := d.Dot(d1)
	denominator := d1.Dot(d1) + d.Dot(d2)
	if math.Abs(denominator) < 1e-12 {
		return u
	}
	t := u - numerator/denominator
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
