package svgpath

import "math"

// This file implements the geometric predicate behind erasing:
// does a straight eraser segment cross any of a path's segments?

const eps = 1e-9

func equal(a, b float64) bool {
	return math.Abs(a-b) < eps
}

// Intersects reports whether the query line crosses any of the
// given segments. It returns on the first qualifying hit and has
// no side effects.
func Intersects(query Line, segments []Segment) bool {
	for _, seg := range segments {
		switch seg := seg.(type) {
		case Line:
			if lineLine(query, seg) {
				return true
			}
		case CubicBezier:
			if lineCubic(query, seg) {
				return true
			}
		}
	}
	return false
}

// lineLine solves the parametric determinant system for two
// segments. Parallel or collinear segments do not intersect
// unless their collinear extents overlap.
func lineLine(a, b Line) bool {
	da := a.End.Sub(a.Start)
	db := b.End.Sub(b.Start)
	div := da.PerpDot(db)
	if equal(div, 0) {
		return collinearOverlap(a, b)
	}
	d := a.Start.Sub(b.Start)
	ta := db.PerpDot(d) / div
	tb := da.PerpDot(d) / div
	return 0 <= ta && ta <= 1 && 0 <= tb && tb <= 1
}

func collinearOverlap(a, b Line) bool {
	da := a.End.Sub(a.Start)
	if !equal(da.PerpDot(b.Start.Sub(a.Start)), 0) {
		return false // parallel but offset
	}
	len2 := da.Dot(da)
	if equal(len2, 0) {
		// a is a degenerate point; hit if it lies on b
		return pointOnSegment(a.Start, b)
	}
	t0 := b.Start.Sub(a.Start).Dot(da) / len2
	t1 := b.End.Sub(a.Start).Dot(da) / len2
	if t1 < t0 {
		t0, t1 = t1, t0
	}
	return t0 <= 1+eps && t1 >= -eps
}

func pointOnSegment(p Point, l Line) bool {
	d := l.End.Sub(l.Start)
	if !equal(d.PerpDot(p.Sub(l.Start)), 0) {
		return false
	}
	t := p.Sub(l.Start).Dot(d)
	return -eps <= t && t <= d.Dot(d)+eps
}

// lineCubic substitutes the implicit equation of the query line
// into the parametric form of the curve, yielding a cubic
// polynomial in t. Real roots in [0, 1] whose evaluated point
// lies within the query segment's extent are intersections.
// See https://www.particleincell.com/2013/cubic-line-intersection/
func lineCubic(query Line, c CubicBezier) bool {
	// write the line as N.X = bias
	n := Point{query.End.Y - query.Start.Y, query.Start.X - query.End.X}
	bias := query.Start.Dot(n)

	a3 := n.Dot(c.P3.Sub(c.P0).Add(c.P1.Mul(3)).Sub(c.P2.Mul(3)))
	a2 := n.Dot(c.P0.Mul(3).Sub(c.P1.Mul(6)).Add(c.P2.Mul(3)))
	a1 := n.Dot(c.P1.Mul(3).Sub(c.P0.Mul(3)))
	a0 := n.Dot(c.P0) - bias

	r0, r1, r2 := solveCubic(a3, a2, a1, a0)

	// order the query endpoints along the dominant axis once,
	// so the extent check below is a plain interval test
	l0, l1 := query.Start, query.End
	horizontal := math.Abs(l1.Y-l0.Y) <= math.Abs(l1.X-l0.X)
	if horizontal {
		if l1.X < l0.X {
			l0, l1 = l1, l0
		}
	} else if l1.Y < l0.Y {
		l0, l1 = l1, l0
	}

	for _, root := range [3]float64{r0, r1, r2} {
		if math.IsNaN(root) || root < -eps || root > 1+eps {
			continue
		}
		pos := c.At(clamp01(root))
		if horizontal {
			if l0.X-eps <= pos.X && pos.X <= l1.X+eps {
				return true
			}
		} else if l0.Y-eps <= pos.Y && pos.Y <= l1.Y+eps {
			return true
		}
	}
	return false
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// solveQuadratic returns the real roots of ax^2 + bx + c, lowest
// first, padding with NaN. The Citardauq form avoids catastrophic
// cancellation, see https://math.stackexchange.com/a/2007723
func solveQuadratic(a, b, c float64) (float64, float64) {
	if equal(a, 0) {
		if equal(b, 0) {
			if equal(c, 0) {
				return 0, math.NaN() // every x is a solution
			}
			return math.NaN(), math.NaN()
		}
		return -c / b, math.NaN()
	}
	if equal(c, 0) {
		if equal(b, 0) {
			return 0, math.NaN()
		}
		x1, x2 := 0.0, -b/a
		if x2 < x1 {
			x1, x2 = x2, x1
		}
		return x1, x2
	}
	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return math.NaN(), math.NaN()
	} else if equal(discriminant, 0) {
		return -b / (2 * a), math.NaN()
	}
	q := math.Sqrt(discriminant)
	if b < 0 {
		q = -q
	}
	x1 := -(b + q) / (2 * a)
	x2 := c / (a * x1)
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	return x1, x2
}

// solveCubic returns the real roots of ax^3 + bx^2 + cx + d,
// lowest first, padding with NaN.
// See https://www.geometrictools.com/Documentation/LowDegreePolynomialRoots.pdf
func solveCubic(a, b, c, d float64) (float64, float64, float64) {
	var x1, x2, x3 float64
	x2, x3 = math.NaN(), math.NaN()
	if equal(a, 0) {
		x1, x2 = solveQuadratic(b, c, d)
	} else {
		// obtain the monic, then depressed polynomial x^3 + c1.x + c0
		b /= a
		c /= a
		d /= a
		bthird := b / 3
		c0 := d - bthird*(c-2*bthird*bthird)
		c1 := c - b*bthird
		switch {
		case equal(c0, 0):
			if c1 < 0 {
				tmp := math.Sqrt(-c1)
				x1 = -tmp - bthird
				x2 = tmp - bthird
				x3 = -bthird
			} else {
				x1 = -bthird
			}
		case equal(c1, 0):
			if 0 < c0 {
				x1 = -math.Cbrt(c0) - bthird
			} else {
				x1 = math.Cbrt(-c0) - bthird
			}
		default:
			delta := -(4*c1*c1*c1 + 27*c0*c0)
			if equal(delta, 0) {
				delta = 0
			}
			if delta < 0 {
				betaRe := -c0 / 2
				betaIm := math.Sqrt(-delta / 108)
				tmp := betaRe - betaIm
				if 0 <= tmp {
					x1 = math.Cbrt(tmp)
				} else {
					x1 = -math.Cbrt(-tmp)
				}
				tmp = betaRe + betaIm
				if 0 <= tmp {
					x1 += math.Cbrt(tmp)
				} else {
					x1 -= math.Cbrt(-tmp)
				}
				x1 -= bthird
			} else if 0 < delta {
				betaRe := -c0 / 2
				betaIm := math.Sqrt(delta / 108)
				theta := math.Atan2(betaIm, betaRe) / 3
				sintheta, costheta := math.Sincos(theta)
				dist := math.Sqrt(-c1 / 3)
				tmp := dist * sintheta * math.Sqrt(3)
				x1 = 2*dist*costheta - bthird
				x2 = -dist*costheta - tmp - bthird
				x3 = -dist*costheta + tmp - bthird
			} else {
				tmp := -3 * c0 / (2 * c1)
				x1 = tmp - bthird
				x2 = -2*tmp - bthird
			}
		}
	}

	// sort, NaN last
	if x3 < x2 || math.IsNaN(x2) {
		x2, x3 = x3, x2
	}
	if x2 < x1 || math.IsNaN(x1) {
		x1, x2 = x2, x1
	}
	if x3 < x2 || (math.IsNaN(x2) && !math.IsNaN(x3)) {
		x2, x3 = x3, x2
	}
	return x1, x2, x3
}
