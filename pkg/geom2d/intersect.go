package geom2d

import "seehuhn.de/go/geom/vec"

// segIntersect computes the intersection of segment (p1,p2) with
// segment (p3,p4), returning the parametric position t along
// (p1,p2) and u along (p3,p4), both in [0,1], and ok=true if the
// segments cross. Colinear/parallel segments report ok=false: the
// boolean engine treats exact overlaps as a degenerate case handled
// separately by the containment fallback.
func segIntersect(p1, p2, p3, p4 vec.Vec2) (t, u float64, ok bool) {
	d1x, d1y := p2.X-p1.X, p2.Y-p1.Y
	d2x, d2y := p4.X-p3.X, p4.Y-p3.Y
	denom := d1x*d2y - d1y*d2x
	if denom > -1e-12 && denom < 1e-12 {
		return 0, 0, false
	}
	ex, ey := p3.X-p1.X, p3.Y-p1.Y
	t = (ex*d2y - ey*d2x) / denom
	u = (ex*d1y - ey*d1x) / denom
	if t < -1e-9 || t > 1+1e-9 || u < -1e-9 || u > 1+1e-9 {
		return t, u, false
	}
	return t, u, true
}

func lerp(a, b vec.Vec2, t float64) vec.Vec2 {
	return vec.Vec2{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

// splitPoint records a fractional cut position along one edge of a
// ring, used to refine both operands of a boolean op with each
// other's crossing points before classifying fragments.
type splitPoint struct {
	edge int
	t    float64
	pt   vec.Vec2
}

// refineRing walks p's edges and splits each one at every crossing
// with any edge of other, returning a new ring (still closed/open as
// p was) whose vertex list includes every intersection point in
// order.
func refineRing(p Path, other Path) Path {
	n := len(p)
	if n < 2 {
		return p
	}
	out := make(Path, 0, n*2)
	for i := 0; i < n-1; i++ {
		a, b := p[i], p[i+1]
		out = append(out, a)
		var cuts []splitPoint
		m := len(other)
		for j := 0; j < m-1; j++ {
			c, d := other[j], other[j+1]
			t, _, ok := segIntersect(a, b, c, d)
			if ok && t > 1e-9 && t < 1-1e-9 {
				cuts = append(cuts, splitPoint{t: t, pt: lerp(a, b, t)})
			}
		}
		sortCuts(cuts)
		for _, c := range cuts {
			out = append(out, c.pt)
		}
	}
	out = append(out, p[n-1])
	return out
}

func sortCuts(cuts []splitPoint) {
	for i := 1; i < len(cuts); i++ {
		for j := i; j > 0 && cuts[j].t < cuts[j-1].t; j-- {
			cuts[j], cuts[j-1] = cuts[j-1], cuts[j]
		}
	}
}

func midpoint(a, b vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}
