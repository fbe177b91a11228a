package geom2d

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// Offset grows (positive delta) or shrinks (negative delta) every
// ring in paths by delta millimeters along its outward normal. Each
// vertex moves along the bisector of its two edge normals far enough
// that both adjacent edges end up exactly delta away, so corners are
// mitered; corners are not squared off and no vertices are inserted.
// Each ring is offset independently; self-
// intersections produced by shrinking past a ring's local feature
// size are not cleaned up, matching the perimeter builder's own
// degenerate-ring handling.
func Offset(paths Paths, delta float64) Paths {
	out := make(Paths, 0, len(paths))
	for _, p := range paths {
		r := offsetRing(p, delta)
		if len(r) >= 3 {
			out = append(out, r)
		}
	}
	return out
}

func offsetRing(p Path, delta float64) Path {
	ring := open(p)
	n := len(ring)
	if n < 3 {
		return nil
	}

	ccw := IsCCW(ClosePath(ring))
	sign := 1.0
	if !ccw {
		sign = -1.0
	}

	normals := make([]vec.Vec2, n)
	for i := 0; i < n; i++ {
		a := ring[i]
		b := ring[(i+1)%n]
		dx, dy := b.X-a.X, b.Y-a.Y
		l := math.Hypot(dx, dy)
		if l < epsilon {
			normals[i] = vec.Vec2{}
			continue
		}
		// outward normal of a CCW ring's edge (dx,dy) is (dy,-dx).
		nx, ny := dy/l, -dx/l
		normals[i] = vec.Vec2{X: nx * sign, Y: ny * sign}
	}

	out := make(Path, n)
	for i := 0; i < n; i++ {
		prev := normals[(i-1+n)%n]
		cur := normals[i]
		v := ring[i]
		avg := vec.Vec2{X: (prev.X + cur.X) / 2, Y: (prev.Y + cur.Y) / 2}
		l := math.Hypot(avg.X, avg.Y)
		if l < epsilon {
			out[i] = v
			continue
		}
		scale := delta / (avg.X*avg.X + avg.Y*avg.Y)
		out[i] = vec.Vec2{X: v.X + avg.X*scale, Y: v.Y + avg.Y*scale}
	}
	return out
}
