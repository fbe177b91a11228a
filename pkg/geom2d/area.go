package geom2d

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// SignedArea computes the shoelace signed area of p (positive for
// CCW, negative for CW).
func SignedArea(p Path) float64 {
	if len(p) < 3 {
		return 0
	}
	sum := 0.0
	n := len(p)
	for i := 0; i < n; i++ {
		a := p[i]
		b := p[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// IsCCW reports whether p winds counter-clockwise.
func IsCCW(p Path) bool {
	return SignedArea(p) > 0
}

func pathLength(p Path) float64 {
	total := 0.0
	for i := 1; i < len(p); i++ {
		total += dist(p[i-1], p[i])
	}
	return total
}

func dist(a, b vec.Vec2) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return math.Sqrt(dx*dx + dy*dy)
}
