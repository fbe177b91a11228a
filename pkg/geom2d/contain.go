package geom2d

import "seehuhn.de/go/geom/vec"

// PointInPath reports whether pt is inside the single ring p using
// the even-odd (odd winding count) rule.
func PointInPath(pt vec.Vec2, p Path) bool {
	inside := false
	n := len(p)
	if n < 3 {
		return false
	}
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := p[i], p[j]
		if (a.Y > pt.Y) != (b.Y > pt.Y) {
			xIntersect := a.X + (pt.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if pt.X < xIntersect {
				inside = !inside
			}
		}
	}
	return inside
}

// PathsContain reports whether pt is inside paths under the even-odd
// fill rule: a point is inside iff it lies inside an odd number of
// rings.
func PathsContain(pt vec.Vec2, paths Paths) bool {
	count := 0
	for _, p := range paths {
		if PointInPath(pt, p) {
			count++
		}
	}
	return count%2 == 1
}

// pathContainsPath reports whether every vertex of inner lies inside
// outer (a cheap containment test used by OrientPaths; exact for
// non-intersecting rings, the only case that arises here).
func pathContainsPath(outer, inner Path) bool {
	if len(inner) == 0 {
		return false
	}
	for _, v := range inner {
		if !PointInPath(v, outer) {
			return false
		}
	}
	return true
}
