package geom2d

import "seehuhn.de/go/geom/rect"

// PathsBounds returns the axis-aligned bounding rectangle of paths.
// The zero rect.Rect is returned for an empty path set.
func PathsBounds(paths Paths) rect.Rect {
	first := true
	var r rect.Rect
	for _, p := range paths {
		for _, v := range p {
			if first {
				r = rect.Rect{LLx: v.X, LLy: v.Y, URx: v.X, URy: v.Y}
				first = false
				continue
			}
			if v.X < r.LLx {
				r.LLx = v.X
			}
			if v.Y < r.LLy {
				r.LLy = v.Y
			}
			if v.X > r.URx {
				r.URx = v.X
			}
			if v.Y > r.URy {
				r.URy = v.Y
			}
		}
	}
	return r
}

// ClosePath ensures p's first and last point coincide.
func ClosePath(p Path) Path {
	if len(p) == 0 {
		return p
	}
	if samePoint(p[0], p[len(p)-1]) {
		return p
	}
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = p[0]
	return out
}

// ClosePaths closes every ring in ps.
func ClosePaths(ps Paths) Paths {
	out := make(Paths, len(ps))
	for i, p := range ps {
		out[i] = ClosePath(p)
	}
	return out
}

// open returns p with a duplicated closing vertex removed, the
// inverse of ClosePath, so algorithms that want a plain ring (no
// repeated first/last point) can work on a canonical form.
func open(p Path) Path {
	if len(p) >= 2 && samePoint(p[0], p[len(p)-1]) {
		return p[:len(p)-1]
	}
	return p
}
