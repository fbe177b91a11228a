package geom2d

import "seehuhn.de/go/geom/vec"

// Clip returns the even-odd intersection of a and b, the closed-ring counterpart of ClipLines.
func Clip(a, b Paths) Paths {
	return booleanOp(a, b, opIntersect)
}

// ClipLines trims each open polyline in lines to the portions that
// lie inside mask, splitting a line into several output segments
// where it crosses the mask boundary. This is the primary real
// consumer of the boolean engine's containment machinery: infill and
// support line generators build unbounded line rasters, then clip
// them to the region they're actually allowed to fill.
func ClipLines(lines Paths, mask Paths) Paths {
	var out Paths
	for _, line := range lines {
		out = append(out, clipOneLine(line, mask)...)
	}
	return out
}

func clipOneLine(line Path, mask Paths) Paths {
	if len(line) < 2 {
		return nil
	}

	type cut struct {
		pos float64 // cumulative parametric position along the whole line
		pt  vec.Vec2
	}
	var cuts []cut
	pos := 0.0
	for i := 0; i < len(line)-1; i++ {
		a, b := line[i], line[i+1]
		cuts = append(cuts, cut{pos: pos, pt: a})
		var ts []float64
		for _, ring := range mask {
			ring = ClosePath(ring)
			for j := 0; j < len(ring)-1; j++ {
				t, _, ok := segIntersect(a, b, ring[j], ring[j+1])
				if ok && t > 1e-9 && t < 1-1e-9 {
					ts = append(ts, t)
				}
			}
		}
		sortFloats(ts)
		for _, t := range ts {
			cuts = append(cuts, cut{pos: pos + t, pt: lerp(a, b, t)})
		}
		pos += 1
	}
	cuts = append(cuts, cut{pos: pos, pt: line[len(line)-1]})

	var out Paths
	var current Path
	for k := 0; k+1 < len(cuts); k++ {
		a, b := cuts[k].pt, cuts[k+1].pt
		if PathsContain(midpoint(a, b), mask) {
			if len(current) == 0 {
				current = append(current, a)
			}
			current = append(current, b)
		} else {
			if len(current) >= 2 {
				out = append(out, current)
			}
			current = nil
		}
	}
	if len(current) >= 2 {
		out = append(out, current)
	}
	return out
}

func sortFloats(xs []float64) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j] < xs[j-1]; j-- {
			xs[j], xs[j-1] = xs[j-1], xs[j]
		}
	}
}
