package geom2d

// OrientPath reorients p to wind CCW if ccw is true, CW otherwise,
// reversing its vertex order if needed.
func OrientPath(p Path, ccw bool) Path {
	if IsCCW(p) == ccw {
		return p
	}
	out := make(Path, len(p))
	for i, v := range p {
		out[len(p)-1-i] = v
	}
	return out
}

// OrientPaths reorients every ring in paths so that outer loops wind
// CCW and holes wind CW, using nesting depth: a ring nested inside an
// odd number of other rings is a hole.
//
// A naive containment-by-draining implementation is order-dependent:
// reorienting a ring changes what the next containment test sees,
// so which rings end up treated as holes can depend on iteration
// order. This implementation instead takes a full snapshot of paths
// before reorienting any of them, so containment depth is computed
// once, up front, against every other ring — independent of
// processing order.
func OrientPaths(paths Paths) Paths {
	n := len(paths)
	depth := make([]int, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if pathContainsPath(paths[j], paths[i]) {
				depth[i]++
			}
		}
	}

	out := make(Paths, n)
	for i, p := range paths {
		ccw := depth[i]%2 == 0
		out[i] = OrientPath(p, ccw)
	}
	return out
}
