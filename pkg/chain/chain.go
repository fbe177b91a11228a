// Package chain implements the Path Chainer: joining
// polylines whose endpoints lie close together into longer continuous
// extrusion paths, per (layer, nozzle) bucket.
package chain

import (
	"math"

	"github.com/taigrr/slicer/pkg/geom2d"
	"seehuhn.de/go/geom/vec"
)

// MaxDist is the maximum endpoint gap the chainer will splice across.
const MaxDist = 2.0

// Chain repeatedly splices the closest pair of endpoints among the
// remaining polylines into the current open polyline, until no pair
// lies within MaxDist, then starts a new one. Endpoint
// identity is compared by position index within the slice being
// consumed, never by pointer or value identity, since multiple
// polylines in a layer can share identical coordinates.
func Chain(lines geom2d.Paths) geom2d.Paths {
	remaining := make(geom2d.Paths, len(lines))
	copy(remaining, lines)

	var out geom2d.Paths
	for len(remaining) > 0 {
		current := remaining[0]
		remaining = remaining[1:]

		for {
			bestIdx := -1
			bestDist := math.Inf(1)
			bestMode := 0 // 0: append Q forward to P's back
			// 1: append reversed(Q) to P's back
			// 2: prepend reversed(Q) to P's front
			// 3: prepend Q to P's front

			pFront, pBack := current[0], current[len(current)-1]
			for i, q := range remaining {
				if len(q) == 0 {
					continue
				}
				qFront, qBack := q[0], q[len(q)-1]
				candidates := [4]struct {
					d    float64
					mode int
				}{
					{dist(pBack, qFront), 0},
					{dist(pBack, qBack), 1},
					{dist(pFront, qBack), 3},
					{dist(pFront, qFront), 2},
				}
				for _, c := range candidates {
					if c.d < bestDist {
						bestDist = c.d
						bestIdx = i
						bestMode = c.mode
					}
				}
			}

			if bestIdx < 0 || bestDist > MaxDist {
				break
			}

			q := remaining[bestIdx]
			remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
			current = splice(current, q, bestMode)
		}

		out = append(out, current)
	}
	return out
}

func splice(p, q geom2d.Path, mode int) geom2d.Path {
	switch mode {
	case 0:
		return append(p, q...)
	case 1:
		return append(p, reversed(q)...)
	case 2:
		return append(reversed(q), p...)
	default: // 3
		return append(q, p...)
	}
}

func reversed(p geom2d.Path) geom2d.Path {
	out := make(geom2d.Path, len(p))
	for i, v := range p {
		out[len(p)-1-i] = v
	}
	return out
}

func dist(a, b vec.Vec2) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
