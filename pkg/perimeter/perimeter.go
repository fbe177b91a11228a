// Package perimeter implements the Perimeter Builder:
// inward-offsetting each layer's reconstructed outline into
// shell_count concentric rings, outermost first.
package perimeter

import (
	"math/rand"

	"github.com/taigrr/slicer/pkg/geom2d"
)

// Build produces shell_count offset copies of p0 (the layer's
// reconstructed, oriented outline): shell[k] = offset(p0, -(k+0.5)*w).
// When randomStarts is true, every inner shell's polylines (k>0) are
// rotated by a uniformly random fraction of their own length, so
// successive shells don't all start their seam at the same point.
func Build(p0 geom2d.Paths, shellCount int, width float64, randomStarts bool, rng *rand.Rand) []geom2d.Paths {
	shells := make([]geom2d.Paths, shellCount)
	for k := 0; k < shellCount; k++ {
		ring := geom2d.Offset(p0, -(float64(k)+0.5)*width)
		if k > 0 && randomStarts && rng != nil {
			ring = rotateStarts(ring, rng)
		}
		shells[k] = ring
	}
	return shells
}

// rotateStarts shifts each polyline's starting vertex by
// floor(r*(n-1)) positions, r drawn uniformly from [0,1).
func rotateStarts(paths geom2d.Paths, rng *rand.Rand) geom2d.Paths {
	out := make(geom2d.Paths, len(paths))
	for i, p := range paths {
		n := len(p)
		if n < 2 {
			out[i] = p
			continue
		}
		r := rng.Float64()
		shift := int(r * float64(n-1))
		if shift <= 0 {
			out[i] = p
			continue
		}
		rotated := make(geom2d.Path, n)
		for j := 0; j < n; j++ {
			rotated[j] = p[(j+shift)%n]
		}
		out[i] = rotated
	}
	return out
}
