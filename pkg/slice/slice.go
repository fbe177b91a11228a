// Package slice implements the Facet Slicer and Layer Assembler:
// cutting every facet against each layer's Z plane, then stitching
// the resulting 2D segments into closed, correctly oriented layer
// paths.
package slice

import (
	"fmt"
	"math"
	"sort"

	"github.com/taigrr/slicer/pkg/geom2d"
	"github.com/taigrr/slicer/pkg/math3d"
	"github.com/taigrr/slicer/pkg/mesh"
	"seehuhn.de/go/geom/vec"
)

// LayerAssignment maps a 0-based layer index (counting up from the
// mesh's minimum Z) to the facets whose Z range covers that layer.
type LayerAssignment map[int][]mesh.FacetID

// AssignLayers builds the Layer Assignment: facet F is assigned to
// every layer index in
// floor(F.minz/h + 0.01) .. ceil(F.maxz/h - 0.01).
func AssignLayers(store *mesh.Store, layerHeight float64) LayerAssignment {
	out := make(LayerAssignment)
	for fi, f := range store.Facets {
		minZ, maxZ := facetZRange(store, f)
		lo := int(math.Floor(minZ/layerHeight + 0.01))
		hi := int(math.Ceil(maxZ/layerHeight - 0.01))
		for i := lo; i <= hi; i++ {
			out[i] = append(out[i], mesh.FacetID(fi))
		}
	}
	return out
}

func facetZRange(store *mesh.Store, f mesh.Facet) (minZ, maxZ float64) {
	p0 := store.Point(f.V[0])
	minZ, maxZ = p0.Z, p0.Z
	for _, id := range f.V[1:] {
		z := store.Point(id).Z
		if z < minZ {
			minZ = z
		}
		if z > maxZ {
			maxZ = z
		}
	}
	return minZ, maxZ
}

// PlaneZ computes the pre-snapped slicing plane for layer index i at
// layerHeight h and quantum q: the ideal mid-layer height i*h + h/2,
// snapped to floor(k/q+0.5)*q + q/2.
func PlaneZ(i int, layerHeight, quantum float64) float64 {
	k := float64(i)*layerHeight + layerHeight/2
	if quantum <= 0 {
		return k
	}
	return math.Floor(k/quantum+0.5)*quantum + quantum/2
}

const sliceEpsilon = 1e-9

// SliceFacet computes the 2D segment where facet f crosses plane
// z=planeZ. ok is false when the plane
// misses the facet entirely or the facet is too close to horizontal
// to contribute a meaningful segment.
func SliceFacet(store *mesh.Store, f mesh.Facet, planeZ float64) (a, b vec.Vec2, ok bool) {
	v := [3]math3d.Vec3{store.Point(f.V[0]), store.Point(f.V[1]), store.Point(f.V[2])}

	minZ, maxZ := v[0].Z, v[0].Z
	for _, p := range v[1:] {
		if p.Z < minZ {
			minZ = p.Z
		}
		if p.Z > maxZ {
			maxZ = p.Z
		}
	}
	if planeZ < minZ || planeZ > maxZ {
		return vec.Vec2{}, vec.Vec2{}, false
	}

	nx, ny := f.Normal.X, f.Normal.Y
	if math.Hypot(nx, ny) < 1e-6 {
		return vec.Vec2{}, vec.Vec2{}, false
	}

	onPlane := [3]bool{
		math.Abs(v[0].Z-planeZ) < sliceEpsilon,
		math.Abs(v[1].Z-planeZ) < sliceEpsilon,
		math.Abs(v[2].Z-planeZ) < sliceEpsilon,
	}
	nOn := 0
	for _, b := range onPlane {
		if b {
			nOn++
		}
	}

	switch nOn {
	case 2:
		// Case 3: an edge lies exactly on the plane.
		var pts []vec.Vec2
		for i, on := range onPlane {
			if on {
				pts = append(pts, xy(v[i]))
			}
		}
		a, b = pts[0], pts[1]
	case 1:
		// Case 4: one vertex on the plane, intercept on the opposite edge.
		m := 0
		for i, on := range onPlane {
			if on {
				m = i
			}
		}
		i1, i2 := (m+1)%3, (m+2)%3
		t := (planeZ - v[i1].Z) / (v[i2].Z - v[i1].Z)
		a = xy(v[m])
		b = lerp3(v[i1], v[i2], t)
	default:
		// Case 5: two edges straddle the plane.
		var pts []vec.Vec2
		for e := 0; e < 3; e++ {
			i1, i2 := e, (e+1)%3
			s1, s2 := v[i1].Z-planeZ, v[i2].Z-planeZ
			if (s1 < 0) != (s2 < 0) && s1 != s2 {
				t := (planeZ - v[i1].Z) / (v[i2].Z - v[i1].Z)
				pts = append(pts, lerp3(v[i1], v[i2], t))
			}
		}
		if len(pts) != 2 {
			return vec.Vec2{}, vec.Vec2{}, false
		}
		a, b = pts[0], pts[1]
	}

	a, b = orientSegment(a, b, nx, ny)
	return a, b, true
}

// orientSegment swaps a,b if needed so the facet's 2D-projected
// normal (nx,ny) points to the right of the directed segment a->b,
// testing a probe point offset along the normal.
func orientSegment(a, b vec.Vec2, nx, ny float64) (vec.Vec2, vec.Vec2) {
	mid := vec.Vec2{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
	probe := vec.Vec2{X: mid.X + nx, Y: mid.Y + ny}
	dx, dy := b.X-a.X, b.Y-a.Y
	side := dx*(probe.Y-a.Y) - dy*(probe.X-a.X)
	if side > 0 {
		// probe lies to the left of a->b: swap so normal points right.
		return b, a
	}
	return a, b
}

func xy(p math3d.Vec3) vec.Vec2 { return vec.Vec2{X: p.X, Y: p.Y} }

func lerp3(a, b math3d.Vec3, t float64) vec.Vec2 {
	return vec.Vec2{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

// Layer is one assembled, oriented 2D cross-section.
type Layer struct {
	Index int
	Z     float64
	Paths geom2d.Paths
}

// BuildLayer slices every facet assigned to layer index i and
// stitches the resulting segments into closed, oriented paths.
func BuildLayer(store *mesh.Store, facets []mesh.FacetID, index int, layerHeight, quantum float64) (Layer, []string) {
	z := PlaneZ(index, layerHeight, quantum)

	var segs [][2]vec.Vec2
	for _, fid := range facets {
		f := store.Facets[fid]
		a, b, ok := SliceFacet(store, f, z)
		if !ok {
			continue
		}
		segs = append(segs, [2]vec.Vec2{a, b})
	}

	paths, warnings := stitchSegments(segs)
	paths = geom2d.OrientPaths(paths)
	return Layer{Index: index, Z: z, Paths: paths}, warnings
}

func segKey(v vec.Vec2) string {
	return fmt.Sprintf("%.3f,%.3f", v.X, v.Y)
}

// stitchSegments implements the Layer Assembler's endpoint-hash
// stitching algorithm verbatim: segments are enqueued
// by the key of their start point, then repeatedly joined until every
// queue drains. Polylines that never close are reported as warnings
// (the "dead path" / IncompletePolygon diagnostic) and discarded.
func stitchSegments(segs [][2]vec.Vec2) (geom2d.Paths, []string) {
	queues := make(map[string][]geom2d.Path)
	for _, s := range segs {
		k := segKey(s[0])
		queues[k] = append(queues[k], geom2d.Path{s[0], s[1]})
	}

	var closed geom2d.Paths
	var warnings []string

	nonEmpty := func() (string, bool) {
		keys := make([]string, 0, len(queues))
		for k, q := range queues {
			if len(q) > 0 {
				keys = append(keys, k)
			}
		}
		if len(keys) == 0 {
			return "", false
		}
		sort.Strings(keys)
		return keys[0], true
	}

	pop := func(k string) (geom2d.Path, bool) {
		q := queues[k]
		if len(q) == 0 {
			return nil, false
		}
		p := q[len(q)-1]
		queues[k] = q[:len(q)-1]
		return p, true
	}

	for {
		k, ok := nonEmpty()
		if !ok {
			break
		}
		p, _ := pop(k)

		for {
			lastKey := segKey(p[len(p)-1])
			firstKey := segKey(p[0])
			if lastKey == firstKey {
				closed = append(closed, p)
				break
			}
			if q, ok := pop(lastKey); ok {
				p = append(p, q[1:]...)
				continue
			}
			if q, ok := pop(firstKey); ok {
				rev := make(geom2d.Path, len(q))
				for i, v := range q {
					rev[len(q)-1-i] = v
				}
				p = append(rev, p[1:]...)
				continue
			}
			warnings = append(warnings, fmt.Sprintf("incomplete layer path: %d points, endpoints %s .. %s", len(p), firstKey, lastKey))
			break
		}
	}

	return closed, warnings
}
