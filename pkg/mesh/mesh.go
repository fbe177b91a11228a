// Package mesh implements the Mesh Store: three interning arenas
// (points, edges, facets) addressed by integer handles, plus bounds
// tracking and the translate/rehash operation, modeled as arenas so
// cross-references are handles rather than pointers.
//
// The arena-of-handles shape generalizes a flat []MeshVertex /
// []Face pair addressed by index into reference-counted interning
// tables.
package mesh

import (
	"math"

	"github.com/taigrr/slicer/pkg/math3d"
)

// PointID, EdgeID and FacetID are handles into the Store's arenas.
type (
	PointID int
	EdgeID  int
	FacetID int
)

// Edge is an unordered pair of points with a reference count.
// Canonical endpoint order is by ascending PointID so (a,b) and (b,a)
// hash equal.
type Edge struct {
	A, B  PointID
	Count int
}

// Facet is an oriented triangle plus a reference count. The stored
// vertex winding matches Normal under the right-hand rule.
type Facet struct {
	V      [3]PointID
	Normal math3d.Vec3
	Count  int
}

type pointKey struct {
	x, y, z int64
}

type edgeKey struct {
	a, b PointID
}

type facetKey struct {
	a, b, c PointID
}

// Store is the deduplicated point/edge/facet mesh with bounds
// tracking.
type Store struct {
	// QuantumXY and QuantumZ control coordinate quantization: XY is
	// rounded to 1e-4 mm (4 decimal digits), Z to QuantumZ (default
	// 1e-3 mm) via floor(z/q+0.5)*q.
	QuantumXY float64
	QuantumZ  float64

	Points []math3d.Vec3
	Edges  []Edge
	Facets []Facet

	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
	hasPoints bool

	pointIndex    map[pointKey]PointID
	edgeIndex     map[edgeKey]EdgeID
	facetIndex    map[facetKey]FacetID
	endpointEdges map[PointID][]EdgeID
	vertexFacets  map[PointID][]FacetID
	edgeFacets    map[edgeKey][]FacetID
}

// NewStore creates an empty mesh store with the default quantization
// (4 decimal digits XY, 1e-3 mm Z).
func NewStore() *Store {
	return &Store{
		QuantumXY:     1e-4,
		QuantumZ:      1e-3,
		pointIndex:    make(map[pointKey]PointID),
		edgeIndex:     make(map[edgeKey]EdgeID),
		facetIndex:    make(map[facetKey]FacetID),
		endpointEdges: make(map[PointID][]EdgeID),
		vertexFacets:  make(map[PointID][]FacetID),
		edgeFacets:    make(map[edgeKey][]FacetID),
	}
}

// QuantizeZ snaps z to the store's Z quantum: floor(z/q+0.5)*q.
func (s *Store) QuantizeZ(z float64) float64 {
	return quantize(z, s.QuantumZ)
}

func quantize(v, q float64) float64 {
	if q <= 0 {
		return v
	}
	return math.Floor(v/q+0.5) * q
}

func (s *Store) keyOf(p math3d.Vec3) pointKey {
	xyq := s.QuantumXY
	if xyq <= 0 {
		xyq = 1e-4
	}
	return pointKey{
		x: int64(math.Round(p.X / xyq)),
		y: int64(math.Round(p.Y / xyq)),
		z: int64(math.Round(s.QuantizeZ(p.Z) / s.QuantumZ)),
	}
}

// AddPoint interns p, returning the canonical PointID for its
// quantized coordinate triple. Z is snapped with QuantizeZ before
// interning. Updates the running bounds.
func (s *Store) AddPoint(p math3d.Vec3) PointID {
	p.Z = s.QuantizeZ(p.Z)
	k := s.keyOf(p)
	if id, ok := s.pointIndex[k]; ok {
		return id
	}
	id := PointID(len(s.Points))
	s.Points = append(s.Points, p)
	s.pointIndex[k] = id
	if !s.hasPoints {
		s.BoundsMin, s.BoundsMax = p, p
		s.hasPoints = true
	} else {
		s.BoundsMin = s.BoundsMin.Min(p)
		s.BoundsMax = s.BoundsMax.Max(p)
	}
	return id
}

// Point returns the canonical position for id.
func (s *Store) Point(id PointID) math3d.Vec3 {
	return s.Points[id]
}

func canonicalEdge(a, b PointID) (PointID, PointID) {
	if a <= b {
		return a, b
	}
	return b, a
}

// AddEdge interns the unordered pair (a,b), incrementing its
// reference count and the endpoint index. Returns the canonical
// EdgeID.
func (s *Store) AddEdge(a, b PointID) EdgeID {
	lo, hi := canonicalEdge(a, b)
	k := edgeKey{lo, hi}
	id, ok := s.edgeIndex[k]
	if !ok {
		id = EdgeID(len(s.Edges))
		s.Edges = append(s.Edges, Edge{A: lo, B: hi})
		s.edgeIndex[k] = id
		s.endpointEdges[lo] = append(s.endpointEdges[lo], id)
		s.endpointEdges[hi] = append(s.endpointEdges[hi], id)
	}
	s.Edges[id].Count++
	return id
}

// EdgesAt returns the edges incident to point id.
func (s *Store) EdgesAt(id PointID) []EdgeID {
	return s.endpointEdges[id]
}

// AddFacet interns a triangle, rotating its vertex order so the
// smallest PointID comes first, fixing up the winding to match
// normal (or recomputing normal from the cross product if it is
// degenerate). It also registers the
// triangle's three edges in the edge cache so edge reference counts
// reflect incident facets.
func (s *Store) AddFacet(v1, v2, v3 PointID, normal math3d.Vec3) FacetID {
	v1, v2, v3 = rotateSmallestFirst(v1, v2, v3)

	p1, p2, p3 := s.Points[v1], s.Points[v2], s.Points[v3]
	geomNormal := p2.Sub(p1).Cross(p3.Sub(p1))

	if normal.Len() < 1e-12 {
		normal = geomNormal.Normalize()
	} else if geomNormal.Dot(normal) < 0 {
		// Winding disagrees with the supplied normal: swap v2/v3.
		v2, v3 = v3, v2
		normal = normal.Normalize()
	} else {
		normal = normal.Normalize()
	}

	k := facetKey{v1, v2, v3}
	id, ok := s.facetIndex[k]
	if !ok {
		id = FacetID(len(s.Facets))
		s.Facets = append(s.Facets, Facet{V: [3]PointID{v1, v2, v3}, Normal: normal})
		s.facetIndex[k] = id

		s.vertexFacets[v1] = append(s.vertexFacets[v1], id)
		s.vertexFacets[v2] = append(s.vertexFacets[v2], id)
		s.vertexFacets[v3] = append(s.vertexFacets[v3], id)

		for _, e := range [][2]PointID{{v1, v2}, {v2, v3}, {v3, v1}} {
			lo, hi := canonicalEdge(e[0], e[1])
			ek := edgeKey{lo, hi}
			s.edgeFacets[ek] = append(s.edgeFacets[ek], id)
		}
	}
	s.Facets[id].Count++

	// Edge reference counts track incident facets regardless of
	// whether this exact facet was new.
	s.AddEdge(v1, v2)
	s.AddEdge(v2, v3)
	s.AddEdge(v3, v1)

	return id
}

func rotateSmallestFirst(a, b, c PointID) (PointID, PointID, PointID) {
	switch {
	case a <= b && a <= c:
		return a, b, c
	case b <= a && b <= c:
		return b, c, a
	default:
		return c, a, b
	}
}

// FacetsAtEdge returns the facets bordering the unordered edge (a,b).
func (s *Store) FacetsAtEdge(a, b PointID) []FacetID {
	lo, hi := canonicalEdge(a, b)
	return s.edgeFacets[edgeKey{lo, hi}]
}

// Translate mutates every point's coordinates in place by delta and
// rebuilds the point interning table.
func (s *Store) Translate(delta math3d.Vec3) {
	s.pointIndex = make(map[pointKey]PointID, len(s.Points))
	s.hasPoints = false
	for i, p := range s.Points {
		np := p.Add(delta)
		np.Z = s.QuantizeZ(np.Z)
		s.Points[i] = np
		s.pointIndex[s.keyOf(np)] = PointID(i)
		if !s.hasPoints {
			s.BoundsMin, s.BoundsMax = np, np
			s.hasPoints = true
		} else {
			s.BoundsMin = s.BoundsMin.Min(np)
			s.BoundsMax = s.BoundsMax.Max(np)
		}
	}
}

// PointCount, EdgeCount and FacetCount report arena sizes.
func (s *Store) PointCount() int { return len(s.Points) }
func (s *Store) EdgeCount() int  { return len(s.Edges) }
func (s *Store) FacetCount() int { return len(s.Facets) }
