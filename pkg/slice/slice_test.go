package slice

import (
	"math"
	"testing"

	"github.com/taigrr/slicer/pkg/geom2d"
	"github.com/taigrr/slicer/pkg/math3d"
	"github.com/taigrr/slicer/pkg/mesh"
)

func addTri(s *mesh.Store, a, b, c math3d.Vec3) mesh.FacetID {
	v1, v2, v3 := s.AddPoint(a), s.AddPoint(b), s.AddPoint(c)
	n := b.Sub(a).Cross(c.Sub(a)).Normalize()
	return s.AddFacet(v1, v2, v3, n)
}

func TestPlaneZMidLayer(t *testing.T) {
	z := PlaneZ(0, 0.2, 0)
	if z != 0.1 {
		t.Fatalf("PlaneZ(0, 0.2, 0) = %v, want 0.1", z)
	}
	z1 := PlaneZ(1, 0.2, 0)
	if math.Abs(z1-0.3) > 1e-12 {
		t.Fatalf("PlaneZ(1, 0.2, 0) = %v, want 0.3", z1)
	}
}

func TestAssignLayersSpansExpectedRange(t *testing.T) {
	s := mesh.NewStore()
	// A facet spanning Z in [0, 1] at a 0.2mm layer height should be
	// assigned to layers 0..5 (ceil(1/0.2 - 0.01) = 5).
	addTri(s, math3d.V3(0, 0, 0), math3d.V3(1, 0, 1), math3d.V3(0, 1, 1))

	assignment := AssignLayers(s, 0.2)
	for i := 0; i <= 5; i++ {
		if len(assignment[i]) == 0 {
			t.Fatalf("layer %d should contain the spanning facet", i)
		}
	}
}

func TestSliceFacetStraddlingPlane(t *testing.T) {
	s := mesh.NewStore()
	v1, v2, v3 := s.AddPoint(math3d.V3(0, 0, -1)), s.AddPoint(math3d.V3(2, 0, 1)), s.AddPoint(math3d.V3(0, 2, 1))
	n := math3d.V3(-1, -1, 1).Normalize()
	f := mesh.Facet{V: [3]mesh.PointID{v1, v2, v3}, Normal: n}

	a, b, ok := SliceFacet(s, f, 0)
	if !ok {
		t.Fatalf("plane through the middle of the facet should produce a segment")
	}
	if a == b {
		t.Fatalf("segment endpoints should not coincide")
	}
}

func TestSliceFacetMissesPlane(t *testing.T) {
	s := mesh.NewStore()
	v1, v2, v3 := s.AddPoint(math3d.V3(0, 0, 1)), s.AddPoint(math3d.V3(1, 0, 2)), s.AddPoint(math3d.V3(0, 1, 2))
	f := mesh.Facet{V: [3]mesh.PointID{v1, v2, v3}, Normal: math3d.V3(0, 0, 1)}

	_, _, ok := SliceFacet(s, f, 0)
	if ok {
		t.Fatalf("a plane entirely outside the facet's Z range should not produce a segment")
	}
}

func TestBuildLayerClosesCubeCrossSection(t *testing.T) {
	s := mesh.NewStore()
	c := func(x, y, z float64) math3d.Vec3 { return math3d.V3(x, y, z) }
	tris := [][3]math3d.Vec3{
		{c(0, 0, 0), c(0, 1, 0), c(1, 1, 0)},
		{c(0, 0, 0), c(1, 1, 0), c(1, 0, 0)},
		{c(0, 0, 1), c(1, 1, 1), c(0, 1, 1)},
		{c(0, 0, 1), c(1, 0, 1), c(1, 1, 1)},
		{c(0, 0, 0), c(1, 0, 0), c(1, 0, 1)},
		{c(0, 0, 0), c(1, 0, 1), c(0, 0, 1)},
		{c(0, 1, 0), c(0, 1, 1), c(1, 1, 1)},
		{c(0, 1, 0), c(1, 1, 1), c(1, 1, 0)},
		{c(0, 0, 0), c(0, 0, 1), c(0, 1, 1)},
		{c(0, 0, 0), c(0, 1, 1), c(0, 1, 0)},
		{c(1, 0, 0), c(1, 1, 0), c(1, 1, 1)},
		{c(1, 0, 0), c(1, 1, 1), c(1, 0, 1)},
	}
	var facets []mesh.FacetID
	for _, tr := range tris {
		facets = append(facets, addTri(s, tr[0], tr[1], tr[2]))
	}

	layer, warnings := BuildLayer(s, facets, 0, 1.0, 0)
	if len(warnings) != 0 {
		t.Fatalf("slicing a closed cube through its midplane should not produce warnings: %v", warnings)
	}
	if len(layer.Paths) != 1 {
		t.Fatalf("expected 1 closed ring, got %d: %+v", len(layer.Paths), layer.Paths)
	}
	ring := layer.Paths[0]
	if !geom2d.IsCCW(geom2d.ClosePath(ring)) {
		t.Fatalf("the cube's single outer ring should be oriented CCW")
	}
}

func TestOrientSegmentPicksNormalSide(t *testing.T) {
	a, b := geom2d.Pt(0, 0), geom2d.Pt(1, 0)
	oa, ob := orientSegment(a, b, 0, 1) // normal points +Y
	// probe at mid+(0,1) lies to the left of a->b (dx=1,dy=0), so the
	// segment must be swapped to put the normal on the right.
	if oa != b || ob != a {
		t.Fatalf("orientSegment should have swapped the endpoints, got (%v, %v)", oa, ob)
	}
}
