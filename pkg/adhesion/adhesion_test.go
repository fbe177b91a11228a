package adhesion

import (
	"math"
	"testing"

	"github.com/taigrr/slicer/pkg/geom2d"
)

func square(side float64) geom2d.Paths {
	return geom2d.Paths{{
		geom2d.Pt(0, 0), geom2d.Pt(side, 0), geom2d.Pt(side, side), geom2d.Pt(0, side),
	}}
}

func TestParseType(t *testing.T) {
	if ty, ok := ParseType("Raft"); !ok || ty != Raft {
		t.Fatalf("ParseType(Raft) = %v, %v", ty, ok)
	}
	if _, ok := ParseType("Glue"); ok {
		t.Fatalf("ParseType should reject an unknown adhesion type")
	}
}

func TestBuildNoneProducesSkirtOnly(t *testing.T) {
	cfg := Config{Type: None, SkirtOutset: 2, Width: 0.4}
	result := Build(square(10), nil, cfg)
	if len(result.Skirt) == 0 {
		t.Fatalf("Build should always produce a skirt")
	}
	if result.Brim != nil {
		t.Fatalf("Type None should not produce a brim, got %+v", result.Brim)
	}
	if result.RaftOutline != nil {
		t.Fatalf("Type None should not produce a raft outline, got %+v", result.RaftOutline)
	}
}

func TestBuildBrimProducesConcentricRings(t *testing.T) {
	cfg := Config{Type: Brim, SkirtOutset: 2, BrimWidth: 2, Width: 0.5}
	result := Build(square(10), nil, cfg)
	wantRings := 4 // ceil(2/0.5)
	if len(result.Brim) != wantRings {
		t.Fatalf("expected %d brim rings, got %d", wantRings, len(result.Brim))
	}
}

func TestBuildRaftProducesOutsetOutline(t *testing.T) {
	cfg := Config{Type: Raft, SkirtOutset: 1, RaftOutset: 3, Width: 0.4}
	result := Build(square(10), nil, cfg)
	if len(result.RaftOutline) == 0 {
		t.Fatalf("Type Raft should produce a raft outline")
	}
	if !geom2d.PathsContain(geom2d.Pt(5, 5), result.RaftOutline) {
		t.Fatalf("raft outline should fully contain the layer-0 footprint's center")
	}
	if geom2d.PathsContain(geom2d.Pt(-100, -100), result.RaftOutline) {
		t.Fatalf("raft outline should not extend to (-100, -100)")
	}
}

func TestSkirtBaseUnionsSupportOutline(t *testing.T) {
	layer0 := square(5)
	support := geom2d.Paths{{
		geom2d.Pt(20, 20), geom2d.Pt(25, 20), geom2d.Pt(25, 25), geom2d.Pt(20, 25),
	}}
	base := skirtBase(layer0, support)
	if !geom2d.PathsContain(geom2d.Pt(2, 2), base) {
		t.Fatalf("skirt base should contain a point inside the layer outline")
	}
	if !geom2d.PathsContain(geom2d.Pt(22, 22), base) {
		t.Fatalf("skirt base should contain a point inside the support outline")
	}
}

func TestRaftLayersAlternateAngleAndDensity(t *testing.T) {
	cfg := Config{Width: 0.4}
	outline := square(10)
	layers := RaftLayers(outline, 3, cfg)
	if len(layers) != 3 {
		t.Fatalf("expected 3 raft layers, got %d", len(layers))
	}
	for i, l := range layers {
		if len(l.Lines) == 0 {
			t.Fatalf("raft layer %d should contain infill lines", i)
		}
		for _, seg := range l.Lines {
			first, last := seg[0], seg[len(seg)-1]
			if i%2 == 0 && math.Abs(first.Y-last.Y) > 1e-9 {
				t.Fatalf("raft layer %d should run at 0 degrees, got %v", i, seg)
			}
			if i%2 == 1 && math.Abs(first.X-last.X) > 1e-9 {
				t.Fatalf("raft layer %d should run at 90 degrees, got %v", i, seg)
			}
		}
	}
	// Layer 0 is laid at 75% density and layer 2 at 100%, so layer 0's
	// wider spacing yields fewer lines across the same outline.
	if len(layers[0].Lines) >= len(layers[2].Lines) {
		t.Fatalf("raft layer 0 should have fewer lines than layer 2, got %d and %d", len(layers[0].Lines), len(layers[2].Lines))
	}
}
