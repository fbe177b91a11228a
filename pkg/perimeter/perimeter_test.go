package perimeter

import (
	"math/rand"
	"testing"

	"github.com/taigrr/slicer/pkg/geom2d"
)

func TestBuildShellCountAndNesting(t *testing.T) {
	outline := geom2d.Paths{geom2d.Path{
		geom2d.Pt(0, 0), geom2d.Pt(10, 0), geom2d.Pt(10, 10), geom2d.Pt(0, 10),
	}}

	shells := Build(outline, 3, 0.4, false, nil)
	if len(shells) != 3 {
		t.Fatalf("expected 3 shells, got %d", len(shells))
	}

	for k, s := range shells {
		if len(s) != 1 {
			t.Fatalf("shell %d: expected 1 ring, got %d", k, len(s))
		}
		b := geom2d.PathsBounds(s)
		expected := 10 - (float64(k)+0.5)*0.4*2
		width := b.URx - b.LLx
		if diff := width - expected; diff > 1e-6 || diff < -1e-6 {
			t.Fatalf("shell %d width = %v, want %v", k, width, expected)
		}
	}

	// Each successive shell must nest strictly inside the previous one.
	for k := 1; k < len(shells); k++ {
		outerBounds := geom2d.PathsBounds(shells[k-1])
		innerBounds := geom2d.PathsBounds(shells[k])
		if innerBounds.LLx <= outerBounds.LLx || innerBounds.URx >= outerBounds.URx {
			t.Fatalf("shell %d does not nest inside shell %d", k, k-1)
		}
	}
}

func TestBuildZeroShells(t *testing.T) {
	outline := geom2d.Paths{geom2d.Path{geom2d.Pt(0, 0), geom2d.Pt(1, 0), geom2d.Pt(1, 1), geom2d.Pt(0, 1)}}
	shells := Build(outline, 0, 0.4, false, nil)
	if len(shells) != 0 {
		t.Fatalf("expected 0 shells, got %d", len(shells))
	}
}

func TestRotateStartsPreservesRingShape(t *testing.T) {
	outline := geom2d.Paths{geom2d.Path{
		geom2d.Pt(0, 0), geom2d.Pt(10, 0), geom2d.Pt(10, 10), geom2d.Pt(0, 10),
	}}
	rng := rand.New(rand.NewSource(1))
	shells := Build(outline, 2, 0.4, true, rng)

	if len(shells[1]) != 1 || len(shells[1][0]) != len(shells[0][0]) {
		t.Fatalf("rotating the start vertex should not change the point count")
	}
}
