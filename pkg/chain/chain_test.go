package chain

import (
	"testing"

	"github.com/taigrr/slicer/pkg/geom2d"
)

func TestChainSplicesAdjacentSegments(t *testing.T) {
	lines := geom2d.Paths{
		{geom2d.Pt(0, 0), geom2d.Pt(10, 0)},
		{geom2d.Pt(10, 0), geom2d.Pt(20, 0)},
	}
	out := Chain(lines)
	if len(out) != 1 {
		t.Fatalf("two touching segments should chain into 1 polyline, got %d", len(out))
	}
	if len(out[0]) != 4 {
		t.Fatalf("chained polyline should have 4 points (splice does not dedupe the shared endpoint), got %d", len(out[0]))
	}
}

func TestChainLeavesFarSegmentsSeparate(t *testing.T) {
	lines := geom2d.Paths{
		{geom2d.Pt(0, 0), geom2d.Pt(10, 0)},
		{geom2d.Pt(100, 100), geom2d.Pt(110, 100)},
	}
	out := Chain(lines)
	if len(out) != 2 {
		t.Fatalf("segments farther apart than MaxDist should stay separate, got %d polylines", len(out))
	}
}

func TestChainSplicesReversedSegment(t *testing.T) {
	// Second segment's far endpoint (not its start) touches the first
	// segment's end: the chainer must try the reversed orientation.
	lines := geom2d.Paths{
		{geom2d.Pt(0, 0), geom2d.Pt(10, 0)},
		{geom2d.Pt(20, 0), geom2d.Pt(10, 0)},
	}
	out := Chain(lines)
	if len(out) != 1 {
		t.Fatalf("expected the two segments to splice into one chain, got %d", len(out))
	}
	if len(out[0]) != 4 {
		t.Fatalf("expected a 4-point chained polyline, got %d points: %+v", len(out[0]), out[0])
	}
}

func TestChainThreeForwardSegments(t *testing.T) {
	lines := geom2d.Paths{
		{geom2d.Pt(0, 0), geom2d.Pt(10, 0)},
		{geom2d.Pt(10, 0), geom2d.Pt(20, 0)},
		{geom2d.Pt(20, 0), geom2d.Pt(30, 0)},
	}
	out := Chain(lines)
	if len(out) != 1 {
		t.Fatalf("three collinear touching segments should chain into 1 polyline, got %d", len(out))
	}
	if len(out[0]) != 6 {
		t.Fatalf("expected a 6-point chain (3 segments, 2 points each, no dedup), got %d points", len(out[0]))
	}
}

func TestChainEmptyInput(t *testing.T) {
	if out := Chain(nil); len(out) != 0 {
		t.Fatalf("chaining no segments should produce no polylines, got %d", len(out))
	}
}
