package geom2d

import "testing"

func TestClipIntersection(t *testing.T) {
	a := Paths{square(10)}
	b := Paths{Path{Pt(5, 5), Pt(15, 5), Pt(15, 15), Pt(5, 15)}}

	out := Clip(a, b)
	if !PathsContain(Pt(7, 7), out) {
		t.Fatalf("clip should contain the overlap region")
	}
	if PathsContain(Pt(2, 2), out) {
		t.Fatalf("clip should not contain a point only in the first square")
	}
	if PathsContain(Pt(12, 12), out) {
		t.Fatalf("clip should not contain a point only in the second square")
	}
}

func TestClipLinesTrimsToMask(t *testing.T) {
	mask := Paths{Path{Pt(2, -5), Pt(8, -5), Pt(8, 5), Pt(2, 5)}}
	line := Paths{Path{Pt(0, 0), Pt(10, 0)}}

	out := ClipLines(line, mask)
	if len(out) != 1 {
		t.Fatalf("expected exactly 1 clipped segment, got %d: %+v", len(out), out)
	}
	seg := out[0]
	if len(seg) != 2 {
		t.Fatalf("expected a 2-point clipped segment, got %d points", len(seg))
	}
	lo, hi := seg[0].X, seg[1].X
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo < 1.999 || lo > 2.001 || hi < 7.999 || hi > 8.001 {
		t.Fatalf("clipped segment X range = [%v, %v], want [2, 8]", lo, hi)
	}
}

func TestClipLinesFullyOutsideMask(t *testing.T) {
	mask := Paths{square(5)}
	line := Paths{Path{Pt(20, 20), Pt(30, 20)}}

	out := ClipLines(line, mask)
	if len(out) != 0 {
		t.Fatalf("line entirely outside the mask should produce no segments, got %d", len(out))
	}
}

func TestClipLinesFullyInsideMask(t *testing.T) {
	mask := Paths{square(10)}
	line := Paths{Path{Pt(2, 5), Pt(8, 5)}}

	out := ClipLines(line, mask)
	if len(out) != 1 || len(out[0]) != 2 {
		t.Fatalf("line entirely inside the mask should pass through unchanged, got %+v", out)
	}
}
