package geom2d

import "testing"

func TestOrientPathForcesDirection(t *testing.T) {
	p := square(2)
	cw := OrientPath(p, false)
	if IsCCW(cw) {
		t.Fatalf("OrientPath(p, false) should produce a CW ring")
	}
	ccw := OrientPath(cw, true)
	if !IsCCW(ccw) {
		t.Fatalf("OrientPath(p, true) should produce a CCW ring")
	}
}

func TestOrientPathsOuterAndHole(t *testing.T) {
	outer := square(10)
	hole := Path{Pt(2, 2), Pt(4, 2), Pt(4, 4), Pt(2, 4)} // CCW as written

	out := OrientPaths(Paths{outer, hole})
	if !IsCCW(out[0]) {
		t.Fatalf("outer ring should end up CCW")
	}
	if IsCCW(out[1]) {
		t.Fatalf("hole ring nested once should end up CW")
	}
}

func TestOrientPathsNestedHoleInHole(t *testing.T) {
	outer := square(10)
	hole := Path{Pt(1, 1), Pt(1, 8), Pt(8, 8), Pt(8, 1)}
	island := Path{Pt(3, 3), Pt(3, 5), Pt(5, 5), Pt(5, 3)}

	// Order the rings island-first, then hole, then outer, to confirm
	// the result is independent of input order (order-dependence was a
	// known bug in a naive draining implementation).
	out := OrientPaths(Paths{island, hole, outer})
	gotIsland, gotHole, gotOuter := out[0], out[1], out[2]

	if !IsCCW(gotOuter) {
		t.Fatalf("outer ring should be CCW")
	}
	if IsCCW(gotHole) {
		t.Fatalf("hole (depth 1) should be CW")
	}
	if !IsCCW(gotIsland) {
		t.Fatalf("island (depth 2) should be CCW")
	}
}
