package geom2d

import "testing"

func TestUnionDisjointSquares(t *testing.T) {
	a := Paths{square(10)}
	b := Paths{Path{Pt(20, 20), Pt(30, 20), Pt(30, 30), Pt(20, 30)}}

	out := Union(a, b)
	if !PathsContain(Pt(5, 5), out) {
		t.Fatalf("union of disjoint squares should contain a point in the first square")
	}
	if !PathsContain(Pt(25, 25), out) {
		t.Fatalf("union of disjoint squares should contain a point in the second square")
	}
	if PathsContain(Pt(15, 15), out) {
		t.Fatalf("union of disjoint squares should not contain the gap between them")
	}
}

func TestUnionOverlappingSquares(t *testing.T) {
	a := Paths{square(10)}
	b := Paths{Path{Pt(5, 5), Pt(15, 5), Pt(15, 15), Pt(5, 15)}}

	out := Union(a, b)
	if !PathsContain(Pt(2, 2), out) {
		t.Fatalf("union should contain a point only in the first square")
	}
	if !PathsContain(Pt(12, 12), out) {
		t.Fatalf("union should contain a point only in the second square")
	}
	if !PathsContain(Pt(7, 7), out) {
		t.Fatalf("union should contain a point in the overlap")
	}
	if PathsContain(Pt(20, 20), out) {
		t.Fatalf("union should not contain a point outside both squares")
	}
}

func TestDiffOverlappingSquares(t *testing.T) {
	a := Paths{square(10)}
	b := Paths{Path{Pt(5, 5), Pt(15, 5), Pt(15, 15), Pt(5, 15)}}

	out := Diff(a, b)
	if !PathsContain(Pt(2, 2), out) {
		t.Fatalf("diff should keep the part of the first square outside the second")
	}
	if PathsContain(Pt(7, 7), out) {
		t.Fatalf("diff should remove the overlap region")
	}
	if PathsContain(Pt(12, 12), out) {
		t.Fatalf("diff should not contain any point of the subtracted square alone")
	}
}

func TestDiffDisjointIsIdentity(t *testing.T) {
	a := Paths{square(10)}
	b := Paths{Path{Pt(20, 20), Pt(30, 20), Pt(30, 30), Pt(20, 30)}}

	out := Diff(a, b)
	if !PathsContain(Pt(5, 5), out) {
		t.Fatalf("diff against a disjoint ring should be unchanged")
	}
	if PathsContain(Pt(25, 25), out) {
		t.Fatalf("diff should not introduce area from the unrelated ring")
	}
}

func TestDiffEmptySubtrahendIsIdentity(t *testing.T) {
	a := Paths{square(10)}
	out := Diff(a, nil)
	if !PathsContain(Pt(5, 5), out) {
		t.Fatalf("diff against nothing should be unchanged")
	}
}

func TestUnionWithEmptyReturnsOther(t *testing.T) {
	a := Paths{square(10)}
	out := Union(nil, a)
	if !PathsContain(Pt(5, 5), out) {
		t.Fatalf("union of empty with a should contain a's interior")
	}
}

func TestDiffNestedHoleContainment(t *testing.T) {
	outer := square(20)
	hole := Path{Pt(5, 5), Pt(5, 10), Pt(10, 10), Pt(10, 5)}

	out := Diff(Paths{outer}, Paths{hole})
	if !PathsContain(Pt(1, 1), out) {
		t.Fatalf("point in outer square outside the hole should remain contained")
	}
	if PathsContain(Pt(7, 7), out) {
		t.Fatalf("point inside the subtracted hole should not be contained")
	}
	if PathsContain(Pt(25, 25), out) {
		t.Fatalf("point outside the outer square should never be contained")
	}
}
