package geom2d

import (
	"fmt"
	"seehuhn.de/go/geom/vec"
)

type boolOp int

const (
	opUnion boolOp = iota
	opDiff
	opIntersect
)

// Union returns the even-odd union of a and b.
func Union(a, b Paths) Paths {
	return booleanOp(a, b, opUnion)
}

// Diff returns a with b subtracted.
func Diff(a, b Paths) Paths {
	return booleanOp(a, b, opDiff)
}

// fragment is a polyline piece of one operand's boundary kept by a
// boolean op, pending stitching into closed loops.
type fragment Path

func booleanOp(a, b Paths, op boolOp) Paths {
	if len(a) == 0 {
		if op == opUnion {
			return b.Clone()
		}
		return nil
	}
	if len(b) == 0 {
		if op == opIntersect {
			return nil
		}
		return a.Clone()
	}

	if !anyCrossing(a, b) {
		return booleanOpDisjoint(a, b, op)
	}

	var frags []fragment
	for _, ring := range a {
		frags = append(frags, classify(ring, b, op, true)...)
	}
	for _, ring := range b {
		frags = append(frags, classify(ring, a, op, false)...)
	}

	return OrientPaths(stitchFragments(frags))
}

// anyCrossing reports whether any edge of a crosses any edge of b.
func anyCrossing(a, b Paths) bool {
	for _, ra := range a {
		for i := 0; i < len(ra)-1; i++ {
			for _, rb := range b {
				for j := 0; j < len(rb)-1; j++ {
					if _, _, ok := segIntersect(ra[i], ra[i+1], rb[j], rb[j+1]); ok {
						return true
					}
				}
			}
		}
	}
	return false
}

// classify refines ring against every ring of other, then keeps the
// fragments whose midpoint satisfies op's predicate relative to
// other. isSubject distinguishes the "a" operand (kept as-is) from
// the "b" operand (whose kept fragments for Diff are reversed, since
// the subtracted region's boundary contributes a hole and must run
// the opposite way).
func classify(ring Path, other Paths, op boolOp, isSubject bool) []fragment {
	ring = ClosePath(ring)
	refined := ring
	for _, o := range other {
		refined = refineRing(refined, ClosePath(o))
	}

	var frags []fragment
	var current fragment
	keep := func(mid vec.Vec2) bool {
		inside := PathsContain(mid, other)
		switch op {
		case opUnion:
			return !inside
		case opIntersect:
			return inside
		case opDiff:
			if isSubject {
				return !inside
			}
			return inside
		}
		return false
	}

	for i := 0; i < len(refined)-1; i++ {
		a, b := refined[i], refined[i+1]
		if keep(midpoint(a, b)) {
			if len(current) == 0 {
				current = append(current, a)
			}
			current = append(current, b)
		} else if len(current) > 0 {
			frags = append(frags, current)
			current = nil
		}
	}
	if len(current) > 0 {
		frags = append(frags, current)
	}

	if !isSubject && op == opDiff {
		for i, f := range frags {
			frags[i] = reverseFragment(f)
		}
	}
	return frags
}

func reverseFragment(f fragment) fragment {
	out := make(fragment, len(f))
	for i, v := range f {
		out[len(f)-1-i] = v
	}
	return out
}

// stitchFragments joins open fragments sharing endpoints into closed
// loops, using the same endpoint-hash stitching idiom as the Layer
// Assembler: queue fragments by their start-point key,
// repeatedly extend the current chain from either end, and discard
// anything that never closes.
func stitchFragments(frags []fragment) Paths {
	type key struct{ x, y int64 }
	keyOf := func(v vec.Vec2) key {
		const scale = 1e4
		return key{int64(v.X * scale), int64(v.Y * scale)}
	}

	queues := make(map[key][]fragment)
	for _, f := range frags {
		if len(f) < 2 {
			continue
		}
		k := keyOf(f[0])
		queues[k] = append(queues[k], f)
	}

	pop := func(k key) (fragment, bool) {
		q := queues[k]
		if len(q) == 0 {
			return nil, false
		}
		f := q[len(q)-1]
		queues[k] = q[:len(q)-1]
		return f, true
	}

	var result Paths
	for {
		var startKey key
		var start fragment
		found := false
		for k, q := range queues {
			if len(q) > 0 {
				startKey, start, found = k, q[len(q)-1], true
				queues[k] = q[:len(q)-1]
				break
			}
		}
		if !found {
			break
		}
		_ = startKey

		current := Path(start)
		for {
			lastKey := keyOf(current[len(current)-1])
			if lastKey == keyOf(current[0]) {
				result = append(result, current)
				break
			}
			next, ok := pop(lastKey)
			if ok {
				current = append(current, next[1:]...)
				continue
			}
			firstKey := keyOf(current[0])
			next, ok = pop(firstKey)
			if ok {
				rev := reverseFragment(next)
				merged := append(Path(rev), current[1:]...)
				current = merged
				continue
			}
			// Dead (incomplete) chain: discarded, same as the Layer Assembler.
			break
		}
	}
	return result
}

// booleanOpDisjoint handles the case where no edge of a crosses any
// edge of b, resolving the result purely from containment.
func booleanOpDisjoint(a, b Paths, op boolOp) Paths {
	bInA := everyRingInside(b, a)
	aInB := everyRingInside(a, b)

	switch op {
	case opUnion:
		switch {
		case bInA:
			return a.Clone()
		case aInB:
			return b.Clone()
		default:
			return append(a.Clone(), b.Clone()...)
		}
	case opDiff:
		switch {
		case bInA:
			holes := make(Paths, len(b))
			for i, r := range b {
				holes[i] = OrientPath(r, false)
			}
			return append(a.Clone(), holes...)
		case aInB:
			return nil
		default:
			return a.Clone()
		}
	case opIntersect:
		switch {
		case bInA:
			return b.Clone()
		case aInB:
			return a.Clone()
		default:
			return nil
		}
	}
	panic(fmt.Sprintf("geom2d: unknown boolean op %d", op))
}

func everyRingInside(inner, outer Paths) bool {
	if len(inner) == 0 {
		return false
	}
	for _, r := range inner {
		for _, v := range r {
			if !PathsContain(v, outer) {
				return false
			}
		}
	}
	return true
}
