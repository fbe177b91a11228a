// Package geom2d is the slicer's 2D polygon engine: Offset, Union,
// Diff, Clip, OrientPath/OrientPaths, PathsContain, PathsBounds, and
// ClosePath/ClosePaths, all operating on closed polygon rings (outer
// loops CCW, holes CW, even-odd fill rule).
//
// No vetted boolean/offset library was available to lean on (see
// DESIGN.md), so this package is a from-scratch implementation of
// that interface rather than a wired third-party dependency;
// everything in it that *can* lean on an external library does:
// points are seehuhn.de/go/geom/vec.Vec2 and bounds are
// seehuhn.de/go/geom/rect.Rect.
package geom2d

import (
	"seehuhn.de/go/geom/vec"
)

// Path is a single polygon ring, open or closed. Orientation
// convention: outer loops wind counter-clockwise, holes wind
// clockwise.
type Path []vec.Vec2

// Paths is a set of rings, as produced by the Layer Assembler and
// consumed by every later stage.
type Paths []Path

// Pt is a convenience constructor for vec.Vec2.
func Pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

// Clone returns a deep copy of p.
func (p Path) Clone() Path {
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// Clone returns a deep copy of ps.
func (ps Paths) Clone() Paths {
	out := make(Paths, len(ps))
	for i, p := range ps {
		out[i] = p.Clone()
	}
	return out
}

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	d := a - b
	return d < epsilon && d > -epsilon
}

func samePoint(a, b vec.Vec2) bool {
	return almostEqual(a.X, b.X) && almostEqual(a.Y, b.Y)
}
