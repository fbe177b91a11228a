// Package infill implements the Infill Builder: the
// solid and sparse fill line generators shared by the main slicing
// pipeline, the Support Builder, and the Adhesion Builder's raft
// layers.
package infill

import (
	"math"

	"github.com/taigrr/slicer/pkg/geom2d"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Pattern selects a sparse-infill tiling.
type Pattern int

const (
	Lines Pattern = iota
	Triangles
	Grid
	Hexagons
)

func (p Pattern) String() string {
	switch p {
	case Lines:
		return "Lines"
	case Triangles:
		return "Triangles"
	case Grid:
		return "Grid"
	case Hexagons:
		return "Hexagons"
	default:
		return "Unknown"
	}
}

// ParsePattern maps a config enum string to a Pattern.
func ParsePattern(s string) (Pattern, bool) {
	switch s {
	case "Lines":
		return Lines, true
	case "Triangles":
		return Triangles, true
	case "Grid":
		return Grid, true
	case "Hexagons":
		return Hexagons, true
	}
	return 0, false
}

// SolidAngle returns the alternating +/-45 degree solid-infill angle
// for layer L.
func SolidAngle(layer int) float64 {
	if layer%2 == 0 {
		return 45
	}
	return -45
}

// SparseAngle returns pattern's base rotation angle for layer L.
func SparseAngle(p Pattern, layer int) float64 {
	switch p {
	case Triangles:
		return 60 * float64(layer%3)
	case Grid:
		if layer%2 == 0 {
			return 135
		}
		return 45
	case Hexagons:
		return 120 * float64(layer%3)
	default: // Lines
		if layer%2 == 0 {
			return 135
		}
		return 45
	}
}

// Rotations returns the set of additional rotations applied on top of
// the base angle to build a pattern's cross-hatch.
func Rotations(p Pattern) []float64 {
	switch p {
	case Triangles:
		return []float64{0, 60, 120}
	case Grid:
		return []float64{0, 90}
	case Hexagons:
		return []float64{0, 60}
	default: // Lines
		return []float64{0}
	}
}

// Spacing computes the line pitch for pattern p at extrusion width w
// and density d (0,1], per pattern's own spacing rule.
// Triangles/Grid/Hexagons divide density across multiple rotations,
// so each needs a coarser pitch than a single Lines pass at the same
// density; Hexagons additionally derives its row spacing from its
// column spacing via the 60-degree triangle relation.
func Spacing(p Pattern, w, density float64) (column, row float64) {
	if density <= 0 {
		return 0, 0
	}
	switch p {
	case Triangles:
		s := 3 * w / density
		return s, s
	case Grid:
		s := 2 * w / density
		return s, s
	case Hexagons:
		col := (4.0 / 3.0) * w / density
		row := col * 3 / math.Sin(60*math.Pi/180)
		return col, row
	default: // Lines
		s := w / density
		return s, s
	}
}

// GenerateLines tiles straight line segments, spaced spacing mm
// apart, at angleDeg, across bounds' rotated bounding rectangle, with
// the grid centered on bounds' midpoint.
func GenerateLines(bounds rect.Rect, angleDeg, spacing float64) geom2d.Paths {
	if spacing <= 1e-9 {
		return nil
	}
	theta := angleDeg * math.Pi / 180
	cos, sin := math.Cos(theta), math.Sin(theta)

	toUV := func(p vec.Vec2) (u, v float64) {
		return p.X*cos + p.Y*sin, -p.X*sin + p.Y*cos
	}
	corners := [4]vec.Vec2{
		{X: bounds.LLx, Y: bounds.LLy},
		{X: bounds.URx, Y: bounds.LLy},
		{X: bounds.URx, Y: bounds.URy},
		{X: bounds.LLx, Y: bounds.URy},
	}
	uMin, uMax, vMin, vMax := 0.0, 0.0, 0.0, 0.0
	for i, c := range corners {
		u, v := toUV(c)
		if i == 0 {
			uMin, uMax, vMin, vMax = u, u, v, v
			continue
		}
		if u < uMin {
			uMin = u
		}
		if u > uMax {
			uMax = u
		}
		if v < vMin {
			vMin = v
		}
		if v > vMax {
			vMax = v
		}
	}

	cx, cy := (bounds.LLx+bounds.URx)/2, (bounds.LLy+bounds.URy)/2
	_, cv := toUV(vec.Vec2{X: cx, Y: cy})

	kStart := math.Ceil((vMin - cv) / spacing)
	kEnd := math.Floor((vMax - cv) / spacing)

	fromUV := func(u, v float64) vec.Vec2 {
		return vec.Vec2{X: u*cos - v*sin, Y: u*sin + v*cos}
	}

	var out geom2d.Paths
	for k := kStart; k <= kEnd; k++ {
		v := cv + k*spacing
		out = append(out, geom2d.Path{fromUV(uMin, v), fromUV(uMax, v)})
	}
	return out
}

// BuildSolid generates the solid-infill line raster for one layer,
// clipped to solidMask expanded by infillOverlap-w.
func BuildSolid(bounds rect.Rect, layer int, solidMask geom2d.Paths, width, infillOverlap float64) geom2d.Paths {
	if len(solidMask) == 0 {
		return nil
	}
	lines := GenerateLines(bounds, SolidAngle(layer), width)
	clipMask := geom2d.Offset(solidMask, infillOverlap-width)
	return geom2d.ClipLines(lines, clipMask)
}

// BuildSparse generates the sparse-infill line raster for one layer,
// promoting any pattern to Lines once density reaches 0.99 since a
// cross-hatched pattern adds no strength benefit once the lines are
// nearly solid.
func BuildSparse(bounds rect.Rect, layer int, sparseMask geom2d.Paths, pattern Pattern, density, width float64) geom2d.Paths {
	if len(sparseMask) == 0 || density <= 0 {
		return nil
	}
	if density >= 0.99 {
		pattern = Lines
	}

	col, row := Spacing(pattern, width, density)
	base := SparseAngle(pattern, layer)

	var out geom2d.Paths
	for i, rot := range Rotations(pattern) {
		// Hexagons' second pass is the row direction of the hex
		// tiling, which is coarser than the column spacing.
		spacing := col
		if pattern == Hexagons && i == 1 {
			spacing = row
		}
		lines := GenerateLines(bounds, base+rot, spacing)
		out = append(out, geom2d.ClipLines(lines, sparseMask)...)
	}
	return out
}
