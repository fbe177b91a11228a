// Package support implements the Support Builder:
// overhang detection via a top-down drop-mask accumulation, shadow
// masking against the printed model from the bottom up, and outline
// plus infill generation for the surviving overhang regions.
package support

import (
	"math"

	"github.com/taigrr/slicer/pkg/geom2d"
	"github.com/taigrr/slicer/pkg/infill"
	"github.com/taigrr/slicer/pkg/math3d"
	"github.com/taigrr/slicer/pkg/mesh"
)

// Type selects how aggressively support is generated.
type Type int

const (
	None Type = iota
	External
	Everywhere
)

func ParseType(s string) (Type, bool) {
	switch s {
	case "None":
		return None, true
	case "External":
		return External, true
	case "Everywhere":
		return Everywhere, true
	}
	return 0, false
}

// Config bundles the support-relevant options from the Support
// section of the configuration schema.
type Config struct {
	Type              Type
	OverhangThreshold float64 // degrees
	Outset            float64
	Width             float64 // extrusion width w
	InfillOverlap     float64
	Density           float64
}

// Layer is one layer's generated support geometry.
type Layer struct {
	Outline geom2d.Paths
	Infill  geom2d.Paths
}

// FacetLayerIndex assigns each facet to every layer from
// ceil(minz/h) to floor(maxz/h) inclusive.
func FacetLayerIndex(store *mesh.Store, layerHeight float64) map[int][]mesh.FacetID {
	out := make(map[int][]mesh.FacetID)
	for fi, f := range store.Facets {
		minZ, maxZ := math.Inf(1), math.Inf(-1)
		for _, id := range f.V {
			z := store.Point(id).Z
			if z < minZ {
				minZ = z
			}
			if z > maxZ {
				maxZ = z
			}
		}
		lo := int(math.Ceil(minZ / layerHeight))
		hi := int(math.Floor(maxZ / layerHeight))
		for i := lo; i <= hi; i++ {
			out[i] = append(out[i], mesh.FacetID(fi))
		}
	}
	return out
}

func footprint(store *mesh.Store, f mesh.Facet) geom2d.Paths {
	p := geom2d.Path{
		geom2d.Pt(store.Point(f.V[0]).X, store.Point(f.V[0]).Y),
		geom2d.Pt(store.Point(f.V[1]).X, store.Point(f.V[1]).Y),
		geom2d.Pt(store.Point(f.V[2]).X, store.Point(f.V[2]).Y),
	}
	p = geom2d.ClosePath(p)
	return geom2d.Paths{geom2d.OrientPath(p, true)}
}

// overhangAngle returns 90deg minus the angle between n and
// straight-down (0,0,-1), in degrees.
func overhangAngle(n math3d.Vec3) float64 {
	down := math3d.V3(0, 0, -1)
	u := n.Normalize()
	cosA := u.Dot(down)
	if cosA > 1 {
		cosA = 1
	}
	if cosA < -1 {
		cosA = -1
	}
	angle := math.Acos(cosA) * 180 / math.Pi
	return 90 - angle
}

// DropMasks runs the top-down overhang accumulation across every layer from maxLayer down to 0, returning
// drop_paths[L] for each layer: the cumulative overhang region after
// processing layers maxLayer..L.
func DropMasks(store *mesh.Store, facetsByLayer map[int][]mesh.FacetID, minLayer, maxLayer int, thresholdDeg float64) map[int]geom2d.Paths {
	dropMask := geom2d.Paths{}
	out := make(map[int]geom2d.Paths)
	for l := maxLayer; l >= minLayer; l-- {
		var adds, diffs geom2d.Paths
		for _, fid := range facetsByLayer[l] {
			f := store.Facets[fid]
			fp := footprint(store, f)
			if overhangAngle(f.Normal) >= thresholdDeg {
				adds = append(adds, fp...)
			} else {
				diffs = append(diffs, fp...)
			}
		}
		dropMask = geom2d.Union(dropMask, unionAll(adds))
		dropMask = geom2d.Diff(dropMask, unionAll(diffs))
		out[l] = dropMask.Clone()
	}
	return out
}

// unionAll folds a flat slice of (possibly overlapping) single rings
// into one even-odd union.
func unionAll(rings geom2d.Paths) geom2d.Paths {
	var acc geom2d.Paths
	for _, r := range rings {
		acc = geom2d.Union(acc, geom2d.Paths{r})
	}
	return acc
}

// ShadowMasks computes the printed-shadow mask for every layer: the
// region support must avoid because the model already occupies or
// will occupy it. layerPaths is indexed by layer and holds each
// layer's assembled outline, the closed paths of slice.Layer.Paths.
func ShadowMasks(layerPaths map[int]geom2d.Paths, minLayer, maxLayer int, cfg Config) map[int]geom2d.Paths {
	out := make(map[int]geom2d.Paths)
	var cumulative geom2d.Paths
	for l := minLayer; l <= maxLayer; l++ {
		shadow := geom2d.Offset(layerPaths[l], cfg.Outset)
		shadow = geom2d.Union(shadow, layerPaths[l+1])
		if cfg.Type == Everywhere {
			shadow = geom2d.Union(shadow, layerPaths[l-1])
		}
		if cfg.Type == External {
			cumulative = geom2d.Union(cumulative, shadow)
			out[l] = cumulative
		} else {
			out[l] = shadow
		}
	}
	return out
}

// Refine applies the overhang-vs-shadow subtraction and the
// open-close morphology that removes slivers.
func Refine(dropPaths, shadowMask geom2d.Paths, w float64) geom2d.Paths {
	overhang := geom2d.Diff(dropPaths, shadowMask)
	overhang = geom2d.Offset(overhang, w)
	overhang = geom2d.Offset(overhang, -2*w)
	overhang = geom2d.Offset(overhang, w)
	return overhang
}

// Fill builds the final outline and infill geometry for one layer's
// refined overhang region.
func Fill(overhang geom2d.Paths, cfg Config) Layer {
	if len(overhang) == 0 {
		return Layer{}
	}
	outline := geom2d.Offset(overhang, -cfg.Width/2)
	bounds := geom2d.PathsBounds(outline)
	clipMask := geom2d.Offset(outline, cfg.InfillOverlap-cfg.Width)
	lines := infill.GenerateLines(bounds, 0, spacingFor(cfg))
	return Layer{
		Outline: outline,
		Infill:  geom2d.ClipLines(lines, clipMask),
	}
}

func spacingFor(cfg Config) float64 {
	if cfg.Density <= 0 {
		return 0
	}
	return cfg.Width / cfg.Density
}
