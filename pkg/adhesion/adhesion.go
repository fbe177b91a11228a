// Package adhesion implements the Adhesion Builder:
// skirt, brim, and raft bed-adhesion structures built from the
// lowest layer's outline and, when present, its support outline.
package adhesion

import (
	"math"

	"github.com/taigrr/slicer/pkg/geom2d"
	"github.com/taigrr/slicer/pkg/infill"
)

// Type selects the bed-adhesion structure.
type Type int

const (
	None Type = iota
	Brim
	Raft
)

func ParseType(s string) (Type, bool) {
	switch s {
	case "None":
		return None, true
	case "Brim":
		return Brim, true
	case "Raft":
		return Raft, true
	}
	return 0, false
}

// Config bundles the Adhesion section of the configuration schema.
type Config struct {
	Type        Type
	SkirtOutset float64
	BrimWidth   float64
	RaftOutset  float64
	Width       float64 // extrusion width w
}

// RaftLayer is one generated raft layer's outline-clipped infill.
type RaftLayer struct {
	Lines geom2d.Paths
}

// Result holds the structures the Adhesion Builder can produce
// independent of total layer count: Skirt always, Brim when
// configured, RaftOutline when configured. The raft's per-layer body
// (RaftLayers) is generated separately since it depends on how many
// raft layers the pipeline has decided to print.
type Result struct {
	Skirt       geom2d.Paths
	Brim        geom2d.Paths
	RaftOutline geom2d.Paths
}

// skirtBase is the common "union of layer 0 with its support outline"
// region every adhesion structure outsets from.
func skirtBase(layer0 geom2d.Paths, supportOutline0 geom2d.Paths) geom2d.Paths {
	if len(supportOutline0) == 0 {
		return layer0
	}
	return geom2d.Union(layer0, supportOutline0)
}

// Build generates every adhesion structure configured by cfg.
func Build(layer0, supportOutline0 geom2d.Paths, cfg Config) Result {
	base := skirtBase(layer0, supportOutline0)
	skirtMask := geom2d.Offset(base, cfg.SkirtOutset)
	skirt := geom2d.Offset(skirtMask, cfg.BrimWidth+cfg.SkirtOutset+cfg.Width/2)
	skirt = geom2d.ClosePaths(skirt)

	result := Result{Skirt: skirt}

	switch cfg.Type {
	case Brim:
		result.Brim = buildBrim(layer0, cfg)
	case Raft:
		result.RaftOutline = RaftOutline(base, cfg)
	}
	return result
}

// buildBrim emits ceil(brim_width/w) concentric rings outward from
// layer0, ring i at offset (i+0.5)*w.
func buildBrim(layer0 geom2d.Paths, cfg Config) geom2d.Paths {
	n := int(math.Ceil(cfg.BrimWidth / cfg.Width))
	var out geom2d.Paths
	for i := 0; i < n; i++ {
		ring := geom2d.Offset(layer0, (float64(i)+0.5)*cfg.Width)
		out = append(out, geom2d.ClosePaths(ring)...)
	}
	return out
}

// RaftOutline computes the raft outline for the documented
// outset_val. The doubled raft-outset term in
// outset_val = raft_outset + max(skirt_outset+w, raft_outset+w) is
// preserved bit-for-bit even though it double-counts raft_outset,
// kept for bit-for-bit compatibility with the original tool.
func RaftOutline(base geom2d.Paths, cfg Config) geom2d.Paths {
	outsetVal := cfg.RaftOutset + math.Max(cfg.SkirtOutset+cfg.Width, cfg.RaftOutset+cfg.Width)
	return geom2d.Offset(base, outsetVal)
}

// RaftLayers generates the n raft body layers: layer 0 at 0 degrees
// and 75% density, every subsequent layer alternating 0/90 degrees at
// 100% density, each clipped to outline.
func RaftLayers(outline geom2d.Paths, n int, cfg Config) []RaftLayer {
	bounds := geom2d.PathsBounds(outline)
	out := make([]RaftLayer, n)
	for i := 0; i < n; i++ {
		angle := 0.0
		density := 1.0
		if i == 0 {
			density = 0.75
		} else if i%2 == 1 {
			angle = 90
		}
		spacing := cfg.Width / density
		lines := infill.GenerateLines(bounds, angle, spacing)
		out[i] = RaftLayer{Lines: geom2d.ClipLines(lines, outline)}
	}
	return out
}
