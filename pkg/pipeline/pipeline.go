// Package pipeline implements the Pipeline Orchestrator: the single
// entry point that sequences the Mesh Store through Manifold Check,
// Facet Slicing, Layer Assembly, Perimeter/Mask/Support/Adhesion/
// Infill building, Path Chaining, and G-code emission, per the
// dependency graph between stages.
package pipeline

import (
	"fmt"
	"io"
	"math"
	"math/rand"

	"github.com/taigrr/slicer/pkg/adhesion"
	"github.com/taigrr/slicer/pkg/chain"
	"github.com/taigrr/slicer/pkg/config"
	"github.com/taigrr/slicer/pkg/diag"
	"github.com/taigrr/slicer/pkg/gcode"
	"github.com/taigrr/slicer/pkg/geom2d"
	"github.com/taigrr/slicer/pkg/infill"
	"github.com/taigrr/slicer/pkg/manifold"
	"github.com/taigrr/slicer/pkg/mask"
	"github.com/taigrr/slicer/pkg/math3d"
	"github.com/taigrr/slicer/pkg/mesh"
	"github.com/taigrr/slicer/pkg/perimeter"
	"github.com/taigrr/slicer/pkg/progress"
	"github.com/taigrr/slicer/pkg/slice"
	"github.com/taigrr/slicer/pkg/support"
)

// Options configures a single Slice run beyond what lives in cfg:
// whether to abort on a non-manifold mesh, and the random source used
// for the perimeter builder's optional seam randomization.
type Options struct {
	FailOnNonManifold bool
	Rand              *rand.Rand
}

// Slice runs the full pipeline over store using cfg, streaming Marlin
// G-code to out and reporting stage advancement through p. It returns
// the accumulated non-fatal diagnostics; a non-nil error means a
// fatal condition aborted the run.
func Slice(store *mesh.Store, cfg *config.Config, out io.Writer, p progress.Progress, opt Options) ([]diag.Diagnostic, error) {
	if p == nil {
		p = progress.NoOp{}
	}
	d := diag.NewCollector()

	report := manifold.Check(store)
	for _, msg := range report.Diagnostics() {
		d.Add(diag.NonManifold, "%s", msg)
	}
	if opt.FailOnNonManifold && !report.Manifold() {
		return d.Items(), fmt.Errorf("mesh is not manifold: %d duplicate faces, %d hole edges, %d excess edges",
			len(report.DuplicateFaces), len(report.HoleEdges), len(report.ExcessEdges))
	}

	store.Translate(math3d.V3(-store.BoundsMin.X, -store.BoundsMin.Y, -store.BoundsMin.Z))

	layerHeight := cfg.Float("layer_height")
	width := cfg.Float("extrusion_width")
	quantum := store.QuantumZ

	// Number of layers is ceil(height/layerHeight); an exact multiple
	// must not gain a spurious extra layer above the model.
	maxLayer := int(math.Ceil((store.BoundsMax.Z-store.BoundsMin.Z)/layerHeight)) - 1
	assignment := slice.AssignLayers(store, layerHeight)

	p.Stage("slicing", maxLayer+1)
	layers := make([]slice.Layer, maxLayer+1)
	for i := 0; i <= maxLayer; i++ {
		layer, warnings := slice.BuildLayer(store, assignment[i], i, layerHeight, quantum)
		layers[i] = layer
		for _, w := range warnings {
			d.AddLayer(diag.IncompletePolygon, i, "%s", w)
		}
		p.Step()
	}

	shellCount := cfg.Int("shell_count")
	randomStarts := cfg.Bool("random_starts")
	p.Stage("perimeters", len(layers))
	shells := make([][]geom2d.Paths, len(layers))
	for i, l := range layers {
		shells[i] = perimeter.Build(l.Paths, shellCount, width, randomStarts, opt.Rand)
		p.Step()
	}

	perim0 := make([]geom2d.Paths, len(layers))
	for i, s := range shells {
		if len(s) > 0 {
			perim0[i] = s[0]
		}
	}
	masks := mask.Build(perim0)

	supportCfg := support.Config{
		Width:         width,
		InfillOverlap: cfg.Float("infill_overlap"),
	}
	supportCfg.Type, _ = support.ParseType(cfg.String("support_type"))
	supportCfg.OverhangThreshold = cfg.Float("support_overhang_threshold")
	supportCfg.Outset = cfg.Float("support_outset")
	supportCfg.Density = cfg.Float("support_density")

	supportLayers := make([]support.Layer, len(layers))
	if supportCfg.Type != support.None {
		p.Stage("support", len(layers))
		facetsByLayer := support.FacetLayerIndex(store, layerHeight)
		dropPaths := support.DropMasks(store, facetsByLayer, 0, maxLayer, supportCfg.OverhangThreshold)

		layerOutlines := make(map[int]geom2d.Paths, len(layers))
		for i, l := range layers {
			layerOutlines[i] = l.Paths
		}
		shadowMasks := support.ShadowMasks(layerOutlines, 0, maxLayer, supportCfg)

		for i := range layers {
			overhang := support.Refine(dropPaths[i], shadowMasks[i], width)
			supportLayers[i] = support.Fill(overhang, supportCfg)
			p.Step()
		}
	}

	adhesionCfg := adhesion.Config{
		SkirtOutset: cfg.Float("skirt_outset"),
		BrimWidth:   cfg.Float("brim_width"),
		RaftOutset:  cfg.Float("raft_outset"),
		Width:       width,
	}
	adhesionCfg.Type, _ = adhesion.ParseType(cfg.String("adhesion_type"))

	var supportOutline0 geom2d.Paths
	if len(supportLayers) > 0 {
		supportOutline0 = supportLayers[0].Outline
	}
	adh := adhesion.Build(layers[0].Paths, supportOutline0, adhesionCfg)

	var raftLayers []adhesion.RaftLayer
	if adhesionCfg.Type == adhesion.Raft {
		raftLayers = adhesion.RaftLayers(adh.RaftOutline, cfg.Int("raft_layers"), adhesionCfg)
	}

	topLayers := cfg.Int("top_layers")
	botLayers := cfg.Int("bottom_layers")
	infillType, _ := infill.ParsePattern(cfg.String("infill_type"))
	infillDensity := cfg.Float("infill_density")
	infillOverlap := cfg.Float("infill_overlap")

	p.Stage("infill", len(layers))
	infillPaths := make([]geom2d.Paths, len(layers))
	for i := range layers {
		bounds := geom2d.PathsBounds(layers[i].Paths)

		var solidMask geom2d.Paths
		topLo, topHi := i, i+topLayers-1
		if topHi > maxLayer {
			topHi = maxLayer
		}
		for j := topLo; j <= topHi; j++ {
			solidMask = geom2d.Union(solidMask, masks[j].Top)
		}
		botLo, botHi := i-botLayers+1, i
		if botLo < 0 {
			botLo = 0
		}
		for j := botLo; j <= botHi; j++ {
			solidMask = geom2d.Union(solidMask, masks[j].Bot)
		}
		innerPerim := geom2d.Paths{}
		if len(shells[i]) > 0 {
			innerPerim = shells[i][len(shells[i])-1]
		}
		solidMask = geom2d.Clip(solidMask, innerPerim)

		solid := infill.BuildSolid(bounds, i, solidMask, width, infillOverlap)

		sparseMask := geom2d.Diff(geom2d.Offset(innerPerim, infillOverlap-width), solidMask)
		sparse := infill.BuildSparse(bounds, i, sparseMask, infillType, infillDensity, width)

		infillPaths[i] = append(solid, sparse...)
		p.Step()
	}

	p.Stage("gcode", len(layers)+len(raftLayers))
	prog := gcode.NewProgram(out, cfg)
	prog.Prelude(len(layers) + len(raftLayers))

	layerIdx := 0
	for _, rl := range raftLayers {
		var buckets [4]gcode.Bucket
		buckets[0] = gcode.Bucket{Paths: chain.Chain(rl.Lines), Width: width}
		prog.Layer(layerIdx, 0, buckets)
		layerIdx++
		p.Step()
	}

	for i, l := range layers {
		var polylines geom2d.Paths
		for _, s := range shells[i] {
			polylines = append(polylines, s...)
		}
		polylines = append(polylines, infillPaths[i]...)
		if i < len(supportLayers) {
			polylines = append(polylines, supportLayers[i].Outline...)
			polylines = append(polylines, supportLayers[i].Infill...)
		}
		if i == 0 {
			polylines = append(polylines, adh.Skirt...)
			polylines = append(polylines, adh.Brim...)
		}

		var buckets [4]gcode.Bucket
		buckets[0] = gcode.Bucket{Paths: chain.Chain(polylines), Width: width}
		prog.Layer(layerIdx, l.Z, buckets)
		layerIdx++
		p.Step()
	}

	p.Done()
	return d.Items(), nil
}
