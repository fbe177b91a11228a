// Package mask implements the Mask Builder: computing
// top_mask/bot_mask per layer from the outermost perimeter ring of
// each layer and its vertical neighbors.
package mask

import "github.com/taigrr/slicer/pkg/geom2d"

// Masks holds the top and bottom solid-infill masks for one layer.
type Masks struct {
	Top geom2d.Paths
	Bot geom2d.Paths
}

// Build computes top_mask[i] = diff(perim0[i], perim0[i+1]) and
// bot_mask[i] = diff(perim0[i], perim0[i-1]) for every layer, treating
// missing neighbors (before layer 0, after the last layer) as empty.
// perim0 is indexed by layer, outermost perimeter ring only.
func Build(perim0 []geom2d.Paths) []Masks {
	out := make([]Masks, len(perim0))
	for i := range perim0 {
		var above, below geom2d.Paths
		if i+1 < len(perim0) {
			above = perim0[i+1]
		}
		if i-1 >= 0 {
			below = perim0[i-1]
		}
		out[i] = Masks{
			Top: geom2d.Diff(perim0[i], above),
			Bot: geom2d.Diff(perim0[i], below),
		}
	}
	return out
}
