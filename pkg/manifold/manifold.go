// Package manifold implements the Manifold Check: it
// classifies every edge and facet of a mesh.Store into duplicate
// faces, hole edges, and excess edges, and reports a diagnostic line
// for each. The check is advisory — slicing proceeds regardless — but
// its Manifold() result may be used by the CLI to fail validation.
package manifold

import (
	"fmt"

	"github.com/taigrr/slicer/pkg/mesh"
)

// Report is the result of a manifold check.
type Report struct {
	DuplicateFaces []mesh.FacetID
	HoleEdges      []mesh.EdgeID
	ExcessEdges    []mesh.EdgeID
}

// Manifold reports whether every edge has count exactly 2 and every
// facet has count exactly 1.
func (r Report) Manifold() bool {
	return len(r.DuplicateFaces) == 0 && len(r.HoleEdges) == 0 && len(r.ExcessEdges) == 0
}

// Diagnostics renders one human-readable line per issue, in the order
// duplicate faces, hole edges, excess edges.
func (r Report) Diagnostics() []string {
	var lines []string
	for _, f := range r.DuplicateFaces {
		lines = append(lines, fmt.Sprintf("duplicate face: facet %d appears more than once", f))
	}
	for _, e := range r.HoleEdges {
		lines = append(lines, fmt.Sprintf("hole edge: edge %d borders only one facet", e))
	}
	for _, e := range r.ExcessEdges {
		lines = append(lines, fmt.Sprintf("excess edge: edge %d borders more than two facets", e))
	}
	return lines
}

// Check walks every facet and edge in store and classifies them.
func Check(store *mesh.Store) Report {
	var rep Report
	for i := 0; i < store.FacetCount(); i++ {
		if store.Facets[i].Count != 1 {
			rep.DuplicateFaces = append(rep.DuplicateFaces, mesh.FacetID(i))
		}
	}
	for i := 0; i < store.EdgeCount(); i++ {
		switch store.Edges[i].Count {
		case 2:
			// manifold
		case 1:
			rep.HoleEdges = append(rep.HoleEdges, mesh.EdgeID(i))
		default:
			if store.Edges[i].Count > 2 {
				rep.ExcessEdges = append(rep.ExcessEdges, mesh.EdgeID(i))
			}
		}
	}
	return rep
}
