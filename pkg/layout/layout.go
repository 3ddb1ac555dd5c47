// Package layout computes a deterministic, non-overlapping 2D layout for a
// genealogical tree.
//
// Given the flat member list and a Config, Compute runs five passes over
// an ephemeral family-unit tree:
//
//  1. build: recursive parent→child walk from the selected root, merging
//     each member with their resolved spouse into one unit and guarding
//     against dual reachability with a processed set
//  2. width: bottom-up footprint calculation with generation-scaled
//     sibling and family-group gaps
//  3. position: top-down x/y assignment, parents centered over children
//  4. center: translate everything so the root generation is centered in
//     the viewport
//  5. emit: flatten to the graph.Layout node/edge contract
//
// The engine is a pure function of (members, Config): no I/O, no ambient
// state, no shared mutable state across calls. Malformed data - dangling
// pointers, self-references, parent cycles - degrades silently into
// already-processed leaves instead of surfacing errors; refusing to render
// is worse than an imperfect diagram for historical data.
package layout

import (
	"github.com/arborgraph/arbor/pkg/family"
	"github.com/arborgraph/arbor/pkg/graph"
)

// Compute lays out the members for the given config. An empty member list
// yields an empty (but non-nil) node/edge set, never an error; layout has
// no failure modes the caller needs to distinguish.
func Compute(members []family.Member, cfg Config) graph.Layout {
	cfg = cfg.withDefaults()
	sp := spacingFor(cfg.Density)

	out := graph.Layout{
		Nodes:         []graph.Node{},
		Edges:         []graph.Edge{},
		ViewportWidth: cfg.ViewportWidth,
		Density:       cfg.Density,
		FitView:       true,
	}
	if len(members) == 0 {
		return out
	}

	idx := family.NewIndex(members)
	b := newBuilder(members, idx)

	// Single-root mode anchors everything on the oldest parentless member.
	// Without one, every parentless member becomes its own generation-0
	// tree. Either way, members still unplaced afterwards (pure cycles,
	// islands only connected by marriage) are swept into their own trees
	// so nothing silently disappears from the diagram.
	var trees []*familyUnit
	if root := family.SelectRoot(members); root != nil {
		trees = append(trees, b.build(idx.Lookup(root.ID), 0))
	} else {
		for _, cand := range family.RootCandidates(members) {
			if !b.done(cand.ID) {
				trees = append(trees, b.build(idx.Lookup(cand.ID), 0))
			}
		}
	}
	for _, m := range members {
		if !b.done(m.ID) {
			trees = append(trees, b.build(idx.Lookup(m.ID), 0))
		}
	}

	for _, t := range trees {
		computeWidth(t, sp)
	}

	x := 0.0
	for i, t := range trees {
		if i > 0 {
			x += sp.treeGap
		}
		place(t, x, 0, sp)
		x += t.width
	}

	centerTrees(trees, cfg.ViewportWidth, sp)

	out.Nodes = emitNodes(trees, sp)
	out.Edges = emitEdges(members, idx)
	return out
}
