package layout

import (
	"github.com/arborgraph/arbor/pkg/family"
	"github.com/arborgraph/arbor/pkg/graph"
)

// emitNodes flattens the positioned trees into drawable nodes. A single
// unit becomes one card whose top-left corner is (x - width/2, y); a
// couple becomes two cards straddling the unit center, separated by the
// spouse gap. Both cards of a couple carry the unit's generation and
// family group so the canvas can highlight them together.
func emitNodes(trees []*familyUnit, sp spacing) []graph.Node {
	nodes := []graph.Node{}
	for _, t := range trees {
		t.walk(func(u *familyUnit) {
			if u.spouse == nil {
				nodes = append(nodes, graph.Node{
					ID:          u.member.ID,
					X:           u.x - sp.nodeWidth/2,
					Y:           u.y,
					Member:      *u.member,
					Generation:  u.generation,
					FamilyGroup: u.familyGroup,
				})
				return
			}
			nodes = append(nodes,
				graph.Node{
					ID:          u.member.ID,
					X:           u.x - sp.spouseGap/2 - sp.nodeWidth,
					Y:           u.y,
					Member:      *u.member,
					Generation:  u.generation,
					FamilyGroup: u.familyGroup,
				},
				graph.Node{
					ID:          u.spouse.ID,
					X:           u.x + sp.spouseGap/2,
					Y:           u.y,
					Member:      *u.spouse,
					Generation:  u.generation,
					FamilyGroup: u.familyGroup,
				})
		})
	}
	return nodes
}

// emitEdges derives relationship edges from the member list itself rather
// than the tree, so a resolvable parent or spouse pointer always produces
// its edge even when tree traversal reached the member some other way.
//
// Parent-child: one edge per resolvable father and mother pointer, except
// that identical father and mother ids collapse to a single edge. Spouse:
// exactly one edge per resolved couple - the member whose id sorts first
// emits it, and the partner only emits when its pointer is unreciprocated
// (so one-sided spouse pointers still surface exactly once).
func emitEdges(members []family.Member, idx *family.Index) []graph.Edge {
	edges := []graph.Edge{}
	seen := make(map[string]struct{})
	add := func(e graph.Edge) {
		if _, dup := seen[e.ID]; dup {
			return
		}
		seen[e.ID] = struct{}{}
		edges = append(edges, e)
	}

	for _, m := range members {
		if f := idx.Lookup(m.FatherID); f != nil && f.ID != m.ID {
			add(graph.Edge{
				ID:     "pc-" + f.ID + "-" + m.ID,
				Source: f.ID,
				Target: m.ID,
				Kind:   graph.KindParentChild,
			})
		}
		if mo := idx.Lookup(m.MotherID); mo != nil && mo.ID != m.ID && m.MotherID != m.FatherID {
			add(graph.Edge{
				ID:     "pc-" + mo.ID + "-" + m.ID,
				Source: mo.ID,
				Target: m.ID,
				Kind:   graph.KindParentChild,
			})
		}
		if s := idx.Lookup(m.SpouseID); s != nil && s.ID != m.ID {
			if m.ID < s.ID || s.SpouseID != m.ID {
				add(graph.Edge{
					ID:     spouseEdgeID(m.ID, s.ID),
					Source: m.ID,
					Target: s.ID,
					Kind:   graph.KindSpouse,
				})
			}
		}
	}
	return edges
}

// spouseEdgeID builds a canonical id so the same couple always yields the
// same edge id regardless of which partner emitted it.
func spouseEdgeID(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return "sp-" + a + "-" + b
}
