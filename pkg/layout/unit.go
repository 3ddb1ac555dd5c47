package layout

import "github.com/arborgraph/arbor/pkg/family"

// familyUnit is one layout node: a member, optionally merged with a
// resolved spouse, plus the ordered child units underneath. Units are
// exclusively owned by one layout pass - they are built, measured,
// positioned, emitted, and discarded inside a single Compute call, so the
// in-place width/x/y mutation never escapes the call stack.
type familyUnit struct {
	member *family.Member
	spouse *family.Member

	children   []*familyUnit
	generation int

	// familyGroup clusters full siblings: it is set by the parent unit to
	// "<primaryID>-<spouseID|single>" so children of the same couple can be
	// spaced more tightly than cousins.
	familyGroup string

	// width is the horizontal footprint memoized by computeWidth.
	width float64

	// x, y are the unit's center-x and band-top-y, set by place.
	x, y float64
}

// footprint is the horizontal space the unit's own cards need, before any
// children are considered.
func (u *familyUnit) footprint(sp spacing) float64 {
	if u.spouse != nil {
		return sp.nodeWidth*2 + sp.spouseGap
	}
	return sp.nodeWidth
}

// walk visits u and every descendant, parents before children.
func (u *familyUnit) walk(fn func(*familyUnit)) {
	fn(u)
	for _, c := range u.children {
		c.walk(fn)
	}
}

// childGroups partitions u's children by familyGroup, preserving both the
// order of first appearance and the child order within each group.
func (u *familyUnit) childGroups() [][]*familyUnit {
	var groups [][]*familyUnit
	index := make(map[string]int)
	for _, c := range u.children {
		i, ok := index[c.familyGroup]
		if !ok {
			i = len(groups)
			index[c.familyGroup] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], c)
	}
	return groups
}
