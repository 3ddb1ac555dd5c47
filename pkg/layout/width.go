package layout

import "math"

// computeWidth runs the bottom-up width pass, memoizing each unit's
// horizontal footprint onto unit.width.
//
// A leaf's width is its own footprint (single card, or couple plus spouse
// gap). A parent's width is max(own footprint, total children width): a
// parent never claims less horizontal space than its own body needs, even
// when its children are narrow.
func computeWidth(u *familyUnit, sp spacing) float64 {
	own := u.footprint(sp)
	if len(u.children) == 0 {
		u.width = own
		return own
	}
	u.width = math.Max(own, childrenWidth(u, sp, true))
	return u.width
}

// childrenWidth totals the horizontal space u's children need under the
// grouping rules: within a family group, each child width plus a
// generation-scaled sibling gap between neighbors; between adjacent
// groups, an additional (larger, also generation-scaled) family-group gap.
// A single child degenerates to that child's width with no gaps.
//
// With recurse set, child widths are computed on the way; the position
// pass calls this again with recurse false and reuses the memoized widths,
// so both passes agree on the exact same total.
func childrenWidth(u *familyUnit, sp spacing, recurse bool) float64 {
	childGen := u.generation + 1
	var total float64
	for gi, group := range u.childGroups() {
		if gi > 0 {
			total += sp.groupGapAt(childGen)
		}
		for ci, c := range group {
			if ci > 0 {
				total += sp.siblingGapAt(childGen)
			}
			if recurse {
				total += computeWidth(c, sp)
			} else {
				total += c.width
			}
		}
	}
	return total
}
