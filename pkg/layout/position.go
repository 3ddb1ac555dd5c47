package layout

// place runs the top-down position pass, converting the widths memoized by
// computeWidth into absolute coordinates. left is the left edge of the
// horizontal band allocated to u; y is the top of u's generation band.
//
// Leaves center themselves in their band. A parent first lays out its
// children (centering them under its own band when they are narrower than
// it), then sets its x to the midpoint of its first and last child, which
// for a single child collapses to that child's x.
func place(u *familyUnit, left, y float64, sp spacing) {
	u.y = y
	if len(u.children) == 0 {
		u.x = left + u.width/2
		return
	}

	x := left
	if total := childrenWidth(u, sp, false); total < u.width {
		x += (u.width - total) / 2
	}

	childGen := u.generation + 1
	childY := y + sp.nodeHeight + sp.generationGap
	for gi, group := range u.childGroups() {
		if gi > 0 {
			x += sp.groupGapAt(childGen)
		}
		for ci, c := range group {
			if ci > 0 {
				x += sp.siblingGapAt(childGen)
			}
			place(c, x, childY, sp)
			x += c.width
		}
	}

	first := u.children[0]
	last := u.children[len(u.children)-1]
	u.x = (first.x + last.x) / 2
}
