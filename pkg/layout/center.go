package layout

import "math"

// centerTrees translates every unit so the generation-0 band is
// horizontally centered in the viewport and the topmost band sits at the
// top margin.
//
// Only the root band participates in the horizontal bounding box - deeper
// generations may be arbitrarily lopsided without pulling the anchor
// generation off-center. Each root unit contributes its own half-footprint
// (couple vs. single) to the box.
func centerTrees(trees []*familyUnit, viewportWidth float64, sp spacing) {
	if len(trees) == 0 {
		return
	}

	minX := math.Inf(1)
	maxX := math.Inf(-1)
	for _, t := range trees {
		half := t.footprint(sp) / 2
		minX = math.Min(minX, t.x-half)
		maxX = math.Max(maxX, t.x+half)
	}

	minY := math.Inf(1)
	for _, t := range trees {
		t.walk(func(u *familyUnit) {
			minY = math.Min(minY, u.y)
		})
	}

	offsetX := viewportWidth/2 - (minX+maxX)/2
	offsetY := sp.topMargin - minY
	for _, t := range trees {
		t.walk(func(u *familyUnit) {
			u.x += offsetX
			u.y += offsetY
		})
	}
}
