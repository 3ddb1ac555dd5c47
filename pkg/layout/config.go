package layout

import "github.com/arborgraph/arbor/pkg/graph"

// DefaultViewportWidth is used when the caller supplies no viewport.
const DefaultViewportWidth = 1280.0

// CompactBreakpoint is the viewport width below which the compact density
// is chosen when the caller leaves Density empty.
const CompactBreakpoint = 768.0

// Config makes the engine a pure function of (members, Config). The
// viewport is an explicit parameter rather than ambient window state so
// layouts are reproducible in tests without a display.
type Config struct {
	// ViewportWidth is the horizontal size of the canvas the layout is
	// centered for. Zero means DefaultViewportWidth.
	ViewportWidth float64

	// Density selects a spacing profile (graph.DensityComfortable or
	// graph.DensityCompact). Empty means breakpoint-derived from
	// ViewportWidth.
	Density string
}

// withDefaults resolves zero values into concrete settings.
func (c Config) withDefaults() Config {
	if c.ViewportWidth <= 0 {
		c.ViewportWidth = DefaultViewportWidth
	}
	if c.Density == "" {
		if c.ViewportWidth < CompactBreakpoint {
			c.Density = graph.DensityCompact
		} else {
			c.Density = graph.DensityComfortable
		}
	}
	return c
}

// spacing holds every pixel constant one layout pass uses. The sibling and
// family-group gaps are generation-scaled (base + generation*step) so
// deeper generations spread further apart and the tree reads as a pyramid.
type spacing struct {
	nodeWidth  float64 // one member card
	nodeHeight float64
	spouseGap  float64 // gap between the two cards of a couple

	siblingGap     float64 // between children of the same couple
	siblingGapStep float64
	groupGap       float64 // between adjacent family groups, larger than siblingGap
	groupGapStep   float64

	generationGap float64 // vertical gap between bands
	treeGap       float64 // between independent trees in fallback mode
	topMargin     float64
}

func spacingFor(density string) spacing {
	if density == graph.DensityCompact {
		return spacing{
			nodeWidth:      120,
			nodeHeight:     72,
			spouseGap:      24,
			siblingGap:     24,
			siblingGapStep: 8,
			groupGap:       56,
			groupGapStep:   16,
			generationGap:  56,
			treeGap:        96,
			topMargin:      24,
		}
	}
	return spacing{
		nodeWidth:      160,
		nodeHeight:     90,
		spouseGap:      40,
		siblingGap:     40,
		siblingGapStep: 12,
		groupGap:       90,
		groupGapStep:   24,
		generationGap:  70,
		treeGap:        140,
		topMargin:      40,
	}
}

// siblingGapAt returns the gap between grouped siblings at a generation.
func (s spacing) siblingGapAt(generation int) float64 {
	return s.siblingGap + float64(generation)*s.siblingGapStep
}

// groupGapAt returns the gap between adjacent family groups at a generation.
func (s spacing) groupGapAt(generation int) float64 {
	return s.groupGap + float64(generation)*s.groupGapStep
}
