package pipeline

import (
	"fmt"

	"github.com/arborgraph/arbor/pkg/graph"
	"github.com/arborgraph/arbor/pkg/render/nodelink"
)

// RenderLayout generates output artifacts in the requested formats without
// a Runner. Useful when the layout was computed elsewhere (e.g., loaded from
// a file).
func RenderLayout(l graph.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte)
	var dot string

	for _, format := range opts.Formats {
		data, err := renderFormat(format, l, &dot, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderFormat produces a single artifact. The DOT string is generated on
// first use and shared across the dot/svg/png formats via dotCache.
func renderFormat(format string, l graph.Layout, dotCache *string, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		return graph.MarshalLayout(l)
	case FormatDOT:
		return []byte(dotFor(l, dotCache, opts)), nil
	case FormatSVG:
		return nodelink.RenderSVG(dotFor(l, dotCache, opts))
	case FormatPNG:
		return nodelink.RenderPNG(dotFor(l, dotCache, opts))
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func dotFor(l graph.Layout, dotCache *string, opts Options) string {
	if *dotCache == "" {
		*dotCache = nodelink.ToDOT(l, nodelink.Options{Detailed: opts.Detailed})
	}
	return *dotCache
}
