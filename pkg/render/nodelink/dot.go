package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/arborgraph/arbor/pkg/graph"
)

// Options configures diagram generation.
type Options struct {
	// Detailed includes birth place and generation in node labels.
	// When false, only name and life years are shown.
	Detailed bool
}

// ToDOT converts a computed layout to Graphviz DOT. Members of the same
// generation share a rank; spouse edges are drawn undirected and without
// layout constraint so couples sit side by side instead of stacking.
func ToDOT(l graph.Layout, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph family {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.35;\n")
	buf.WriteString("\n")

	for _, n := range l.Nodes {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", n.ID, nodeLabel(n, opts.Detailed))
	}

	// One rank per generation keeps the bands aligned.
	for _, gen := range generations(l.Nodes) {
		buf.WriteString("  { rank=same;")
		for _, n := range l.Nodes {
			if n.Generation == gen {
				fmt.Fprintf(&buf, " %q;", n.ID)
			}
		}
		buf.WriteString(" }\n")
	}

	buf.WriteString("\n")
	for _, e := range l.Edges {
		if e.Kind == graph.KindSpouse {
			fmt.Fprintf(&buf, "  %q -> %q [dir=none, style=dashed, constraint=false];\n", e.Source, e.Target)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// generations returns the distinct generation indices in ascending order.
func generations(nodes []graph.Node) []int {
	seen := make(map[int]bool)
	var gens []int
	for _, n := range nodes {
		if !seen[n.Generation] {
			seen[n.Generation] = true
			gens = append(gens, n.Generation)
		}
	}
	for i := 1; i < len(gens); i++ {
		for j := i; j > 0 && gens[j] < gens[j-1]; j-- {
			gens[j], gens[j-1] = gens[j-1], gens[j]
		}
	}
	return gens
}

func nodeLabel(n graph.Node, detailed bool) string {
	label := n.Member.FullName()
	if label == "" {
		label = n.ID
	}
	if years := lifeYears(n); years != "" {
		label += "\n" + years
	}
	if detailed {
		var parts []string
		if n.Member.BirthPlace != "" {
			parts = append(parts, n.Member.BirthPlace)
		}
		parts = append(parts, fmt.Sprintf("generation %d", n.Generation))
		label += "\n" + strings.Join(parts, "\n")
	}
	return label
}

func lifeYears(n graph.Node) string {
	born, haveBorn := n.Member.Born()
	died, haveDied := n.Member.Died()
	switch {
	case haveBorn && haveDied:
		return fmt.Sprintf("%d–%d", born.Year(), died.Year())
	case haveBorn:
		return fmt.Sprintf("*%d", born.Year())
	case haveDied:
		return fmt.Sprintf("†%d", died.Year())
	default:
		return ""
	}
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return render(dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG)
}

func render(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
