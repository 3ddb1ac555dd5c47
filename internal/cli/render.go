package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arborgraph/arbor/pkg/graph"
	"github.com/arborgraph/arbor/pkg/pipeline"
)

// renderCommand creates the render command for producing output from a layout.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [layout.json]",
		Short: "Render a computed layout to JSON, DOT, SVG, or PNG",
		Long: `Render a computed layout to JSON, DOT, SVG, or PNG.

The render command takes a layout.json file (produced by 'layout') and
renders it in the requested formats. The layout contains all positioning
information, so this step is purely about output generation: the SVG and
PNG formats draw a classic node-link family tree via Graphviz, and the DOT
format can be fed to external tooling.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "svg", "output format(s): svg (default), png, dot, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "include birth place and generation in diagram labels")

	return cmd
}

// runRender loads the layout and renders it.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string) error {
	l, err := graph.ReadLayoutFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Rendering tree...")
	spinner.Start()

	artifacts, err := pipeline.RenderLayout(l, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	printSuccess("Render complete")
	for _, format := range opts.Formats {
		path := artifactPath(input, output, format, len(opts.Formats))
		if err := os.WriteFile(path, artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(len(l.Nodes), len(l.Edges), false)

	return nil
}

// artifactPath decides the output path for one rendered format. A single
// format honors -o verbatim; multiple formats treat -o as a base path.
func artifactPath(input, output, format string, formatCount int) string {
	if output != "" {
		if formatCount == 1 {
			return output
		}
		return output + "." + format
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	base = strings.TrimSuffix(base, ".layout")
	return base + "." + format
}
