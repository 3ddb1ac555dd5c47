package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arborgraph/arbor/pkg/pipeline"
)

// layoutCommand creates the layout command for computing tree layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{
		ViewportWidth: c.Config.Viewport,
		Density:       c.Config.Density,
	}

	cmd := &cobra.Command{
		Use:   "layout [members.json]",
		Short: "Compute a family-tree layout from a member list",
		Long: `Compute a family-tree layout from a member list.

The layout command reads a JSON array of family members (from a file, or
from the source configured in the config file), selects the root ancestor,
and computes non-overlapping canvas positions for every member. The output
is a layout.json file consumed by the ancestry canvas, or renderable via
'arbor render'.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) > 0 {
				input = args[0]
			}
			return c.runLayout(cmd.Context(), input, opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass the member-list cache")

	// Layout flags
	cmd.Flags().Float64Var(&opts.ViewportWidth, "viewport", opts.ViewportWidth, "viewport width for centering")
	cmd.Flags().StringVar(&opts.Density, "density", opts.Density, "spacing density: comfortable, compact (default: by viewport width)")

	return cmd
}

// runLayout fetches members, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	src, err := c.newSource(ctx, input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	opts.Formats = []string{pipeline.FormatJSON}

	spinner := newSpinnerWithContext(ctx, "Computing tree layout...")
	spinner.Start()

	result, err := runner.Execute(ctx, src, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		if input != "" {
			base := strings.TrimSuffix(input, filepath.Ext(input))
			outputPath = base + ".layout.json"
		} else {
			outputPath = "tree.layout.json"
		}
	}

	if err := os.WriteFile(outputPath, result.Artifacts[pipeline.FormatJSON], 0644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.LayoutHit)
	printNewline()
	printNextStep("Render", "arbor render "+outputPath)

	return nil
}
