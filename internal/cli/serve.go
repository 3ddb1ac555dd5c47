package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arborgraph/arbor/internal/server"
	"github.com/arborgraph/arbor/pkg/source"
)

// serveCommand creates the serve command for running the layout API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		input   string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout HTTP API",
		Long: `Run the layout HTTP API.

Serves computed layouts over HTTP for the ancestry canvas:

  GET  /api/v1/layout   compute a layout from the configured source
  POST /api/v1/layout   compute a layout from inline members
  GET  /api/v1/members  list members from the configured source
  GET  /health          health check

The member source comes from --input or the config file. Without one,
only the inline POST endpoint is available.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, input, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVarP(&input, "input", "f", "", "members.json file to serve (overrides config source)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, input string, noCache bool) error {
	var src source.Source
	if s, err := c.newSource(ctx, input); err == nil {
		src = s
	} else {
		c.Logger.Warn("serving without a member source", "reason", err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	srv := server.New(runner, src, c.Logger)
	return srv.ListenAndServe(ctx, addr)
}
