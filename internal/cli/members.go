package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/arborgraph/arbor/pkg/family"
	"github.com/arborgraph/arbor/pkg/pipeline"
)

// membersCommand creates the members command for listing family members.
func (c *CLI) membersCommand() *cobra.Command {
	var (
		interactive bool
		noCache     bool
		refresh     bool
	)

	cmd := &cobra.Command{
		Use:   "members [members.json]",
		Short: "List or browse family members",
		Long: `List or browse family members.

Reads the member list from a file or the configured source and prints it
as a table. With --interactive, opens a scrollable browser showing each
member's dates, birth place, and relations.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) > 0 {
				input = args[0]
			}
			return c.runMembers(cmd.Context(), input, interactive, noCache, refresh)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse members interactively")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the member-list cache")

	return cmd
}

func (c *CLI) runMembers(ctx context.Context, input string, interactive, noCache, refresh bool) error {
	src, err := c.newSource(ctx, input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	logger := loggerFromContext(ctx)
	prog := newProgress(logger)
	members, err := runner.Fetch(ctx, src, pipeline.Options{Refresh: refresh, Logger: logger})
	if err != nil {
		return fmt.Errorf("fetch members: %w", err)
	}
	prog.done(fmt.Sprintf("Fetched %d members", len(members)))
	if len(members) == 0 {
		printInfo("No members found")
		return nil
	}

	if interactive {
		model := NewMemberListModel(members)
		if _, err := tea.NewProgram(model, tea.WithContext(ctx)).Run(); err != nil {
			return fmt.Errorf("browse members: %w", err)
		}
		return nil
	}

	printMemberTable(members)
	printNewline()
	printDetail("%d members from %s", len(members), src.Description())
	return nil
}

// printMemberTable prints the member list as a bordered table.
func printMemberTable(members []family.Member) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, 0, len(members))
	for _, m := range members {
		rows = append(rows, []string{
			m.ID,
			m.FullName(),
			lifespan(m),
			m.BirthPlace,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Name", "Lived", "Birth Place").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 || col == 2 {
				return StyleDim
			}
			return StyleValue
		})

	fmt.Println(t.Render())
}

// lifespan formats a member's birth and death years for display.
func lifespan(m family.Member) string {
	born, haveBorn := m.Born()
	died, haveDied := m.Died()
	switch {
	case haveBorn && haveDied:
		return fmt.Sprintf("%d–%d", born.Year(), died.Year())
	case haveBorn:
		return fmt.Sprintf("%d–", born.Year())
	case haveDied:
		return fmt.Sprintf("–%d", died.Year())
	default:
		return "—"
	}
}
