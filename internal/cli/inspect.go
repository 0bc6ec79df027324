package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/lifeline/pkg/graph"
)

// inspectCommand creates the inspect command for browsing computed geometry.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		plain   bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [diagram.json]",
		Short: "Browse the computed geometry of a diagram",
		Long: `Browse the computed geometry of a diagram.

Shows the bounds of every lifeline, execution and comment and the end points
and label positions of every message. A diagram without layout results is
laid out in memory first. Use --plain to print all tables instead of opening
the interactive browser.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], plain, noCache)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print tables without the interactive browser")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input string, plain, noCache bool) error {
	d, err := graph.ReadDiagramFile(input)
	if err != nil {
		return fmt.Errorf("load diagram %s: %w", input, err)
	}

	if !d.IsLaidOut() {
		runner := c.newRunner(ctx, noCache)
		defer runner.Close()
		if d, err = runner.Layout(ctx, d, c.cfg.PipelineOptions()); err != nil {
			return fmt.Errorf("layout: %w", err)
		}
	}

	title := diagramName(d, input)
	if d.Root != nil {
		title += fmt.Sprintf("  %g×%g", d.Root.Width, d.Root.Height)
	}

	if plain {
		printTables(title, d)
		return nil
	}

	_, err = tea.NewProgram(NewInspectModel(title, d), tea.WithContext(ctx)).Run()
	return err
}

// printTables writes every non-empty element table to out.
func printTables(title string, d graph.Diagram) {
	fmt.Fprintln(out, StyleTitle.Render(title))
	for _, t := range diagramTables(d) {
		if len(t.rows) == 0 {
			continue
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, StyleDim.Render(t.name))
		fmt.Fprintln(out, t.render(0, len(t.rows), -1))
	}
}
