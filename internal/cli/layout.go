package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lifeline/pkg/graph"
	"github.com/matzehuels/lifeline/pkg/pipeline"
)

// layoutCommand creates the layout command for assigning coordinates.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		fl      pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "layout [diagram.json]",
		Short: "Assign coordinates to a sequence diagram",
		Long: `Assign coordinates to a sequence diagram.

The layout command reads a diagram (JSON or YAML) whose lifelines are ordered
and whose messages carry their relative positions, and writes the same
diagram with absolute geometry: lifeline bounds, message lines, execution
bars, label positions and comment boxes.

Spacing flags override the config file, which overrides the diagram's own
options block.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.cfg.PipelineOptions()
			mergeLayoutFlags(cmd, &opts, fl)
			if err := opts.ValidateForLayout(); err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), args[0], output, noCache, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	addLayoutFlags(cmd, &fl)

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, input, output string, noCache bool, opts pipeline.Options) error {
	d, err := graph.ReadDiagramFile(input)
	if err != nil {
		return fmt.Errorf("load diagram %s: %w", input, err)
	}

	runner := c.newRunner(ctx, noCache)
	defer runner.Close()

	p := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	laid, res, hit, err := runner.LayoutWithCacheInfo(ctx, d, opts)
	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
			return ctx.Err()
		}
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("layout: %w", err)
	}
	spinner.Stop()
	p.done("layout finished", "cached", hit)

	if output == "" {
		output = layoutPath(input)
	}
	if err := graph.WriteDiagramFile(laid, output); err != nil {
		return fmt.Errorf("write layout %s: %w", output, err)
	}

	printSuccess("Laid out %s", diagramName(laid, input))
	printFile(output)
	printStats(diagramStats{
		lifelines:  res.Lifelines,
		messages:   res.Messages,
		executions: res.Executions,
		comments:   res.Comments,
		cached:     hit,
	})
	if skipped := len(laid.Comments) - res.Comments; skipped > 0 {
		printWarning("%d comment(s) could not be placed", skipped)
	}
	printNextStep("Render it", appName+" render "+output)
	return nil
}

// layoutPath derives the default layout output path from the input path.
func layoutPath(input string) string {
	return trimDiagramExt(input) + ".layout.json"
}

// trimDiagramExt strips ".layout.json" or a single extension from path.
func trimDiagramExt(path string) string {
	if strings.HasSuffix(path, ".layout.json") {
		return strings.TrimSuffix(path, ".layout.json")
	}
	return strings.TrimSuffix(path, filepath.Ext(path))
}

// diagramName returns the diagram's name, its ID, or the input file's base
// name, whichever is set first.
func diagramName(d graph.Diagram, input string) string {
	switch {
	case d.Name != "":
		return d.Name
	case d.ID != "":
		return d.ID
	}
	return filepath.Base(trimDiagramExt(input))
}
