package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lifeline/pkg/graph"
	"github.com/matzehuels/lifeline/pkg/pipeline"
)

// renderCommand creates the render command. It accepts both raw and
// laid-out diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output   string
		noCache  bool
		relayout bool
		layoutFl pipeline.Options
		renderFl renderFlags
	)

	cmd := &cobra.Command{
		Use:   "render [diagram.json]",
		Short: "Render a sequence diagram to SVG, PNG, PDF, DOT or JSON",
		Long: `Render a sequence diagram to SVG, PNG, PDF, DOT or JSON.

A diagram that has not been laid out yet is laid out first, using the same
settings as the layout command. A laid-out diagram (from 'layout') is
rendered as is unless --relayout is given.

PNG and PDF need rsvg-convert (librsvg) on the PATH. With --renderer graphviz
the SVG is produced by Graphviz from the DOT output instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.cfg.PipelineOptions()
			mergeLayoutFlags(cmd, &opts, layoutFl)
			if err := opts.ValidateForLayout(); err != nil {
				return err
			}
			if err := mergeRenderFlags(cmd, &opts, renderFl); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], output, noCache, relayout, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&relayout, "relayout", false, "lay out the diagram again even if it carries geometry")
	addLayoutFlags(cmd, &layoutFl)
	addRenderFlags(cmd, &renderFl)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input, output string, noCache, relayout bool, opts pipeline.Options) error {
	d, err := graph.ReadDiagramFile(input)
	if err != nil {
		return fmt.Errorf("load diagram %s: %w", input, err)
	}

	runner := c.newRunner(ctx, noCache)
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	var (
		artifacts map[string][]byte
		stats     = diagramStats{lifelines: len(d.Lifelines), messages: len(d.Messages)}
	)
	if d.IsLaidOut() && !relayout {
		artifacts, stats.cached, err = runner.RenderWithCacheInfo(ctx, d, opts)
	} else {
		var res *pipeline.Result
		res, err = runner.Execute(ctx, d, opts)
		if err == nil {
			artifacts = res.Artifacts
			stats.executions, stats.comments = res.Layout.Executions, res.Layout.Comments
			stats.cached = res.CacheInfo.LayoutHit && res.CacheInfo.RenderHit
		}
	}
	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
			return ctx.Err()
		}
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	paths := artifactPaths(input, output, opts.Formats)
	for _, path := range paths {
		if filepath.Clean(path) == filepath.Clean(input) {
			return fmt.Errorf("refusing to overwrite input %s; pass -o", input)
		}
	}
	for _, format := range opts.Formats {
		path := paths[format]
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	printSuccess("Rendered %s", diagramName(d, input))
	for _, format := range opts.Formats {
		printFile(paths[format])
	}
	printStats(stats)
	return nil
}

// artifactPaths maps each format to its output file. A single format with an
// explicit output path is written there verbatim; otherwise files are named
// base.format, where base is the output path or the input path minus its
// extension.
func artifactPaths(input, output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := trimDiagramExt(input)
	if output != "" {
		base = output
		if ext := strings.TrimPrefix(filepath.Ext(output), "."); ext != "" && slices.Contains(formats, ext) {
			base = strings.TrimSuffix(output, "."+ext)
		}
	}
	for _, f := range formats {
		if f == pipeline.FormatJSON {
			paths[f] = base + ".layout.json"
			continue
		}
		paths[f] = base + "." + f
	}
	return paths
}
