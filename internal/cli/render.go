package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/HaomingX/KnowledgeCircuitVis/pkg/pipeline"
)

// renderCommand creates the render command for generating static artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{Format: pipeline.FormatSVG}

	cmd := &cobra.Command{
		Use:   "render [graph.gv]",
		Short: "Render a circuit to a static image",
		Long: `Render a circuit to a static image.

The render command takes a .gv graph file (or an edges.json file produced by
'parse') and generates a static artifact via Graphviz: the DOT source itself,
or an SVG or PNG rendering of it. Node colors follow the viewer: green for
attention heads, orange for MLP nodes, yellow for the output node.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateRenderFormat(opts.Format); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.<format>)")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", opts.Format, "output format: svg (default), png, dot")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "drawing area width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "drawing area height")

	return cmd
}

// validateRenderFormat rejects formats without a static artifact.
func validateRenderFormat(format string) error {
	switch format {
	case pipeline.FormatDOT, pipeline.FormatSVG, pipeline.FormatPNG:
		return nil
	case pipeline.FormatJSON:
		return fmt.Errorf("format 'json' has no artifact; use 'circuitvis layout' instead")
	default:
		return fmt.Errorf("invalid format: %s (must be 'svg', 'png', or 'dot')", format)
	}
}

// runRender loads the circuit, runs the render stage, and writes the artifact.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	edges, err := loadEdges(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinner(ctx, fmt.Sprintf("Rendering %s...", opts.Format))
	spinner.Start()

	result, err := runner.ExecuteEdges(ctx, edges, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	out := outputPath(output, input, "."+opts.Format)
	if err := os.WriteFile(out, result.Artifact, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", out, err)
	}

	printSuccess("Render complete")
	printFile(out)
	printStats(result.Stats.Nodes, result.Stats.Edges, result.CacheInfo.RenderHit)

	return nil
}
