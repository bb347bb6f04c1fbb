package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/HaomingX/KnowledgeCircuitVis/pkg/circuit"
	"github.com/HaomingX/KnowledgeCircuitVis/pkg/io"
	"github.com/HaomingX/KnowledgeCircuitVis/pkg/pipeline"
)

// layoutCommand creates the layout command for computing element layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		stdout  bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [graph.gv]",
		Short: "Compute the element layout for a circuit",
		Long: `Compute the element layout for a circuit.

The layout command takes a .gv graph file (or an edges.json file produced by
'parse') and computes positioned node and edge elements for the viewer widget.
Attention heads are placed on the right, MLP nodes on the left, and the output
node at the top, with vertical position following the layer index.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache, stdout)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.elements.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "write JSON to stdout instead of a file")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "drawing area width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "drawing area height")

	return cmd
}

// runLayout loads the circuit, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache, stdout bool) error {
	edges, err := loadEdges(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinner(ctx, "Computing layout...")
	spinner.Start()

	result, err := runner.ExecuteEdges(ctx, edges, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if stdout {
		return io.WriteElements(result.Elements, os.Stdout)
	}

	out := outputPath(output, input, ".elements.json")
	if err := io.ExportElements(result.Elements, out); err != nil {
		return fmt.Errorf("write output %s: %w", out, err)
	}

	printSuccess("Layout complete")
	printFile(out)
	printStats(result.Stats.Nodes, result.Stats.Edges, result.CacheInfo.LayoutHit)
	printNewline()
	printNextStep("Render", "circuitvis render "+input)

	return nil
}

// loadEdges reads a circuit from either a raw .gv file or an edges.json file.
func loadEdges(input string) ([]circuit.Edge, error) {
	if filepath.Ext(input) == ".json" {
		edges, err := io.ImportEdges(input)
		if err != nil {
			return nil, fmt.Errorf("load edges %s: %w", input, err)
		}
		return edges, nil
	}
	edges, err := circuit.ParseFile(input)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", input, err)
	}
	return edges, nil
}
