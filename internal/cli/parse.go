package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/HaomingX/KnowledgeCircuitVis/pkg/circuit"
	"github.com/HaomingX/KnowledgeCircuitVis/pkg/io"
)

// parseCommand creates the parse command for extracting circuit edge lists.
func (c *CLI) parseCommand() *cobra.Command {
	var (
		output string
		stdout bool
	)

	cmd := &cobra.Command{
		Use:   "parse [graph.gv]",
		Short: "Extract the edge list from a circuit graph file",
		Long: `Extract the edge list from a circuit graph file.

The parse command scans a .gv file for edge declarations of the form
"<source>" -> "<target>" and writes the ordered edge list as JSON. Lines
without an edge declaration (graph attributes, comments) are skipped.

The output is an edges.json file that 'layout' and 'render' also accept in
place of the raw .gv file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runParse(args[0], output, stdout)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.edges.json)")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "write JSON to stdout instead of a file")

	return cmd
}

// runParse parses the graph file and writes the edge list.
func (c *CLI) runParse(input, output string, stdout bool) error {
	prog := newProgress(c.Logger)

	edges, err := circuit.ParseFile(input)
	if err != nil {
		return fmt.Errorf("parse %s: %w", input, err)
	}
	if len(edges) == 0 {
		printWarning("No circuit edges found in %s", input)
	}
	prog.done(fmt.Sprintf("Parsed %d edges", len(edges)))

	if stdout {
		return io.WriteEdges(edges, os.Stdout)
	}

	out := outputPath(output, input, ".edges.json")
	if err := io.ExportEdges(edges, out); err != nil {
		return fmt.Errorf("write output %s: %w", out, err)
	}

	printSuccess("Parse complete")
	printFile(out)
	printStats(len(circuit.Nodes(edges)), len(edges), false)
	printNewline()
	printNextStep("Layout", "circuitvis layout "+input)

	return nil
}
