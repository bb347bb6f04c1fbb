package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/HaomingX/KnowledgeCircuitVis/pkg/catalog"
)

// casesCommand creates the cases command for listing circuit data on disk.
func (c *CLI) casesCommand() *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "cases [model]",
		Short: "List models and cases in the data directory",
		Long: `List models and cases in the data directory.

Without arguments, all models and their case counts are listed. With a model
name, the cases of that model are listed along with their graph file paths.

A case is any subdirectory of a model directory that contains a graph.gv file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := catalog.New(dataDir)
			if len(args) == 1 {
				return c.runCasesForModel(cat, args[0])
			}
			return c.runCasesOverview(cat)
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", defaultDataDir, "directory containing circuit data")

	return cmd
}

// runCasesOverview prints all models with their case counts.
func (c *CLI) runCasesOverview(cat *catalog.Catalog) error {
	models, err := cat.Models()
	if err != nil {
		return err
	}
	if len(models) == 0 {
		printInfo("No models found under %s", cat.Root())
		return nil
	}

	rows := make([][]string, 0, len(models))
	for _, model := range models {
		cases, err := cat.Cases(model)
		if err != nil {
			return err
		}
		rows = append(rows, []string{model, fmt.Sprintf("%d", len(cases))})
	}

	fmt.Println(casesTable([]string{"Model", "Cases"}, rows))
	printNewline()
	printNextStep("Inspect a model", "circuitvis cases <model>")
	return nil
}

// runCasesForModel prints the cases of one model.
func (c *CLI) runCasesForModel(cat *catalog.Catalog, model string) error {
	cases, err := cat.Cases(model)
	if err != nil {
		return err
	}
	if len(cases) == 0 {
		printInfo("Model %s has no cases", model)
		return nil
	}

	rows := make([][]string, 0, len(cases))
	for _, cs := range cases {
		rows = append(rows, []string{cs.Name, cs.Path})
	}

	fmt.Println(casesTable([]string{"Case", "Graph File"}, rows))
	printNewline()
	printNextStep("Compute a layout", "circuitvis layout <graph file>")
	return nil
}

// casesTable renders a bordered two-column table.
func casesTable(headers []string, rows [][]string) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorWhite)
			}
			return lipgloss.NewStyle().Foreground(colorGray)
		}).
		Render()
}
