package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/HaomingX/KnowledgeCircuitVis/pkg/catalog"
	"github.com/HaomingX/KnowledgeCircuitVis/pkg/circuit"
	"github.com/HaomingX/KnowledgeCircuitVis/pkg/io"
	"github.com/HaomingX/KnowledgeCircuitVis/pkg/pipeline"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the browse command for interactive case selection.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		dataDir string
		output  string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse cases interactively and export a layout",
		Long: `Browse cases interactively and export a layout.

The browse command lists every case in the data directory in an interactive
picker. Selecting a case computes its element layout and writes it as JSON,
the same output 'layout' produces.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(cmd.Context(), catalog.New(dataDir), opts, output, noCache)
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", defaultDataDir, "directory containing circuit data")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <model>_<case>.elements.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "drawing area width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "drawing area height")

	return cmd
}

// caseEntry is one selectable row in the browse list.
type caseEntry struct {
	Model string
	Case  string
	Path  string
	Edges int
}

// runBrowse collects all cases, runs the picker, and exports the selection.
func (c *CLI) runBrowse(ctx context.Context, cat *catalog.Catalog, opts pipeline.Options, output string, noCache bool) error {
	entries, err := collectEntries(cat)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		printInfo("No cases found under %s", cat.Root())
		return nil
	}

	model := newCaseListModel(entries)
	final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("run picker: %w", err)
	}

	selected := final.(caseListModel).Selected
	if selected == nil {
		printInfo("No case selected")
		return nil
	}

	edges, err := cat.Open(selected.Model, selected.Case)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	result, err := runner.ExecuteEdges(ctx, edges, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	out := output
	if out == "" {
		out = fmt.Sprintf("%s_%s.elements.json", selected.Model, selected.Case)
	}
	if err := io.ExportElements(result.Elements, out); err != nil {
		return fmt.Errorf("write output %s: %w", out, err)
	}

	printSuccess("Layout complete for %s/%s", selected.Model, selected.Case)
	printFile(out)
	printStats(result.Stats.Nodes, result.Stats.Edges, result.CacheInfo.LayoutHit)

	return nil
}

// collectEntries flattens the catalog into one row per case, with edge counts.
func collectEntries(cat *catalog.Catalog) ([]caseEntry, error) {
	models, err := cat.Models()
	if err != nil {
		return nil, err
	}

	var entries []caseEntry
	for _, model := range models {
		cases, err := cat.Cases(model)
		if err != nil {
			return nil, err
		}
		for _, cs := range cases {
			count := 0
			if edges, err := circuit.ParseFile(cs.Path); err == nil {
				count = len(edges)
			}
			entries = append(entries, caseEntry{Model: model, Case: cs.Name, Path: cs.Path, Edges: count})
		}
	}
	return entries, nil
}

// =============================================================================
// caseListModel - Interactive case selection
// =============================================================================

// caseListModel is the bubbletea model for interactive case selection.
type caseListModel struct {
	Entries  []caseEntry
	Cursor   int
	Selected *caseEntry
	Height   int
	Offset   int
}

func newCaseListModel(entries []caseEntry) caseListModel {
	return caseListModel{
		Entries: entries,
		Cursor:  0,
		Height:  15,
		Offset:  0,
	}
}

func (m caseListModel) Init() tea.Cmd {
	return nil
}

func (m caseListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			entry := m.Entries[m.Cursor]
			if entry.Edges == 0 {
				return m, nil
			}
			m.Selected = &entry
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m caseListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Case"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Entries) {
		end = len(m.Entries)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		edges := "—"
		if e.Edges > 0 {
			edges = fmt.Sprintf("%d", e.Edges)
		}

		rows = append(rows, []string{cursor, e.Model, e.Case, edges})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Model", "Case", "Edges").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Entries) {
				return lipgloss.NewStyle()
			}
			e := m.Entries[actualIdx]
			isCurrent := actualIdx == m.Cursor

			base := lipgloss.NewStyle()
			if e.Edges == 0 {
				base = base.Foreground(colorDim)
			} else if isCurrent {
				base = base.Foreground(colorGreen)
			} else {
				base = base.Foreground(colorWhite)
			}
			if isCurrent {
				base = base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entries))))

	return b.String()
}
