package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Terminal palette. The CLI prints short status lines under the command
// output, so the set stays small.
var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	// StyleTitle for headings, e.g. the browse picker title.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleSpinner = lipgloss.NewStyle().Foreground(colorCyan)
)

// statusLine prints a styled icon followed by the formatted message.
func statusLine(icon string, style lipgloss.Style, format string, args ...any) {
	fmt.Println(style.Render(icon) + " " + fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) {
	statusLine("✓", styleSuccess, format, args...)
}

func printError(format string, args ...any) {
	statusLine("✗", styleError, format, args...)
}

// printWarning styles the whole line, not just the icon.
func printWarning(format string, args ...any) {
	fmt.Println(styleWarning.Render("! " + fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	statusLine("›", styleInfo, format, args...)
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints the path an output file was written to.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render("→") + " " + styleValue.Render(path))
}

// printStats prints a one-line circuit summary: node and edge counts plus
// whether the result came from cache.
func printStats(nodes, edges int, cached bool) {
	origin := StyleDim.Render("computed")
	if cached {
		origin = styleSuccess.Render("cached")
	}
	counts := fmt.Sprintf("%d nodes · %d edges · ", nodes, edges)
	fmt.Println("  " + StyleDim.Render(counts) + origin)
}

// printNextStep suggests the follow-up command.
func printNextStep(description, command string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(command))
}

func printNewline() {
	fmt.Println()
}
