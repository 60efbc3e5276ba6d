package sessionlog

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Console echo palette: INF cyan, WAR yellow, ERR red; header and footer
// blocks share the INF color.
var (
	colorCyan   = lipgloss.AdaptiveColor{Light: "30", Dark: "45"}
	colorYellow = lipgloss.AdaptiveColor{Light: "136", Dark: "220"}
	colorRed    = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}

	styleInfo  = lipgloss.NewStyle().Foreground(colorCyan)
	styleWarn  = lipgloss.NewStyle().Foreground(colorYellow)
	styleError = lipgloss.NewStyle().Foreground(colorRed)
)

func styleFor(cat Category) lipgloss.Style {
	switch cat {
	case WAR:
		return styleWarn
	case ERR:
		return styleError
	}
	return styleInfo
}

// ColorizeLine styles one line of a session file for terminal display. Entry
// lines are colored by category; header, footer, and blank lines use the
// block color.
func ColorizeLine(line string) string {
	if e, ok := ParseEntry(line); ok {
		return styleFor(e.Category).Render(line)
	}
	return styleInfo.Render(line)
}

func echoLine(w io.Writer, cat Category, line string) {
	if w == nil {
		return
	}
	fmt.Fprintln(w, styleFor(cat).Render(line))
}

func echoBlock(w io.Writer, block string) {
	if w == nil {
		return
	}
	fmt.Fprint(w, styleInfo.Render(block))
	if len(block) > 0 && block[len(block)-1] != '\n' {
		fmt.Fprintln(w)
	}
}
