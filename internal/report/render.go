package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Render prints the report to w: title, notes, the table and the final
// status line. Colours are only emitted when w is a terminal.
func Render(w io.Writer, r *Report) error {
	renderer := lipgloss.NewRenderer(w)

	titleStyle := renderer.NewStyle().Bold(true)
	headerStyle := renderer.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := renderer.NewStyle().Padding(0, 1)
	passStyle := cellStyle.Foreground(lipgloss.Color("2"))
	failStyle := cellStyle.Foreground(lipgloss.Color("1"))
	sepStyle := renderer.NewStyle().Faint(true)

	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(titleStyle.Render("===== " + r.Title + " ====="))
	sb.WriteString("\n")
	for _, note := range r.Notes {
		sb.WriteString(note)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	// Column widths, plus the two padding cells lipgloss counts in Width.
	widths := make([]int, len(r.Columns))
	for i, c := range r.Columns {
		widths[i] = lipgloss.Width(c)
	}
	for _, row := range r.Rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}
	total := len(widths) - 1
	for i := range widths {
		widths[i] += 2
		total += widths[i]
	}

	for i, c := range r.Columns {
		sb.WriteString(headerStyle.Width(widths[i]).Render(c))
		if i < len(r.Columns)-1 {
			sb.WriteString(sepStyle.Render("|"))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(sepStyle.Render(strings.Repeat("-", total)))
	sb.WriteString("\n")

	for _, row := range r.Rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			style := cellStyle
			switch cell {
			case StatusPass, "True":
				style = passStyle
			case StatusFail, "False":
				style = failStyle
			}
			sb.WriteString(style.Width(widths[i]).Render(cell))
			if i < len(widths)-1 {
				sb.WriteString(sepStyle.Render("|"))
			}
		}
		sb.WriteString("\n")
	}

	status := passStyle
	if !r.Passed {
		status = failStyle
	}
	sb.WriteString("\nFINAL STATUS: ")
	sb.WriteString(status.UnsetPadding().Bold(true).Render(r.Status()))
	sb.WriteString("\n")

	_, err := fmt.Fprint(w, sb.String())
	return err
}
