package invoice

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/christopherklint97/billr/internal/timesheet"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			MarginBottom(1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	totalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true).
			MarginTop(1)
)

// Summary renders a short terminal report of a run: one line per billable
// client and a count of clients left out for having no time.
func Summary(folder string, clients []timesheet.Client) string {
	var lines []string
	lines = append(lines, titleStyle.Render("Invoices for "+folder))

	width := 0
	for _, c := range clients {
		if w := lipgloss.Width(c.Name); Billable(c) && w > width {
			width = w
		}
	}

	grand, skipped := 0, 0
	for _, c := range clients {
		total := Total(c)
		if total == 0 {
			skipped++
			continue
		}
		grand += total
		name := nameStyle.Render(c.Name + strings.Repeat(" ", width-lipgloss.Width(c.Name)))
		lists := dimStyle.Render(fmt.Sprintf("(%d lists)", len(c.EntriesByList)))
		lines = append(lines, fmt.Sprintf("  %s  %s  %s", name, formatMinutes(total), lists))
	}

	if skipped > 0 {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("  %d clients with no time this month", skipped)))
	}
	lines = append(lines, totalStyle.Render("Total: "+formatMinutes(grand)))

	return strings.Join(lines, "\n")
}
