package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	diffAddedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("2"))

	diffRemovedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("1"))

	diffContextStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("7"))

	diffHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("5"))

	diffAnchorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6"))
)

// FormatPatchForDisplay renders patch text in the apply_patch sentinel
// format (*** Begin Patch / *** Update File: / *** Add File: /
// *** Delete File: / *** Move to: / @@ anchors / +,-,space hunk lines) with
// color highlighting for the approval prompt. Lines it doesn't recognize
// are passed through unchanged so malformed patches still render as text.
func FormatPatchForDisplay(rawPatch string) string {
	lines := strings.Split(rawPatch, "\n")
	var out strings.Builder

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "*** Begin Patch"),
			strings.HasPrefix(line, "*** End Patch"),
			strings.HasPrefix(line, "*** Update File:"),
			strings.HasPrefix(line, "*** Add File:"),
			strings.HasPrefix(line, "*** Delete File:"),
			strings.HasPrefix(line, "*** Move to:"),
			strings.HasPrefix(line, "*** End of File"):
			out.WriteString(diffHeaderStyle.Render(line))
		case strings.HasPrefix(line, "@@"):
			out.WriteString(diffAnchorStyle.Render(line))
		case strings.HasPrefix(line, "+"):
			out.WriteString(diffAddedStyle.Render(line))
		case strings.HasPrefix(line, "-"):
			out.WriteString(diffRemovedStyle.Render(line))
		case strings.HasPrefix(line, " "):
			out.WriteString(diffContextStyle.Render(line))
		default:
			out.WriteString(line)
		}
		out.WriteString("\n")
	}

	return strings.TrimSuffix(out.String(), "\n")
}
