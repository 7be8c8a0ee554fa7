package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/autoloader/locator"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6BCB77"))
	shadowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	missingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	boxStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

// Candidate labels, also used by plain-text callers.
const (
	LabelSelected = "selected"
	LabelShadowed = "present (shadowed)"
	LabelMissing  = "missing"
)

// CandidateLabels returns one label per status: the first existing candidate
// is selected, later existing ones are shadowed.
func CandidateLabels(statuses []locator.CandidateStatus) []string {
	labels := make([]string, len(statuses))
	selected := false
	for i, status := range statuses {
		switch {
		case status.Exists && !selected:
			labels[i] = LabelSelected
			selected = true
		case status.Exists:
			labels[i] = LabelShadowed
		default:
			labels[i] = LabelMissing
		}
	}
	return labels
}

// RenderStatus draws the candidate table for baseDir.
func RenderStatus(baseDir string, statuses []locator.CandidateStatus) string {
	labels := CandidateLabels(statuses)
	width := 0
	for _, status := range statuses {
		width = max(width, lipgloss.Width(status.Candidate))
	}

	lines := make([]string, 0, len(statuses))
	for i, status := range statuses {
		name := status.Candidate + strings.Repeat(" ", width-lipgloss.Width(status.Candidate))
		var mark string
		switch labels[i] {
		case LabelSelected:
			mark = okStyle.Render("✓ " + labels[i])
		case LabelShadowed:
			mark = shadowStyle.Render("· " + labels[i])
		default:
			mark = missingStyle.Render("✗ " + labels[i])
		}
		lines = append(lines, fmt.Sprintf("%d. %s  %s", i+1, name, mark))
	}

	footer := missingStyle.Render(locator.NotInstalledMessage)
	for i, label := range labels {
		if label == LabelSelected {
			footer = okStyle.Render("loads " + statuses[i].Path)
			break
		}
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Manifest candidates"),
		shadowStyle.Render(baseDir),
		"",
		strings.Join(lines, "\n"),
		"",
		footer,
	)
	return boxStyle.Render(body)
}
