// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gradeflow/gradeflow/internal/model"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#7C9EF5")
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#4ECDC4")
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#FFE66D")
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#FF6B6B")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoxStyle is used for bordered content boxes.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(1, 2)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	PencilIcon  = "✏️"
	ChartIcon   = "📊"
)

// FormatTitle formats a section title.
func FormatTitle(title string) string {
	return TitleStyle.Render(PencilIcon + " " + title)
}

// FormatItemLine renders one work item's outcome as a single line.
func FormatItemLine(item model.WorkItem) string {
	name := item.StudentName
	if name == "" {
		name = SubtleStyle.Render("(unassigned)")
	}

	switch item.Status {
	case model.StatusCompleted:
		score := ""
		if item.Result != nil {
			score = fmt.Sprintf(" %d%%", item.Result.TotalScore.Percentage)
		}
		return SuccessStyle.Render(SuccessIcon) + " " + name + score
	case model.StatusFailed:
		return ErrorStyle.Render(ErrorIcon) + " " + name + " " + SubtleStyle.Render(item.Error)
	default:
		return SubtleStyle.Render("·") + " " + name + " " + SubtleStyle.Render(string(item.Status))
	}
}

// RenderSummary renders a batch summary as a bordered box.
func RenderSummary(s model.BatchSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Students graded: %d\n", s.TotalStudents)
	fmt.Fprintf(&b, "Average: %d%%   High: %d%%   Low: %d%%   Pass rate: %d%%\n",
		s.AverageScore, s.HighestScore, s.LowestScore, s.PassRate)

	b.WriteString("\nScore distribution\n")
	dist := s.ScoreDistribution
	for _, row := range []struct {
		label string
		count int
	}{
		{"90-100", dist.Nineties},
		{"80-89 ", dist.Eighties},
		{"70-79 ", dist.Seventies},
		{"60-69 ", dist.Sixties},
		{"0-59  ", dist.Below60},
	} {
		fmt.Fprintf(&b, "  %s %s %d\n", row.label, strings.Repeat("█", row.count), row.count)
	}

	if len(s.CommonMisconceptions) > 0 {
		b.WriteString("\nCommon misconceptions\n")
		for _, m := range s.CommonMisconceptions {
			fmt.Fprintf(&b, "  %2d× %s\n", m.Count, m.Text)
		}
	}

	title := TitleStyle.UnsetMargins().Render(ChartIcon + " Class summary")
	return BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, b.String()))
}
