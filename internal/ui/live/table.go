package live

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"chapterquiz/internal/quiz"
)

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	if noColor {
		return table.DefaultStyles()
	}
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	styles.Selected = lipgloss.NewStyle()
	return styles
}

// summaryColumns sizes the summary table for a terminal width.
func summaryColumns(width int) []table.Column {
	questionWidth := clamp(width-48, 20, 80)
	return []table.Column{
		{Title: "#", Width: 3},
		{Title: "Question", Width: questionWidth},
		{Title: "Your answer", Width: 16},
		{Title: "Correct", Width: 16},
		{Title: "Result", Width: 9},
	}
}

// rowsForSummary converts a run summary into table rows.
func rowsForSummary(summary quiz.Summary) []table.Row {
	rows := make([]table.Row, 0, len(summary.Results))
	for _, result := range summary.Results {
		rows = append(rows, table.Row{
			fmtInt(result.Number),
			truncate(result.Question.Text, 80),
			truncate(chosenText(result), 16),
			truncate(result.Question.CorrectOption(), 16),
			resultLabel(result),
		})
	}
	return rows
}

func chosenText(result quiz.QuestionResult) string {
	switch {
	case !result.Answered:
		return ""
	case result.TimedOut:
		return "(timed out)"
	case result.Choice >= 0 && result.Choice < len(result.Question.Options):
		return result.Question.Options[result.Choice]
	default:
		return ""
	}
}

// resultLabel names the outcome of one question.
func resultLabel(result quiz.QuestionResult) string {
	switch {
	case !result.Answered:
		return "skipped"
	case result.TimedOut:
		return "timeout"
	case result.Correct:
		return "correct"
	default:
		return "wrong"
	}
}
