package live

import (
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the run header line.
func renderHeader(state State, title string, noColor bool) string {
	line := "Chapter quiz"
	if title != "" {
		line += " | " + title
	}
	if state.Total > 0 && state.Phase == PhaseQuestion {
		line += " | Question " + fmtInt(state.Number) + "/" + fmtInt(state.Total)
	}
	if state.Phase == PhaseQuestion || state.Phase == PhaseFinished {
		line += " | Score: " + fmtInt(state.Score)
	}
	return stylize(line, noColor, lipgloss.Color("33"))
}

// renderTimer renders the countdown label and fill bar.
func renderTimer(state State, bar progress.Model, noColor bool) string {
	label := formatRemaining(state)
	color := lipgloss.Color("242")
	if state.TimedOut {
		color = lipgloss.Color("196")
	} else if !state.Revealed && state.Remaining <= 5 {
		color = lipgloss.Color("220")
	}
	return bar.ViewAs(elapsedFraction(state)) + "  " + stylize(label, noColor, color)
}

// renderQuestion renders the question prompt.
func renderQuestion(state State, noColor bool) string {
	if noColor {
		return state.Text
	}
	return lipgloss.NewStyle().Bold(true).Render(state.Text)
}

// renderOptions renders numbered options, highlighting after a reveal.
func renderOptions(state State, noColor bool) string {
	lines := make([]string, 0, len(state.Options))
	for i, option := range state.Options {
		marker := "  "
		if state.Revealed {
			switch {
			case i == state.Correct:
				marker = "✓ "
			case i == state.Chosen:
				marker = "✗ "
			}
		}
		line := marker + fmtInt(i+1) + ". " + option
		lines = append(lines, stylizeOption(line, optionStatus(state, i), noColor))
	}
	return strings.Join(lines, "\n")
}

// renderExplanation renders the explanation once the answer is revealed.
func renderExplanation(state State, noColor bool) string {
	if !state.Revealed {
		return ""
	}
	lines := []string{""}
	if state.TimedOut {
		lines = append(lines, stylize("Time is up.", noColor, lipgloss.Color("196")))
	}
	if state.Explanation != "" {
		lines = append(lines, stylize("Explanation: "+state.Explanation, noColor, lipgloss.Color("244")))
	}
	return strings.Join(lines, "\n")
}

// renderStatus renders the idle, loading, failed and empty screens.
func renderStatus(state State, noColor bool) string {
	switch state.Phase {
	case PhaseLoading:
		return stylize("Loading questions...", noColor, lipgloss.Color("244"))
	case PhaseFailed:
		return stylize("Could not load questions: "+state.Error, noColor, lipgloss.Color("196"))
	case PhaseEmpty:
		return stylize("No questions available in this chapter.", noColor, lipgloss.Color("220"))
	default:
		return stylize("Press r to start.", noColor, lipgloss.Color("244"))
	}
}

// renderSummary renders the final score line.
func renderSummary(state State, noColor bool) string {
	line := "Final score: " + fmtInt(state.Summary.Score) + "/" + fmtInt(state.Summary.Total)
	if state.Summary.Ended {
		line += " (ended early, " + fmtInt(state.Summary.Answered) + " answered)"
	}
	return stylize(line, noColor, lipgloss.Color("42"))
}

// renderFooter renders the last event line.
func renderFooter(state State, noColor bool) string {
	if state.LastEvent == "" {
		return ""
	}
	return stylize("Last event: "+state.LastEvent, noColor, lipgloss.Color("244"))
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
