package live

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type optionState int

const (
	optionPlain optionState = iota
	optionCorrect
	optionWrong
	optionMuted
)

// fmtInt converts an int to string.
func fmtInt(value int) string {
	return strconv.Itoa(value)
}

// formatRemaining renders the countdown label.
func formatRemaining(state State) string {
	if state.TimedOut {
		return "0s left"
	}
	return fmtInt(state.Remaining) + "s left"
}

// elapsedFraction is elapsed/total for the fill indicator.
func elapsedFraction(state State) float64 {
	if state.Seconds <= 0 {
		return 0
	}
	elapsed := state.Seconds - state.Remaining
	if elapsed < 0 {
		elapsed = 0
	}
	return float64(elapsed) / float64(state.Seconds)
}

// truncate shortens text for table cells.
func truncate(text string, limit int) string {
	normalized := strings.Join(strings.Fields(text), " ")
	runes := []rune(normalized)
	if limit <= 3 || len(runes) <= limit {
		return normalized
	}
	return string(runes[:limit-3]) + "..."
}

// optionStatus classifies an option for highlighting.
func optionStatus(state State, index int) optionState {
	if !state.Revealed {
		return optionPlain
	}
	switch index {
	case state.Correct:
		return optionCorrect
	case state.Chosen:
		return optionWrong
	default:
		return optionMuted
	}
}

// stylizeOption applies option highlighting when enabled.
func stylizeOption(text string, status optionState, noColor bool) string {
	if noColor {
		return text
	}
	return optionStyle(status).Render(text)
}

// optionStyle selects a style for a given option state.
func optionStyle(status optionState) lipgloss.Style {
	switch status {
	case optionCorrect:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	case optionWrong:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	case optionMuted:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	default:
		return lipgloss.NewStyle()
	}
}
