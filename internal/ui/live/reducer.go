package live

import (
	"fmt"

	"chapterquiz/internal/quiz"
)

// Reduce applies a quiz event to the UI state.
func Reduce(state State, event Event) State {
	switch event.Kind {
	case EventLoading:
		state = State{Phase: PhaseLoading, Seconds: state.Seconds}
		state.LastEvent = "Loading questions"
	case EventLoadError:
		state.Phase = PhaseFailed
		state.Error = event.Message
		state.LastEvent = "Load failed"
	case EventNoQuestions:
		state.Phase = PhaseEmpty
		state.Total = 0
		state.LastEvent = "No valid questions in this chapter"
	case EventQuestion:
		state.Phase = PhaseQuestion
		state.Text = event.Text
		state.Options = event.Options
		state.Number = event.Number
		state.Total = event.Total
		state.Revealed = false
		state.TimedOut = false
		state.Chosen = quiz.NoChoice
		state.Correct = quiz.NoChoice
		state.Explanation = ""
		state.LastEvent = fmt.Sprintf("Question %d of %d", event.Number, event.Total)
	case EventTick:
		state.Remaining = event.Remaining
		state.Seconds = event.Seconds
	case EventAnswered:
		state = reveal(state, event)
		if event.Chosen == event.Correct {
			state.LastEvent = fmt.Sprintf("Q%d correct", state.Number)
		} else {
			state.LastEvent = fmt.Sprintf("Q%d incorrect", state.Number)
		}
	case EventTimedOut:
		state = reveal(state, event)
		state.TimedOut = true
		state.Remaining = 0
		state.LastEvent = fmt.Sprintf("Q%d timed out", state.Number)
	case EventScore:
		state.Score = event.Score
	case EventFinished:
		state.Phase = PhaseFinished
		state.Summary = event.Summary
		state.Score = event.Summary.Score
		state.Total = event.Summary.Total
		state.LastEvent = formatFinished(event.Summary)
	}
	return state
}

func reveal(state State, event Event) State {
	state.Revealed = true
	state.Chosen = event.Chosen
	state.Correct = event.Correct
	state.Explanation = event.Explanation
	return state
}

// formatFinished creates the footer message for a finished run.
func formatFinished(summary quiz.Summary) string {
	if summary.Ended {
		return fmt.Sprintf("Ended early: %d/%d", summary.Score, summary.Total)
	}
	return fmt.Sprintf("Finished: %d/%d", summary.Score, summary.Total)
}
