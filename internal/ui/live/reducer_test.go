package live

import (
	"testing"
	"time"

	"chapterquiz/internal/deck"
	"chapterquiz/internal/quiz"
	"chapterquiz/internal/testutil"
)

// TestReduceQuestionLifecycle verifies a question is shown, answered and revealed.
func TestReduceQuestionLifecycle(t *testing.T) {
	runWithTimeout(t, time.Second, func() {
		state := State{}
		state = Reduce(state, Event{Kind: EventLoading})
		if state.Phase != PhaseLoading {
			t.Fatalf("expected loading phase, got %d", state.Phase)
		}
		state = Reduce(state, Event{Kind: EventScore, Score: 0})
		state = Reduce(state, questionEvent(1, 10))
		state = Reduce(state, Event{Kind: EventTick, Remaining: 30, Seconds: 30})
		if !state.CanAnswer() || state.CanAdvance() {
			t.Fatalf("expected open question")
		}
		state = Reduce(state, Event{Kind: EventAnswered, Chosen: 2, Correct: 1, Explanation: "Because"})
		if !state.Revealed || state.Chosen != 2 || state.Correct != 1 {
			t.Fatalf("unexpected reveal state %+v", state)
		}
		if state.CanAnswer() || !state.CanAdvance() {
			t.Fatalf("expected answered question to allow advance only")
		}
		if state.LastEvent != "Q1 incorrect" {
			t.Fatalf("unexpected last event %q", state.LastEvent)
		}
		state = Reduce(state, questionEvent(2, 10))
		if state.Revealed || state.Explanation != "" || state.Chosen != quiz.NoChoice {
			t.Fatalf("expected next question to reset reveal state")
		}
	})
}

// TestReduceTimeout verifies the timeout reveal.
func TestReduceTimeout(t *testing.T) {
	runWithTimeout(t, time.Second, func() {
		state := Reduce(State{}, questionEvent(1, 3))
		state = Reduce(state, Event{Kind: EventTick, Remaining: 1, Seconds: 30})
		state = Reduce(state, Event{Kind: EventTimedOut, Chosen: quiz.NoChoice, Correct: 0})
		if !state.TimedOut || state.Remaining != 0 || !state.Revealed {
			t.Fatalf("unexpected timeout state %+v", state)
		}
		if got := elapsedFraction(state); got != 1 {
			t.Fatalf("expected full timer fill, got %v", got)
		}
	})
}

// TestReduceLoadErrorAndEmpty verifies the non-question screens.
func TestReduceLoadErrorAndEmpty(t *testing.T) {
	runWithTimeout(t, time.Second, func() {
		state := Reduce(State{}, Event{Kind: EventLoadError, Message: "404"})
		if state.Phase != PhaseFailed || state.Error != "404" {
			t.Fatalf("unexpected failed state %+v", state)
		}
		state = Reduce(state, Event{Kind: EventLoading})
		if state.Error != "" {
			t.Fatalf("expected loading to clear the error")
		}
		state = Reduce(state, Event{Kind: EventNoQuestions})
		if state.Phase != PhaseEmpty || !state.CanAdvance() || state.CanAnswer() {
			t.Fatalf("unexpected empty state %+v", state)
		}
	})
}

// TestReduceFinished verifies the summary is captured.
func TestReduceFinished(t *testing.T) {
	runWithTimeout(t, time.Second, func() {
		summary := quiz.Summary{Score: 3, Total: 10, Answered: 3, Ended: true}
		state := Reduce(State{}, Event{Kind: EventFinished, Summary: summary})
		if state.Phase != PhaseFinished || state.Score != 3 || state.Total != 10 {
			t.Fatalf("unexpected finished state %+v", state)
		}
		if state.LastEvent != "Ended early: 3/10" {
			t.Fatalf("unexpected last event %q", state.LastEvent)
		}
	})
}

// TestRowsForSummary verifies summary rows label each outcome.
func TestRowsForSummary(t *testing.T) {
	question := deck.Question{Text: "Q", Options: []string{"a", "b"}, CorrectIndex: 1}
	summary := quiz.Summary{Results: []quiz.QuestionResult{
		{Number: 1, Question: question, Answered: true, Choice: 1, Correct: true},
		{Number: 2, Question: question, Answered: true, Choice: 0},
		{Number: 3, Question: question, Answered: true, Choice: quiz.NoChoice, TimedOut: true},
		{Number: 4, Question: question, Choice: quiz.NoChoice},
	}}
	rows := rowsForSummary(summary)
	want := []string{"correct", "wrong", "timeout", "skipped"}
	for i, label := range want {
		if rows[i][4] != label {
			t.Fatalf("row %d: expected %s, got %s", i, label, rows[i][4])
		}
	}
	if rows[0][2] != "b" || rows[2][2] != "(timed out)" || rows[0][3] != "b" {
		t.Fatalf("unexpected answer cells %v", rows)
	}
}

// questionEvent builds a question Event for testing.
func questionEvent(number, total int) Event {
	return Event{
		Kind:    EventQuestion,
		Text:    "Question",
		Options: []string{"a", "b", "c"},
		Number:  number,
		Total:   total,
	}
}

// runWithTimeout executes a test body with a timeout.
func runWithTimeout(t *testing.T, timeout time.Duration, fn func()) {
	t.Helper()
	ctx := testutil.Context(t, timeout)
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	select {
	case <-done:
	case <-ctx.Done():
		t.Fatalf("test timed out")
	}
}
