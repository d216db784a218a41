package live

import "chapterquiz/internal/quiz"

// Phase is what the UI is currently showing.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseFailed
	PhaseEmpty
	PhaseQuestion
	PhaseFinished
)

// State captures the live UI state for a quiz run.
type State struct {
	Phase       Phase
	Error       string
	Text        string
	Options     []string
	Number      int
	Total       int
	Score       int
	Remaining   int
	Seconds     int
	Revealed    bool
	TimedOut    bool
	Chosen      int
	Correct     int
	Explanation string
	Summary     quiz.Summary
	LastEvent   string
}

// CanAdvance reports whether the advance key does anything.
func (s State) CanAdvance() bool {
	return (s.Phase == PhaseQuestion && s.Revealed) || s.Phase == PhaseEmpty
}

// CanAnswer reports whether option keys do anything.
func (s State) CanAnswer() bool {
	return s.Phase == PhaseQuestion && !s.Revealed
}
