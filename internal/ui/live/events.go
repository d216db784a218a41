package live

import "chapterquiz/internal/quiz"

// EventKind identifies the type of live UI event.
type EventKind int

const (
	// EventLoading signals a deck load has begun.
	EventLoading EventKind = iota
	// EventLoadError signals the deck could not be loaded.
	EventLoadError
	// EventNoQuestions signals an empty deck.
	EventNoQuestions
	// EventQuestion delivers a newly presented question.
	EventQuestion
	// EventTick delivers the remaining countdown.
	EventTick
	// EventAnswered reveals the result of an explicit choice.
	EventAnswered
	// EventTimedOut reveals the correct option after a timeout.
	EventTimedOut
	// EventScore delivers the running score.
	EventScore
	// EventFinished signals the run is over.
	EventFinished
)

// Event carries a UI update payload.
type Event struct {
	Kind        EventKind
	Message     string
	Text        string
	Options     []string
	Number      int
	Total       int
	Remaining   int
	Seconds     int
	Chosen      int
	Correct     int
	Explanation string
	Score       int
	Summary     quiz.Summary
}
