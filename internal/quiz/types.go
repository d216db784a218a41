package quiz

import "chapterquiz/internal/deck"

// Status is the lifecycle stage of a run.
type Status int

const (
	// StatusIdle means no run has been started.
	StatusIdle Status = iota
	// StatusLoading means a deck source is being fetched.
	StatusLoading
	// StatusActive means a run is presenting questions.
	StatusActive
	// StatusFinished means the run is over and its score is final.
	StatusFinished
	// StatusFailed means the last load failed.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusActive:
		return "active"
	case StatusFinished:
		return "finished"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

const (
	DefaultQuestionsPerRun    = 10
	DefaultSecondsPerQuestion = 30
)

// Config holds the per-run constants.
type Config struct {
	QuestionsPerRun    int
	SecondsPerQuestion int
}

func (c Config) withDefaults() Config {
	if c.QuestionsPerRun <= 0 {
		c.QuestionsPerRun = DefaultQuestionsPerRun
	}
	if c.SecondsPerQuestion <= 0 {
		c.SecondsPerQuestion = DefaultSecondsPerQuestion
	}
	return c
}

// NoChoice is the Choice of a timed out outcome.
const NoChoice = -1

// Outcome is the recorded result of one question.
type Outcome struct {
	Choice   int
	TimedOut bool
}

// QuestionResult describes one deck question at the end of a run.
type QuestionResult struct {
	Number   int           `json:"number"`
	Question deck.Question `json:"question"`
	Answered bool          `json:"answered"`
	Choice   int           `json:"choice"`
	TimedOut bool          `json:"timed_out"`
	Correct  bool          `json:"correct"`
}

// Summary is reported when a run finishes.
type Summary struct {
	RunID    string           `json:"run_id"`
	Score    int              `json:"score"`
	Total    int              `json:"total"`
	Answered int              `json:"answered"`
	Ended    bool             `json:"ended"`
	Results  []QuestionResult `json:"results"`
}

// Snapshot is a read-only view of the machine state.
type Snapshot struct {
	Status    Status
	RunID     string
	Number    int
	Total     int
	Score     int
	Remaining int
	Seconds   int
	Question  deck.Question
	Outcome   Outcome
	Answered  bool
	Error     string
}
