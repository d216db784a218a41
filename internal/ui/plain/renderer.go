package plain

import (
	"fmt"
	"io"
	"slices"
	"sync"

	"chapterquiz/internal/quiz"
)

// Console serializes writes from the session and the input loop.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsole wraps w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// Printf writes a formatted line fragment.
func (c *Console) Printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, format, args...)
}

// Renderer prints quiz events as plain text lines. It implements quiz.Observer.
type Renderer struct {
	console *Console

	mu      sync.Mutex
	options []string
}

// NewRenderer builds a Renderer writing to console.
func NewRenderer(console *Console) *Renderer {
	return &Renderer{console: console}
}

func (r *Renderer) OnLoading() {
	r.console.Printf("Loading questions...\n")
}

func (r *Renderer) OnLoadError(message string) {
	r.console.Printf("Could not load questions: %s\n", message)
	r.console.Printf("Press r to retry or q to quit.\n")
}

func (r *Renderer) OnNoQuestions() {
	r.console.Printf("No questions available in this chapter.\n")
	r.console.Printf("Press e to end, r to restart or q to quit.\n")
}

func (r *Renderer) OnQuestionRendered(text string, options []string, number, total int) {
	r.mu.Lock()
	r.options = slices.Clone(options)
	r.mu.Unlock()

	r.console.Printf("\nQuestion %d/%d: %s\n", number, total, text)
	for i, option := range options {
		r.console.Printf("  %d) %s\n", i+1, option)
	}
	r.console.Printf("Answer 1-%d, e to end, q to quit.\n", len(options))
}

// OnTimerTick prints the countdown every ten seconds and for the last five.
func (r *Renderer) OnTimerTick(remaining, total int) {
	if remaining <= 0 || remaining >= total {
		return
	}
	if remaining%10 == 0 || remaining <= 5 {
		r.console.Printf("  %ds left\n", remaining)
	}
}

func (r *Renderer) OnAnswered(chosen, correct int, explanation string) {
	if chosen == correct {
		r.console.Printf("Correct!\n")
	} else {
		r.console.Printf("Wrong. Correct answer: %s\n", r.optionLabel(correct))
	}
	r.explain(explanation)
}

func (r *Renderer) OnTimedOut(correct int, explanation string) {
	r.console.Printf("Time is up. Correct answer: %s\n", r.optionLabel(correct))
	r.explain(explanation)
}

func (r *Renderer) OnScoreChanged(score int) {
	if score > 0 {
		r.console.Printf("Score: %d\n", score)
	}
}

func (r *Renderer) OnFinished(summary quiz.Summary) {
	if summary.Ended {
		r.console.Printf("\nEnded early. Final score: %d/%d (%d answered)\n", summary.Score, summary.Total, summary.Answered)
	} else {
		r.console.Printf("\nFinished. Final score: %d/%d\n", summary.Score, summary.Total)
	}
	for _, result := range summary.Results {
		r.console.Printf("  %2d. %-8s %s\n", result.Number, resultLabel(result), result.Question.Text)
	}
	r.console.Printf("Press r to restart or q to quit.\n")
}

func (r *Renderer) explain(explanation string) {
	if explanation != "" {
		r.console.Printf("Explanation: %s\n", explanation)
	}
	r.console.Printf("Press enter for the next question.\n")
}

func (r *Renderer) optionLabel(index int) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if index < 0 || index >= len(r.options) {
		return fmt.Sprintf("%d)", index+1)
	}
	return fmt.Sprintf("%d) %s", index+1, r.options[index])
}

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
