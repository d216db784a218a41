package live

import (
	"context"
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"chapterquiz/internal/quiz"
)

// Controller runs the live UI and implements quiz.Observer.
type Controller struct {
	events    chan Event
	stop      chan struct{}
	program   *tea.Program
	done      chan struct{}
	closeOnce sync.Once
}

// NewController builds a controller whose UI is not yet shown. It can be
// handed to a quiz.Machine as its observer before Launch.
func NewController() *Controller {
	return &Controller{
		events: make(chan Event, 64),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Launch shows the UI on stdout and reads keys from stdin. The UI starts a
// run on opts.Source as soon as it is shown.
func (c *Controller) Launch(ctx context.Context, stdout io.Writer, stdin io.Reader, opts Options) {
	if stdout == nil {
		stdout = os.Stdout
	}
	model := NewModel(ctx, c.events, c.stop, opts)
	programOpts := []tea.ProgramOption{tea.WithOutput(stdout), tea.WithAltScreen(), tea.WithContext(ctx)}
	if stdin != nil {
		programOpts = append(programOpts, tea.WithInput(stdin))
	}
	c.program = tea.NewProgram(model, programOpts...)
	go func() {
		_, _ = c.program.Run()
		close(c.done)
	}()
}

// Close signals the UI to stop.
func (c *Controller) Close() {
	if c == nil {
		return
	}
	c.closeOnce.Do(func() {
		close(c.stop)
	})
}

// Done is closed when the UI has exited.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

// Wait blocks until the UI has exited.
func (c *Controller) Wait() {
	if c == nil {
		return
	}
	<-c.done
}

// OnLoading forwards load start events to the UI.
func (c *Controller) OnLoading() {
	c.send(Event{Kind: EventLoading})
}

// OnLoadError forwards load failures to the UI.
func (c *Controller) OnLoadError(message string) {
	c.send(Event{Kind: EventLoadError, Message: message})
}

// OnNoQuestions forwards the empty deck notice to the UI.
func (c *Controller) OnNoQuestions() {
	c.send(Event{Kind: EventNoQuestions})
}

// OnQuestionRendered forwards a new question to the UI.
func (c *Controller) OnQuestionRendered(text string, options []string, number, total int) {
	c.send(Event{Kind: EventQuestion, Text: text, Options: options, Number: number, Total: total})
}

// OnTimerTick forwards countdown updates to the UI.
func (c *Controller) OnTimerTick(remaining, total int) {
	c.send(Event{Kind: EventTick, Remaining: remaining, Seconds: total})
}

// OnAnswered forwards an answer reveal to the UI.
func (c *Controller) OnAnswered(chosen, correct int, explanation string) {
	c.send(Event{Kind: EventAnswered, Chosen: chosen, Correct: correct, Explanation: explanation})
}

// OnTimedOut forwards a timeout reveal to the UI.
func (c *Controller) OnTimedOut(correct int, explanation string) {
	c.send(Event{Kind: EventTimedOut, Chosen: quiz.NoChoice, Correct: correct, Explanation: explanation})
}

// OnScoreChanged forwards score updates to the UI.
func (c *Controller) OnScoreChanged(score int) {
	c.send(Event{Kind: EventScore, Score: score})
}

// OnFinished forwards the run summary to the UI.
func (c *Controller) OnFinished(summary quiz.Summary) {
	c.send(Event{Kind: EventFinished, Summary: summary})
}

// send delivers an event, giving up once the UI has stopped.
func (c *Controller) send(event Event) {
	if c == nil {
		return
	}
	select {
	case c.events <- event:
	case <-c.stop:
	case <-c.done:
	}
}
