package live

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"chapterquiz/internal/quiz"
)

// Model renders a live console UI using Bubble Tea.
type Model struct {
	ctx      context.Context
	state    State
	events   <-chan Event
	stop     <-chan struct{}
	commands quiz.Commander
	source   string
	title    string
	keys     keyMap
	help     help.Model
	progress progress.Model
	table    table.Model
	noColor  bool
}

// Options configures the live UI model.
type Options struct {
	NoColor  bool
	Commands quiz.Commander
	// Source is started when the UI is shown. Empty means wait for restart.
	Source string
	// Title is shown in the header, usually the chapter title.
	Title string
}

// NewModel constructs a live UI model for an event stream.
func NewModel(ctx context.Context, events <-chan Event, stop <-chan struct{}, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage(), progress.WithWidth(40))
	if opts.NoColor {
		bar = progress.New(progress.WithSolidFill("7"), progress.WithoutPercentage(), progress.WithWidth(40))
	}
	t := table.New(
		table.WithColumns(summaryColumns(80)),
		table.WithRows([]table.Row{}),
		table.WithFocused(false),
	)
	t.SetStyles(tableStyles(opts.NoColor))
	return Model{
		ctx:      ctx,
		state:    State{Chosen: quiz.NoChoice, Correct: quiz.NoChoice},
		events:   events,
		stop:     stop,
		commands: opts.Commands,
		source:   opts.Source,
		title:    opts.Title,
		keys:     defaultKeyMap(),
		help:     help.New(),
		progress: bar,
		table:    t,
		noColor:  opts.NoColor,
	}
}

// State returns the current UI state.
func (m Model) State() State {
	return m.state
}

// Init waits for the first event and starts the run.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForEvent(m.events, m.stop)}
	if m.source != "" {
		cmds = append(cmds, m.start())
	}
	return tea.Batch(cmds...)
}

// Update consumes UI events and key presses.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = typed.Width
		m.progress.Width = clamp(typed.Width-20, 10, 60)
		m.table.SetWidth(typed.Width)
		m.table.SetColumns(summaryColumns(typed.Width))
		m.table.SetHeight(clamp(typed.Height-8, 3, len(m.state.Summary.Results)+1))
		return m, nil
	case EventMsg:
		m = applyEvent(m, typed.Event)
		return m, waitForEvent(m.events, m.stop)
	case commandErrMsg:
		m.state.LastEvent = "Error: " + typed.err.Error()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(typed)
	}
	return m, nil
}

// View renders the live UI.
func (m Model) View() string {
	keys := syncKeys(m.keys, m.state)
	sections := []string{renderHeader(m.state, m.title, m.noColor)}
	switch m.state.Phase {
	case PhaseQuestion:
		sections = append(sections,
			renderTimer(m.state, m.progress, m.noColor),
			"",
			renderQuestion(m.state, m.noColor),
			renderOptions(m.state, m.noColor),
			renderExplanation(m.state, m.noColor),
		)
	case PhaseFinished:
		sections = append(sections, renderSummary(m.state, m.noColor), m.table.View())
	default:
		sections = append(sections, renderStatus(m.state, m.noColor))
	}
	sections = append(sections, renderFooter(m.state, m.noColor), m.help.View(keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := syncKeys(m.keys, m.state)
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Choose):
		choice, err := strconv.Atoi(msg.String())
		if err != nil || choice < 1 || choice > len(m.state.Options) {
			return m, nil
		}
		return m, m.dispatch(func(c quiz.Commander) { c.Answer(choice - 1) })
	case key.Matches(msg, keys.Advance):
		return m, m.dispatch(func(c quiz.Commander) { c.Advance() })
	case key.Matches(msg, keys.End):
		return m, m.dispatch(func(c quiz.Commander) { c.End() })
	case key.Matches(msg, keys.Restart):
		return m, m.restart()
	}
	return m, nil
}

// dispatch runs a command off the Update goroutine so the session can send
// events back without deadlocking.
func (m Model) dispatch(fn func(quiz.Commander)) tea.Cmd {
	if m.commands == nil {
		return nil
	}
	commands := m.commands
	return func() tea.Msg {
		fn(commands)
		return nil
	}
}

func (m Model) start() tea.Cmd {
	if m.commands == nil {
		return nil
	}
	ctx, commands, source := m.ctx, m.commands, m.source
	return func() tea.Msg {
		if err := commands.Start(ctx, source); err != nil {
			return commandErrMsg{err: err}
		}
		return nil
	}
}

func (m Model) restart() tea.Cmd {
	if m.commands == nil {
		return nil
	}
	if m.state.Phase == PhaseIdle && m.source != "" {
		return m.start()
	}
	ctx, commands := m.ctx, m.commands
	return func() tea.Msg {
		if err := commands.Restart(ctx); err != nil {
			return commandErrMsg{err: err}
		}
		return nil
	}
}

// EventMsg wraps a UI event for Bubble Tea.
type EventMsg struct {
	Event Event
}

type commandErrMsg struct {
	err error
}

// waitForEvent blocks until a UI event is available or the UI is stopped.
func waitForEvent(events <-chan Event, stop <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if events == nil {
			return nil
		}
		select {
		case event, ok := <-events:
			if !ok {
				return tea.Quit()
			}
			return EventMsg{Event: event}
		case <-stop:
			return tea.Quit()
		}
	}
}

// applyEvent mutates model state based on a UI event.
func applyEvent(model Model, event Event) Model {
	model.state = Reduce(model.state, event)
	if event.Kind == EventFinished {
		model.table.SetRows(rowsForSummary(model.state.Summary))
		model.table.SetHeight(clamp(len(model.state.Summary.Results)+1, 2, 15))
	}
	return model
}

func clamp(value, low, high int) int {
	if high < low {
		high = low
	}
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
