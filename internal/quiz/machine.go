package quiz

import (
	"math/rand/v2"
	"slices"
	"time"

	"github.com/google/uuid"

	"chapterquiz/internal/deck"
)

// Machine owns one quiz run. It is not safe for concurrent use; a single
// goroutine (usually a Session) drives every transition.
type Machine struct {
	cfg       Config
	observer  Observer
	scheduler Scheduler
	rng       *rand.Rand
	newID     func() string

	status     Status
	runID      string
	deck       []deck.Question
	index      int
	selections map[int]Outcome
	score      int
	remaining  int
	countdown  Countdown
	err        error
}

// NewMachine builds an idle Machine. Nil observer, scheduler and rng fall
// back to NopObserver, TickerScheduler and a clock-seeded generator.
func NewMachine(cfg Config, observer Observer, scheduler Scheduler, rng *rand.Rand) *Machine {
	if observer == nil {
		observer = NopObserver{}
	}
	if scheduler == nil {
		scheduler = TickerScheduler{}
	}
	if rng == nil {
		rng = deck.NewRand(0)
	}
	return &Machine{
		cfg:        cfg.withDefaults(),
		observer:   observer,
		scheduler:  scheduler,
		rng:        rng,
		newID:      uuid.NewString,
		selections: map[int]Outcome{},
	}
}

// Config returns the effective run constants.
func (m *Machine) Config() Config {
	return m.cfg
}

// Status returns the current lifecycle stage.
func (m *Machine) Status() Status {
	return m.status
}

// BeginLoading cancels any countdown and enters Loading. It is ignored while
// a load is already in flight.
func (m *Machine) BeginLoading() bool {
	if m.status == StatusLoading {
		return false
	}
	m.cancel()
	m.status = StatusLoading
	m.err = nil
	m.observer.OnLoading()
	return true
}

// Load builds the run deck from the accepted questions and presents the
// first question. An empty deck still enters Active and reports it.
func (m *Machine) Load(questions []deck.Question) {
	m.cancel()
	m.deck = deck.Select(questions, m.cfg.QuestionsPerRun, m.rng)
	m.runID = m.newID()
	m.index = 0
	m.selections = map[int]Outcome{}
	m.score = 0
	m.remaining = 0
	m.err = nil
	m.status = StatusActive
	m.observer.OnScoreChanged(0)
	if len(m.deck) == 0 {
		m.observer.OnNoQuestions()
		return
	}
	m.present()
}

// Fail records a load failure. No deck is built.
func (m *Machine) Fail(err error) {
	m.cancel()
	m.status = StatusFailed
	m.err = err
	m.deck = nil
	m.score = 0
	message := "load failed"
	if err != nil {
		message = err.Error()
	}
	m.observer.OnLoadError(message)
}

// Answer records an explicit choice for the current question. Out of range
// choices and already answered questions are ignored.
func (m *Machine) Answer(choice int) bool {
	question, ok := m.openQuestion()
	if !ok || choice < 0 || choice >= len(question.Options) {
		return false
	}
	m.cancel()
	m.selections[m.index] = Outcome{Choice: choice}
	correct := choice == question.CorrectIndex
	if correct {
		m.score++
	}
	m.observer.OnAnswered(choice, question.CorrectIndex, question.Explanation)
	if correct {
		m.observer.OnScoreChanged(m.score)
	}
	return true
}

// Timeout records the timeout outcome for the current question when it has
// no outcome yet. The score is never changed.
func (m *Machine) Timeout() bool {
	question, ok := m.openQuestion()
	if !ok {
		return false
	}
	m.cancel()
	m.remaining = 0
	m.selections[m.index] = Outcome{Choice: NoChoice, TimedOut: true}
	m.observer.OnTimedOut(question.CorrectIndex, question.Explanation)
	return true
}

// Tick advances the countdown by one second. Reaching zero times the
// question out.
func (m *Machine) Tick() bool {
	if m.countdown == nil {
		return false
	}
	if _, ok := m.openQuestion(); !ok {
		m.cancel()
		return false
	}
	m.remaining--
	if m.remaining < 0 {
		m.remaining = 0
	}
	m.observer.OnTimerTick(m.remaining, m.cfg.SecondsPerQuestion)
	if m.remaining == 0 {
		m.Timeout()
	}
	return true
}

// Advance moves past an answered question, finishing after the last one.
// An empty deck finishes immediately.
func (m *Machine) Advance() bool {
	if m.status != StatusActive {
		return false
	}
	if len(m.deck) == 0 {
		m.finish(false)
		return true
	}
	if _, answered := m.selections[m.index]; !answered {
		return false
	}
	if m.index+1 < len(m.deck) {
		m.index++
		m.present()
		return true
	}
	m.finish(false)
	return true
}

// End finishes the run early. Unanswered questions score nothing.
func (m *Machine) End() bool {
	if m.status != StatusActive {
		return false
	}
	m.finish(true)
	return true
}

// Countdown returns the live countdown channel, or nil when none is armed.
// A nil channel blocks forever in a select.
func (m *Machine) Countdown() <-chan time.Time {
	if m.countdown == nil {
		return nil
	}
	return m.countdown.C()
}

// Stop releases the countdown without emitting events.
func (m *Machine) Stop() {
	m.cancel()
}

// Snapshot returns a copy of the current state.
func (m *Machine) Snapshot() Snapshot {
	snap := Snapshot{
		Status:    m.status,
		RunID:     m.runID,
		Total:     len(m.deck),
		Score:     m.score,
		Remaining: m.remaining,
		Seconds:   m.cfg.SecondsPerQuestion,
	}
	if m.err != nil {
		snap.Error = m.err.Error()
	}
	if m.index < len(m.deck) && (m.status == StatusActive || m.status == StatusFinished) {
		question := m.deck[m.index]
		question.Options = slices.Clone(question.Options)
		snap.Number = m.index + 1
		snap.Question = question
		snap.Outcome, snap.Answered = m.selections[m.index]
	}
	return snap
}

// Summary reports the score and per-question outcomes of the current deck.
func (m *Machine) Summary() Summary {
	summary := Summary{
		RunID:   m.runID,
		Score:   m.score,
		Total:   len(m.deck),
		Results: make([]QuestionResult, 0, len(m.deck)),
	}
	for i, question := range m.deck {
		outcome, answered := m.selections[i]
		result := QuestionResult{Number: i + 1, Question: question, Choice: NoChoice}
		if answered {
			summary.Answered++
			result.Answered = true
			result.Choice = outcome.Choice
			result.TimedOut = outcome.TimedOut
			result.Correct = !outcome.TimedOut && outcome.Choice == question.CorrectIndex
		}
		summary.Results = append(summary.Results, result)
	}
	return summary
}

// openQuestion returns the current question when it can still take an outcome.
func (m *Machine) openQuestion() (deck.Question, bool) {
	if m.status != StatusActive || m.index >= len(m.deck) {
		return deck.Question{}, false
	}
	if _, answered := m.selections[m.index]; answered {
		return deck.Question{}, false
	}
	return m.deck[m.index], true
}

func (m *Machine) present() {
	question := m.deck[m.index]
	m.observer.OnQuestionRendered(question.Text, slices.Clone(question.Options), m.index+1, len(m.deck))
	m.arm()
}

// arm starts a fresh countdown for the current question. Any previous
// countdown is stopped first so at most one is ever live.
func (m *Machine) arm() {
	m.cancel()
	m.remaining = m.cfg.SecondsPerQuestion
	m.observer.OnTimerTick(m.remaining, m.cfg.SecondsPerQuestion)
	m.countdown = m.scheduler.Every(time.Second)
}

func (m *Machine) cancel() {
	if m.countdown == nil {
		return
	}
	m.countdown.Stop()
	m.countdown = nil
}

func (m *Machine) finish(ended bool) {
	m.cancel()
	m.status = StatusFinished
	summary := m.Summary()
	summary.Ended = ended
	m.observer.OnFinished(summary)
}
