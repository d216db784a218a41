package quiz

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"chapterquiz/internal/deck"
)

var (
	// ErrLoading is returned by Start while a previous start is still loading.
	ErrLoading = errors.New("a deck is already loading")
	// ErrNoSource is returned by Restart before any Start.
	ErrNoSource = errors.New("no previous source to restart")
	// ErrClosed is returned once the session loop has exited.
	ErrClosed = errors.New("session closed")
)

// DeckLoader loads the accepted questions of a source.
type DeckLoader interface {
	Load(ctx context.Context, source string) ([]deck.Question, error)
}

// Commander is the command surface front ends drive.
type Commander interface {
	Start(ctx context.Context, source string) error
	Restart(ctx context.Context) error
	Answer(choice int) bool
	Advance() bool
	End() bool
}

type loadResult struct {
	generation int
	source     string
	questions  []deck.Question
	err        error
}

// Session serializes commands, countdown ticks and load results onto one
// goroutine that owns the Machine.
type Session struct {
	machine  *Machine
	loader   DeckLoader
	logger   zerolog.Logger
	commands chan func()
	loads    chan loadResult
	done     chan struct{}

	// Owned by the Run goroutine.
	ctx        context.Context
	lastSource string
	generation int
	waiting    chan error
	lastStatus Status
}

// NewSession wires a Machine to a DeckLoader. Call Run to start processing.
func NewSession(machine *Machine, loader DeckLoader, logger zerolog.Logger) *Session {
	return &Session{
		machine:  machine,
		loader:   loader,
		logger:   logger.With().Str("component", "quiz_session").Logger(),
		commands: make(chan func()),
		loads:    make(chan loadResult),
		done:     make(chan struct{}),
	}
}

// Run processes events until ctx is done.
func (s *Session) Run(ctx context.Context) {
	s.ctx = ctx
	defer close(s.done)
	defer s.machine.Stop()
	for {
		select {
		case <-ctx.Done():
			s.release(ctx.Err())
			return
		case fn := <-s.commands:
			fn()
		case <-s.machine.Countdown():
			s.machine.Tick()
		case result := <-s.loads:
			s.apply(result)
		}
		s.noteStatus()
	}
}

// Done is closed when Run returns.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Start loads source and begins a new run. It returns once the deck is
// applied or the load has failed.
func (s *Session) Start(ctx context.Context, source string) error {
	wait := make(chan error, 1)
	if !s.call(func() { s.begin(source, wait) }) {
		return ErrClosed
	}
	select {
	case err := <-wait:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return ErrClosed
	}
}

// Restart starts again with the last used source.
func (s *Session) Restart(ctx context.Context) error {
	var source string
	if !s.call(func() { source = s.lastSource }) {
		return ErrClosed
	}
	if source == "" {
		return ErrNoSource
	}
	return s.Start(ctx, source)
}

// Answer records a choice for the current question.
func (s *Session) Answer(choice int) bool {
	var applied bool
	s.call(func() { applied = s.machine.Answer(choice) })
	return applied
}

// Advance moves to the next question or finishes the run.
func (s *Session) Advance() bool {
	var applied bool
	s.call(func() { applied = s.machine.Advance() })
	return applied
}

// End finishes the run early.
func (s *Session) End() bool {
	var applied bool
	s.call(func() { applied = s.machine.End() })
	return applied
}

// Snapshot returns the machine state.
func (s *Session) Snapshot() Snapshot {
	var snap Snapshot
	s.call(func() { snap = s.machine.Snapshot() })
	return snap
}

// call runs fn on the loop goroutine and waits for it. It reports false when
// the loop has exited.
func (s *Session) call(fn func()) bool {
	finished := make(chan struct{})
	select {
	case s.commands <- func() { fn(); close(finished) }:
	case <-s.done:
		return false
	}
	select {
	case <-finished:
		return true
	case <-s.done:
		return false
	}
}

func (s *Session) begin(source string, wait chan error) {
	source = strings.TrimSpace(source)
	if !s.machine.BeginLoading() {
		wait <- ErrLoading
		return
	}
	s.lastSource = source
	s.generation++
	s.waiting = wait
	generation := s.generation
	ctx := s.ctx
	go func() {
		questions, err := s.loader.Load(ctx, source)
		select {
		case s.loads <- loadResult{generation: generation, source: source, questions: questions, err: err}:
		case <-ctx.Done():
		}
	}()
}

func (s *Session) apply(result loadResult) {
	if result.generation != s.generation {
		s.logger.Debug().Str("source", result.source).Msg("Discarding stale deck load")
		return
	}
	if result.err != nil {
		s.logger.Error().Err(result.err).Str("source", result.source).Msg("Deck load failed")
		s.machine.Fail(result.err)
		s.release(result.err)
		return
	}
	s.machine.Load(result.questions)
	snap := s.machine.Snapshot()
	s.logger.Debug().
		Str("run_id", snap.RunID).
		Str("source", result.source).
		Int("questions", snap.Total).
		Msg("Run started")
	s.release(nil)
}

func (s *Session) release(err error) {
	if s.waiting == nil {
		return
	}
	s.waiting <- err
	s.waiting = nil
}

func (s *Session) noteStatus() {
	status := s.machine.Status()
	if status == s.lastStatus {
		return
	}
	if status == StatusFinished {
		summary := s.machine.Summary()
		s.logger.Debug().
			Str("run_id", summary.RunID).
			Int("score", summary.Score).
			Int("total", summary.Total).
			Msg("Run finished")
	}
	s.lastStatus = status
}
