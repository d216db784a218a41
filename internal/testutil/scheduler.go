package testutil

import (
	"context"
	"sync"
	"time"
)

// FakeTicker is a manually driven repeating countdown.
type FakeTicker struct {
	interval time.Duration
	c        chan time.Time

	mu      sync.Mutex
	stopped bool
}

// C returns the tick channel.
func (t *FakeTicker) C() <-chan time.Time {
	return t.c
}

// Stop cancels the ticker. Stopped tickers never deliver again.
func (t *FakeTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
}

// Stopped reports whether Stop was called.
func (t *FakeTicker) Stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

// FakeScheduler hands out FakeTickers and tracks how many are live.
type FakeScheduler struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*FakeTicker
}

// NewFakeScheduler initializes a FakeScheduler at the provided start time.
func NewFakeScheduler(start time.Time) *FakeScheduler {
	return &FakeScheduler{now: start}
}

// Every returns a new ticker for the interval.
func (s *FakeScheduler) Every(interval time.Duration) *FakeTicker {
	s.mu.Lock()
	defer s.mu.Unlock()
	ticker := &FakeTicker{interval: interval, c: make(chan time.Time)}
	s.tickers = append(s.tickers, ticker)
	return ticker
}

// Now returns the current fake time.
func (s *FakeScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Created returns the number of tickers handed out so far.
func (s *FakeScheduler) Created() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tickers)
}

// Live returns the number of tickers that have not been stopped.
func (s *FakeScheduler) Live() int {
	count := 0
	for _, ticker := range s.snapshot() {
		if !ticker.Stopped() {
			count++
		}
	}
	return count
}

// Fire delivers one tick to the newest live ticker and advances the clock by
// its interval. It blocks until the tick is received and returns false when no
// ticker is live or ctx ends first.
func (s *FakeScheduler) Fire(ctx context.Context) bool {
	ticker := s.latestLive()
	if ticker == nil {
		return false
	}
	s.mu.Lock()
	s.now = s.now.Add(ticker.interval)
	now := s.now
	s.mu.Unlock()
	select {
	case ticker.c <- now:
		return true
	case <-ctx.Done():
		return false
	}
}

func (s *FakeScheduler) latestLive() *FakeTicker {
	tickers := s.snapshot()
	for i := len(tickers) - 1; i >= 0; i-- {
		if !tickers[i].Stopped() {
			return tickers[i]
		}
	}
	return nil
}

func (s *FakeScheduler) snapshot() []*FakeTicker {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*FakeTicker(nil), s.tickers...)
}
