package quiz

import "time"

// Countdown is a cancellable repeating tick source.
type Countdown interface {
	C() <-chan time.Time
	Stop()
}

// Scheduler starts countdowns.
type Scheduler interface {
	Every(interval time.Duration) Countdown
}

// TickerScheduler starts countdowns backed by time.Ticker.
type TickerScheduler struct{}

// Every starts a ticker for interval.
func (TickerScheduler) Every(interval time.Duration) Countdown {
	return tickerCountdown{ticker: time.NewTicker(interval)}
}

type tickerCountdown struct {
	ticker *time.Ticker
}

func (t tickerCountdown) C() <-chan time.Time { return t.ticker.C }

func (t tickerCountdown) Stop() { t.ticker.Stop() }
