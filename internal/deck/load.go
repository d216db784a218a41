package deck

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/rs/zerolog"
)

// Loader fetches and parses deck sources.
type Loader struct {
	fetcher Fetcher
	logger  zerolog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewLoader builds a Loader. A nil rng uses a clock-seeded generator.
func NewLoader(fetcher Fetcher, rng *rand.Rand, logger zerolog.Logger) *Loader {
	if rng == nil {
		rng = NewRand(0)
	}
	return &Loader{
		fetcher: fetcher,
		rng:     rng,
		logger:  logger.With().Str("component", "deck_loader").Logger(),
	}
}

// Load returns the accepted questions of source in source order.
// Rejected rows are logged and dropped.
func (l *Loader) Load(ctx context.Context, source string) ([]Question, error) {
	result, err := l.Inspect(ctx, source)
	if err != nil {
		return nil, err
	}
	for _, rejection := range result.Rejected {
		l.logger.Warn().
			Str("source", source).
			Int("line", rejection.Line).
			Str("reason", rejection.Reason).
			Msg("Skipping invalid row")
	}
	l.logger.Debug().
		Str("source", source).
		Int("accepted", len(result.Questions)).
		Int("rejected", len(result.Rejected)).
		Msg("Deck loaded")
	return result.Questions, nil
}

// Inspect fetches and parses source, returning rejected rows alongside questions.
func (l *Loader) Inspect(ctx context.Context, source string) (Result, error) {
	body, err := l.fetcher.Open(ctx, source)
	if err != nil {
		return Result{}, fmt.Errorf("load deck %s: %w", source, err)
	}
	defer body.Close()

	l.mu.Lock()
	defer l.mu.Unlock()
	result, err := Parse(body, l.rng)
	if err != nil {
		return Result{}, fmt.Errorf("load deck %s: %w", source, err)
	}
	return result, nil
}
