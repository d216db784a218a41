package deck

import (
	"math/rand/v2"
	"slices"
	"time"
)

// NewRand returns a PCG-backed generator. A zero seed draws one from the clock.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		now := uint64(time.Now().UnixNano())
		return rand.New(rand.NewPCG(now, now>>1|1))
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Shuffle permutes items in place (Fisher-Yates). A nil rng uses the global source.
func Shuffle[T any](rng *rand.Rand, items []T) {
	swap := func(i, j int) { items[i], items[j] = items[j], items[i] }
	if rng == nil {
		rand.Shuffle(len(items), swap)
		return
	}
	rng.Shuffle(len(items), swap)
}

// Select shuffles a copy of all and keeps the first min(n, len(all)) questions.
func Select(all []Question, n int, rng *rand.Rand) []Question {
	pool := slices.Clone(all)
	Shuffle(rng, pool)
	if n < 0 {
		n = 0
	}
	return pool[:min(n, len(pool))]
}

type indexedOption struct {
	text     string
	original int
}

// shuffleOptions permutes options and reports where the answer landed.
func shuffleOptions(rng *rand.Rand, options []string, answer int) ([]string, int) {
	paired := make([]indexedOption, len(options))
	for i, text := range options {
		paired[i] = indexedOption{text: text, original: i}
	}
	Shuffle(rng, paired)

	shuffled := make([]string, len(paired))
	correct := -1
	for i, option := range paired {
		shuffled[i] = option.text
		if option.original == answer {
			correct = i
		}
	}
	return shuffled, correct
}
