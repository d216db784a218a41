package quiz

import (
	"fmt"
	"sync"
	"time"

	"chapterquiz/internal/deck"
	"chapterquiz/internal/testutil"
)

type fakeScheduler struct {
	*testutil.FakeScheduler
}

func (f fakeScheduler) Every(interval time.Duration) Countdown {
	return f.FakeScheduler.Every(interval)
}

func newFakeScheduler() fakeScheduler {
	return fakeScheduler{testutil.NewFakeScheduler(time.Unix(0, 0))}
}

// recorder captures observer events for assertions.
type recorder struct {
	mu         sync.Mutex
	events     []string
	ticks      []int
	scores     []int
	timedOut   int
	answered   int
	loadErrors []string
	finished   []Summary
}

func (r *recorder) add(event string) {
	r.events = append(r.events, event)
}

func (r *recorder) OnLoading() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.add("loading")
}

func (r *recorder) OnLoadError(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.add("load_error")
	r.loadErrors = append(r.loadErrors, message)
}

func (r *recorder) OnNoQuestions() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.add("no_questions")
}

func (r *recorder) OnQuestionRendered(text string, options []string, number, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.add(fmt.Sprintf("question %d/%d", number, total))
}

func (r *recorder) OnTimerTick(remaining, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks = append(r.ticks, remaining)
}

func (r *recorder) OnAnswered(chosen, correct int, explanation string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.add("answered")
	r.answered++
}

func (r *recorder) OnTimedOut(correct int, explanation string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.add("timed_out")
	r.timedOut++
}

func (r *recorder) OnScoreChanged(score int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scores = append(r.scores, score)
}

func (r *recorder) OnFinished(summary Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.add("finished")
	r.finished = append(r.finished, summary)
}

func (r *recorder) finishedRuns() []Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Summary(nil), r.finished...)
}

func (r *recorder) count(event string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e == event {
			n++
		}
	}
	return n
}

func (r *recorder) lastTick() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.ticks) == 0 {
		return -1
	}
	return r.ticks[len(r.ticks)-1]
}

// questionSet returns n questions whose correct option is always index 1.
func questionSet(n int) []deck.Question {
	questions := make([]deck.Question, n)
	for i := range questions {
		questions[i] = deck.Question{
			Text:         fmt.Sprintf("Question %d", i+1),
			Options:      []string{"wrong", "right", "also wrong"},
			CorrectIndex: 1,
			Explanation:  fmt.Sprintf("Because %d", i+1),
		}
	}
	return questions
}

func newTestMachine(cfg Config) (*Machine, *recorder, fakeScheduler) {
	rec := &recorder{}
	scheduler := newFakeScheduler()
	return NewMachine(cfg, rec, scheduler, deck.NewRand(42)), rec, scheduler
}
