package quiz

// Observer receives quiz events. Calls happen on the goroutine that drives
// the Machine, one at a time.
type Observer interface {
	OnLoading()
	OnLoadError(message string)
	// OnNoQuestions reports that the run deck is empty.
	OnNoQuestions()
	OnQuestionRendered(text string, options []string, number, total int)
	OnTimerTick(remaining, total int)
	// OnAnswered reveals the correct option after an explicit choice.
	// explanation is empty when the question has none.
	OnAnswered(chosen, correct int, explanation string)
	OnTimedOut(correct int, explanation string)
	OnScoreChanged(score int)
	OnFinished(summary Summary)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) OnLoading()                                    {}
func (NopObserver) OnLoadError(string)                            {}
func (NopObserver) OnNoQuestions()                                {}
func (NopObserver) OnQuestionRendered(string, []string, int, int) {}
func (NopObserver) OnTimerTick(int, int)                          {}
func (NopObserver) OnAnswered(int, int, string)                   {}
func (NopObserver) OnTimedOut(int, string)                        {}
func (NopObserver) OnScoreChanged(int)                            {}
func (NopObserver) OnFinished(Summary)                            {}

// MultiObserver fans events out in order.
type MultiObserver []Observer

func (m MultiObserver) OnLoading() {
	for _, o := range m {
		o.OnLoading()
	}
}

func (m MultiObserver) OnLoadError(message string) {
	for _, o := range m {
		o.OnLoadError(message)
	}
}

func (m MultiObserver) OnNoQuestions() {
	for _, o := range m {
		o.OnNoQuestions()
	}
}

func (m MultiObserver) OnQuestionRendered(text string, options []string, number, total int) {
	for _, o := range m {
		o.OnQuestionRendered(text, options, number, total)
	}
}

func (m MultiObserver) OnTimerTick(remaining, total int) {
	for _, o := range m {
		o.OnTimerTick(remaining, total)
	}
}

func (m MultiObserver) OnAnswered(chosen, correct int, explanation string) {
	for _, o := range m {
		o.OnAnswered(chosen, correct, explanation)
	}
}

func (m MultiObserver) OnTimedOut(correct int, explanation string) {
	for _, o := range m {
		o.OnTimedOut(correct, explanation)
	}
}

func (m MultiObserver) OnScoreChanged(score int) {
	for _, o := range m {
		o.OnScoreChanged(score)
	}
}

func (m MultiObserver) OnFinished(summary Summary) {
	for _, o := range m {
		o.OnFinished(summary)
	}
}
