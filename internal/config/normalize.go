package config

import "strings"

// Defaults applied by Normalize.
const (
	DefaultQuestionsPerRun    = 10
	DefaultSecondsPerQuestion = 30
	DefaultLogLevel           = "info"
	DefaultLogFormat          = "pretty"
	DefaultServeAddr          = "127.0.0.1:8080"
)

// Normalize fills defaults and tidies user input.
func Normalize(cfg *Config) {
	if cfg.Quiz.QuestionsPerRun == 0 {
		cfg.Quiz.QuestionsPerRun = DefaultQuestionsPerRun
	}
	if cfg.Quiz.SecondsPerQuestion == 0 {
		cfg.Quiz.SecondsPerQuestion = DefaultSecondsPerQuestion
	}
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	cfg.Serve.Addr = strings.TrimSpace(cfg.Serve.Addr)
	if cfg.Serve.Addr == "" {
		cfg.Serve.Addr = DefaultServeAddr
	}
	for i := range cfg.Chapters {
		chapter := &cfg.Chapters[i]
		chapter.ID = strings.TrimSpace(chapter.ID)
		chapter.Source = strings.TrimSpace(chapter.Source)
		chapter.Title = strings.TrimSpace(chapter.Title)
		if chapter.Title == "" {
			chapter.Title = chapter.ID
		}
	}
	cfg.DefaultChapter = strings.TrimSpace(cfg.DefaultChapter)
	if cfg.DefaultChapter == "" && len(cfg.Chapters) == 1 {
		cfg.DefaultChapter = cfg.Chapters[0].ID
	}
}
