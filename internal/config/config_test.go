package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func issueFields(t *testing.T, err error) []string {
	t.Helper()
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %T (%v)", err, err)
	}
	fields := make([]string, 0, len(validationErr.Issues))
	for _, issue := range validationErr.Issues {
		fields = append(fields, issue.Field)
	}
	return fields
}

func hasField(fields []string, want string) bool {
	for _, field := range fields {
		if field == want {
			return true
		}
	}
	return false
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := Config{
		Version:  1,
		Log:      LogConfig{Level: " DEBUG "},
		Chapters: []ChapterConfig{{ID: " only ", Source: "a.csv"}},
	}
	Normalize(&cfg)

	if cfg.Quiz.QuestionsPerRun != DefaultQuestionsPerRun || cfg.Quiz.SecondsPerQuestion != DefaultSecondsPerQuestion {
		t.Fatalf("expected quiz defaults, got %+v", cfg.Quiz)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != DefaultLogFormat {
		t.Fatalf("unexpected log config %+v", cfg.Log)
	}
	if cfg.Serve.Addr != DefaultServeAddr {
		t.Fatalf("expected default addr, got %q", cfg.Serve.Addr)
	}
	if cfg.DefaultChapter != "only" || cfg.Chapters[0].Title != "only" {
		t.Fatalf("expected single chapter to become default, got %+v", cfg)
	}
}

func TestValidateAcceptsValidConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := validConfig(t, dir)
	if err := Validate(&cfg, dir); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateStructRules(t *testing.T) {
	dir := t.TempDir()
	cfg := validConfig(t, dir)
	cfg.Version = 2
	cfg.Quiz.SecondsPerQuestion = -1
	cfg.Log.Level = "loud"
	cfg.Serve.Addr = "not an address"
	cfg.Serve.AllowedOrigins = []string{"::"}

	fields := issueFields(t, Validate(&cfg, dir))
	for _, want := range []string{
		"version",
		"quiz.seconds_per_question",
		"log.level",
		"serve.addr",
		"serve.allowed_origins[0]",
	} {
		if !hasField(fields, want) {
			t.Fatalf("expected issue for %s, got %v", want, fields)
		}
	}
}

func TestValidateChapterRules(t *testing.T) {
	dir := t.TempDir()
	cfg := validConfig(t, dir)
	cfg.Chapters = append(cfg.Chapters,
		ChapterConfig{ID: "one", Title: "Again", Source: "chapters/one.csv"},
		ChapterConfig{ID: "two", Title: "Missing", Source: "chapters/missing.csv"},
		ChapterConfig{ID: "remote", Title: "Remote", Source: "https://example.com/remote.csv"},
		ChapterConfig{ID: "bad/id", Title: "Bad", Source: ""},
	)
	cfg.DefaultChapter = "nope"

	err := Validate(&cfg, dir)
	fields := issueFields(t, err)
	for _, want := range []string{
		"chapters[1].id",
		"chapters[2].source",
		"chapters[4].id",
		"chapters[4].source",
		"default_chapter",
	} {
		if !hasField(fields, want) {
			t.Fatalf("expected issue for %s, got %v", want, fields)
		}
	}
	if hasField(fields, "chapters[3].source") {
		t.Fatalf("remote sources must not be checked on disk: %v", fields)
	}
	if !strings.Contains(err.Error(), "duplicate id") {
		t.Fatalf("expected duplicate id message, got %q", err.Error())
	}
}

func TestParseConfigRejectsUnknownFields(t *testing.T) {
	_, err := ParseConfig([]byte("version: 1\nquestions: 3\n"))
	if err == nil || !strings.Contains(err.Error(), "questions") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
}

func TestParseConfigRejectsMultipleDocuments(t *testing.T) {
	_, err := ParseConfig([]byte("version: 1\n---\nversion: 1\n"))
	if err == nil || !strings.Contains(err.Error(), "multiple YAML documents") {
		t.Fatalf("expected multiple documents error, got %v", err)
	}
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	root := t.TempDir()
	writeChapter(t, root, "chapters/one.csv")
	path := writeConfigFile(t, root, `version: 1
quiz:
  questions_per_run: 5
chapters:
  - id: one
    source: chapters/one.csv
`)
	if err := os.WriteFile(filepath.Join(root, EnvFileName), []byte("QUIZ_QUESTIONS_PER_RUN=7\nQUIZ_LOG_LEVEL=debug\n"), 0o644); err != nil {
		t.Fatalf("write env: %v", err)
	}
	withEnv(t, map[string]string{EnvLogLevel: "warn", EnvSecondsPerQuestion: "12"})

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Quiz.QuestionsPerRun != 7 {
		t.Fatalf("expected .env override, got %d", cfg.Quiz.QuestionsPerRun)
	}
	if cfg.Quiz.SecondsPerQuestion != 12 {
		t.Fatalf("expected process env override, got %d", cfg.Quiz.SecondsPerQuestion)
	}
	if cfg.Log.Level != "warn" {
		t.Fatalf("expected process env to win over .env, got %q", cfg.Log.Level)
	}
	if cfg.DefaultChapter != "one" {
		t.Fatalf("expected default chapter, got %q", cfg.DefaultChapter)
	}
}

func TestApplyEnvRejectsNonInteger(t *testing.T) {
	cfg := Config{}
	err := ApplyEnv(&cfg, map[string]string{EnvQuestionsPerRun: "ten"})
	fields := issueFields(t, err)
	if !hasField(fields, EnvQuestionsPerRun) {
		t.Fatalf("expected env issue, got %v", fields)
	}
}

func TestDefaultWithoutConfigFile(t *testing.T) {
	withEnv(t, map[string]string{})
	cfg, err := Default(t.TempDir())
	if err != nil {
		t.Fatalf("default: %v", err)
	}
	if cfg.Quiz.QuestionsPerRun != 10 || cfg.Quiz.SecondsPerQuestion != 30 || len(cfg.Chapters) != 0 {
		t.Fatalf("unexpected default config %+v", cfg)
	}
}

func TestFindConfigPathWalksUp(t *testing.T) {
	root := t.TempDir()
	path := writeConfigFile(t, root, "version: 1\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	found, err := FindConfigPath(nested)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found != path {
		t.Fatalf("expected %s, got %s", path, found)
	}
	if BaseDirFromConfigPath(found) != root {
		t.Fatalf("expected base dir %s, got %s", root, BaseDirFromConfigPath(found))
	}
}

func TestFindConfigPathMissing(t *testing.T) {
	_, err := FindConfigPath(t.TempDir())
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("expected ErrConfigNotFound, got %v", err)
	}
}

func TestScaffoldWritesLoadableConfig(t *testing.T) {
	withEnv(t, map[string]string{})
	root := t.TempDir()
	if err := Scaffold(root); err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	cfg, err := Load(ConfigPath(root))
	if err != nil {
		t.Fatalf("load scaffold: %v", err)
	}
	if cfg.DefaultChapter != SampleChapterID || len(cfg.Chapters) != 1 {
		t.Fatalf("unexpected scaffold config %+v", cfg)
	}
	if err := Scaffold(root); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected second scaffold to fail, got %v", err)
	}
}
