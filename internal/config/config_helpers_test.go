package config

import (
	"os"
	"path/filepath"
	"testing"
)

// validConfig returns a normalized config whose chapter lives in dir.
func validConfig(t *testing.T, dir string) Config {
	t.Helper()
	writeChapter(t, dir, "chapters/one.csv")
	cfg := Config{
		Version:        1,
		DefaultChapter: "one",
		Chapters: []ChapterConfig{
			{ID: "one", Title: "Chapter One", Source: "chapters/one.csv"},
		},
	}
	Normalize(&cfg)
	return cfg
}

func writeChapter(t *testing.T, dir, rel string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir chapters: %v", err)
	}
	payload := "q,options,answer,explain\nWhat is 1+1?,1|2|3,1,\n"
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write chapter: %v", err)
	}
}

func writeConfigFile(t *testing.T, root, payload string) string {
	t.Helper()
	path := ConfigPath(root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// withEnv replaces the process environment lookup for one test.
func withEnv(t *testing.T, env map[string]string) {
	t.Helper()
	orig := lookupEnv
	lookupEnv = func(key string) (string, bool) {
		value, ok := env[key]
		return value, ok
	}
	t.Cleanup(func() { lookupEnv = orig })
}
