package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const twoQuestionDeck = `q,options,answer,explain
"First?","yes|no",0,"It is yes"
"Second?","yes|no",0,
`

const singleOptionDeck = `q,options,answer,explain
"First?","yes",0,"It is yes"
"Second?","yes",0,
`

// writeProject creates a project with one chapter and returns the config path.
func writeProject(t *testing.T, deck string) string {
	t.Helper()
	root := t.TempDir()
	chapters := filepath.Join(root, "chapters")
	if err := os.MkdirAll(chapters, 0o755); err != nil {
		t.Fatalf("mkdir chapters: %v", err)
	}
	if err := os.WriteFile(filepath.Join(chapters, "basics.csv"), []byte(deck), 0o644); err != nil {
		t.Fatalf("write chapter: %v", err)
	}
	configDir := filepath.Join(root, ".quiz")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("mkdir config: %v", err)
	}
	payload := `version: 1
quiz:
  questions_per_run: 5
  seconds_per_question: 60
chapters:
  - id: basics
    title: "Basics"
    source: chapters/basics.csv
log:
  level: error
`
	configPath := filepath.Join(configDir, "config.yml")
	if err := os.WriteFile(configPath, []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath
}

func withRunInput(t *testing.T, input string) {
	t.Helper()
	original := runInput
	runInput = strings.NewReader(input)
	t.Cleanup(func() { runInput = original })
}

func withTerminal(t *testing.T, tty bool) {
	t.Helper()
	original := isTerminal
	isTerminal = func(io.Writer) bool { return tty }
	t.Cleanup(func() { isTerminal = original })
}
