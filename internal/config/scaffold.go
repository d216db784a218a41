package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// SampleChapterID is the chapter written by Scaffold.
const SampleChapterID = "chapter1_ai_project_cycle"

const defaultConfig = `version: 1
quiz:
  questions_per_run: 10
  seconds_per_question: 30

default_chapter: "chapter1_ai_project_cycle"

chapters:
  - id: chapter1_ai_project_cycle
    title: "AI Project Cycle"
    source: "chapters/chapter1_ai_project_cycle.csv"

log:
  level: info
  format: pretty

serve:
  addr: "127.0.0.1:8080"
  allowed_origins: []
`

const sampleChapter = `q,options,answer,explain
"Which stage of the AI project cycle defines the goal?","Problem Scoping|Data Acquisition|Modelling|Evaluation",0,"Problem scoping states what the project must achieve."
"Which stage collects the data a model learns from?","Evaluation|Data Acquisition|Deployment|Modelling",1,"Data acquisition gathers reliable and relevant data."
"Which stage uses graphs to understand the data?","Data Exploration|Problem Scoping|Evaluation|Deployment",0,
"Which stage chooses and trains a model?","Problem Scoping|Data Exploration|Modelling|Data Acquisition",2,"Modelling selects an approach and fits it to the data."
"Which stage checks how well a model performs?","Modelling|Evaluation|Problem Scoping|Data Exploration",1,"Evaluation measures the model on data it has not seen."
"The 4Ws canvas belongs to which stage?","Problem Scoping|Modelling|Evaluation",0,"Who, What, Where and Why frame the problem."
`

// Scaffold writes a starter config and sample chapter under root.
func Scaffold(root string) error {
	if root == "" {
		return fmt.Errorf("project root is required")
	}
	configPath := ConfigPath(root)
	chapterPath := filepath.Join(root, ChaptersDir, SampleChapterID+".csv")
	for _, path := range []string{configPath, chapterPath} {
		if err := ensureAbsent(path); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(chapterPath), 0o755); err != nil {
		return fmt.Errorf("create chapters dir: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	if err := os.WriteFile(chapterPath, []byte(sampleChapter), 0o644); err != nil {
		return fmt.Errorf("write chapter file: %w", err)
	}
	return nil
}

func ensureAbsent(path string) error {
	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return fmt.Errorf("path %q is a directory", path)
		}
		return fmt.Errorf("file already exists at %q", path)
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	return nil
}
