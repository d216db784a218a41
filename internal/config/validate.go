package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"chapterquiz/internal/deck"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

type issueCollector struct {
	issues []Issue
}

func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}

var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks a normalized config. baseDir resolves local chapter sources.
func Validate(cfg *Config, baseDir string) error {
	collector := &issueCollector{}
	validateStruct(cfg, collector)
	validateChapters(cfg, baseDir, collector)
	return collector.result()
}

func validateStruct(cfg *Config, collector *issueCollector) {
	err := structValidator.Struct(cfg)
	if err == nil {
		return
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		collector.add("config", err.Error())
		return
	}
	for _, fieldErr := range fieldErrs {
		collector.add(fieldPath(fieldErr.Namespace()), fieldMessage(fieldErr))
	}
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func fieldMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "eq":
		return fmt.Sprintf("unsupported value %v", fieldErr.Value())
	case "min":
		return "must be at least " + fieldErr.Param()
	case "max":
		return "must be at most " + fieldErr.Param()
	case "oneof":
		return fmt.Sprintf("must be one of %s (got %q)", strings.ReplaceAll(fieldErr.Param(), " ", ", "), fieldErr.Value())
	case "hostname_port":
		return fmt.Sprintf("must be host:port (got %q)", fieldErr.Value())
	case "url":
		return fmt.Sprintf("must be a URL (got %q)", fieldErr.Value())
	case "excludesall":
		return fmt.Sprintf("must not contain any of %q", fieldErr.Param())
	default:
		return fmt.Sprintf("failed %s validation", fieldErr.Tag())
	}
}

func validateChapters(cfg *Config, baseDir string, collector *issueCollector) {
	fetcher := deck.Fetcher{BaseDir: baseDir}
	seen := map[string]int{}
	for i, chapter := range cfg.Chapters {
		prefix := fmt.Sprintf("chapters[%d]", i)
		if chapter.ID != "" {
			if first, dup := seen[chapter.ID]; dup {
				collector.add(prefix+".id", fmt.Sprintf("duplicate id %q (also chapters[%d])", chapter.ID, first))
			} else {
				seen[chapter.ID] = i
			}
		}
		if chapter.Source == "" || deck.IsRemote(chapter.Source) {
			continue
		}
		path := fetcher.Resolve(chapter.Source)
		info, err := os.Stat(path)
		switch {
		case err != nil:
			collector.add(prefix+".source", fmt.Sprintf("file not found: %s", path))
		case info.IsDir():
			collector.add(prefix+".source", fmt.Sprintf("%s is a directory", path))
		}
	}
	if cfg.DefaultChapter != "" {
		if _, ok := seen[cfg.DefaultChapter]; !ok {
			collector.add("default_chapter", fmt.Sprintf("unknown chapter %q", cfg.DefaultChapter))
		}
	}
}
