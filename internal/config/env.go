package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override config values.
const (
	EnvQuestionsPerRun    = "QUIZ_QUESTIONS_PER_RUN"
	EnvSecondsPerQuestion = "QUIZ_SECONDS_PER_QUESTION"
	EnvLogLevel           = "QUIZ_LOG_LEVEL"
	EnvLogFormat          = "QUIZ_LOG_FORMAT"
	EnvServeAddr          = "QUIZ_SERVE_ADDR"
)

// EnvFileName is read from the project root when present.
const EnvFileName = ".env"

var envKeys = []string{
	EnvQuestionsPerRun,
	EnvSecondsPerQuestion,
	EnvLogLevel,
	EnvLogFormat,
	EnvServeAddr,
}

// lookupEnv is swapped in tests.
var lookupEnv = os.LookupEnv

// LoadEnv returns the quiz variables from baseDir/.env merged with the
// process environment. Process values win.
func LoadEnv(baseDir string) (map[string]string, error) {
	env := map[string]string{}
	if baseDir != "" {
		path := filepath.Join(baseDir, EnvFileName)
		values, err := godotenv.Read(path)
		switch {
		case err == nil:
			for _, key := range envKeys {
				if value, ok := values[key]; ok {
					env[key] = value
				}
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}
	for _, key := range envKeys {
		if value, ok := lookupEnv(key); ok {
			env[key] = value
		}
	}
	return env, nil
}

// ApplyEnv overrides cfg with values from env.
func ApplyEnv(cfg *Config, env map[string]string) error {
	collector := &issueCollector{}
	setInt := func(key string, target *int) {
		raw, ok := env[key]
		if !ok || strings.TrimSpace(raw) == "" {
			return
		}
		value, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			collector.add(key, fmt.Sprintf("%q is not an integer", raw))
			return
		}
		*target = value
	}
	setString := func(key string, target *string) {
		if raw, ok := env[key]; ok && strings.TrimSpace(raw) != "" {
			*target = strings.TrimSpace(raw)
		}
	}
	setInt(EnvQuestionsPerRun, &cfg.Quiz.QuestionsPerRun)
	setInt(EnvSecondsPerQuestion, &cfg.Quiz.SecondsPerQuestion)
	setString(EnvLogLevel, &cfg.Log.Level)
	setString(EnvLogFormat, &cfg.Log.Format)
	setString(EnvServeAddr, &cfg.Serve.Addr)
	return collector.result()
}
