package config

import (
	"fmt"
	"os"
)

// Load reads, parses, applies environment overrides, normalizes, and
// validates a config file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, err
	}
	baseDir := BaseDirFromConfigPath(path)
	if err := applyEnvFrom(&cfg, baseDir); err != nil {
		return Config{}, err
	}
	Normalize(&cfg)
	if err := Validate(&cfg, baseDir); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the configuration used when no config file exists, with
// environment overrides from baseDir applied.
func Default(baseDir string) (Config, error) {
	cfg := Config{Version: 1}
	if err := applyEnvFrom(&cfg, baseDir); err != nil {
		return Config{}, err
	}
	Normalize(&cfg)
	if err := Validate(&cfg, baseDir); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnvFrom(cfg *Config, baseDir string) error {
	env, err := LoadEnv(baseDir)
	if err != nil {
		return err
	}
	return ApplyEnv(cfg, env)
}
