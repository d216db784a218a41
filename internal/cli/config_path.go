package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"chapterquiz/internal/config"
)

// project is a loaded configuration and the directory its sources resolve
// against.
type project struct {
	cfg     config.Config
	baseDir string
	// path is empty when no config file was found.
	path string
}

// resolveConfigPath normalizes a config path or finds it from CWD.
func resolveConfigPath(configPath string) (string, error) {
	if strings.TrimSpace(configPath) == "" {
		return config.FindConfigPath("")
	}
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return abs, nil
}

// loadProject loads the config at configPath, or searches for one. When
// optional is set and no config exists, defaults rooted at CWD are used.
func loadProject(configPath string, optional bool) (project, error) {
	path, err := resolveConfigPath(configPath)
	if err != nil {
		if optional && errors.Is(err, config.ErrConfigNotFound) {
			wd, wdErr := os.Getwd()
			if wdErr != nil {
				return project{}, fmt.Errorf("get working directory: %w", wdErr)
			}
			cfg, defErr := config.Default(wd)
			if defErr != nil {
				return project{}, defErr
			}
			return project{cfg: cfg, baseDir: wd}, nil
		}
		return project{}, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return project{}, err
	}
	return project{cfg: cfg, baseDir: config.BaseDirFromConfigPath(path), path: path}, nil
}
