// Package config provides hierarchical configuration management for treeflow
// using koanf. Configuration is loaded with priority: environment variables >
// project config (.treeflow.yml) > user config (~/.config/treeflow/config.yml)
// > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Configuration represents the treeflow CLI configuration.
type Configuration struct {
	// Parallel enables wave-parallel execution by default.
	// Can be set via TREEFLOW_PARALLEL.
	Parallel bool `koanf:"parallel"`

	// MaxWorkers bounds concurrent task actions; 0 means the available
	// hardware parallelism. Can be set via TREEFLOW_MAX_WORKERS.
	MaxWorkers int `koanf:"max_workers"`

	// NoColor disables colored terminal output.
	// Can be set via TREEFLOW_NO_COLOR (or the standard NO_COLOR).
	NoColor bool `koanf:"no_color"`

	// Progress enables spinner progress indicators during runs.
	// Can be set via TREEFLOW_PROGRESS.
	Progress bool `koanf:"progress"`
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults.
// An empty projectConfigPath uses the default .treeflow.yml in the working
// directory; missing files are not an error.
func Load(projectConfigPath string) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range Defaults() {
		k.Set(key, value)
	}

	userPath, err := UserConfigPath()
	if err == nil {
		if err := loadYAML(k, userPath, "user"); err != nil {
			return nil, err
		}
	}

	projectPath := projectConfigPath
	if projectPath == "" {
		projectPath = ProjectConfigPath()
	}
	if err := loadYAML(k, projectPath, "project"); err != nil {
		return nil, err
	}

	if err := k.Load(env.Provider("TREEFLOW_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment config: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if cfg.MaxWorkers < 0 {
		return nil, fmt.Errorf("config validation failed: max_workers must be >= 0, got %d", cfg.MaxWorkers)
	}

	if os.Getenv("NO_COLOR") != "" {
		cfg.NoColor = true
	}

	return &cfg, nil
}

// loadYAML loads a YAML config file into k. A missing file is skipped.
func loadYAML(k *koanf.Koanf, path, configType string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("loading %s config %s: %w", configType, path, err)
	}
	return nil
}

// envTransform maps TREEFLOW_MAX_WORKERS to max_workers.
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "TREEFLOW_"))
}

// UserConfigPath returns the XDG-compliant user config path,
// ~/.config/treeflow/config.yml.
func UserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".config", "treeflow", "config.yml"), nil
}

// ProjectConfigPath returns the project config path relative to the working
// directory.
func ProjectConfigPath() string {
	return ".treeflow.yml"
}
