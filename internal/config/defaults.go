package config

// Defaults returns the default configuration values keyed by koanf path.
func Defaults() map[string]any {
	return map[string]any{
		"parallel":    true,
		"max_workers": 0, // 0 = available hardware parallelism
		"no_color":    false,
		"progress":    false,
	}
}

// GetDefaultConfigTemplate returns a fully commented config template that
// helps users understand all available options.
func GetDefaultConfigTemplate() string {
	return `# Treeflow Configuration
# Project config: .treeflow.yml   User config: ~/.config/treeflow/config.yml
# Every key can also be set via TREEFLOW_* environment variables.

parallel: true        # Run independent tasks concurrently (wave-parallel)
max_workers: 0        # Worker pool size (0 = number of CPUs)
no_color: false       # Disable colored output (NO_COLOR is also honored)
progress: false       # Show spinner progress indicators during runs
`
}
