package config

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/jorge-barreto/casedoc/internal/change"
)

const defaultDebounceMS = 200

var validLogLevels = map[string]bool{
	"": true, "debug": true, "info": true, "warn": true, "warning": true,
	"error": true, "disabled": true, "off": true,
}

// varNameRe accepts the names usable inside {{...}}: no braces, no
// whitespace, dots allowed for namespaced keys such as case.status.
var varNameRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$.]*$`)

// Validate checks the config for errors and sets defaults.
func Validate(cfg *Config, projectRoot string) error {
	if cfg.Name == "" {
		return fmt.Errorf("config: 'name' is required")
	}

	if cfg.Data == "" {
		cfg.Data = filepath.Join(Dir, "data.json")
	}
	if !filepath.IsAbs(cfg.Data) {
		cfg.Data = filepath.Join(projectRoot, cfg.Data)
	}
	if cfg.MetricsFile != "" && !filepath.IsAbs(cfg.MetricsFile) {
		cfg.MetricsFile = filepath.Join(projectRoot, cfg.MetricsFile)
	}

	if !validLogLevels[cfg.LogLevel] {
		return fmt.Errorf("config: unknown log-level %q (must be debug, info, warn, error, or disabled)", cfg.LogLevel)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if _, err := change.ParseStrategy(cfg.Update.MergeStrategy); err != nil {
		return fmt.Errorf("config: update: %w", err)
	}
	if cfg.Update.MergeStrategy == "" {
		cfg.Update.MergeStrategy = "positional"
	}

	if cfg.WatchDebounceMS < 0 {
		return fmt.Errorf("config: watch-debounce-ms must be >= 0")
	}
	if cfg.WatchDebounceMS == 0 {
		cfg.WatchDebounceMS = defaultDebounceMS
	}

	seen := make(map[string]bool)
	for i, v := range cfg.SystemVars {
		if v.Name == "" {
			return fmt.Errorf("config: system-vars: entry %d: 'name' is required", i+1)
		}
		if !varNameRe.MatchString(v.Name) {
			return fmt.Errorf("config: system-vars: %q is not a valid variable name (must match %s)", v.Name, varNameRe)
		}
		if seen[v.Name] {
			return fmt.Errorf("config: system-vars: duplicate variable %q", v.Name)
		}
		seen[v.Name] = true
		if v.Label == "" {
			cfg.SystemVars[i].Label = v.Name
		}
	}

	return nil
}
