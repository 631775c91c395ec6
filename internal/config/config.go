package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jorge-barreto/casedoc/internal/template"
)

// Dir is the project directory holding config and data.
const Dir = ".casedoc"

// Update holds defaults for template update propagation.
type Update struct {
	AutoApplyMinor bool   `yaml:"auto-apply-minor"`
	Force          bool   `yaml:"force"`
	MergeStrategy  string `yaml:"merge-strategy"`
}

// Config is the parsed .casedoc/config.yaml.
type Config struct {
	Name            string              `yaml:"name"`
	Data            string              `yaml:"data"`
	Tenant          string              `yaml:"tenant"`
	LogLevel        string              `yaml:"log-level"`
	LogPretty       bool                `yaml:"log-pretty"`
	Update          Update              `yaml:"update"`
	MetricsFile     string              `yaml:"metrics-file"`
	SystemVars      []template.Variable `yaml:"system-vars"`
	WatchDebounceMS int                 `yaml:"watch-debounce-ms"`
}

// Load reads a YAML config file and returns a validated Config. Relative
// paths are resolved against projectRoot.
func Load(path, projectRoot string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := Validate(&cfg, projectRoot); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Path returns the config file location under projectRoot.
func Path(projectRoot string) string {
	return filepath.Join(projectRoot, Dir, "config.yaml")
}

// FindProjectRoot walks up from dir looking for .casedoc/config.yaml.
func FindProjectRoot(dir string) (string, error) {
	for {
		if _, err := os.Stat(Path(dir)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s/config.yaml found (searched from cwd to root)", Dir)
		}
		dir = parent
	}
}
