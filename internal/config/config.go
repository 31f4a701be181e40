package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the outer-layer settings: where to scan, where reports go,
// and what to exclude. The analysis engine's classification and pattern
// tables are built-in and deliberately not configurable.
type Config struct {
	Project struct {
		Root     string   `yaml:"root"`
		Excludes []string `yaml:"excludes"`
	} `yaml:"project"`
	Output struct {
		Format string `yaml:"format"` // "markdown" or "json"
		DBPath string `yaml:"db_path"`
	} `yaml:"output"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.Project.Root = "."
	cfg.Output.Format = "markdown"
	cfg.Output.DBPath = "codescribe.db"
	return cfg
}

// LoadConfig reads config.yaml, .env, and CODESCRIBE_* environment
// overrides. A missing config file falls back to defaults; a malformed one
// is an error.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	file, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if root := os.Getenv("CODESCRIBE_ROOT"); root != "" {
		cfg.Project.Root = root
	}
	if format := os.Getenv("CODESCRIBE_FORMAT"); format != "" {
		cfg.Output.Format = format
	}
	if db := os.Getenv("CODESCRIBE_DB"); db != "" {
		cfg.Output.DBPath = db
	}
	if excludes := os.Getenv("CODESCRIBE_EXCLUDES"); excludes != "" {
		cfg.Project.Excludes = splitList(excludes)
	}

	if cfg.Output.Format == "" {
		cfg.Output.Format = "markdown"
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
