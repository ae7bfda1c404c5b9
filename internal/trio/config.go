package trio

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the user-tunable knobs of a session. All fields are optional;
// missing ones fall back to defaults.
type Config struct {
	Dialect     string `yaml:"dialect"`
	Prompt      string `yaml:"prompt"`
	HistoryFile string `yaml:"history_file"`
	GenDir      string `yaml:"gen_dir"`
}

func DefaultConfig() *Config {
	return &Config{
		Dialect:     "pi",
		Prompt:      "> ",
		HistoryFile: ".trio_history",
		GenDir:      "generated",
	}
}

// LoadConfig reads a yaml config file, layering it over the defaults.
// A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Dialect == "" {
		cfg.Dialect = "pi"
	}
	if cfg.Prompt == "" {
		cfg.Prompt = "> "
	}
	if cfg.HistoryFile == "" {
		cfg.HistoryFile = ".trio_history"
	}
	if cfg.GenDir == "" {
		cfg.GenDir = "generated"
	}
	return cfg, nil
}

// FindConfig looks for trio.yaml in the working directory, then the home
// directory. Returns "" when neither exists.
func FindConfig() string {
	if _, err := os.Stat("trio.yaml"); err == nil {
		return "trio.yaml"
	}
	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, ".trio.yaml")
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
