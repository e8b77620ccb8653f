package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port"`
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Store struct {
		// Path of the sqlite file; empty means <data_dir>/hrs.db.
		Path string `yaml:"path"`
		// ResetOnInit rebuilds the store from empty on every start, the
		// single-session mode the desktop shell runs in. Turn off to keep
		// data across sessions.
		ResetOnInit bool `yaml:"reset_on_init"`
	} `yaml:"store"`

	Search struct {
		// DebounceMS is the minimum gap between issued searches.
		DebounceMS int `yaml:"debounce_ms"`
	} `yaml:"search"`

	Attachments struct {
		MaxUploadMB  int      `yaml:"max_upload_mb"`
		AllowedTypes []string `yaml:"allowed_types"`
	} `yaml:"attachments"`

	Maintenance struct {
		IntervalSeconds int `yaml:"interval_seconds"`
	} `yaml:"maintenance"`
}

func Default() Config {
	var cfg Config
	cfg.App.Port = 38472
	cfg.App.DataDir = "."
	cfg.Store.ResetOnInit = true
	cfg.Search.DebounceMS = 300
	cfg.Attachments.MaxUploadMB = 10
	cfg.Attachments.AllowedTypes = []string{
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	}
	cfg.Maintenance.IntervalSeconds = 900
	return cfg
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

// StorePath resolves the effective database path.
func (c Config) StorePath() string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	return filepath.Join(c.App.DataDir, "hrs.db")
}
