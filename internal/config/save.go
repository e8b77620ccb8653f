package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

func Validate(cfg Config) error {
	var errs []string

	if cfg.App.Port <= 0 || cfg.App.Port > 65535 {
		errs = append(errs, "app.port must be 1..65535")
	}
	if cfg.App.DataDir == "" {
		errs = append(errs, "app.data_dir is required")
	}
	if cfg.Search.DebounceMS < 0 {
		errs = append(errs, "search.debounce_ms must be >= 0")
	}
	if cfg.Attachments.MaxUploadMB <= 0 {
		errs = append(errs, "attachments.max_upload_mb must be > 0")
	}
	for i, ct := range cfg.Attachments.AllowedTypes {
		if ct == "" {
			errs = append(errs, fmt.Sprintf("attachments.allowed_types[%d] cannot be empty", i))
		}
	}
	if cfg.Maintenance.IntervalSeconds <= 0 {
		errs = append(errs, "maintenance.interval_seconds must be > 0")
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n- " + joinLines(errs))
	}
	return nil
}

func SaveAtomic(path string, cfg Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	b, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	bak := path + ".bak"

	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}

	_ = os.Remove(bak)
	_ = os.Rename(path, bak)

	return os.Rename(tmp, path)
}

func joinLines(lines []string) string {
	out := ""
	for i, s := range lines {
		if i > 0 {
			out += "\n- "
		}
		out += s
	}
	return out
}
