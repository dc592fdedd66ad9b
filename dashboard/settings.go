package dashboard

// settings.go — optional dashboard defaults loaded from ~/.vehdash.yaml.
//
// The file only supplies defaults; command-line flags always win. A missing
// file is not an error.

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Settings holds dashboard defaults from ~/.vehdash.yaml.
type Settings struct {
	// Source is the default dataset path or URL.
	Source string `yaml:"source"`
	// Metric is the default metric: "licensed", "sorn" or "total".
	Metric string `yaml:"metric"`
	// IncludeEarly exposes quarters before 2009 Q1 by default.
	IncludeEarly bool `yaml:"includeEarly"`
}

// SettingsPath returns the default settings file location.
func SettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".vehdash.yaml")
}

// LoadSettings reads a settings file. Returns nil (not an error) if the
// file does not exist.
func LoadSettings(path string) (*Settings, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", path, err)
	}
	return &s, nil
}

// SourceOr returns the configured source, or fallback when unset. Safe on a
// nil receiver.
func (s *Settings) SourceOr(fallback string) string {
	if s == nil || s.Source == "" {
		return fallback
	}
	return s.Source
}

// MetricOr returns the configured metric name, or fallback when unset.
func (s *Settings) MetricOr(fallback string) string {
	if s == nil || s.Metric == "" {
		return fallback
	}
	return s.Metric
}

// EarlyYears reports the include-early default. Safe on a nil receiver.
func (s *Settings) EarlyYears() bool {
	return s != nil && s.IncludeEarly
}
