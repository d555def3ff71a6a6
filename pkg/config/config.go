package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const (
	DefaultRefreshInterval = Duration(time.Second)
)

// Duration is a time.Duration that reads and writes as a Go duration string
// ("1s", "500ms"). A bare number is taken as seconds.
type Duration time.Duration

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var secs int64
	if err := value.Decode(&secs); err == nil {
		*d = Duration(time.Duration(secs) * time.Second)
		return nil
	}

	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("invalid duration %q", value.Value)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

type Config struct {
	// RefreshInterval is the pod table poll period.
	RefreshInterval Duration `yaml:"refresh_interval"`
	// LogTailLines limits log fetches; 0 fetches the full log.
	LogTailLines int64 `yaml:"log_tail_lines"`
	// Kubeconfig overrides the default kubeconfig resolution when set.
	Kubeconfig string `yaml:"kubeconfig"`
	// Theme recolors the dashboard chrome.
	Theme Theme `yaml:"theme"`
}

func NewDefaultConfig() *Config {
	return &Config{
		RefreshInterval: DefaultRefreshInterval,
		LogTailLines:    0,
	}
}

func GetConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "podview", "config.yaml")
}

func LoadConfig() (*Config, error) {
	return loadConfigFrom(GetConfigPath())
}

func loadConfigFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return NewDefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := NewDefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = DefaultRefreshInterval
	}
	if cfg.LogTailLines < 0 {
		return nil, fmt.Errorf("log_tail_lines must not be negative, got %d", cfg.LogTailLines)
	}

	return cfg, nil
}

func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
