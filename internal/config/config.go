package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// Provider configures one query source.
type Provider struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"` // "rss" or "json"
	URL     string `yaml:"url"`  // template with one %s slot for the query
	Enabled bool   `yaml:"enabled"`
}

type Config struct {
	RefreshInterval string     `yaml:"refresh_interval"`
	PerTopicLimit   int        `yaml:"per_topic_limit,omitempty"`
	NotifyWindow    string     `yaml:"notify_window,omitempty"`
	NotifyCap       int        `yaml:"notify_cap,omitempty"`
	ExtractTTL      string     `yaml:"extract_ttl,omitempty"`
	ExtractMax      int        `yaml:"extract_max_entries,omitempty"`
	Providers       []Provider `yaml:"providers"`
}

func (c *Config) RefreshDuration() time.Duration {
	d, err := time.ParseDuration(c.RefreshInterval)
	if err != nil {
		return 10 * time.Minute
	}
	return d
}

func (c *Config) NotifyWindowDuration() time.Duration {
	d, err := time.ParseDuration(c.NotifyWindow)
	if err != nil {
		return 15 * time.Minute
	}
	return d
}

// GetNotifyCap returns the per-cycle notification cap, defaulting to 3.
func (c *Config) GetNotifyCap() int {
	if c.NotifyCap <= 0 {
		return 3
	}
	return c.NotifyCap
}

func (c *Config) ExtractTTLDuration() time.Duration {
	d, err := time.ParseDuration(c.ExtractTTL)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

// GetExtractMax returns the extraction cache bound, defaulting to 60.
func (c *Config) GetExtractMax() int {
	if c.ExtractMax <= 0 {
		return 60
	}
	return c.ExtractMax
}

// GetPerTopicLimit returns how many items each provider is asked for per
// topic, defaulting to 10.
func (c *Config) GetPerTopicLimit() int {
	if c.PerTopicLimit <= 0 {
		return 10
	}
	return c.PerTopicLimit
}

func (c *Config) EnabledProviders() []Provider {
	var out []Provider
	for _, p := range c.Providers {
		if p.Enabled {
			out = append(out, p)
		}
	}
	return out
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "newsdeck", "config.yaml")
}

func StorePath() string {
	return filepath.Join(xdg.CacheHome, "newsdeck", "newsdeck.db")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Write defaults to config path on first run
			if err := writeDefaults(path); err != nil {
				// Non-fatal: just use embedded defaults
				return defaults, nil
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	validTypes := map[string]bool{"rss": true, "json": true}
	for i, p := range cfg.Providers {
		if p.Name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}
		if p.URL == "" {
			return fmt.Errorf("provider %q: url is required", p.Name)
		}
		if !strings.Contains(p.URL, "%s") {
			return fmt.Errorf("provider %q: url must contain a %%s query slot", p.Name)
		}
		u, err := url.Parse(strings.Replace(p.URL, "%s", "query", 1))
		if err != nil {
			return fmt.Errorf("provider %q: invalid url: %w", p.Name, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("provider %q: url scheme must be http or https, got %q", p.Name, u.Scheme)
		}
		if !validTypes[p.Type] {
			return fmt.Errorf("provider %q: unknown type %q (valid: rss, json)", p.Name, p.Type)
		}
	}
	return nil
}
