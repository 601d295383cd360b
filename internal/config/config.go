package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// Source describes where the Q&A document lives.
//
// Types: "doc" fetches the URL as plain text (e.g. a published Google Doc
// export link), "feed" treats it as an RSS/Atom feed whose entries hold the
// Q&A text, "file" reads a local path (the URL field holds the path).
type Source struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	URL  string `yaml:"url"`
}

type Config struct {
	Source              Source  `yaml:"source"`
	RefreshInterval     string  `yaml:"refresh_interval"`
	CacheExpiry         string  `yaml:"cache_expiry"`
	SimilarityThreshold float64 `yaml:"similarity_threshold,omitempty"`
	Greeting            string  `yaml:"greeting,omitempty"`
	Prompt              string  `yaml:"prompt,omitempty"`
	Fallback            string  `yaml:"fallback,omitempty"`
}

// RefreshDuration returns the minimum time between document refreshes,
// defaulting to 5 minutes for missing or invalid values.
func (c *Config) RefreshDuration() time.Duration {
	d, err := parseDuration(c.RefreshInterval)
	if err != nil {
		return 5 * time.Minute
	}
	return d
}

// CacheExpiryDuration returns how long resolved answers stay cached,
// defaulting to 1 hour. Supports "Nd" day syntax for deployments that want
// day-long expiries.
func (c *Config) CacheExpiryDuration() time.Duration {
	d, err := parseDuration(c.CacheExpiry)
	if err != nil {
		return time.Hour
	}
	return d
}

// Threshold returns the similarity threshold for fuzzy matching, defaulting
// to 0.6 when unset or out of range.
func (c *Config) Threshold() float64 {
	if c.SimilarityThreshold <= 0 || c.SimilarityThreshold > 1 {
		return 0.6
	}
	return c.SimilarityThreshold
}

// FallbackText returns the reply for questions nothing matched.
func (c *Config) FallbackText() string {
	if c.Fallback == "" {
		return "I don't have an answer for that. Try rephrasing your question."
	}
	return c.Fallback
}

// PromptText returns the reply for an empty question.
func (c *Config) PromptText() string {
	if c.Prompt == "" {
		return "Ask me something and I will check the FAQ."
	}
	return c.Prompt
}

// GreetingText returns the chat greeting.
func (c *Config) GreetingText() string {
	if c.Greeting == "" {
		return "Hello! Ask me anything from the FAQ."
	}
	return c.Greeting
}

// parseDuration handles time.ParseDuration syntax plus an "Nd" day suffix.
func parseDuration(s string) (time.Duration, error) {
	if len(s) > 1 && s[len(s)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour, nil
		}
	}
	return time.ParseDuration(s)
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "iknowall", "config.yaml")
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

// Load reads the config at path (or the default XDG path when empty). On
// first run the embedded defaults are written to the config path so users
// have a file to edit. User values overlay the defaults field by field.
func Load(path string) (*Config, error) {
	cfg, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Non-fatal if the defaults can't be written: just use them.
			writeDefaults(path)
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	s := cfg.Source
	if s.URL == "" {
		return fmt.Errorf("source: url is required")
	}
	switch s.Type {
	case "doc", "feed":
		u, err := url.Parse(s.URL)
		if err != nil {
			return fmt.Errorf("source %q: invalid url: %w", s.Name, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("source %q: url scheme must be http or https, got %q", s.Name, u.Scheme)
		}
	case "file":
		// URL holds a local path; nothing to validate beyond presence.
	default:
		return fmt.Errorf("source %q: unknown type %q (valid: doc, feed, file)", s.Name, s.Type)
	}
	return nil
}
