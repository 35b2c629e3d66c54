// Package config resolves bookrec settings from defaults, the YAML config
// file and the environment.
package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bookrecord/bookrec/internal/aladin"
	"github.com/bookrecord/bookrec/internal/notion"
	"github.com/bookrecord/bookrec/internal/prompt"
	"go.uber.org/zap/zapcore"
)

// Config holds everything a session needs to talk to Aladin and Notion.
type Config struct {
	AladinTTBKey     string        `yaml:"aladin_ttb_key,omitempty"`
	AladinURL        string        `yaml:"aladin_url,omitempty"`
	NotionToken      string        `yaml:"notion_token,omitempty"`
	NotionDatabaseID string        `yaml:"notion_database_id,omitempty"`
	NotionURL        string        `yaml:"notion_url,omitempty"`
	NotionVersion    string        `yaml:"notion_version,omitempty"`
	InputTimeout     time.Duration `yaml:"input_timeout,omitempty"`
	ProgressStatus   string        `yaml:"progress_status,omitempty"` // Optional 진행도 select value
	LogLevel         string        `yaml:"log_level,omitempty"`
}

// Environment variables that override the config file.
const (
	EnvAladinTTBKey     = "ALADIN_TTB_KEY"
	EnvAladinURL        = "ALADIN_URL"
	EnvNotionToken      = "NOTION_TOKEN"
	EnvNotionDatabaseID = "NOTION_DATABASE_ID"
	EnvNotionURL        = "NOTION_URL"
	EnvNotionVersion    = "NOTION_VERSION"
	EnvInputTimeout     = "BOOKREC_INPUT_TIMEOUT"
	EnvProgressStatus   = "BOOKREC_PROGRESS_STATUS"
	EnvLogLevel         = "BOOKREC_LOG_LEVEL"
)

// DefaultLogLevel keeps the interactive output free of log noise.
const DefaultLogLevel = "warn"

var (
	// ErrMissingField is returned by Validate when required settings are absent.
	ErrMissingField = errors.New("missing required configuration")

	// ErrUnknownKey is returned for keys that Get and Set do not know.
	ErrUnknownKey = errors.New("unknown configuration key")
)

// Defaults returns a Config with every optional field filled in.
func Defaults() *Config {
	return &Config{
		AladinURL:     aladin.BaseURL,
		NotionURL:     notion.PagesURL,
		NotionVersion: notion.DefaultVersion,
		InputTimeout:  prompt.DefaultTimeout,
		LogLevel:      DefaultLogLevel,
	}
}

// merge copies the non-zero fields of o over c.
func (c *Config) merge(o *Config) {
	if o.AladinTTBKey != "" {
		c.AladinTTBKey = o.AladinTTBKey
	}
	if o.AladinURL != "" {
		c.AladinURL = o.AladinURL
	}
	if o.NotionToken != "" {
		c.NotionToken = o.NotionToken
	}
	if o.NotionDatabaseID != "" {
		c.NotionDatabaseID = o.NotionDatabaseID
	}
	if o.NotionURL != "" {
		c.NotionURL = o.NotionURL
	}
	if o.NotionVersion != "" {
		c.NotionVersion = o.NotionVersion
	}
	if o.InputTimeout != 0 {
		c.InputTimeout = o.InputTimeout
	}
	if o.ProgressStatus != "" {
		c.ProgressStatus = o.ProgressStatus
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
}

// Validate checks that required fields are present and optional ones parse.
func (c *Config) Validate() error {
	var missing []string
	if c.AladinTTBKey == "" {
		missing = append(missing, "aladin_ttb_key ("+EnvAladinTTBKey+")")
	}
	if c.NotionToken == "" {
		missing = append(missing, "notion_token ("+EnvNotionToken+")")
	}
	if c.NotionDatabaseID == "" {
		missing = append(missing, "notion_database_id ("+EnvNotionDatabaseID+")")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}

	if c.InputTimeout < 0 {
		return fmt.Errorf("input_timeout must not be negative: %s", c.InputTimeout)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	return nil
}

// Redacted returns a copy with secrets masked for display.
func (c *Config) Redacted() *Config {
	r := *c
	r.AladinTTBKey = mask(c.AladinTTBKey)
	r.NotionToken = mask(c.NotionToken)
	return &r
}

// mask keeps the first four characters of a secret.
func mask(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return "****"
	}
	return s[:4] + strings.Repeat("*", 8)
}

// accessors maps user-facing keys (dash separated) to their fields.
var accessors = map[string]struct {
	get func(*Config) string
	set func(*Config, string) error
}{
	"aladin-ttb-key": {
		func(c *Config) string { return c.AladinTTBKey },
		func(c *Config, v string) error { c.AladinTTBKey = v; return nil },
	},
	"aladin-url": {
		func(c *Config) string { return c.AladinURL },
		func(c *Config, v string) error { c.AladinURL = v; return nil },
	},
	"notion-token": {
		func(c *Config) string { return c.NotionToken },
		func(c *Config, v string) error { c.NotionToken = v; return nil },
	},
	"notion-database-id": {
		func(c *Config) string { return c.NotionDatabaseID },
		func(c *Config, v string) error { c.NotionDatabaseID = v; return nil },
	},
	"notion-url": {
		func(c *Config) string { return c.NotionURL },
		func(c *Config, v string) error { c.NotionURL = v; return nil },
	},
	"notion-version": {
		func(c *Config) string { return c.NotionVersion },
		func(c *Config, v string) error { c.NotionVersion = v; return nil },
	},
	"input-timeout": {
		func(c *Config) string { return c.InputTimeout.String() },
		func(c *Config, v string) error {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid input-timeout: %w", err)
			}
			c.InputTimeout = d
			return nil
		},
	},
	"progress-status": {
		func(c *Config) string { return c.ProgressStatus },
		func(c *Config, v string) error { c.ProgressStatus = v; return nil },
	},
	"log-level": {
		func(c *Config) string { return c.LogLevel },
		func(c *Config, v string) error {
			if _, err := zapcore.ParseLevel(v); err != nil {
				return fmt.Errorf("invalid log-level: %w", err)
			}
			c.LogLevel = v
			return nil
		},
	},
}

// NormalizeKey converts key formats (notion_token, NOTION-TOKEN) to the
// dash-separated form.
func NormalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	return strings.ReplaceAll(key, "_", "-")
}

// Keys lists the keys accepted by Get and Set.
func Keys() []string {
	keys := make([]string, 0, len(accessors))
	for k := range accessors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value of a single key.
func (c *Config) Get(key string) (string, error) {
	a, ok := accessors[NormalizeKey(key)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return a.get(c), nil
}

// Set updates a single key.
func (c *Config) Set(key, value string) error {
	a, ok := accessors[NormalizeKey(key)]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return a.set(c, value)
}
