package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "bookrec"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"
)

// configCache caches the resolved config.
var configCache *Config

// Path returns the path to the config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/bookrec/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// LoadFile reads the config file only.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadFile() (*Config, error) {
	path := Path()
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Load resolves defaults, then the config file, then the environment.
// The result is cached; it is not validated.
func Load() (*Config, error) {
	if configCache != nil {
		return configCache, nil
	}

	file, err := LoadFile()
	if err != nil {
		return nil, err
	}
	env, err := fromEnv()
	if err != nil {
		return nil, err
	}

	cfg := Defaults()
	cfg.merge(file)
	cfg.merge(env)

	configCache = cfg
	return cfg, nil
}

// ResetCache clears the cached config.
// Useful for testing.
func ResetCache() {
	configCache = nil
}

// fromEnv reads the environment overrides.
func fromEnv() (*Config, error) {
	cfg := &Config{
		AladinTTBKey:     os.Getenv(EnvAladinTTBKey),
		AladinURL:        os.Getenv(EnvAladinURL),
		NotionToken:      os.Getenv(EnvNotionToken),
		NotionDatabaseID: os.Getenv(EnvNotionDatabaseID),
		NotionURL:        os.Getenv(EnvNotionURL),
		NotionVersion:    os.Getenv(EnvNotionVersion),
		ProgressStatus:   os.Getenv(EnvProgressStatus),
		LogLevel:         os.Getenv(EnvLogLevel),
	}
	if v := os.Getenv(EnvInputTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", EnvInputTimeout, err)
		}
		cfg.InputTimeout = d
	}
	return cfg, nil
}

// SaveFile writes cfg to the config file, creating its directory.
// The file holds credentials, so it is only readable by the owner.
func SaveFile(cfg *Config) error {
	path := Path()
	if path == "" {
		return fmt.Errorf("cannot determine config path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	ResetCache()
	return nil
}

// HelpfulConfigMessage explains how to provide the required settings.
func HelpfulConfigMessage() string {
	path := Path()
	return fmt.Sprintf(`bookrec needs an Aladin TTB key and a Notion integration token and database.

Set them in the environment (or a .env file in the current directory):
  %s=ttb...
  %s=secret_...
  %s=<32-character database id>

or store them in %s:
  bookrec config aladin-ttb-key ttb...
  bookrec config notion-token secret_...
  bookrec config notion-database-id <id>`,
		EnvAladinTTBKey, EnvNotionToken, EnvNotionDatabaseID, path)
}
