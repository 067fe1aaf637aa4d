package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Store  StoreConfig  `yaml:"store"`
	Lookup LookupConfig `yaml:"lookup"`
	Fetch  FetchConfig  `yaml:"fetch"`
	TUI    TUIConfig    `yaml:"tui"`
	Log    LogConfig    `yaml:"log"`
}

// StoreConfig selects where notes and the highlight color live.
type StoreConfig struct {
	Backend string `yaml:"backend"` // "json" or "sqlite"
	Dir     string `yaml:"dir"`
}

// LookupConfig holds dictionary lookup settings.
type LookupConfig struct {
	Endpoint string `yaml:"endpoint"`
	Language string `yaml:"language"`
}

// FetchConfig holds page loading settings.
type FetchConfig struct {
	Timeout      string `yaml:"timeout"` // e.g., "30s"
	MaxBodyBytes int64  `yaml:"max_body_bytes"`
}

// TUIConfig holds TUI settings.
type TUIConfig struct {
	Theme string `yaml:"theme"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"

	DefaultLookupEndpoint = "https://www.google.com/search?q=define+"
)

// Defaults returns a Config with sensible defaults.
func Defaults() Config {
	return Config{
		Store: StoreConfig{
			Backend: BackendJSON,
		},
		Lookup: LookupConfig{
			Endpoint: DefaultLookupEndpoint,
			Language: DetectLanguage(),
		},
		Fetch: FetchConfig{
			Timeout:      "30s",
			MaxBodyBytes: 4 << 20,
		},
		TUI: TUIConfig{
			Theme: "auto",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the config from disk. If the file doesn't exist, returns defaults.
func Load() (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(ConfigFile())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Defaults(), err
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(ConfigFile(), data, 0o644)
}

// IsFirstRun returns true if the config file does not exist.
func IsFirstRun() bool {
	_, err := os.Stat(ConfigFile())
	return os.IsNotExist(err)
}

// StoreDir returns the configured store directory, or DataDir when unset.
func (c Config) StoreDir() string {
	if c.Store.Dir != "" {
		return c.Store.Dir
	}
	return DataDir()
}

// LogPath returns the configured log file, or LogFile when unset.
func (c Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return LogFile()
}

// FetchTimeout parses Fetch.Timeout, falling back to 30 seconds.
func (c Config) FetchTimeout() time.Duration {
	d, err := time.ParseDuration(c.Fetch.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// LookupEndpoint returns the dictionary endpoint. The default endpoint gets
// an hl= hint when the configured language is not English; custom endpoints
// are returned as written.
func (c Config) LookupEndpoint() string {
	endpoint := c.Lookup.Endpoint
	if endpoint == "" {
		endpoint = DefaultLookupEndpoint
	}
	if endpoint != DefaultLookupEndpoint {
		return endpoint
	}
	code := LanguageCode(c.Lookup.Language)
	if code == "" || code == "en" {
		return endpoint
	}
	return "https://www.google.com/search?hl=" + code + "&q=define+"
}
