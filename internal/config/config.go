// Package config loads and saves the persistent hackerstories settings.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DirName is the per-user data directory under $HOME.
const DirName = ".hackerstories"

// Config is the persistent application configuration
type Config struct {
	// API endpoint settings
	API APIConfig `json:"api"`

	// DefaultTerm is searched when nothing has been persisted yet.
	DefaultTerm string `json:"default_term"`

	// DBPath is the SQLite file. Empty means <data dir>/hackerstories.db.
	DBPath string `json:"db_path,omitempty"`

	// Log settings
	Log LogConfig `json:"log"`

	// UI preferences
	UI UIConfig `json:"ui"`
}

// APIConfig holds the search API settings.
type APIConfig struct {
	Base              string   `json:"base"`
	Timeout           Duration `json:"timeout"`             // 0 disables the client timeout
	RequestsPerSecond float64  `json:"requests_per_second"` // 0 disables rate limiting
}

// LogConfig holds logging preferences.
type LogConfig struct {
	Level string `json:"level"`
	Dir   string `json:"dir,omitempty"` // Empty means <data dir>/logs
}

// UIConfig holds UI preferences.
type UIConfig struct {
	AltScreen   bool   `json:"alt_screen"`
	DefaultSort string `json:"default_sort"` // none, title, author, comments, points
}

// Duration is a time.Duration that reads and writes as a string like "30s".
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON accepts "30s" style strings or integer nanoseconds.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		*d = Duration(parsed)
		return nil
	}
	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*d = Duration(n)
	return nil
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			Base:              "https://hn.algolia.com/api/v1",
			Timeout:           Duration(30 * time.Second),
			RequestsPerSecond: 2,
		},
		DefaultTerm: "React",
		Log: LogConfig{
			Level: "info",
		},
		UI: UIConfig{
			AltScreen:   true,
			DefaultSort: "none",
		},
	}
}

// DataDir returns ~/.hackerstories, or a relative fallback when $HOME is unknown.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DirName
	}
	return filepath.Join(home, DirName)
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(DataDir(), "config.json")
}

// Load reads config from the default path, or returns defaults
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads config from path. A missing file yields defaults; fields
// absent from the file keep their default values. Environment overrides
// are applied last.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.ApplyEnv()
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.ApplyEnv()
	return cfg, nil
}

// Save writes config to the default path
func (c *Config) Save() error {
	return c.SaveTo(ConfigPath())
}

// SaveTo writes config to path, creating the directory if needed.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// ApplyEnv overrides fields from HACKERSTORIES_* environment variables.
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv("HACKERSTORIES_API_BASE")); v != "" {
		c.API.Base = v
	}
	if v, ok := os.LookupEnv("HACKERSTORIES_DEFAULT_TERM"); ok {
		c.DefaultTerm = v
	}
	if v := strings.TrimSpace(os.Getenv("HACKERSTORIES_LOG_LEVEL")); v != "" {
		c.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("HACKERSTORIES_DB")); v != "" {
		c.DBPath = v
	}
}

// DatabasePath resolves DBPath against the data directory.
func (c *Config) DatabasePath() string {
	if c.DBPath != "" {
		return c.DBPath
	}
	return filepath.Join(DataDir(), "hackerstories.db")
}

// LogDir resolves Log.Dir against the data directory.
func (c *Config) LogDir() string {
	if c.Log.Dir != "" {
		return c.Log.Dir
	}
	return filepath.Join(DataDir(), "logs")
}
