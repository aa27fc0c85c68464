package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds cmdstats configuration.
type Config struct {
	Store  StoreConfig  `toml:"store"`
	Log    LogConfig    `toml:"log"`
	Report ReportConfig `toml:"report"`
	UI     UIConfig     `toml:"ui"`
}

// StoreConfig controls where and how much history is kept.
type StoreConfig struct {
	Dir        string `toml:"dir"`
	MaxRecords int    `toml:"max_records"` // 0 keeps everything
}

// LogConfig controls which commands are recorded.
type LogConfig struct {
	Ignore      []string `toml:"ignore"`       // exact base commands never logged
	IgnoreSpace bool     `toml:"ignore_space"` // skip lines starting with a space
}

// ReportConfig holds report defaults.
type ReportConfig struct {
	Format string `toml:"format"` // "text", "json", "csv"
	Top    int    `toml:"top"`
	Limit  int    `toml:"limit"`
}

// UIConfig controls display options.
type UIConfig struct {
	Color bool `toml:"color"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Store:  StoreConfig{MaxRecords: 10000},
		Log:    LogConfig{IgnoreSpace: false},
		Report: ReportConfig{Format: "text", Top: 10, Limit: 20},
		UI:     UIConfig{Color: true},
	}
}

// ConfigDir returns the cmdstats config directory path.
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "cmdstats")
}

// Path returns the config file location.
func Path() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the directory holding the command store.
func (c *Config) DataDir() string {
	if c.Store.Dir != "" {
		return expandHome(c.Store.Dir)
	}
	return ConfigDir()
}

func expandHome(path string) string {
	if path == "~" || len(path) > 1 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}

// Load reads the config file, falling back to defaults if it doesn't exist
// or can't be parsed.
func Load() *Config {
	cfg := Default()
	data, err := os.ReadFile(Path())
	if err != nil {
		return cfg
	}
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return Default()
	}
	if cfg.Report.Top <= 0 {
		cfg.Report.Top = Default().Report.Top
	}
	if cfg.Report.Limit <= 0 {
		cfg.Report.Limit = Default().Report.Limit
	}
	if cfg.Report.Format == "" {
		cfg.Report.Format = Default().Report.Format
	}
	return cfg
}

// Save writes the config to disk.
func Save(cfg *Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// EnsureExists creates the config file with defaults if it doesn't exist.
func EnsureExists() error {
	if _, err := os.Stat(Path()); err == nil {
		return nil // already exists
	}
	return Save(Default())
}
