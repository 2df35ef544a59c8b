// Package config loads the tool configuration from a TOML file under
// the user's home directory, layered over built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
)

// Config is the full tool configuration.
type Config struct {
	Parser ParserConfig `koanf:"parser" json:"parser"`
	Log    LogConfig    `koanf:"log" json:"log"`
	Cache  CacheConfig  `koanf:"cache" json:"cache"`
	// AnimeShows lists series names that should always parse with the
	// anime numbering preference.
	AnimeShows []string `koanf:"anime_shows" json:"anime_shows"`
}

// ParserConfig carries the expected-name exception lists handed to the
// engine. Entries are literals unless prefixed with "re:".
type ParserConfig struct {
	ExpectedTitles []string `koanf:"expected_titles" json:"expected_titles"`
	ExpectedGroups []string `koanf:"expected_groups" json:"expected_groups"`
}

// LogConfig controls the structured log output. An empty File logs to
// stderr only.
type LogConfig struct {
	Level      string `koanf:"level" json:"level"`
	File       string `koanf:"file" json:"file"`
	MaxSizeMB  int    `koanf:"max_size_mb" json:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups" json:"max_backups"`
	Compress   bool   `koanf:"compress" json:"compress"`
}

// CacheConfig sizes the parse-result cache.
type CacheConfig struct {
	TTLMinutes     int `koanf:"ttl_minutes" json:"ttl_minutes"`
	CleanupMinutes int `koanf:"cleanup_minutes" json:"cleanup_minutes"`
}

// Default returns the built-in configuration. The expected lists ship
// with the names the engine is known to misread without help.
func Default() Config {
	return Config{
		Parser: ParserConfig{
			ExpectedTitles: []string{
				"11.22.63",
				`re:^12 Monkeys\b`,
				`re:^60 Minutes\b`,
				`re:^Star Trek DS9\b`,
				`re:^The 100\b`,
				`re:^Dark Net\b`,
				`re:^Storm Chasers\b`,
			},
			ExpectedGroups: []string{
				`re:\bbyEMP\b`,
				`re:\bELITETORRENT\b`,
				`re:\bF4ST3R\b`,
				`re:\bF4ST\b`,
				`re:\bGOLF68\b`,
				`re:\bJIVE\b`,
				`re:\bNF69\b`,
				`re:\bNovaRip\b`,
				`re:\bPARTiCLE\b`,
				`re:\bPOURMOi\b`,
				`re:\bRipPourBox\b`,
				`re:\bRiPRG\b`,
				`re:\bTV2LAX9\b`,
			},
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			Compress:   true,
		},
		Cache: CacheConfig{
			TTLMinutes:     30,
			CleanupMinutes: 10,
		},
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".relstring", "config.toml"), nil
}

// Load reads the TOML file at path over the defaults. A missing file
// is not an error: the defaults come back untouched.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return cfg, err
		}
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return cfg, fmt.Errorf("loading config %s: %w", path, err)
	}
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
