// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice PracticeConfig `toml:"practice"`
	Log      LogConfig      `toml:"log"`
}

// PracticeConfig maps practice-related settings.
type PracticeConfig struct {
	Chapter            *int    `toml:"chapter"`
	ArabicEdition      *string `toml:"arabic-edition"`
	TranslationEdition *string `toml:"translation-edition"`
	APIURL             *string `toml:"api-url"`
	Timeout            *string `toml:"timeout"`
	SettleDelay        *string `toml:"settle-delay"`
	SkipDelay          *string `toml:"skip-delay"`
	Player             *string `toml:"player"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
	File  *string `toml:"file"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// ParseDuration parses an optional duration setting such as "1.2s". A nil
// value yields ok == false.
func ParseDuration(key string, value *string) (d time.Duration, ok bool, err error) {
	if value == nil {
		return 0, false, nil
	}
	d, err = time.ParseDuration(*value)
	if err != nil {
		return 0, false, fmt.Errorf("invalid %s %q: %w", key, *value, err)
	}
	if d < 0 {
		return 0, false, fmt.Errorf("%s must not be negative", key)
	}
	return d, true, nil
}
