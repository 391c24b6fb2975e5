// Package config provides search-tuning configuration for the engine core,
// stored as TOML under ~/.chesscore/search.toml, grounded on
// _examples/Mgrdich-TermChess/internal/config/config.go's "never error, fall
// back to defaults" load pattern and repurposed from display/theme
// settings to search tuning per SPEC_FULL.md §2.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Defaults for every tunable, applied whenever the config file is absent,
// unreadable, or missing a field.
const (
	DefaultTimeBudgetMillis  = 3000
	DefaultMaxDepth          = 100
	DefaultAspirationWindow  = 50
	DefaultContemptValue     = -10
	DefaultCacheCapacity     = 1 << 20
	DefaultNullMoveReduction = 3
)

// SearchConfig holds every search-tuning knob spec.md §4.8 parameterizes.
type SearchConfig struct {
	TimeBudgetMillis  int
	MaxDepth          int
	AspirationWindow  int32
	ContemptValue     int32
	CacheCapacity     int
	NullMoveReduction int
}

// DefaultSearchConfig returns a SearchConfig with every field set to its
// documented default.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		TimeBudgetMillis:  DefaultTimeBudgetMillis,
		MaxDepth:          DefaultMaxDepth,
		AspirationWindow:  DefaultAspirationWindow,
		ContemptValue:     DefaultContemptValue,
		CacheCapacity:     DefaultCacheCapacity,
		NullMoveReduction: DefaultNullMoveReduction,
	}
}

// searchConfigFile is the on-disk TOML shape.
type searchConfigFile struct {
	Search struct {
		TimeBudgetMillis  int   `toml:"time_budget_millis"`
		MaxDepth          int   `toml:"max_depth"`
		AspirationWindow  int32 `toml:"aspiration_window"`
		ContemptValue     int32 `toml:"contempt_value"`
		CacheCapacity     int   `toml:"cache_capacity"`
		NullMoveReduction int   `toml:"null_move_reduction"`
	} `toml:"search"`
}

// ConfigDir returns ~/.chesscore, or an error if the home directory cannot
// be determined.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: home directory: %w", err)
	}
	return filepath.Join(home, ".chesscore"), nil
}

func configFilePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "search.toml"), nil
}

// Load reads ~/.chesscore/search.toml and returns a SearchConfig, falling
// back field-by-field to defaults whenever the file is missing, unreadable,
// or a field is left unset (zero). Load never returns an error — an
// engine core should always have a usable configuration.
func Load() SearchConfig {
	cfg := DefaultSearchConfig()

	path, err := configFilePath()
	if err != nil {
		return cfg
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg
	}

	var file searchConfigFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return cfg
	}

	if file.Search.TimeBudgetMillis > 0 {
		cfg.TimeBudgetMillis = file.Search.TimeBudgetMillis
	}
	if file.Search.MaxDepth > 0 {
		cfg.MaxDepth = file.Search.MaxDepth
	}
	if file.Search.AspirationWindow > 0 {
		cfg.AspirationWindow = file.Search.AspirationWindow
	}
	if file.Search.ContemptValue != 0 {
		cfg.ContemptValue = file.Search.ContemptValue
	}
	if file.Search.CacheCapacity > 0 {
		cfg.CacheCapacity = file.Search.CacheCapacity
	}
	if file.Search.NullMoveReduction > 0 {
		cfg.NullMoveReduction = file.Search.NullMoveReduction
	}
	return cfg
}

// Save writes cfg to ~/.chesscore/search.toml, creating the directory if
// needed.
func Save(cfg SearchConfig) error {
	dir, err := ConfigDir()
	if err != nil {
		return fmt.Errorf("config: save: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("config: save: create dir: %w", err)
	}
	path, err := configFilePath()
	if err != nil {
		return fmt.Errorf("config: save: %w", err)
	}

	var file searchConfigFile
	file.Search.TimeBudgetMillis = cfg.TimeBudgetMillis
	file.Search.MaxDepth = cfg.MaxDepth
	file.Search.AspirationWindow = cfg.AspirationWindow
	file.Search.ContemptValue = cfg.ContemptValue
	file.Search.CacheCapacity = cfg.CacheCapacity
	file.Search.NullMoveReduction = cfg.NullMoveReduction

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: save: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(file)
}
