// Package config provides YAML-based game configuration loading and
// scoring presets for the solitaire platform.
package config

import (
	"strings"

	"github.com/vovakirdan/tui-solitaire/internal/klondike"
)

// KlondikeConfig contains all configuration for Klondike.
type KlondikeConfig struct {
	Scoring ScoringConfig `yaml:"scoring"`
	Deal    DealConfig    `yaml:"deal"`
	Display DisplayConfig `yaml:"display"`
}

// ScoringConfig defines the point values of the scoring rules.
type ScoringConfig struct {
	Foundation       int `yaml:"foundation"`
	Reveal           int `yaml:"reveal"`
	RecyclePenalty   int `yaml:"recycle_penalty"`
	FoundationReturn int `yaml:"foundation_return"`
}

// DealConfig defines how deals are seeded.
type DealConfig struct {
	Seed      string `yaml:"seed"`       // Empty = time-based seed per game
	DailySalt string `yaml:"daily_salt"` // Salt for the daily deal seed
}

// FixedSeed returns the configured deal number, if one is set and parses.
func (d DealConfig) FixedSeed() (int64, bool) {
	if strings.TrimSpace(d.Seed) == "" {
		return 0, false
	}
	return klondike.ParseSeed(d.Seed)
}

// DisplayConfig defines presentation toggles.
type DisplayConfig struct {
	ShowTimer      bool `yaml:"show_timer"`
	ColorSuits     bool `yaml:"color_suits"`
	AutoStackOnWin bool `yaml:"auto_stack_on_win"` // Finish automatically once every card is face up
}

// ScoringPreset represents a named scoring variant.
type ScoringPreset string

const (
	PresetStandard  ScoringPreset = "standard"
	PresetRelaxed   ScoringPreset = "relaxed"
	PresetVegasLite ScoringPreset = "vegas-lite"
)

// ParsePreset maps a flag value to a preset. Unknown values yield "".
func ParsePreset(s string) ScoringPreset {
	switch ScoringPreset(s) {
	case PresetStandard, PresetRelaxed, PresetVegasLite:
		return ScoringPreset(s)
	default:
		return ""
	}
}

// ApplyKlondikePreset modifies the config based on a scoring preset.
func ApplyKlondikePreset(cfg *KlondikeConfig, preset ScoringPreset) {
	switch preset {
	case PresetStandard:
		cfg.Scoring = DefaultKlondikeConfig().Scoring
	case PresetRelaxed:
		// Recycling the stock is free
		cfg.Scoring.RecyclePenalty = 0
	case PresetVegasLite:
		cfg.Scoring.Foundation = 15
		cfg.Scoring.Reveal = 0
		cfg.Scoring.FoundationReturn = 15
	}
}
