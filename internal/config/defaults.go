package config

import (
	_ "embed"
)

//go:embed defaults/klondike.yaml
var defaultKlondikeYAML []byte

// DefaultKlondikeConfig returns the default Klondike configuration.
func DefaultKlondikeConfig() KlondikeConfig {
	return KlondikeConfig{
		Scoring: ScoringConfig{
			Foundation:       10,
			Reveal:           5,
			RecyclePenalty:   100,
			FoundationReturn: 0,
		},
		Deal: DealConfig{
			Seed:      "",
			DailySalt: "klondike",
		},
		Display: DisplayConfig{
			ShowTimer:      true,
			ColorSuits:     true,
			AutoStackOnWin: false,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "klondike":
		return defaultKlondikeYAML
	default:
		return nil
	}
}
