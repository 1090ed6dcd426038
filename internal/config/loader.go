package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadKlondike loads Klondike configuration.
// Search order: customPath -> ~/.solitaire/configs/klondike.yaml -> ./configs/klondike.yaml -> embedded default
//
// Files are decoded over the defaults, so a file only needs the keys it changes.
func LoadKlondike(customPath string) (KlondikeConfig, error) {
	cfg := DefaultKlondikeConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return DefaultKlondikeConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("klondike.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = DefaultKlondikeConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/klondike.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = DefaultKlondikeConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultKlondikeYAML, &cfg); err != nil {
		return DefaultKlondikeConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".solitaire", "configs", filename)
}

// Validate rejects configurations the engine cannot play with.
func (c KlondikeConfig) Validate() error {
	s := c.Scoring
	if s.Foundation < 0 || s.Reveal < 0 || s.RecyclePenalty < 0 || s.FoundationReturn < 0 {
		return fmt.Errorf("config: scoring values must not be negative: %+v", s)
	}
	if _, ok := c.Deal.FixedSeed(); !ok && strings.TrimSpace(c.Deal.Seed) != "" {
		return fmt.Errorf("config: deal seed %q is not a number", c.Deal.Seed)
	}
	return nil
}
