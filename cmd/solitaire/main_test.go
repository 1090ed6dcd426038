package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/vovakirdan/tui-solitaire/internal/config"
	"github.com/vovakirdan/tui-solitaire/internal/klondike"
)

func TestApplyEnv(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	db := flags.String("db", "default.db", "")
	level := flags.String("log-level", "info", "")
	if err := flags.Parse([]string{"--log-level", "warn"}); err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	env := map[string]string{
		"SOLITAIRE_DB":        "/tmp/env.db",
		"SOLITAIRE_LOG_LEVEL": "debug",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	if err := applyEnv(flags, lookup); err != nil {
		t.Fatalf("applyEnv() failed: %v", err)
	}
	if *db != "/tmp/env.db" {
		t.Errorf("db = %q, expected value from environment", *db)
	}
	// Explicit flags win over the environment.
	if *level != "warn" {
		t.Errorf("log-level = %q, expected the flag value", *level)
	}
}

func TestApplyEnvInvalidValue(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("db", 0, "")

	lookup := func(k string) (string, bool) {
		if k == "SOLITAIRE_DB" {
			return "not-a-number", true
		}
		return "", false
	}
	if err := applyEnv(flags, lookup); err == nil {
		t.Error("expected error for a value the flag cannot hold")
	}
}

func TestResolveSeed(t *testing.T) {
	cfg := config.DefaultKlondikeConfig()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	daily := klondike.DailySeed(now, cfg.Deal.DailySalt)

	withSeed := cfg
	withSeed.Deal.Seed = "77"

	tests := []struct {
		name     string
		flag     string
		daily    bool
		cfg      config.KlondikeConfig
		expected int64
		random   bool
	}{
		{"flag wins", "5", true, withSeed, 5, false},
		{"zero flag is a deal", "0", false, withSeed, 0, false},
		{"bad flag falls back to daily", "five", true, withSeed, daily, false},
		{"bad flag falls back to config", "five", false, withSeed, 77, false},
		{"daily", "", true, withSeed, daily, false},
		{"config seed", "", false, withSeed, 77, false},
		{"random", "", false, cfg, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveSeed(tt.flag, tt.daily, now, tt.cfg)
			if tt.random {
				if got != nil {
					t.Errorf("resolveSeed() = %d, expected a random deal", *got)
				}
				return
			}
			if got == nil || *got != tt.expected {
				t.Errorf("resolveSeed() = %v, expected %d", got, tt.expected)
			}
		})
	}
}

func TestLoadGameConfigPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "klondike.yaml")
	if err := os.WriteFile(path, []byte("scoring:\n  recycle_penalty: 50\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := loadGameConfig(path, "")
	if err != nil {
		t.Fatalf("loadGameConfig() failed: %v", err)
	}
	if cfg.Scoring.RecyclePenalty != 50 {
		t.Errorf("RecyclePenalty = %d, expected 50", cfg.Scoring.RecyclePenalty)
	}

	cfg, err = loadGameConfig(path, "relaxed")
	if err != nil {
		t.Fatalf("loadGameConfig() failed: %v", err)
	}
	if cfg.Scoring.RecyclePenalty != 0 {
		t.Errorf("relaxed RecyclePenalty = %d, expected 0", cfg.Scoring.RecyclePenalty)
	}

	if _, err := loadGameConfig(path, "nightmare"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestParseDay(t *testing.T) {
	now := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)

	got, err := parseDay("", now)
	if err != nil || !got.Equal(now) {
		t.Errorf("parseDay(\"\") = %v, %v; expected now", got, err)
	}

	got, err = parseDay("2026-01-01", now)
	if err != nil {
		t.Fatalf("parseDay() failed: %v", err)
	}
	if klondike.DateKey(got) != "2026-01-01" {
		t.Errorf("DateKey = %s, expected 2026-01-01", klondike.DateKey(got))
	}

	if _, err := parseDay("01/02/2026", now); err == nil {
		t.Error("expected error for a non-ISO date")
	}
}

func TestRenderDeal(t *testing.T) {
	g := klondike.New()
	g.Start(2024)

	hidden := renderDeal(g, false)
	if !strings.HasPrefix(hidden, "Deal #2024\n") {
		t.Errorf("output should start with the deal number:\n%s", hidden)
	}
	if !strings.Contains(hidden, "Stock: 24 cards") {
		t.Errorf("output should count the stock:\n%s", hidden)
	}
	// Tableau 7 has six hidden cards.
	if !strings.Contains(hidden, "Tableau 7: ## ## ## ## ## ## ") {
		t.Errorf("hidden cards should be masked:\n%s", hidden)
	}

	revealed := renderDeal(g, true)
	if strings.Contains(revealed, "##") {
		t.Errorf("--reveal should show every card:\n%s", revealed)
	}
	next := g.Stock().Last().String()
	if !strings.Contains(revealed, "next first): "+next+" ") {
		t.Errorf("revealed stock should start with the next draw %s:\n%s", next, revealed)
	}
}

func TestRenderDealDeterministic(t *testing.T) {
	a, b := klondike.New(), klondike.New()
	a.Start(31337)
	b.Start(31337)
	if renderDeal(a, true) != renderDeal(b, true) {
		t.Error("same seed should print the same deal")
	}
}
