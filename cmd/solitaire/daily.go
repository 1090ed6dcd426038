package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-solitaire/internal/klondike"
)

var (
	flagDate        string
	flagDailyConfig string
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Print the daily deal seed",
	Long: `Print the seed of the daily deal. Everyone with the same daily salt
gets the same deal on the same UTC day.

Examples:
  solitaire daily
  solitaire daily --date 2026-01-01`,
	Args: cobra.NoArgs,
	Run:  runDaily,
}

func init() {
	dailyCmd.Flags().StringVar(&flagDate, "date", "", "UTC day as YYYY-MM-DD (default: today)")
	dailyCmd.Flags().StringVar(&flagDailyConfig, "config", "", "Path to custom Klondike config YAML")
}

// parseDay parses a YYYY-MM-DD day, or returns now for an empty string.
func parseDay(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return now, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q: %w", s, err)
	}
	return t, nil
}

func runDaily(cmd *cobra.Command, args []string) {
	day, err := parseDay(flagDate, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := loadGameConfig(flagDailyConfig, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	seed := klondike.DailySeed(day, cfg.Deal.DailySalt)
	logger.Debug("daily seed", "date", klondike.DateKey(day), "salt", cfg.Deal.DailySalt)

	fmt.Printf("Daily deal for %s: %d\n", klondike.DateKey(day), seed)
	fmt.Printf("Play it with: solitaire play --seed %d\n", seed)
}
