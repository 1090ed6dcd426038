package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-solitaire/internal/config"
	"github.com/vovakirdan/tui-solitaire/internal/klondike"
	"github.com/vovakirdan/tui-solitaire/internal/platform/tui"
	"github.com/vovakirdan/tui-solitaire/internal/storage"
)

var (
	flagSeed    string
	flagDaily   bool
	flagConfig  string
	flagPreset  string
	flagLogFile string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a deal",
	Long: `Deal a game of Klondike and play it in the terminal.

Controls:
  Left/Right  - Move between piles
  Up/Down     - Select deeper in a face-up run
  Enter       - Pick up / drop a card
  Space       - Draw from the stock
  a           - Send a card to the foundations
  A           - Send everything possible to the foundations
  r / n       - Restart this deal / new deal
  g           - Deal by number
  Tab         - High scores
  q           - Quit

Scoring presets:
  standard   - 10 per foundation card, 5 per reveal, -100 per recycle
  relaxed    - Recycling the stock is free
  vegas-lite - 15 per foundation card, no reveal bonus, -15 per card
               taken back off a foundation

Examples:
  solitaire play
  solitaire play --seed 12345
  solitaire play --daily
  solitaire play --preset relaxed --config ./my-klondike.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagSeed, "seed", "", "Deal number (default: daily, configured or random)")
	playCmd.Flags().BoolVar(&flagDaily, "daily", false, "Play today's daily deal")
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom Klondike config YAML")
	playCmd.Flags().StringVar(&flagPreset, "preset", "", "Scoring preset: standard, relaxed, vegas-lite")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file while playing")
}

// loadGameConfig loads the Klondike config and applies a scoring preset.
// A broken config file is reported and replaced by the defaults.
func loadGameConfig(path, preset string) (config.KlondikeConfig, error) {
	cfg, err := config.LoadKlondike(path)
	if err != nil {
		logger.Warn("using default config", "error", err)
	}

	if preset != "" {
		p := config.ParsePreset(preset)
		if p == "" {
			return cfg, fmt.Errorf("unknown preset %q (want standard, relaxed or vegas-lite)", preset)
		}
		config.ApplyKlondikePreset(&cfg, p)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// resolveSeed picks the first deal's seed: explicit flag, then the daily
// deal, then the configured seed. A flag that is not a number falls through
// to the next source. Nil means a random deal.
func resolveSeed(flag string, daily bool, now time.Time, cfg config.KlondikeConfig) *int64 {
	if flag != "" {
		if n, ok := klondike.ParseSeed(flag); ok {
			return &n
		}
		logger.Warn("ignoring seed that is not a number", "seed", flag)
	}
	if daily {
		n := klondike.DailySeed(now, cfg.Deal.DailySalt)
		return &n
	}
	if n, ok := cfg.Deal.FixedSeed(); ok {
		return &n
	}
	return nil
}

// playLogger returns the logger used while the TUI owns the terminal.
func playLogger(path string) (*log.Logger, io.Closer, error) {
	if path == "" {
		return log.New(io.Discard), io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	l := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "solitaire",
		Level:           logger.GetLevel(),
	})
	return l, f, nil
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg, err := loadGameConfig(flagConfig, flagPreset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Get terminal size for the first frame
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	gameLogger, logCloser, err := playLogger(flagLogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	// Open result storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open results database", "error", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(tui.Options{
		Config: cfg,
		Store:  store,
		Logger: gameLogger,
		Seed:   resolveSeed(flagSeed, flagDaily, time.Now(), cfg),
		Width:  width,
		Height: height,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
