package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-solitaire/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeDaily  bool
	flagServeConfig string
	flagServePreset string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the solitaire SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own table and deal. Results are stored
per-server (all users share the same high score table).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.solitaire/host_key

Examples:
  solitaire serve                           # Listen on :23235 with auto-generated key
  solitaire serve --ssh :2222               # Listen on port 2222
  solitaire serve --daily                   # Everyone plays today's daily deal
  solitaire serve --host-key ./my_host_key  # Use specific host key
  solitaire serve --db ./results.db         # Use specific database

Users can connect with:
  ssh localhost -p 23235`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23235", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().BoolVar(&flagServeDaily, "daily", false, "Deal today's daily deal to every session")
	serveCmd.Flags().StringVar(&flagServeConfig, "config", "", "Path to custom Klondike config YAML")
	serveCmd.Flags().StringVar(&flagServePreset, "preset", "", "Scoring preset: standard, relaxed, vegas-lite")
}

func runServe(_ *cobra.Command, _ []string) {
	game, err := loadGameConfig(flagServeConfig, flagServePreset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.Game = game
	cfg.Daily = flagServeDaily
	cfg.Level = logger.GetLevel()

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting solitaire SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
