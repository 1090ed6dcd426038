// solitaire is a terminal Klondike solitaire with seeded, replayable deals.
//
// Usage:
//
//	solitaire play            - Play a deal in the terminal
//	solitaire deal --seed N   - Print the layout of a deal
//	solitaire daily           - Print today's daily deal seed
//	solitaire scores          - Show high scores and statistics
//	solitaire serve           - Start SSH server for remote play
//
// Global flags:
//
//	--db <path>         - Set database path (default: ~/.solitaire/results.db)
//	--log-level <level> - Set log level: debug, info, warn, error
//
// Flags left unset fall back to SOLITAIRE_* variables, which may also come
// from a .env file in the working directory.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	// Global flags
	flagDBPath   string
	flagLogLevel string
)

// envFlags maps flag names to the environment variables that default them.
var envFlags = map[string]string{
	"db":        "SOLITAIRE_DB",
	"log-level": "SOLITAIRE_LOG_LEVEL",
	"config":    "SOLITAIRE_CONFIG",
}

// logger is the CLI logger, configured by the root command.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "solitaire",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "solitaire",
	Short: "Klondike solitaire in your terminal",
	Long: `Klondike solitaire for the terminal, with seeded deals you can replay,
a daily deal shared by everyone and a local high score table.

Available commands:
  play     - Play a deal
  deal     - Print the layout of a deal
  daily    - Print today's daily deal seed
  scores   - View high scores and statistics
  serve    - Start SSH server for remote play

Examples:
  solitaire play
  solitaire play --seed 12345
  solitaire play --daily --preset relaxed
  solitaire deal --seed 12345
  solitaire serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.solitaire/results.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(dealCmd)
	rootCmd.AddCommand(dailyCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup loads .env defaults and configures logging before any command runs.
func setup(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("could not read .env", "error", err)
	}
	if err := applyEnv(cmd.Flags(), os.LookupEnv); err != nil {
		return err
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger.SetLevel(level)
	return nil
}

// applyEnv sets every flag the user left unset from its environment variable.
func applyEnv(flags *pflag.FlagSet, lookup func(string) (string, bool)) error {
	for name, env := range envFlags {
		f := flags.Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		v, ok := lookup(env)
		if !ok || v == "" {
			continue
		}
		if err := flags.Set(name, v); err != nil {
			return fmt.Errorf("invalid %s=%q: %w", env, v, err)
		}
	}
	return nil
}
