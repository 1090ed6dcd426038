package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-solitaire/internal/storage"
)

var (
	flagScoresSeed  int64
	flagScoresLimit int
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores and statistics",
	Long: `Display the best results and overall statistics.

Examples:
  solitaire scores
  solitaire scores --seed 12345
  solitaire scores --limit 25
  solitaire scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().Int64Var(&flagScoresSeed, "seed", 0, "Only show results for this deal")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of results to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every stored result")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.Clear(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		logger.Info("results cleared", "db", flagDBPath)
		return
	}

	var results []storage.Result
	title := "High Scores"
	if cmd.Flags().Changed("seed") {
		title = fmt.Sprintf("High Scores - deal #%d", flagScoresSeed)
		results, err = store.ResultsForSeed(flagScoresSeed, flagScoresLimit)
	} else {
		results, err = store.TopResults(flagScoresLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(title)
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No results recorded yet.")
		fmt.Println()
		fmt.Println("Play 'solitaire play' to set the first high score!")
		return
	}

	printResults(results)

	stats, err := store.Stats()
	if err != nil {
		logger.Warn("could not load statistics", "error", err)
		return
	}
	fmt.Println()
	fmt.Printf("Games: %d  Won: %d (%.0f%%)  Best: %d  Average: %.0f\n",
		stats.Games, stats.Wins, stats.WinRate()*100, stats.BestScore, stats.AvgScore)
	if stats.FastestWin > 0 {
		fmt.Printf("Fastest win: %s\n", formatSeconds(stats.FastestWin))
	}
}

func printResults(results []storage.Result) {
	fmt.Printf("  %-4s  %-6s  %-4s  %-8s  %-5s  %-20s  %s\n", "Rank", "Score", "Won", "Time", "Moves", "Deal", "Date")
	fmt.Printf("  %-4s  %-6s  %-4s  %-8s  %-5s  %-20s  %s\n", "----", "-----", "---", "----", "-----", "----", "----")

	for i, r := range results {
		won := "no"
		if r.Won {
			won = "yes"
		}
		fmt.Printf("  %-4d  %-6d  %-4s  %-8s  %-5d  %-20d  %s\n",
			i+1, r.Score, won, formatSeconds(r.ElapsedSecs), r.Moves, r.Seed, r.CreatedAt.Format("2006-01-02 15:04"))
	}
}

// formatSeconds renders a duration in seconds as 1h2m5s style text.
func formatSeconds(secs int) string {
	return (time.Duration(secs) * time.Second).String()
}
