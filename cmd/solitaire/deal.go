package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-solitaire/internal/klondike"
)

var (
	flagDealSeed   int64
	flagDealFormat string
	flagReveal     bool
)

var dealCmd = &cobra.Command{
	Use:   "deal",
	Short: "Print the layout of a deal",
	Long: `Shuffle with the given seed and print the opening table.

The same seed always produces the same deal, on every machine, so a seed is
enough to share or replay a game.

Examples:
  solitaire deal --seed 12345
  solitaire deal --seed 12345 --reveal
  solitaire deal --seed 12345 --format yaml`,
	Args: cobra.NoArgs,
	Run:  runDeal,
}

func init() {
	dealCmd.Flags().Int64Var(&flagDealSeed, "seed", 0, "Deal seed")
	dealCmd.Flags().StringVar(&flagDealFormat, "format", "text", "Output format: text, yaml")
	dealCmd.Flags().BoolVar(&flagReveal, "reveal", false, "Show face-down cards too")
	//nolint:errcheck // Flag is defined above
	dealCmd.MarkFlagRequired("seed")
}

func runDeal(cmd *cobra.Command, args []string) {
	g := klondike.New()
	g.Start(flagDealSeed)
	if err := g.Valid(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: inconsistent deal: %v\n", err)
		os.Exit(1)
	}

	switch flagDealFormat {
	case "text":
		fmt.Print(renderDeal(g, flagReveal))
	case "yaml":
		snap := g.Snapshot()
		if flagReveal {
			revealSnapshot(g, &snap)
		}
		out, err := yaml.Marshal(snap)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding deal: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(string(out))
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q (want text or yaml)\n", flagDealFormat)
		os.Exit(1)
	}
}

// cardNames renders cards, hiding face-down ones unless reveal is set.
func cardNames(cards []*klondike.Card, reveal bool) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		if c.FaceUp() || reveal {
			out[i] = c.String()
		} else {
			out[i] = "##"
		}
	}
	return out
}

// revealSnapshot replaces the hidden labels of snap with card names.
func revealSnapshot(g *klondike.Game, snap *klondike.Snapshot) {
	snap.Stock = cardNames(g.Stock().Cards(), true)
	for i := range klondike.TableauCount {
		snap.Tableau[i] = cardNames(g.Tableau(i).Cards(), true)
	}
}

// renderDeal formats the table as plain text, one pile per line.
func renderDeal(g *klondike.Game, reveal bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Deal #%d\n\n", g.Seed())
	for i := range klondike.TableauCount {
		fmt.Fprintf(&b, "  Tableau %d: %s\n", i+1, strings.Join(cardNames(g.Tableau(i).Cards(), reveal), " "))
	}

	stock := g.Stock().Cards()
	b.WriteString("\n")
	if reveal {
		// Top of the stock is drawn first.
		names := cardNames(stock, true)
		for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
			names[i], names[j] = names[j], names[i]
		}
		fmt.Fprintf(&b, "  Stock (%d, next first): %s\n", len(stock), strings.Join(names, " "))
	} else {
		fmt.Fprintf(&b, "  Stock: %d cards\n", len(stock))
	}
	return b.String()
}
