package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/registry"
)

var flagStatsPlayer string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show player and variant statistics",
	Long: `Display the player profile and aggregated results for every variant.

Examples:
  t2048 stats
  t2048 stats --player ana`,
	Args: cobra.NoArgs,
	Run:  runStats,
}

func init() {
	statsCmd.Flags().StringVar(&flagStatsPlayer, "player", "", "Player name (default from config or OS user)")
}

func runStats(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	store := openStore(cfg)
	defer store.Close()

	width := 60
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w < width {
		width = w
	}
	rule := strings.Repeat("-", width)

	name := playerName(flagStatsPlayer, cfg)
	player, ok, err := store.Player(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading player: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Player: %s\n", name)
	fmt.Println(rule)
	if ok {
		fmt.Printf("  Best score:    %d\n", player.BestScore)
		fmt.Printf("  Current score: %d\n", player.CurrentScore)
		fmt.Printf("  Games played:  %d\n", player.GamesPlayed)
		fmt.Printf("  Theme:         %s\n", player.Theme)
	} else {
		fmt.Println("  No games played yet.")
	}
	fmt.Println()

	all, err := store.GetAllVariantStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading stats: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Variants")
	fmt.Println(rule)
	fmt.Printf("  %-12s  %-6s  %-5s  %-8s  %-6s  %-8s  %s\n", "Variant", "Games", "Wins", "Best", "Tile", "Avg", "Last played")

	for _, v := range registry.List() {
		s, played := all[v.ID]
		if !played {
			fmt.Printf("  %-12s  %-6d  %-5s  %-8s  %-6s  %-8s  %s\n", v.Title, 0, "-", "-", "-", "-", "never")
			continue
		}
		fmt.Printf("  %-12s  %-6d  %-5d  %-8d  %-6d  %-8.0f  %s\n",
			v.Title, s.GamesCount, s.Wins, s.HighScore, s.BestTile, s.AvgScore,
			s.LastPlayed.Local().Format("2006-01-02 15:04"))
	}

	// Saved unfinished games
	games, err := store.SavedGames()
	if err != nil {
		return
	}
	prefix := name + "/"
	var resumable []string
	for _, g := range games {
		if strings.HasPrefix(g.Slot, prefix) && !g.State.IsGameOver {
			resumable = append(resumable, fmt.Sprintf("%s (score %d)", strings.TrimPrefix(g.Slot, prefix), g.State.Score))
		}
	}
	if len(resumable) > 0 {
		fmt.Println()
		fmt.Printf("Unfinished games: %s\n", strings.Join(resumable, ", "))
	}
}
