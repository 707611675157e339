package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/garrettspringer/3720-tetris-project/internal/platform/tui"
	"github.com/garrettspringer/3720-tetris-project/internal/registry"
	"github.com/garrettspringer/3720-tetris-project/internal/storage"
)

var (
	flagLimit    int
	flagClear    bool
	flagScoreTUI bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show the leaderboard",
	Long: `Display the top scores for a variant, or per-variant stats when no
variant is given.

Examples:
  tetris scores
  tetris scores tetris --limit 20
  tetris scores tetris --limit 0
  tetris scores tetris_mini --clear
  tetris scores --tui`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of entries to show, 0 for all")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores for the variant")
	scoresCmd.Flags().BoolVar(&flagScoreTUI, "tui", false, "Browse the leaderboard interactively")
}

func runScores(cmd *cobra.Command, args []string) {
	logger := cliLogger()

	gameID := ""
	if len(args) > 0 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			logger.Error("unknown game", "game", gameID)
			fmt.Fprintln(os.Stderr, "Run 'tetris list' to see available variants.")
			os.Exit(1)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Error("cannot open scores database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagScoreTUI:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if _, err := tui.RunScoreboard(store, gameID, width, height); err != nil {
			logger.Error("scoreboard failed", "error", err)
			os.Exit(1)
		}

	case gameID == "":
		if flagClear {
			logger.Error("--clear needs a variant")
			os.Exit(1)
		}
		printAllStats(store)

	case flagClear:
		if err := store.ClearScores(gameID); err != nil {
			logger.Error("cannot clear scores", "game", gameID, "error", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared scores for %s.\n", gameID)

	default:
		printTopScores(store, gameID)
	}
}

func printTopScores(store *storage.Store, gameID string) {
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	var scores []storage.ScoreEntry
	if flagLimit <= 0 {
		scores, err = store.AllScores(gameID)
	} else {
		scores, err = store.TopScores(gameID, flagLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Leaderboard - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'tetris play %s' to set the first score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-*s  %-6s  %s\n", "Rank", storage.MaxNameLen, "Name", "Lines", "Date")
	fmt.Printf("  %-4s  %-*s  %-6s  %s\n", "----", storage.MaxNameLen, "----", "-----", "----")
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-*s  %-6d  %s\n", i+1, storage.MaxNameLen, entry.Name, entry.Score, dateStr)
	}

	if stats, err := store.GameStats(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Games: %d  Players: %d  Average: %.1f\n",
			stats.HighScore, stats.GamesCount, stats.Players, stats.AvgScore)
	}
}

func printAllStats(store *storage.Store) {
	all, err := store.AllGamesStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}

	if len(all) == 0 {
		fmt.Println("No scores recorded yet.")
		return
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-12s  %-6s  %-7s  %-5s  %-7s  %s\n", "Variant", "Games", "Players", "Best", "Average", "Last played")
	for _, id := range ids {
		s := all[id]
		fmt.Printf("  %-12s  %-6d  %-7d  %-5d  %-7.1f  %s\n",
			id, s.GamesCount, s.Players, s.HighScore, s.AvgScore, s.LastPlayed.Format("2006-01-02 15:04"))
	}
}
