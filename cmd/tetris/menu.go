package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/garrettspringer/3720-tetris-project/internal/platform/tui"
	"github.com/garrettspringer/3720-tetris-project/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a board variant from a menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play, Tab for the leaderboard.
After a game ends you return to the menu.

Examples:
  tetris menu
  tetris menu --fps 30 --difficulty easy`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger := cliLogger()
	store := openStore(logger)
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	cfg := runtimeConfig()
	fixedSeed := cfg.Seed != 0

	for {
		result, err := tui.RunMenu(store, cfg)
		if err != nil {
			logger.Error("menu failed", "error", err)
			os.Exit(1)
		}
		cfg = result.Config

		if result.Quit {
			return
		}

		if result.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, "", cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				logger.Error("scoreboard failed", "error", sbErr)
			}
			if goBack {
				continue
			}
			return
		}

		game, err := registry.Create(result.GameID)
		if err != nil {
			logger.Error("cannot create game", "error", err)
			continue
		}

		if !fixedSeed {
			cfg.Seed = time.Now().UnixNano()
		}

		if err := runGame(game, store, cfg, logger); err != nil {
			logger.Error("game failed", "error", err)
		}
	}
}
