package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/garrettspringer/3720-tetris-project/internal/config"
	"github.com/garrettspringer/3720-tetris-project/internal/core"
	"github.com/garrettspringer/3720-tetris-project/internal/platform/tui"
	"github.com/garrettspringer/3720-tetris-project/internal/registry"
	"github.com/garrettspringer/3720-tetris-project/internal/storage"
)

const defaultGameID = "tetris"

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a board variant",
	Long: `Start playing the given variant (default: tetris).

Controls:
  Left/Right, A/D  - Move
  Up/W             - Rotate
  Down/S           - Soft drop
  Space            - Hard drop
  C/Tab            - Swap with the stash
  P                - Pause
  R                - Restart (after game over)
  Ctrl+S           - Screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Slower start, speeds up every 4 lines
  normal - Config's initial speed, speeds up every 4 lines
  hard   - Faster start, speeds up every 4 lines
  fixed  - No speed-up, stays at the initial speed

Examples:
  tetris play
  tetris play tetris_mini
  tetris play --difficulty hard
  tetris play --config ./my-tetris.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	for _, c := range []*cobra.Command{playCmd, menuCmd} {
		c.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
		c.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	}
}

func runPlay(cmd *cobra.Command, args []string) {
	logger := cliLogger()

	gameID := defaultGameID
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		logger.Error("unknown game", "game", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tetris list' to see available variants.")
		os.Exit(1)
	}

	if _, err := config.ParseDifficulty(flagDifficulty); err != nil {
		logger.Error("invalid difficulty", "error", err)
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		logger.Error("cannot create game", "error", err)
		os.Exit(1)
	}

	cfg := runtimeConfig()
	warnConfigFallback(game, cfg, logger)

	store := openStore(logger)
	runErr := runGame(game, store, cfg, logger)
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		logger.Error("game failed", "error", runErr)
		os.Exit(1)
	}
}

// warnConfigFallback builds one round up front so config problems reach the
// terminal before the alt screen takes over.
func warnConfigFallback(game registry.Game, cfg core.RuntimeConfig, logger *log.Logger) {
	r, ok := game.(tui.ConfigReporter)
	if !ok {
		return
	}
	game.Reset(cfg)
	if err := r.ConfigError(); err != nil {
		logger.Warn("using default game config", "error", err)
	}
}

// runGame plays one game with the file logger attached.
func runGame(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	gameLog, closer, err := gameLogger()
	if err != nil {
		logger.Warn("game logs disabled", "error", err)
		gameLog, closer = nil, nil
	}
	if closer != nil {
		defer closer.Close()
	}

	return tui.Run(game, store, cfg, gameLog)
}

// runtimeConfig builds the runtime config from the flags and terminal size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	cfg.Seed = flagSeed
	cfg.ConfigPath = flagConfig
	cfg.Difficulty = flagDifficulty
	return cfg
}

// openStore opens the scores database. The game still runs without one.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
