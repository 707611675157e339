package tetris

import (
	"github.com/garrettspringer/3720-tetris-project/internal/config"
	"github.com/garrettspringer/3720-tetris-project/internal/core"
	"github.com/garrettspringer/3720-tetris-project/internal/registry"
)

// Variant selects the board preset.
type Variant string

const (
	VariantClassic Variant = "classic"
	VariantMini    Variant = "mini"
)

const (
	miniWidth  = 10
	miniHeight = 10
)

// Game adapts the Engine to the platform's registry.Game interface. It turns
// platform actions into engine commands and converts render frames into
// engine clock marks.
type Game struct {
	variant Variant
	engine  *Engine
	runtime core.RuntimeConfig

	// Marks are paced with an accumulator: every frame adds marksPerSecond
	// and a mark is due once it reaches tickRate.
	marksPerSecond int
	tickRate       int
	markAcc        int
	mark           int
	paused         bool
	configErr      error
}

// New creates a classic Tetris game using the configured board size.
func New() *Game {
	return &Game{variant: VariantClassic}
}

// NewMini creates the 10x10 variant.
func NewMini() *Game {
	return &Game{variant: VariantMini}
}

func init() {
	registry.Register("tetris", func() registry.Game {
		return New()
	})
	registry.Register("tetris_mini", func() registry.Game {
		return NewMini()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.variant == VariantMini {
		return "tetris_mini"
	}
	return "tetris"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.variant == VariantMini {
		return "Tetris (Mini)"
	}
	return "Tetris"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.markAcc = 0
	g.mark = 0
	g.paused = false
	g.configErr = nil

	settings, err := config.LoadTetris(cfg.ConfigPath)
	if err != nil {
		g.configErr = err
		settings = config.DefaultTetrisConfig()
	}
	preset, err := config.ParseDifficulty(cfg.Difficulty)
	if err != nil && g.configErr == nil {
		g.configErr = err
	}
	config.ApplyTetrisPreset(&settings, preset)
	if g.variant == VariantMini {
		settings.Board.Width = miniWidth
		settings.Board.Height = miniHeight
	}
	g.marksPerSecond = settings.Speed.MarksPerSecond
	g.tickRate = cfg.TickRate

	engine, err := NewEngineWithOptions(Options{
		Width:    settings.Board.Width,
		Height:   settings.Board.Height,
		Seed:     cfg.Seed,
		Speed:    settings.Speed.Initial,
		MinSpeed: settings.Speed.Minimum,
	})
	if err != nil {
		// Settings were validated; only a hand-built config reaches here.
		g.configErr = err
		def := config.DefaultTetrisConfig()
		engine, _ = NewEngine(def.Board.Width, def.Board.Height, cfg.Seed)
	}
	g.engine = engine
}

// Step advances the game by one frame. Movement actions are applied in the
// order they arrived, then the engine clock ticks if a mark is due.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	// Handle restart
	if input.Has(core.ActionRestart) && !g.engine.Active() {
		next := g.runtime
		next.Seed = g.runtime.Seed + 1
		g.Reset(next)
		return core.StepResult{State: g.State(), Changed: true}
	}

	// Handle pause toggle
	if input.Has(core.ActionPause) && g.engine.Active() {
		g.paused = !g.paused
	}

	if !g.engine.Active() || g.paused {
		return core.StepResult{State: g.State()}
	}

	changed := false
	for _, a := range input.Actions {
		cmd, ok := commandFor(a)
		if !ok {
			continue
		}
		if g.engine.ApplyMove(cmd) {
			changed = true
		}
	}

	cleared := 0
	if g.markDue() {
		g.mark++
		before := g.engine.Score()
		if g.engine.Tick(g.mark) {
			changed = true
		}
		cleared = g.engine.Score() - before
	}

	return core.StepResult{State: g.State(), Changed: changed, Cleared: cleared}
}

// markDue advances the mark accumulator by one frame. It emits at most one
// mark per frame, so marks_per_second above the tick rate runs one mark per
// frame.
func (g *Game) markDue() bool {
	if g.tickRate <= 0 {
		return true
	}
	g.markAcc += g.marksPerSecond
	if g.markAcc < g.tickRate {
		return false
	}
	g.markAcc -= g.tickRate
	if g.markAcc >= g.tickRate {
		g.markAcc = 0
	}
	return true
}

// commandFor maps a platform action to an engine command.
func commandFor(a core.Action) (Command, bool) {
	switch a {
	case core.ActionLeft:
		return CmdLeft, true
	case core.ActionRight:
		return CmdRight, true
	case core.ActionDown:
		return CmdSoftDrop, true
	case core.ActionRotate:
		return CmdRotate, true
	case core.ActionDrop:
		return CmdHardDrop, true
	case core.ActionSwap:
		return CmdSwap, true
	default:
		return 0, false
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.engine.Score(),
		Level:    g.engine.Level(),
		GameOver: !g.engine.Active(),
		Paused:   g.paused,
	}
}

// Engine exposes the underlying engine for read-only inspection.
func (g *Game) Engine() *Engine {
	return g.engine
}

// ConfigError returns the config problem found by the last Reset, if any.
// The game falls back to defaults when it is set.
func (g *Game) ConfigError() error {
	return g.configErr
}

// Mark returns the number of clock marks emitted so far.
func (g *Game) Mark() int {
	return g.mark
}
