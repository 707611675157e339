package tui

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/garrettspringer/3720-tetris-project/internal/core"
	"github.com/garrettspringer/3720-tetris-project/internal/games/tetris"
	"github.com/garrettspringer/3720-tetris-project/internal/storage"
)

func testConfig(t *testing.T) core.RuntimeConfig {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60, Seed: 7}
}

func testStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestModel(t *testing.T, store *storage.Store) (Model, *tetris.Game) {
	t.Helper()
	g := tetris.New()
	m := NewModel(g, store, testConfig(t), nil)
	m.Init()
	return m, g
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func tick(m Model) Model {
	return update(m, TickMsg(time.Now()))
}

func TestModelAppliesKeysOnTick(t *testing.T) {
	m, g := newTestModel(t, nil)
	start := g.Engine().Piece()

	m = update(m, tea.KeyMsg{Type: tea.KeyLeft})
	if g.Engine().Piece() != start {
		t.Fatal("Key should wait for the next frame")
	}

	m = tick(m)
	if g.Engine().Piece() != start.Translate(-1, 0) {
		t.Error("Piece should have moved left on the frame")
	}
	if len(m.inputFrame.Actions) != 0 {
		t.Error("Input frame should be cleared after a frame")
	}
}

func TestModelInitWarnsOnConfigFallback(t *testing.T) {
	cfg := testConfig(t)
	cfg.ConfigPath = filepath.Join(t.TempDir(), "missing.yaml")

	var buf bytes.Buffer
	g := tetris.New()
	m := NewModel(g, nil, cfg, log.New(&buf))
	m.Init()

	if g.ConfigError() == nil {
		t.Fatal("Missing config file should be reported by the game")
	}
	if !strings.Contains(buf.String(), "using default game config") {
		t.Errorf("Expected a config warning in the log, got %q", buf.String())
	}

	buf.Reset()
	m = NewModel(tetris.New(), nil, testConfig(t), log.New(&buf))
	m.Init()
	if strings.Contains(buf.String(), "using default game config") {
		t.Errorf("Default config should not warn, got %q", buf.String())
	}
}

func TestModelResizeKeepsRound(t *testing.T) {
	m, g := newTestModel(t, nil)

	m = update(m, tea.KeyMsg{Type: tea.KeyRight})
	m = tick(m)
	moved := g.Engine().Piece()

	m = update(m, tea.WindowSizeMsg{Width: 100, Height: 40})

	if g.Engine().Piece() != moved {
		t.Error("Resize should not restart the round")
	}
	if m.screen.Width() != 100 || m.screen.Height() != 40 {
		t.Errorf("Screen = %dx%d, expected 100x40", m.screen.Width(), m.screen.Height())
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t, nil)

	next, cmd := m.Update(runeKey("q"))
	if cmd == nil || !next.(Model).quitting {
		t.Error("q should quit")
	}
	if next.(Model).View() != "" {
		t.Error("View should be empty after quitting")
	}
}

func TestModelGameOverWithoutStore(t *testing.T) {
	m, g := newTestModel(t, nil)

	g.Engine().End()
	m = tick(m)

	if m.phase != phasePlaying {
		t.Error("Without a store there is no name prompt")
	}
	if !strings.Contains(m.View(), "Game Over") {
		t.Error("Expected the game over overlay")
	}
}

func TestModelNameEntrySavesScore(t *testing.T) {
	store := testStore(t)
	m, g := newTestModel(t, store)

	g.Engine().End()
	m = tick(m)
	if m.phase != phaseNameEntry {
		t.Fatalf("phase = %v, expected name entry", m.phase)
	}
	if !strings.Contains(m.View(), "leaderboard") {
		t.Error("Expected the name prompt")
	}

	// q is part of the name here, not a quit.
	m = update(m, runeKey("quinn"))
	if m.quitting {
		t.Fatal("Typing q in the prompt must not quit")
	}

	m = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.phase != phaseLeaderboard {
		t.Fatalf("phase = %v, expected leaderboard", m.phase)
	}

	scores, err := store.TopScores(g.ID(), 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 || scores[0].Name != "quinn" {
		t.Fatalf("Unexpected leaderboard: %v", scores)
	}
	if m.savedID != scores[0].ID {
		t.Error("Saved entry should be highlighted")
	}
	if !strings.Contains(m.View(), "quinn") {
		t.Error("Leaderboard view should list the saved name")
	}
}

func TestModelBlankNameSkipsSave(t *testing.T) {
	store := testStore(t)
	m, g := newTestModel(t, store)

	g.Engine().End()
	m = tick(m)
	m = update(m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.phase != phaseLeaderboard {
		t.Fatalf("phase = %v, expected leaderboard", m.phase)
	}
	scores, _ := store.TopScores(g.ID(), 10)
	if len(scores) != 0 {
		t.Errorf("Skipped prompt should not save, got %v", scores)
	}
	if !strings.Contains(m.View(), "No scores recorded yet.") {
		t.Error("Expected empty leaderboard message")
	}
}

func TestModelRestartFromLeaderboard(t *testing.T) {
	store := testStore(t)
	m, g := newTestModel(t, store)

	g.Engine().End()
	m = tick(m)
	m = update(m, tea.KeyMsg{Type: tea.KeyEsc})

	m = update(m, runeKey("r"))
	m = tick(m)

	if m.phase != phasePlaying {
		t.Errorf("phase = %v after restart, expected playing", m.phase)
	}
	if m.gameState.GameOver || !g.Engine().Active() {
		t.Error("Restart should begin a new round")
	}
	if m.roundOver {
		t.Error("Round flag should reset after restart")
	}
}

func TestLeaderboardView(t *testing.T) {
	entries := []storage.ScoreEntry{
		{ID: 1, Name: "ann", Score: 9},
		{ID: 2, Name: "bob", Score: 4},
	}

	out := leaderboardView("Tetris", entries, 2, "")
	for _, want := range []string{"TOP 10 - Tetris", " 1. ann", " 2. bob", "r restart"} {
		if !strings.Contains(out, want) {
			t.Errorf("Leaderboard view missing %q", want)
		}
	}
}
