package tetris

import (
	"strings"
	"testing"

	"github.com/garrettspringer/3720-tetris-project/internal/core"
)

func testRuntime(t *testing.T) core.RuntimeConfig {
	t.Helper()
	// Keep user and working-directory configs out of the test.
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  30,
		TickRate: 60,
		Seed:     12345,
	}
}

func TestGameDeterminism(t *testing.T) {
	cfg := testRuntime(t)

	inputs := make([]core.InputFrame, 3000)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		switch {
		case i%97 == 0:
			inputs[i].Set(core.ActionDrop)
		case i%31 == 0:
			inputs[i].Set(core.ActionRotate)
		case i%13 == 0:
			inputs[i].Set(core.ActionLeft)
		case i%17 == 0:
			inputs[i].Set(core.ActionRight)
		}
	}

	run := func() Snapshot {
		g := New()
		g.Reset(cfg)
		for _, in := range inputs {
			g.Step(in)
		}
		return g.Engine().Snapshot()
	}

	s1, s2 := run(), run()
	if s1.Score != s2.Score || s1.Locks != s2.Locks || s1.Next != s2.Next {
		t.Errorf("Determinism failed: %+v vs %+v", s1, s2)
	}
	if s1.Piece != s2.Piece {
		t.Errorf("Active piece mismatch: %v vs %v", s1.Piece, s2.Piece)
	}
	if s1.Locks == 0 {
		t.Error("Expected at least one piece to lock during the run")
	}
}

func TestMarkPacing(t *testing.T) {
	tests := []struct {
		tickRate int
		expected int
	}{
		{60, 10},
		{25, 10}, // not a multiple of 10 marks/s
		{15, 10},
		{10, 10},
		{5, 5}, // at most one mark per frame
	}

	base := testRuntime(t)
	for _, tt := range tests {
		cfg := base
		cfg.TickRate = tt.tickRate

		g := New()
		g.Reset(cfg)

		// One second of frames.
		for i := 0; i < tt.tickRate; i++ {
			g.Step(core.NewInputFrame())
		}
		if g.Mark() != tt.expected {
			t.Errorf("TickRate %d: Mark() = %d after one second, expected %d", tt.tickRate, g.Mark(), tt.expected)
		}

		for i := 0; i < tt.tickRate; i++ {
			g.Step(core.NewInputFrame())
		}
		if g.Mark() != 2*tt.expected {
			t.Errorf("TickRate %d: Mark() = %d after two seconds, expected %d", tt.tickRate, g.Mark(), 2*tt.expected)
		}
	}
}

func TestAutomaticDrop(t *testing.T) {
	cfg := testRuntime(t)
	cfg.TickRate = 10 // one mark per frame

	g := New()
	g.Reset(cfg)
	start := g.Engine().Piece()

	for i := 0; i < DefaultSpeed-1; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.Engine().Piece() != start {
		t.Fatal("Piece should not drop before the speed-th mark")
	}

	result := g.Step(core.NewInputFrame())
	if !result.Changed {
		t.Error("Drop frame should report a change")
	}
	if g.Engine().Piece() != start.Translate(0, 1) {
		t.Error("Piece should have dropped one row")
	}
}

func TestActionsMapToCommands(t *testing.T) {
	cfg := testRuntime(t)

	g := New()
	g.Reset(cfg)
	start := g.Engine().Piece()

	in := core.NewInputFrame()
	in.Set(core.ActionLeft)
	in.Set(core.ActionLeft)
	result := g.Step(in)

	if !result.Changed {
		t.Error("Move should report a change")
	}
	if g.Engine().Piece() != start.Translate(-2, 0) {
		t.Error("Two Left actions in one frame should move two columns")
	}

	in.Clear()
	in.Set(core.ActionSwap)
	g.Step(in)
	if _, held := g.Engine().Stash(); !held {
		t.Error("Swap action should fill the stash")
	}
}

func TestPauseStopsTheClock(t *testing.T) {
	cfg := testRuntime(t)
	cfg.TickRate = 10

	g := New()
	g.Reset(cfg)

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)
	if !g.State().Paused {
		t.Fatal("Game should be paused")
	}

	start := g.Engine().Piece()
	left := core.NewInputFrame()
	left.Set(core.ActionLeft)
	for i := 0; i < 3*DefaultSpeed; i++ {
		g.Step(left)
	}
	if g.Engine().Piece() != start {
		t.Error("Paused game should ignore input and the clock")
	}

	g.Step(pause)
	if g.State().Paused {
		t.Error("Second pause should resume")
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	cfg := testRuntime(t)

	g := New()
	g.Reset(cfg)
	g.Engine().End()

	if !g.State().GameOver {
		t.Fatal("Expected game over")
	}

	restart := core.NewInputFrame()
	restart.Set(core.ActionRestart)
	g.Step(restart)

	if g.State().GameOver {
		t.Error("Restart should start a new round")
	}
	if g.State().Score != 0 {
		t.Errorf("Score after restart = %d, expected 0", g.State().Score)
	}
}

func TestMiniVariant(t *testing.T) {
	cfg := testRuntime(t)

	g := NewMini()
	g.Reset(cfg)

	if g.ID() != "tetris_mini" {
		t.Errorf("ID() = %q", g.ID())
	}
	if g.Engine().Width() != 10 || g.Engine().Height() != 10 {
		t.Errorf("Mini board = %dx%d, expected 10x10", g.Engine().Width(), g.Engine().Height())
	}
}

func TestDifficultyFromRuntime(t *testing.T) {
	cfg := testRuntime(t)
	cfg.Difficulty = "hard"

	g := New()
	g.Reset(cfg)
	if g.Engine().Speed() != 12 {
		t.Errorf("Hard speed = %d, expected 12", g.Engine().Speed())
	}
	if g.ConfigError() != nil {
		t.Errorf("Unexpected config error: %v", g.ConfigError())
	}

	cfg.Difficulty = "bogus"
	g.Reset(cfg)
	if g.ConfigError() == nil {
		t.Error("Unknown difficulty should be reported")
	}
	if g.Engine().Speed() != DefaultSpeed {
		t.Errorf("Fallback speed = %d, expected %d", g.Engine().Speed(), DefaultSpeed)
	}
}

func TestRender(t *testing.T) {
	cfg := testRuntime(t)

	g := New()
	g.Reset(cfg)

	screen := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Score: 0", "Level: 1", "Stash: no", "Next: " + g.Engine().Next().String(), "************"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render output missing %q", want)
		}
	}
	if strings.Count(out, "@") < 8 {
		t.Error("Expected the active piece and the next-piece preview to be drawn")
	}
	if strings.Contains(out, "#") {
		t.Error("Empty board should have no locked cells")
	}

	g.engine.board.Set(0, 19, Filled)
	g.Render(screen)
	if got := strings.Count(screen.String(), "#"); got != 1 {
		t.Errorf("Expected one locked cell drawn, got %d", got)
	}

	g.Engine().End()
	g.Render(screen)
	if !strings.Contains(screen.String(), "Game Over") {
		t.Error("Expected game over overlay")
	}
}

func TestRenderTooSmall(t *testing.T) {
	cfg := testRuntime(t)

	g := New()
	g.Reset(cfg)

	screen := core.NewScreen(30, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("Expected too-small overlay")
	}
}
