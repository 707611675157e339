package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/garrettspringer/3720-tetris-project/internal/core"
	"github.com/garrettspringer/3720-tetris-project/internal/registry"
	"github.com/garrettspringer/3720-tetris-project/internal/storage"
)

// LeaderboardSize is the number of entries shown after a round.
const LeaderboardSize = 10

type phase int

const (
	phasePlaying phase = iota
	phaseNameEntry
	phaseLeaderboard
)

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keys       *KeyMapper
	logger     *log.Logger
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool

	phase     phase
	roundOver bool
	nameInput textinput.Model
	leaders   []storage.ScoreEntry
	savedID   int64
	statusMsg string
}

// NewModel creates a new Bubble Tea model for the given game.
// A nil logger discards log output.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	input := textinput.New()
	input.Placeholder = "your name"
	input.CharLimit = storage.MaxNameLen
	input.Width = storage.MaxNameLen

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keys:       NewKeyMapper(),
		logger:     logger,
		inputFrame: core.NewInputFrame(),
		nameInput:  input,
	}
}

// ConfigReporter is implemented by games that fall back to default settings
// when their config cannot be loaded.
type ConfigReporter interface {
	ConfigError() error
}

// Init resets the game and starts the frame clock.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	if r, ok := m.game.(ConfigReporter); ok {
		if err := r.ConfigError(); err != nil {
			m.logger.Warn("using default game config", "game", m.game.ID(), "error", err)
		}
	}
	m.logger.Info("round started", "game", m.game.ID(), "seed", m.config.Seed)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	if m.phase == phaseNameEntry {
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	if m.phase == phaseNameEntry {
		return m.handleNameKey(msg)
	}

	if key.Matches(msg, m.keys.Keys().Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleNameKey feeds the leaderboard prompt.
func (m Model) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.submitName(m.nameInput.Value())
		return m, nil
	case tea.KeyEsc:
		m.submitName("")
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// submitName saves the finished round under name and loads the leaderboard.
// A blank name skips saving.
func (m *Model) submitName(name string) {
	m.nameInput.Blur()
	m.phase = phaseLeaderboard
	m.savedID = 0
	m.statusMsg = ""

	id, err := m.store.SaveScore(m.game.ID(), name, m.gameState.Score)
	switch {
	case errors.Is(err, storage.ErrEmptyName):
		m.logger.Info("score not saved", "game", m.game.ID(), "score", m.gameState.Score)
	case err != nil:
		m.logger.Error("cannot save score", "game", m.game.ID(), "error", err)
		m.statusMsg = "Could not save score"
	default:
		m.savedID = id
		m.logger.Info("score saved", "game", m.game.ID(), "name", storage.NormalizeName(name), "score", m.gameState.Score)
	}

	leaders, err := m.store.TopScores(m.game.ID(), LeaderboardSize)
	if err != nil {
		m.logger.Error("cannot load leaderboard", "game", m.game.ID(), "error", err)
		m.statusMsg = "Could not load leaderboard"
	}
	m.leaders = leaders
}

// handleResize resizes the screen buffer. The round keeps going; the game
// draws a "too small" notice until the window fits again.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick runs one game frame.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.inputFrame.Clear()
	m.gameState = result.State

	if result.Cleared > 0 {
		m.logger.Debug("lines cleared", "game", m.game.ID(), "lines", result.Cleared, "score", m.gameState.Score)
	}

	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}

	switch {
	case m.gameState.GameOver && !m.roundOver:
		m.roundOver = true
		m.logger.Info("game over", "game", m.game.ID(), "score", m.gameState.Score)
		if m.store != nil {
			m.phase = phaseNameEntry
			m.nameInput.Reset()
			cmds = append(cmds, m.nameInput.Focus(), textinput.Blink)
		}

	case !m.gameState.GameOver && m.roundOver:
		// Restarted.
		m.roundOver = false
		m.phase = phasePlaying
		m.leaders = nil
		m.savedID = 0
		m.statusMsg = ""
		m.logger.Info("round started", "game", m.game.ID())
	}

	return m, tea.Batch(cmds...)
}

// saveScreenshot saves the current screen to ~/.tetris/screenshots.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".tetris", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.phase {
	case phaseNameEntry:
		return m.place(m.nameEntryView())
	case phaseLeaderboard:
		return m.place(leaderboardView(m.game.Title(), m.leaders, m.savedID, m.statusMsg))
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

func (m Model) place(panel string) string {
	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, panel)
}

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 3)
	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	highlightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))
)

func (m Model) nameEntryView() string {
	lines := []string{
		headingStyle.Render("GAME OVER"),
		fmt.Sprintf("Lines: %d", m.gameState.Score),
		"",
		"Enter your name for the leaderboard:",
		m.nameInput.View(),
		"",
		hintStyle.Render("enter save • esc skip"),
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

// leaderboardView renders the top entries, marking the row with highlightID.
func leaderboardView(title string, entries []storage.ScoreEntry, highlightID int64, status string) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("TOP " + fmt.Sprint(LeaderboardSize) + " - " + title))
	b.WriteString("\n\n")

	if len(entries) == 0 {
		b.WriteString(hintStyle.Render("No scores recorded yet."))
		b.WriteString("\n")
	}
	for i, e := range entries {
		row := fmt.Sprintf("%2d. %-*s %5d", i+1, storage.MaxNameLen, e.Name, e.Score)
		if e.ID == highlightID {
			row = highlightStyle.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	if status != "" {
		b.WriteString("\n")
		b.WriteString(status)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("r restart • q quit"))

	return panelStyle.Render(b.String())
}

// Run starts the Bubble Tea program for the given game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(game, store, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
