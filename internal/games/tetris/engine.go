// Package tetris implements the falling-block puzzle rules: piece generation,
// collision, movement, rotation, line clearing and the speed ramp.
//
// The Engine is synchronous and does no locking. Callers that feed it from
// several sources (a clock and a keyboard) must serialize their calls.
package tetris

import (
	"errors"
	"fmt"
	"math/rand"
)

const (
	// DefaultSpeed is the starting number of marks per automatic drop.
	DefaultSpeed = 20
	// DefaultMinSpeed is the floor the speed ramp never goes below.
	DefaultMinSpeed = 1
	// LinesPerLevel is how many cleared lines make one level.
	LinesPerLevel = 4
)

// ErrInvalidDimensions is returned when a board would have no cells.
var ErrInvalidDimensions = errors.New("tetris: invalid dimensions")

// Command is a discrete player move.
type Command int

const (
	CmdLeft Command = iota
	CmdRight
	CmdSoftDrop
	CmdRotate
	CmdHardDrop
	CmdSwap
)

func (c Command) String() string {
	switch c {
	case CmdLeft:
		return "left"
	case CmdRight:
		return "right"
	case CmdSoftDrop:
		return "soft_drop"
	case CmdRotate:
		return "rotate"
	case CmdHardDrop:
		return "hard_drop"
	case CmdSwap:
		return "swap"
	default:
		return "unknown"
	}
}

// Options configures a new Engine.
type Options struct {
	Width  int
	Height int
	Seed   int64

	// Speed is the initial marks-per-drop. Zero means DefaultSpeed.
	Speed int
	// MinSpeed clamps the speed ramp. Zero means DefaultMinSpeed.
	// A value >= Speed keeps the speed constant.
	MinSpeed int
}

// Engine owns the board, the active piece, the queue, the stash and the
// score state.
type Engine struct {
	board *Board
	rng   *rand.Rand

	piece    Piece
	next     Letter
	stash    Piece
	hasStash bool

	score    int
	speed    int
	minSpeed int
	locks    int
	active   bool
}

// NewEngine creates an engine with the default speed settings.
func NewEngine(width, height int, seed int64) (*Engine, error) {
	return NewEngineWithOptions(Options{Width: width, Height: height, Seed: seed})
}

// NewEngineWithOptions creates an engine, draws the first next letter and
// spawns the first piece. A board too narrow for the first piece leaves the
// engine terminal from the start.
func NewEngineWithOptions(opts Options) (*Engine, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, opts.Width, opts.Height)
	}

	speed := opts.Speed
	if speed <= 0 {
		speed = DefaultSpeed
	}
	minSpeed := opts.MinSpeed
	if minSpeed <= 0 {
		minSpeed = DefaultMinSpeed
	}

	e := &Engine{
		board:    NewBoard(opts.Width, opts.Height),
		rng:      rand.New(rand.NewSource(opts.Seed)),
		speed:    speed,
		minSpeed: minSpeed,
		active:   true,
	}
	e.next = e.drawLetter()
	e.piece = e.spawnPiece()
	return e, nil
}

func (e *Engine) drawLetter() Letter {
	return Letters[e.rng.Intn(len(Letters))]
}

// spawnPiece consumes the queued letter, refills the queue and returns the
// new piece centered horizontally. If the piece does not fit, the engine
// ends and the returned piece is the one that failed to place.
func (e *Engine) spawnPiece() Piece {
	letter := e.next
	e.next = e.drawLetter()

	p := NewPiece(letter, e.board.Width()/2-1)
	if e.Collides(p.Cells[:]) {
		e.End()
	}
	return p
}

// Collides reports whether any cell hits a side wall, the floor or a filled
// board cell. Cells above the top row never collide.
func (e *Engine) Collides(cells []Point) bool {
	for _, c := range cells {
		if c.Y < 0 {
			if c.X < 0 || c.X >= e.board.Width() {
				return true
			}
			continue
		}
		if e.board.At(c.X, c.Y) == Filled {
			return true
		}
	}
	return false
}

// try replaces the active piece with candidate when it fits.
func (e *Engine) try(candidate Piece) bool {
	if e.Collides(candidate.Cells[:]) {
		return false
	}
	e.piece = candidate
	return true
}

func (e *Engine) shift(dx, dy int) bool {
	return e.try(e.piece.Translate(dx, dy))
}

// ApplyMove executes one player command and reports whether the piece (or
// stash) changed. A failed move leaves the state untouched; a failed
// SoftDrop never locks the piece. Calls on a terminal engine return false.
func (e *Engine) ApplyMove(cmd Command) bool {
	if !e.active {
		return false
	}

	switch cmd {
	case CmdLeft:
		return e.shift(-1, 0)
	case CmdRight:
		return e.shift(1, 0)
	case CmdSoftDrop:
		return e.shift(0, 1)
	case CmdRotate:
		return e.try(e.piece.Rotate())
	case CmdHardDrop:
		for e.shift(0, 1) {
		}
		return true
	case CmdSwap:
		e.swap()
		return true
	default:
		return false
	}
}

// swap stashes the active piece, or exchanges it with the stashed one. The
// exchanged piece keeps the coordinates it had when it was stashed.
func (e *Engine) swap() {
	if !e.hasStash {
		e.stash = e.piece
		e.hasStash = true
		e.piece = e.spawnPiece()
	} else {
		e.piece, e.stash = e.stash, e.piece
	}
	if e.Collides(e.piece.Cells[:]) {
		e.End()
	}
}

// Tick advances the clock to mark. Every speed-th mark the piece drops one
// row; when it cannot, it locks, full rows collapse and the next piece
// spawns. Returns true when the state changed.
func (e *Engine) Tick(mark int) bool {
	if !e.active || mark%e.speed != 0 {
		return false
	}
	if e.shift(0, 1) {
		return true
	}
	e.lock()
	return true
}

func (e *Engine) lock() {
	for _, c := range e.piece.Cells {
		e.board.Set(c.X, c.Y, Filled)
	}
	e.locks++
	e.CollapseLines()
	e.piece = e.spawnPiece()
}

// CollapseLines removes every full row, scanning bottom to top, and returns
// how many were removed. A collapsed row index is checked again because the
// row above has moved into it. Each removed line scores one point and every
// LinesPerLevel-th line lowers the speed by one, down to the floor.
func (e *Engine) CollapseLines() int {
	removed := 0
	y := e.board.Height() - 1
	for y >= 0 {
		if !e.board.RowFull(y) {
			y--
			continue
		}
		e.board.removeRow(y)
		removed++
		e.score++
		if e.score%LinesPerLevel == 0 && e.speed > e.minSpeed {
			e.speed--
		}
	}
	return removed
}

// End makes the engine terminal.
func (e *Engine) End() {
	e.active = false
}

// Width returns the board width.
func (e *Engine) Width() int { return e.board.Width() }

// Height returns the board height.
func (e *Engine) Height() int { return e.board.Height() }

// Cell returns the locked state of (x, y); off-board reads are Filled.
func (e *Engine) Cell(x, y int) Cell { return e.board.At(x, y) }

// Board exposes the locked cells. Callers must treat it as read-only.
func (e *Engine) Board() *Board { return e.board }

// Piece returns the active piece.
func (e *Engine) Piece() Piece { return e.piece }

// Next returns the letter of the piece that spawns next.
func (e *Engine) Next() Letter { return e.next }

// Stash returns the held piece, if any.
func (e *Engine) Stash() (Piece, bool) { return e.stash, e.hasStash }

// Score returns the number of lines cleared.
func (e *Engine) Score() int { return e.score }

// Level is derived from the score: one level per LinesPerLevel lines.
func (e *Engine) Level() int { return e.score/LinesPerLevel + 1 }

// Speed returns the current marks per automatic drop.
func (e *Engine) Speed() int { return e.speed }

// Locks returns how many pieces have been locked into the board.
func (e *Engine) Locks() int { return e.locks }

// Active reports whether the game is still running.
func (e *Engine) Active() bool { return e.active }
