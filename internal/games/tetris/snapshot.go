package tetris

// Snapshot captures the full engine state for rendering, determinism tests
// and replay checks. It shares no memory with the engine.
type Snapshot struct {
	Width    int
	Height   int
	Grid     [][]Cell // Grid[y][x], locked cells only
	Piece    Piece
	Next     Letter
	Stash    Letter // zero when the stash is empty
	HasStash bool
	Score    int
	Level    int
	Speed    int
	Locks    int
	Active   bool
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Width:    e.board.Width(),
		Height:   e.board.Height(),
		Grid:     e.board.Rows(),
		Piece:    e.piece,
		Next:     e.next,
		HasStash: e.hasStash,
		Score:    e.score,
		Level:    e.Level(),
		Speed:    e.speed,
		Locks:    e.locks,
		Active:   e.active,
	}
	if e.hasStash {
		s.Stash = e.stash.Letter
	}
	return s
}

// Occupied reports whether (x, y) is covered by a locked cell or the active
// piece.
func (s Snapshot) Occupied(x, y int) bool {
	if s.Piece.Contains(x, y) {
		return true
	}
	if y < 0 || y >= s.Height || x < 0 || x >= s.Width {
		return false
	}
	return s.Grid[y][x] == Filled
}
