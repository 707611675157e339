package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// filledInRow counts the Filled cells in row y.
func filledInRow(b *Board, y int) int {
	n := 0
	for x := 0; x < b.Width(); x++ {
		if b.At(x, y) == Filled {
			n++
		}
	}
	return n
}

// cellSet returns the piece cells as a set, ignoring order.
func cellSet(p Piece) map[Point]bool {
	set := make(map[Point]bool, len(p.Cells))
	for _, c := range p.Cells {
		set[c] = true
	}
	return set
}

// normalized returns the cell set shifted so its bounding box starts at the
// origin.
func normalized(p Piece) map[Point]bool {
	lo, _ := p.Bounds()
	set := make(map[Point]bool, len(p.Cells))
	for _, c := range p.Cells {
		set[Point{X: c.X - lo.X, Y: c.Y - lo.Y}] = true
	}
	return set
}

func TestBoardOutOfRangeReadsFilled(t *testing.T) {
	b := NewBoard(4, 3)

	assert.Equal(t, Empty, b.At(0, 0))
	assert.Equal(t, Empty, b.At(3, 2))
	for _, p := range []Point{{-1, 0}, {4, 0}, {0, -1}, {0, 3}} {
		assert.Equal(t, Filled, b.At(p.X, p.Y), "point %v", p)
	}

	// Writes off the grid are dropped.
	b.Set(-1, 0, Filled)
	b.Set(0, 3, Filled)
	assert.Equal(t, "....\n....\n....", b.String())
}

func TestBoardRemoveRow(t *testing.T) {
	b := NewBoard(3, 3)
	b.Set(0, 0, Filled)
	b.Set(1, 1, Filled)
	b.Set(0, 2, Filled)
	b.Set(1, 2, Filled)
	b.Set(2, 2, Filled)

	assert.True(t, b.RowFull(2))
	b.removeRow(2)

	assert.Equal(t, "...\n#..\n.#.", b.String())
	assert.False(t, b.RowFull(2))
}

func TestBoardRowsIsDeepCopy(t *testing.T) {
	b := NewBoard(2, 2)
	rows := b.Rows()
	rows[0][0] = Filled

	assert.Equal(t, Empty, b.At(0, 0))
}

func TestNewPieceOffsets(t *testing.T) {
	p := NewPiece(LetterS, 4)
	want := map[Point]bool{{4, 1}: true, {5, 0}: true, {5, 1}: true, {6, 0}: true}
	assert.Equal(t, want, cellSet(p))
	assert.Equal(t, LetterS, p.Letter)
}

func TestLetters(t *testing.T) {
	for _, l := range Letters {
		assert.True(t, l.Valid())
		assert.Len(t, cellSet(NewPiece(l, 0)), 4, "letter %s must have 4 distinct cells", l)
	}
	assert.False(t, Letter('X').Valid())
	assert.Equal(t, "-", Letter(0).String())
}
