package tetris

// Cell is the state of one board square.
type Cell uint8

const (
	Empty Cell = iota
	Filled
)

// Point is a board coordinate. Y grows downward; row 0 is the top.
type Point struct {
	X, Y int
}

// Board is a dense width x height grid stored row-major.
type Board struct {
	width  int
	height int
	cells  [][]Cell // cells[y][x]
}

// NewBoard allocates an all-empty board.
func NewBoard(width, height int) *Board {
	b := &Board{width: width, height: height}
	b.cells = make([][]Cell, height)
	for y := range b.cells {
		b.cells[y] = make([]Cell, width)
	}
	return b
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.width }

// Height returns the number of rows.
func (b *Board) Height() int { return b.height }

// InBounds reports whether (x, y) lies on the grid.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// At returns the cell at (x, y). Coordinates off the grid read as Filled,
// so the border behaves like a permanent wall.
func (b *Board) At(x, y int) Cell {
	if !b.InBounds(x, y) {
		return Filled
	}
	return b.cells[y][x]
}

// Set writes a cell. Out-of-range writes are ignored.
func (b *Board) Set(x, y int, c Cell) {
	if !b.InBounds(x, y) {
		return
	}
	b.cells[y][x] = c
}

// RowFull reports whether every cell in row y is Filled.
func (b *Board) RowFull(y int) bool {
	for x := 0; x < b.width; x++ {
		if b.cells[y][x] != Filled {
			return false
		}
	}
	return true
}

// removeRow drops row y, shifting every row above it down by one and
// clearing row 0.
func (b *Board) removeRow(y int) {
	for z := y; z > 0; z-- {
		copy(b.cells[z], b.cells[z-1])
	}
	for x := range b.cells[0] {
		b.cells[0][x] = Empty
	}
}

// Rows returns a deep copy of the grid.
func (b *Board) Rows() [][]Cell {
	out := make([][]Cell, b.height)
	for y := range b.cells {
		out[y] = make([]Cell, b.width)
		copy(out[y], b.cells[y])
	}
	return out
}

// String dumps the grid one row per line, '#' for filled and '.' for empty.
func (b *Board) String() string {
	buf := make([]byte, 0, (b.width+1)*b.height)
	for y := 0; y < b.height; y++ {
		if y > 0 {
			buf = append(buf, '\n')
		}
		for x := 0; x < b.width; x++ {
			if b.cells[y][x] == Filled {
				buf = append(buf, '#')
			} else {
				buf = append(buf, '.')
			}
		}
	}
	return string(buf)
}
