package tetris

import "github.com/garrettspringer/3720-tetris-project/internal/core"

// Letter identifies one of the seven piece shapes.
type Letter byte

const (
	LetterI Letter = 'I'
	LetterJ Letter = 'J'
	LetterL Letter = 'L'
	LetterO Letter = 'O'
	LetterS Letter = 'S'
	LetterT Letter = 'T'
	LetterZ Letter = 'Z'
)

// Letters lists the shape tags in draw order. The RNG indexes into it.
var Letters = [7]Letter{LetterI, LetterJ, LetterL, LetterO, LetterS, LetterT, LetterZ}

func (l Letter) String() string {
	if l == 0 {
		return "-"
	}
	return string(rune(l))
}

// Valid reports whether l is one of the seven tags.
func (l Letter) Valid() bool {
	_, ok := shapes[l]
	return ok
}

// Color is the display color of pieces with this letter.
func (l Letter) Color() core.Color {
	switch l {
	case LetterI:
		return core.ColorBrightCyan
	case LetterJ:
		return core.ColorBlue
	case LetterL:
		return core.ColorOrange
	case LetterO:
		return core.ColorBrightYellow
	case LetterS:
		return core.ColorBrightGreen
	case LetterT:
		return core.ColorMagenta
	case LetterZ:
		return core.ColorBrightRed
	default:
		return core.ColorDefault
	}
}

// shapes holds the canonical cell offsets, anchored at the top-left.
var shapes = map[Letter][4]Point{
	LetterI: {{0, 0}, {0, 1}, {0, 2}, {0, 3}},
	LetterJ: {{1, 0}, {1, 1}, {1, 2}, {0, 2}},
	LetterL: {{0, 0}, {0, 1}, {0, 2}, {1, 2}},
	LetterO: {{0, 0}, {0, 1}, {1, 0}, {1, 1}},
	LetterS: {{0, 1}, {1, 0}, {1, 1}, {2, 0}},
	LetterT: {{0, 0}, {1, 0}, {2, 0}, {1, 1}},
	LetterZ: {{0, 0}, {1, 0}, {1, 1}, {2, 1}},
}

// Piece is a set of four board cells sharing one shape.
type Piece struct {
	Letter Letter
	Cells  [4]Point
}

// NewPiece returns the canonical shape for l shifted right by offsetX.
func NewPiece(l Letter, offsetX int) Piece {
	p := Piece{Letter: l, Cells: shapes[l]}
	return p.Translate(offsetX, 0)
}

// Translate returns the piece moved by (dx, dy).
func (p Piece) Translate(dx, dy int) Piece {
	out := p
	for i, c := range p.Cells {
		out.Cells[i] = Point{X: c.X + dx, Y: c.Y + dy}
	}
	return out
}

// Bounds returns the min/max corner of the piece's bounding box.
func (p Piece) Bounds() (minPt, maxPt Point) {
	minPt, maxPt = p.Cells[0], p.Cells[0]
	for _, c := range p.Cells[1:] {
		minPt.X = core.Min(minPt.X, c.X)
		minPt.Y = core.Min(minPt.Y, c.Y)
		maxPt.X = core.Max(maxPt.X, c.X)
		maxPt.Y = core.Max(maxPt.Y, c.Y)
	}
	return minPt, maxPt
}

// Rotate turns the piece 90 degrees about its bounding box, using the larger
// box dimension as the pivot span. The O piece maps onto itself.
func (p Piece) Rotate() Piece {
	lo, hi := p.Bounds()
	size := core.Max(hi.X-lo.X, hi.Y-lo.Y)

	out := p
	for i, c := range p.Cells {
		out.Cells[i] = Point{
			X: lo.X + size - (c.Y - lo.Y),
			Y: lo.Y + (c.X - lo.X),
		}
	}
	return out
}

// Contains reports whether the piece occupies (x, y).
func (p Piece) Contains(x, y int) bool {
	for _, c := range p.Cells {
		if c.X == x && c.Y == y {
			return true
		}
	}
	return false
}
