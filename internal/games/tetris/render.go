package tetris

import (
	"fmt"

	"github.com/garrettspringer/3720-tetris-project/internal/core"
)

const (
	sidebarWidth = 18
	sidebarGap   = 2
	titleRows    = 1
)

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	snap := g.engine.Snapshot()
	frameW := snap.Width + 2
	frameH := snap.Height + 2
	needW := frameW + sidebarGap + sidebarWidth
	needH := frameH + titleRows

	if dst.Width() < needW || dst.Height() < needH {
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", needW, needH))
		return
	}

	originX := (dst.Width() - needW) / 2
	originY := (dst.Height()-needH)/2 + titleRows

	dst.DrawTextColored(originX, originY-1, g.Title(), core.ColorBrightWhite)
	renderBoard(dst, snap, originX, originY)
	renderSidebar(dst, snap, originX+frameW+sidebarGap, originY)

	switch {
	case !snap.Active:
		g.renderOverlay(dst, "Game Over", fmt.Sprintf("Lines: %d  Press R to restart", snap.Score))
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderBoard draws the starred frame, locked cells and the active piece.
func renderBoard(dst *core.Screen, snap Snapshot, x0, y0 int) {
	frameW := snap.Width + 2

	dst.DrawHLine(x0, y0, frameW, '*')
	dst.DrawHLine(x0, y0+snap.Height+1, frameW, '*')
	dst.DrawVLine(x0, y0+1, snap.Height, '|')
	dst.DrawVLine(x0+frameW-1, y0+1, snap.Height, '|')

	pieceColor := snap.Piece.Letter.Color()
	for y := 0; y < snap.Height; y++ {
		for x := 0; x < snap.Width; x++ {
			sx, sy := x0+1+x, y0+1+y
			switch {
			case snap.Piece.Contains(x, y):
				dst.SetColored(sx, sy, '@', pieceColor)
			case snap.Occupied(x, y):
				dst.SetColored(sx, sy, '#', core.ColorGray)
			}
		}
	}
}

// renderSidebar draws the score panel and the next-piece preview.
func renderSidebar(dst *core.Screen, snap Snapshot, x0, y0 int) {
	stash := "no"
	if snap.HasStash {
		stash = "yes (" + snap.Stash.String() + ")"
	}

	lines := []string{
		fmt.Sprintf("Score: %d", snap.Score),
		fmt.Sprintf("Level: %d", snap.Level),
		fmt.Sprintf("Speed: %d", snap.Speed),
		fmt.Sprintf("Stash: %s", stash),
		"",
		fmt.Sprintf("Next: %s", snap.Next),
	}
	for i, line := range lines {
		dst.DrawText(x0, y0+i, line)
	}

	preview := NewPiece(snap.Next, 0)
	py := y0 + len(lines) + 1
	for _, c := range preview.Cells {
		dst.SetColored(x0+2+c.X, py+c.Y, '@', snap.Next.Color())
	}

	help := []string{
		"<- ->  move",
		"up     rotate",
		"down   soft drop",
		"space  hard drop",
		"c      swap",
		"p      pause",
	}
	hy := py + 5
	for i, line := range help {
		if hy+i >= y0+snap.Height+2 {
			break
		}
		dst.DrawTextColored(x0, hy+i, line, core.ColorGray)
	}
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	maxLen := core.Max(len(line1), len(line2))
	box := dst.Bounds().Centered(maxLen+4, 5)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	drawCentered(dst, line1, box.Y+1)
	drawCentered(dst, line2, box.Y+3)
}

// drawCentered draws text centered horizontally.
func drawCentered(dst *core.Screen, text string, y int) {
	if y < 0 || y >= dst.Height() {
		return
	}
	dst.DrawTextCentered(y, text)
}
