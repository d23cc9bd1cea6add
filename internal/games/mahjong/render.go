package mahjong

import (
	"fmt"
	"math"

	platformcore "github.com/vovakirdan/tui-mahjong/internal/core"
	"github.com/vovakirdan/tui-mahjong/internal/games/mahjong/core"
)

const (
	cellWidth  = 5 // tile box plus one column gap
	cellHeight = 3
	hudHeight  = 3
	footHeight = 2 // status and controls lines
	minWidth   = 44
)

// boardView is the screen geometry of the board and the tray.
type boardView struct {
	originX, originY int
	cols, rows       int
	trayY            int
	tooSmall         bool
}

func computeView(b *core.Board, screenW, screenH int) boardView {
	cols, rows, _ := b.Size()
	boardW := cols*cellWidth - 1
	boardH := rows * cellHeight
	needH := hudHeight + boardH + 1 + cellHeight + footHeight

	v := boardView{cols: cols, rows: rows}
	if screenW < max(boardW, minWidth) || screenH < needH {
		v.tooSmall = true
		return v
	}
	v.originX = (screenW - boardW) / 2
	v.originY = hudHeight
	v.trayY = v.originY + boardH + 1
	return v
}

// tileRect returns the box of the table cell at row, col.
func (v boardView) tileRect(row, col int) platformcore.Rect {
	return platformcore.NewRect(v.originX+col*cellWidth, v.originY+row*cellHeight, cellWidth-1, cellHeight)
}

// trayRect returns the box of tray slot i.
func (v boardView) trayRect(i int) platformcore.Rect {
	return platformcore.NewRect(v.originX+i*cellWidth, v.trayY, cellWidth-1, cellHeight)
}

// hit maps a screen cell to the tile drawn there.
func (v boardView) hit(b *core.Board, x, y int) (core.TileID, bool) {
	if v.tooSmall {
		return core.NoTile, false
	}
	for row := 0; row < v.rows; row++ {
		for col := 0; col < v.cols; col++ {
			if v.tileRect(row, col).Contains(x, y) {
				t, ok := b.TopTileAt(row, col)
				return t.ID, ok
			}
		}
	}
	for i, t := range b.TrayTiles() {
		if v.trayRect(i).Contains(x, y) {
			return t.ID, true
		}
	}
	return core.NoTile, false
}

var suitColors = map[core.Suit]platformcore.Color{
	core.SuitBamboo:    platformcore.ColorGreen,
	core.SuitDot:       platformcore.ColorBlue,
	core.SuitCharacter: platformcore.ColorRed,
	core.SuitWind:      platformcore.ColorCyan,
	core.SuitDragon:    platformcore.ColorMagenta,
	core.SuitFlower:    platformcore.ColorOrange,
	core.SuitSeason:    platformcore.ColorYellow,
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.loadErr != nil {
		g.drawOverlay(dst, "Cannot start game", g.loadErr.Error(), "Press Q to quit")
		return
	}
	if g.session == nil {
		return
	}
	if g.layout.tooSmall {
		y := dst.Height() / 2
		dst.DrawTextCentered(y, "Window too small")
		dst.DrawTextCentered(y+1, "Please resize terminal")
		return
	}

	s := g.session
	g.renderHUD(dst, s)
	g.renderBoard(dst, s)
	g.renderTray(dst, s)
	g.renderFooter(dst)
	g.renderOverlays(dst, s)
}

func (g *Game) renderHUD(dst *platformcore.Screen, s *core.Session) {
	dst.DrawTextCentered(0, g.Title())

	if s.Score.Visible() {
		score := fmt.Sprintf("Score: %d", s.Score.Score())
		if m := s.Score.Multiplier(); m > 1 {
			score += fmt.Sprintf("  x%d (%.1fs)", m, s.Score.ComboTimeLeft())
		}
		dst.DrawText(g.layout.originX, 1, score)
	}
	if s.Timer.Visible() {
		clock := "Time: --:--"
		if !s.Timer.Untimed() {
			secs := int(math.Ceil(s.Timer.Remaining()))
			clock = fmt.Sprintf("Time: %d:%02d", secs/60, secs%60)
		}
		c := platformcore.ColorDefault
		if !s.Timer.Untimed() && s.Timer.Remaining() < 30 {
			c = platformcore.ColorBrightRed
		}
		dst.DrawTextColored(g.layout.originX+g.layout.cols*cellWidth-1-len(clock), 1, clock, c)
	}
	if s.Holder.Visible() {
		c := platformcore.ColorDefault
		if s.Holder.Len() > 0 && s.Holder.Pulse() < 0.5 {
			c = platformcore.ColorBrightWhite
		}
		dst.DrawTextColored(g.layout.originX, 2, fmt.Sprintf("Reserve: %d", s.Holder.Len()), c)
		tiles := fmt.Sprintf("Tiles left: %d", s.Board.ActiveCount())
		dst.DrawText(g.layout.originX+g.layout.cols*cellWidth-1-len(tiles), 2, tiles)
	}
}

func (g *Game) renderBoard(dst *platformcore.Screen, s *core.Session) {
	cursor := s.Logic.Cursor()
	for row := 0; row < g.layout.rows; row++ {
		for col := 0; col < g.layout.cols; col++ {
			t, ok := s.Board.TopTileAt(row, col)
			if !ok {
				continue
			}
			onCursor := cursor != nil && !cursor.OnTray(g.layout.rows) && cursor.Row == row && cursor.Col == col
			g.drawTile(dst, s, g.layout.tileRect(row, col), t, onCursor)
		}
	}
	if cursor != nil && !cursor.OnTray(g.layout.rows) {
		if _, ok := s.Board.TopTileAt(cursor.Row, cursor.Col); !ok {
			r := g.layout.tileRect(cursor.Row, cursor.Col)
			dst.DrawBoxColored(r, platformcore.ColorGray)
		}
	}
}

func (g *Game) renderTray(dst *platformcore.Screen, s *core.Session) {
	tray := s.Board.TrayTiles()
	cursor := s.Logic.Cursor()
	for i, t := range tray {
		onCursor := cursor != nil && cursor.OnTray(g.layout.rows) && cursor.Col == i
		g.drawTile(dst, s, g.layout.trayRect(i), t, onCursor)
	}
	if len(tray) == 0 && s.Holder.Capacity() > 0 {
		dst.DrawTextColored(g.layout.originX, g.layout.trayY+1, "Tray empty", platformcore.ColorGray)
	}
}

func (g *Game) drawTile(dst *platformcore.Screen, s *core.Session, r platformcore.Rect, t core.Tile, onCursor bool) {
	label := suitColors[t.Symbol.Suit]
	border := platformcore.ColorWhite
	switch {
	case s.Logic.Flashing(t.ID):
		label, border = platformcore.ColorMismatch, platformcore.ColorMismatch
	case t.State == core.StateSelected:
		label, border = platformcore.ColorSelected, platformcore.ColorSelected
	case s.Logic.Hinted(t.ID):
		border = platformcore.ColorHint
	case !s.Board.IsFree(t.ID):
		label, border = platformcore.ColorBlocked, platformcore.ColorBlocked
	}
	if onCursor {
		border = platformcore.ColorBrightGreen
	}

	dst.DrawBoxColored(r, border)
	dst.DrawTextColored(r.X+1, r.Y+1, t.Symbol.Short(), label)
	if t.Pos.Layer > 0 && !t.Tray {
		dst.SetColored(r.X, r.Y, rune('1'+t.Pos.Layer), border)
	}
}

func (g *Game) renderFooter(dst *platformcore.Screen) {
	h := dst.Height()
	if g.status != "" {
		dst.DrawTextCenteredColored(h-2, g.status, platformcore.ColorBrightYellow)
	}
	dst.DrawTextCenteredColored(h-1, g.Controls(), platformcore.ColorGray)
}

func (g *Game) renderOverlays(dst *platformcore.Screen, s *core.Session) {
	switch s.Phase() {
	case core.PhaseIntro:
		if s.Starter.Stalled() {
			g.drawOverlay(dst, "Could not start the game", "Press Enter to retry")
			return
		}
		g.drawOverlay(dst, "Get ready", fmt.Sprintf("Starting in %.0f", math.Ceil(s.Starter.IntroLeft())), "Press Enter to start now")
	case core.PhasePaused:
		g.drawOverlay(dst, "PAUSED", "Press P to resume")
	case core.PhaseEnded:
		var headline string
		switch s.Starter.Outcome() {
		case core.OutcomeWon:
			headline = "BOARD CLEARED!"
		case core.OutcomeTimedOut:
			headline = "TIME UP"
		case core.OutcomeDeadlocked:
			headline = "NO MOVES LEFT"
		default:
			headline = "GAME OVER"
		}
		r, _ := s.Result()
		g.drawOverlay(dst, headline,
			fmt.Sprintf("Score: %d", r.Score),
			fmt.Sprintf("Pairs: %d  Best combo: x%d", r.Matches, r.BestCombo),
			"Press R to play again")
	}
}

// drawOverlay draws a centered text box.
func (g *Game) drawOverlay(dst *platformcore.Screen, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len([]rune(line)))
	}

	boxW := min(maxLen+4, dst.Width())
	boxH := len(lines) + 2
	box := platformcore.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	for i, line := range lines {
		x := box.X + (boxW-len([]rune(line)))/2
		dst.DrawText(x, box.Y+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows: Move | Enter/Click: Pick | ?: Hint | P: Pause | R: Restart | Q: Quit"
}
