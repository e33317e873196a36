package arena

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/games/arena/sim"
)

const hudHeight = 2

// layout maps arena pixels to screen cells. Each tile is cellW x cellH
// characters; the scale doubles when the screen has room for it.
type layout struct {
	offsetX, offsetY int
	cellW, cellH     int
	tileSize         int
}

func newLayout(s sim.Snapshot, w, h int) (layout, bool) {
	l := layout{cellW: 2, cellH: 1, tileSize: s.TileSize}
	if w >= s.Cols*4 && h >= s.Rows*2+hudHeight {
		l.cellW, l.cellH = 4, 2
	}
	mapW, mapH := s.Cols*l.cellW, s.Rows*l.cellH
	if w < mapW || h < mapH+hudHeight || l.tileSize <= 0 {
		return l, false
	}
	l.offsetX = (w - mapW) / 2
	l.offsetY = hudHeight + (h-hudHeight-mapH)/2
	return l, true
}

// tileCell returns the top-left screen cell of a tile.
func (l layout) tileCell(t sim.Tile) (int, int) {
	return l.offsetX + t.Col*l.cellW, l.offsetY + t.Row*l.cellH
}

// pointCell returns the screen cell under an arena pixel.
func (l layout) pointCell(x, y int) (int, int) {
	return l.offsetX + x*l.cellW/l.tileSize, l.offsetY + y*l.cellH/l.tileSize
}

func (l layout) fillTile(dst *core.Screen, t sim.Tile, r rune, c core.Color) {
	x0, y0 := l.tileCell(t)
	for y := y0; y < y0+l.cellH; y++ {
		for x := x0; x < x0+l.cellW; x++ {
			dst.SetColored(x, y, r, c)
		}
	}
}

// Render draws the current game state into the provided screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.match == nil {
		msg := "Arena unavailable"
		if g.err != nil {
			msg = g.err.Error()
		}
		renderOverlay(dst, msg, "Press Q to quit")
		return
	}

	s := g.match.Snapshot()
	g.renderHUD(dst, s)

	if s.Phase == sim.PhaseTitle {
		renderOverlay(dst, strings.ToUpper(g.Title()), "Press Enter to start")
		return
	}

	l, ok := newLayout(s, dst.Width(), dst.Height())
	if !ok {
		renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", s.Cols*2, s.Rows+hudHeight))
		return
	}

	renderTiles(dst, l, s)
	for _, pu := range s.PowerUps {
		l.fillTile(dst, pu.Tile, ' ', core.ColorDefault)
		x, y := l.tileCell(pu.Tile)
		dst.SetColored(x, y, powerUpGlyph(pu.Kind), core.ColorBrightGreen)
	}
	for _, o := range s.Obstacles {
		l.fillTile(dst, o, '▓', core.ColorYellow)
	}
	renderBombs(dst, l, s)
	for _, m := range s.Monsters {
		renderEntity(dst, l, m, monsterGlyph(m.Species), monsterColor(m.Species), ' ')
	}
	for _, p := range s.Players {
		renderEntity(dst, l, p, rune('1'+p.Slot), core.PlayerColor(core.PlayerID(p.Slot)), effectGlyph(p))
	}

	switch s.Phase {
	case sim.PhasePause:
		renderOverlay(dst, "Paused", "Press P to continue")
	case sim.PhaseGameOver:
		renderOverlay(dst, "Game Over", resultLine(s.Scores)+" - press R")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen, s sim.Snapshot) {
	hud := fmt.Sprintf(" %s  Round %d/%d ", g.Title(), s.Round, s.MaxRounds)
	dst.DrawText(0, 0, hud)
	x := len([]rune(hud))

	for slot, score := range s.Scores {
		label := fmt.Sprintf(" %s:%d", core.PlayerID(slot), score)
		if p, ok := playerView(s, slot); ok {
			label += fmt.Sprintf(" [%d/%d r%d ♥%d]", p.BombLimit-p.Bombs, p.BombLimit, p.Radius, p.Life)
		} else if s.Phase != sim.PhaseTitle {
			label += " [out]"
		}
		dst.DrawTextColored(x, 0, label, core.PlayerColor(core.PlayerID(slot)))
		x += len([]rune(label))
	}
	if s.GracePending {
		dst.DrawTextColored(x+1, 0, "last stand!", core.ColorBrightRed)
	}

	for i := range dst.Width() {
		dst.Set(i, 1, '─')
	}
}

func playerView(s sim.Snapshot, slot int) (sim.EntityView, bool) {
	for _, p := range s.Players {
		if p.Slot == slot {
			return p, true
		}
	}
	return sim.EntityView{}, false
}

func renderTiles(dst *core.Screen, l layout, s sim.Snapshot) {
	for row := 0; row < s.Rows; row++ {
		for col := 0; col < s.Cols; col++ {
			t := sim.Tile{Col: col, Row: row}
			switch s.KindAt(col, row) {
			case sim.Wall:
				l.fillTile(dst, t, '█', core.ColorGray)
			case sim.Destructible:
				l.fillTile(dst, t, '▒', core.ColorOrange)
			}
		}
	}
}

func renderBombs(dst *core.Screen, l layout, s sim.Snapshot) {
	for _, b := range s.Bombs {
		switch b.State {
		case sim.Exploding:
			for _, c := range b.Cells {
				l.fillTile(dst, c, '*', core.ColorBrightRed)
			}
		case sim.Armed:
			x, y := l.tileCell(b.Tile)
			dst.SetColored(x, y, '●', core.ColorRed)
			if secs := fuseSeconds(b.FuseLeft, s.TickRate); secs >= 0 {
				dst.SetColored(x+1, y, rune('0'+secs), core.ColorBrightWhite)
			}
		}
	}
}

// fuseSeconds rounds the remaining fuse up to whole seconds; -1 if unknown.
func fuseSeconds(ticks, rate int) int {
	if ticks < 0 || rate <= 0 {
		return -1
	}
	secs := (ticks + rate - 1) / rate
	return min(secs, 9)
}

func renderEntity(dst *core.Screen, l layout, e sim.EntityView, glyph rune, c core.Color, effect rune) {
	cx, cy := e.Box.Center()
	x, y := l.pointCell(cx, cy)
	x -= l.cellW / 2
	dst.SetColored(x, y, glyph, c)
	if effect != ' ' {
		dst.SetColored(x+1, y, effect, c)
	}
}

// effectGlyph marks a running power-up effect. Effects about to run out
// blink by hiding the marker.
func effectGlyph(p sim.EntityView) rune {
	switch {
	case p.Blink:
		return ' '
	case p.Invincible:
		return '+'
	case p.Ghost:
		return '~'
	default:
		return ' '
	}
}

func powerUpGlyph(k sim.PowerUpKind) rune {
	switch k {
	case sim.ExtraBomb:
		return 'B'
	case sim.ObstacleGrant:
		return 'O'
	case sim.Invincibility:
		return 'I'
	case sim.BlastExpansion:
		return 'F'
	case sim.DetonatorGrant:
		return 'D'
	case sim.GhostMode:
		return 'G'
	case sim.RollerSkate:
		return 'S'
	default:
		return '?'
	}
}

func monsterGlyph(s sim.Species) rune {
	switch s {
	case sim.EdgeAvoider:
		return 'Ö'
	case sim.Pursuer:
		return '§'
	case sim.FaultyPursuer:
		return '¤'
	default:
		return '&'
	}
}

func monsterColor(s sim.Species) core.Color {
	switch s {
	case sim.EdgeAvoider:
		return core.ColorRed
	case sim.Pursuer:
		return core.ColorBrightWhite
	case sim.FaultyPursuer:
		return core.ColorMagenta
	default:
		return core.ColorGreen
	}
}

// resultLine names the match winner from the final scores.
func resultLine(scores []int) string {
	leader := core.GameState{Scores: scores}.Leader()
	if leader < 0 {
		return "Draw"
	}
	return fmt.Sprintf("%s wins the match", core.PlayerID(leader))
}

// renderOverlay draws a centered overlay message.
func renderOverlay(dst *core.Screen, line1, line2 string) {
	w := dst.Width()
	h := dst.Height()

	maxLen := max(len([]rune(line1)), len([]rune(line2)))
	boxW := maxLen + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawTextCentered(boxY+1, line1)
	dst.DrawTextCentered(boxY+3, line2)
}
