package bomberman

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vovakirdan/tui-bomber/internal/core"
)

// Layout constants
const (
	hudRows  = 2 // HUD line + separator
	helpRows = 1 // key hints at the bottom
)

// cellSize is the number of screen columns and rows one grid cell occupies.
type cellSize struct{ w, h int }

var (
	largeCell = cellSize{w: 4, h: 2}
	smallCell = cellSize{w: 2, h: 1}
)

// sprite is one row string per screen row of a cell.
type sprite []string

type tile struct {
	large sprite
	small sprite
	color core.Color
}

var (
	wallTile      = tile{sprite{"████", "████"}, sprite{"██"}, core.ColorGray}
	breakableTile = tile{sprite{"▒▒▒▒", "▒▒▒▒"}, sprite{"▒▒"}, core.ColorOrange}
	doorTile      = tile{sprite{"┌──┐", "│▪ │"}, sprite{"]["}, core.ColorDarkGray}
)

var characterWalk = []sprite{
	{"(oo)", "/||\\"},
	{"(oo)", " /\\ "},
	{"(oo)", "/||\\"},
	{"(oo)", " || "},
}

var characterDeath = []sprite{
	{"(xx)", "/||\\"},
	{"(xx)", " /\\ "},
	{"(--)", " __ "},
	{" .. ", " __ "},
}

var enemyWalk = []sprite{
	{"/^^\\", "\\vv/"},
	{"/^^\\", "/vv\\"},
	{"/^^\\", "|vv|"},
}

var bombTicking = []sprite{
	{"  ,'", " () "},
	{"  '.", " () "},
	{"  .'", " () "},
}

// explosion colors by frame: hot center fading out
var blastColors = []core.Color{core.ColorBrightWhite, core.ColorBrightYellow, core.ColorOrange, core.ColorRed}

var bombColors = []core.Color{core.ColorRed, core.ColorBrightRed, core.ColorWhite}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.session == nil {
		if g.err != nil {
			drawCenteredBox(dst, "CONFIGURATION ERROR", g.err.Error(), core.ColorBrightRed)
		}
		return
	}

	snap := g.session.Snapshot()
	size, ok := fitCell(snap, dst.Width(), dst.Height())
	if !ok {
		minW := snap.Cols * smallCell.w
		minH := snap.Rows*smallCell.h + hudRows + helpRows
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small", core.ColorDefault)
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", minW, minH), core.ColorGray)
		return
	}

	boardW, boardH := snap.Cols*size.w, snap.Rows*size.h
	offX := (dst.Width() - boardW) / 2
	offY := hudRows + (dst.Height()-hudRows-helpRows-boardH)/2

	renderHUD(dst, snap.HUD)
	renderTerrain(dst, &snap, size, offX, offY)
	renderBombs(dst, &snap, size, offX, offY)
	renderBlast(dst, &snap, size, offX, offY)
	renderEnemies(dst, &snap, size, offX, offY)
	renderCharacter(dst, &snap, size, offX, offY)
	renderHelp(dst)
	g.renderOverlay(dst, snap.HUD)
}

// fitCell picks the largest cell size that fits the board on screen.
func fitCell(snap Snapshot, w, h int) (cellSize, bool) {
	for _, size := range []cellSize{largeCell, smallCell} {
		if snap.Cols*size.w <= w && snap.Rows*size.h+hudRows+helpRows <= h {
			return size, true
		}
	}
	return cellSize{}, false
}

// renderHUD draws lives, score, time and level.
func renderHUD(dst *core.Screen, hud HUD) {
	left := fmt.Sprintf(" Level %d   Lives %s", hud.Level, strings.Repeat("♥", hud.Lives))
	dst.DrawTextColored(0, 0, left, core.ColorBrightWhite)

	score := fmt.Sprintf("Score %d", hud.Score)
	dst.DrawTextCentered(0, score, core.ColorBrightYellow)

	timeColor := core.ColorBrightWhite
	if hud.TimeLeft <= 10 {
		timeColor = core.ColorBrightRed
	}
	right := fmt.Sprintf("Bombs %d  Range %d  Time %d:%02d ", hud.MaxBombs, hud.BombRange, hud.TimeLeft/60, hud.TimeLeft%60)
	dst.DrawTextColored(dst.Width()-utf8.RuneCountInString(right), 0, right, timeColor)

	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorDarkGray)
}

func renderHelp(dst *core.Screen) {
	help := "←↑↓→/WASD move · SPACE bomb · P pause · M mute · Q quit"
	dst.DrawTextCentered(dst.Height()-1, help, core.ColorDarkGray)
}

func renderTerrain(dst *core.Screen, snap *Snapshot, size cellSize, offX, offY int) {
	for y := range snap.Rows {
		for x := range snap.Cols {
			sx, sy := offX+x*size.w, offY+y*size.h
			switch snap.Cell(x, y) {
			case CellDurableWall:
				drawTile(dst, wallTile, size, sx, sy, wallTile.color)
			case CellBreakable:
				drawTile(dst, breakableTile, size, sx, sy, breakableTile.color)
			case CellDoor:
				color := doorTile.color
				if snap.DoorRevealed {
					color = core.ColorBrightYellow
				}
				drawTile(dst, doorTile, size, sx, sy, color)
			}
		}
	}
}

func renderBombs(dst *core.Screen, snap *Snapshot, size cellSize, offX, offY int) {
	for _, b := range snap.Bombs {
		if b.State != BombTicking {
			continue
		}
		frame := b.Frame % len(bombTicking)
		t := tile{large: bombTicking[frame], small: sprite{"()"}}
		drawTile(dst, t, size, offX+b.Pos.X*size.w, offY+b.Pos.Y*size.h, bombColors[frame])
	}
}

func renderBlast(dst *core.Screen, snap *Snapshot, size cellSize, offX, offY int) {
	frame := 0
	for _, b := range snap.Bombs {
		if b.State == BombExploding {
			frame = max(frame, b.Frame)
		}
	}
	color := blastColors[min(frame, len(blastColors)-1)]

	for _, c := range snap.Blast {
		drawTile(dst, blastTile(c), size, offX+c.Pos.X*size.w, offY+c.Pos.Y*size.h, color)
	}
}

func blastTile(c BlastCell) tile {
	vertical := c.Dir == DirUp || c.Dir == DirDown
	switch {
	case c.Part == BlastCenter:
		return tile{large: sprite{"╬╬╬╬", "╬╬╬╬"}, small: sprite{"##"}}
	case c.Part == BlastEnd && vertical:
		return tile{large: sprite{" ╎╎ ", " ╎╎ "}, small: sprite{"¦¦"}}
	case c.Part == BlastEnd:
		return tile{large: sprite{"╍╍╍╍", "╍╍╍╍"}, small: sprite{"--"}}
	case vertical:
		return tile{large: sprite{" ║║ ", " ║║ "}, small: sprite{"||"}}
	default:
		return tile{large: sprite{"════", "════"}, small: sprite{"=="}}
	}
}

func renderEnemies(dst *core.Screen, snap *Snapshot, size cellSize, offX, offY int) {
	for _, e := range snap.Enemies {
		sx, sy := screenPos(e.Render, size, offX, offY)
		if e.Life != Alive {
			// fade out over the death animation
			dying := tile{large: sprite{"/xx\\", " .. "}, small: sprite{"**"}}
			color := core.ColorMagenta
			if e.Frame%2 == 1 {
				color = core.ColorDarkGray
			}
			drawTile(dst, dying, size, sx, sy, color)
			continue
		}
		t := tile{large: enemyWalk[e.Frame%len(enemyWalk)], small: sprite{"&&"}}
		drawTile(dst, t, size, sx, sy, core.ColorBrightMagenta)
	}
}

func renderCharacter(dst *core.Screen, snap *Snapshot, size cellSize, offX, offY int) {
	c := snap.Character
	sx, sy := screenPos(c.Render, size, offX, offY)

	if c.Life != Alive {
		t := tile{large: characterDeath[min(c.Frame, len(characterDeath)-1)], small: sprite{"xx"}}
		drawTile(dst, t, size, sx, sy, core.ColorRed)
		return
	}

	color := core.ColorBrightCyan
	if c.Invincible && (snap.Now/invincibleBlink)%2 == 1 {
		color = core.ColorDarkGray
	}
	t := tile{large: characterWalk[c.Frame%len(characterWalk)], small: sprite{"@@"}}
	drawTile(dst, t, size, sx, sy, color)
}

// invincibleBlink is the blink period of a character in its grace period.
const invincibleBlink = 150 * time.Millisecond

func screenPos(v core.Vec, size cellSize, offX, offY int) (int, int) {
	x := offX + int(math.Round(v.X*float64(size.w)))
	y := offY + int(math.Round(v.Y*float64(size.h)))
	return x, y
}

func drawTile(dst *core.Screen, t tile, size cellSize, sx, sy int, color core.Color) {
	rows := t.small
	if size == largeCell {
		rows = t.large
	}
	for dy := 0; dy < size.h && dy < len(rows); dy++ {
		dx := 0
		for _, r := range rows[dy] {
			if dx >= size.w {
				break
			}
			if r != ' ' {
				dst.SetColored(sx+dx, sy+dy, r, color)
			}
			dx++
		}
	}
}

// renderOverlay draws pause, level and game-over messages.
func (g *Game) renderOverlay(dst *core.Screen, hud HUD) {
	switch {
	case hud.Phase == PhaseGameOver:
		subtitle := fmt.Sprintf("Score: %d  |  R new run  ·  B menu", hud.Score)
		drawCenteredBox(dst, hud.Reason.Message(), subtitle, core.ColorBrightRed)

	case hud.Phase == PhaseLevelComplete:
		title := fmt.Sprintf("LEVEL %d COMPLETE", hud.Level)
		subtitle := fmt.Sprintf("Score: %d  |  ENTER continue", hud.Score)
		drawCenteredBox(dst, title, subtitle, core.ColorBrightYellow)

	case hud.Paused:
		drawCenteredBox(dst, "PAUSED", "P resume  ·  R restart level  ·  B menu", core.ColorBrightWhite)
	}
}

// drawCenteredBox draws a centered message box.
func drawCenteredBox(dst *core.Screen, title, subtitle string, color core.Color) {
	titleW := utf8.RuneCountInString(title)
	subtitleW := utf8.RuneCountInString(subtitle)

	boxW := min(max(titleW, subtitleW)+4, dst.Width())
	if subtitleW > boxW-4 {
		subtitle = string([]rune(subtitle)[:max(boxW-7, 0)]) + "..."
		subtitleW = utf8.RuneCountInString(subtitle)
	}
	box := core.CenteredRect(dst.Width(), dst.Height(), boxW, 5)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorGray)
	dst.DrawTextColored(box.X+(boxW-titleW)/2, box.Y+1, title, color)
	dst.DrawTextColored(box.X+(boxW-subtitleW)/2, box.Y+3, subtitle, core.ColorWhite)
}
