package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-breaker/internal/assets"
	"github.com/vovakirdan/tui-breaker/internal/config"
	"github.com/vovakirdan/tui-breaker/internal/core"
	"github.com/vovakirdan/tui-breaker/internal/games/breaker"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorBrightCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// Layout maps playfield coordinates onto terminal cells. The playfield is
// drawn inside a one-cell border below a single HUD row.
type Layout struct {
	OffX, OffY int // Top-left cell of the playfield interior
	Cols, Rows int // Interior size in cells
	Width      float64
	Height     float64
}

// NewLayout fits the playfield into a screen of the given size.
func NewLayout(screenW, screenH int, pf config.Playfield) Layout {
	return Layout{
		OffX:   1,
		OffY:   2,
		Cols:   core.Max(screenW-2, 1),
		Rows:   core.Max(screenH-3, 1),
		Width:  pf.Width,
		Height: pf.Height,
	}
}

// Cell converts a playfield point to a screen cell.
func (l Layout) Cell(x, y float64) (int, int) {
	cx := int(math.Floor(x * float64(l.Cols) / l.Width))
	cy := int(math.Floor(y * float64(l.Rows) / l.Height))
	return l.OffX + core.Clamp(cx, 0, l.Cols-1), l.OffY + core.Clamp(cy, 0, l.Rows-1)
}

// Span converts a playfield rectangle to a cell rectangle. Anything on
// the playfield covers at least one cell.
func (l Layout) Span(r core.Rect) (x, y, w, h int) {
	x0, y0 := l.Cell(r.X, r.Y)
	x1, y1 := l.Cell(r.Right()-1e-9, r.Bottom()-1e-9)
	return x0, y0, x1 - x0 + 1, y1 - y0 + 1
}

// DrawSession renders a snapshot using the loaded sprites. The renderer
// holds no game logic; everything comes from the snapshot.
func DrawSession(s *core.Screen, l Layout, snap breaker.Snapshot, bundle *assets.Bundle) {
	s.Clear()

	bg := bundle.Sprite(assets.SpriteBackground)
	s.FillArea(l.OffX, l.OffY, l.Cols, l.Rows, bg.Frame(0), bg.Color)
	s.DrawBox(l.OffX-1, l.OffY-1, l.Cols+2, l.Rows+2, core.ColorGray)

	block := bundle.Sprite(assets.SpriteBlock)
	for _, b := range snap.Blocks {
		x, y, w, h := l.Span(b)
		// Leave a gap so neighbouring blocks stay distinguishable.
		if w > 1 {
			w--
		}
		s.FillArea(x, y, w, h, block.Frame(0), block.Color)
	}

	platform := bundle.Sprite(assets.SpritePlatform)
	px, py, pw, _ := l.Span(snap.Paddle)
	s.FillArea(px, py, pw, 1, platform.Frame(0), platform.Color)

	ball := bundle.Sprite(assets.SpriteBall)
	bx, by := l.Cell(snap.Ball.CenterX(), snap.Ball.Y+snap.Ball.H/2)
	s.SetCell(bx, by, ball.Frame(snap.BallFrame), ball.Color)

	hud := fmt.Sprintf("Score: %d", snap.Score)
	s.DrawText(1, 0, hud, core.ColorBrightWhite)
	left := fmt.Sprintf("Blocks: %d", len(snap.Blocks))
	s.DrawText(s.Width()-len(left)-1, 0, left, core.ColorGray)

	if !snap.Launched && snap.Phase == breaker.PhaseRunning {
		s.DrawTextCentered(l.OffY+l.Rows*2/3, "press space to launch", core.ColorGray)
	}

	if snap.Phase == breaker.PhaseOver {
		color := core.ColorBrightRed
		if snap.Outcome == breaker.OutcomeVictory {
			color = core.ColorBrightGreen
		}
		mid := l.OffY + l.Rows/2
		s.DrawTextCentered(mid, snap.Outcome.Message(), color)
		s.DrawTextCentered(mid+2, "r: restart  q: quit", core.ColorWhite)
	}
}

// DrawLoading renders the asset loading screen.
func DrawLoading(s *core.Screen, loaded, required int, err error) {
	s.Clear()
	mid := s.Height() / 2
	if err != nil {
		s.DrawTextCentered(mid, "Failed to load assets", core.ColorBrightRed)
		s.DrawTextCentered(mid+1, err.Error(), core.ColorGray)
		s.DrawTextCentered(mid+3, "q: quit", core.ColorWhite)
		return
	}
	s.DrawTextCentered(mid, fmt.Sprintf("Loading assets %d/%d", loaded, required), core.ColorBrightCyan)
}
