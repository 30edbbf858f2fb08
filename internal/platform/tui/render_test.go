package tui

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-breaker/internal/assets"
	"github.com/vovakirdan/tui-breaker/internal/config"
	"github.com/vovakirdan/tui-breaker/internal/core"
	"github.com/vovakirdan/tui-breaker/internal/games/breaker"
)

func testBundle() *assets.Bundle {
	return &assets.Bundle{
		Sprites: map[string]assets.Sprite{
			assets.SpriteBackground: {Frames: []rune{'.'}, Color: core.ColorGray},
			assets.SpriteBall:       {Frames: []rune{'o', 'O'}, Color: core.ColorYellow},
			assets.SpritePlatform:   {Frames: []rune{'='}, Color: core.ColorCyan},
			assets.SpriteBlock:      {Frames: []rune{'#'}, Color: core.ColorOrange},
		},
	}
}

func TestLayoutCell(t *testing.T) {
	l := NewLayout(82, 23, config.Playfield{Width: 640, Height: 360})
	if l.Cols != 80 || l.Rows != 20 {
		t.Fatalf("interior = %dx%d, expected 80x20", l.Cols, l.Rows)
	}

	tests := []struct {
		name   string
		x, y   float64
		cx, cy int
	}{
		{"origin", 0, 0, 1, 2},
		{"center", 320, 180, 41, 12},
		{"far corner", 639.9, 359.9, 80, 21},
		{"clamped past edge", 1000, -50, 80, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cx, cy := l.Cell(tt.x, tt.y)
			if cx != tt.cx || cy != tt.cy {
				t.Errorf("Cell(%v, %v) = (%d, %d), expected (%d, %d)", tt.x, tt.y, cx, cy, tt.cx, tt.cy)
			}
		})
	}
}

func TestLayoutSpanCoversOneCell(t *testing.T) {
	l := NewLayout(82, 23, config.Playfield{Width: 640, Height: 360})
	_, _, w, h := l.Span(core.NewRect(100, 100, 1, 1))
	if w != 1 || h != 1 {
		t.Errorf("tiny rect spans %dx%d, expected 1x1", w, h)
	}
}

func TestDrawSession(t *testing.T) {
	s, err := breaker.NewSession(config.DefaultGameConfig(), 1)
	if err != nil {
		t.Fatal(err)
	}
	s.MarkReady()
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}

	screen := core.NewScreen(82, 23)
	layout := NewLayout(82, 23, s.Config().Playfield)
	DrawSession(screen, layout, s.Snapshot(), testBundle())

	if hud := screen.Row(0); !strings.Contains(hud, "Score: 0") || !strings.Contains(hud, "Blocks: 32") {
		t.Errorf("HUD = %q, expected score and block count", hud)
	}

	// Ball center (330, 290) maps to cell (42, 18).
	if got := screen.GetCell(42, 18).Rune; got != 'o' {
		t.Errorf("ball cell = %q, expected 'o'", got)
	}

	blocks := 0
	for y := 0; y < screen.Height(); y++ {
		blocks += strings.Count(screen.Row(y), "#")
	}
	if blocks == 0 {
		t.Error("no blocks drawn")
	}

	if !strings.Contains(screen.String(), "press space to launch") {
		t.Error("launch hint missing before launch")
	}
}

func TestDrawSessionOutcome(t *testing.T) {
	snap := breaker.Snapshot{
		Phase:   breaker.PhaseOver,
		Outcome: breaker.OutcomeDefeat,
		Paddle:  core.NewRect(280, 300, 100, 14),
		Ball:    core.NewRect(100, 340, 20, 20),
	}
	screen := core.NewScreen(82, 23)
	DrawSession(screen, NewLayout(82, 23, config.Playfield{Width: 640, Height: 360}), snap, testBundle())

	out := screen.String()
	if !strings.Contains(out, "GAME OVER!") {
		t.Error("defeat message missing")
	}
	if !strings.Contains(out, "r: restart") {
		t.Error("restart hint missing")
	}
}

func TestDrawLoading(t *testing.T) {
	screen := core.NewScreen(40, 10)

	DrawLoading(screen, 3, 7, nil)
	if !strings.Contains(screen.String(), "Loading assets 3/7") {
		t.Error("progress missing from loading screen")
	}

	DrawLoading(screen, 3, 7, errors.New("boom"))
	out := screen.String()
	if !strings.Contains(out, "Failed to load assets") || !strings.Contains(out, "boom") {
		t.Error("loading error not shown")
	}
}
