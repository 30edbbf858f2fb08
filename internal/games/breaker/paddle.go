package breaker

import (
	"github.com/vovakirdan/tui-breaker/internal/config"
	"github.com/vovakirdan/tui-breaker/internal/core"
)

// Direction is a logical horizontal movement intent.
type Direction int

const (
	DirNone Direction = iota
	DirLeft
	DirRight
)

// Paddle is the player's platform. Y never changes during a session.
type Paddle struct {
	X, Y          float64
	Width, Height float64
	DX            float64 // -Speed, 0 or +Speed
	Speed         float64
}

// NewPaddle places a stationary paddle at the configured start position.
func NewPaddle(cfg config.Paddle) *Paddle {
	return &Paddle{
		X:      cfg.X,
		Y:      cfg.Y,
		Width:  cfg.Width,
		Height: cfg.Height,
		Speed:  cfg.Speed,
	}
}

// Rect returns the paddle's bounding box.
func (p *Paddle) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.Width, p.Height)
}

// SetDirection starts moving left or right. Other values are ignored.
func (p *Paddle) SetDirection(dir Direction) {
	switch dir {
	case DirLeft:
		p.DX = -p.Speed
	case DirRight:
		p.DX = p.Speed
	}
}

// Stop halts the paddle whatever direction it was moving.
func (p *Paddle) Stop() {
	p.DX = 0
}

// TouchOffset maps an absolute x coordinate of a contact point to [-1, 1]:
// -1 at the left edge, 0 at the center, +1 at the right edge.
func (p *Paddle) TouchOffset(touchX float64) float64 {
	diff := (p.X + p.Width) - touchX
	offset := p.Width - diff
	return 2*offset/p.Width - 1
}

// ResolveScreenEdges zeroes the velocity if the next step would leave the
// playfield. Position is never clipped, so the paddle can move away from
// the wall on the very next tick.
func (p *Paddle) ResolveScreenEdges(width float64) {
	x := p.X + p.DX
	if x < 0 || x+p.Width > width {
		p.DX = 0
	}
}

// Integrate moves the paddle one step and returns the distance travelled.
func (p *Paddle) Integrate() float64 {
	if p.DX == 0 {
		return 0
	}
	p.X += p.DX
	return p.DX
}
