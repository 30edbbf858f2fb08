package breaker

import (
	"github.com/vovakirdan/tui-breaker/internal/config"
	"github.com/vovakirdan/tui-breaker/internal/core"
)

// EdgeHit reports which playfield boundary the ball reached this tick.
type EdgeHit int

const (
	EdgeNone    EdgeHit = iota
	EdgeWall            // Left or right wall, horizontal velocity inverted
	EdgeCeiling         // Top edge, ball sent back down
	EdgeFloor           // Bottom edge, ball stopped: the player lost
)

// String returns a human-readable name for the edge.
func (e EdgeHit) String() string {
	switch e {
	case EdgeWall:
		return "wall"
	case EdgeCeiling:
		return "ceiling"
	case EdgeFloor:
		return "floor"
	default:
		return "none"
	}
}

// Ball is a square ball moving in fixed per-tick steps.
type Ball struct {
	X, Y   float64 // Top-left corner
	Size   float64 // Width and height
	DX, DY float64 // Velocity per tick
	Speed  float64 // Base speed

	Frame       int // Current sprite animation frame
	frames      int
	framePeriod int
	frameTicks  int
}

// NewBall places a resting ball at the configured start position.
func NewBall(cfg config.Ball) *Ball {
	return &Ball{
		X:           cfg.X,
		Y:           cfg.Y,
		Size:        cfg.Size,
		Speed:       cfg.Speed,
		frames:      cfg.Frames,
		framePeriod: cfg.FramePeriod,
	}
}

// Rect returns the ball's current bounding box.
func (b *Ball) Rect() core.Rect {
	return core.NewRect(b.X, b.Y, b.Size, b.Size)
}

// Next returns the bounding box the ball will occupy after this tick.
func (b *Ball) Next() core.Rect {
	return core.Projected(b.Rect(), b.DX, b.DY)
}

// Collides tests the projected ball against a static rectangle.
func (b *Ball) Collides(r core.Rect) bool {
	return b.Next().Intersects(r)
}

// Launch sends the ball upward with a random whole-number horizontal
// velocity in [-Speed, +Speed].
func (b *Ball) Launch(rng *SimpleRNG) {
	b.DY = -b.Speed
	b.DX = rng.IntBetween(-b.Speed, b.Speed)
}

// Integrate advances the position by one step of velocity.
func (b *Ball) Integrate() {
	if b.DX != 0 {
		b.X += b.DX
	}
	if b.DY != 0 {
		b.Y += b.DY
	}
}

// BounceBlock reflects the ball vertically off a block and destroys it.
// Blocks never impart spin.
func (b *Ball) BounceBlock(block *Block) {
	b.DY = -b.DY
	block.Destroy()
}

// BouncePaddle handles contact with the paddle. A moving paddle drags the
// ball along first; then a descending ball is sent back up with spin
// taken from where it touched the paddle. A ball already rising is left
// alone so the same contact is never resolved twice.
func (b *Ball) BouncePaddle(p *Paddle) {
	if p.DX != 0 {
		b.X += p.DX
	}

	if b.DY > 0 {
		b.DY = -b.Speed
		touchX := b.X + b.Size/2
		b.DX = b.Speed * p.TouchOffset(touchX)
	}
}

// ResolveScreenEdges checks the projected ball against the playfield.
// At most one edge is handled per tick, walls first, then ceiling, then floor.
func (b *Ball) ResolveScreenEdges(width, height float64) EdgeHit {
	next := b.Next()

	switch {
	case next.X < 0 || next.Right() > width:
		b.DX = -b.DX
		return EdgeWall
	case next.Y < 0:
		b.DY = b.Speed
		return EdgeCeiling
	case next.Bottom() > height:
		b.DX = 0
		b.DY = 0
		return EdgeFloor
	}
	return EdgeNone
}

// Animate advances the sprite frame once every frame period ticks.
func (b *Ball) Animate() {
	if b.frames <= 1 || b.framePeriod <= 0 {
		return
	}
	b.frameTicks++
	if b.frameTicks < b.framePeriod {
		return
	}
	b.frameTicks = 0
	b.Frame++
	if b.Frame >= b.frames {
		b.Frame = 0
	}
}
