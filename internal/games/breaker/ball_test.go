package breaker

import (
	"math"
	"slices"
	"testing"

	"github.com/vovakirdan/tui-breaker/internal/config"
	"github.com/vovakirdan/tui-breaker/internal/core"
)

func newTestBall() *Ball {
	return NewBall(config.DefaultGameConfig().Ball)
}

func TestBallLaunch(t *testing.T) {
	seen := make(map[float64]bool)
	for seed := int64(1); seed <= 200; seed++ {
		b := newTestBall()
		b.Launch(NewSimpleRNG(seed))

		if b.DY != -3 {
			t.Fatalf("seed %d: DY = %v, expected -3", seed, b.DY)
		}
		if b.DX != math.Trunc(b.DX) || b.DX < -3 || b.DX > 3 {
			t.Fatalf("seed %d: DX = %v, expected whole number in [-3, 3]", seed, b.DX)
		}
		seen[b.DX] = true
	}

	if len(seen) < 5 {
		t.Errorf("launch spread too narrow: %v", seen)
	}
}

func TestBallIntegrate(t *testing.T) {
	b := newTestBall()
	b.Integrate()
	if b.X != 320 || b.Y != 280 {
		t.Errorf("resting ball moved to (%v, %v)", b.X, b.Y)
	}

	b.DX, b.DY = -2, -3
	b.Integrate()
	if b.X != 318 || b.Y != 277 {
		t.Errorf("ball at (%v, %v), expected (318, 277)", b.X, b.Y)
	}
}

func TestBallBounceBlock(t *testing.T) {
	b := newTestBall()
	b.DX, b.DY = 2, -3
	block := &Block{X: 300, Y: 260, W: 60, H: 20}

	b.BounceBlock(block)

	if b.DY != 3 || b.DX != 2 {
		t.Errorf("velocity = (%v, %v), expected (2, 3)", b.DX, b.DY)
	}
	if !block.Destroyed {
		t.Error("block should be destroyed")
	}
}

func TestBallBouncePaddle(t *testing.T) {
	tests := []struct {
		name     string
		ballX    float64
		ballDY   float64
		paddleDX float64
		wantX    float64
		wantDX   float64
		wantDY   float64
	}{
		{"right edge", 370, 3, 0, 370, 3, -3},
		{"center", 320, 3, 0, 320, 0, -3},
		{"left edge", 270, 3, 0, 270, -3, -3},
		{"rising ball keeps velocity", 320, -3, 0, 320, 0, -3},
		{"dragged by moving paddle", 364, 3, 6, 370, 3, -3},
		{"rising ball still dragged", 320, -3, -6, 314, 0, -3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPaddle(config.DefaultGameConfig().Paddle)
			p.DX = tc.paddleDX
			b := newTestBall()
			b.X, b.DY = tc.ballX, tc.ballDY

			b.BouncePaddle(p)

			if b.X != tc.wantX {
				t.Errorf("X = %v, expected %v", b.X, tc.wantX)
			}
			if math.Abs(b.DX-tc.wantDX) > 1e-9 {
				t.Errorf("DX = %v, expected %v", b.DX, tc.wantDX)
			}
			if b.DY != tc.wantDY {
				t.Errorf("DY = %v, expected %v", b.DY, tc.wantDY)
			}
		})
	}
}

func TestBallScreenEdges(t *testing.T) {
	tests := []struct {
		name           string
		x, y, dx, dy   float64
		want           EdgeHit
		wantDX, wantDY float64
	}{
		{"open field", 300, 200, 3, -3, EdgeNone, 3, -3},
		{"right wall", 618, 200, 3, -3, EdgeWall, -3, -3},
		{"left wall", 1, 200, -3, 3, EdgeWall, 3, 3},
		{"ceiling", 300, 2, 1, -3, EdgeCeiling, 1, 3},
		{"floor", 100, 338, 2, 3, EdgeFloor, 0, 0},
		{"corner prefers wall", 1, 1, -3, -3, EdgeWall, 3, -3},
		{"flush with wall", 620, 200, 0, -3, EdgeNone, 0, -3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := newTestBall()
			b.X, b.Y, b.DX, b.DY = tc.x, tc.y, tc.dx, tc.dy

			got := b.ResolveScreenEdges(640, 360)

			if got != tc.want {
				t.Errorf("edge = %s, expected %s", got, tc.want)
			}
			if b.DX != tc.wantDX || b.DY != tc.wantDY {
				t.Errorf("velocity = (%v, %v), expected (%v, %v)", b.DX, b.DY, tc.wantDX, tc.wantDY)
			}
			if b.X != tc.x || b.Y != tc.y {
				t.Error("edge resolution must not move the ball")
			}
		})
	}
}

func TestBallCollidesUsesNextPosition(t *testing.T) {
	b := newTestBall()
	paddle := core.NewRect(280, 300, 100, 14)

	// Resting on the paddle: touching, not overlapping.
	if b.Collides(paddle) {
		t.Error("resting ball should not collide with the paddle below it")
	}

	b.DY = 3
	if !b.Collides(paddle) {
		t.Error("descending ball should collide on its next position")
	}
}

func TestBallAnimate(t *testing.T) {
	b := newTestBall()

	for i := 0; i < 29; i++ {
		b.Animate()
	}
	if b.Frame != 0 {
		t.Fatalf("frame advanced early: %d", b.Frame)
	}
	b.Animate()
	if b.Frame != 1 {
		t.Fatalf("frame = %d after one period, expected 1", b.Frame)
	}

	for i := 0; i < 3*30; i++ {
		b.Animate()
	}
	if b.Frame != 0 {
		t.Errorf("frame = %d after four periods, expected wrap to 0", b.Frame)
	}
}

func TestIntBetween(t *testing.T) {
	tests := []struct {
		name   string
		lo, hi float64
		values []float64 // Every integer the draw may produce
	}{
		{"whole bounds", -3, 3, []float64{-3, -2, -1, 0, 1, 2, 3}},
		{"fractional bounds", -2.5, 2.5, []float64{-2, -1, 0, 1, 2}},
		{"below one", -0.5, 0.5, []float64{0}},
		{"zero", 0, 0, []float64{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := NewSimpleRNG(42)
			counts := make(map[float64]int)
			const draws = 7000
			for i := 0; i < draws; i++ {
				v := rng.IntBetween(tt.lo, tt.hi)
				if !slices.Contains(tt.values, v) {
					t.Fatalf("IntBetween(%v, %v) = %v, expected one of %v", tt.lo, tt.hi, v, tt.values)
				}
				counts[v]++
			}

			// Each value should get roughly an equal share.
			expected := draws / len(tt.values)
			for _, v := range tt.values {
				if c := counts[v]; c < expected*3/4 || c > expected*5/4 {
					t.Errorf("value %v drawn %d times, expected about %d (%v)", v, c, expected, counts)
				}
			}
		})
	}
}

func TestBallLaunchFractionalSpeed(t *testing.T) {
	for seed := int64(1); seed <= 500; seed++ {
		b := newTestBall()
		b.Speed = 2.5
		b.Launch(NewSimpleRNG(seed))

		if b.DY != -2.5 {
			t.Fatalf("seed %d: DY = %v, expected -2.5", seed, b.DY)
		}
		if b.DX != math.Trunc(b.DX) || b.DX < -2 || b.DX > 2 {
			t.Fatalf("seed %d: DX = %v, expected whole number in [-2, 2]", seed, b.DX)
		}
	}
}
