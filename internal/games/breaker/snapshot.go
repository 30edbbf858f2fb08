package breaker

import (
	"math"

	"github.com/vovakirdan/tui-breaker/internal/core"
)

// Snapshot is the read model handed to renderers and replay tooling.
// Uses value types only so it can be kept after the session moves on.
type Snapshot struct {
	Tick    uint64
	Phase   Phase
	Outcome Outcome
	Score   int
	Total   int

	Ball      core.Rect
	BallDX    float64
	BallDY    float64
	BallFrame int
	Launched  bool

	Paddle   core.Rect
	PaddleDX float64

	// Blocks still standing, in layout order.
	Blocks []core.Rect

	RNGState uint64
}

// Snapshot captures the current session state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:      s.tick,
		Phase:     s.phase,
		Outcome:   s.outcome,
		Score:     s.score,
		Total:     s.total,
		Ball:      s.ball.Rect(),
		BallDX:    s.ball.DX,
		BallDY:    s.ball.DY,
		BallFrame: s.ball.Frame,
		Launched:  s.ballLaunched,
		Paddle:    s.paddle.Rect(),
		PaddleDX:  s.paddle.DX,
		RNGState:  s.rng.state,
	}

	if s.grid != nil {
		alive := s.grid.Alive()
		snap.Blocks = make([]core.Rect, len(alive))
		for i, b := range alive {
			snap.Blocks[i] = b.Rect()
		}
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Phase)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Outcome) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)   //#nosec G115 -- hash computation
	h = hashRect(h, snap.Ball)
	h = h*31 + math.Float64bits(snap.BallDX)
	h = h*31 + math.Float64bits(snap.BallDY)
	h = h*31 + uint64(snap.BallFrame) //#nosec G115 -- hash computation
	if snap.Launched {
		h = h*31 + 1
	}
	h = hashRect(h, snap.Paddle)
	h = h*31 + math.Float64bits(snap.PaddleDX)

	for _, b := range snap.Blocks {
		h = hashRect(h, b)
	}

	h = h*31 + snap.RNGState
	return h
}

func hashRect(h uint64, r core.Rect) uint64 {
	h = h*31 + math.Float64bits(r.X)
	h = h*31 + math.Float64bits(r.Y)
	h = h*31 + math.Float64bits(r.W)
	h = h*31 + math.Float64bits(r.H)
	return h
}
