package breaker

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-breaker/internal/config"
	"github.com/vovakirdan/tui-breaker/internal/core"
)

// Phase is the lifecycle stage of a session.
type Phase int

const (
	PhaseLoading Phase = iota // Waiting for assets
	PhaseReady                // Assets loaded, not started
	PhaseRunning              // Simulation advancing every tick
	PhaseOver                 // Terminal, see Outcome
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseRunning:
		return "running"
	case PhaseOver:
		return "over"
	default:
		return "unknown"
	}
}

// Outcome is how a finished session ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeVictory
	OutcomeDefeat
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	default:
		return "none"
	}
}

// Message is the text shown to the player when the session ends.
func (o Outcome) Message() string {
	switch o {
	case OutcomeVictory:
		return "VICTORY!"
	case OutcomeDefeat:
		return "GAME OVER!"
	default:
		return ""
	}
}

// ErrNotReady is returned by Start when assets have not finished loading
// or the session already started.
var ErrNotReady = errors.New("breaker: session not ready")

// StepResult is what a single Step reports back to the host.
type StepResult struct {
	State  core.GameState
	Events []Event
}

// Session owns one playthrough: the ball, the paddle, the block grid and
// the score. It is not safe for concurrent use; the host steps it from a
// single loop.
type Session struct {
	cfg config.GameConfig
	rng *SimpleRNG

	phase   Phase
	outcome Outcome

	ball         *Ball
	paddle       *Paddle
	grid         *Grid
	ballLaunched bool

	score int
	total int
	tick  uint64
}

// NewSession validates cfg and returns a session waiting for its assets.
func NewSession(cfg config.GameConfig, seed int64) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Session{
		cfg:    cfg,
		rng:    NewSimpleRNG(seed),
		phase:  PhaseLoading,
		ball:   NewBall(cfg.Ball),
		paddle: NewPaddle(cfg.Paddle),
		total:  cfg.Grid.Total(),
	}, nil
}

// MarkReady moves a loading session to Ready. Calls in any other phase
// are ignored.
func (s *Session) MarkReady() {
	if s.phase == PhaseLoading {
		s.phase = PhaseReady
	}
}

// Start builds the block grid and begins the simulation.
func (s *Session) Start() error {
	if s.phase != PhaseReady {
		return fmt.Errorf("%w: phase is %s", ErrNotReady, s.phase)
	}

	grid, err := BuildGrid(s.cfg.Grid)
	if err != nil {
		return err
	}
	s.grid = grid
	s.total = grid.Len()
	s.phase = PhaseRunning
	return nil
}

// Step advances the simulation by one tick. It does nothing unless the
// session is running.
func (s *Session) Step(in core.InputFrame) StepResult {
	if s.phase != PhaseRunning {
		return StepResult{State: s.State()}
	}

	s.tick++
	s.applyInput(in)

	var events []Event

	for i := range s.grid.Blocks {
		block := &s.grid.Blocks[i]
		if block.Destroyed || !s.ball.Collides(block.Rect()) {
			continue
		}
		s.ball.BounceBlock(block)
		s.score++
		events = append(events, soundEvent(SoundBump))

		if s.score == s.total {
			events = append(events, s.finish(OutcomeVictory))
			return StepResult{State: s.State(), Events: events}
		}
	}

	if s.ball.Collides(s.paddle.Rect()) {
		s.ball.BouncePaddle(s.paddle)
		events = append(events, soundEvent(SoundBump))
	}

	edge := s.ball.ResolveScreenEdges(s.cfg.Playfield.Width, s.cfg.Playfield.Height)
	if edge != EdgeNone {
		events = append(events, soundEvent(SoundBump))
	}
	if edge == EdgeFloor {
		events = append(events, s.finish(OutcomeDefeat))
		return StepResult{State: s.State(), Events: events}
	}

	s.paddle.ResolveScreenEdges(s.cfg.Playfield.Width)

	moved := s.paddle.Integrate()
	if !s.ballLaunched && moved != 0 {
		s.ball.X += moved
	}
	s.ball.Integrate()

	if s.ballLaunched {
		s.ball.Animate()
	}

	return StepResult{State: s.State(), Events: events}
}

// applyInput consumes the frame's intents in arrival order.
func (s *Session) applyInput(in core.InputFrame) {
	for _, action := range in.Actions {
		switch action {
		case core.ActionLeft:
			s.paddle.SetDirection(DirLeft)
		case core.ActionRight:
			s.paddle.SetDirection(DirRight)
		case core.ActionStop:
			s.paddle.Stop()
		case core.ActionLaunch:
			if !s.ballLaunched {
				s.ball.Launch(s.rng)
				s.ballLaunched = true
			}
		}
	}
}

func (s *Session) finish(o Outcome) Event {
	s.phase = PhaseOver
	s.outcome = o
	return overEvent(o)
}

// Phase returns the current lifecycle stage.
func (s *Session) Phase() Phase { return s.phase }

// Outcome returns how the session ended, or OutcomeNone while it is live.
func (s *Session) Outcome() Outcome { return s.outcome }

// Over reports whether the session reached a terminal state.
func (s *Session) Over() bool { return s.phase == PhaseOver }

// Score returns the number of blocks destroyed.
func (s *Session) Score() int { return s.score }

// Total returns the number of blocks in the grid.
func (s *Session) Total() int { return s.total }

// Tick returns the number of steps simulated while running.
func (s *Session) Tick() uint64 { return s.tick }

// Launched reports whether the ball has left the paddle.
func (s *Session) Launched() bool { return s.ballLaunched }

// Ball returns the ball. Callers must not mutate it.
func (s *Session) Ball() *Ball { return s.ball }

// Paddle returns the paddle. Callers must not mutate it.
func (s *Session) Paddle() *Paddle { return s.paddle }

// Grid returns the block grid, or nil before Start.
func (s *Session) Grid() *Grid { return s.grid }

// Config returns the configuration the session was built with.
func (s *Session) Config() config.GameConfig { return s.cfg }

// State returns the summary reported to hosts.
func (s *Session) State() core.GameState {
	return core.GameState{Score: s.score, GameOver: s.phase == PhaseOver}
}
