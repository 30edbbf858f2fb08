package breaker

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-breaker/internal/config"
	"github.com/vovakirdan/tui-breaker/internal/core"
)

func newRunningSession(t *testing.T, seed int64) *Session {
	t.Helper()
	s, err := NewSession(config.DefaultGameConfig(), seed)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	s.MarkReady()
	if err := s.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	return s
}

func countEvents(events []Event, kind EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func TestSessionLifecycle(t *testing.T) {
	s, err := NewSession(config.DefaultGameConfig(), 1)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	if s.Phase() != PhaseLoading {
		t.Fatalf("phase = %s, expected loading", s.Phase())
	}

	if err := s.Start(); !errors.Is(err, ErrNotReady) {
		t.Errorf("Start() while loading = %v, expected ErrNotReady", err)
	}

	before := s.Snapshot()
	s.Step(core.NewInputFrame(core.ActionRight, core.ActionLaunch))
	after := s.Snapshot()
	if before.Hash() != after.Hash() {
		t.Error("Step before Start must not change state")
	}

	s.MarkReady()
	s.MarkReady()
	if s.Phase() != PhaseReady {
		t.Fatalf("phase = %s, expected ready", s.Phase())
	}

	if err := s.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if s.Phase() != PhaseRunning || s.Grid().Len() != 32 {
		t.Fatalf("phase = %s, grid = %d", s.Phase(), s.Grid().Len())
	}

	s.MarkReady()
	if s.Phase() != PhaseRunning {
		t.Error("MarkReady must be ignored once running")
	}
	if err := s.Start(); !errors.Is(err, ErrNotReady) {
		t.Errorf("second Start() = %v, expected ErrNotReady", err)
	}
}

func TestNewSessionInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.GameConfig)
	}{
		{"zero rows", func(c *config.GameConfig) { c.Grid.Rows = 0 }},
		{"zero cols", func(c *config.GameConfig) { c.Grid.Cols = 0 }},
		{"zero paddle width", func(c *config.GameConfig) { c.Paddle.Width = 0 }},
		{"zero ball size", func(c *config.GameConfig) { c.Ball.Size = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.DefaultGameConfig()
			tc.mutate(&cfg)
			if _, err := NewSession(cfg, 1); !errors.Is(err, config.ErrInvalidConfig) {
				t.Errorf("NewSession() = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestLaunchFirstStep(t *testing.T) {
	s := newRunningSession(t, 7)

	res := s.Step(core.NewInputFrame(core.ActionLaunch))

	ball := s.Ball()
	if ball.DY != -3 {
		t.Fatalf("DY = %v, expected -3", ball.DY)
	}
	if ball.X != 320+ball.DX || ball.Y != 277 {
		t.Errorf("ball at (%v, %v), expected (%v, 277)", ball.X, ball.Y, 320+ball.DX)
	}
	if len(res.Events) != 0 {
		t.Errorf("unexpected events: %+v", res.Events)
	}
}

func TestLaunchIsOneShot(t *testing.T) {
	s := newRunningSession(t, 7)
	s.Step(core.NewInputFrame(core.ActionLaunch))

	rngBefore := s.Snapshot().RNGState
	dx := s.Ball().DX
	s.Step(core.NewInputFrame(core.ActionLaunch))

	if s.Snapshot().RNGState != rngBefore {
		t.Error("second launch consumed randomness")
	}
	if s.Ball().DX != dx || s.Ball().Y != 274 {
		t.Errorf("second launch changed the ball: DX %v, Y %v", s.Ball().DX, s.Ball().Y)
	}
}

func TestUnlaunchedBallRidesPaddle(t *testing.T) {
	s := newRunningSession(t, 1)

	s.Step(core.NewInputFrame(core.ActionRight))
	if s.Paddle().X != 286 || s.Ball().X != 326 {
		t.Fatalf("paddle %v, ball %v, expected 286 and 326", s.Paddle().X, s.Ball().X)
	}

	s.Step(core.NewInputFrame(core.ActionLaunch))
	paddleX, ballX := s.Paddle().X, s.Ball().X
	s.Step(core.NewInputFrame())
	if s.Paddle().X != paddleX+6 {
		t.Fatalf("paddle stopped unexpectedly at %v", s.Paddle().X)
	}
	if s.Ball().X != ballX+s.Ball().DX {
		t.Error("launched ball must no longer follow the paddle")
	}
}

func TestInputOrder(t *testing.T) {
	tests := []struct {
		name    string
		actions []core.Action
		wantDX  float64
	}{
		{"last direction wins", []core.Action{core.ActionRight, core.ActionLeft}, -6},
		{"stop after move", []core.Action{core.ActionRight, core.ActionStop}, 0},
		{"move after stop", []core.Action{core.ActionStop, core.ActionRight}, 6},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newRunningSession(t, 1)
			s.Step(core.NewInputFrame(tc.actions...))
			if s.Paddle().DX != tc.wantDX {
				t.Errorf("DX = %v, expected %v", s.Paddle().DX, tc.wantDX)
			}
		})
	}
}

func TestPaddleStopsAtWall(t *testing.T) {
	s := newRunningSession(t, 1)
	for i := 0; i < 200; i++ {
		s.Step(core.NewInputFrame(core.ActionRight))
	}
	p := s.Paddle()
	if p.X+p.Width > 640 {
		t.Errorf("paddle left the playfield: X = %v", p.X)
	}
	if p.X != 538 {
		t.Errorf("paddle X = %v, expected to stop at 538", p.X)
	}
	if s.Ball().X != p.X+40 {
		t.Errorf("carried ball drifted to %v", s.Ball().X)
	}
}

func TestPaddleBounceSpin(t *testing.T) {
	s := newRunningSession(t, 1)
	s.ballLaunched = true
	ball := s.Ball()
	ball.X, ball.Y = 370, 279
	ball.DX, ball.DY = 0, 3

	res := s.Step(core.NewInputFrame())

	if ball.DX != 3 || ball.DY != -3 {
		t.Errorf("velocity = (%v, %v), expected (3, -3)", ball.DX, ball.DY)
	}
	if ball.X != 373 || ball.Y != 276 {
		t.Errorf("ball at (%v, %v), expected (373, 276)", ball.X, ball.Y)
	}
	if countEvents(res.Events, EventSound) != 1 {
		t.Errorf("expected one bump, got %+v", res.Events)
	}
}

func TestWallBounceInvertsOnlyDX(t *testing.T) {
	s := newRunningSession(t, 1)
	s.ballLaunched = true
	ball := s.Ball()
	ball.X, ball.Y = 618, 200
	ball.DX, ball.DY = 3, -3

	res := s.Step(core.NewInputFrame())

	if ball.DX != -3 || ball.DY != -3 {
		t.Errorf("velocity = (%v, %v), expected (-3, -3)", ball.DX, ball.DY)
	}
	if ball.X != 615 || ball.Y != 197 {
		t.Errorf("ball at (%v, %v), expected (615, 197)", ball.X, ball.Y)
	}
	if len(res.Events) != 1 || res.Events[0].Sound != SoundBump {
		t.Errorf("events = %+v, expected one bump", res.Events)
	}
}

func TestDefeat(t *testing.T) {
	s := newRunningSession(t, 1)
	s.ballLaunched = true
	ball := s.Ball()
	ball.X, ball.Y = 100, 338
	ball.DX, ball.DY = 2, 3

	res := s.Step(core.NewInputFrame())

	if s.Outcome() != OutcomeDefeat || !s.Over() || !res.State.GameOver {
		t.Fatalf("outcome = %s, over = %v", s.Outcome(), s.Over())
	}
	if countEvents(res.Events, EventOver) != 1 {
		t.Errorf("expected exactly one over event: %+v", res.Events)
	}
	if ball.DX != 0 || ball.DY != 0 || ball.X != 100 || ball.Y != 338 {
		t.Errorf("ball not frozen: %+v", *ball)
	}

	frozen := s.Snapshot()
	for i := 0; i < 10; i++ {
		res := s.Step(core.NewInputFrame(core.ActionLeft, core.ActionLaunch))
		if len(res.Events) != 0 {
			t.Fatalf("events after defeat: %+v", res.Events)
		}
	}
	after := s.Snapshot()
	if frozen.Hash() != after.Hash() {
		t.Error("state changed after defeat")
	}
}

func TestVictoryOnLastBlock(t *testing.T) {
	s := newRunningSession(t, 1)
	s.ballLaunched = true

	// Clear all but the first block the way play would.
	for i := 1; i < s.Grid().Len(); i++ {
		s.Grid().Blocks[i].Destroy()
		s.score++
	}

	ball := s.Ball()
	ball.X, ball.Y = 70, 45
	ball.DX, ball.DY = 0, -3

	res := s.Step(core.NewInputFrame())

	if s.Score() != 32 || s.Outcome() != OutcomeVictory {
		t.Fatalf("score = %d, outcome = %s", s.Score(), s.Outcome())
	}
	if countEvents(res.Events, EventOver) != 1 || countEvents(res.Events, EventSound) != 1 {
		t.Errorf("events = %+v", res.Events)
	}
	if res.Events[len(res.Events)-1].Outcome != OutcomeVictory {
		t.Errorf("last event = %+v, expected victory", res.Events[len(res.Events)-1])
	}
	// Terminal step returns before integrating.
	if ball.Y != 45 {
		t.Errorf("ball moved on the terminal step: Y = %v", ball.Y)
	}

	snap := s.Snapshot()
	s.Step(core.NewInputFrame(core.ActionRight))
	after := s.Snapshot()
	if snap.Hash() != after.Hash() {
		t.Error("state changed after victory")
	}
}

func TestVictoryOnlyOnFinalHit(t *testing.T) {
	s := newRunningSession(t, 1)
	s.ballLaunched = true
	total := s.Grid().Len()

	// Break blocks bottom row first so the ball never overlaps a block
	// below the one it is aimed at.
	for i := total - 1; i >= 0; i-- {
		block := s.Grid().Blocks[i]
		ball := s.Ball()
		ball.X, ball.Y = block.X+20, block.Y+block.H+1
		ball.DX, ball.DY = 0, -3

		res := s.Step(core.NewInputFrame())
		hits := total - i

		if s.Score() != hits {
			t.Fatalf("hit %d: score = %d", hits, s.Score())
		}
		if !s.Grid().Blocks[i].Destroyed {
			t.Fatalf("hit %d: block %d not destroyed", hits, i)
		}
		if hits < total {
			if s.Over() || countEvents(res.Events, EventOver) != 0 {
				t.Fatalf("session ended on hit %d of %d", hits, total)
			}
			continue
		}
		if s.Outcome() != OutcomeVictory || countEvents(res.Events, EventOver) != 1 {
			t.Errorf("final hit: outcome = %s, events = %+v", s.Outcome(), res.Events)
		}
	}
}

func TestScoreMatchesDestroyedBlocks(t *testing.T) {
	s := newRunningSession(t, 99)
	destroyed := make(map[int]bool)

	for i := 0; i < 5000; i++ {
		in := core.NewInputFrame()
		switch {
		case i == 0:
			in.Set(core.ActionLaunch)
		case i%90 < 40:
			in.Set(core.ActionLeft)
		default:
			in.Set(core.ActionRight)
		}
		res := s.Step(in)

		for idx := range s.Grid().Blocks {
			if s.Grid().Blocks[idx].Destroyed {
				destroyed[idx] = true
			} else if destroyed[idx] {
				t.Fatalf("block %d came back", idx)
			}
		}
		if s.Score() != len(destroyed) {
			t.Fatalf("tick %d: score %d, destroyed %d", i, s.Score(), len(destroyed))
		}
		if s.Score() != s.Grid().Len()-s.Grid().Remaining() {
			t.Fatalf("tick %d: score disagrees with grid", i)
		}
		if res.State.GameOver {
			break
		}
	}
}

func TestSessionDeterminism(t *testing.T) {
	inputs := make([]core.InputFrame, 600)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		switch {
		case i == 5:
			inputs[i].Set(core.ActionLaunch)
		case i%30 < 10:
			inputs[i].Set(core.ActionRight)
		case i%30 < 20:
			inputs[i].Set(core.ActionLeft)
		default:
			inputs[i].Set(core.ActionStop)
		}
	}

	run := func() Snapshot {
		s := newRunningSession(t, 12345)
		for _, in := range inputs {
			if s.Step(in).State.GameOver {
				break
			}
		}
		return s.Snapshot()
	}

	snap1, snap2 := run(), run()
	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if snap1.Score != snap2.Score || snap1.Tick != snap2.Tick {
		t.Errorf("Determinism failed: score %d/%d tick %d/%d", snap1.Score, snap2.Score, snap1.Tick, snap2.Tick)
	}
}

func TestReplayMatchesLive(t *testing.T) {
	cfg := config.DefaultGameConfig()
	s := newRunningSession(t, 2024)
	rec := Recording{Seed: 2024}

	for i := 0; i < 400; i++ {
		in := core.NewInputFrame()
		if i == 3 {
			in.Set(core.ActionLaunch)
		}
		if i%50 == 10 {
			in.Set(core.ActionLeft)
		}
		if i%50 == 30 {
			in.Set(core.ActionStop)
		}
		rec.Record(in)
		if s.Step(in).State.GameOver {
			break
		}
	}

	replayed, err := Replay(cfg, rec)
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}

	live, again := s.Snapshot(), replayed.Snapshot()
	if live.Hash() != again.Hash() {
		t.Errorf("replay diverged: live %d, replay %d", live.Hash(), again.Hash())
	}
}

func TestAnimationStartsAfterLaunch(t *testing.T) {
	s := newRunningSession(t, 1)
	for i := 0; i < 90; i++ {
		s.Step(core.NewInputFrame())
	}
	if s.Ball().Frame != 0 {
		t.Errorf("resting ball animated to frame %d", s.Ball().Frame)
	}

	s.Step(core.NewInputFrame(core.ActionLaunch))
	for i := 0; i < 29; i++ {
		s.Step(core.NewInputFrame())
	}
	if s.Ball().Frame != 1 {
		t.Errorf("frame = %d after one period in flight, expected 1", s.Ball().Frame)
	}
}
