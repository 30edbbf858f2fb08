package breaker

import (
	"github.com/vovakirdan/tui-breaker/internal/config"
	"github.com/vovakirdan/tui-breaker/internal/core"
)

// Recording is the minimal record needed to reproduce a session: the seed
// plus the intents consumed on every running tick. Config is stored
// alongside by the journal.
type Recording struct {
	Seed   int64
	Frames []core.InputFrame
}

// Record appends the frame consumed by one Step. Frames are cloned since
// hosts reuse their pending frame.
func (r *Recording) Record(in core.InputFrame) {
	r.Frames = append(r.Frames, in.Clone())
}

// Len returns the number of recorded ticks.
func (r *Recording) Len() int {
	return len(r.Frames)
}

// Replay re-simulates a recording headlessly and returns the session in
// its final state. Stepping stops early if the session ends.
func Replay(cfg config.GameConfig, rec Recording) (*Session, error) {
	s, err := NewSession(cfg, rec.Seed)
	if err != nil {
		return nil, err
	}
	s.MarkReady()
	if err := s.Start(); err != nil {
		return nil, err
	}

	for _, frame := range rec.Frames {
		if s.Over() {
			break
		}
		s.Step(frame)
	}
	return s, nil
}
