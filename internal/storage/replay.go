package storage

import (
	"fmt"

	"github.com/vovakirdan/tui-breaker/internal/config"
	"github.com/vovakirdan/tui-breaker/internal/games/breaker"
)

// Summary is a journaled run together with what replaying it produced.
type Summary struct {
	Run     Run
	Outcome breaker.Outcome
	Score   int
	Total   int
	Ticks   uint64
}

// Config decodes the configuration the run was recorded with. Runs saved
// without one use the defaults.
func (r *Run) Config() (config.GameConfig, error) {
	if r.ConfigYAML == "" {
		return config.DefaultGameConfig(), nil
	}
	cfg, err := config.Parse([]byte(r.ConfigYAML))
	if err != nil {
		return config.GameConfig{}, fmt.Errorf("storage: run %d: %w", r.ID, err)
	}
	return cfg, nil
}

// ReplayRun loads a run and re-simulates it headlessly.
func (s *Store) ReplayRun(id int64) (*Run, *breaker.Session, error) {
	run, err := s.LoadRun(id)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := run.Config()
	if err != nil {
		return nil, nil, err
	}
	session, err := breaker.Replay(cfg, run.Recording())
	if err != nil {
		return nil, nil, fmt.Errorf("storage: replay run %d: %w", id, err)
	}
	return run, session, nil
}

// Summaries lists recent runs and replays each to derive its result.
// Scores are never stored, so this is the only way to get them.
func (s *Store) Summaries(player string, limit int) ([]Summary, error) {
	runs, err := s.ListRuns(player, limit)
	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, 0, len(runs))
	for _, r := range runs {
		run, session, err := s.ReplayRun(r.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, Summary{
			Run:     *run,
			Outcome: session.Outcome(),
			Score:   session.Score(),
			Total:   session.Total(),
			Ticks:   session.Tick(),
		})
	}
	return summaries, nil
}
