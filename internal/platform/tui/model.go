package tui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breaker/internal/assets"
	"github.com/vovakirdan/tui-breaker/internal/audio"
	"github.com/vovakirdan/tui-breaker/internal/config"
	"github.com/vovakirdan/tui-breaker/internal/core"
	"github.com/vovakirdan/tui-breaker/internal/games/breaker"
	"github.com/vovakirdan/tui-breaker/internal/storage"
)

// Options configures a game screen.
type Options struct {
	Game     config.GameConfig
	Manifest assets.Manifest
	Runtime  core.RuntimeConfig

	// Player names journaled runs. Store may be nil to skip journaling.
	Player string
	Store  *storage.Store

	Audio       audio.Player // nil plays nothing
	Logger      *log.Logger  // nil discards
	LoadTimeout time.Duration

	// Playback replays recorded inputs instead of reading the keyboard.
	Playback *breaker.Recording
}

type assetsReadyMsg struct {
	bundle *assets.Bundle
}

type assetsFailedMsg struct {
	err error
}

// soundLoader is implemented by players that need the synthesised buffers.
type soundLoader interface {
	Load(id string, buf audio.Buffer)
}

// Model is the Bubble Tea model for one breaker screen.
type Model struct {
	opts    Options
	logger  *log.Logger
	player  audio.Player
	session *breaker.Session
	loader  *assets.Loader
	bundle  *assets.Bundle
	screen  *core.Screen
	layout  Layout
	keys    *KeyMapper
	help    help.Model

	pending core.InputFrame
	release releaseTimer

	recording *breaker.Recording
	cursor    int // Next playback frame
	saved     bool

	err      error
	quitting bool
}

// NewModel creates a model whose session waits for assets to load.
func NewModel(opts Options) (Model, error) {
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if opts.Playback != nil {
		opts.Runtime.Seed = opts.Playback.Seed
	}
	if opts.LoadTimeout <= 0 {
		opts.LoadTimeout = 10 * time.Second
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	var player audio.Player = audio.Nop{}
	if opts.Audio != nil {
		player = opts.Audio
	}

	session, err := breaker.NewSession(opts.Game, opts.Runtime.Seed)
	if err != nil {
		return Model{}, err
	}

	h := help.New()
	h.ShowAll = false

	return Model{
		opts:      opts,
		logger:    logger,
		player:    player,
		session:   session,
		loader:    assets.NewLoader(logger, opts.Game.Audio.Volume),
		screen:    core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH-1),
		layout:    NewLayout(opts.Runtime.ScreenW, opts.Runtime.ScreenH-1, opts.Game.Playfield),
		keys:      NewKeyMapper(),
		help:      h,
		pending:   core.NewInputFrame(),
		release:   newReleaseTimer(opts.Game.Controls.ReleaseTicks),
		recording: &breaker.Recording{Seed: opts.Runtime.Seed},
	}, nil
}

// Init starts asset loading and the tick loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.preloadCmd(), tickCmd(m.opts.Runtime.TickRate))
}

// preloadCmd waits for the loader's single ready callback, bounded by
// the load timeout since a failed asset never reports.
func (m Model) preloadCmd() tea.Cmd {
	loader, manifest, timeout := m.loader, m.opts.Manifest, m.opts.LoadTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		ready := make(chan *assets.Bundle, 1)
		loader.Preload(ctx, manifest, func(b *assets.Bundle) { ready <- b })

		select {
		case b := <-ready:
			return assetsReadyMsg{bundle: b}
		case <-ctx.Done():
			loaded, required := loader.Progress()
			return assetsFailedMsg{err: fmt.Errorf("%d of %d assets loaded: %w", loaded, required, ctx.Err())}
		}
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height-1)
		m.layout = NewLayout(msg.Width, msg.Height-1, m.opts.Game.Playfield)
		m.help.Width = msg.Width
		return m, nil

	case assetsReadyMsg:
		return m.handleReady(msg.bundle)

	case assetsFailedMsg:
		m.logger.Error("asset loading stalled", "err", msg.err)
		m.err = msg.err
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleReady wires the loaded assets in and starts the session.
func (m Model) handleReady(bundle *assets.Bundle) (tea.Model, tea.Cmd) {
	m.bundle = bundle
	if sl, ok := m.player.(soundLoader); ok {
		for id, buf := range bundle.Sounds {
			sl.Load(id, buf)
		}
	}

	m.session.MarkReady()
	if err := m.session.Start(); err != nil {
		m.err = err
		return m, nil
	}
	m.logger.Debug("session started", "seed", m.opts.Runtime.Seed, "player", m.opts.Player)
	return m, nil
}

// handleKey processes keyboard input. Keys only queue intents; the next
// tick consumes them.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, quit := m.keys.MapKey(msg)
	if quit {
		m.saveRun()
		m.quitting = true
		return m, tea.Quit
	}

	if key.Matches(msg, m.keys.Keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.session.Over() && key.Matches(msg, m.keys.Keys.Restart) {
		return m.restart()
	}

	// A finished session never steps again, so intents would only pile up.
	if m.opts.Playback != nil || m.session.Over() {
		return m, nil
	}

	m.release.Press()
	m.pending.Set(action)
	return m, nil
}

// restart replaces the finished session with a fresh one.
func (m Model) restart() (tea.Model, tea.Cmd) {
	m.saveRun()

	seed := time.Now().UnixNano()
	if m.opts.Playback != nil {
		seed = m.opts.Playback.Seed
	}
	session, err := breaker.NewSession(m.opts.Game, seed)
	if err != nil {
		m.err = err
		return m, nil
	}
	session.MarkReady()
	if err := session.Start(); err != nil {
		m.err = err
		return m, nil
	}

	m.session = session
	m.recording = &breaker.Recording{Seed: seed}
	m.cursor = 0
	m.saved = false
	m.pending.Clear()
	m.release = newReleaseTimer(m.opts.Game.Controls.ReleaseTicks)
	return m, nil
}

// handleTick runs exactly one simulation step and schedules the next tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	next := tickCmd(m.opts.Runtime.TickRate)
	if m.session.Phase() != breaker.PhaseRunning {
		return m, next
	}

	var in core.InputFrame
	if m.opts.Playback != nil {
		if m.cursor >= m.opts.Playback.Len() {
			return m, next
		}
		in = m.opts.Playback.Frames[m.cursor]
		m.cursor++
	} else {
		if m.release.Tick() {
			m.pending.Set(core.ActionStop)
		}
		in = m.pending
		m.recording.Record(in)
	}

	result := m.session.Step(in)
	m.pending.Clear()

	for _, ev := range result.Events {
		switch ev.Kind {
		case breaker.EventSound:
			m.player.Play(ev.Sound)
		case breaker.EventOver:
			m.finish(ev.Outcome)
		}
	}

	return m, next
}

// finish reacts to the end of a session.
func (m *Model) finish(outcome breaker.Outcome) {
	switch outcome {
	case breaker.OutcomeVictory:
		m.player.Play(breaker.SoundVictory)
	case breaker.OutcomeDefeat:
		m.player.Play(breaker.SoundDefeat)
	}
	m.logger.Info("session over", "outcome", outcome, "score", m.session.Score(), "ticks", m.session.Tick())
	m.saveRun()
}

// saveRun journals the live recording once.
func (m *Model) saveRun() {
	if m.saved || m.opts.Store == nil || m.opts.Playback != nil || m.recording.Len() == 0 {
		return
	}
	m.saved = true

	cfgYAML, err := config.Marshal(m.opts.Game)
	if err != nil {
		m.logger.Warn("cannot encode config for journal", "err", err)
		return
	}
	id, err := m.opts.Store.SaveRun(m.opts.Player, cfgYAML, *m.recording)
	if err != nil {
		m.logger.Warn("cannot journal run", "err", err)
		return
	}
	m.logger.Debug("run journaled", "id", id, "frames", m.recording.Len())
}

// Session returns the live session.
func (m Model) Session() *breaker.Session {
	return m.session
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.bundle == nil || m.err != nil {
		loaded, required := m.loader.Progress()
		DrawLoading(m.screen, loaded, required, m.err)
		return RenderScreen(m.screen)
	}

	DrawSession(m.screen, m.layout, m.session.Snapshot(), m.bundle)
	footer := m.help.View(m.keys.Keys)
	if m.opts.Playback != nil {
		footer = fmt.Sprintf("replay %d/%d  %s", m.cursor, m.opts.Playback.Len(), footer)
	}
	return RenderScreen(m.screen) + "\n" + footer
}

// Run starts the Bubble Tea program for a game screen.
func Run(opts Options) (*breaker.Session, error) {
	model, err := NewModel(opts)
	if err != nil {
		return nil, err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	if fm, ok := final.(Model); ok {
		return fm.Session(), nil
	}
	return model.Session(), nil
}
