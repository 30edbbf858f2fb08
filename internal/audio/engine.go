package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breaker/internal/core"
)

const (
	mixInterval    = 20 * time.Millisecond
	bytesPerSample = 4 // s16le, two channels
	queueSize      = 32
)

// Engine mixes loaded buffers and streams them to a backend process.
// Without a backend it runs in silent mode and Play is a no-op.
type Engine struct {
	logger *log.Logger

	mu     sync.RWMutex
	sounds map[string]Buffer

	cmd   *exec.Cmd
	stdin io.WriteCloser

	queue   chan string
	stop    chan struct{}
	running atomic.Bool
	silent  atomic.Bool
	played  atomic.Uint64
	dropped atomic.Uint64
	wg      sync.WaitGroup
}

// NewEngine creates a stopped engine.
func NewEngine(logger *log.Logger) *Engine {
	return &Engine{
		logger: logger,
		sounds: make(map[string]Buffer),
		queue:  make(chan string, queueSize),
		stop:   make(chan struct{}),
	}
}

// Load registers a rendered sound under id, replacing any previous one.
func (e *Engine) Load(id string, buf Buffer) {
	e.mu.Lock()
	e.sounds[id] = buf
	e.mu.Unlock()
}

// Start launches the backend and the mixer. A missing or broken backend
// is not an error: the engine falls back to silent mode.
func (e *Engine) Start() error {
	if e.running.Load() {
		return fmt.Errorf("audio: engine already running")
	}

	backend, err := DetectBackend()
	if err != nil {
		e.logger.Info("no audio backend, running silent")
		e.silent.Store(true)
		e.running.Store(true)
		return nil
	}

	cmd := exec.Command(backend.Path, backend.Args...) //#nosec G204 -- fixed backend list
	stdin, err := cmd.StdinPipe()
	if err == nil {
		err = cmd.Start()
	}
	if err != nil {
		e.logger.Warn("audio backend failed, running silent", "backend", backend.Name, "err", err)
		e.silent.Store(true)
		e.running.Store(true)
		return nil
	}

	e.cmd = cmd
	e.stdin = stdin
	e.logger.Debug("audio backend started", "backend", backend.Name)

	e.wg.Add(1)
	go e.monitor()
	e.startMixer(stdin)
	return nil
}

// startMixer runs the mix loop against w.
func (e *Engine) startMixer(w io.Writer) {
	e.running.Store(true)
	e.wg.Add(1)
	go e.loop(w)
}

// monitor switches to silent mode if the backend exits early.
func (e *Engine) monitor() {
	defer e.wg.Done()
	if err := e.cmd.Wait(); err != nil && e.running.Load() {
		e.logger.Debug("audio backend exited", "err", err)
		e.silent.Store(true)
	}
}

// Play queues id for playback. It never blocks; requests beyond the queue
// size are dropped.
func (e *Engine) Play(id string) {
	if !e.running.Load() || e.silent.Load() {
		return
	}
	select {
	case e.queue <- id:
	default:
		e.dropped.Add(1)
	}
}

// Silent reports whether sound output is unavailable.
func (e *Engine) Silent() bool {
	return e.silent.Load()
}

// Stats returns how many sounds were mixed and how many were dropped.
func (e *Engine) Stats() (played, dropped uint64) {
	return e.played.Load(), e.dropped.Load()
}

// Stop shuts the mixer and backend down. Safe to call more than once.
func (e *Engine) Stop() {
	if !e.running.CompareAndSwap(true, false) {
		return
	}
	close(e.stop)
	if e.stdin != nil {
		_ = e.stdin.Close()
	}
	if e.cmd != nil && e.cmd.Process != nil {
		_ = e.cmd.Process.Kill()
	}
	e.wg.Wait()
}

type voice struct {
	buf Buffer
	pos int
}

func (e *Engine) loop(w io.Writer) {
	defer e.wg.Done()

	ticker := time.NewTicker(mixInterval)
	defer ticker.Stop()

	samples := SampleRate.N(mixInterval)
	mix := make([]float64, samples)
	out := make([]byte, samples*bytesPerSample)
	var active []voice

	for {
		select {
		case <-e.stop:
			return

		case id := <-e.queue:
			e.mu.RLock()
			buf := e.sounds[id]
			e.mu.RUnlock()
			if len(buf) > 0 {
				active = append(active, voice{buf: buf})
				e.played.Add(1)
			}

		case <-ticker.C:
			clear(mix)
			active = mixVoices(active, mix)
			floatToBytes(mix, out)

			if _, err := w.Write(out); err != nil {
				e.logger.Debug("audio pipe closed", "err", err)
				e.silent.Store(true)
				return
			}
		}
	}
}

// mixVoices adds each voice's next block into mix and returns the voices
// that still have samples left.
func mixVoices(active []voice, mix []float64) []voice {
	remaining := active[:0]
	for _, v := range active {
		for j := 0; j < len(mix) && v.pos < len(v.buf); j++ {
			mix[j] += v.buf[v.pos]
			v.pos++
		}
		if v.pos < len(v.buf) {
			remaining = append(remaining, v)
		}
	}
	return remaining
}

// floatToBytes converts mono samples to interleaved stereo s16le with a
// soft limiter above 0.8.
func floatToBytes(in []float64, out []byte) {
	for i, v := range in {
		if v > 0.8 {
			v = 0.8 + 0.2*(1.0-1.0/(1.0+(v-0.8)*5.0))
		} else if v < -0.8 {
			v = -0.8 - 0.2*(1.0-1.0/(1.0+(-v-0.8)*5.0))
		}
		v = core.ClampF(v, -1, 1)

		s := uint16(int16(v * 32767)) //#nosec G115 -- clipped to int16 range
		idx := i * bytesPerSample
		binary.LittleEndian.PutUint16(out[idx:], s)
		binary.LittleEndian.PutUint16(out[idx+2:], s)
	}
}
