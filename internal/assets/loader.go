package assets

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breaker/internal/audio"
)

// Bundle holds every decoded asset of a manifest.
type Bundle struct {
	Sprites map[string]Sprite
	Sounds  map[string]audio.Buffer
}

// Sprite returns the named sprite, or a blank one if it was not loaded.
func (b *Bundle) Sprite(name string) Sprite {
	return b.Sprites[name]
}

// Loader decodes a manifest's assets concurrently and reports once when
// all of them are ready. A loader is used for a single Preload.
type Loader struct {
	logger *log.Logger
	volume float64

	loaded   atomic.Int32
	required atomic.Int32
	fired    atomic.Bool

	mu     sync.Mutex
	bundle *Bundle
}

// NewLoader creates a loader. Sounds are rendered at the given master volume.
func NewLoader(logger *log.Logger, volume float64) *Loader {
	return &Loader{logger: logger, volume: volume}
}

// Preload starts one goroutine per asset and returns immediately. onReady
// is called exactly once, from whichever goroutine finishes last, when
// every asset loaded. An asset that fails is logged and never counts, so
// onReady is never called; callers bound the wait with their own deadline.
// Work finishing after ctx is done is discarded.
func (l *Loader) Preload(ctx context.Context, m Manifest, onReady func(*Bundle)) {
	l.bundle = &Bundle{
		Sprites: make(map[string]Sprite, len(m.Sprites)),
		Sounds:  make(map[string]audio.Buffer, len(m.Sounds)),
	}
	l.required.Store(int32(m.Len())) //#nosec G115 -- manifests are small
	l.logger.Debug("preloading assets", "assets", m.Names())

	if m.Len() == 0 {
		l.finish(onReady)
		return
	}

	for name, spec := range m.Sprites {
		name, spec := name, spec
		go func() {
			sprite, err := DecodeSprite(name, spec)
			if err != nil {
				l.logger.Error("sprite failed to load", "name", name, "err", err)
				return
			}
			l.complete(ctx, onReady, func(b *Bundle) { b.Sprites[name] = sprite })
		}()
	}

	for name, spec := range m.Sounds {
		name, spec := name, spec
		go func() {
			buf, err := audio.Synthesize(spec, l.volume)
			if err != nil {
				l.logger.Error("sound failed to load", "name", name, "err", err)
				return
			}
			l.complete(ctx, onReady, func(b *Bundle) { b.Sounds[name] = buf })
		}()
	}
}

// complete stores one asset and fires onReady if it was the last.
func (l *Loader) complete(ctx context.Context, onReady func(*Bundle), store func(*Bundle)) {
	if ctx.Err() != nil {
		return
	}

	l.mu.Lock()
	store(l.bundle)
	l.mu.Unlock()

	if l.loaded.Add(1) == l.required.Load() {
		l.finish(onReady)
	}
}

func (l *Loader) finish(onReady func(*Bundle)) {
	if !l.fired.CompareAndSwap(false, true) {
		return
	}
	l.logger.Debug("assets ready", "count", l.required.Load())
	onReady(l.bundle)
}

// Progress returns how many assets have loaded out of how many are required.
func (l *Loader) Progress() (loaded, required int) {
	return int(l.loaded.Load()), int(l.required.Load())
}
