package audio

import "sync"

// Player plays named sounds. Play must not block the caller.
type Player interface {
	Play(id string)
}

// Nop is a Player that discards every request.
type Nop struct{}

// Play does nothing.
func (Nop) Play(string) {}

// Recorder is a Player that remembers what it was asked to play.
type Recorder struct {
	mu     sync.Mutex
	played []string
}

// Play records id.
func (r *Recorder) Play(id string) {
	r.mu.Lock()
	r.played = append(r.played, id)
	r.mu.Unlock()
}

// Played returns the recorded ids in order.
func (r *Recorder) Played() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.played))
	copy(out, r.played)
	return out
}
