package audio

import (
	"errors"
	"os/exec"
)

// ErrNoBackend is returned when no supported player is installed.
var ErrNoBackend = errors.New("audio: no compatible backend found")

// Backend is a command line player that accepts raw s16le stereo PCM on stdin.
type Backend struct {
	Name string
	Path string
	Args []string
}

var candidates = []Backend{
	{Name: "pacat", Args: []string{"--raw", "--format=s16le", "--rate=44100", "--channels=2", "--latency-msec=50", "--playback"}},
	{Name: "pw-cat", Args: []string{"--playback", "--format=s16", "--rate=44100", "--channels=2", "--latency=50ms", "-"}},
	{Name: "aplay", Args: []string{"-t", "raw", "-f", "S16_LE", "-r", "44100", "-c", "2", "-q"}},
	{Name: "play", Args: []string{"-t", "raw", "-e", "signed", "-b", "16", "-c", "2", "-r", "44100", "-", "-d", "-q"}},
	{Name: "ffplay", Args: []string{"-nodisp", "-autoexit", "-f", "s16le", "-ac", "2", "-ar", "44100", "-i", "pipe:0", "-loglevel", "quiet"}},
}

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// DetectBackend returns the first installed player in priority order:
// PulseAudio, PipeWire, ALSA, SoX, FFplay.
func DetectBackend() (*Backend, error) {
	for _, c := range candidates {
		path, err := lookPath(c.Name)
		if err != nil {
			continue
		}
		b := c
		b.Path = path
		return &b, nil
	}
	return nil, ErrNoBackend
}
