package config

import (
	_ "embed"
)

//go:embed defaults/breaker.yaml
var defaultGameYAML []byte

// DefaultGameConfig returns the built-in configuration.
// Mirrors defaults/breaker.yaml and is used if the embedded file fails to parse.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Playfield: Playfield{
			Width:  640,
			Height: 360,
		},
		Ball: Ball{
			X:           320,
			Y:           280,
			Size:        20,
			Speed:       3,
			Frames:      4,
			FramePeriod: 30,
		},
		Paddle: Paddle{
			X:      280,
			Y:      300,
			Width:  100,
			Height: 14,
			Speed:  6,
		},
		Grid: Grid{
			Rows:         4,
			Cols:         8,
			BlockWidth:   60,
			BlockHeight:  20,
			ColumnStride: 64,
			RowStride:    24,
		},
		Controls: Controls{
			ReleaseTicks: 18,
		},
		Audio: Audio{
			Enabled: true,
			Volume:  0.6,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultGameYAML
}
