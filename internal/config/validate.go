package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// ValidationError names the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// Unwrap lets callers match with errors.Is(err, ErrInvalidConfig).
func (e ValidationError) Unwrap() error {
	return ErrInvalidConfig
}

// Validate rejects configurations the simulation cannot run with.
// These are checked once at session setup, never per frame.
func (c GameConfig) Validate() error {
	checks := []struct {
		ok      bool
		field   string
		message string
	}{
		{c.Playfield.Width > 0, "playfield.width", "must be positive"},
		{c.Playfield.Height > 0, "playfield.height", "must be positive"},
		{c.Grid.Rows > 0, "grid.rows", "must be positive"},
		{c.Grid.Cols > 0, "grid.cols", "must be positive"},
		{c.Grid.BlockWidth > 0, "grid.block_width", "must be positive"},
		{c.Grid.BlockHeight > 0, "grid.block_height", "must be positive"},
		{c.Paddle.Width > 0, "paddle.width", "must be positive (touch offset divides by it)"},
		{c.Paddle.Height > 0, "paddle.height", "must be positive"},
		{c.Paddle.Speed >= 0, "paddle.speed", "must not be negative"},
		{c.Ball.Size > 0, "ball.size", "must be positive"},
		{c.Ball.Speed >= 0, "ball.speed", "must not be negative"},
		{c.Ball.Frames > 0, "ball.frames", "must be positive"},
		{c.Ball.FramePeriod > 0, "ball.frame_period", "must be positive"},
		{c.Controls.ReleaseTicks >= 0, "controls.release_ticks", "must not be negative"},
		{c.Audio.Volume >= 0 && c.Audio.Volume <= 1, "audio.volume", "must be within [0, 1]"},
	}

	for _, check := range checks {
		if !check.ok {
			return ValidationError{Field: check.field, Message: check.message}
		}
	}
	return nil
}
