package core

// RuntimeConfig contains configuration passed to the driver at startup.
// The driver uses this to size the terminal view and seed the simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is the summary a session reports to its host after every step.
type GameState struct {
	Score    int  // Blocks destroyed so far
	GameOver bool // Whether the session reached a terminal state
}
