// Package config provides YAML-based configuration loading and validation
// for the breaker.
package config

// GameConfig contains every tunable of a breaker session. Entities never
// read ambient constants; everything flows from here into the session.
type GameConfig struct {
	Playfield Playfield `yaml:"playfield"`
	Ball      Ball      `yaml:"ball"`
	Paddle    Paddle    `yaml:"paddle"`
	Grid      Grid      `yaml:"grid"`
	Controls  Controls  `yaml:"controls"`
	Audio     Audio     `yaml:"audio"`
}

// Playfield defines the logical screen size in playfield units (pixels).
type Playfield struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Ball defines the ball's start position, size, speed and sprite animation.
type Ball struct {
	X           float64 `yaml:"x"`
	Y           float64 `yaml:"y"`
	Size        float64 `yaml:"size"`
	Speed       float64 `yaml:"speed"`        // Units per tick on each axis
	Frames      int     `yaml:"frames"`       // Animation frames in the sprite
	FramePeriod int     `yaml:"frame_period"` // Ticks per animation frame
}

// Paddle defines the paddle's start position, size and speed.
type Paddle struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Speed  float64 `yaml:"speed"` // Units per tick
}

// Grid defines the block layout: block (col, row) sits at
// ((col+1)*ColumnStride, (row+1)*RowStride).
type Grid struct {
	Rows         int     `yaml:"rows"`
	Cols         int     `yaml:"cols"`
	BlockWidth   float64 `yaml:"block_width"`
	BlockHeight  float64 `yaml:"block_height"`
	ColumnStride float64 `yaml:"column_stride"`
	RowStride    float64 `yaml:"row_stride"`
}

// Total returns the number of blocks in the grid.
func (g Grid) Total() int {
	return g.Rows * g.Cols
}

// Controls tunes the terminal input layer.
type Controls struct {
	// ReleaseTicks is how many ticks without any key press count as
	// "key released". Terminals never report key-up events.
	ReleaseTicks int `yaml:"release_ticks"`
}

// Audio toggles sound effects.
type Audio struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // Master volume, 0.0 to 1.0
}
