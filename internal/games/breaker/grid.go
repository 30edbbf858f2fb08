// Package breaker implements the block-breaker simulation: ball, paddle,
// block grid and the session state machine that steps them.
package breaker

import (
	"fmt"

	"github.com/vovakirdan/tui-breaker/internal/config"
	"github.com/vovakirdan/tui-breaker/internal/core"
)

// Block is a single destructible brick.
type Block struct {
	X, Y      float64
	W, H      float64
	Row, Col  int
	Destroyed bool
}

// Rect returns the block's bounding box.
func (b *Block) Rect() core.Rect {
	return core.NewRect(b.X, b.Y, b.W, b.H)
}

// Destroy marks the block as destroyed. There is no way back.
func (b *Block) Destroy() {
	b.Destroyed = true
}

// Grid is the fixed rows x cols arrangement of blocks, stored row-major.
// Its shape never changes after BuildGrid.
type Grid struct {
	Rows   int
	Cols   int
	Blocks []Block
}

// BuildGrid lays out rows x cols blocks deterministically.
func BuildGrid(layout config.Grid) (*Grid, error) {
	if layout.Rows <= 0 || layout.Cols <= 0 {
		return nil, fmt.Errorf("breaker: cannot build %dx%d grid: %w", layout.Rows, layout.Cols, config.ErrInvalidConfig)
	}

	g := &Grid{
		Rows:   layout.Rows,
		Cols:   layout.Cols,
		Blocks: make([]Block, 0, layout.Rows*layout.Cols),
	}
	for row := 0; row < layout.Rows; row++ {
		for col := 0; col < layout.Cols; col++ {
			g.Blocks = append(g.Blocks, Block{
				X:   float64(col+1) * layout.ColumnStride,
				Y:   float64(row+1) * layout.RowStride,
				W:   layout.BlockWidth,
				H:   layout.BlockHeight,
				Row: row,
				Col: col,
			})
		}
	}
	return g, nil
}

// Len returns the total number of blocks, destroyed or not.
func (g *Grid) Len() int {
	return len(g.Blocks)
}

// Remaining returns how many blocks are still standing.
func (g *Grid) Remaining() int {
	count := 0
	for i := range g.Blocks {
		if !g.Blocks[i].Destroyed {
			count++
		}
	}
	return count
}

// Alive returns copies of the blocks still standing, in layout order.
func (g *Grid) Alive() []Block {
	alive := make([]Block, 0, len(g.Blocks))
	for _, b := range g.Blocks {
		if !b.Destroyed {
			alive = append(alive, b)
		}
	}
	return alive
}
