package breaker

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-breaker/internal/config"
)

func TestBuildGrid(t *testing.T) {
	g, err := BuildGrid(config.DefaultGameConfig().Grid)
	if err != nil {
		t.Fatalf("BuildGrid() failed: %v", err)
	}

	if g.Len() != 32 || g.Remaining() != 32 {
		t.Fatalf("Len = %d, Remaining = %d, expected 32", g.Len(), g.Remaining())
	}

	first := g.Blocks[0]
	if first.X != 64 || first.Y != 24 || first.W != 60 || first.H != 20 {
		t.Errorf("first block = %+v", first)
	}
	last := g.Blocks[g.Len()-1]
	if last.X != 512 || last.Y != 96 || last.Row != 3 || last.Col != 7 {
		t.Errorf("last block = %+v", last)
	}
	// Row-major: second block is in the same row.
	if g.Blocks[1].Y != 24 || g.Blocks[1].X != 128 {
		t.Errorf("second block = %+v", g.Blocks[1])
	}

	g.Blocks[3].Destroy()
	if g.Remaining() != 31 || len(g.Alive()) != 31 {
		t.Errorf("Remaining = %d after one destroy", g.Remaining())
	}
}

func TestBuildGridInvalid(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
	}{
		{"zero rows", 0, 8},
		{"zero cols", 4, 0},
		{"negative", -1, -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			layout := config.DefaultGameConfig().Grid
			layout.Rows, layout.Cols = tc.rows, tc.cols

			if _, err := BuildGrid(layout); !errors.Is(err, config.ErrInvalidConfig) {
				t.Errorf("BuildGrid() error = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}
