/*
Package maze builds square wall/open grids by carving them with a random walk.

A grid starts fully walled. A cursor then walks in axis aligned runs of random
length, clamped to the interior so the outer ring always stays wall, and opens
every wall cell it lands on until the requested number of tiles has been
removed. The walk's final position is kept on the Maze so callers can spawn
something at the end of the carved path.

The random source is passed in explicitly, which makes a level reproducible
from its seed and lets tests script the walk exactly.
*/
package maze

import (
	"errors"
	"strings"
)

const (
	minSize = 3

	// Axis and sign choices are both a coin flip.
	coinFlip = 0.5
)

var (
	// DefaultStart is where the cursor begins when Config.Start is nil.
	DefaultStart = CellPosition{X: 4, Y: 1}

	ErrInvalidSize           = errors.New("maze size must be at least 3")
	ErrInvalidTileTarget     = errors.New("tiles to remove must not be negative")
	ErrTileTargetUnreachable = errors.New("tiles to remove exceeds the carvable interior")
	ErrNotSquare             = errors.New("grid rows must match the grid size")
)

// Config describes a maze to generate.
type Config struct {
	Size          int           // Width and height of the grid
	TilesToRemove int           // Number of wall cells the walk must open
	Start         *CellPosition // Cursor start; nil means DefaultStart
}

// Validate reports whether the config can be generated.
func (c Config) Validate() error {
	if c.Size < minSize {
		return ErrInvalidSize
	}
	if c.TilesToRemove < 0 {
		return ErrInvalidTileTarget
	}
	interior := (c.Size - 2) * (c.Size - 2)
	if c.TilesToRemove > interior {
		return ErrTileTargetUnreachable
	}
	return nil
}

// Maze is a generated grid. It is read only once Generate returns.
type Maze struct {
	size    int
	grid    [][]bool // grid[y][x], true is wall
	cursor  CellPosition
	removed int
}

// Generate carves a new maze from cfg using rng.
func Generate(cfg Config, rng Rand) (*Maze, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	grid := make([][]bool, cfg.Size)
	for y := range grid {
		grid[y] = make([]bool, cfg.Size)
		for x := range grid[y] {
			grid[y][x] = Wall
		}
	}

	start := DefaultStart
	if cfg.Start != nil {
		start = *cfg.Start
	}

	m := &Maze{
		size:   cfg.Size,
		grid:   grid,
		cursor: clampInterior(start, cfg.Size),
	}
	m.carve(cfg.TilesToRemove, rng)
	return m, nil
}

// FromRows rebuilds a maze from a grid indexed [y][x] and the cursor's
// resting position. The rows are copied.
func FromRows(rows [][]bool, cursor CellPosition) (*Maze, error) {
	if len(rows) < minSize {
		return nil, ErrInvalidSize
	}
	m := &Maze{
		size:   len(rows),
		grid:   make([][]bool, len(rows)),
		cursor: cursor,
	}
	for y, row := range rows {
		if len(row) != m.size {
			return nil, ErrNotSquare
		}
		m.grid[y] = append([]bool(nil), row...)
		for _, wall := range row {
			if !wall {
				m.removed++
			}
		}
	}
	return m, nil
}

// carve runs the random walk until target tiles have been opened.
func (m *Maze) carve(target int, rng Rand) {
	for m.removed < target {
		dx, dy := 0, 0
		if rng.Float32() < coinFlip {
			dx = randomSign(rng)
		} else {
			dy = randomSign(rng)
		}

		// Run length is uniform over [1, size-1).
		steps := 1 + rng.Intn(m.size-2)

		// Stop as soon as the target is met so exactly target tiles are open
		// and the cursor rests on the last carved tile. Finishing the run
		// could open more than target.
		for i := 0; i < steps && m.removed < target; i++ {
			m.cursor = clampInterior(CellPosition{X: m.cursor.X + dx, Y: m.cursor.Y + dy}, m.size)
			if m.grid[m.cursor.Y][m.cursor.X] {
				m.grid[m.cursor.Y][m.cursor.X] = Open
				m.removed++
			}
		}
	}
}

func randomSign(rng Rand) int {
	if rng.Float32() < coinFlip {
		return 1
	}
	return -1
}

// Size returns the width (and height) of the grid.
func (m *Maze) Size() int {
	return m.size
}

// IsWall reports whether the cell at (x, y) is a wall.
// Coordinates outside the grid count as wall.
func (m *Maze) IsWall(x, y int) bool {
	if x < 0 || y < 0 || x >= m.size || y >= m.size {
		return true
	}
	return m.grid[y][x]
}

// Cursor returns where the carving walk came to rest.
func (m *Maze) Cursor() CellPosition {
	return m.cursor
}

// Removed returns how many wall cells the walk opened.
func (m *Maze) Removed() int {
	return m.removed
}

// OpenCells lists the open cells in row-major order.
func (m *Maze) OpenCells() []CellPosition {
	cells := make([]CellPosition, 0, m.removed)
	for y := range m.grid {
		for x, wall := range m.grid[y] {
			if !wall {
				cells = append(cells, CellPosition{X: x, Y: y})
			}
		}
	}
	return cells
}

// Rows returns a copy of the grid, indexed [y][x].
func (m *Maze) Rows() [][]bool {
	rows := make([][]bool, m.size)
	for y := range m.grid {
		rows[y] = append([]bool(nil), m.grid[y]...)
	}
	return rows
}

// Lines renders each row as text: '#' for wall, '.' for open and
// 'P' for the cursor's resting cell.
func (m *Maze) Lines() []string {
	lines := make([]string, m.size)
	var row strings.Builder
	for y := range m.grid {
		row.Reset()
		for x, wall := range m.grid[y] {
			switch {
			case x == m.cursor.X && y == m.cursor.Y:
				row.WriteByte('P')
			case wall:
				row.WriteByte('#')
			default:
				row.WriteByte('.')
			}
		}
		lines[y] = row.String()
	}
	return lines
}

// String provides a textual representation of the maze.
func (m *Maze) String() string {
	return strings.Join(m.Lines(), "\n") + "\n"
}
