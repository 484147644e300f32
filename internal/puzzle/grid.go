// internal/puzzle/grid.go
//
// Grid Model: a fixed-size square matrix of letters.
// Cells start empty (0); placement writes words in, FillRemaining pads the rest
// with noise letters. After generation the grid is treated as read-only.

package puzzle

import "strings"

// DefaultSize is the edge length of a standard puzzle.
const DefaultSize = 15

// Grid is an N×N letter matrix stored row-major. A zero byte marks an empty cell.
type Grid struct {
	size  int
	cells []byte
}

// NewGrid creates a size×size grid with every cell empty.
func NewGrid(size int) *Grid {
	if size <= 0 {
		size = DefaultSize
	}
	return &Grid{size: size, cells: make([]byte, size*size)}
}

// Size returns the edge length.
func (g *Grid) Size() int { return g.size }

// InBounds reports whether c addresses a cell of g.
func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.size && c.Col >= 0 && c.Col < g.size
}

// Cell returns the letter at c, or 0 when c is empty or out of bounds.
func (g *Grid) Cell(c Coord) byte {
	if !g.InBounds(c) {
		return 0
	}
	return g.cells[c.Row*g.size+c.Col]
}

// SetCell writes ch at c. Out-of-range writes are rejected and leave the grid untouched.
func (g *Grid) SetCell(c Coord, ch byte) error {
	if !g.InBounds(c) {
		return ErrOutOfBounds
	}
	g.cells[c.Row*g.size+c.Col] = ch
	return nil
}

// FillRemaining assigns a random uppercase letter to every empty cell.
// Filled cells are never touched, so a second call is a no-op.
func (g *Grid) FillRemaining(src Source) {
	for i, ch := range g.cells {
		if ch == 0 {
			g.cells[i] = byte('A' + src.Intn(26))
		}
	}
}

// Full reports whether no empty cell remains.
func (g *Grid) Full() bool {
	for _, ch := range g.cells {
		if ch == 0 {
			return false
		}
	}
	return true
}

// Read concatenates the letters along path.
func (g *Grid) Read(path []Coord) string {
	var sb strings.Builder
	sb.Grow(len(path))
	for _, c := range path {
		if ch := g.Cell(c); ch != 0 {
			sb.WriteByte(ch)
		}
	}
	return sb.String()
}

// Rows renders each row as a string; empty cells show as '.'.
func (g *Grid) Rows() []string {
	out := make([]string, g.size)
	row := make([]byte, g.size)
	for r := 0; r < g.size; r++ {
		for c := 0; c < g.size; c++ {
			ch := g.cells[r*g.size+c]
			if ch == 0 {
				ch = '.'
			}
			row[c] = ch
		}
		out[r] = string(row)
	}
	return out
}
