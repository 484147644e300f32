// internal/puzzle/types.go
//
// Core type definitions for the word-search engine.
// Defines:
//   - Coord:     a (row, col) cell address.
//   - Direction: one of the 8 unit steps a word can run along.
//   - Source:    the injectable uniform random integer generator.
//   - WordEntry: a target word plus where (and whether) it was placed.

package puzzle

import "errors"

var (
	ErrOutOfBounds   = errors.New("coordinate out of bounds")
	ErrEmptyWordList = errors.New("word list is empty")
	ErrInvalidWord   = errors.New("word must contain letters a-z only")
	ErrWordTooLong   = errors.New("word does not fit the grid")
)

// Coord addresses a single grid cell.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Step returns the cell n steps away from c along d.
func (c Coord) Step(d Direction, n int) Coord {
	return Coord{Row: c.Row + n*d.DRow, Col: c.Col + n*d.DCol}
}

// Direction is a unit vector; both components are in {-1, 0, 1} and at least one is non-zero.
type Direction struct {
	DRow int `json:"dRow"`
	DCol int `json:"dCol"`
}

// Directions lists the 8 placement directions.
var Directions = [8]Direction{
	{DRow: 0, DCol: 1},   // east
	{DRow: 1, DCol: 0},   // south
	{DRow: 1, DCol: 1},   // south-east
	{DRow: 1, DCol: -1},  // south-west
	{DRow: -1, DCol: -1}, // north-west
	{DRow: -1, DCol: 1},  // north-east
	{DRow: 0, DCol: -1},  // west
	{DRow: -1, DCol: 0},  // north
}

// IsZero reports whether d is the zero vector (no direction locked yet).
func (d Direction) IsZero() bool { return d.DRow == 0 && d.DCol == 0 }

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction { return Direction{DRow: -d.DRow, DCol: -d.DCol} }

// toward returns the direction from a to b, each component reduced to its sign.
// It reports false when a == b.
func toward(a, b Coord) (Direction, bool) {
	d := Direction{DRow: sign(b.Row - a.Row), DCol: sign(b.Col - a.Col)}
	return d, !d.IsZero()
}

// distance is the Manhattan distance between a and b.
func distance(a, b Coord) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Source yields uniform random integers in [0, n). *math/rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// WordEntry is one target word. Path is empty when the word could not be placed;
// once placed, Path never changes.
type WordEntry struct {
	Word   string  `json:"word"`
	Placed bool    `json:"placed"`
	Path   []Coord `json:"-"` // answer key, never sent to clients
	Found  bool    `json:"found"`
}
