package puzzle

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// script is a Source that replays fixed values (modulo n), cycling when exhausted.
type script struct {
	vals []int
	i    int
}

func (s *script) Intn(n int) int {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v % n
}

func TestNewGridStartsEmpty(t *testing.T) {
	g := NewGrid(4)
	assert.Equal(t, 4, g.Size())
	assert.False(t, g.Full())
	for _, row := range g.Rows() {
		assert.Equal(t, "....", row)
	}
}

func TestNewGridDefaultsSize(t *testing.T) {
	assert.Equal(t, DefaultSize, NewGrid(0).Size())
}

func TestSetCellBounds(t *testing.T) {
	g := NewGrid(3)
	require.NoError(t, g.SetCell(Coord{Row: 2, Col: 2}, 'Q'))
	assert.Equal(t, byte('Q'), g.Cell(Coord{Row: 2, Col: 2}))

	for _, c := range []Coord{{-1, 0}, {0, -1}, {3, 0}, {0, 3}} {
		assert.ErrorIs(t, g.SetCell(c, 'X'), ErrOutOfBounds, "coord %v", c)
		assert.Equal(t, byte(0), g.Cell(c))
	}
	assert.Equal(t, []string{"...", "...", "..Q"}, g.Rows())
}

func TestFillRemainingFillsEveryCellWithALetter(t *testing.T) {
	g := NewGrid(DefaultSize)
	require.NoError(t, g.SetCell(Coord{Row: 0, Col: 0}, 'S'))
	g.FillRemaining(rand.New(rand.NewSource(7)))

	require.True(t, g.Full())
	assert.Equal(t, byte('S'), g.Cell(Coord{Row: 0, Col: 0}))
	for _, row := range g.Rows() {
		for i := 0; i < len(row); i++ {
			assert.True(t, row[i] >= 'A' && row[i] <= 'Z', "unexpected %q", row[i])
		}
	}
}

func TestFillRemainingIsIdempotent(t *testing.T) {
	g := NewGrid(5)
	g.FillRemaining(rand.New(rand.NewSource(1)))
	before := g.Rows()
	g.FillRemaining(rand.New(rand.NewSource(2)))
	assert.Equal(t, before, g.Rows())
}

func TestReadFollowsPath(t *testing.T) {
	g := NewGrid(3)
	for i, ch := range []byte("CAT") {
		require.NoError(t, g.SetCell(Coord{Row: i, Col: i}, ch))
	}
	path := []Coord{{0, 0}, {1, 1}, {2, 2}}
	assert.Equal(t, "CAT", g.Read(path))

	fwd, back := Candidates(g, path)
	assert.Equal(t, "CAT", fwd)
	assert.Equal(t, "TAC", back)
}
