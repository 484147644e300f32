package puzzle

// DefaultMaxAttempts bounds the random retries spent on a single word.
const DefaultMaxAttempts = 100

// Placement is the outcome of PlaceWord. Path is nil when Placed is false.
type Placement struct {
	Placed bool
	Start  Coord
	Dir    Direction
	Path   []Coord
}

// PlaceWord tries up to maxAttempts random (direction, start) pairs and writes word
// at the first one that fits. A fit means every target cell is in bounds and either
// empty or already holding the same letter, so words may cross but never conflict.
//
// Exhausting the attempts is not an error: the word is simply left out of the grid.
func PlaceWord(g *Grid, word string, src Source, maxAttempts int) Placement {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if len(word) == 0 || len(word) > g.size {
		return Placement{}
	}
	for attempt := 0; attempt < maxAttempts; attempt++ {
		d := Directions[src.Intn(len(Directions))]
		start := Coord{Row: src.Intn(g.size), Col: src.Intn(g.size)}
		if !g.fits(word, start, d) {
			continue
		}
		path := make([]Coord, len(word))
		for i := 0; i < len(word); i++ {
			c := start.Step(d, i)
			g.cells[c.Row*g.size+c.Col] = word[i]
			path[i] = c
		}
		return Placement{Placed: true, Start: start, Dir: d, Path: path}
	}
	return Placement{}
}

func (g *Grid) fits(word string, start Coord, d Direction) bool {
	for i := 0; i < len(word); i++ {
		c := start.Step(d, i)
		if !g.InBounds(c) {
			return false
		}
		if ch := g.Cell(c); ch != 0 && ch != word[i] {
			return false
		}
	}
	return true
}
