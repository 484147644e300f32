package puzzle

import "strings"

// HintHighlightMs is how long clients keep a hint path highlighted.
const HintHighlightMs = 2000

// FindWord returns the first occurrence of word in g, scanning start cells
// row-major and trying every direction, reading forward and then reversed.
// The returned path always spells word in order. It never mutates g.
func FindWord(g *Grid, word string) ([]Coord, bool) {
	word = strings.ToUpper(strings.TrimSpace(word))
	if word == "" {
		return nil, false
	}
	for r := 0; r < g.size; r++ {
		for c := 0; c < g.size; c++ {
			start := Coord{Row: r, Col: c}
			for _, d := range Directions {
				if path, ok := spell(g, word, start, d); ok {
					return path, true
				}
				if path, ok := spell(g, word, start, d.Reverse()); ok {
					return path, true
				}
			}
		}
	}
	return nil, false
}

func spell(g *Grid, word string, start Coord, d Direction) ([]Coord, bool) {
	path := make([]Coord, 0, len(word))
	for i := 0; i < len(word); i++ {
		c := start.Step(d, i)
		if g.Cell(c) != word[i] {
			return nil, false
		}
		path = append(path, c)
	}
	return path, true
}
