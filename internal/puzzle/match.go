package puzzle

// MatchResult reports what a finished gesture achieved.
type MatchResult struct {
	Word      string  `json:"word,omitempty"` // matched word, empty when nothing matched
	Matched   bool    `json:"matched"`        // a new word was found
	Duplicate bool    `json:"duplicate"`      // the path spelled a word that was already found
	Completed bool    `json:"completed"`      // this evaluation found the last word
	Path      []Coord `json:"path,omitempty"`
}

// Candidates returns the letters along path and their reverse.
func Candidates(g *Grid, path []Coord) (forward, backward string) {
	forward = g.Read(path)
	b := []byte(forward)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return forward, string(b)
}

// Evaluate checks path against the solvable words, forward and reversed, and
// records a new find. Paths shorter than two cells never match.
func (p *Puzzle) Evaluate(path []Coord) MatchResult {
	res := MatchResult{Path: path}
	if len(path) < 2 {
		return res
	}
	s, rev := Candidates(p.grid, path)
	for i := range p.entries {
		e := &p.entries[i]
		if !e.Placed || (e.Word != s && e.Word != rev) {
			continue
		}
		res.Word = e.Word
		if e.Found {
			res.Duplicate = true
			return res
		}
		e.Found = true
		p.foundCount++
		for _, c := range path {
			p.foundCells[c] = struct{}{}
		}
		res.Matched = true
		if p.foundCount == p.solvable && !p.completed {
			p.completed = true
			res.Completed = true
			if p.onComplete != nil {
				p.onComplete(p)
			}
		}
		return res
	}
	return res
}
