package puzzle

// CellView is what the display layer paints for one cell.
type CellView struct {
	Letter   string `json:"letter"`
	Selected bool   `json:"selected,omitempty"`
	Found    bool   `json:"found,omitempty"` // false while suppressed by the active gesture
}

// WordView is one line of the crossed-off word list.
type WordView struct {
	Word  string `json:"word"`
	Found bool   `json:"found"`
}

// View is a read-only snapshot of a puzzle for rendering.
type View struct {
	ID        string       `json:"id"`
	Size      int          `json:"size"`
	Cells     [][]CellView `json:"cells"`
	Words     []WordView   `json:"words"`
	State     State        `json:"state"`
	Found     int          `json:"found"`
	Total     int          `json:"total"`
	Completed bool         `json:"completed"`
	Status    string       `json:"status,omitempty"`
}

// View renders the grid with live selected/found flags and the solvable word list.
// Unplaced words are left out: they cannot be found.
func (p *Puzzle) View() View {
	n := p.grid.size
	v := View{
		ID:        p.ID,
		Size:      n,
		Cells:     make([][]CellView, n),
		Words:     make([]WordView, 0, p.solvable),
		State:     p.tracker.State(),
		Found:     p.foundCount,
		Total:     p.solvable,
		Completed: p.completed,
	}
	for r := 0; r < n; r++ {
		row := make([]CellView, n)
		for c := 0; c < n; c++ {
			at := Coord{Row: r, Col: c}
			row[c] = CellView{
				Letter:   string(p.grid.Cell(at)),
				Selected: p.tracker.Selected(at),
				Found:    p.isFound(at) && !p.tracker.Suppressed(at),
			}
		}
		v.Cells[r] = row
	}
	for _, e := range p.entries {
		if e.Placed {
			v.Words = append(v.Words, WordView{Word: e.Word, Found: e.Found})
		}
	}
	if p.completed {
		v.Status = CompletionMessage
	}
	return v
}
