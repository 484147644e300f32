// Package export renders finished puzzles for print: plain text for the console
// and an XLSX workbook for sharing.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/robalobadob/wordsearch/internal/puzzle"
)

// WriteText prints the grid (letters space-separated) followed by the word list.
// With solution set, letters off every placed path are replaced by '.'.
func WriteText(w io.Writer, p *puzzle.Puzzle, solution bool) error {
	g := p.Grid()
	keep := solutionCells(p)
	var sb strings.Builder
	for r := 0; r < g.Size(); r++ {
		for c := 0; c < g.Size(); c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			at := puzzle.Coord{Row: r, Col: c}
			ch := g.Cell(at)
			if solution && !keep[at] {
				ch = '.'
			}
			sb.WriteByte(ch)
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\nWords:\n")
	for _, e := range p.Entries() {
		if e.Placed {
			fmt.Fprintf(&sb, "  %s\n", e.Word)
		}
	}
	if missing := p.Unplaced(); len(missing) > 0 {
		fmt.Fprintf(&sb, "\nNot placed: %s\n", strings.Join(missing, ", "))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func solutionCells(p *puzzle.Puzzle) map[puzzle.Coord]bool {
	out := make(map[puzzle.Coord]bool)
	for _, e := range p.Entries() {
		for _, c := range e.Path {
			out[c] = true
		}
	}
	return out
}
