package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/robalobadob/wordsearch/internal/puzzle"
)

const (
	sheetPuzzle   = "Puzzle"
	sheetSolution = "Solution"
	sheetWords    = "Words"
)

// WriteXLSX writes a workbook with three sheets: the puzzle grid, the same grid
// with every placed word highlighted, and the word list.
func WriteXLSX(w io.Writer, p *puzzle.Puzzle) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetPuzzle); err != nil {
		return err
	}
	for _, name := range []string{sheetSolution, sheetWords} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("new sheet %s: %w", name, err)
		}
	}

	cellStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Font:      &excelize.Font{Family: "Courier New", Size: 14, Bold: true},
		Border: []excelize.Border{
			{Type: "left", Color: "999999", Style: 1},
			{Type: "right", Color: "999999", Style: 1},
			{Type: "top", Color: "999999", Style: 1},
			{Type: "bottom", Color: "999999", Style: 1},
		},
	})
	if err != nil {
		return err
	}
	foundStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Font:      &excelize.Font{Family: "Courier New", Size: 14, Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FF1493"}},
	})
	if err != nil {
		return err
	}

	g := p.Grid()
	onPath := solutionCells(p)
	for _, sheet := range []string{sheetPuzzle, sheetSolution} {
		last, _ := excelize.ColumnNumberToName(g.Size())
		if err := f.SetColWidth(sheet, "A", last, 4); err != nil {
			return err
		}
		for r := 0; r < g.Size(); r++ {
			if err := f.SetRowHeight(sheet, r+1, 22); err != nil {
				return err
			}
			for c := 0; c < g.Size(); c++ {
				at := puzzle.Coord{Row: r, Col: c}
				ref, err := excelize.CoordinatesToCellName(c+1, r+1)
				if err != nil {
					return err
				}
				if err := f.SetCellStr(sheet, ref, string(g.Cell(at))); err != nil {
					return err
				}
				style := cellStyle
				if sheet == sheetSolution && onPath[at] {
					style = foundStyle
				}
				if err := f.SetCellStyle(sheet, ref, ref, style); err != nil {
					return err
				}
			}
		}
	}

	if err := f.SetSheetRow(sheetWords, "A1", &[]any{"Word", "Letters", "Placed"}); err != nil {
		return err
	}
	for i, e := range p.Entries() {
		ref, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheetWords, ref, &[]any{e.Word, len(e.Word), e.Placed}); err != nil {
			return err
		}
	}

	_, err = f.WriteTo(w)
	return err
}
