package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordsearch/internal/export"
	"github.com/robalobadob/wordsearch/internal/puzzle"
	"github.com/robalobadob/wordsearch/internal/words"
)

var (
	genSeed     int64
	genSize     int
	genWords    string
	genOutput   string
	genSolution bool
	genShuffle  bool
)

func init() {
	genCmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a word-search puzzle",
		Long: `Generate one word-search puzzle and print it, or export it to a workbook.

Examples:
  wordsearch gen
  wordsearch gen --seed 42 --solution
  wordsearch gen --words words.html --size 12
  wordsearch gen --seed 7 -o puzzle.xlsx`,
		RunE: runGen,
	}

	genCmd.Flags().Int64Var(&genSeed, "seed", 0, "Random seed (0 = time-based)")
	genCmd.Flags().IntVar(&genSize, "size", 0, "Grid size (default: config grid_size)")
	genCmd.Flags().StringVarP(&genWords, "words", "w", "", "Word file, one per line or .html with #wordList li (default: built-in list)")
	genCmd.Flags().StringVarP(&genOutput, "output", "o", "", "Output file; .xlsx writes a workbook, anything else plain text")
	genCmd.Flags().BoolVar(&genSolution, "solution", false, "Also print the solution grid")
	genCmd.Flags().BoolVar(&genShuffle, "shuffle", false, "Place words in random order")

	rootCmd.AddCommand(genCmd)
}

func runGen(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	size := genSize
	if size == 0 {
		size = cfg.GridSize
	}
	path := genWords
	if path == "" {
		path = cfg.WordsFile
	}
	list, err := words.Load(path)
	if err != nil {
		return fmt.Errorf("load word list: %w", err)
	}

	p, err := puzzle.New(list, puzzle.Options{
		Size:        size,
		MaxAttempts: cfg.MaxAttempts,
		Seed:        genSeed,
		Shuffle:     genShuffle,
	})
	if err != nil {
		return err
	}
	log.Debug().Str("puzzleId", p.ID).Int64("seed", p.Seed()).Int("words", p.Solvable()).Msg("puzzle generated")

	if strings.EqualFold(filepath.Ext(genOutput), ".xlsx") {
		f, err := os.Create(genOutput)
		if err != nil {
			return fmt.Errorf("failed to create workbook: %w", err)
		}
		defer f.Close()
		if err := export.WriteXLSX(f, p); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (seed %d)\n", genOutput, p.Seed())
		return nil
	}

	var w io.Writer = cmd.OutOrStdout()
	if genOutput != "" {
		f, err := os.Create(genOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	return writeText(w, p)
}

func writeText(w io.Writer, p *puzzle.Puzzle) error {
	fmt.Fprintf(w, "Seed: %d\n\n", p.Seed())
	if err := export.WriteText(w, p, false); err != nil {
		return err
	}
	if genSolution {
		fmt.Fprint(w, "\nSolution:\n\n")
		return export.WriteText(w, p, true)
	}
	return nil
}
