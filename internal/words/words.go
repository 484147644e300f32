// internal/words/words.go
//
// Word list loading for puzzle generation.
//
// Responsibilities:
//   - Load a word list from a plain-text file, an HTML page, or the embedded default.
//   - Normalise entries (trim, lowercase, letters only, at least two letters).
//   - Drop duplicates while keeping the original order.
//
// Sources (Load):
//  1. path == ""            → embedded assets/words.txt.
//  2. path ends in .html/.htm → the <li> items of #wordList (see ParseHTML).
//  3. anything else          → one word per line, '#' comments allowed.
//
// Length against the grid size is checked later by puzzle.Normalize; this package
// only knows about letters.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/robalobadob/wordsearch/assets"
)

// ErrEmpty is returned when a source yields no usable words.
var ErrEmpty = errors.New("words: list is empty")

// Load reads the word list at path, or the embedded default when path is empty.
func Load(path string) ([]string, error) {
	var (
		list []string
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); {
	case path == "":
		list, err = assets.DefaultWords()
	case ext == ".html" || ext == ".htm":
		list, err = readHTMLFile(path)
	default:
		list, err = readWordFile(path)
	}
	if err != nil {
		return nil, err
	}
	list = Clean(list)
	if len(list) == 0 {
		return nil, ErrEmpty
	}
	return list, nil
}

// Default returns the embedded word list.
func Default() ([]string, error) { return Load("") }

func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word file: %w", err)
	}
	defer f.Close()
	return ParseText(f)
}

func readHTMLFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word page: %w", err)
	}
	defer f.Close()
	return ParseHTML(f)
}

// ParseText reads one word per line. Blank lines and '#' comments are skipped.
func ParseText(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}

// ParseHTML extracts the items of a word list rendered as
// <ul id="wordList"><li>…</li></ul>. Pages without that list fall back to every <li>.
func ParseHTML(r io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse word page: %w", err)
	}
	sel := doc.Find("#wordList li")
	if sel.Length() == 0 {
		sel = doc.Find("li")
	}
	var out []string
	sel.Each(func(_ int, s *goquery.Selection) {
		if w := strings.TrimSpace(s.Text()); w != "" {
			out = append(out, w)
		}
	})
	return out, nil
}

// Clean lowercases and trims words, keeping alphabetic entries of two or more
// letters and dropping repeats.
func Clean(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, raw := range list {
		w := strings.ToLower(strings.TrimSpace(raw))
		if len(w) < 2 || !isAlpha(w) {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
