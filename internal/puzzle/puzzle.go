// internal/puzzle/puzzle.go
//
// A Puzzle is one playable word-search instance.
// Responsibilities:
//   - Validate and normalise the word list (uppercase, a–z only, fits the grid).
//   - Run the placement phase once, then pad the grid with noise letters.
//   - Route gestures (Begin/Extend/End) through the Tracker into Evaluate.
//   - Answer read-only hint queries and render a View for the display layer.
//
// Notes:
//   - Instances share nothing; callers that drive one Puzzle from several
//     goroutines must serialise access themselves (see store.Session).
//   - Words that cannot be placed are logged and dropped from the solvable set.
package puzzle

import (
	crand "crypto/rand"
	"encoding/hex"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// CompletionMessage is the status text shown once every word is found.
const CompletionMessage = "You win! Bonus Tip: Refresh the page for a new puzzle!"

// Options configures puzzle generation.
type Options struct {
	Size        int             // grid edge length (0 = DefaultSize)
	MaxAttempts int             // placement retries per word (0 = DefaultMaxAttempts)
	Seed        int64           // seed for the default source (0 = time-based)
	Source      Source          // overrides Seed when set
	Shuffle     bool            // place words in random order instead of list order
	OnComplete  func(p *Puzzle) // fired exactly once when the last word is found
}

// Puzzle owns its grid, word entries, found state and the active gesture.
type Puzzle struct {
	ID        string
	CreatedAt time.Time

	seed       int64
	grid       *Grid
	entries    []WordEntry
	solvable   int
	foundCount int
	foundCells map[Coord]struct{}
	tracker    *Tracker
	completed  bool
	onComplete func(p *Puzzle)
}

// New validates words, places them and fills the grid.
func New(words []string, opts Options) (*Puzzle, error) {
	size := opts.Size
	if size <= 0 {
		size = DefaultSize
	}
	list, err := Normalize(words, size)
	if err != nil {
		return nil, err
	}

	seed := opts.Seed
	src := opts.Source
	if src == nil {
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		src = rand.New(rand.NewSource(seed))
	}

	p := &Puzzle{
		ID:         randomID(),
		CreatedAt:  time.Now().UTC(),
		seed:       seed,
		grid:       NewGrid(size),
		entries:    make([]WordEntry, len(list)),
		foundCells: make(map[Coord]struct{}),
		onComplete: opts.OnComplete,
	}
	p.tracker = NewTracker(p.grid, p.isFound)

	order := make([]int, len(list))
	for i := range order {
		order[i] = i
	}
	if opts.Shuffle {
		for i := len(order) - 1; i > 0; i-- {
			j := src.Intn(i + 1)
			order[i], order[j] = order[j], order[i]
		}
	}

	for _, i := range order {
		w := list[i]
		res := PlaceWord(p.grid, w, src, opts.MaxAttempts)
		p.entries[i] = WordEntry{Word: w, Placed: res.Placed, Path: res.Path}
		if res.Placed {
			p.solvable++
			continue
		}
		attempts := opts.MaxAttempts
		if attempts <= 0 {
			attempts = DefaultMaxAttempts
		}
		log.Warn().Str("puzzleId", p.ID).Str("word", w).Int("attempts", attempts).
			Msg("placement exhausted; word left out of the grid")
	}
	p.grid.FillRemaining(src)
	return p, nil
}

// Normalize uppercases, trims and de-duplicates words, rejecting anything that is
// not 2..size letters a–z.
func Normalize(words []string, size int) ([]string, error) {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, raw := range words {
		w := strings.ToUpper(strings.TrimSpace(raw))
		if w == "" {
			continue
		}
		if len(w) < 2 || !isAlpha(w) {
			return nil, fmt.Errorf("%q: %w", raw, ErrInvalidWord)
		}
		if len(w) > size {
			return nil, fmt.Errorf("%q (%d letters, grid %d): %w", raw, len(w), size, ErrWordTooLong)
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	if len(out) == 0 {
		return nil, ErrEmptyWordList
	}
	return out, nil
}

// Begin starts a gesture at c. See Tracker.Begin.
func (p *Puzzle) Begin(c Coord) bool { return p.tracker.Begin(c) }

// Extend feeds the next cell of the active gesture. See Tracker.Extend.
func (p *Puzzle) Extend(c Coord) bool { return p.tracker.Extend(c) }

// End finishes the active gesture and evaluates its path.
func (p *Puzzle) End() MatchResult {
	return p.Evaluate(p.tracker.End())
}

// Hint locates word in the grid without touching any puzzle state.
func (p *Puzzle) Hint(word string) ([]Coord, bool) { return FindWord(p.grid, word) }

// Grid exposes the letter matrix. Callers must not write to it.
func (p *Puzzle) Grid() *Grid { return p.grid }

// Seed returns the seed the default source was built from (0 when a Source was injected).
func (p *Puzzle) Seed() int64 { return p.seed }

// State reports the gesture state.
func (p *Puzzle) State() State { return p.tracker.State() }

// Completed reports whether every solvable word has been found.
func (p *Puzzle) Completed() bool { return p.completed }

// FoundCount returns how many words have been found so far.
func (p *Puzzle) FoundCount() int { return p.foundCount }

// Solvable returns the number of words that made it into the grid.
func (p *Puzzle) Solvable() int { return p.solvable }

// Entries returns a copy of the word entries in list order.
func (p *Puzzle) Entries() []WordEntry {
	out := make([]WordEntry, len(p.entries))
	for i, e := range p.entries {
		e.Path = append([]Coord(nil), e.Path...)
		out[i] = e
	}
	return out
}

// Unplaced lists the words that exhausted their placement attempts.
func (p *Puzzle) Unplaced() []string {
	var out []string
	for _, e := range p.entries {
		if !e.Placed {
			out = append(out, e.Word)
		}
	}
	return out
}

func (p *Puzzle) isFound(c Coord) bool {
	_, ok := p.foundCells[c]
	return ok
}

func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = crand.Read(b[:])
	return hex.EncodeToString(b[:])
}
