// internal/puzzle/tracker.go
//
// Selection Tracker: the gesture state machine.
//
//	Idle --Begin--> Anchored --Extend(neighbour)--> Tracking
//	Tracking --Extend(second-to-last)--> Tracking | Anchored   (retraction)
//	Anchored | Tracking --End--> Idle
//
// From Anchored, the direction is the sign of the pointer's offset from the anchor,
// and the anchor's neighbour in that direction is selected when the pointer is
// within one cell of it. Invalid Extend calls are absorbed silently: pointer and
// touch input is noisy and must never corrupt the selection. Found cells can be re-selected; while selected
// their found highlight is suppressed, and it comes back on retraction or End.

package puzzle

// State is the tracker's gesture state.
type State string

const (
	StateIdle     State = "idle"
	StateAnchored State = "anchored"
	StateTracking State = "tracking"
)

// anchorTolerance is how far (Manhattan) the pointer may be from the anchor's
// neighbour in the chosen direction for that neighbour to be selected.
const anchorTolerance = 1

// Tracker holds the in-progress selection for one puzzle instance.
type Tracker struct {
	grid       *Grid
	isFound    func(Coord) bool
	path       []Coord
	dir        Direction
	suppressed map[Coord]struct{}
}

// NewTracker builds an idle tracker over g. isFound reports permanently found cells;
// nil means no cell is ever found.
func NewTracker(g *Grid, isFound func(Coord) bool) *Tracker {
	if isFound == nil {
		isFound = func(Coord) bool { return false }
	}
	return &Tracker{grid: g, isFound: isFound, suppressed: make(map[Coord]struct{})}
}

// State reports the current gesture state.
func (t *Tracker) State() State {
	switch len(t.path) {
	case 0:
		return StateIdle
	case 1:
		return StateAnchored
	default:
		return StateTracking
	}
}

// Direction returns the locked direction, or the zero Direction before the second cell.
func (t *Tracker) Direction() Direction { return t.dir }

// Path returns a copy of the current selection.
func (t *Tracker) Path() []Coord { return append([]Coord(nil), t.path...) }

// Selected reports whether c is part of the current selection.
func (t *Tracker) Selected(c Coord) bool {
	for _, p := range t.path {
		if p == c {
			return true
		}
	}
	return false
}

// Suppressed reports whether c's found highlight is hidden by the current selection.
func (t *Tracker) Suppressed(c Coord) bool {
	_, ok := t.suppressed[c]
	return ok
}

// Begin anchors a new gesture at c. It returns false (and does nothing) when a
// gesture is already active or c is off the grid.
func (t *Tracker) Begin(c Coord) bool {
	if len(t.path) != 0 || !t.grid.InBounds(c) {
		return false
	}
	t.dir = Direction{}
	t.push(c)
	return true
}

// Extend feeds the next cell under the pointer. It returns true when the selection changed.
func (t *Tracker) Extend(c Coord) bool {
	switch t.State() {
	case StateAnchored:
		anchor := t.path[0]
		d, ok := toward(anchor, c)
		if !ok {
			return false
		}
		// A pointer that skipped past the first cell still locks the direction,
		// as long as it lands within one cell of it.
		next := anchor.Step(d, 1)
		if !t.grid.InBounds(next) || distance(next, c) > anchorTolerance {
			return false
		}
		t.dir = d
		t.push(next)
		return true

	case StateTracking:
		n := len(t.path)
		if c == t.path[n-2] {
			t.pop()
			if len(t.path) == 1 {
				t.dir = Direction{}
			}
			return true
		}
		if next := t.path[n-1].Step(t.dir, 1); c == next && t.grid.InBounds(c) {
			t.push(c)
			return true
		}
	}
	return false
}

// End finishes the gesture and returns the selected path. Selection and suppression
// are cleared regardless of what the caller does with the path.
func (t *Tracker) End() []Coord {
	path := t.path
	t.path = nil
	t.dir = Direction{}
	clear(t.suppressed)
	return path
}

func (t *Tracker) push(c Coord) {
	t.path = append(t.path, c)
	if t.isFound(c) {
		t.suppressed[c] = struct{}{}
	}
}

func (t *Tracker) pop() {
	last := t.path[len(t.path)-1]
	t.path = t.path[:len(t.path)-1]
	delete(t.suppressed, last)
}
