// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Puzzle" mode.
// Exposes two endpoints under /daily:
//   - POST /daily/new         → start today's puzzle (creates or reuses a session)
//   - GET  /daily/leaderboard → fastest completions for today (or ?date=)
//
// Everyone gets the same grid on a given UTC date; gestures go through the
// regular /puzzle/{id} routes. Each player can finish the daily once per day
// (enforced by the daily_results UNIQUE constraint + the in-memory session map).

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/internal/daily"
	"github.com/robalobadob/wordsearch/internal/puzzle"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	salt     string
	now      func() time.Time
	sessions map[string]dailyEntry // keyed by owner|date
	mu       sync.Mutex            // guards sessions
}

// dailyEntry points at the live puzzle for one owner on one date.
type dailyEntry struct {
	PuzzleID string
	Date     string
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		salt:     s.cfg.DailySalt,
		now:      time.Now,
		sessions: make(map[string]dailyEntry),
	}
	s.dailies = dd
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// prune forgets entries for past dates and entries whose puzzle was evicted.
func (d *dailyServer) prune(ctx context.Context) int {
	today := daily.DateKey(d.now())
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for key, e := range d.sessions {
		if e.Date != today {
			delete(d.sessions, key)
			n++
			continue
		}
		if _, err := d.srv.store.Get(ctx, e.PuzzleID); err != nil {
			delete(d.sessions, key)
			n++
		}
	}
	return n
}

// dailyNewRes is returned by /daily/new.
type dailyNewRes struct {
	PuzzleID string       `json:"puzzleId,omitempty"`
	Date     string       `json:"date"`
	Played   bool         `json:"played"`
	View     *puzzle.View `json:"view,omitempty"`
}

// handleNew creates or reuses today's session.
//   - A stored result for today → Played=true, no puzzle.
//   - A live session for owner|date → same puzzle, current view.
//   - Otherwise a fresh puzzle from the daily seed.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	who := d.srv.identify(w, r)
	now := d.now()
	date := daily.DateKey(now)

	if played, err := d.srv.daily.AlreadyPlayed(r.Context(), who.key(), date); err != nil {
		log.Error().Err(err).Str("date", date).Msg("daily lookup")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	} else if played {
		_ = json.NewEncoder(w).Encode(dailyNewRes{Date: date, Played: true})
		return
	}

	key := who.key() + "|" + date
	d.mu.Lock()
	defer d.mu.Unlock()

	if e, ok := d.sessions[key]; ok {
		if sess, err := d.srv.store.Get(r.Context(), e.PuzzleID); err == nil {
			var v puzzle.View
			sess.Do(func(p *puzzle.Puzzle) { v = p.View() })
			_ = json.NewEncoder(w).Encode(dailyNewRes{PuzzleID: e.PuzzleID, Date: date, View: &v})
			return
		}
		// pruned while idle; start over
		delete(d.sessions, key)
	}

	sess, err := d.srv.startSession(r.Context(), who, d.srv.words, puzzle.Options{
		Size:        d.srv.cfg.GridSize,
		MaxAttempts: d.srv.cfg.MaxAttempts,
		Seed:        daily.Seed(now, d.salt),
	}, date)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	d.sessions[key] = dailyEntry{PuzzleID: sess.ID(), Date: date}

	var v puzzle.View
	sess.Do(func(p *puzzle.Puzzle) { v = p.View() })
	writeJSON(w, http.StatusCreated, dailyNewRes{PuzzleID: sess.ID(), Date: date, View: &v})
}

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(d.now())
	}
	rows, err := d.srv.daily.Leaderboard(r.Context(), date, 20)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: rows})
}
