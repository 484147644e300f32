// internal/httpserver/routes_puzzle.go
//
// REST endpoints for playing a puzzle.
//   - POST /puzzle/new           → generate a puzzle, open a session, record the owner
//   - GET  /puzzle/{id}          → current view
//   - POST /puzzle/{id}/begin    → pointer down on {row,col}
//   - POST /puzzle/{id}/extend   → pointer moved over {row,col}
//   - POST /puzzle/{id}/end      → pointer up; evaluates the path
//   - GET  /puzzle/{id}/hint     → locate ?word= without touching game state
//
// Rejected gestures are not errors: the response says changed=false and carries
// the unchanged view.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/internal/daily"
	"github.com/robalobadob/wordsearch/internal/puzzle"
	"github.com/robalobadob/wordsearch/internal/store"
)

const (
	minGridSize = 5
	maxGridSize = 30
	dbTimeout   = 5 * time.Second
)

func (s *Server) mountPuzzle(r chi.Router) {
	r.Post("/puzzle/new", s.handleNewPuzzle)
	r.Get("/puzzle/{id}", s.withSession(s.handleView))
	r.Post("/puzzle/{id}/begin", s.withSession(s.handleBegin))
	r.Post("/puzzle/{id}/extend", s.withSession(s.handleExtend))
	r.Post("/puzzle/{id}/end", s.withSession(s.handleEnd))
	r.Get("/puzzle/{id}/hint", s.withSession(s.handleHint))
}

type newPuzzleReq struct {
	Seed    int64    `json:"seed,omitempty"`
	Words   []string `json:"words,omitempty"`
	Size    int      `json:"size,omitempty"`
	Shuffle bool     `json:"shuffle,omitempty"`
}

type newPuzzleRes struct {
	PuzzleID string      `json:"puzzleId"`
	Seed     int64       `json:"seed"`
	Unplaced []string    `json:"unplaced,omitempty"`
	View     puzzle.View `json:"view"`
}

type cellReq struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type gestureRes struct {
	Changed bool        `json:"changed"`
	View    puzzle.View `json:"view"`
}

type endRes struct {
	Result puzzle.MatchResult `json:"result"`
	View   puzzle.View        `json:"view"`
}

type hintRes struct {
	Word        string         `json:"word"`
	Path        []puzzle.Coord `json:"path,omitempty"`
	Found       bool           `json:"found"`
	HighlightMs int            `json:"highlightMs"`
}

// handleNewPuzzle generates a puzzle from the request (or the configured defaults).
// An empty body is fine.
func (s *Server) handleNewPuzzle(w http.ResponseWriter, r *http.Request) {
	var req newPuzzleReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	size := req.Size
	if size == 0 {
		size = s.cfg.GridSize
	}
	if size < minGridSize || size > maxGridSize {
		writeError(w, http.StatusBadRequest, "size out of range")
		return
	}
	list := req.Words
	if len(list) == 0 {
		list = s.words
	}

	sess, err := s.startSession(r.Context(), s.identify(w, r), list, puzzle.Options{
		Size:        size,
		MaxAttempts: s.cfg.MaxAttempts,
		Seed:        req.Seed,
		Shuffle:     req.Shuffle,
	}, "")
	if err != nil {
		writeSessionError(w, err)
		return
	}

	var res newPuzzleRes
	sess.Do(func(p *puzzle.Puzzle) {
		res = newPuzzleRes{PuzzleID: p.ID, Seed: p.Seed(), Unplaced: p.Unplaced(), View: p.View()}
	})
	writeJSON(w, http.StatusCreated, res)
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request, sess *store.Session) {
	var v puzzle.View
	sess.Do(func(p *puzzle.Puzzle) { v = p.View() })
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleBegin(w http.ResponseWriter, r *http.Request, sess *store.Session) {
	s.handleCell(w, r, sess, (*puzzle.Puzzle).Begin)
}

func (s *Server) handleExtend(w http.ResponseWriter, r *http.Request, sess *store.Session) {
	s.handleCell(w, r, sess, (*puzzle.Puzzle).Extend)
}

// handleCell decodes {row,col} and applies one cell gesture.
func (s *Server) handleCell(w http.ResponseWriter, r *http.Request, sess *store.Session, apply func(*puzzle.Puzzle, puzzle.Coord) bool) {
	var req cellReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	var res gestureRes
	sess.Do(func(p *puzzle.Puzzle) {
		res.Changed = apply(p, puzzle.Coord{Row: req.Row, Col: req.Col})
		res.View = p.View()
	})
	_ = json.NewEncoder(w).Encode(res)
}

func (s *Server) handleEnd(w http.ResponseWriter, r *http.Request, sess *store.Session) {
	res := s.endGesture(sess)
	_ = json.NewEncoder(w).Encode(res)
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request, sess *store.Session) {
	word := r.URL.Query().Get("word")
	if word == "" {
		writeError(w, http.StatusBadRequest, "word required")
		return
	}
	_ = json.NewEncoder(w).Encode(s.hint(sess, word))
}

// ------------------------------ session glue -------------------------------

// withSession resolves {id} to a live session or answers 404.
func (s *Server) withSession(h func(http.ResponseWriter, *http.Request, *store.Session)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		h(w, r, sess)
	}
}

// owner identifies who a puzzle belongs to: a user, or a guest by anonymous cookie.
type owner struct {
	UserID string
	AnonID string
}

func (o owner) key() string {
	if o.UserID != "" {
		return o.UserID
	}
	return o.AnonID
}

// identify resolves the caller, issuing a guest cookie when needed.
func (s *Server) identify(w http.ResponseWriter, r *http.Request) owner {
	if u := currentUser(r); u != nil {
		return owner{UserID: u.ID}
	}
	return owner{AnonID: s.ensureAnonID(w, r)}
}

// startSession builds a puzzle for who, records the puzzles row and stores
// the live session.
func (s *Server) startSession(ctx context.Context, who owner, list []string, opts puzzle.Options, dailyDate string) (*store.Session, error) {
	var sess *store.Session
	// Fires inside sess.Do from the gesture that found the last word.
	opts.OnComplete = func(*puzzle.Puzzle) { s.recordCompletion(sess) }

	p, err := puzzle.New(list, opts)
	if err != nil {
		return nil, err
	}
	sess = store.NewSession(p)
	sess.DailyDate = dailyDate
	sess.UserID = who.UserID
	sess.AnonymousID = who.AnonID

	if err := s.insertPuzzleRow(ctx, sess); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	log.Info().Str("puzzleId", p.ID).Int64("seed", p.Seed()).Str("user", sess.UserID).
		Str("date", dailyDate).Int("words", p.Solvable()).Msg("puzzle started")
	return sess, nil
}

func (s *Server) insertPuzzleRow(ctx context.Context, sess *store.Session) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	p := sess.Puzzle
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO puzzles (id, user_id, anonymous_id, seed, size, words_total, started_at)
		 VALUES (?,?,?,?,?,?,?)`,
		p.ID, nullable(sess.UserID), nullable(sess.AnonymousID), p.Seed(), p.Grid().Size(), p.Solvable(),
		sess.StartedAt.UTC().Format(time.RFC3339)); err != nil {
		return err
	}
	if sess.UserID != "" {
		if err := bumpStats(ctx, tx, sess.UserID, false); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// endGesture finishes the active gesture and persists progress on a new find.
func (s *Server) endGesture(sess *store.Session) endRes {
	var res endRes
	sess.Do(func(p *puzzle.Puzzle) {
		res.Result = p.End()
		res.View = p.View()
	})
	if res.Result.Matched && !res.Result.Completed {
		s.recordProgress(sess.ID(), res.View.Found)
	}
	return res
}

func (s *Server) hint(sess *store.Session, word string) hintRes {
	res := hintRes{Word: word, HighlightMs: puzzle.HintHighlightMs}
	sess.Do(func(p *puzzle.Puzzle) { res.Path, res.Found = p.Hint(word) })
	return res
}

func (s *Server) recordProgress(id string, found int) {
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()
	if _, err := s.db.ExecContext(ctx, `UPDATE puzzles SET words_found=? WHERE id=?`, found, id); err != nil {
		log.Warn().Err(err).Str("puzzleId", id).Msg("record progress")
	}
}

// recordCompletion runs from the completion callback, so the session lock is
// already held: it reads sess.Puzzle directly and must not call sess.Do.
func (s *Server) recordCompletion(sess *store.Session) {
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	p := sess.Puzzle
	elapsed := time.Since(sess.StartedAt).Milliseconds()
	logger := log.With().Str("puzzleId", p.ID).Str("user", sess.UserID).Logger()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error().Err(err).Msg("record completion")
		return
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`UPDATE puzzles SET status='completed', words_found=?, finished_at=? WHERE id=?`,
		p.FoundCount(), time.Now().UTC().Format(time.RFC3339), p.ID); err != nil {
		logger.Error().Err(err).Msg("record completion")
		return
	}
	if sess.UserID != "" {
		if err := bumpStats(ctx, tx, sess.UserID, true); err != nil {
			logger.Error().Err(err).Msg("record completion")
			return
		}
	}
	if err := tx.Commit(); err != nil {
		logger.Error().Err(err).Msg("record completion")
		return
	}

	if sess.DailyDate != "" {
		if err := s.daily.InsertResult(ctx, daily.Result{
			UserID:    sess.Owner(),
			Date:      sess.DailyDate,
			Seed:      p.Seed(),
			Words:     p.Solvable(),
			ElapsedMs: elapsed,
		}); err != nil {
			logger.Error().Err(err).Str("date", sess.DailyDate).Msg("insert daily result")
		}
	}
	logger.Info().Int64("elapsedMs", elapsed).Int("words", p.Solvable()).Msg("puzzle completed")
}

// writeSessionError maps puzzle construction errors to 400 and the rest to 500.
func writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, puzzle.ErrEmptyWordList),
		errors.Is(err, puzzle.ErrInvalidWord),
		errors.Is(err, puzzle.ErrWordTooLong):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Msg("start puzzle")
		writeError(w, http.StatusInternalServerError, "save_failed")
	}
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
