// internal/httpserver/server.go
//
// HTTP server wiring for the word-search backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Puzzle endpoints (optional auth): /puzzle/new, /puzzle/{id}[/begin|/extend|/end|/hint|/ws].
//   - Daily puzzle endpoints (optional auth): mounted under /daily.
//   - Auth + profile endpoints (require auth): /auth/*, /stats/me, /puzzles/mine.
//
// Notes:
//   - The puzzle engine is single-threaded; every gesture runs inside Session.Do.
//   - Only outcomes reach SQLite; a restart loses live puzzles.
//   - The websocket route sits outside the request timeout.

package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/internal/config"
	"github.com/robalobadob/wordsearch/internal/daily"
	"github.com/robalobadob/wordsearch/internal/store"
)

const (
	requestTimeout = 10 * time.Second
	sessionMaxIdle = 2 * time.Hour
	pruneEvery     = 10 * time.Minute
)

// Server bundles the router, the live session store, the DB handles and the word list.
type Server struct {
	r     *chi.Mux
	cfg   config.Config
	store store.Store
	db    *sql.DB
	daily *daily.Store
	words []string

	dailies *dailyServer // set by mountDaily
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, st store.Store, db *sql.DB, words []string) *Server {
	s := &Server{r: chi.NewRouter(), cfg: cfg, store: st, db: db, daily: daily.NewStore(db), words: words}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(s.cors)

	// Long-lived gesture stream: no timeout, no JSON content type.
	s.r.With(s.withOptionalAuth()).Get("/puzzle/{id}/ws", s.handleGestureSocket)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(requestTimeout))
		r.Use(jsonContentType)

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"service":"wordsearch","endpoints":["/health","POST /puzzle/new","/puzzle/{id}","/daily/*","/auth/*"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"ok":true}`))
		})

		s.mountPuzzle(r.With(s.withOptionalAuth()))
		s.mountDaily(r.With(s.withOptionalAuth()))
		s.mountAuthRoutes(r)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start prunes idle sessions in the background and serves HTTP on addr.
func (s *Server) Start(addr string) error {
	go s.pruneLoop(context.Background())
	return http.ListenAndServe(addr, s.r)
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

func (s *Server) pruneLoop(ctx context.Context) {
	t := time.NewTicker(pruneEvery)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.prune(ctx)
		}
	}
}

// prune drops idle puzzles, then the daily index entries that no longer point at one.
func (s *Server) prune(ctx context.Context) {
	if n := s.store.Prune(ctx, sessionMaxIdle); n > 0 {
		log.Info().Int("sessions", n).Msg("pruned idle puzzles")
	}
	if s.dailies != nil {
		if n := s.dailies.prune(ctx); n > 0 {
			log.Info().Int("entries", n).Msg("pruned daily index")
		}
	}
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------- helpers -----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
