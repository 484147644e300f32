// internal/httpserver/ws.go
//
// Websocket gesture stream for one puzzle: GET /puzzle/{id}/ws.
// Each connection is a serialized input adapter: it reads
//   {"type":"begin|extend|end|hint|view","row":r,"col":c,"word":"..."}
// frames in order and answers every frame with the resulting view.
// A client that drops mid-gesture gets the gesture it began ended for it;
// gestures begun elsewhere (REST or another socket) are left alone.

package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/websocket"

	"github.com/robalobadob/wordsearch/internal/puzzle"
	"github.com/robalobadob/wordsearch/internal/store"
)

type gestureMsg struct {
	Type string `json:"type"`
	Row  int    `json:"row"`
	Col  int    `json:"col"`
	Word string `json:"word,omitempty"`
}

type gestureReply struct {
	Type    string              `json:"type"`
	Changed bool                `json:"changed,omitempty"`
	Result  *puzzle.MatchResult `json:"result,omitempty"`
	Hint    *hintRes            `json:"hint,omitempty"`
	View    *puzzle.View        `json:"view,omitempty"`
	Error   string              `json:"error,omitempty"`
}

func (s *Server) handleGestureSocket(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	ws := websocket.Server{
		Handshake: s.checkOrigin,
		Handler:   func(conn *websocket.Conn) { s.serveGestures(conn, sess) },
	}
	ws.ServeHTTP(w, r)
}

// checkOrigin accepts non-browser clients (no Origin), the configured client
// origin and same-host pages.
func (s *Server) checkOrigin(cfg *websocket.Config, r *http.Request) error {
	origin, err := websocket.Origin(cfg, r)
	if err != nil {
		return err
	}
	cfg.Origin = origin
	if origin == nil || origin.String() == s.cfg.ClientOrigin || origin.Host == r.Host {
		return nil
	}
	return fmt.Errorf("origin %s not allowed", origin)
}

func (s *Server) serveGestures(conn *websocket.Conn, sess *store.Session) {
	logger := log.With().Str("puzzleId", sess.ID()).Logger()
	logger.Debug().Msg("gesture stream opened")
	// began is set while a gesture this connection started is still open.
	began := false
	defer func() {
		_ = conn.Close()
		if began {
			s.dropGesture(sess)
		}
		logger.Debug().Msg("gesture stream closed")
	}()

	for {
		var msg gestureMsg
		err := websocket.JSON.Receive(conn, &msg)
		if err != nil {
			var syntaxErr *json.SyntaxError
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
				if websocket.JSON.Send(conn, gestureReply{Type: "error", Error: "bad_json"}) != nil {
					return
				}
				continue
			}
			if !errors.Is(err, io.EOF) {
				logger.Debug().Err(err).Msg("gesture stream read")
			}
			return
		}
		reply := s.applyGesture(sess, msg)
		switch {
		case msg.Type == "begin" && reply.Changed:
			began = true
		case msg.Type == "end":
			began = false
		}
		if err := websocket.JSON.Send(conn, reply); err != nil {
			logger.Debug().Err(err).Msg("gesture stream write")
			return
		}
	}
}

// applyGesture runs one frame against the session.
func (s *Server) applyGesture(sess *store.Session, msg gestureMsg) gestureReply {
	reply := gestureReply{Type: msg.Type}
	at := puzzle.Coord{Row: msg.Row, Col: msg.Col}
	switch msg.Type {
	case "begin", "extend", "view":
		var v puzzle.View
		sess.Do(func(p *puzzle.Puzzle) {
			switch msg.Type {
			case "begin":
				reply.Changed = p.Begin(at)
			case "extend":
				reply.Changed = p.Extend(at)
			}
			v = p.View()
		})
		reply.View = &v
	case "end":
		res := s.endGesture(sess)
		reply.Result, reply.View = &res.Result, &res.View
	case "hint":
		if msg.Word == "" {
			reply.Error = "word required"
			break
		}
		h := s.hint(sess, msg.Word)
		reply.Hint = &h
	default:
		reply.Error = "unknown type"
	}
	return reply
}

// dropGesture ends the gesture left open by a vanished client.
func (s *Server) dropGesture(sess *store.Session) {
	active := false
	sess.Do(func(p *puzzle.Puzzle) { active = p.State() != puzzle.StateIdle })
	if active {
		s.endGesture(sess)
	}
}
