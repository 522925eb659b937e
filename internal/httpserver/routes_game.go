// internal/httpserver/routes_game.go
//
// HTTP routes for free-play games:
//   - POST   /game/new    → create a session and start its intro
//   - POST   /game/click  → click card i of a session
//   - GET    /game/{id}   → current view (effects after ?since=cursor)
//   - DELETE /game/{id}   → abandon the session
//
// Clicks on disabled or nonexistent cards are not errors: the response is the
// unchanged view. Outcomes (won/abandoned) are written to history once.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/memory/apps/go-server/internal/board"
	"github.com/robalobadob/memory/apps/go-server/internal/history"
	"github.com/robalobadob/memory/apps/go-server/internal/session"
)

// mountGame registers the /game routes.
func (s *Server) mountGame(r chi.Router) {
	r.Route("/game", func(r chi.Router) {
		r.Post("/new", s.handleNewGame)
		r.Post("/click", s.handleClick)
		r.Get("/{id}", s.handleGetGame)
		r.Delete("/{id}", s.handleAbandon)
	})
}

// newGameReq is the payload for POST /game/new. Zero dimensions use the configured defaults.
type newGameReq struct {
	Rows    int    `json:"rows"`
	Columns int    `json:"columns"`
	Seed    *int64 `json:"seed"` // optional fixed seed (testing, replays)
}

// handleNewGame creates a session sized from the request and records its start.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	rows, cols := req.Rows, req.Columns
	if rows == 0 {
		rows = s.cfg.Board.Rows
	}
	if cols == 0 {
		cols = s.cfg.Board.Columns
	}

	var seed int64
	if req.Seed != nil {
		seed = *req.Seed
	} else {
		var err error
		if seed, err = newSeed(); err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("seed")
			writeError(w, http.StatusInternalServerError, "seed_failed")
			return
		}
	}

	userID, anonID := s.owner(w, r)
	sess, err := s.createSession(r, userID, anonID, rows, cols, seed, "")
	if err != nil {
		s.writeCreateError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(sess.View(s.now(), 0))
}

// clickReq is the payload for POST /game/click.
type clickReq struct {
	GameID string `json:"gameId"`
	Index  int    `json:"index"`
	Since  int    `json:"since"` // effect cursor from the previous view
}

// handleClick routes a click to the session and records a finished outcome.
func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	var req clickReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	sess, err := s.sessions.Get(r.Context(), req.GameID)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	view := sess.Click(s.now(), req.Index, req.Since)
	s.recordOutcome(r, sess)
	_ = json.NewEncoder(w).Encode(view)
}

// handleGetGame returns the current view of a session.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	since, _ := strconv.Atoi(r.URL.Query().Get("since"))
	_ = json.NewEncoder(w).Encode(sess.View(s.now(), since))
}

// handleAbandon tears a session down.
func (s *Server) handleAbandon(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	since, _ := strconv.Atoi(r.URL.Query().Get("since"))
	view := sess.Abandon(s.now(), since)
	s.recordOutcome(r, sess)
	_ = json.NewEncoder(w).Encode(view)
}

// ------------------------------ helpers ------------------------------------

var errTooManyCards = errors.New("board too large")

// owner identifies the caller: the signed-in user, else the anonymous cookie.
func (s *Server) owner(w http.ResponseWriter, r *http.Request) (userID, anonID string) {
	if me := currentUser(r); me != nil {
		return me.ID, ""
	}
	return "", s.ensureAnonID(w, r)
}

// createSession builds, stores and records a new session.
func (s *Server) createSession(r *http.Request, userID, anonID string, rows, cols int, seed int64, dailyDate string) (*session.Session, error) {
	limit := s.cfg.Board.MaxCards
	if rows > limit || cols > limit || rows*cols > limit {
		return nil, errTooManyCards
	}
	opts := session.Options{
		Board: board.Config{
			Rows:    rows,
			Columns: cols,
			Pool:    s.pool.ForBoard(rows * cols),
			Timing:  s.cfg.Board.Timing(),
		},
		Seed:   seed,
		Daily:  dailyDate,
		UserID: userID,
		AnonID: anonID,
		Now:    s.now(),
		Logger: s.log,
	}

	sess, err := session.New(opts)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Save(r.Context(), sess); err != nil {
		return nil, err
	}
	if err := s.history.Start(r.Context(), history.Record{
		ID:        sess.ID,
		UserID:    sess.UserID,
		AnonID:    sess.AnonID,
		Daily:     dailyDate,
		Rows:      rows,
		Columns:   cols,
		Seed:      seed,
		StartedAt: sess.StartedAt,
	}); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Str("gameId", sess.ID).Msg("insert game row")
	}
	hlog.FromRequest(r).Info().Str("gameId", sess.ID).Int("rows", rows).Int("columns", cols).Msg("game created")
	return sess, nil
}

// writeCreateError maps session creation failures to HTTP errors.
func (s *Server) writeCreateError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, board.ErrInvalidConfig), errors.Is(err, errTooManyCards):
		hlog.FromRequest(r).Debug().Err(err).Msg("rejected board")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_board", "detail": err.Error()})
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("create game")
		writeError(w, http.StatusInternalServerError, "save_failed")
	}
}

// recordOutcome writes a finished session's status to history (best effort).
func (s *Server) recordOutcome(r *http.Request, sess *session.Session) {
	phase, ok := sess.TakeOutcome()
	if !ok {
		return
	}
	status := history.StatusAbandoned
	if phase == board.PhaseWon {
		status = history.StatusWon
	}
	if err := s.history.Finish(r.Context(), sess.ID, status, s.now()); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Str("gameId", sess.ID).Msg("finish game row")
		return
	}
	hlog.FromRequest(r).Info().Str("gameId", sess.ID).Str("status", status).Msg("game finished")
}
