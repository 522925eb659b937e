// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily board:
//   - POST /daily/new → start (or resume) today's board
//
// Every player gets the same board for a UTC day: the seed is derived from
// HMAC(DAILY_SALT, date). A player who already won today's board gets
// played=true and no game. Sessions are reused per player and day while live.

package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/memory/apps/go-server/internal/board"
	"github.com/robalobadob/memory/apps/go-server/internal/daily"
	"github.com/robalobadob/memory/apps/go-server/internal/session"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv    *Server
	mu     sync.Mutex        // guards active
	active map[string]string // ownerID|date → game ID
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{srv: s, active: make(map[string]string)}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
	})
}

// dailyRes is returned by /daily/new.
type dailyRes struct {
	Date   string        `json:"date"`
	Played bool          `json:"played"`
	Game   *session.View `json:"game,omitempty"`
}

// handleNew creates or resumes the caller's daily session.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	s := d.srv
	now := s.now()
	date := daily.DateKey(now)

	userID, anonID := s.owner(w, r)
	owner := userID + anonID

	if won, err := s.history.DailyWon(r.Context(), owner, date); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("daily lookup")
	} else if won {
		_ = json.NewEncoder(w).Encode(dailyRes{Date: date, Played: true})
		return
	}

	key := owner + "|" + date
	d.mu.Lock()
	defer d.mu.Unlock()

	if id, ok := d.active[key]; ok {
		if sess, err := s.sessions.Get(r.Context(), id); err == nil {
			view := sess.View(now, 0)
			if view.Phase != board.PhaseAbandoned {
				_ = json.NewEncoder(w).Encode(dailyRes{Date: date, Played: view.Phase == board.PhaseWon, Game: &view})
				return
			}
		}
		delete(d.active, key)
	}

	sess, err := s.createSession(r, userID, anonID, s.cfg.Board.Rows, s.cfg.Board.Columns, daily.Seed(now, s.cfg.DailySalt), date)
	if err != nil {
		s.writeCreateError(w, r, err)
		return
	}
	d.active[key] = sess.ID
	view := sess.View(now, 0)
	_ = json.NewEncoder(w).Encode(dailyRes{Date: date, Game: &view})
}
