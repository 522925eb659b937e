// internal/session/session.go
//
// A Session is one live game served over HTTP.
// Responsibilities:
//   - Own the board controller, its virtual clock and its effect log.
//   - Catch the virtual clock up to wall-clock time on every access, so the
//     intro sequence and flip timers advance between requests.
//   - Serialise all access behind a mutex: the controller runs on one logical thread.
//   - Build client-facing views that never expose face-down values.

package session

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/robalobadob/memory/apps/go-server/internal/board"
	"github.com/robalobadob/memory/apps/go-server/internal/card"
	"github.com/robalobadob/memory/apps/go-server/internal/deck"
	"github.com/robalobadob/memory/apps/go-server/internal/sched"
)

// Options configures a new Session.
type Options struct {
	Board  board.Config
	Seed   int64
	Daily  string // date key when this is the daily board
	UserID string
	AnonID string
	Now    time.Time
	Logger zerolog.Logger
}

// Session is a live game.
type Session struct {
	ID        string
	Seed      int64
	Daily     string
	UserID    string
	AnonID    string
	StartedAt time.Time

	mu       sync.Mutex
	clock    *sched.Virtual
	effects  *EffectLog
	ctrl     *board.Controller
	pool     deck.Pool
	started  bool
	won      bool
	recorded bool
}

// New validates the board, creates the controller and starts the intro.
// Board configuration errors are returned unchanged (they wrap board.ErrInvalidConfig).
func New(opts Options) (*Session, error) {
	s := &Session{
		ID:        uuid.NewString(),
		Seed:      opts.Seed,
		Daily:     opts.Daily,
		UserID:    opts.UserID,
		AnonID:    opts.AnonID,
		StartedAt: opts.Now,
		clock:     sched.NewVirtual(),
		pool:      opts.Board.Pool,
	}
	s.effects = NewEffectLog(s.clock, s.pool)

	ctrl, err := board.NewController(opts.Board, board.Deps{
		Scheduler: s.clock,
		Rand:      rand.New(rand.NewSource(opts.Seed)),
		Renderer:  s.effects,
		Audio:     s.effects,
		Observer:  s,
		Logger:    opts.Logger.With().Str("gameId", s.ID).Logger(),
	})
	if err != nil {
		return nil, err
	}
	s.ctrl = ctrl
	ctrl.Start()
	return s, nil
}

// GameStarted implements board.Observer.
func (s *Session) GameStarted() { s.started = true }

// GameWon implements board.Observer.
func (s *Session) GameWon() { s.won = true }

// Click routes a click on card index at wall-clock time now.
func (s *Session) Click(now time.Time, index, since int) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sync(now)
	s.ctrl.Click(index)
	return s.view(since)
}

// View returns the state at now with effects from cursor since.
func (s *Session) View(now time.Time, since int) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sync(now)
	return s.view(since)
}

// Abandon tears the game down.
func (s *Session) Abandon(now time.Time, since int) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sync(now)
	s.ctrl.Abandon()
	return s.view(since)
}

// TakeOutcome reports a terminal phase (won or abandoned) exactly once.
func (s *Session) TakeOutcome() (board.Phase, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.ctrl.Phase()
	if s.recorded || (p != board.PhaseWon && p != board.PhaseAbandoned) {
		return p, false
	}
	s.recorded = true
	return p, true
}

func (s *Session) sync(now time.Time) {
	s.clock.AdvanceTo(now.Sub(s.StartedAt))
}

// View is the client-facing snapshot of a session.
type View struct {
	GameID       string      `json:"gameId"`
	Daily        string      `json:"daily,omitempty"`
	Phase        board.Phase `json:"phase"`
	Started      bool        `json:"started"`
	Won          bool        `json:"won"`
	Rows         int         `json:"rows"`
	Columns      int         `json:"columns"`
	MatchedCount int         `json:"matchedCount"`
	TotalCards   int         `json:"totalCards"`
	Pending      *int        `json:"pending,omitempty"`
	ClockMs      int64       `json:"clockMs"`
	Cards        []CardView  `json:"cards"`
	Effects      []Effect    `json:"effects"`
	Cursor       int         `json:"cursor"`
}

// CardView is one card as the client sees it. Value is only set for
// face-up or matched cards.
type CardView struct {
	Index       int           `json:"index"`
	FaceUp      bool          `json:"faceUp"`
	Interactive bool          `json:"interactive"`
	Matched     bool          `json:"matched"`
	Position    card.Position `json:"position"`
	Value       *deck.Value   `json:"value,omitempty"`
}

func (s *Session) view(since int) View {
	cfg := s.ctrl.Config()
	v := View{
		GameID:       s.ID,
		Daily:        s.Daily,
		Phase:        s.ctrl.Phase(),
		Started:      s.started,
		Won:          s.won,
		Rows:         cfg.Rows,
		Columns:      cfg.Columns,
		MatchedCount: s.ctrl.MatchedCount(),
		TotalCards:   s.ctrl.TotalCards(),
		ClockMs:      s.clock.Now().Milliseconds(),
		Cards:        make([]CardView, s.ctrl.Len()),
	}
	if i, ok := s.ctrl.Pending(); ok {
		v.Pending = &i
	}
	for i := range v.Cards {
		c := s.ctrl.Card(i)
		cv := CardView{
			Index:       i,
			FaceUp:      c.FaceUp(),
			Interactive: c.Interactive(),
			Matched:     c.Matched(),
			Position:    c.Position(),
		}
		if c.FaceUp() || c.Matched() {
			val := s.pool[c.PairValue()]
			cv.Value = &val
		}
		v.Cards[i] = cv
	}
	v.Effects, v.Cursor = s.effects.Since(since)
	return v
}
