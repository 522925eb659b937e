package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/robalobadob/memory/apps/go-server/internal/board"
	"github.com/robalobadob/memory/apps/go-server/internal/deck"
)

var t0 = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestSession(t *testing.T, rows, cols int) *Session {
	t.Helper()
	pool := deck.Pool{{ID: "a", Asset: "a.png"}, {ID: "b", Asset: "b.png"}}
	s, err := New(Options{
		Board:  board.Config{Rows: rows, Columns: cols, Pool: pool, Timing: board.DefaultTiming()},
		Seed:   11,
		Now:    t0,
		Logger: zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s
}

func TestNewSessionRejectsBadBoard(t *testing.T) {
	_, err := New(Options{
		Board: board.Config{Rows: 3, Columns: 3, Pool: deck.Pool{{ID: "a"}, {ID: "b"}}},
		Now:   t0,
	})
	if !errors.Is(err, board.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestViewHidesFaceDownValues(t *testing.T) {
	s := newTestSession(t, 2, 2)

	v := s.View(t0, 0)
	if v.Phase != board.PhaseSpawning {
		t.Fatalf("expected spawning, got %s", v.Phase)
	}
	for _, c := range v.Cards {
		if c.Value != nil {
			t.Fatalf("card %d: value leaked while face-down", c.Index)
		}
	}
	if len(v.Effects) == 0 {
		t.Fatal("expected spawn effects")
	}

	// Mid-hold, every card is revealed.
	v = s.View(t0.Add(5*time.Second), v.Cursor)
	if v.Phase != board.PhaseIntroRevealing {
		t.Fatalf("expected intro_revealing, got %s", v.Phase)
	}
	for _, c := range v.Cards {
		if !c.FaceUp || c.Value == nil {
			t.Fatalf("card %d: expected revealed value", c.Index)
		}
	}
}

func TestSessionPlaysToWin(t *testing.T) {
	s := newTestSession(t, 2, 2)
	now := t0.Add(time.Minute)

	v := s.View(now, 0)
	if v.Phase != board.PhasePlayable || !v.Started {
		t.Fatalf("expected playable after intro, got %s", v.Phase)
	}
	cursor := v.Cursor

	// Alternating assignment: cards 0 and 2 pair up, as do 1 and 3.
	v = s.Click(now, 0, cursor)
	if v.Pending == nil || *v.Pending != 0 {
		t.Fatal("expected card 0 pending")
	}
	var flips, sounds int
	for _, e := range v.Effects {
		switch e.Kind {
		case EffectFlip:
			flips++
			if e.Card != 0 || e.Value == nil || !*e.FaceUp {
				t.Fatalf("unexpected flip effect %+v", e)
			}
		case EffectSound:
			sounds++
		}
	}
	if flips != 1 || sounds != 1 {
		t.Fatalf("expected one flip and one sound, got %d/%d", flips, sounds)
	}

	s.Click(now, 2, 0)
	now = now.Add(time.Second)
	s.Click(now, 1, 0)
	v = s.Click(now, 3, 0)
	if v.Phase != board.PhaseWon || !v.Won || v.MatchedCount != 4 {
		t.Fatalf("expected won 4/4, got %s %d", v.Phase, v.MatchedCount)
	}

	if p, ok := s.TakeOutcome(); !ok || p != board.PhaseWon {
		t.Fatalf("expected won outcome once, got %s %v", p, ok)
	}
	if _, ok := s.TakeOutcome(); ok {
		t.Fatal("expected outcome reported only once")
	}
}

func TestSessionClickIgnoredDuringIntro(t *testing.T) {
	s := newTestSession(t, 2, 2)
	v := s.Click(t0.Add(time.Second), 0, 0)
	if v.Pending != nil {
		t.Fatal("expected click ignored during intro")
	}
	if _, ok := s.TakeOutcome(); ok {
		t.Fatal("expected no outcome while playing")
	}
}

func TestSessionAbandon(t *testing.T) {
	s := newTestSession(t, 2, 2)
	v := s.Abandon(t0.Add(time.Minute), 0)
	if v.Phase != board.PhaseAbandoned {
		t.Fatalf("expected abandoned, got %s", v.Phase)
	}
	if p, ok := s.TakeOutcome(); !ok || p != board.PhaseAbandoned {
		t.Fatal("expected abandoned outcome")
	}
}

func TestEffectsSinceCursor(t *testing.T) {
	s := newTestSession(t, 2, 2)
	all := s.View(t0, 0)
	tail := s.View(t0, all.Cursor-1)
	if len(tail.Effects) != 1 || tail.Effects[0].Seq != all.Cursor-1 {
		t.Fatalf("expected last effect only, got %+v", tail.Effects)
	}
	none := s.View(t0, all.Cursor+10)
	if len(none.Effects) != 0 || none.Cursor != all.Cursor {
		t.Fatalf("expected no effects past the end, got %d", len(none.Effects))
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	old := newTestSession(t, 2, 2)
	fresh := newTestSession(t, 2, 2)
	fresh.StartedAt = t0.Add(time.Hour)

	_ = st.Save(ctx, old)
	_ = st.Save(ctx, fresh)
	if got, err := st.Get(ctx, old.ID); err != nil || got != old {
		t.Fatalf("expected stored session, got %v %v", got, err)
	}
	if _, err := st.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if n := st.Prune(ctx, t0.Add(time.Minute)); n != 1 {
		t.Fatalf("expected 1 pruned, got %d", n)
	}
	if _, err := st.Get(ctx, old.ID); !errors.Is(err, ErrNotFound) {
		t.Fatal("expected old session pruned")
	}
}
