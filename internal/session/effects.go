// internal/session/effects.go
//
// EffectLog is the rendering and audio collaborator for HTTP sessions.
// Instead of animating, it records each request with its virtual start time so
// a client can replay moves, flips and sounds in sync with the server clock.

package session

import (
	"time"

	"github.com/robalobadob/memory/apps/go-server/internal/card"
	"github.com/robalobadob/memory/apps/go-server/internal/deck"
	"github.com/robalobadob/memory/apps/go-server/internal/sched"
)

// EffectKind names a recorded effect.
type EffectKind string

const (
	EffectMove  EffectKind = "move"
	EffectFlip  EffectKind = "flip"
	EffectSound EffectKind = "sound"
)

// Effect is one scheduled visual or audio effect. Card is -1 for sounds.
type Effect struct {
	Seq        int            `json:"seq"`
	Kind       EffectKind     `json:"kind"`
	Card       int            `json:"card"`
	AtMs       int64          `json:"atMs"`
	DurationMs int64          `json:"durationMs,omitempty"`
	To         *card.Position `json:"to,omitempty"`
	FaceUp     *bool          `json:"faceUp,omitempty"`
	Value      *deck.Value    `json:"value,omitempty"`
	Sound      card.Sound     `json:"sound,omitempty"`
}

// EffectLog implements card.Renderer and card.AudioSink.
type EffectLog struct {
	clock   *sched.Virtual
	pool    deck.Pool
	effects []Effect
}

// NewEffectLog records effects against clock, resolving pair values through pool.
func NewEffectLog(clock *sched.Virtual, pool deck.Pool) *EffectLog {
	return &EffectLog{clock: clock, pool: pool}
}

func (l *EffectLog) Move(index int, to card.Position, delay, duration time.Duration) {
	l.add(Effect{Kind: EffectMove, Card: index, AtMs: l.at(delay), DurationMs: duration.Milliseconds(), To: &to})
}

// Flip records a flip. Face-up flips carry the revealed value.
func (l *EffectLog) Flip(index, pairValue int, faceUp bool, delay, duration time.Duration) {
	e := Effect{Kind: EffectFlip, Card: index, AtMs: l.at(delay), DurationMs: duration.Milliseconds(), FaceUp: &faceUp}
	if faceUp && pairValue >= 0 && pairValue < len(l.pool) {
		v := l.pool[pairValue]
		e.Value = &v
	}
	l.add(e)
}

func (l *EffectLog) Play(s card.Sound) error {
	l.add(Effect{Kind: EffectSound, Card: -1, AtMs: l.clock.Now().Milliseconds(), Sound: s})
	return nil
}

// Since returns the effects with Seq >= cursor and the next cursor.
func (l *EffectLog) Since(cursor int) ([]Effect, int) {
	if cursor < 0 {
		cursor = 0
	}
	if cursor >= len(l.effects) {
		return []Effect{}, len(l.effects)
	}
	return append([]Effect(nil), l.effects[cursor:]...), len(l.effects)
}

func (l *EffectLog) at(delay time.Duration) int64 {
	return (l.clock.Now() + delay).Milliseconds()
}

func (l *EffectLog) add(e Effect) {
	e.Seq = len(l.effects)
	l.effects = append(l.effects, e)
}
