// internal/card/card.go
//
// Card entity for the memory game.
// Responsibilities:
//   - Hold per-card identity (index, pair value) and visible state (face up/down).
//   - Flip with a timed transition: interaction is disabled immediately and restored
//     only once the transition completes.
//   - Forward player clicks to the owning controller when interactable.
//
// Notes:
//   - A card knows nothing about other cards; all game rules live in the board package.
//   - Timing is delegated to a sched.Scheduler; visuals to a Renderer; sound to an AudioSink.

package card

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/robalobadob/memory/apps/go-server/internal/sched"
)

// Position is a board-space coordinate supplied by the layout collaborator.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ClickHandler receives clicks forwarded by interactable cards.
type ClickHandler interface {
	CheckMatch(c *Card)
}

// Timing holds the fixed visual durations a card needs.
type Timing struct {
	Flip  time.Duration // duration of a single flip transition
	Move  time.Duration // duration of a move animation
	Reset time.Duration // start delay used by ResetToFaceDown
}

// Deps bundles the collaborators a card talks to.
type Deps struct {
	Scheduler sched.Scheduler
	Renderer  Renderer
	Audio     AudioSink
	Timing    Timing
	Logger    zerolog.Logger
}

// Card is a single board card.
type Card struct {
	index     int
	pairValue int

	faceUp      bool
	interactive bool
	matched     bool
	position    Position

	showing bool   // face the latest flip is turning to
	gen     uint64 // bumped by ResetToFaceDown; older flip callbacks are dropped

	owner  ClickHandler
	sched  sched.Scheduler
	render Renderer
	audio  AudioSink
	timing Timing
	log    zerolog.Logger
}

// New creates a face-down, non-interactable card owned by owner.
// Nil renderer/audio fall back to no-op implementations.
func New(index, pairValue int, owner ClickHandler, deps Deps) *Card {
	if deps.Renderer == nil {
		deps.Renderer = NopRenderer{}
	}
	if deps.Audio == nil {
		deps.Audio = NopAudio{}
	}
	return &Card{
		index:     index,
		pairValue: pairValue,
		owner:     owner,
		sched:     deps.Scheduler,
		render:    deps.Renderer,
		audio:     deps.Audio,
		timing:    deps.Timing,
		log:       deps.Logger,
	}
}

func (c *Card) Index() int             { return c.index }
func (c *Card) PairValue() int         { return c.pairValue }
func (c *Card) FaceUp() bool           { return c.faceUp }
func (c *Card) Interactive() bool      { return c.interactive }
func (c *Card) Matched() bool          { return c.matched }
func (c *Card) Position() Position     { return c.position }
func (c *Card) SetInteractive(on bool) { c.interactive = on }

// MarkMatched removes the card from further play. Only the controller calls this.
func (c *Card) MarkMatched() {
	c.matched = true
	c.interactive = false
}

// Place puts the card at p without animating.
func (c *Card) Place(p Position) {
	c.position = p
	c.render.Move(c.index, p, 0, 0)
}

// Animate moves the card to a board position after delay.
func (c *Card) Animate(to Position, delay time.Duration) {
	c.position = to
	c.render.Move(c.index, to, delay, c.timing.Move)
}

// Flip turns the card to faceUp over the flip duration, starting after delay.
// Interaction is disabled now and set to interactableAfter when the flip completes.
// The flip sound is requested once, when the transition starts.
func (c *Card) Flip(faceUp, interactableAfter bool, delay time.Duration) {
	c.interactive = false
	c.showing = faceUp
	c.render.Flip(c.index, c.pairValue, faceUp, delay, c.timing.Flip)
	gen := c.gen
	if delay > 0 {
		c.sched.After(delay, func() {
			if gen == c.gen {
				c.playFlipSound()
			}
		})
	} else {
		c.playFlipSound()
	}
	c.sched.After(delay+c.timing.Flip, func() {
		if gen != c.gen {
			return
		}
		c.faceUp = faceUp
		c.interactive = interactableAfter
	})
}

// ResetToFaceDown cancels any flip still in flight, then flips the card down
// after the reset delay if it is face up or turning face up. The card stays
// disabled.
func (c *Card) ResetToFaceDown() {
	c.gen++
	if c.faceUp || c.showing {
		c.Flip(false, false, c.timing.Reset)
	}
	c.interactive = false
}

// NotifyClicked is the per-card click entry point used by the input collaborator.
func (c *Card) NotifyClicked() {
	if !c.interactive || c.owner == nil {
		return
	}
	c.owner.CheckMatch(c)
}

func (c *Card) playFlipSound() {
	if err := c.audio.Play(SoundFlip); err != nil {
		c.log.Debug().Err(err).Int("card", c.index).Msg("flip sound unavailable")
	}
}
