// internal/board/controller.go
//
// Game controller for a single memory-game session.
// Responsibilities:
//   - Create the cards and assign pair values.
//   - Run the intro: spawn moves → reveal every card → hold → hide every card.
//   - Evaluate clicks into matches and mismatches; detect the win.
//
// State machine:
//
//	idle → spawning → intro_revealing → intro_hiding → playable
//	playable → evaluating → playable | won
//	any → abandoned (external teardown)
//
// Notes:
//   - The controller is the only writer of the pending selection and the
//     matched count. It is not safe for concurrent use; callers serialise
//     access (one logical control thread).
//   - Phase changes wait on a single aggregate timer sized past the slowest
//     staggered animation, never on individual card completions.

package board

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/robalobadob/memory/apps/go-server/internal/card"
	"github.com/robalobadob/memory/apps/go-server/internal/sched"
)

// Phase is a controller state.
type Phase string

const (
	PhaseIdle           Phase = "idle"
	PhaseSpawning       Phase = "spawning"
	PhaseIntroRevealing Phase = "intro_revealing"
	PhaseIntroHiding    Phase = "intro_hiding"
	PhasePlayable       Phase = "playable"
	PhaseEvaluating     Phase = "evaluating"
	PhaseWon            Phase = "won"
	PhaseAbandoned      Phase = "abandoned"
)

// Observer receives game-lifecycle signals. Each fires at most once per session.
type Observer interface {
	GameStarted()
	GameWon()
}

// NopObserver ignores lifecycle signals.
type NopObserver struct{}

func (NopObserver) GameStarted() {}
func (NopObserver) GameWon()     {}

// Deps bundles the collaborators of a Controller. Scheduler and Rand are required.
type Deps struct {
	Scheduler sched.Scheduler
	Rand      Source
	Renderer  card.Renderer
	Audio     card.AudioSink
	Layout    Layout
	Observer  Observer
	Logger    zerolog.Logger
}

// Controller owns the cards and drives the game.
type Controller struct {
	cfg    Config
	timing Timing
	sched  sched.Scheduler
	layout Layout
	obs    Observer
	log    zerolog.Logger

	cards   []*card.Card
	phase   Phase
	pending *card.Card
	matched int
}

// NewController validates cfg, assigns pair values and creates the cards.
// Nothing is scheduled until Start.
func NewController(cfg Config, deps Deps) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	values, err := AssignPairValues(cfg.TotalCards(), len(cfg.Pool), deps.Rand)
	if err != nil {
		return nil, err
	}
	if deps.Layout == nil {
		deps.Layout = NewGridLayout(cfg.Rows, cfg.Columns)
	}
	if deps.Observer == nil {
		deps.Observer = NopObserver{}
	}

	c := &Controller{
		cfg:    cfg,
		timing: cfg.Timing,
		sched:  deps.Scheduler,
		layout: deps.Layout,
		obs:    deps.Observer,
		log:    deps.Logger,
		phase:  PhaseIdle,
		cards:  make([]*card.Card, len(values)),
	}
	cardDeps := card.Deps{
		Scheduler: deps.Scheduler,
		Renderer:  deps.Renderer,
		Audio:     deps.Audio,
		Logger:    deps.Logger,
		Timing: card.Timing{
			Flip:  cfg.Timing.FlipDuration,
			Move:  cfg.Timing.MoveDuration,
			Reset: cfg.Timing.ResetDelay,
		},
	}
	origin := c.layout.Origin()
	for i, v := range values {
		c.cards[i] = card.New(i, v, c, cardDeps)
		c.cards[i].Place(origin)
	}
	return c, nil
}

func (c *Controller) Config() Config        { return c.cfg }
func (c *Controller) Phase() Phase          { return c.phase }
func (c *Controller) MatchedCount() int     { return c.matched }
func (c *Controller) TotalCards() int       { return len(c.cards) }
func (c *Controller) Len() int              { return len(c.cards) }
func (c *Controller) Card(i int) *card.Card { return c.cards[i] }

// Pending reports the index of the pending first selection, if any.
func (c *Controller) Pending() (int, bool) {
	if c.pending == nil {
		return -1, false
	}
	return c.pending.Index(), true
}

// Start begins the spawn and intro sequence. Calls after the first are ignored.
func (c *Controller) Start() {
	if c.phase != PhaseIdle {
		return
	}
	c.setPhase(PhaseSpawning)

	var last time.Duration
	for i, cd := range c.cards {
		last = time.Duration(i) * c.timing.SpawnDelayStep
		cd.Animate(c.layout.Position(i), last)
	}
	wait := max(c.timing.SpawnHold, last+c.timing.MoveDuration)
	c.sched.After(wait, c.introReveal)
}

func (c *Controller) introReveal() {
	if c.phase != PhaseSpawning {
		return
	}
	c.setPhase(PhaseIntroRevealing)

	var delay time.Duration
	for _, cd := range c.cards {
		delay += c.timing.IntroDelayStep
		cd.Flip(true, false, delay)
	}
	c.sched.After(delay+c.timing.FlipDuration+c.timing.IntroHoldDuration, c.introHide)
}

func (c *Controller) introHide() {
	if c.phase != PhaseIntroRevealing {
		return
	}
	c.setPhase(PhaseIntroHiding)

	for _, cd := range c.cards {
		cd.Flip(false, true, 0)
	}
	c.sched.After(c.timing.FlipDuration, c.beginPlay)
}

func (c *Controller) beginPlay() {
	if c.phase != PhaseIntroHiding {
		return
	}
	c.setPhase(PhasePlayable)
	c.obs.GameStarted()
}

// Click is the input entry point for card i. Unknown indices are ignored.
func (c *Controller) Click(i int) {
	if i < 0 || i >= len(c.cards) {
		c.log.Debug().Int("card", i).Msg("click on nonexistent card ignored")
		return
	}
	c.cards[i].NotifyClicked()
}

// CheckMatch evaluates a click forwarded by an interactable card.
func (c *Controller) CheckMatch(cd *card.Card) {
	if c.phase != PhasePlayable || !c.owns(cd) {
		return
	}
	c.setPhase(PhaseEvaluating)

	if c.pending == nil {
		cd.Flip(true, false, 0)
		c.pending = cd
		c.setPhase(PhasePlayable)
		return
	}

	first := c.pending
	c.pending = nil
	cd.Flip(true, false, 0)

	if first.PairValue() == cd.PairValue() {
		first.MarkMatched()
		cd.MarkMatched()
		c.matched += 2
		c.log.Debug().Int("first", first.Index()).Int("second", cd.Index()).
			Int("matched", c.matched).Msg("pair matched")
		if c.matched == len(c.cards) {
			c.setPhase(PhaseWon)
			c.obs.GameWon()
			return
		}
		c.setPhase(PhasePlayable)
		return
	}

	back := c.timing.FlipDuration + c.timing.MismatchFlipBackDelay
	cd.Flip(false, true, back)
	first.Flip(false, true, back)
	c.setPhase(PhasePlayable)
}

// Abandon tears the session down: unmatched cards reset face down and no
// further clicks are evaluated.
func (c *Controller) Abandon() {
	if c.phase == PhaseWon || c.phase == PhaseAbandoned {
		return
	}
	c.setPhase(PhaseAbandoned)
	c.pending = nil
	for _, cd := range c.cards {
		if !cd.Matched() {
			cd.ResetToFaceDown()
		}
	}
}

func (c *Controller) owns(cd *card.Card) bool {
	i := cd.Index()
	return i >= 0 && i < len(c.cards) && c.cards[i] == cd
}

func (c *Controller) setPhase(p Phase) {
	if p != PhaseEvaluating && c.phase != PhaseEvaluating {
		c.log.Debug().Str("from", string(c.phase)).Str("to", string(p)).Msg("phase")
	}
	c.phase = p
}
