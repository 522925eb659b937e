// internal/board/config.go
//
// Board configuration and validation.
// A configuration error is fatal: it is reported by NewController before any
// card is created and the session never starts.

package board

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/robalobadob/memory/apps/go-server/internal/deck"
)

// ErrInvalidConfig is wrapped by every configuration error.
var ErrInvalidConfig = errors.New("board: invalid configuration")

// Timing holds every duration the intro sequence and turn loop rely on.
type Timing struct {
	SpawnDelayStep        time.Duration // stagger between card spawn moves
	SpawnHold             time.Duration // minimum pause before the intro reveal
	MoveDuration          time.Duration // duration of a spawn move
	IntroDelayStep        time.Duration // stagger between intro reveal flips
	IntroHoldDuration     time.Duration // how long the full board stays revealed
	MismatchFlipBackDelay time.Duration // pause before a mismatched pair flips back
	FlipDuration          time.Duration // duration of one flip transition
	ResetDelay            time.Duration // start delay of a reset-to-face-down flip
}

// DefaultTiming is the stock pacing: 3s spawn hold, 5s reveal hold, 0.4s flips.
func DefaultTiming() Timing {
	return Timing{
		SpawnDelayStep:        50 * time.Millisecond,
		SpawnHold:             3 * time.Second,
		MoveDuration:          time.Second,
		IntroDelayStep:        100 * time.Millisecond,
		IntroHoldDuration:     5 * time.Second,
		MismatchFlipBackDelay: 400 * time.Millisecond,
		FlipDuration:          400 * time.Millisecond,
		ResetDelay:            400 * time.Millisecond,
	}
}

// Config describes one board.
type Config struct {
	Rows    int
	Columns int
	Pool    deck.Pool
	Timing  Timing
}

// TotalCards is Rows * Columns.
func (c Config) TotalCards() int { return c.Rows * c.Columns }

// Validate checks dimensions, pool shape and timings.
func (c Config) Validate() error {
	if c.Rows <= 0 || c.Columns <= 0 {
		return fmt.Errorf("%w: dimensions must be positive, got %dx%d", ErrInvalidConfig, c.Rows, c.Columns)
	}
	if c.Rows > math.MaxInt/c.Columns {
		return fmt.Errorf("%w: %dx%d overflows the card count", ErrInvalidConfig, c.Rows, c.Columns)
	}
	if err := validatePool(c.TotalCards(), len(c.Pool)); err != nil {
		return err
	}
	if err := c.Pool.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	t := c.Timing
	for _, d := range []time.Duration{
		t.SpawnDelayStep, t.SpawnHold, t.MoveDuration, t.IntroDelayStep,
		t.IntroHoldDuration, t.MismatchFlipBackDelay, t.FlipDuration, t.ResetDelay,
	} {
		if d < 0 {
			return fmt.Errorf("%w: negative duration %v", ErrInvalidConfig, d)
		}
	}
	return nil
}

// validatePool checks that poolSize values can fill totalCards in whole pairs.
func validatePool(totalCards, poolSize int) error {
	switch {
	case poolSize < 2:
		return fmt.Errorf("%w: value pool needs at least 2 values, got %d", ErrInvalidConfig, poolSize)
	case totalCards%poolSize != 0:
		return fmt.Errorf("%w: pool size %d does not divide %d cards", ErrInvalidConfig, poolSize, totalCards)
	case (totalCards/poolSize)%2 != 0:
		return fmt.Errorf("%w: %d cards per value cannot form pairs", ErrInvalidConfig, totalCards/poolSize)
	}
	return nil
}
