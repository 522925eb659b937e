package card

import "time"

// Sound identifies a sound effect requested by the core.
type Sound string

const SoundFlip Sound = "flip"

// Renderer plays card animations. Calls are fire-and-forget; completion is
// tracked by the core through its scheduler.
type Renderer interface {
	Move(index int, to Position, delay, duration time.Duration)
	Flip(index, pairValue int, faceUp bool, delay, duration time.Duration)
}

// AudioSink plays sounds. An error means the sink is unavailable; callers ignore it.
type AudioSink interface {
	Play(s Sound) error
}

// NopRenderer discards every animation request.
type NopRenderer struct{}

func (NopRenderer) Move(int, Position, time.Duration, time.Duration)  {}
func (NopRenderer) Flip(int, int, bool, time.Duration, time.Duration) {}

// NopAudio discards every sound request.
type NopAudio struct{}

func (NopAudio) Play(Sound) error { return nil }
