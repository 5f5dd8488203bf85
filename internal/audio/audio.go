// Package audio triggers fire-and-forget sound cues. Playback failures are
// never reported to the game.
package audio

import "io"

// Sound identifies a sound cue.
type Sound int

const (
	SoundShoot Sound = iota
	SoundExplosion
	SoundGameOver
)

// String returns the cue name.
func (s Sound) String() string {
	switch s {
	case SoundShoot:
		return "shoot"
	case SoundExplosion:
		return "explosion"
	case SoundGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Player plays sound cues without blocking.
type Player interface {
	Play(s Sound)
}

// Nop discards every cue.
type Nop struct{}

// Play does nothing.
func (Nop) Play(Sound) {}

// Bell rings the terminal bell for the cues worth hearing remotely.
// Used for SSH sessions where the host's speaker is not the player's.
type Bell struct {
	w io.Writer
}

// NewBell creates a Bell writing to w.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

// Play writes BEL for explosions and game over. Shots stay silent so the
// bell is not rung on every key press. Write errors are ignored.
func (b *Bell) Play(s Sound) {
	switch s {
	case SoundExplosion, SoundGameOver:
		_, _ = b.w.Write([]byte{'\a'})
	}
}
