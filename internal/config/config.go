package config

import "time"

// Frame scheduling. The driver ticks at the display refresh rate; the
// simulation itself is time-scaled and does not depend on it.
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
)

// Input
const (
	KeyHoldDuration = 120 * time.Millisecond // Movement key is held while repeats arrive within this window
)

// Viewport
const (
	ViewportHeightFraction = 1.0 // Share of terminal rows given to the playfield
	MinViewportCols        = 10
	MinViewportRows        = 5
)

// Persistence
const (
	HighScoreKey = "highScore"
)

// Sessions
const (
	DefaultIdleTimeout = 120 * time.Second // SSH sessions are closed after this long without input
)

// Effects
const (
	ExplosionParticles = 12
	ExplosionSpeed     = 120.0 // Units per second
	ExplosionLifetime  = 0.5   // Seconds
)
