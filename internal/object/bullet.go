package object

import (
	"github.com/tomz197/skyraid/internal/config"
	"github.com/tomz197/skyraid/internal/physics"
)

// Bullet is a projectile fired by the player. X, Y is the top-left corner.
type Bullet struct {
	X, Y          float64
	Width, Height float64
	Speed         float64 // Units per second, upward
	destroyed     bool
}

// NewBullet creates a bullet fired from a player at (px, py).
func NewBullet(px, py float64, t config.Tuning) *Bullet {
	return &Bullet{
		X:      px + t.BulletOffsetX,
		Y:      py,
		Width:  t.BulletWidth,
		Height: t.BulletHeight,
		Speed:  t.BulletSpeed,
	}
}

// Move advances the bullet upward.
func (b *Bullet) Move(dt float64) {
	b.Y -= b.Speed * dt
}

// Exited reports whether the bullet has left through the top edge.
func (b *Bullet) Exited() bool {
	return b.Y < 0
}

// Box returns the collision box.
func (b *Bullet) Box() physics.Box {
	return physics.Box{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}
}

// MarkDestroyed marks the bullet for removal.
func (b *Bullet) MarkDestroyed() {
	b.destroyed = true
}

// IsDestroyed returns true if the bullet is marked for destruction.
func (b *Bullet) IsDestroyed() bool {
	return b.destroyed
}

// Draw renders the bullet as a filled rectangle.
func (b *Bullet) Draw(ctx DrawContext) error {
	if ctx.Canvas == nil || b.destroyed {
		return nil
	}
	ctx.Canvas.FillRect(b.X, b.Y, b.Width, b.Height)
	return nil
}
