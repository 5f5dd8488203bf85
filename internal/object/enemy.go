package object

import (
	"github.com/tomz197/skyraid/internal/config"
	"github.com/tomz197/skyraid/internal/draw"
	"github.com/tomz197/skyraid/internal/physics"
)

// Enemy descends at a constant speed. X, Y is the top-left corner.
type Enemy struct {
	X, Y          float64
	Width, Height float64
	Speed         float64 // Units per second, downward
	destroyed     bool
}

// NewEnemy creates an enemy at (x, y) with the given descent speed.
func NewEnemy(x, y, speed float64, t config.Tuning) *Enemy {
	return &Enemy{
		X:      x,
		Y:      y,
		Width:  t.EnemyWidth,
		Height: t.EnemyHeight,
		Speed:  speed,
	}
}

// Move advances the enemy downward.
func (e *Enemy) Move(dt float64) {
	e.Y += e.Speed * dt
}

// Box returns the collision box.
func (e *Enemy) Box() physics.Box {
	return physics.Box{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height}
}

// Center returns the centre of the enemy.
func (e *Enemy) Center() (float64, float64) {
	return e.X + e.Width/2, e.Y + e.Height/2
}

// MarkDestroyed marks the enemy for removal.
func (e *Enemy) MarkDestroyed() {
	e.destroyed = true
}

// IsDestroyed returns true if the enemy is marked for destruction.
func (e *Enemy) IsDestroyed() bool {
	return e.destroyed
}

// Escaped reports whether the enemy has left through the bottom edge.
func (e *Enemy) Escaped(screenHeight float64) bool {
	return e.Y >= screenHeight
}

// Draw renders the enemy as an outlined hull pointing down.
func (e *Enemy) Draw(ctx DrawContext) error {
	if ctx.Canvas == nil || e.destroyed {
		return nil
	}
	w, h := e.Width, e.Height
	hull := ctx.Canvas.BorrowPoints(5)
	hull[0] = draw.Point{X: e.X, Y: e.Y}
	hull[1] = draw.Point{X: e.X + w, Y: e.Y}
	hull[2] = draw.Point{X: e.X + w*0.8, Y: e.Y + h*0.6}
	hull[3] = draw.Point{X: e.X + w/2, Y: e.Y + h} // Nose
	hull[4] = draw.Point{X: e.X + w*0.2, Y: e.Y + h*0.6}
	ctx.Canvas.DrawPolygon(hull, false)
	return nil
}
