package object

import (
	"github.com/tomz197/skyraid/internal/config"
	"github.com/tomz197/skyraid/internal/draw"
	"github.com/tomz197/skyraid/internal/physics"
)

// Direction is the horizontal movement intent.
type Direction int

const (
	DirNone Direction = iota
	DirLeft
	DirRight
)

// Player is the ship at the bottom of the playfield. X, Y is the top-left corner.
type Player struct {
	X, Y          float64
	Width, Height float64
	Speed         float64 // Units per second
}

// NewPlayer creates a player centred horizontally just above the bottom edge.
func NewPlayer(t config.Tuning) *Player {
	return &Player{
		X:      t.CanvasWidth/2 - t.PlayerWidth/2,
		Y:      t.CanvasHeight - t.PlayerHeight - t.PlayerBottomMargin,
		Width:  t.PlayerWidth,
		Height: t.PlayerHeight,
		Speed:  t.PlayerSpeed,
	}
}

// Move displaces the player horizontally and keeps it inside [0, screenWidth-Width].
func (p *Player) Move(dir Direction, dt, screenWidth float64) {
	switch dir {
	case DirLeft:
		p.X -= p.Speed * dt
	case DirRight:
		p.X += p.Speed * dt
	}
	p.X = physics.Clamp(p.X, 0, screenWidth-p.Width)
}

// Box returns the collision box.
func (p *Player) Box() physics.Box {
	return physics.Box{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height}
}

// Center returns the centre of the ship.
func (p *Player) Center() (float64, float64) {
	return p.X + p.Width/2, p.Y + p.Height/2
}

// Draw renders the ship as a filled arrow pointing up.
func (p *Player) Draw(ctx DrawContext) error {
	if ctx.Canvas == nil {
		return nil
	}
	w, h := p.Width, p.Height
	ship := ctx.Canvas.BorrowPoints(4)
	ship[0] = draw.Point{X: p.X + w/2, Y: p.Y}          // Nose
	ship[1] = draw.Point{X: p.X + w, Y: p.Y + h}        // Right wing
	ship[2] = draw.Point{X: p.X + w/2, Y: p.Y + h*0.75} // Exhaust notch
	ship[3] = draw.Point{X: p.X, Y: p.Y + h}            // Left wing
	ctx.Canvas.DrawPolygon(ship, true)
	return nil
}
