// Package object holds the game entities and the enemy spawner.
package object

import (
	"time"

	"github.com/tomz197/skyraid/internal/draw"
)

// Spawner allows objects to spawn new objects during update.
type Spawner interface {
	Spawn(obj Object)
}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Delta   time.Duration
	Screen  Screen
	Spawner Spawner
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas      // Half-block canvas in logical coordinates
	Writer *draw.ChunkWriter // Positioned text, relative to the render area
}

// Screen is the logical playfield size.
type Screen struct {
	Width  float64
	Height float64
}

// Contains reports whether the point lies inside the playfield.
func (s Screen) Contains(x, y float64) bool {
	return x >= 0 && x < s.Width && y >= 0 && y < s.Height
}

// Object is a drawable and updatable effect entity.
type Object interface {
	// Update updates the object state. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool, err error)

	// Draw draws the object.
	Draw(ctx DrawContext) error
}

// Destructible is implemented by entities removed by collisions.
type Destructible interface {
	// MarkDestroyed marks the entity for removal at the end of the frame.
	MarkDestroyed()
	// IsDestroyed returns true if the entity is marked for destruction.
	IsDestroyed() bool
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj Object) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}

// Compact removes destroyed entities in place, preserving order.
func Compact[T Destructible](items []T) []T {
	n := 0
	for _, it := range items {
		if !it.IsDestroyed() {
			items[n] = it
			n++
		}
	}
	clear(items[n:])
	return items[:n]
}
