package loop

import (
	"github.com/tomz197/skyraid/internal/audio"
	"github.com/tomz197/skyraid/internal/config"
	"github.com/tomz197/skyraid/internal/object"
	"github.com/tomz197/skyraid/internal/physics"
)

// resolveCollisions moves every enemy and resolves its collisions in order.
// A player hit ends the session immediately and returns true. Otherwise each
// enemy is destroyed by at most one bullet, worth one point.
func (g *Game) resolveCollisions(dt float64) bool {
	playerBox := g.player.Box()

	for _, e := range g.enemies {
		e.Move(dt)
		enemyBox := e.Box()

		if physics.Overlap(playerBox, enemyBox) {
			g.gameOver()
			return true
		}

		for _, b := range g.bullets {
			if b.IsDestroyed() {
				continue
			}
			if !physics.Overlap(b.Box(), enemyBox) {
				continue
			}

			b.MarkDestroyed()
			e.MarkDestroyed()
			g.score++
			g.audio.Play(audio.SoundExplosion)

			cx, cy := e.Center()
			object.SpawnExplosion(cx, cy, config.ExplosionParticles, config.ExplosionSpeed, config.ExplosionLifetime, g.rng, g)
			break
		}
	}
	return false
}
