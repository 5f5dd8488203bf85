package loop

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/skyraid/internal/audio"
	"github.com/tomz197/skyraid/internal/config"
	"github.com/tomz197/skyraid/internal/input"
	"github.com/tomz197/skyraid/internal/object"
	"github.com/tomz197/skyraid/internal/store"
)

// GameOptions configures the collaborators of a Game. Zero values get defaults.
type GameOptions struct {
	Audio  audio.Player         // Defaults to audio.Nop
	Store  store.HighScoreStore // Defaults to an in-memory store
	Logger *log.Logger          // Defaults to a discarding logger
	Rand   *rand.Rand           // Spawn positions, speeds and effects
}

// Game owns the session state and advances the simulation one frame at a time.
// It is not safe for concurrent use; the frame driver is its only caller.
type Game struct {
	tuning config.Tuning
	screen object.Screen

	state     GameState
	score     int
	highScore int

	player  *object.Player
	enemies []*object.Enemy
	bullets []*object.Bullet
	effects []object.Object
	toSpawn []object.Object // Effects added after the current update cycle

	spawner *object.EnemySpawner

	// Held horizontal intent
	left, right bool

	audio  audio.Player
	store  store.HighScoreStore
	logger *log.Logger
	rng    *rand.Rand
}

// Compile-time check that Game implements object.Spawner.
var _ object.Spawner = (*Game)(nil)

// NewGame creates a game in the NotStarted state with the high score loaded
// from the store.
func NewGame(t config.Tuning, opts GameOptions) *Game {
	if opts.Audio == nil {
		opts.Audio = audio.Nop{}
	}
	if opts.Store == nil {
		opts.Store = store.NewMemoryStore()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	g := &Game{
		tuning:  t,
		screen:  object.Screen{Width: t.CanvasWidth, Height: t.CanvasHeight},
		state:   StateNotStarted,
		spawner: object.NewEnemySpawner(t, opts.Rand),
		audio:   opts.Audio,
		store:   opts.Store,
		logger:  opts.Logger,
		rng:     opts.Rand,
	}
	if hs, ok := g.store.Get(config.HighScoreKey); ok && hs > 0 {
		g.highScore = hs
	}
	return g
}

// Start begins a new session. It does nothing while a session is running or paused.
func (g *Game) Start() {
	if g.state == StateRunning || g.state == StatePaused {
		return
	}

	g.score = 0
	g.player = object.NewPlayer(g.tuning)
	clear(g.enemies)
	g.enemies = g.enemies[:0]
	clear(g.bullets)
	g.bullets = g.bullets[:0]
	g.releaseEffects()
	g.left, g.right = false, false

	g.spawner.Reset()
	g.enemies = g.spawner.Replenish(g.enemies, g.screen)

	g.state = StateRunning
	g.logger.Info("session started", "highScore", g.highScore)
}

// gameOver ends the session and raises the persisted high score.
func (g *Game) gameOver() {
	g.spawner.Reset()
	g.audio.Play(audio.SoundGameOver)

	if g.score > 0 {
		// Other sessions may have raised the stored score since NewGame.
		best, err := store.Raise(g.store, config.HighScoreKey, g.score)
		if err != nil {
			g.logger.Error("failed to save high score", "err", err)
			best = g.score
		}
		g.highScore = max(g.highScore, best)
	}

	g.state = StateGameOver
	g.logger.Info("game over", "score", g.score, "highScore", g.highScore)
}

// Pause freezes a running session.
func (g *Game) Pause() {
	if g.state == StateRunning {
		g.state = StatePaused
	}
}

// Resume continues a paused session.
func (g *Game) Resume() {
	if g.state == StatePaused {
		g.state = StateRunning
	}
}

// TogglePause switches between running and paused.
func (g *Game) TogglePause() {
	switch g.state {
	case StateRunning:
		g.Pause()
	case StatePaused:
		g.Resume()
	}
}

// HandleEvent dispatches a key transition.
func (g *Game) HandleEvent(ev input.Event) {
	if ev.Down {
		g.KeyDown(ev.Key)
	} else {
		g.KeyUp(ev.Key)
	}
}

// KeyDown applies a key press.
func (g *Game) KeyDown(k input.Key) {
	switch k {
	case input.KeyLeft:
		g.left = true
	case input.KeyRight:
		g.right = true
	case input.KeyFire:
		switch g.state {
		case StateRunning:
			g.fire()
		case StateNotStarted, StateGameOver:
			g.Start()
		}
	case input.KeyStart:
		g.Start()
	case input.KeyPause:
		g.TogglePause()
	}
}

// KeyUp applies a key release.
func (g *Game) KeyUp(k input.Key) {
	switch k {
	case input.KeyLeft:
		g.left = false
	case input.KeyRight:
		g.right = false
	}
}

// fire launches a bullet from the player's current position.
func (g *Game) fire() {
	g.bullets = append(g.bullets, object.NewBullet(g.player.X, g.player.Y, g.tuning))
	g.audio.Play(audio.SoundShoot)
}

// direction resolves held intent; left wins when both are held.
func (g *Game) direction() object.Direction {
	switch {
	case g.left:
		return object.DirLeft
	case g.right:
		return object.DirRight
	default:
		return object.DirNone
	}
}

// Frame advances the simulation by dt. It does nothing unless running.
func (g *Game) Frame(dt time.Duration) {
	if g.state != StateRunning {
		return
	}

	maxDelta := time.Duration(g.tuning.MaxFrameDelta * float64(time.Second))
	if dt > maxDelta {
		dt = maxDelta
	}
	if dt < 0 {
		dt = 0
	}
	sec := dt.Seconds()

	g.player.Move(g.direction(), sec, g.screen.Width)

	if g.resolveCollisions(sec) {
		g.enemies = object.Compact(g.enemies)
		g.bullets = object.Compact(g.bullets)
		return
	}
	g.enemies = object.Compact(g.enemies)

	for _, b := range g.bullets {
		if b.IsDestroyed() {
			continue
		}
		b.Move(sec)
		if b.Exited() {
			b.MarkDestroyed()
		}
	}
	g.bullets = object.Compact(g.bullets)

	g.updateEffects(dt)

	var stepped bool
	g.enemies, stepped = g.spawner.Update(g.score, g.enemies, g.screen)
	if stepped {
		d := g.spawner.Difficulty()
		g.logger.Debug("difficulty increased", "level", d.Level, "maxEnemies", d.MaxEnemies, "score", g.score)
	}
}

// Spawn queues an effect object to be added after the current update cycle.
func (g *Game) Spawn(obj object.Object) {
	g.toSpawn = append(g.toSpawn, obj)
}

// updateEffects advances effect objects and adds newly spawned ones.
func (g *Game) updateEffects(dt time.Duration) {
	ctx := object.UpdateContext{
		Delta:   dt,
		Screen:  g.screen,
		Spawner: g,
	}
	kept := g.effects[:0]
	for _, obj := range g.effects {
		remove, err := obj.Update(ctx)
		if err != nil {
			g.logger.Warn("effect update failed", "err", err)
			remove = true
		}
		if remove {
			object.ReleaseObject(obj)
			continue
		}
		kept = append(kept, obj)
	}
	clear(g.effects[len(kept):])
	g.effects = append(kept, g.toSpawn...)
	clear(g.toSpawn)
	g.toSpawn = g.toSpawn[:0]
}

// releaseEffects drops all effects, returning pooled ones.
func (g *Game) releaseEffects() {
	for _, obj := range g.effects {
		object.ReleaseObject(obj)
	}
	for _, obj := range g.toSpawn {
		object.ReleaseObject(obj)
	}
	clear(g.effects)
	g.effects = g.effects[:0]
	clear(g.toSpawn)
	g.toSpawn = g.toSpawn[:0]
}

// Draw draws every entity onto the canvas.
func (g *Game) Draw(ctx object.DrawContext) error {
	for _, obj := range g.effects {
		if err := obj.Draw(ctx); err != nil {
			return err
		}
	}
	for _, e := range g.enemies {
		if err := e.Draw(ctx); err != nil {
			return err
		}
	}
	for _, b := range g.bullets {
		if err := b.Draw(ctx); err != nil {
			return err
		}
	}
	if g.player != nil {
		return g.player.Draw(ctx)
	}
	return nil
}

// State returns the current session phase.
func (g *Game) State() GameState { return g.state }

// Score returns the current session score.
func (g *Game) Score() int { return g.score }

// HighScore returns the best score seen, including persisted ones.
func (g *Game) HighScore() int { return g.highScore }

// Difficulty returns the current difficulty.
func (g *Game) Difficulty() object.Difficulty { return g.spawner.Difficulty() }

// Player returns the player ship, or nil before the first session.
func (g *Game) Player() *object.Player { return g.player }

// Enemies returns the live enemies. The slice is owned by the game.
func (g *Game) Enemies() []*object.Enemy { return g.enemies }

// Bullets returns the live bullets. The slice is owned by the game.
func (g *Game) Bullets() []*object.Bullet { return g.bullets }

// Effects returns the active effect objects.
func (g *Game) Effects() []object.Object { return g.effects }
