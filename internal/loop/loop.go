// Package loop provides the game state machine and the terminal frame driver.
package loop

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/skyraid/internal/audio"
	"github.com/tomz197/skyraid/internal/config"
	"github.com/tomz197/skyraid/internal/draw"
	"github.com/tomz197/skyraid/internal/input"
	"github.com/tomz197/skyraid/internal/object"
	"github.com/tomz197/skyraid/internal/store"
)

// Options configures a terminal session.
type Options struct {
	Tuning       config.Tuning
	TermSizeFunc draw.TermSizeFunc // Defaults to the local terminal
	Audio        audio.Player
	Store        store.HighScoreStore
	Logger       *log.Logger
	Rand         *rand.Rand
	IdleTimeout  time.Duration // Zero disables the idle disconnect
	KeyHold      time.Duration // Defaults to config.KeyHoldDuration
}

// driver renders a Game to a terminal.
type driver struct {
	w            io.Writer
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter
	termSizeFunc draw.TermSizeFunc
	tuning       config.Tuning
}

// Run plays sessions on the terminal behind r and w until the player quits,
// input ends, the idle timeout passes or ctx is cancelled.
// The standard Input → Update → Draw cycle runs on a fixed-rate ticker.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = draw.DefaultTermSizeFunc
	}
	if opts.KeyHold <= 0 {
		opts.KeyHold = config.KeyHoldDuration
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	logger := opts.Logger

	game := NewGame(opts.Tuning, GameOptions{
		Audio:  opts.Audio,
		Store:  opts.Store,
		Logger: logger,
		Rand:   opts.Rand,
	})
	stream := input.StartStream(r, opts.KeyHold)
	d := newDriver(w, opts.TermSizeFunc, opts.Tuning)

	draw.HideCursor(w)
	defer draw.ShowCursor(w)
	draw.ClearScreen(w)
	defer draw.ClearScreen(w)

	ticker := time.NewTicker(config.TargetFrameTime)
	defer ticker.Stop()

	lastTime := time.Now()
	lastInput := lastTime

	for {
		var now time.Time
		select {
		case <-ctx.Done():
			logger.Debug("session cancelled", "err", ctx.Err())
			return nil
		case now = <-ticker.C:
		}
		delta := now.Sub(lastTime)
		lastTime = now

		// ===== INPUT PHASE =====
		events, pressed := stream.Poll(now)
		if pressed {
			lastInput = now
		}
		if quit := dispatch(game, stream, events); quit {
			logger.Debug("player quit", "score", game.Score())
			return nil
		}
		if stream.Closed() {
			logger.Debug("input closed")
			return nil
		}

		var idleLeft time.Duration
		if opts.IdleTimeout > 0 {
			idle := now.Sub(lastInput)
			if idle >= opts.IdleTimeout {
				logger.Info("idle timeout", "idle", idle.Round(time.Second))
				return nil
			}
			if idle >= opts.IdleTimeout/2 {
				idleLeft = opts.IdleTimeout - idle
			}
		}

		// ===== UPDATE PHASE =====
		d.updateScreen()
		game.Frame(delta)

		// ===== DRAW PHASE =====
		if err := d.drawFrame(game, idleLeft); err != nil {
			return fmt.Errorf("draw frame: %w", err)
		}
	}
}

// dispatch feeds key events to the game and reports whether the player quit.
// Held keys are forgotten when a new session begins so stale intent never
// carries over.
func dispatch(game *Game, stream *input.Stream, events []input.Event) bool {
	for _, ev := range events {
		if ev.Key == input.KeyQuit {
			return true
		}
		before := game.State()
		game.HandleEvent(ev)
		if before != StateRunning && before != StatePaused && game.State() == StateRunning {
			stream.Reset()
		}
	}
	return false
}

func newDriver(w io.Writer, sizeFunc draw.TermSizeFunc, t config.Tuning) *driver {
	d := &driver{
		w:            w,
		canvas:       draw.NewScaledCanvas(0, 0, t.CanvasWidth, t.CanvasHeight),
		chunkWriter:  draw.NewChunkWriter(w, 0, 0),
		termSizeFunc: sizeFunc,
		tuning:       t,
	}
	d.updateScreen()
	return d
}

// updateScreen fits the render area to the current terminal size.
// A failed size query keeps the previous layout.
func (d *driver) updateScreen() {
	termWidth, termHeight, err := d.termSizeFunc()
	if err != nil {
		return
	}
	vp := draw.FitViewport(termWidth, termHeight, d.tuning.AspectRatio(),
		config.ViewportHeightFraction, config.MinViewportCols, config.MinViewportRows)

	d.canvas.Resize(vp.Width, vp.Height)
	d.canvas.SetOffset(vp.OffsetCol, vp.OffsetRow)
	d.chunkWriter.SetOffset(vp.OffsetCol, vp.OffsetRow)
}

// drawFrame clears the screen once and draws all entities and the overlay.
func (d *driver) drawFrame(game *Game, idleLeft time.Duration) error {
	d.chunkWriter.ClearScreen()
	d.canvas.Clear()

	ctx := object.DrawContext{
		Canvas: d.canvas,
		Writer: d.chunkWriter,
	}
	if err := game.Draw(ctx); err != nil {
		return err
	}

	if err := d.canvas.Render(d.chunkWriter); err != nil {
		return err
	}
	if err := d.canvas.RenderBorder(d.chunkWriter); err != nil {
		return err
	}

	// UI overlay after the canvas so it stays on top
	if err := drawOverlay(game, ctx, idleLeft); err != nil {
		return err
	}

	return d.chunkWriter.Flush()
}
