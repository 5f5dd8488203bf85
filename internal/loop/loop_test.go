package loop

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/tomz197/skyraid/internal/config"
	"github.com/tomz197/skyraid/internal/draw"
	"github.com/tomz197/skyraid/internal/input"
	"github.com/tomz197/skyraid/internal/object"
	"github.com/tomz197/skyraid/internal/store"
)

func fixedSize(w, h int) draw.TermSizeFunc {
	return func() (int, int, error) { return w, h, nil }
}

func testOptions() Options {
	return Options{
		Tuning:       config.Default(),
		TermSizeFunc: fixedSize(80, 24),
		Store:        store.NewMemoryStore(),
		Rand:         rand.New(rand.NewSource(1)),
	}
}

// runAsync starts Run and returns a channel receiving its result.
func runAsync(ctx context.Context, r io.Reader, w io.Writer, opts Options) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, bufio.NewReader(r), w, opts)
	}()
	return done
}

func waitRun(t *testing.T, done <-chan error) {
	t.Helper()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
}

func TestRunQuitKey(t *testing.T) {
	var out bytes.Buffer
	done := runAsync(context.Background(), strings.NewReader("q"), &out, testOptions())
	waitRun(t, done)

	if !strings.Contains(out.String(), "\033[?25l") || !strings.Contains(out.String(), "\033[?25h") {
		t.Error("cursor should be hidden and restored")
	}
}

func TestRunEndsOnContextCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	var out bytes.Buffer
	done := runAsync(ctx, pr, &out, testOptions())

	time.Sleep(50 * time.Millisecond)
	cancel()
	waitRun(t, done)
}

func TestRunIdleTimeout(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	opts := testOptions()
	opts.IdleTimeout = 100 * time.Millisecond
	var out bytes.Buffer
	done := runAsync(context.Background(), pr, &out, opts)
	waitRun(t, done)

	if !strings.Contains(out.String(), "Idle - disconnecting") {
		t.Error("idle warning was never shown")
	}
}

func TestRunPlaysSession(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	st := store.NewMemoryStore()
	opts := testOptions()
	opts.Store = st
	var out bytes.Buffer
	done := runAsync(context.Background(), pr, &out, opts)

	if _, err := pw.Write([]byte(" ")); err != nil {
		t.Fatal(err)
	}
	time.Sleep(100 * time.Millisecond)
	if _, err := pw.Write([]byte("q")); err != nil {
		t.Fatal(err)
	}
	waitRun(t, done)

	if !strings.Contains(out.String(), "Score: 0") {
		t.Error("HUD never rendered")
	}
}

// pollUntil polls the stream until it yields events or the deadline passes.
func pollUntil(t *testing.T, stream *input.Stream, now time.Time) []input.Event {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if events, _ := stream.Poll(now); len(events) > 0 {
			return events
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("no input events arrived")
	return nil
}

func TestDispatchResetsHeldKeysOnStart(t *testing.T) {
	g, _ := newTestGame(t, nil)
	pr, pw := io.Pipe()
	defer pw.Close()
	stream := input.StartStream(bufio.NewReader(pr), time.Hour)
	now := time.Now()

	go pw.Write([]byte("a"))
	events := pollUntil(t, stream, now)
	if dispatch(g, stream, events) {
		t.Fatal("movement should not quit")
	}

	if dispatch(g, stream, []input.Event{{Key: input.KeyStart, Down: true}}) {
		t.Fatal("start should not quit")
	}
	if g.State() != StateRunning {
		t.Fatalf("state = %v, want running", g.State())
	}

	// The held key was forgotten, so the next repeat is a fresh press.
	go pw.Write([]byte("a"))
	events = pollUntil(t, stream, now)
	if len(events) != 1 || events[0] != (input.Event{Key: input.KeyLeft, Down: true}) {
		t.Errorf("events after start = %v, want a fresh left press", events)
	}

	if !dispatch(g, stream, []input.Event{{Key: input.KeyQuit, Down: true}}) {
		t.Error("quit key should end the session")
	}
}

func TestDrawOverlayPerState(t *testing.T) {
	g, _ := newTestGame(t, nil)
	canvas := draw.NewScaledCanvas(60, 40, 480, 640)

	render := func() string {
		var buf bytes.Buffer
		cw := draw.NewChunkWriter(&buf, 0, 0)
		if err := drawOverlay(g, object.DrawContext{Canvas: canvas, Writer: cw}, 0); err != nil {
			t.Fatal(err)
		}
		if err := cw.Flush(); err != nil {
			t.Fatal(err)
		}
		return buf.String()
	}

	if out := render(); !strings.Contains(out, "S K Y R A I D") {
		t.Errorf("start screen missing title: %q", out)
	}

	g.Start()
	if out := render(); !strings.Contains(out, "Score: 0") || !strings.Contains(out, "Level 1") {
		t.Errorf("HUD missing: %q", out)
	}

	g.Pause()
	if out := render(); !strings.Contains(out, "PAUSED") {
		t.Errorf("pause banner missing: %q", out)
	}

	g.Resume()
	g.score = 3
	g.gameOver()
	out := render()
	for _, want := range []string{"G A M E   O V E R", "Score: 3", "High score: 3", "New high score!"} {
		if !strings.Contains(out, want) {
			t.Errorf("game over screen missing %q: %q", want, out)
		}
	}
}

func TestDriverFollowsResize(t *testing.T) {
	w, h := 200, 40
	d := newDriver(io.Discard, func() (int, int, error) { return w, h, nil }, config.Default())
	if d.canvas.TerminalWidth() != 60 || d.canvas.TerminalHeight() != 40 {
		t.Fatalf("canvas %dx%d, want 60x40", d.canvas.TerminalWidth(), d.canvas.TerminalHeight())
	}

	w, h = 100, 20
	d.updateScreen()
	if d.canvas.TerminalWidth() != 30 || d.canvas.TerminalHeight() != 20 {
		t.Errorf("canvas %dx%d after resize, want 30x20", d.canvas.TerminalWidth(), d.canvas.TerminalHeight())
	}
}
