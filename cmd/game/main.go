package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"golang.org/x/term"

	"github.com/tomz197/skyraid/internal/audio"
	"github.com/tomz197/skyraid/internal/config"
	"github.com/tomz197/skyraid/internal/loop"
	"github.com/tomz197/skyraid/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// The terminal is in raw mode while playing, so logs only go to a file.
	var logOut io.Writer = io.Discard
	if path := config.GetEnv("LOG_FILE", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := config.NewLogger(logOut, "skyraid")

	tuning := config.Default()
	if path := config.GetEnv("SKYRAID_CONFIG", ""); path != "" {
		t, err := config.Load(path)
		if err != nil {
			return err
		}
		tuning = t
		logger.Info("loaded tuning", "path", path)
	}

	var scores store.HighScoreStore = store.NewMemoryStore()
	if path := config.GetEnv("SKYRAID_HIGHSCORE", defaultScorePath()); path != "" {
		scores = store.NewFileStore(path)
		logger.Info("high score file", "path", path)
	}

	var player audio.Player = audio.Nop{}
	if config.GetEnvBool("SKYRAID_AUDIO", true) {
		synth, err := audio.NewSynth()
		if err != nil {
			logger.Warn("audio disabled", "err", err)
		} else {
			defer synth.Close()
			player = synth
		}
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reader := bufio.NewReader(os.Stdin)
	return loop.Run(ctx, reader, os.Stdout, loop.Options{
		Tuning: tuning,
		Audio:  player,
		Store:  scores,
		Logger: logger,
	})
}

// defaultScorePath returns the per-user high score file, or "" when there is
// no config directory.
func defaultScorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "skyraid", "scores.toml")
}
