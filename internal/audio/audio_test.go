package audio

import (
	"bytes"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// drain streams s to completion and returns the number of samples produced.
func drain(t *testing.T, s beep.Streamer, limit int) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for total <= limit {
		n, ok := s.Stream(buf)
		total += n
		for i := 0; i < n; i++ {
			if buf[i][0] < -1 || buf[i][0] > 1 {
				t.Fatalf("sample %d out of range: %f", total-n+i, buf[i][0])
			}
		}
		if !ok {
			return total
		}
	}
	t.Fatalf("stream did not end within %d samples", limit)
	return total
}

func TestOscillatorSquare(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewOscillator(220, 50*time.Millisecond, WaveSquare, rate)

	samples := make([][2]float64, 50)
	n, ok := osc.Stream(samples)
	if !ok || n != 50 {
		t.Fatalf("Stream = (%d, %v), want (50, true)", n, ok)
	}
	for i := 0; i < n; i++ {
		if v := samples[i][0]; v != -1.0 && v != 1.0 {
			t.Errorf("square sample %d = %f, want ±1", i, v)
		}
	}
}

func TestOscillatorStopsAtDuration(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewOscillator(100, 100*time.Millisecond, WaveSine, rate)

	if got := drain(t, osc, 1000); got != 100 {
		t.Errorf("produced %d samples, want 100", got)
	}
}

func TestEnvelopeShapesVolume(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewOscillator(0, 100*time.Millisecond, WaveSquare, rate) // constant 1.0
	env := NewEnvelope(osc, 100*time.Millisecond, 10*time.Millisecond, 10*time.Millisecond, rate)

	samples := make([][2]float64, 100)
	n, _ := env.Stream(samples)
	if n != 100 {
		t.Fatalf("streamed %d samples, want 100", n)
	}
	if samples[0][0] != 0 {
		t.Errorf("attack should start silent, got %f", samples[0][0])
	}
	if samples[50][0] != 1 {
		t.Errorf("sustain should be full volume, got %f", samples[50][0])
	}
	if samples[99][0] >= samples[90][0] {
		t.Errorf("release should fade: %f then %f", samples[90][0], samples[99][0])
	}
}

func TestNewSoundCuesEnd(t *testing.T) {
	rate := beep.SampleRate(8000)
	for _, snd := range []Sound{SoundShoot, SoundExplosion, SoundGameOver} {
		t.Run(snd.String(), func(t *testing.T) {
			s := NewSound(snd, rate)
			if s == nil {
				t.Fatal("expected streamer")
			}
			if got := drain(t, s, rate.N(time.Second)); got == 0 {
				t.Error("cue produced no samples")
			}
		})
	}

	if NewSound(Sound(99), rate) != nil {
		t.Error("unknown cue should have no streamer")
	}
}

func TestBellRingsForImportantCues(t *testing.T) {
	var buf bytes.Buffer
	b := NewBell(&buf)

	b.Play(SoundShoot)
	b.Play(SoundExplosion)
	b.Play(SoundGameOver)

	if got := buf.String(); got != "\a\a" {
		t.Errorf("bell output %q, want two BEL bytes", got)
	}
}

func TestNopIsPlayer(t *testing.T) {
	var p Player = Nop{}
	p.Play(SoundExplosion)
}
