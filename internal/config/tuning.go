package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrInvalidTuning is returned when a tuning value is out of range.
var ErrInvalidTuning = errors.New("invalid tuning")

// Tuning holds every gameplay number. Speeds are in logical units per second.
type Tuning struct {
	// Playfield (logical units)
	CanvasWidth  float64 `toml:"canvas_width"`
	CanvasHeight float64 `toml:"canvas_height"`

	// Player
	PlayerWidth        float64 `toml:"player_width"`
	PlayerHeight       float64 `toml:"player_height"`
	PlayerSpeed        float64 `toml:"player_speed"`
	PlayerBottomMargin float64 `toml:"player_bottom_margin"`

	// Enemies
	EnemyWidth      float64 `toml:"enemy_width"`
	EnemyHeight     float64 `toml:"enemy_height"`
	EnemyMinSpeed   float64 `toml:"enemy_min_speed"`
	EnemySpeedRange float64 `toml:"enemy_speed_range"`
	EnemySpawnY     float64 `toml:"enemy_spawn_y"`

	// Bullets
	BulletWidth   float64 `toml:"bullet_width"`
	BulletHeight  float64 `toml:"bullet_height"`
	BulletSpeed   float64 `toml:"bullet_speed"`
	BulletOffsetX float64 `toml:"bullet_offset_x"` // From the player's left edge

	// Difficulty
	InitialMaxEnemies     int     `toml:"initial_max_enemies"`
	MaxEnemiesStep        int     `toml:"max_enemies_step"`
	InitialSpawnFrequency float64 `toml:"initial_spawn_frequency"`
	SpawnFrequencyStep    float64 `toml:"spawn_frequency_step"`
	ScoreBand             int     `toml:"score_band"`

	// Frame delta cap in seconds; a stalled frame never advances more than this.
	MaxFrameDelta float64 `toml:"max_frame_delta"`
}

// Default returns the stock tuning. Enemy and bullet speeds are the classic
// per-frame deltas scaled to a 60 Hz reference.
func Default() Tuning {
	return Tuning{
		CanvasWidth:  480,
		CanvasHeight: 640,

		PlayerWidth:        45,
		PlayerHeight:       45,
		PlayerSpeed:        200,
		PlayerBottomMargin: 10,

		EnemyWidth:      50,
		EnemyHeight:     30,
		EnemyMinSpeed:   60,
		EnemySpeedRange: 120,
		EnemySpawnY:     -30,

		BulletWidth:   4,
		BulletHeight:  10,
		BulletSpeed:   60,
		BulletOffsetX: 20,

		InitialMaxEnemies:     5,
		MaxEnemiesStep:        2,
		InitialSpawnFrequency: 0.02,
		SpawnFrequencyStep:    0.01,
		ScoreBand:             10,

		MaxFrameDelta: 0.1,
	}
}

// Load reads a TOML tuning file on top of Default. Keys missing from the
// file keep their default value; unknown keys are rejected.
func Load(path string) (Tuning, error) {
	t := Default()
	meta, err := toml.DecodeFile(path, &t)
	if err != nil {
		return Tuning{}, fmt.Errorf("decode tuning %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Tuning{}, fmt.Errorf("%w: unknown keys %s", ErrInvalidTuning, strings.Join(keys, ", "))
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}

// Validate checks that the tuning describes a playable field.
func (t Tuning) Validate() error {
	switch {
	case t.CanvasWidth <= 0 || t.CanvasHeight <= 0:
		return fmt.Errorf("%w: canvas must have a positive size", ErrInvalidTuning)
	case t.PlayerWidth <= 0 || t.PlayerHeight <= 0 || t.PlayerWidth > t.CanvasWidth:
		return fmt.Errorf("%w: player must fit the canvas", ErrInvalidTuning)
	case t.EnemyWidth <= 0 || t.EnemyHeight <= 0 || t.EnemyWidth > t.CanvasWidth:
		return fmt.Errorf("%w: enemy must fit the canvas", ErrInvalidTuning)
	case t.BulletWidth <= 0 || t.BulletHeight <= 0:
		return fmt.Errorf("%w: bullet must have a positive size", ErrInvalidTuning)
	case t.PlayerSpeed < 0 || t.EnemyMinSpeed < 0 || t.EnemySpeedRange < 0 || t.BulletSpeed < 0:
		return fmt.Errorf("%w: speeds must not be negative", ErrInvalidTuning)
	case t.InitialMaxEnemies < 5:
		return fmt.Errorf("%w: initial_max_enemies must be at least 5", ErrInvalidTuning)
	case t.MaxEnemiesStep < 0 || t.SpawnFrequencyStep < 0:
		return fmt.Errorf("%w: difficulty steps must not be negative", ErrInvalidTuning)
	case t.ScoreBand <= 0:
		return fmt.Errorf("%w: score_band must be positive", ErrInvalidTuning)
	case t.MaxFrameDelta <= 0:
		return fmt.Errorf("%w: max_frame_delta must be positive", ErrInvalidTuning)
	}
	return nil
}

// AspectRatio returns the playfield width divided by its height.
func (t Tuning) AspectRatio() float64 {
	return t.CanvasWidth / t.CanvasHeight
}
