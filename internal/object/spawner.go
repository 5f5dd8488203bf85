package object

import (
	"math/rand"

	"github.com/tomz197/skyraid/internal/config"
)

// Difficulty is the current escalation step of a session.
type Difficulty struct {
	Level          int
	SpawnFrequency float64 // Tracked for display; replenishment is count-driven
	MaxEnemies     int
	LastBand       int // Highest score band already rewarded
}

// EnemySpawner keeps the enemy population at the current difficulty target.
type EnemySpawner struct {
	tuning     config.Tuning
	rng        *rand.Rand
	difficulty Difficulty
}

// NewEnemySpawner creates a spawner at the initial difficulty.
// rng drives spawn positions and speeds; a nil rng gets a time-seeded source.
func NewEnemySpawner(t config.Tuning, rng *rand.Rand) *EnemySpawner {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	s := &EnemySpawner{tuning: t, rng: rng}
	s.Reset()
	return s
}

// Reset restores the initial difficulty.
func (s *EnemySpawner) Reset() {
	s.difficulty = Difficulty{
		Level:          1,
		SpawnFrequency: s.tuning.InitialSpawnFrequency,
		MaxEnemies:     s.tuning.InitialMaxEnemies,
		LastBand:       0,
	}
}

// Difficulty returns the current difficulty.
func (s *EnemySpawner) Difficulty() Difficulty {
	return s.difficulty
}

// Escalate steps the difficulty up once when score enters a new non-zero band.
// Calling it again with the same score is a no-op. Returns true on a step.
func (s *EnemySpawner) Escalate(score int) bool {
	band := (score / s.tuning.ScoreBand) * s.tuning.ScoreBand
	if band == 0 || band <= s.difficulty.LastBand {
		return false
	}
	s.difficulty.Level++
	s.difficulty.SpawnFrequency += s.tuning.SpawnFrequencyStep
	s.difficulty.MaxEnemies += s.tuning.MaxEnemiesStep
	s.difficulty.LastBand = band
	return true
}

// Replenish drops enemies that left through the bottom and tops the
// collection up to MaxEnemies with new enemies above the playfield.
func (s *EnemySpawner) Replenish(enemies []*Enemy, screen Screen) []*Enemy {
	n := 0
	for _, e := range enemies {
		if !e.Escaped(screen.Height) {
			enemies[n] = e
			n++
		}
	}
	clear(enemies[n:])
	enemies = enemies[:n]

	for len(enemies) < s.difficulty.MaxEnemies {
		enemies = append(enemies, s.newEnemy(screen))
	}
	return enemies
}

// Update escalates for score and then replenishes. Returns the new enemy
// collection and whether the difficulty stepped up.
func (s *EnemySpawner) Update(score int, enemies []*Enemy, screen Screen) ([]*Enemy, bool) {
	stepped := s.Escalate(score)
	return s.Replenish(enemies, screen), stepped
}

func (s *EnemySpawner) newEnemy(screen Screen) *Enemy {
	span := screen.Width - s.tuning.EnemyWidth
	if span < 0 {
		span = 0
	}
	x := s.rng.Float64() * span
	speed := s.tuning.EnemyMinSpeed + s.rng.Float64()*s.tuning.EnemySpeedRange
	return NewEnemy(x, s.tuning.EnemySpawnY, speed, s.tuning)
}
