package loop

// GameState represents the current session phase.
type GameState int

const (
	StateNotStarted GameState = iota // Title screen
	StateRunning                     // Active gameplay
	StatePaused                      // Simulation frozen, still rendering
	StateGameOver                    // Player hit, show final score
)

// String returns the state name.
func (s GameState) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}
