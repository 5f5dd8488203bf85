package loop

import (
	"fmt"
	"time"

	"github.com/tomz197/skyraid/internal/object"
)

// drawOverlay draws the UI for the current state over the canvas.
func drawOverlay(game *Game, ctx object.DrawContext, idleLeft time.Duration) error {
	width := ctx.Canvas.TerminalWidth()
	height := ctx.Canvas.TerminalHeight()
	centerY := height / 2

	var lines []object.Text
	switch game.State() {
	case StateNotStarted:
		lines = startScreen(game, width, centerY)
	case StateRunning:
		lines = hud(game, width)
	case StatePaused:
		lines = append(hud(game, width), pausedScreen(width, centerY)...)
	case StateGameOver:
		lines = gameOverScreen(game, width, centerY)
	}
	if idleLeft > 0 {
		lines = append(lines, idleWarning(width, height, idleLeft))
	}

	for _, t := range lines {
		if err := t.Draw(ctx); err != nil {
			return err
		}
	}
	return nil
}

// startScreen draws the title screen.
func startScreen(game *Game, width, centerY int) []object.Text {
	lines := []object.Text{
		object.CenteredText(width, centerY-5, "S K Y R A I D"),
		object.CenteredText(width, centerY-3, fmt.Sprintf("High score: %d", game.HighScore())),
		object.CenteredText(width, centerY-1, "A D / < >  Move"),
		object.CenteredText(width, centerY, "SPACE  Shoot"),
		object.CenteredText(width, centerY+1, "P / ESC  Pause"),
		object.CenteredText(width, centerY+2, "Q  Quit"),
	}
	// Blinking start prompt
	if time.Now().UnixMilli()/600%2 == 0 {
		lines = append(lines, object.CenteredText(width, centerY+4, ">> Press SPACE to Start <<"))
	}
	return lines
}

// hud draws the in-game score line.
func hud(game *Game, width int) []object.Text {
	level := fmt.Sprintf("Level %d", game.Difficulty().Level)
	return []object.Text{
		{X: 2, Y: 1, Value: fmt.Sprintf("Score: %d", game.Score())},
		{X: width - len(level), Y: 1, Value: level},
		{X: 2, Y: 2, Value: fmt.Sprintf("High: %d", game.HighScore())},
	}
}

// pausedScreen draws the pause banner.
func pausedScreen(width, centerY int) []object.Text {
	return []object.Text{
		object.CenteredText(width, centerY-1, "PAUSED"),
		object.CenteredText(width, centerY+1, "Press P or ESC to resume"),
	}
}

// gameOverScreen draws the final and best score.
func gameOverScreen(game *Game, width, centerY int) []object.Text {
	lines := []object.Text{
		object.CenteredText(width, centerY-3, "G A M E   O V E R"),
		object.CenteredText(width, centerY-1, fmt.Sprintf("Score: %d", game.Score())),
		object.CenteredText(width, centerY, fmt.Sprintf("High score: %d", game.HighScore())),
	}
	if game.Score() > 0 && game.Score() == game.HighScore() {
		lines = append(lines, object.CenteredText(width, centerY+1, "New high score!"))
	}
	if time.Now().UnixMilli()/600%2 == 0 {
		lines = append(lines, object.CenteredText(width, centerY+3, ">> Press SPACE to Restart <<"))
	}
	return lines
}

// idleWarning tells an idle player when the session will be closed.
func idleWarning(width, height int, left time.Duration) object.Text {
	msg := fmt.Sprintf("Idle - disconnecting in %ds", int(left.Seconds())+1)
	return object.CenteredText(width, height, msg)
}
