package object

import "unicode/utf8"

// Text is a line of text drawn over the canvas.
// Coordinates are 1-based cells inside the render area.
type Text struct {
	X     int
	Y     int
	Value string
}

// CenteredText returns a Text horizontally centred in a render area of the given width.
func CenteredText(width, row int, value string) Text {
	x := (width-utf8.RuneCountInString(value))/2 + 1
	return Text{X: x, Y: row, Value: value}
}

// Draw writes the text at its position through the chunk writer.
func (t Text) Draw(ctx DrawContext) error {
	if t.Value == "" || ctx.Writer == nil {
		return nil
	}
	x := t.X
	y := t.Y
	if x < 1 {
		x = 1
	}
	if y < 1 {
		y = 1
	}
	ctx.Writer.WriteAt(x, y, t.Value)
	return nil
}

// Update is a no-op for static text.
func (t Text) Update(UpdateContext) (bool, error) {
	return false, nil
}
