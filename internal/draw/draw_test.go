package draw

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestFitViewportHeightBound(t *testing.T) {
	// Portrait 3:4 playfield on a wide terminal: height decides.
	vp := FitViewport(200, 40, 0.75, 1.0, 10, 5)

	if vp.Height != 40 {
		t.Errorf("Height = %d, want 40", vp.Height)
	}
	if vp.Width != 60 {
		t.Errorf("Width = %d, want 60", vp.Width)
	}
	if vp.OffsetCol != 70 || vp.OffsetRow != 0 {
		t.Errorf("offset = (%d,%d), want (70,0)", vp.OffsetCol, vp.OffsetRow)
	}
}

func TestFitViewportWidthBound(t *testing.T) {
	// Narrow terminal: width capped at termWidth-2, height follows the ratio.
	vp := FitViewport(32, 60, 0.75, 1.0, 10, 5)

	if vp.Width != 30 {
		t.Errorf("Width = %d, want 30", vp.Width)
	}
	if vp.Height != 20 {
		t.Errorf("Height = %d, want 20", vp.Height)
	}
	if vp.OffsetCol != 1 || vp.OffsetRow != 20 {
		t.Errorf("offset = (%d,%d), want (1,20)", vp.OffsetCol, vp.OffsetRow)
	}
}

func TestFitViewportMinimum(t *testing.T) {
	vp := FitViewport(0, 0, 0.75, 1.0, 10, 5)
	if vp.Width != 10 || vp.Height != 5 {
		t.Errorf("got %dx%d, want 10x5", vp.Width, vp.Height)
	}
	if vp.OffsetCol != 0 || vp.OffsetRow != 0 {
		t.Errorf("offsets must not be negative, got (%d,%d)", vp.OffsetCol, vp.OffsetRow)
	}
}

func TestCanvasFillRect(t *testing.T) {
	// 1 logical unit per column, 1 logical unit per sub-pixel row.
	c := NewScaledCanvas(10, 5, 10, 10)

	c.FillRect(2, 2, 3, 4)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			want := x >= 2 && x < 5 && y >= 2 && y < 6
			if got := c.isSet(x, y); got != want {
				t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestCanvasFillRectCoversAtLeastOnePixel(t *testing.T) {
	c := NewScaledCanvas(10, 5, 100, 100)

	c.FillRect(50, 50, 0.5, 0.5)

	if !c.isSet(5, 5) {
		t.Error("tiny rect should still set one pixel")
	}
}

func TestCanvasClipsOutside(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)

	// Must not panic when drawing partially or fully off-canvas.
	c.FillRect(-10, -10, 12, 12)
	c.FillRect(100, 100, 5, 5)
	c.DrawPolygon([]Point{{-5, -5}, {20, 0}, {0, 20}}, true)

	if !c.isSet(0, 0) || !c.isSet(1, 1) {
		t.Error("visible part of the rect should be set")
	}
}

func TestCanvasRenderHalfBlocks(t *testing.T) {
	c := NewScaledCanvas(2, 1, 2, 2)
	c.SetOffset(3, 4)

	c.FillRect(0, 0, 1, 2) // column 0: both halves
	c.FillRect(1, 1, 1, 1) // column 1: bottom half only

	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		t.Fatalf("Render: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "\033[5;4H█") {
		t.Errorf("missing full block at offset position: %q", out)
	}
	if !strings.Contains(out, "\033[5;5H▄") {
		t.Errorf("missing lower half block: %q", out)
	}

	c.Clear()
	buf.Reset()
	if err := c.Render(&buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("cleared canvas rendered %q", buf.String())
	}
}

func TestCanvasRenderBorder(t *testing.T) {
	c := NewScaledCanvas(3, 2, 3, 4)

	var buf bytes.Buffer
	if err := c.RenderBorder(&buf); err != nil {
		t.Fatalf("RenderBorder: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("no border expected without offsets, got %q", buf.String())
	}

	c.SetOffset(2, 1)
	if err := c.RenderBorder(&buf); err != nil {
		t.Fatalf("RenderBorder: %v", err)
	}
	if !strings.Contains(buf.String(), "┌───┐") || !strings.Contains(buf.String(), "└───┘") {
		t.Errorf("expected full box border, got %q", buf.String())
	}
}

func TestChunkWriterOffsetAndFlush(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 10, 2)

	cw.WriteAt(1, 1, "Score")
	if out.Len() != 0 {
		t.Fatal("nothing should reach the writer before Flush")
	}

	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if got, want := out.String(), "\033[3;11HScore"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	out.Reset()
	if err := cw.Flush(); err != nil {
		t.Fatalf("second Flush: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("buffer should be empty after Flush, second Flush wrote %q", out.String())
	}
}

func TestChunkWriterLargeFrame(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 0, 0)

	big := strings.Repeat("x", maxChunkSize*3+7)
	if _, err := io.WriteString(cw, big); err != nil {
		t.Fatal(err)
	}
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if out.String() != big {
		t.Errorf("flushed %d bytes, want %d", out.Len(), len(big))
	}
}
