package snake

// Rect is a screen rectangle in pixels, origin top-left.
type Rect struct {
	X, Y, Width, Height float64
}

// CellRect maps a field cell to the screen. The sprite is centred in its cell
// and scaled by size; field Y grows upward while screen Y grows downward.
func CellRect(pos Position, size Size, field Field, screenW, screenH float64) Rect {
	cellW := screenW / float64(field.Width)
	cellH := screenH / float64(field.Height)

	w := cellW * size.Width
	h := cellH * size.Height
	cx := (float64(pos.X) + 0.5) * cellW
	cy := screenH - (float64(pos.Y)+0.5)*cellH

	return Rect{X: cx - w/2, Y: cy - h/2, Width: w, Height: h}
}
