package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/plus3/arcade/tetromino"
)

const (
	filledGlyph = "█"
	emptyGlyph  = "·"
	gap         = 2
)

// view draws every named piece side by side in its current orientation.
type view struct {
	screen tcell.Screen
	pieces []tetromino.Tetromino
	cursor int
}

func newView(screen tcell.Screen) *view {
	v := &view{screen: screen}
	for _, s := range tetromino.Shapes() {
		v.pieces = append(v.pieces, tetromino.New(s))
	}
	return v
}

// turn rotates the selected piece, or every piece when all is set.
func (v *view) turn(clockwise, all bool) {
	for i := range v.pieces {
		if !all && i != v.cursor {
			continue
		}
		if clockwise {
			v.pieces[i].TurnClockwise()
		} else {
			v.pieces[i].TurnCounterclockwise()
		}
	}
}

func (v *view) move(delta int) {
	n := len(v.pieces)
	v.cursor = ((v.cursor+delta)%n + n) % n
}

// cellWidth is the number of columns one grid cell occupies.
func cellWidth() int {
	return max(runewidth.StringWidth(filledGlyph), runewidth.StringWidth(emptyGlyph)) * 2
}

func (v *view) draw() {
	v.screen.Clear()

	normal := tcell.StyleDefault
	selected := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	dim := tcell.StyleDefault.Foreground(tcell.ColorGray)

	col := 0
	w := cellWidth()
	for i, t := range v.pieces {
		style := normal
		if i == v.cursor {
			style = selected
		}

		v.text(col, 0, fmt.Sprintf("%s %d", t.Shape(), t.Orientation()), style)
		size := t.Size()
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				glyph, s := emptyGlyph, dim
				if t.Check(x, y) {
					glyph, s = filledGlyph, style
				}
				for c := 0; c < w; c += runewidth.StringWidth(glyph) {
					v.text(col+x*w+c, 2+size-1-y, glyph, s)
				}
			}
		}
		col += max(size*w, runewidth.StringWidth(t.Shape().String())+2) + gap
	}

	v.text(0, 7, "left/right select  up/x clockwise  down/z counterclockwise  a all  q quit", dim)
	v.screen.Show()
}

func (v *view) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		v.screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}
