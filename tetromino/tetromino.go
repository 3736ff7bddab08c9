// Package tetromino encodes falling-block pieces with all four rotation
// states pre-baked into a single 64-bit value.
//
// A piece of side n keeps four planes of n² bits each. Plane 0 is the
// orientation currently shown and plane k is k clockwise quarter turns
// away from it. Turning a piece only rotates the planes inside the packed
// value, so rotation and cell queries are constant time and no geometry is
// recomputed after construction.
package tetromino

import (
	"fmt"
	"iter"
	"strings"
)

const planes = 4

// Tetromino is a piece together with its four pre-computed orientations.
// It is a plain value: copies rotate independently.
type Tetromino struct {
	value       uint64
	size        uint8
	orientation uint8
	shape       Shape
}

// Cell is a grid coordinate inside a piece's bounding square. Y grows upward.
type Cell struct {
	X, Y int
}

func fromForm(seed form, size uint8, shape Shape) Tetromino {
	stride := size * size
	f := seed & form(planeMask(size))

	t := Tetromino{size: size, shape: shape}
	for k := uint8(0); k < planes; k++ {
		t.value |= uint64(f) << (k * stride)
		f = f.clockwise(size)
	}
	return t
}

func (t Tetromino) stride() uint8 {
	return t.size * t.size
}

// Size returns the side of the piece's bounding square.
func (t Tetromino) Size() int {
	return int(t.size)
}

// Shape returns which named piece this is.
func (t Tetromino) Shape() Shape {
	return t.shape
}

// Value returns the packed planes, current orientation in the low bits.
func (t Tetromino) Value() uint64 {
	return t.value
}

// Orientation returns the number of clockwise quarter turns, modulo 4,
// between the orientation the piece was built in and the current one.
func (t Tetromino) Orientation() int {
	return int(t.orientation)
}

// Plane returns the raw grid bits of plane k, where plane 0 is the current
// orientation.
func (t Tetromino) Plane(k int) uint16 {
	if k < 0 || k >= planes {
		panic(fmt.Sprintf("tetromino: plane %d out of range [0,%d)", k, planes))
	}
	return uint16(t.value >> (uint8(k) * t.stride()) & planeMask(t.size))
}

// Check reports whether cell (x, y) is occupied in the current orientation.
// Coordinates outside the bounding square are a programming error and panic.
func (t Tetromino) Check(x, y int) bool {
	if x < 0 || y < 0 || x >= int(t.size) || y >= int(t.size) {
		panic(fmt.Sprintf("tetromino: cell (%d, %d) outside %dx%d piece", x, y, t.size, t.size))
	}
	return form(t.value&planeMask(t.size)).cellExists(t.size, uint8(x), uint8(y))
}

// TurnClockwise makes the next clockwise orientation current.
func (t *Tetromino) TurnClockwise() {
	s := t.stride()
	low := t.value & planeMask(t.size)
	t.value = t.value>>s | low<<(s*(planes-1))
	t.orientation = (t.orientation + 1) % planes
}

// TurnCounterclockwise makes the next counterclockwise orientation current.
// It undoes exactly one TurnClockwise.
func (t *Tetromino) TurnCounterclockwise() {
	s := t.stride()
	field := ^uint64(0) >> (64 - uint(s)*planes)
	high := t.value >> (s * (planes - 1))
	t.value = t.value<<s&field | high
	t.orientation = (t.orientation + planes - 1) % planes
}

// Cells yields the occupied cells of the current orientation, bottom row
// first.
func (t Tetromino) Cells() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for y := 0; y < int(t.size); y++ {
			for x := 0; x < int(t.size); x++ {
				if t.Check(x, y) && !yield(Cell{X: x, Y: y}) {
					return
				}
			}
		}
	}
}

// String renders the current orientation as rows of '0' and '1', top row
// first, without a trailing newline.
func (t Tetromino) String() string {
	var b strings.Builder
	b.Grow(int(t.size) * (int(t.size) + 1))
	for y := int(t.size) - 1; y >= 0; y-- {
		for x := 0; x < int(t.size); x++ {
			if t.Check(x, y) {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
		if y != 0 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
