package tetromino

import (
	"errors"
	"fmt"
	"strings"
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=Shape -trimprefix=Shape

// Shape names one of the seven standard pieces.
type Shape uint8

const (
	ShapeI Shape = iota
	ShapeO
	ShapeZ
	ShapeS
	ShapeJ
	ShapeL
	ShapeT
)

// ErrUnknownShape is returned by ParseShape for names that are not a piece.
var ErrUnknownShape = errors.New("unknown tetromino shape")

// pieces holds every named piece in its spawn orientation. They are built
// once; constructors hand out copies.
var pieces = [...]Tetromino{
	ShapeI: fromForm(0x4444, 4, ShapeI),
	ShapeO: fromForm(0xFFFF, 2, ShapeO),
	ShapeZ: fromForm(0xC600, 4, ShapeZ),
	ShapeS: fromForm(0x3600, 4, ShapeS),
	ShapeJ: fromForm(0x2260, 4, ShapeJ),
	ShapeL: fromForm(0x4460, 4, ShapeL),
	ShapeT: fromForm(0x01D0, 3, ShapeT),
}

// I returns the line piece, standing vertically.
func I() Tetromino { return pieces[ShapeI] }

// O returns the square piece.
func O() Tetromino { return pieces[ShapeO] }

// Z returns the Z piece.
func Z() Tetromino { return pieces[ShapeZ] }

// S returns the S piece.
func S() Tetromino { return pieces[ShapeS] }

// J returns the J piece.
func J() Tetromino { return pieces[ShapeJ] }

// L returns the L piece.
func L() Tetromino { return pieces[ShapeL] }

// T returns the T piece, stem down.
func T() Tetromino { return pieces[ShapeT] }

// New returns the named piece in its spawn orientation.
func New(s Shape) Tetromino {
	if int(s) >= len(pieces) {
		panic(fmt.Sprintf("tetromino: invalid shape %d", s))
	}
	return pieces[s]
}

// Shapes returns every named shape in declaration order.
func Shapes() []Shape {
	out := make([]Shape, len(pieces))
	for i := range pieces {
		out[i] = Shape(i)
	}
	return out
}

// Next returns the shape after s, wrapping around.
func (s Shape) Next() Shape {
	return Shape((int(s) + 1) % len(pieces))
}

// Prev returns the shape before s, wrapping around.
func (s Shape) Prev() Shape {
	return Shape((int(s) + len(pieces) - 1) % len(pieces))
}

// ParseShape resolves a one-letter piece name, ignoring case.
func ParseShape(name string) (Shape, error) {
	for _, s := range Shapes() {
		if strings.EqualFold(s.String(), strings.TrimSpace(name)) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownShape, name)
}
