package tetromino

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormCellExists(t *testing.T) {
	// Column x=1 of a 4x4 grid.
	f := form(0x4444)
	for y := uint8(0); y < 4; y++ {
		for x := uint8(0); x < 4; x++ {
			assert.Equal(t, x == 1, f.cellExists(4, x, y), "cell (%d, %d)", x, y)
		}
	}

	// Row y=2 of a 3x3 grid plus its centre.
	f = form(0x01D0)
	assert.True(t, f.cellExists(3, 0, 2))
	assert.True(t, f.cellExists(3, 1, 2))
	assert.True(t, f.cellExists(3, 2, 2))
	assert.True(t, f.cellExists(3, 1, 1))
	assert.False(t, f.cellExists(3, 0, 1))
	assert.False(t, f.cellExists(3, 1, 0))
}

func TestFormClockwise(t *testing.T) {
	assert.Equal(t, form(0x0F00), form(0x4444).clockwise(4))
	assert.Equal(t, form(0x2222), form(0x0F00).clockwise(4))
	assert.Equal(t, form(0x00F0), form(0x2222).clockwise(4))
	assert.Equal(t, form(0x4444), form(0x00F0).clockwise(4))

	// T, stem down -> stem left.
	assert.Equal(t, form(0x59), form(0x1D0).clockwise(3))
	// Square is invariant.
	assert.Equal(t, form(0xF), form(0xF).clockwise(2))
}

func TestFormRotationLaws(t *testing.T) {
	for _, size := range []uint8{2, 3, 4} {
		mask := form(planeMask(size))
		for seed := 0; seed <= 0xFFFF; seed += 37 {
			f := form(seed) & mask

			assert.Equal(t, f, f.clockwise(size).counterclockwise(size), "size %d seed %#x", size, seed)
			assert.Equal(t, f, f.counterclockwise(size).clockwise(size), "size %d seed %#x", size, seed)

			full := f.clockwise(size).clockwise(size).clockwise(size).clockwise(size)
			assert.Equal(t, f, full, "size %d seed %#x", size, seed)

			assert.Equal(t, bits.OnesCount16(uint16(f)), bits.OnesCount16(uint16(f.clockwise(size))))
			assert.Zero(t, f.clockwise(size)&^mask, "rotation leaked outside the grid")
		}
	}
}

func TestPlaneMask(t *testing.T) {
	assert.Equal(t, uint64(0xF), planeMask(2))
	assert.Equal(t, uint64(0x1FF), planeMask(3))
	assert.Equal(t, uint64(0xFFFF), planeMask(4))
}

func TestFromFormPacksClockwisePlanes(t *testing.T) {
	piece := fromForm(0x4444, 4, ShapeI)
	assert.Equal(t, uint64(0x00F0_2222_0F00_4444), piece.value)

	piece = fromForm(0x01D0, 3, ShapeT)
	f := form(0x01D0)
	for k := 0; k < planes; k++ {
		assert.Equal(t, uint16(f), piece.Plane(k), "plane %d", k)
		f = f.clockwise(3)
	}
	assert.Zero(t, piece.value>>36, "planes must fit in 4*size² bits")
}

func TestFromFormMasksSeed(t *testing.T) {
	piece := fromForm(0xFFFF, 2, ShapeO)
	assert.Equal(t, uint64(0xFFFF), piece.value)
	for k := 0; k < planes; k++ {
		assert.Equal(t, uint16(0xF), piece.Plane(k))
	}
}

func TestStrideOnValue(t *testing.T) {
	// Return values are not addressable, so this only compiles with a value receiver.
	assert.Equal(t, uint8(16), New(ShapeI).stride())
	assert.Equal(t, uint8(4), New(ShapeO).stride())
	assert.Equal(t, uint8(9), New(ShapeT).stride())

	// Every plane fits the 64-bit value.
	for _, s := range Shapes() {
		assert.LessOrEqual(t, int(New(s).stride())*planes, 64, s.String())
	}
}
