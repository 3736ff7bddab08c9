package tetromino

// form is a size×size occupancy grid packed row-major into 16 bits. Cell
// (x, y) lives at bit y*size + (size-1-x), so x = 0 is the high bit of its
// row and higher rows sit toward the high end of the scalar.
type form uint16

// planeMask returns a mask covering the size² bits of one grid.
func planeMask(size uint8) uint64 {
	return ^uint64(0) >> (64 - uint(size)*uint(size))
}

// cellExists reports whether (x, y) is occupied.
func (f form) cellExists(size, x, y uint8) bool {
	return (f>>(y*size))<<x&(1<<(size-1)) != 0
}

func (f form) set(size, x, y uint8) form {
	return f | 1<<(y*size+size-1-x)
}

// clockwise returns the grid turned 90° clockwise: (x, y) -> (y, size-1-x).
func (f form) clockwise(size uint8) form {
	var out form
	for y := uint8(0); y < size; y++ {
		for x := uint8(0); x < size; x++ {
			if f.cellExists(size, x, y) {
				out = out.set(size, y, size-1-x)
			}
		}
	}
	return out
}

// counterclockwise returns the grid turned 90° counterclockwise:
// (x, y) -> (size-1-y, x).
func (f form) counterclockwise(size uint8) form {
	var out form
	for y := uint8(0); y < size; y++ {
		for x := uint8(0); x < size; x++ {
			if f.cellExists(size, x, y) {
				out = out.set(size, size-1-y, x)
			}
		}
	}
	return out
}
