// Package tetris is the tetromino demonstrator: a single piece entity that
// turns in place on key presses and can be swapped for another shape.
package tetris

import (
	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/tetromino"
)

// Piece is the tetromino carried by an entity.
type Piece struct {
	Tetromino tetromino.Tetromino
}

// Rotation is a requested quarter turn.
type Rotation uint8

const (
	Clockwise Rotation = iota
	Counterclockwise
)

func (r Rotation) String() string {
	if r == Counterclockwise {
		return "counterclockwise"
	}
	return "clockwise"
}

// Controls queues input until the next frame consumes it. Cycle steps the
// selected shape forward (positive) or backward (negative).
type Controls struct {
	Rotations []Rotation
	Cycle     int
}

// Selection is the shape every piece is built from.
type Selection struct {
	Shape tetromino.Shape
}

func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Piece](registry)
}

type piece struct {
	*Piece
}
