package tetris

import (
	"fmt"
	"io"

	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/tetromino"
)

// Setup spawns one piece of the given shape and registers the systems. The
// storage's registry must already know the Piece component.
func Setup(scheduler *ecs.Scheduler, shape tetromino.Shape) ecs.EntityId {
	storage := scheduler.Storage()
	storage.AddSingleton(Controls{})
	storage.AddSingleton(Selection{Shape: shape})

	id := storage.Spawn(Piece{Tetromino: tetromino.New(shape)})

	scheduler.Register(&SelectionSystem{})
	scheduler.Register(&RotationSystem{})
	return id
}

// Demo writes every orientation of shape twice: four clockwise turns and then
// four counterclockwise ones. Each state is followed by a "----" line.
func Demo(w io.Writer, shape tetromino.Shape) error {
	t := tetromino.New(shape)

	if _, err := fmt.Fprintln(w, "Clockwise"); err != nil {
		return err
	}
	for range 4 {
		if _, err := fmt.Fprintf(w, "%s\n----\n", t); err != nil {
			return err
		}
		t.TurnClockwise()
	}

	if _, err := fmt.Fprintln(w, "Counterclockwise"); err != nil {
		return err
	}
	for range 4 {
		if _, err := fmt.Fprintf(w, "%s\n----\n", t); err != nil {
			return err
		}
		t.TurnCounterclockwise()
	}
	return nil
}
