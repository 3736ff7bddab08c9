package tetris

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/tetromino"
)

// SelectionSystem swaps every piece for the next or previous named shape.
type SelectionSystem struct {
	Controls  ecs.Singleton[Controls]
	Selection ecs.Singleton[Selection]
	Pieces    ecs.Query[piece]
}

func (s *SelectionSystem) Execute(frame *ecs.UpdateFrame) {
	controls := s.Controls.Get()
	if controls.Cycle == 0 {
		return
	}

	selection := s.Selection.Get()
	for ; controls.Cycle > 0; controls.Cycle-- {
		selection.Shape = selection.Shape.Next()
	}
	for ; controls.Cycle < 0; controls.Cycle++ {
		selection.Shape = selection.Shape.Prev()
	}

	for p := range s.Pieces.Values() {
		p.Tetromino = tetromino.New(selection.Shape)
	}
	log.Debug().Stringer("shape", selection.Shape).Msg("tetromino selected")
}

// RotationSystem applies queued turns to every piece.
type RotationSystem struct {
	Controls ecs.Singleton[Controls]
	Pieces   ecs.Query[piece]
}

func (s *RotationSystem) Execute(frame *ecs.UpdateFrame) {
	controls := s.Controls.Get()
	for _, r := range controls.Rotations {
		for p := range s.Pieces.Values() {
			switch r {
			case Clockwise:
				p.Tetromino.TurnClockwise()
			case Counterclockwise:
				p.Tetromino.TurnCounterclockwise()
			}
			if e := log.Debug(); e.Enabled() {
				e.Stringer("shape", p.Tetromino.Shape()).
					Stringer("rotation", r).
					Int("orientation", p.Tetromino.Orientation()).
					Str("value", fmt.Sprintf("%#016x", p.Tetromino.Value())).
					Msg("tetromino turned")
			}
		}
	}
	controls.Rotations = controls.Rotations[:0]
}
