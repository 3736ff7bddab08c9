package snake

import (
	"math/rand/v2"

	"github.com/plus3/arcade/ecs"
)

// Direction is a heading on the field. Up is toward larger Y.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Delta returns the one-cell step for d.
func (d Direction) Delta() Position {
	switch d {
	case Up:
		return Position{X: 0, Y: 1}
	case Down:
		return Position{X: 0, Y: -1}
	case Left:
		return Position{X: -1, Y: 0}
	default:
		return Position{X: 1, Y: 0}
	}
}

func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "right"
	}
}

// Position is a cell on the field, origin bottom-left.
type Position struct {
	X, Y int
}

func (p Position) Add(o Position) Position {
	return Position{X: p.X + o.X, Y: p.Y + o.Y}
}

// LastPosition is where a part stood at the previous movement tick.
type LastPosition Position

// Head marks the snake's head. Length counts tail segments.
type Head struct {
	Length        int
	Direction     Direction
	LastDirection Direction
}

// Steer turns the head toward d. Once the snake has a tail it cannot turn
// back on itself, and pressing the current heading again is ignored.
func (h *Head) Steer(d Direction) bool {
	if h.Length != 0 && (d == h.LastDirection || d == h.LastDirection.Opposite()) {
		return false
	}
	h.Direction = d
	return true
}

// Segment is one tail piece. It steps onto the cell the part Ahead of it
// just left. The first segment follows the head.
type Segment struct {
	Ahead *ecs.EntityRef
}

type Apple struct{}

// Size is a sprite's extent in cells.
type Size struct {
	Width, Height float64
}

func Square(s float64) Size {
	return Size{Width: s, Height: s}
}

// Field is the playing area singleton.
type Field struct {
	Width, Height int
}

func (f Field) Contains(p Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < f.Width && p.Y < f.Height
}

// MovementTimer produces a movement tick every Interval seconds. Ticked is
// true only during the frame in which the tick happened.
type MovementTimer struct {
	Interval float64
	Elapsed  float64
	Ticked   bool
}

// State is the game status singleton.
type State struct {
	Over  bool
	Won   bool
	Ticks int
}

// Controls queues direction presses until the next frame consumes them.
type Controls struct {
	Pressed []Direction
}

// Growth is raised when the head reaches the apple.
type Growth struct {
	Pending bool
}

// LastPart references the rearmost part of the snake. The next segment
// attaches behind it.
type LastPart struct {
	Ref *ecs.EntityRef
}

// Random is the RNG used for apple placement.
type Random struct {
	Rand *rand.Rand
}

// RegisterComponents registers every entity component used by the game.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[LastPosition](registry)
	ecs.RegisterComponent[Head](registry)
	ecs.RegisterComponent[Segment](registry)
	ecs.RegisterComponent[Apple](registry)
	ecs.RegisterComponent[Size](registry)
}

type part struct {
	*Position
	*LastPosition
}

type headPart struct {
	*Head
	*Position
	*LastPosition
}

type tailPart struct {
	*Segment
	*Position
	*LastPosition
}

type applePart struct {
	*Apple
	*Position
}
