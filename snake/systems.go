package snake

import (
	"math"

	"github.com/kamstrup/intmap"
	"github.com/rs/zerolog/log"

	"github.com/plus3/arcade/ecs"
)

// TickerSystem advances the movement timer. On a tick it snapshots every
// part's position so later systems can follow or roll back.
type TickerSystem struct {
	Timer ecs.Singleton[MovementTimer]
	State ecs.Singleton[State]
	Parts ecs.Query[part]
}

func (s *TickerSystem) Execute(frame *ecs.UpdateFrame) {
	timer := s.Timer.Get()
	state := s.State.Get()

	timer.Ticked = false
	if state.Over {
		return
	}

	timer.Elapsed += frame.DeltaTime
	if timer.Elapsed < timer.Interval {
		return
	}
	timer.Elapsed = math.Mod(timer.Elapsed, timer.Interval)
	timer.Ticked = true
	state.Ticks++

	for p := range s.Parts.Values() {
		*p.LastPosition = LastPosition(*p.Position)
	}
}

// SteeringSystem applies queued presses every frame and moves the head one
// cell on a tick. LastDirection holds the heading of the latest move.
type SteeringSystem struct {
	Controls ecs.Singleton[Controls]
	Timer    ecs.Singleton[MovementTimer]
	Heads    ecs.Query[headPart]
}

func (s *SteeringSystem) Execute(frame *ecs.UpdateFrame) {
	controls := s.Controls.Get()
	for _, d := range controls.Pressed {
		for h := range s.Heads.Values() {
			h.Steer(d)
		}
	}
	controls.Pressed = controls.Pressed[:0]

	if !s.Timer.Get().Ticked {
		return
	}
	for h := range s.Heads.Values() {
		*h.Position = h.Position.Add(h.Head.Direction.Delta())
		h.Head.LastDirection = h.Head.Direction
	}
}

// FollowSystem moves every tail segment onto the previous position of the
// part in front of it. A segment whose part ahead is gone stays put.
type FollowSystem struct {
	Timer ecs.Singleton[MovementTimer]
	Tail  ecs.Query[tailPart]
}

func (s *FollowSystem) Execute(frame *ecs.UpdateFrame) {
	if !s.Timer.Get().Ticked {
		return
	}

	for t := range s.Tail.Values() {
		ahead, ok := frame.Storage.ResolveEntityRef(t.Segment.Ahead)
		if !ok {
			continue
		}
		if last := ecs.ReadComponent[LastPosition](frame.Storage, ahead); last != nil {
			*t.Position = Position(*last)
		}
	}
}

// GameOverSystem ends the game when the head leaves the field or runs into
// its tail, restoring every part to where it stood before the fatal move.
type GameOverSystem struct {
	Field ecs.Singleton[Field]
	State ecs.Singleton[State]
	Timer ecs.Singleton[MovementTimer]
	Heads ecs.Query[headPart]
	Tail  ecs.Query[tailPart]
	Parts ecs.Query[part]
}

func (s *GameOverSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	if state.Over || !s.Timer.Get().Ticked {
		return
	}

	field := s.Field.Get()
	for h := range s.Heads.Values() {
		if !field.Contains(*h.Position) {
			state.Over = true
			break
		}
		for t := range s.Tail.Values() {
			if *t.Position == *h.Position {
				state.Over = true
				break
			}
		}
	}
	if !state.Over {
		return
	}

	for p := range s.Parts.Values() {
		*p.Position = Position(*p.LastPosition)
	}
	log.Info().Int("ticks", state.Ticks).Msg("snake game over")
}

// AppleCollisionSystem raises Growth when the head lands on an apple.
type AppleCollisionSystem struct {
	State  ecs.Singleton[State]
	Timer  ecs.Singleton[MovementTimer]
	Growth ecs.Singleton[Growth]
	Apples ecs.Query[applePart]
	Heads  ecs.Query[headPart]
}

func (s *AppleCollisionSystem) Execute(frame *ecs.UpdateFrame) {
	if s.State.Get().Over || !s.Timer.Get().Ticked {
		return
	}
	for a := range s.Apples.Values() {
		for h := range s.Heads.Values() {
			if *a.Position == *h.Position {
				s.Growth.Get().Pending = true
			}
		}
	}
}

// AppleSystem moves an eaten apple to a random free cell. A cell is free when
// neither the snake nor the segment about to grow occupies it. With no free
// cell left the game is won.
type AppleSystem struct {
	Field    ecs.Singleton[Field]
	State    ecs.Singleton[State]
	Growth   ecs.Singleton[Growth]
	Random   ecs.Singleton[Random]
	LastPart ecs.Singleton[LastPart]
	Apples   ecs.Query[applePart]
	Heads    ecs.Query[headPart]
	Tail     ecs.Query[tailPart]
}

func (s *AppleSystem) Execute(frame *ecs.UpdateFrame) {
	if !s.Growth.Get().Pending {
		return
	}

	field := s.Field.Get()
	occupied := intmap.New[int, struct{}](field.Width * field.Height)
	mark := func(p Position) { occupied.Put(p.Y*field.Width+p.X, struct{}{}) }

	for h := range s.Heads.Values() {
		mark(*h.Position)
	}
	for t := range s.Tail.Values() {
		mark(*t.Position)
	}
	if spot, ok := growthSpot(frame.Storage, s.LastPart.Get()); ok {
		mark(Position(spot))
	}

	free := make([]Position, 0, field.Width*field.Height)
	for x := 0; x < field.Width; x++ {
		for y := 0; y < field.Height; y++ {
			if _, taken := occupied.Get(y*field.Width + x); !taken {
				free = append(free, Position{X: x, Y: y})
			}
		}
	}

	if len(free) == 0 {
		state := s.State.Get()
		state.Won = true
		state.Over = true
		log.Info().Int("ticks", state.Ticks).Msg("snake fills the field")
		return
	}

	rng := s.Random.Get().Rand
	for a := range s.Apples.Values() {
		*a.Position = free[rng.IntN(len(free))]
	}
}

// GrowSystem lengthens the snake by one segment placed where the last part
// stood before this tick. The new segment becomes the last part once the
// frame's commands are flushed.
type GrowSystem struct {
	Growth   ecs.Singleton[Growth]
	LastPart ecs.Singleton[LastPart]
	Heads    ecs.Query[headPart]
}

func (s *GrowSystem) Execute(frame *ecs.UpdateFrame) {
	growth := s.Growth.Get()
	if !growth.Pending {
		return
	}
	growth.Pending = false

	last := s.LastPart.Get()
	spot, ok := growthSpot(frame.Storage, last)
	if !ok {
		return
	}
	for h := range s.Heads.Values() {
		h.Head.Length++
		ahead := last.Ref
		frame.Commands.Defer(func() {
			id := frame.Storage.Spawn(Segment{Ahead: ahead}, Position(spot), spot, Square(0.9))
			last.Ref = frame.Storage.CreateEntityRef(id)
		})
		log.Debug().Int("length", h.Head.Length).Msg("snake grows")
	}
}

// growthSpot returns the last position of the rearmost part.
func growthSpot(storage *ecs.Storage, last *LastPart) (LastPosition, bool) {
	if last == nil {
		return LastPosition{}, false
	}
	id, ok := storage.ResolveEntityRef(last.Ref)
	if !ok {
		return LastPosition{}, false
	}
	if p := ecs.ReadComponent[LastPosition](storage, id); p != nil {
		return *p, true
	}
	return LastPosition{}, false
}
