// Package snake implements the Snake game as ECS components and systems.
//
// The field uses a bottom-left origin. A movement timer produces ticks; on
// each tick the head advances one cell and every tail segment steps onto the
// cell the part ahead of it just left.
package snake

import (
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/plus3/arcade/ecs"
)

// Options configures a new game.
type Options struct {
	Width    int
	Height   int
	Interval time.Duration
	Seed     uint64

	// Plugins extend every world built by New and Reset.
	Plugins []Plugin
}

// Plugin adds components and systems alongside the game's own. Build runs
// after the game systems are registered.
type Plugin interface {
	Components(registry *ecs.ComponentRegistry)
	Build(scheduler *ecs.Scheduler)
}

// DefaultOptions returns a 6x6 field ticking every half second.
func DefaultOptions() Options {
	return Options{
		Width:    6,
		Height:   6,
		Interval: 500 * time.Millisecond,
	}
}

// Kind identifies what a Sprite depicts.
type Kind uint8

const (
	KindHead Kind = iota
	KindSegment
	KindApple
)

// Sprite is a drawable game object.
type Sprite struct {
	Kind     Kind
	Position Position
	Size     Size
}

type sprite struct {
	*Position
	*Size
	Head    *Head    `ecs:"optional"`
	Segment *Segment `ecs:"optional"`
}

// Game owns the ECS world of one Snake session.
type Game struct {
	opts      Options
	storage   *ecs.Storage
	scheduler *ecs.Scheduler

	state    *ecs.Singleton[State]
	controls *ecs.Singleton[Controls]
	field    *ecs.Singleton[Field]
	heads    *ecs.Query[headPart]
	apples   *ecs.Query[applePart]
	sprites  *ecs.Query[sprite]
}

// New creates a game in its initial state.
func New(opts Options) *Game {
	g := &Game{opts: opts}
	g.Reset()
	return g
}

// Reset discards the current world and starts over.
func (g *Game) Reset() {
	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	for _, p := range g.opts.Plugins {
		p.Components(registry)
	}
	g.storage = ecs.NewStorage(registry)

	g.storage.AddSingleton(Field{Width: g.opts.Width, Height: g.opts.Height})
	g.storage.AddSingleton(MovementTimer{Interval: g.opts.Interval.Seconds()})
	g.storage.AddSingleton(State{})
	g.storage.AddSingleton(Controls{})
	g.storage.AddSingleton(Growth{})
	g.storage.AddSingleton(Random{Rand: rand.New(rand.NewPCG(g.opts.Seed, g.opts.Seed^0x9e3779b97f4a7c15))})

	head := g.storage.Spawn(
		Head{Direction: Right, LastDirection: Right},
		Position{},
		LastPosition{},
		Square(1),
	)
	g.storage.AddSingleton(LastPart{Ref: g.storage.CreateEntityRef(head)})
	g.storage.Spawn(Apple{}, Position{X: 1, Y: 1}, Square(1))

	g.scheduler = ecs.NewScheduler(g.storage)
	Setup(g.scheduler)
	for _, p := range g.opts.Plugins {
		p.Build(g.scheduler)
	}

	g.state = ecs.NewSingleton[State](g.storage)
	g.controls = ecs.NewSingleton[Controls](g.storage)
	g.field = ecs.NewSingleton[Field](g.storage)
	g.heads = ecs.NewQuery[headPart](g.storage)
	g.apples = ecs.NewQuery[applePart](g.storage)
	g.sprites = ecs.NewQuery[sprite](g.storage)

	log.Debug().
		Int("width", g.opts.Width).
		Int("height", g.opts.Height).
		Dur("interval", g.opts.Interval).
		Int("plugins", len(g.opts.Plugins)).
		Msg("snake reset")
}

// Setup registers the game systems in the order they must run.
func Setup(scheduler *ecs.Scheduler) {
	scheduler.Register(&TickerSystem{})
	scheduler.Register(&SteeringSystem{})
	scheduler.Register(&FollowSystem{})
	scheduler.Register(&GameOverSystem{})
	scheduler.Register(&AppleCollisionSystem{})
	scheduler.Register(&AppleSystem{})
	scheduler.Register(&GrowSystem{})
}

// Press queues a direction change for the next update.
func (g *Game) Press(d Direction) {
	c := g.controls.Get()
	c.Pressed = append(c.Pressed, d)
}

// Update advances the game by dt seconds.
func (g *Game) Update(dt float64) {
	g.scheduler.Once(dt)
}

func (g *Game) State() State {
	return *g.state.Get()
}

func (g *Game) Field() Field {
	return *g.field.Get()
}

// Length returns the number of tail segments.
func (g *Game) Length() int {
	g.heads.Execute()
	if _, h, ok := g.heads.First(); ok {
		return h.Head.Length
	}
	return 0
}

// Head returns the head's cell and heading.
func (g *Game) Head() (Position, Direction) {
	g.heads.Execute()
	if _, h, ok := g.heads.First(); ok {
		return *h.Position, h.Head.Direction
	}
	return Position{}, Right
}

func (g *Game) Apple() Position {
	g.apples.Execute()
	if _, a, ok := g.apples.First(); ok {
		return *a.Position
	}
	return Position{}
}

// Sprites returns every drawable object.
func (g *Game) Sprites() []Sprite {
	g.sprites.Execute()
	out := make([]Sprite, 0, g.sprites.Len())
	for s := range g.sprites.Values() {
		kind := KindApple
		switch {
		case s.Head != nil:
			kind = KindHead
		case s.Segment != nil:
			kind = KindSegment
		}
		out = append(out, Sprite{Kind: kind, Position: *s.Position, Size: *s.Size})
	}
	return out
}

func (g *Game) Scheduler() *ecs.Scheduler {
	return g.scheduler
}
