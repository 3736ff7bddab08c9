package snake

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/arcade/ecs"
)

// newWorld builds a storage with every singleton in place and the systems
// registered. spawn adds the entities under test.
func newWorld(t *testing.T, field Field, interval float64, spawn func(s *ecs.Storage)) (*ecs.Storage, *ecs.Scheduler) {
	t.Helper()

	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	storage.AddSingleton(field)
	storage.AddSingleton(MovementTimer{Interval: interval})
	storage.AddSingleton(State{})
	storage.AddSingleton(Controls{})
	storage.AddSingleton(Growth{})
	storage.AddSingleton(Random{Rand: rand.New(rand.NewPCG(1, 2))})
	spawn(storage)

	scheduler := ecs.NewScheduler(storage)
	Setup(scheduler)
	return storage, scheduler
}

// spawnSegment attaches a segment at p behind ahead and makes it the last part.
func spawnSegment(s *ecs.Storage, ahead ecs.EntityId, p Position) ecs.EntityId {
	id := s.Spawn(Segment{Ahead: s.CreateEntityRef(ahead)}, p, LastPosition(p), Square(0.9))
	s.AddSingleton(LastPart{Ref: s.CreateEntityRef(id)})
	return id
}

func spawnHead(s *ecs.Storage, h Head, p Position, last LastPosition) ecs.EntityId {
	id := s.Spawn(h, p, last, Square(1))
	s.AddSingleton(LastPart{Ref: s.CreateEntityRef(id)})
	return id
}

func TestGameOverOnTailCollisionRollsBack(t *testing.T) {
	var head ecs.EntityId
	var tail []ecs.EntityId
	storage, scheduler := newWorld(t, Field{Width: 4, Height: 4}, 1, func(s *ecs.Storage) {
		head = spawnHead(s,
			Head{Length: 4, Direction: Down, LastDirection: Left},
			Position{X: 1, Y: 1},
			LastPosition{X: 2, Y: 1},
		)
		ahead := head
		for _, p := range []Position{{X: 2, Y: 1}, {X: 2, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 0}} {
			ahead = spawnSegment(s, ahead, p)
			tail = append(tail, ahead)
		}
		s.Spawn(Apple{}, Position{X: 3, Y: 3}, Square(1))
	})

	scheduler.Once(1)

	var state *State
	require.True(t, storage.ReadSingleton(&state))
	assert.True(t, state.Over)

	assert.Equal(t, Position{X: 1, Y: 1}, *ecs.ReadComponent[Position](storage, head))
	want := []Position{{X: 2, Y: 1}, {X: 2, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 0}}
	for i, id := range tail {
		assert.Equal(t, want[i], *ecs.ReadComponent[Position](storage, id), "segment %d", i+1)
	}
}

func TestAppleSystemPicksOnlyFreeCell(t *testing.T) {
	var head, apple ecs.EntityId
	storage, scheduler := newWorld(t, Field{Width: 3, Height: 1}, 10, func(s *ecs.Storage) {
		head = spawnHead(s, Head{Direction: Right, LastDirection: Right}, Position{X: 1, Y: 0}, LastPosition{X: 0, Y: 0})
		apple = s.Spawn(Apple{}, Position{X: 1, Y: 0}, Square(1))
	})
	storage.AddSingleton(Growth{Pending: true})

	scheduler.Once(0)

	assert.Equal(t, Position{X: 2, Y: 0}, *ecs.ReadComponent[Position](storage, apple))

	heads := ecs.NewQuery[headPart](storage)
	heads.Execute()
	_, h, ok := heads.First()
	require.True(t, ok)
	assert.Equal(t, 1, h.Head.Length)

	segments := ecs.NewQuery[tailPart](storage)
	segments.Execute()
	_, seg, ok := segments.First()
	require.True(t, ok)
	assert.Equal(t, Position{X: 0, Y: 0}, *seg.Position)

	ahead, ok := storage.ResolveEntityRef(seg.Segment.Ahead)
	require.True(t, ok)
	assert.Equal(t, head, ahead)

	var last *LastPart
	require.True(t, storage.ReadSingleton(&last))
	lastId, ok := storage.ResolveEntityRef(last.Ref)
	require.True(t, ok)
	assert.Equal(t, Position{X: 0, Y: 0}, *ecs.ReadComponent[Position](storage, lastId))
}

func TestSegmentsFollowChainAcrossGrowth(t *testing.T) {
	storage, scheduler := newWorld(t, Field{Width: 8, Height: 1}, 1, func(s *ecs.Storage) {
		spawnHead(s, Head{Direction: Right, LastDirection: Right}, Position{X: 2, Y: 0}, LastPosition{X: 1, Y: 0})
		s.Spawn(Apple{}, Position{X: 3, Y: 0}, Square(1))
	})

	scheduler.Once(1) // eat at x=3, grow at x=2
	scheduler.Once(1) // x=4

	tail := ecs.NewQuery[tailPart](storage)
	tail.Execute()
	_, seg, ok := tail.First()
	require.True(t, ok)
	assert.Equal(t, Position{X: 3, Y: 0}, *seg.Position)
}

func TestSegmentIgnoresEntityReusingSlotAhead(t *testing.T) {
	var first, second ecs.EntityId
	storage, scheduler := newWorld(t, Field{Width: 8, Height: 8}, 1, func(s *ecs.Storage) {
		head := spawnHead(s, Head{Length: 2, Direction: Right, LastDirection: Right}, Position{X: 3, Y: 3}, LastPosition{X: 2, Y: 3})
		first = spawnSegment(s, head, Position{X: 2, Y: 3})
		second = spawnSegment(s, first, Position{X: 1, Y: 3})
		s.Spawn(Apple{}, Position{X: 7, Y: 7}, Square(1))
	})

	storage.Delete(first)
	impostor := storage.Spawn(Segment{}, Position{X: 6, Y: 0}, LastPosition{X: 6, Y: 0}, Square(0.9))
	require.Equal(t, first, impostor, "slot should be reused")

	scheduler.Once(1)

	assert.Equal(t, Position{X: 1, Y: 3}, *ecs.ReadComponent[Position](storage, second))
}

func TestFullFieldWinsGame(t *testing.T) {
	storage, scheduler := newWorld(t, Field{Width: 2, Height: 1}, 10, func(s *ecs.Storage) {
		spawnHead(s, Head{Direction: Right, LastDirection: Right}, Position{X: 1, Y: 0}, LastPosition{X: 0, Y: 0})
		s.Spawn(Apple{}, Position{X: 1, Y: 0}, Square(1))
	})
	storage.AddSingleton(Growth{Pending: true})

	scheduler.Once(0)

	var state *State
	require.True(t, storage.ReadSingleton(&state))
	assert.True(t, state.Won)
	assert.True(t, state.Over)
}

func TestTickerCarriesRemainder(t *testing.T) {
	storage, scheduler := newWorld(t, Field{Width: 6, Height: 6}, 0.5, func(s *ecs.Storage) {
		spawnHead(s, Head{Direction: Right}, Position{}, LastPosition{})
	})

	var timer *MovementTimer
	require.True(t, storage.ReadSingleton(&timer))

	scheduler.Once(0.3)
	assert.False(t, timer.Ticked)

	scheduler.Once(0.3)
	assert.True(t, timer.Ticked)
	assert.InDelta(t, 0.1, timer.Elapsed, 1e-9)

	scheduler.Once(0.1)
	assert.False(t, timer.Ticked)
}

func TestSteer(t *testing.T) {
	tests := []struct {
		name string
		head Head
		to   Direction
		ok   bool
	}{
		{"no tail turns back", Head{Direction: Right, LastDirection: Right}, Left, true},
		{"tail blocks reverse", Head{Length: 1, Direction: Right, LastDirection: Right}, Left, false},
		{"tail blocks same", Head{Length: 1, Direction: Right, LastDirection: Right}, Right, false},
		{"tail allows turn", Head{Length: 1, Direction: Right, LastDirection: Right}, Up, true},
		{"checks last move", Head{Length: 2, Direction: Up, LastDirection: Right}, Left, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := tt.head
			assert.Equal(t, tt.ok, h.Steer(tt.to))
			if tt.ok {
				assert.Equal(t, tt.to, h.Direction)
			}
		})
	}
}
