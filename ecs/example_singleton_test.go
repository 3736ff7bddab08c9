package ecs_test

import (
	"fmt"

	"github.com/plus3/arcade/ecs"
)

type Round struct {
	Number int
	Over   bool
}

type RoundSystem struct {
	Round ecs.Singleton[Round]
}

func (s *RoundSystem) Execute(frame *ecs.UpdateFrame) {
	r := s.Round.Get()
	r.Number++
	r.Over = r.Number >= 3
}

// ExampleNewSingleton stores global state outside any entity. Every accessor
// for the same type shares one value, including Singleton fields of systems.
func ExampleNewSingleton() {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	round := ecs.NewSingleton[Round](storage, Round{Number: 1})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&RoundSystem{})

	for !round.Get().Over {
		scheduler.Once(1)
	}
	fmt.Printf("Round %d, over: %v\n", round.Get().Number, round.Get().Over)

	var same *Round
	if storage.ReadSingleton(&same) {
		fmt.Printf("Read back round %d\n", same.Number)
	}

	// Output:
	// Round 3, over: true
	// Read back round 3
}
