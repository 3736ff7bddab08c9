package debugui

import "github.com/plus3/arcade/ecs"

// Tools are the debug windows spawned into one world.
type Tools struct {
	Browser     *EntityBrowser
	Inspector   *ComponentInspector
	Performance *PerformanceWindow
	Timer       *FrameTimer
}

// SpawnDebugUI spawns the entity browser, component inspector and
// performance window as ImguiItems and registers ImguiSystem to render them.
// The storage's registry must include RegisterComponents.
func SpawnDebugUI(scheduler *ecs.Scheduler) *Tools {
	storage := scheduler.Storage()
	ecs.NewSingleton[ImguiInputState](storage)

	browser := NewEntityBrowser(storage, 100)
	tools := &Tools{
		Browser:     browser,
		Inspector:   NewComponentInspector(storage, browser),
		Performance: NewPerformanceWindow(scheduler, 120),
		Timer:       NewFrameTimer(),
	}

	storage.Spawn(tools.Browser.Item())
	storage.Spawn(tools.Inspector.Item())
	storage.Spawn(tools.Performance.Item())
	scheduler.Register(&ImguiSystem{})
	return tools
}

// Sample records the wall-clock time since the previous Sample. Call it once
// per drawn frame.
func (t *Tools) Sample() {
	t.Performance.Sample(t.Timer.Delta())
}

// Plugin spawns the debug windows into every world a game builds. Tools
// holds the windows of the most recent world.
type Plugin struct {
	Tools *Tools
}

func (p *Plugin) Components(registry *ecs.ComponentRegistry) {
	RegisterComponents(registry)
}

func (p *Plugin) Build(scheduler *ecs.Scheduler) {
	p.Tools = SpawnDebugUI(scheduler)
}
