package debugui

import (
	"reflect"
	"testing"
	"time"

	"github.com/plus3/arcade/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type position struct {
	X, Y int
}

type health struct {
	Current uint16
	Max     uint16
	Regen   float32
	Alive   bool
	Label   string
	Origin  position
	Target  *ecs.EntityRef
	hidden  int
}

type tag struct{}

func newTestWorld(t *testing.T) (*ecs.Storage, *ecs.Scheduler) {
	t.Helper()
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[position](registry)
	ecs.RegisterComponent[health](registry)
	ecs.RegisterComponent[tag](registry)
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)
	return storage, ecs.NewScheduler(storage)
}

func TestFieldCacheSkipsUnexported(t *testing.T) {
	fields := componentFields.get(reflect.TypeFor[health]())

	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"Current", "Max", "Regen", "Alive", "Label", "Origin", "Target"}, names)

	assert.True(t, fields[5].IsStruct)
	assert.True(t, fields[6].IsPointer)
	assert.Equal(t, reflect.TypeFor[ecs.EntityRef](), fields[6].Type)

	assert.Empty(t, componentFields.get(reflect.TypeFor[int]()))
}

func TestSetField(t *testing.T) {
	h := &health{Max: 10}

	tests := []struct {
		name  string
		path  []int
		value any
		check func(t *testing.T)
		err   bool
	}{
		{"int32 into uint16", []int{0}, int32(7), func(t *testing.T) { assert.Equal(t, uint16(7), h.Current) }, false},
		{"negative into uint16", []int{1}, int32(-1), func(t *testing.T) { assert.Equal(t, uint16(10), h.Max) }, true},
		{"float", []int{2}, float32(0.5), func(t *testing.T) { assert.InDelta(t, 0.5, h.Regen, 1e-6) }, false},
		{"bool", []int{3}, true, func(t *testing.T) { assert.True(t, h.Alive) }, false},
		{"string", []int{4}, "boss", func(t *testing.T) { assert.Equal(t, "boss", h.Label) }, false},
		{"nested", []int{5, 1}, int32(-3), func(t *testing.T) { assert.Equal(t, -3, h.Origin.Y) }, false},
		{"wrong kind", []int{3}, "yes", func(t *testing.T) { assert.True(t, h.Alive) }, true},
		{"nil pointer on path", []int{6, 0}, int32(1), func(t *testing.T) { assert.Nil(t, h.Target) }, true},
		{"out of range", []int{42}, int32(1), func(t *testing.T) {}, true},
		{"struct is read-only", []int{5}, int32(1), func(t *testing.T) {}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SetField(h, tt.path, tt.value)
			if tt.err {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			tt.check(t)
		})
	}

	assert.Error(t, SetField(*h, []int{0}, 1), "component must be a pointer")
}

func TestEntityBrowserListing(t *testing.T) {
	storage, _ := newTestWorld(t)
	a := storage.Spawn(position{X: 1})
	b := storage.Spawn(position{X: 2}, health{Max: 3})
	c := storage.Spawn(tag{})

	eb := NewEntityBrowser(storage, 10)
	eb.Refresh()
	require.Len(t, eb.Entities(), 3)

	eb.SortBy(SortByCount, false)
	assert.Equal(t, b, eb.Entities()[0].ID)
	assert.Equal(t, []string{"debugui.health", "debugui.position"}, eb.Entities()[0].ComponentTypes)

	eb.SetFilter("TAG")
	require.Len(t, eb.Entities(), 1)
	assert.Equal(t, c, eb.Entities()[0].ID)

	eb.SetFilter("position")
	ids := []ecs.EntityId{}
	for _, e := range eb.Entities() {
		ids = append(ids, e.ID)
	}
	assert.ElementsMatch(t, []ecs.EntityId{a, b}, ids)
}

func TestEntityBrowserRebuildsOnChange(t *testing.T) {
	storage, _ := newTestWorld(t)
	storage.Spawn(position{})

	eb := NewEntityBrowser(storage, 10)
	eb.Refresh()
	assert.Len(t, eb.Entities(), 1)

	id := storage.Spawn(position{X: 5})
	eb.Refresh()
	assert.Len(t, eb.Entities(), 2)

	storage.Delete(id)
	eb.Refresh()
	assert.Len(t, eb.Entities(), 1)
}

func TestEntityBrowserSelectionClearsOnDelete(t *testing.T) {
	storage, _ := newTestWorld(t)
	id := storage.Spawn(position{})

	eb := NewEntityBrowser(storage, 10)
	_, ok := eb.Selected()
	assert.False(t, ok)

	eb.Select(id)
	got, ok := eb.Selected()
	require.True(t, ok)
	assert.Equal(t, id, got)

	storage.Delete(id)
	reused := storage.Spawn(position{X: 9})
	require.Equal(t, id, reused)

	_, ok = eb.Selected()
	assert.False(t, ok)
}

func TestComponentInspectorComponents(t *testing.T) {
	storage, _ := newTestWorld(t)
	id := storage.Spawn(position{X: 4}, health{Max: 8})

	eb := NewEntityBrowser(storage, 10)
	ci := NewComponentInspector(storage, eb)

	components := ci.Components(id)
	require.Len(t, components, 2)
	h, ok := components[0].(*health)
	require.True(t, ok)
	assert.Equal(t, uint16(8), h.Max)

	// Edits write through to storage
	require.NoError(t, SetField(components[1], []int{0}, int32(6)))
	assert.Equal(t, 6, ecs.ReadComponent[position](storage, id).X)

	assert.Nil(t, ci.Components(ecs.NewEntityId(99, 0)))
}

func TestSpawnDebugUI(t *testing.T) {
	storage, scheduler := newTestWorld(t)

	tools := SpawnDebugUI(scheduler)
	require.NotNil(t, tools.Browser)
	require.NotNil(t, tools.Inspector)
	require.NotNil(t, tools.Performance)

	items := ecs.NewView[struct{ *ImguiItem }](storage)
	count := 0
	for item := range items.Values() {
		assert.NotNil(t, item.Render)
		count++
	}
	assert.Equal(t, 3, count)

	var input *ImguiInputState
	assert.True(t, storage.ReadSingleton(&input))

	require.Len(t, scheduler.Stats().Systems, 1)
	assert.Contains(t, scheduler.Stats().Systems[0].Name, "ImguiSystem")
}

func TestPluginRebuildsTools(t *testing.T) {
	p := &Plugin{}
	for range 2 {
		registry := ecs.NewComponentRegistry()
		p.Components(registry)
		previous := p.Tools
		p.Build(ecs.NewScheduler(ecs.NewStorage(registry)))
		require.NotNil(t, p.Tools)
		assert.NotSame(t, previous, p.Tools)
	}
}

func TestFrameTimerMeasuresWallClock(t *testing.T) {
	now := time.Unix(100, 0)
	ft := newFrameTimer(func() time.Time { return now })

	now = now.Add(16 * time.Millisecond)
	assert.InDelta(t, 0.016, ft.Delta(), 1e-9)

	now = now.Add(250 * time.Millisecond)
	assert.InDelta(t, 0.250, ft.Delta(), 1e-9)

	assert.Zero(t, ft.Delta())
}

func TestToolsSampleUsesFrameTimer(t *testing.T) {
	_, scheduler := newTestWorld(t)
	tools := SpawnDebugUI(scheduler)

	now := time.Unix(0, 0)
	tools.Timer = newFrameTimer(func() time.Time { return now })
	tools.Performance = NewPerformanceWindow(scheduler, 2)

	now = now.Add(40 * time.Millisecond)
	tools.Sample()
	now = now.Add(20 * time.Millisecond)
	tools.Sample()

	assert.InDelta(t, 30.0, tools.Performance.AverageFrameTime(), 1e-4)
}
