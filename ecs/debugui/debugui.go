// Package debugui draws Dear ImGui windows over a running game.
//
// Windows are ImguiItem entities. ImguiSystem defers their render functions
// to the end of the frame, so a game must run its scheduler between the
// backend's BeginFrame and EndFrame (see the ebiten subpackage). Games read
// the ImguiInputState singleton to leave keys typed into a window out of
// their own controls.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/arcade/ecs"
)

// ImguiItem is one window drawn every frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState mirrors whether ImGui consumed the mouse or keyboard this frame.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
}

// ImguiSystem refreshes ImguiInputState and queues every item's Render.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	if state := i.InputState.Get(); state != nil {
		io := imgui.CurrentIO()
		state.WantCaptureMouse = io.WantCaptureMouse()
		state.WantCaptureKeyboard = io.WantCaptureKeyboard()
	}

	for item := range i.Items.Values() {
		frame.Commands.Defer(item.Render)
	}
}
