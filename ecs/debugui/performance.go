package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/arcade/ecs"
)

// PerformanceWindow renders frame timing, entity counts and per-system
// scheduler statistics.
type PerformanceWindow struct {
	scheduler    *ecs.Scheduler
	frameHistory []float32
	frameIndex   int
}

// NewPerformanceWindow keeps historyFrames samples of frame time.
func NewPerformanceWindow(scheduler *ecs.Scheduler, historyFrames int) *PerformanceWindow {
	return &PerformanceWindow{
		scheduler:    scheduler,
		frameHistory: make([]float32, max(historyFrames, 1)),
	}
}

// Sample records one frame's duration in seconds.
func (pw *PerformanceWindow) Sample(deltaTime float64) {
	pw.frameHistory[pw.frameIndex] = float32(deltaTime * 1000.0)
	pw.frameIndex = (pw.frameIndex + 1) % len(pw.frameHistory)
}

// AverageFrameTime returns the mean of the recorded samples in milliseconds.
func (pw *PerformanceWindow) AverageFrameTime() float32 {
	var total float32
	for _, ft := range pw.frameHistory {
		total += ft
	}
	return total / float32(len(pw.frameHistory))
}

// Item wraps the window as a spawnable ImguiItem.
func (pw *PerformanceWindow) Item() ImguiItem {
	return ImguiItem{Render: pw.Render}
}

// Render draws the window. Call it between the backend's BeginFrame and EndFrame.
func (pw *PerformanceWindow) Render() {
	if !imgui.BeginV("Performance", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	storage := pw.scheduler.Storage()
	imgui.Text(fmt.Sprintf("Entities: %d", storage.Count()))
	imgui.Text(fmt.Sprintf("Archetypes: %d", len(storage.Archetypes())))

	avg := pw.AverageFrameTime()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}

	imgui.Separator()
	imgui.PlotLinesFloatPtr("##frametime", &pw.frameHistory[0], int32(len(pw.frameHistory)))

	if imgui.TreeNodeStr("Systems") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStatsTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Avg")
			imgui.TableHeadersRow()

			for _, s := range pw.scheduler.Stats().Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(s.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", s.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(s.AvgDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

// FrameTimer measures wall-clock time between frames.
type FrameTimer struct {
	last time.Time
	now  func() time.Time
}

// NewFrameTimer starts timing from now.
func NewFrameTimer() *FrameTimer {
	return newFrameTimer(time.Now)
}

func newFrameTimer(now func() time.Time) *FrameTimer {
	return &FrameTimer{last: now(), now: now}
}

// Delta returns the seconds elapsed since the previous call, or since the
// timer was created on the first call.
func (ft *FrameTimer) Delta() float64 {
	now := ft.now()
	delta := now.Sub(ft.last).Seconds()
	ft.last = now
	return delta
}
