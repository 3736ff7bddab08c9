package debugui

import (
	"testing"

	"github.com/plus3/arcade/ecs"
	"github.com/stretchr/testify/assert"
)

func TestPerformanceWindowSamples(t *testing.T) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	pw := NewPerformanceWindow(ecs.NewScheduler(storage), 4)

	assert.Zero(t, pw.AverageFrameTime())

	for i := 0; i < 4; i++ {
		pw.Sample(0.010)
	}
	assert.InDelta(t, 10.0, pw.AverageFrameTime(), 1e-4)

	// The ring buffer overwrites the oldest sample
	pw.Sample(0.030)
	assert.InDelta(t, 15.0, pw.AverageFrameTime(), 1e-4)
	assert.Equal(t, 1, pw.frameIndex)
}

func TestPerformanceWindowMinimumHistory(t *testing.T) {
	pw := NewPerformanceWindow(nil, 0)
	assert.Len(t, pw.frameHistory, 1)

	item := pw.Item()
	assert.NotNil(t, item.Render)
}
