package tetris_test

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/tetris"
	"github.com/plus3/arcade/tetromino"
)

func newScheduler(t *testing.T, shape tetromino.Shape) (*ecs.Scheduler, ecs.EntityId) {
	t.Helper()
	registry := ecs.NewComponentRegistry()
	tetris.RegisterComponents(registry)
	scheduler := ecs.NewScheduler(ecs.NewStorage(registry))
	return scheduler, tetris.Setup(scheduler, shape)
}

func controls(t *testing.T, s *ecs.Scheduler) *tetris.Controls {
	t.Helper()
	var c *tetris.Controls
	require.True(t, s.Storage().ReadSingleton(&c))
	return c
}

func TestRotationSystemAppliesQueuedTurns(t *testing.T) {
	scheduler, id := newScheduler(t, tetromino.ShapeT)

	c := controls(t, scheduler)
	c.Rotations = append(c.Rotations, tetris.Clockwise, tetris.Clockwise, tetris.Counterclockwise)
	scheduler.Once(0.016)

	piece := ecs.ReadComponent[tetris.Piece](scheduler.Storage(), id)
	require.NotNil(t, piece)

	want := tetromino.T()
	want.TurnClockwise()
	assert.Equal(t, want, piece.Tetromino)
	assert.Equal(t, 1, piece.Tetromino.Orientation())
	assert.Empty(t, c.Rotations)
}

func captureLog(t *testing.T, level zerolog.Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf).Level(level)
	t.Cleanup(func() { log.Logger = prev })
	return &buf
}

func TestRotationLogsValueOnlyAtDebug(t *testing.T) {
	tests := []struct {
		level zerolog.Level
		want  string
	}{
		{zerolog.DebugLevel, `"value":"0x`},
		{zerolog.InfoLevel, ""},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			buf := captureLog(t, tt.level)
			scheduler, _ := newScheduler(t, tetromino.ShapeL)

			c := controls(t, scheduler)
			c.Rotations = append(c.Rotations, tetris.Clockwise)
			scheduler.Once(0.016)

			if tt.want == "" {
				assert.Empty(t, buf.String())
			} else {
				assert.Contains(t, buf.String(), tt.want)
				assert.Contains(t, buf.String(), `"message":"tetromino turned"`)
			}
		})
	}
}

func TestSelectionSystemCyclesShapes(t *testing.T) {
	tests := []struct {
		name  string
		start tetromino.Shape
		cycle int
		want  tetromino.Shape
	}{
		{"next", tetromino.ShapeI, 1, tetromino.ShapeO},
		{"prev wraps", tetromino.ShapeI, -1, tetromino.ShapeT},
		{"next wraps", tetromino.ShapeT, 1, tetromino.ShapeI},
		{"several", tetromino.ShapeI, 3, tetromino.ShapeS},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scheduler, id := newScheduler(t, tt.start)
			controls(t, scheduler).Cycle = tt.cycle
			scheduler.Once(0.016)

			piece := ecs.ReadComponent[tetris.Piece](scheduler.Storage(), id)
			assert.Equal(t, tetromino.New(tt.want), piece.Tetromino)

			var sel *tetris.Selection
			require.True(t, scheduler.Storage().ReadSingleton(&sel))
			assert.Equal(t, tt.want, sel.Shape)
			assert.Zero(t, controls(t, scheduler).Cycle)
		})
	}
}

func TestSelectionResetsOrientation(t *testing.T) {
	scheduler, id := newScheduler(t, tetromino.ShapeL)

	c := controls(t, scheduler)
	c.Rotations = append(c.Rotations, tetris.Clockwise)
	scheduler.Once(0.016)

	c.Cycle = 1
	scheduler.Once(0.016)

	piece := ecs.ReadComponent[tetris.Piece](scheduler.Storage(), id)
	assert.Equal(t, tetromino.ShapeT, piece.Tetromino.Shape())
	assert.Equal(t, 0, piece.Tetromino.Orientation())
}

func TestDemoPrintsEveryOrientation(t *testing.T) {
	for _, shape := range tetromino.Shapes() {
		t.Run(shape.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, tetris.Demo(&buf, shape))

			out := buf.String()
			assert.True(t, strings.HasPrefix(out, "Clockwise\n"))
			assert.Contains(t, out, "----\nCounterclockwise\n")
			assert.Equal(t, 8, strings.Count(out, "----\n"))
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

func TestDemoReturnsWriteError(t *testing.T) {
	assert.EqualError(t, tetris.Demo(failingWriter{}, tetromino.ShapeO), "closed")
}

func ExampleDemo() {
	_ = tetris.Demo(os.Stdout, tetromino.ShapeT)
	// Output:
	// Clockwise
	// 111
	// 010
	// 000
	// ----
	// 001
	// 011
	// 001
	// ----
	// 000
	// 010
	// 111
	// ----
	// 100
	// 110
	// 100
	// ----
	// Counterclockwise
	// 111
	// 010
	// 000
	// ----
	// 100
	// 110
	// 100
	// ----
	// 000
	// 010
	// 111
	// ----
	// 001
	// 011
	// 001
	// ----
}
