package main

import (
	"fmt"
	"image/color"
	"os"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog/log"

	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/ecs/debugui"
	debugui_ebiten "github.com/plus3/arcade/ecs/debugui/ebiten"
	"github.com/plus3/arcade/internal/config"
	"github.com/plus3/arcade/internal/logging"
	"github.com/plus3/arcade/tetris"
	"github.com/plus3/arcade/tetromino"
)

var (
	backgroundColor = color.RGBA{20, 20, 28, 255}
	gridColor       = color.RGBA{40, 40, 52, 255}
	cellColor       = color.RGBA{170, 110, 230, 255}
)

type Game struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	backend   debugui_ebiten.ImguiBackend
	tools     *debugui.Tools
	piece     ecs.EntityId
	controls    *ecs.Singleton[tetris.Controls]
	input       *ecs.Singleton[debugui.ImguiInputState]
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if !g.input.Get().WantCaptureKeyboard {
		c := g.controls.Get()
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp), inpututil.IsKeyJustPressed(ebiten.KeyX):
			c.Rotations = append(c.Rotations, tetris.Clockwise)
		case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown), inpututil.IsKeyJustPressed(ebiten.KeyZ):
			c.Rotations = append(c.Rotations, tetris.Counterclockwise)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) || inpututil.IsKeyJustPressed(ebiten.KeyTab) {
			c.Cycle++
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
			c.Cycle--
		}
	}

	g.backend.Frame(func() {
		g.scheduler.Once(1.0 / float64(ebiten.TPS()))
	})
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.tools.Sample()
	screen.Fill(backgroundColor)

	piece := ecs.ReadComponent[tetris.Piece](g.storage, g.piece)
	if piece != nil {
		drawPiece(screen, piece.Tetromino)
	}
	ebitenutil.DebugPrint(screen, "Up/X: clockwise  Down/Z: counterclockwise  Left/Right: shape")

	g.backend.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// drawPiece fills the piece's grid in the middle of the screen, top row first.
func drawPiece(screen *ebiten.Image, t tetromino.Tetromino) {
	w := float32(screen.Bounds().Dx())
	h := float32(screen.Bounds().Dy())
	size := t.Size()
	cell := min(w, h) / 8
	originX := (w - cell*float32(size)) / 2
	originY := (h - cell*float32(size)) / 2

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			sx := originX + float32(x)*cell
			sy := originY + float32(size-1-y)*cell
			vector.DrawFilledRect(screen, sx, sy, cell, cell, gridColor, false)
			if t.Check(x, y) {
				vector.DrawFilledRect(screen, sx+1, sy+1, cell-2, cell-2, cellColor, false)
			}
		}
	}
}

// inspector renders the packed state of the piece.
func inspector(storage *ecs.Storage, id ecs.EntityId) func() {
	return func() {
		piece := ecs.ReadComponent[tetris.Piece](storage, id)
		if piece == nil {
			return
		}
		t := piece.Tetromino

		if !imgui.BeginV("Tetromino", nil, imgui.WindowFlagsAlwaysAutoResize) {
			imgui.End()
			return
		}
		imgui.Text(fmt.Sprintf("Shape: %s", t.Shape()))
		imgui.Text(fmt.Sprintf("Size: %d", t.Size()))
		imgui.Text(fmt.Sprintf("Orientation: %d", t.Orientation()))
		imgui.Text(fmt.Sprintf("Value: %#016x", t.Value()))
		imgui.Separator()
		width := t.Size() * t.Size()
		for k := range 4 {
			imgui.Text(fmt.Sprintf("Plane %d: %0*b", k, width, t.Plane(k)))
		}
		imgui.Separator()
		imgui.Text(t.String())
		imgui.End()
	}
}

func main() {
	cfg, err := config.Load("tetris", os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := logging.Setup(cfg.LogLevel, cfg.LogPretty); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log.Info().Stringer("shape", cfg.Shape).Msg("starting tetris demonstrator")
	if err := tetris.Demo(os.Stdout, cfg.Shape); err != nil {
		log.Fatal().Err(err).Msg("print rotations")
	}

	backend := debugui_ebiten.NewImguiBackend("Tetris", cfg.WindowWidth, cfg.WindowHeight)

	registry := ecs.NewComponentRegistry()
	tetris.RegisterComponents(registry)
	debugui.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	scheduler := ecs.NewScheduler(storage)
	piece := tetris.Setup(scheduler, cfg.Shape)
	tools := debugui.SpawnDebugUI(scheduler)
	tools.Browser.Select(piece)
	storage.Spawn(debugui.ImguiItem{Render: inspector(storage, piece)})

	game := &Game{
		storage:   storage,
		scheduler: scheduler,
		backend:   backend,
		tools:     tools,
		piece:     piece,
		controls:  ecs.NewSingleton[tetris.Controls](storage),
		input:     ecs.NewSingleton[debugui.ImguiInputState](storage),
	}

	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowTitle("Tetris")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal().Err(err).Msg("tetris exited")
	}
}
