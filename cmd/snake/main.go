package main

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"os"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog/log"

	"github.com/plus3/arcade/ecs/debugui"
	debugui_ebiten "github.com/plus3/arcade/ecs/debugui/ebiten"
	"github.com/plus3/arcade/internal/config"
	"github.com/plus3/arcade/internal/logging"
	"github.com/plus3/arcade/snake"
)

var (
	backgroundColor = color.RGBA{24, 24, 32, 255}
	headColor       = color.RGBA{120, 200, 120, 255}
	segmentColor    = color.RGBA{80, 160, 90, 255}
	appleColor      = color.RGBA{220, 70, 70, 255}
)

var directionKeys = map[ebiten.Key]snake.Direction{
	ebiten.KeyArrowUp:    snake.Up,
	ebiten.KeyArrowDown:  snake.Down,
	ebiten.KeyArrowLeft:  snake.Left,
	ebiten.KeyArrowRight: snake.Right,
	ebiten.KeyW:          snake.Up,
	ebiten.KeyS:          snake.Down,
	ebiten.KeyA:          snake.Left,
	ebiten.KeyD:          snake.Right,
}

type Game struct {
	snake *snake.Game

	// Set only with -debug.
	backend *debugui_ebiten.ImguiBackend
	debug   *debugui.Plugin
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if g.backend == nil {
		g.step()
		return nil
	}
	g.backend.Frame(g.step)
	return nil
}

func (g *Game) step() {
	if g.backend == nil || !imgui.CurrentIO().WantCaptureKeyboard() {
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			g.snake.Reset()
		}
		for key, dir := range directionKeys {
			if inpututil.IsKeyJustPressed(key) {
				g.snake.Press(dir)
			}
		}
	}

	g.snake.Update(1.0 / float64(ebiten.TPS()))
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	w := float64(screen.Bounds().Dx())
	h := float64(screen.Bounds().Dy())
	field := g.snake.Field()

	for _, s := range g.snake.Sprites() {
		c := appleColor
		switch s.Kind {
		case snake.KindHead:
			c = headColor
		case snake.KindSegment:
			c = segmentColor
		}
		r := snake.CellRect(s.Position, s.Size, field, w, h)
		vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), c, false)
	}

	state := g.snake.State()
	switch {
	case state.Won:
		ebitenutil.DebugPrint(screen, fmt.Sprintf("You win! Length %d. Press R to restart.", g.snake.Length()))
	case state.Over:
		ebitenutil.DebugPrint(screen, fmt.Sprintf("Game over. Length %d. Press R to restart.", g.snake.Length()))
	default:
		ebitenutil.DebugPrint(screen, fmt.Sprintf("Length %d", g.snake.Length()))
	}

	if g.backend != nil {
		g.debug.Tools.Sample()
		g.backend.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.backend != nil {
		g.backend.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

func main() {
	cfg, err := config.Load("snake", os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := logging.Setup(cfg.LogLevel, cfg.LogPretty); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	log.Info().
		Int("width", cfg.FieldWidth).
		Int("height", cfg.FieldHeight).
		Dur("tick", cfg.Tick).
		Uint64("seed", seed).
		Bool("debug", cfg.Debug).
		Msg("starting snake")

	opts := snake.Options{
		Width:    cfg.FieldWidth,
		Height:   cfg.FieldHeight,
		Interval: cfg.Tick,
		Seed:     seed,
	}
	game := &Game{}
	if cfg.Debug {
		backend := debugui_ebiten.NewImguiBackend("Snake", cfg.WindowWidth, cfg.WindowHeight)
		game.backend = &backend
		game.debug = &debugui.Plugin{}
		opts.Plugins = append(opts.Plugins, game.debug)
	}
	game.snake = snake.New(opts)

	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowTitle("Snake")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal().Err(err).Msg("snake exited")
	}
}
