// Command minoterm shows every tetromino in the terminal and turns them on
// key presses.
package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/plus3/arcade/internal/config"
	"github.com/plus3/arcade/internal/logging"
)

func main() {
	cfg, err := config.Load("minoterm", os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	// The terminal belongs to tcell; only errors reach stderr.
	if err := logging.Setup("error", cfg.LogPretty); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("minoterm")
	}
}

func run(cfg config.Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	v := newView(screen)
	v.cursor = int(cfg.Shape)
	for {
		v.draw()
		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if !handleKey(v, ev) {
				return nil
			}
		case nil:
			return nil
		}
	}
}

// handleKey applies one key press and reports whether to keep running.
func handleKey(v *view, ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		v.move(-1)
	case tcell.KeyRight:
		v.move(1)
	case tcell.KeyUp:
		v.turn(true, false)
	case tcell.KeyDown:
		v.turn(false, false)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return false
		case 'x':
			v.turn(true, false)
		case 'z':
			v.turn(false, false)
		case 'a', 'A':
			v.turn(true, true)
		}
	}
	return true
}
