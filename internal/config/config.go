// Package config resolves runtime settings for the arcade commands.
//
// Values come from, in increasing priority: built-in defaults, a .env file in
// the working directory, the process environment, and command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/plus3/arcade/tetromino"
)

// Config is the resolved configuration shared by the commands.
type Config struct {
	// FieldWidth and FieldHeight size the snake field in cells.
	FieldWidth  int
	FieldHeight int
	// Tick is the snake movement interval.
	Tick time.Duration
	// Shape is the piece the tetris demonstrator starts with.
	Shape tetromino.Shape
	// Seed feeds the apple placement RNG. Zero picks a random seed.
	Seed uint64

	WindowWidth  int
	WindowHeight int
	// Debug draws the entity browser and inspector windows over the snake game.
	Debug bool

	LogLevel  string
	LogPretty bool
}

// Default returns a 6x6 field ticking every half second, starting on T.
func Default() Config {
	return Config{
		FieldWidth:   6,
		FieldHeight:  6,
		Tick:         500 * time.Millisecond,
		Shape:        tetromino.ShapeT,
		WindowWidth:  500,
		WindowHeight: 500,
		LogLevel:     "info",
		LogPretty:    true,
	}
}

// Load builds a Config for the command called name from the environment and
// args (without the program name).
func Load(name string, args []string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}

	shape := cfg.Shape.String()
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.IntVar(&cfg.FieldWidth, "width", cfg.FieldWidth, "snake field width in cells")
	fs.IntVar(&cfg.FieldHeight, "height", cfg.FieldHeight, "snake field height in cells")
	fs.DurationVar(&cfg.Tick, "tick", cfg.Tick, "snake movement interval")
	fs.StringVar(&shape, "shape", shape, "starting tetromino (I, O, Z, S, J, L, T)")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed, 0 for a random one")
	fs.IntVar(&cfg.WindowWidth, "window-width", cfg.WindowWidth, "window width in pixels")
	fs.IntVar(&cfg.WindowHeight, "window-height", cfg.WindowHeight, "window height in pixels")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "show debug windows")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "zerolog level")
	fs.BoolVar(&cfg.LogPretty, "log-pretty", cfg.LogPretty, "human readable console logs")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	s, err := tetromino.ParseShape(shape)
	if err != nil {
		return cfg, fmt.Errorf("-shape: %w", err)
	}
	cfg.Shape = s

	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	var errs []error
	intVar := func(key string, dst *int) {
		if v, ok := lookup(key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}

	intVar("ARCADE_WIDTH", &c.FieldWidth)
	intVar("ARCADE_HEIGHT", &c.FieldHeight)
	intVar("ARCADE_WINDOW_WIDTH", &c.WindowWidth)
	intVar("ARCADE_WINDOW_HEIGHT", &c.WindowHeight)

	if v, ok := lookup("ARCADE_TICK"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("ARCADE_TICK: %w", err))
		} else {
			c.Tick = d
		}
	}
	if v, ok := lookup("ARCADE_SHAPE"); ok && v != "" {
		s, err := tetromino.ParseShape(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("ARCADE_SHAPE: %w", err))
		} else {
			c.Shape = s
		}
	}
	if v, ok := lookup("ARCADE_SEED"); ok && v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("ARCADE_SEED: %w", err))
		} else {
			c.Seed = n
		}
	}
	if v, ok := lookup("ARCADE_DEBUG"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("ARCADE_DEBUG: %w", err))
		} else {
			c.Debug = b
		}
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup("LOG_PRETTY"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("LOG_PRETTY: %w", err))
		} else {
			c.LogPretty = b
		}
	}

	return errors.Join(errs...)
}

// Validate reports settings no game can run with.
func (c Config) Validate() error {
	var errs []error
	if c.FieldWidth < 2 || c.FieldHeight < 2 {
		errs = append(errs, fmt.Errorf("field must be at least 2x2, got %dx%d", c.FieldWidth, c.FieldHeight))
	}
	if c.FieldWidth > 1<<15 || c.FieldHeight > 1<<15 {
		errs = append(errs, fmt.Errorf("field %dx%d too large", c.FieldWidth, c.FieldHeight))
	}
	if c.Tick <= 0 {
		errs = append(errs, fmt.Errorf("tick must be positive, got %s", c.Tick))
	}
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		errs = append(errs, fmt.Errorf("window must be positive, got %dx%d", c.WindowWidth, c.WindowHeight))
	}
	return errors.Join(errs...)
}
