package main

import (
	"flag"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// Config holds the command line settings. Flags override the environment,
// which overrides the defaults.
type Config struct {
	Mode     string
	Opponent string
	Samples  int
	Depth    int
	Workers  int
	Seed     int64
	Think    time.Duration
	Games    int
	Spectate string
	Reveal   bool
	Debug    bool
}

var modes = []string{"human", "watch", "series"}
var opponents = []string{"random", "greedy", "alphabeta"}

// LoadConfig parses args on top of the environment read through getenv.
func LoadConfig(args []string, getenv func(string) string, usage io.Writer) (Config, error) {
	env := func(k, def string) string {
		if v := strings.TrimSpace(getenv(k)); v != "" {
			return v
		}
		return def
	}

	var cfg Config
	var err error
	if cfg.Samples, err = envInt(env, "BRISCOLA_SAMPLES", 100); err != nil {
		return cfg, err
	}
	if cfg.Depth, err = envInt(env, "BRISCOLA_DEPTH", 4); err != nil {
		return cfg, err
	}
	if cfg.Workers, err = envInt(env, "BRISCOLA_WORKERS", runtime.GOMAXPROCS(0)); err != nil {
		return cfg, err
	}
	if cfg.Games, err = envInt(env, "BRISCOLA_GAMES", 10); err != nil {
		return cfg, err
	}
	seed, err := envInt(env, "BRISCOLA_SEED", 0)
	if err != nil {
		return cfg, err
	}
	think, err := time.ParseDuration(env("BRISCOLA_THINK", "0s"))
	if err != nil {
		return cfg, fmt.Errorf("BRISCOLA_THINK: %w", err)
	}

	fs := flag.NewFlagSet("briscola", flag.ContinueOnError)
	fs.SetOutput(usage)
	fs.StringVar(&cfg.Mode, "mode", env("BRISCOLA_MODE", "human"), "human | watch | series")
	fs.StringVar(&cfg.Opponent, "opponent", env("BRISCOLA_OPPONENT", "greedy"), "AI opponent in watch and series modes: random | greedy | alphabeta")
	fs.IntVar(&cfg.Samples, "samples", cfg.Samples, "Determinizations per AI move")
	fs.IntVar(&cfg.Depth, "depth", cfg.Depth, "Search depth in plies (0 = to the end)")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Parallel search workers")
	fs.Int64Var(&cfg.Seed, "seed", int64(seed), "Random seed (0 = time based)")
	fs.DurationVar(&cfg.Think, "think", think, "Time budget per AI move (0 = none)")
	fs.IntVar(&cfg.Games, "games", cfg.Games, "Games to play in series mode")
	fs.StringVar(&cfg.Spectate, "spectate", env("BRISCOLA_SPECTATE", ""), "Listen address for the spectator feed, e.g. :8080")
	fs.BoolVar(&cfg.Reveal, "reveal", asBool(env("BRISCOLA_REVEAL", "")), "Show both hands to spectators")
	fs.BoolVar(&cfg.Debug, "debug", asBool(env("DEBUG", "")), "Log search details")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if !oneOf(c.Mode, modes) {
		return fmt.Errorf("unknown mode %q (want one of %s)", c.Mode, strings.Join(modes, ", "))
	}
	if !oneOf(c.Opponent, opponents) {
		return fmt.Errorf("unknown opponent %q (want one of %s)", c.Opponent, strings.Join(opponents, ", "))
	}
	if c.Samples <= 0 {
		return fmt.Errorf("samples must be positive, got %d", c.Samples)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.Games <= 0 {
		return fmt.Errorf("games must be positive, got %d", c.Games)
	}
	if c.Think < 0 {
		return fmt.Errorf("think must not be negative, got %s", c.Think)
	}
	return nil
}

func envInt(env func(k, def string) string, k string, def int) (int, error) {
	s := env(k, "")
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer", k, s)
	}
	return n, nil
}

func asBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}

func oneOf(s string, options []string) bool {
	for _, o := range options {
		if s == o {
			return true
		}
	}
	return false
}
