package main

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"briscola/display"
	"briscola/game"
	"briscola/match"
	"briscola/player"
	"briscola/server"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	_ = godotenv.Load()

	cfg, err := LoadConfig(os.Args[1:], os.Getenv, os.Stderr)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	log.Printf("Briscola %s mode, seed %d, %d samples at depth %d", cfg.Mode, cfg.Seed, cfg.Samples, cfg.Depth)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var renderers match.Renderers
	var reporters match.Reporters
	if cfg.Spectate != "" {
		spectator := startSpectator(ctx, cfg)
		renderers = append(renderers, spectator)
		reporters = append(reporters, spectator)
	}

	ai := newSearcher(cfg, "alphabeta", rng.Int63())

	switch cfg.Mode {
	case "human":
		// The AI leads from seat A; the person plays seat B
		console := display.NewConsole(os.Stdout, game.SeatB)
		renderers = append(renderers, console)
		reporters = append(reporters, console)

		m := match.New(ai, player.NewHuman("You", os.Stdin, os.Stdout))
		m.Renderer, m.Reporter = renderers, reporters
		if _, err := m.Run(ctx, game.NewGame(rng)); err != nil {
			exit("game", err)
		}

	case "watch":
		console := display.NewConsole(os.Stdout, game.SeatA)
		console.Reveal = true
		renderers = append(renderers, console)
		reporters = append(reporters, console)

		m := match.New(ai, newOpponent(cfg, rng.Int63()))
		m.Renderer, m.Reporter = renderers, reporters
		m.Log = log.Default()
		if _, err := m.Run(ctx, game.NewGame(rng)); err != nil {
			exit("game", err)
		}

	case "series":
		s := &match.Series{
			Players:  [2]player.Player{ai, newOpponent(cfg, rng.Int63())},
			Games:    cfg.Games,
			RNG:      rng,
			Renderer: renderers,
			Reporter: reporters,
			Log:      log.Default(),
		}
		res, err := s.Run(ctx)
		if err != nil {
			log.Printf("Series stopped. %s", res)
			exit("series", err)
		}
		log.Printf("Series complete. %s", res)
	}
}

// exit reports err and quits; an interrupt is not a failure
func exit(what string, err error) {
	if errors.Is(err, context.Canceled) {
		log.Printf("Interrupted")
		os.Exit(0)
	}
	log.Fatalf("%s: %v", what, err)
}

func newSearcher(cfg Config, label string, seed int64) *player.Searcher {
	s := player.NewSearcher(cfg.Depth, seed)
	s.Label = label
	s.Samples = cfg.Samples
	s.Workers = cfg.Workers
	s.Think = cfg.Think
	s.Debug = cfg.Debug
	return s
}

func newOpponent(cfg Config, seed int64) player.Player {
	switch cfg.Opponent {
	case "random":
		return player.NewRandom(seed)
	case "alphabeta":
		return newSearcher(cfg, "alphabeta-2", seed)
	default:
		return player.Greedy{}
	}
}

// startSpectator serves the read-only spectator feed until ctx ends
func startSpectator(ctx context.Context, cfg Config) *server.Spectator {
	hub := server.NewHub()
	go hub.Run(ctx)
	spectator := server.NewSpectator(hub, cfg.Reveal)

	srv := &http.Server{Addr: cfg.Spectate, Handler: server.Router(hub, spectator)}
	go func() {
		log.Printf("Spectator feed on http://localhost%s (ws at /ws)", cfg.Spectate)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Spectator server: %v", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdown)
	}()
	return spectator
}
