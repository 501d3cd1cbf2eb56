package player

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"briscola/game"
	"briscola/search"
)

// Searcher picks moves with determinized alpha-beta search. It only looks at
// what its seat could see at the table.
type Searcher struct {
	Label   string
	Samples int
	// Depth limits each sample's search in plies; zero or less is unlimited
	Depth   int
	Workers int
	// Think bounds the wall-clock time per decision; zero waits for all samples
	Think time.Duration
	// ExactThreshold switches to unlimited depth once the stock is gone and
	// the searcher holds this many cards or fewer
	ExactThreshold int
	Eval           search.EvalFunc
	Debug          bool
	RNG            *rand.Rand
}

// NewSearcher creates a search player with default sampling and the given
// depth, seeded with seed.
func NewSearcher(depth int, seed int64) *Searcher {
	return &Searcher{
		Samples:        search.DefaultSamples,
		Depth:          depth,
		ExactThreshold: game.HandSize,
		RNG:            rand.New(rand.NewSource(seed)),
	}
}

func (s *Searcher) Name() string {
	if s.Label != "" {
		return s.Label
	}
	return "alphabeta"
}

func (s *Searcher) ChooseMove(ctx context.Context, state game.GameState) (game.Card, error) {
	if s.Think > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Think)
		defer cancel()
	}

	start := time.Now()
	opts := s.options(state)
	d, err := search.DeterminizedSearch(ctx, state, opts)
	if err != nil {
		return game.Card{}, fmt.Errorf("%s: %w", s.Name(), err)
	}

	if s.Debug {
		log.Printf("[%s] %s chose %s value=%d samples=%d nodes=%d depth=%d votes=%v in %s",
			s.Name(), state.ToMove, d.Card, d.Value, d.Samples, d.Nodes, opts.Search.Depth,
			d.Votes, time.Since(start).Round(time.Millisecond))
	}
	return d.Card, nil
}

// options builds the sampling configuration for one decision
func (s *Searcher) options(state game.GameState) search.SampleOptions {
	depth := s.Depth
	if s.exact(state) {
		depth = 0
	}
	return search.SampleOptions{
		Samples: s.Samples,
		Workers: s.Workers,
		Search:  search.Options{Depth: depth, Eval: s.Eval},
		Rand:    s.RNG,
	}
}

func (s *Searcher) exact(state game.GameState) bool {
	return len(state.Stock) == 0 && !state.TrumpReserved &&
		len(state.Hands[state.ToMove]) <= s.ExactThreshold
}
