package search

import (
	"context"
	"errors"
	"math/rand"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"briscola/game"
)

// DefaultSamples is the number of determinizations per decision
const DefaultSamples = 100

// ErrNoMoves is returned when asked to decide in a state with nothing to play
var ErrNoMoves = errors.New("no legal moves")

// SampleOptions configures DeterminizedSearch.
type SampleOptions struct {
	Samples int // DefaultSamples when zero
	Workers int // GOMAXPROCS when zero
	Search  Options
	// Rand seeds each sample; a time-seeded source is used when nil.
	Rand *rand.Rand
}

// Decision is the outcome of a determinized search.
type Decision struct {
	Card  game.Card
	Value int
	// Samples is the number of determinizations actually searched
	Samples int
	Nodes   int
	// Best holds the highest value any sample assigned to each chosen card
	Best map[game.Card]int
	// Votes counts how many samples chose each card
	Votes map[game.Card]int
}

type sampleResult struct {
	move Move
	done bool
}

// DeterminizedSearch picks a move for the seat to move without looking at the
// opponent's hand or the stock order.
//
// Each sample deals the unseen cards at random (see Determinize) and runs
// alpha-beta on that guess. The move returned is the one with the single
// highest value recorded by any sample, ties going to the earliest sample.
// It is a heuristic: it neither averages nor votes across samples, and it
// treats the hidden cards as uniformly distributed.
//
// Samples run concurrently. ctx bounds the wall-clock budget: when ctx ends,
// running samples are abandoned, the rest are skipped, and the best of the
// finished ones is returned. If none finished, ctx.Err() is returned.
func DeterminizedSearch(ctx context.Context, state game.GameState, opts SampleOptions) (Decision, error) {
	moves := game.LegalMoves(state)
	if len(moves) == 0 {
		return Decision{}, ErrNoMoves
	}
	if len(moves) == 1 {
		return Decision{Card: moves[0], Value: game.Utility(state, state.ToMove)}, nil
	}

	samples := opts.Samples
	if samples <= 0 {
		samples = DefaultSamples
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	// Seeds are drawn up front so the outcome does not depend on scheduling
	seeds := make([]int64, samples)
	for i := range seeds {
		seeds[i] = rng.Int63()
	}

	viewer := state.ToMove
	results := make([]sampleResult, samples)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < samples; i++ {
		i := i
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			synth, err := Determinize(state, viewer, rand.New(rand.NewSource(seeds[i])))
			if err != nil {
				return err
			}
			move, err := AlphaBetaContext(gctx, synth, opts.Search)
			if err != nil {
				// Cut off by the budget; the sample does not count
				return nil
			}
			results[i] = sampleResult{move: move, done: true}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Decision{}, err
	}

	d := Decision{
		Value: NegInf,
		Best:  make(map[game.Card]int),
		Votes: make(map[game.Card]int),
	}
	for _, r := range results {
		if !r.done {
			continue
		}
		d.Samples++
		d.Nodes += r.move.Nodes
		d.Votes[r.move.Card]++
		if prev, ok := d.Best[r.move.Card]; !ok || r.move.Value > prev {
			d.Best[r.move.Card] = r.move.Value
		}
		if r.move.Value > d.Value {
			d.Card, d.Value = r.move.Card, r.move.Value
		}
	}
	if d.Samples == 0 {
		if err := ctx.Err(); err != nil {
			return Decision{}, err
		}
		return Decision{}, ErrNoMoves
	}
	return d, nil
}
