// Package search chooses moves by adversarial tree search over fully
// observable game states: plain minimax, alpha-beta with an optional depth
// cutoff, and a determinization driver that samples the hidden cards.
package search

import (
	"context"
	"math"

	"briscola/game"
)

// Sentinels bracket every reachable value; utilities lie in [-120, 120].
const (
	NegInf = math.MinInt32
	PosInf = math.MaxInt32
)

// EvalFunc scores a cutoff node from the point of view of player
type EvalFunc func(state game.GameState, player game.Seat) int

// CutoffFunc decides whether to stop expanding at depth plies below the root
type CutoffFunc func(state game.GameState, depth int) bool

// EvalUtility is the default evaluator: the player's cumulative score.
func EvalUtility(state game.GameState, player game.Seat) int {
	return game.Utility(state, player)
}

// EvalScoreDiff scores the player's lead over the opponent.
func EvalScoreDiff(state game.GameState, player game.Seat) int {
	return state.Scores[player] - state.Scores[player.Other()]
}

// Options configures depth-limited alpha-beta.
type Options struct {
	// Depth is the ply limit; zero or less searches to terminal states.
	Depth  int
	Cutoff CutoffFunc
	Eval   EvalFunc
}

func (o Options) cutoff() CutoffFunc {
	if o.Cutoff != nil {
		return o.Cutoff
	}
	if o.Depth <= 0 {
		return func(state game.GameState, _ int) bool {
			return game.IsTerminal(state)
		}
	}
	d := o.Depth
	return func(state game.GameState, depth int) bool {
		return depth > d || game.IsTerminal(state)
	}
}

func (o Options) eval() EvalFunc {
	if o.Eval != nil {
		return o.Eval
	}
	return EvalUtility
}

// Move is a root decision with its backed-up value and the number of nodes
// visited to find it.
type Move struct {
	Card  game.Card
	Value int
	Nodes int
}

// checkEvery is how many nodes pass between context checks
const checkEvery = 1024

// searcher holds the per-search configuration. A node maximizes when the
// searching player is to move; the trick winner leads next, so the same seat
// can be to move on consecutive plies.
type searcher struct {
	player game.Seat
	cutoff CutoffFunc
	eval   EvalFunc
	nodes  int

	ctx     context.Context
	aborted bool
}

// timedOut polls ctx every checkEvery nodes. Once set it stays set, and the
// values backed up after it are meaningless.
func (s *searcher) timedOut() bool {
	if s.aborted {
		return true
	}
	if s.ctx != nil && s.nodes%checkEvery == 0 && s.ctx.Err() != nil {
		s.aborted = true
	}
	return s.aborted
}

func newSearcher(state game.GameState, opts Options) *searcher {
	return &searcher{
		player: state.ToMove,
		cutoff: opts.cutoff(),
		eval:   opts.eval(),
	}
}

// MinimaxDecision searches every line to the end of the game without
// pruning. Only practical for small residual trees.
func MinimaxDecision(state game.GameState) (game.Card, int) {
	m := Minimax(state)
	return m.Card, m.Value
}

// Minimax is MinimaxDecision with node accounting.
func Minimax(state game.GameState) Move {
	s := newSearcher(state, Options{})
	best := Move{Value: NegInf}
	for _, a := range game.LegalMoves(state) {
		v := s.minimax(game.MustApply(state, a), 1)
		if v > best.Value {
			best.Card, best.Value = a, v
		}
	}
	if best.Value == NegInf {
		best.Value = s.eval(state, s.player)
	}
	best.Nodes = s.nodes
	return best
}

func (s *searcher) minimax(state game.GameState, depth int) int {
	s.nodes++
	if s.cutoff(state, depth) {
		return s.eval(state, s.player)
	}
	maximize := state.ToMove == s.player
	v := PosInf
	if maximize {
		v = NegInf
	}
	for _, a := range game.LegalMoves(state) {
		child := s.minimax(game.MustApply(state, a), depth+1)
		if maximize {
			v = max(v, child)
		} else {
			v = min(v, child)
		}
	}
	return v
}

// AlphaBetaFullSearch is alpha-beta pruned search to terminal states.
func AlphaBetaFullSearch(state game.GameState) (game.Card, int) {
	m := AlphaBeta(state, Options{})
	return m.Card, m.Value
}

// AlphaBetaCutoff searches to opts.Depth plies and evaluates the frontier
// with opts.Eval.
func AlphaBetaCutoff(state game.GameState, opts Options) (game.Card, int) {
	m := AlphaBeta(state, opts)
	return m.Card, m.Value
}

// AlphaBeta returns the legal move with the highest guaranteed value for the
// seat to move; ties go to the first move in hand order. On a state with no
// legal moves the zero card is returned with the state's evaluation.
func AlphaBeta(state game.GameState, opts Options) Move {
	m, _ := AlphaBetaContext(context.Background(), state, opts)
	return m
}

// AlphaBetaContext is AlphaBeta that gives up when ctx ends, returning
// ctx.Err() and a move that must not be used.
func AlphaBetaContext(ctx context.Context, state game.GameState, opts Options) (Move, error) {
	s := newSearcher(state, opts)
	s.ctx = ctx
	best := Move{Value: NegInf}
	for _, a := range game.LegalMoves(state) {
		v := s.alphaBeta(game.MustApply(state, a), best.Value, PosInf, 1)
		if s.aborted {
			return Move{Nodes: s.nodes}, ctx.Err()
		}
		if v > best.Value {
			best.Card, best.Value = a, v
		}
	}
	if best.Value == NegInf {
		best.Value = s.eval(state, s.player)
	}
	best.Nodes = s.nodes
	return best, nil
}

func (s *searcher) alphaBeta(state game.GameState, alpha, beta, depth int) int {
	s.nodes++
	if s.timedOut() || s.cutoff(state, depth) {
		return s.eval(state, s.player)
	}

	if state.ToMove == s.player {
		v := NegInf
		for _, a := range game.LegalMoves(state) {
			v = max(v, s.alphaBeta(game.MustApply(state, a), alpha, beta, depth+1))
			if v >= beta {
				return v
			}
			alpha = max(alpha, v)
		}
		return v
	}

	v := PosInf
	for _, a := range game.LegalMoves(state) {
		v = min(v, s.alphaBeta(game.MustApply(state, a), alpha, beta, depth+1))
		if v <= alpha {
			return v
		}
		beta = min(beta, v)
	}
	return v
}
