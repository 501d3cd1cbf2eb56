package search

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"briscola/game"
)

// advance plays random moves from a fresh game until stop holds.
func advance(t *testing.T, seed int64, stop func(game.GameState) bool) game.GameState {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	s := game.NewGame(rng)
	for !stop(s) {
		if game.IsTerminal(s) {
			t.Fatalf("seed %d: reached the end before the stop condition", seed)
		}
		moves := game.LegalMoves(s)
		s = game.MustApply(s, moves[rng.Intn(len(moves))])
	}
	return s
}

func stockAtMost(n int) func(game.GameState) bool {
	return func(s game.GameState) bool {
		return len(s.Stock) <= n
	}
}

// oracle is a plain recursive game value for player, used as a reference.
func oracle(s game.GameState, player game.Seat) int {
	if game.IsTerminal(s) {
		return game.Utility(s, player)
	}
	var best int
	for i, m := range game.LegalMoves(s) {
		v := oracle(game.MustApply(s, m), player)
		switch {
		case i == 0:
			best = v
		case s.ToMove == player && v > best:
			best = v
		case s.ToMove != player && v < best:
			best = v
		}
	}
	return best
}

func TestAlphaBetaMatchesMinimax(t *testing.T) {
	for seed := int64(1); seed <= 30; seed++ {
		// Small residual trees: three cards of stock or fewer, both between
		// tricks and mid-trick.
		for _, extra := range []int{0, 1} {
			s := advance(t, seed, stockAtMost(3))
			for i := 0; i < extra; i++ {
				s = game.MustApply(s, game.LegalMoves(s)[0])
			}

			mm := Minimax(s)
			ab := AlphaBeta(s, Options{})

			if ab.Value != mm.Value {
				t.Errorf("seed %d extra %d: alpha-beta value %d, minimax value %d", seed, extra, ab.Value, mm.Value)
			}
			if !game.IsLegal(s, ab.Card) {
				t.Errorf("seed %d: alpha-beta chose illegal %s", seed, ab.Card)
			}
			if want := oracle(s, s.ToMove); mm.Value != want {
				t.Errorf("seed %d: minimax value %d, oracle %d", seed, mm.Value, want)
			}
			// The chosen move must itself achieve the minimax value
			if got := oracle(game.MustApply(s, ab.Card), s.ToMove); got != mm.Value {
				t.Errorf("seed %d: chosen move backs up %d, want %d", seed, got, mm.Value)
			}
			if ab.Nodes > mm.Nodes {
				t.Errorf("seed %d: alpha-beta visited %d nodes, minimax %d", seed, ab.Nodes, mm.Nodes)
			}
		}
	}
}

func TestMinimaxDecisionEndgameValue(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		s := advance(t, seed, func(s game.GameState) bool {
			return len(s.Stock) == 0 && !s.TrumpReserved && !s.MidTrick()
		})
		card, value := MinimaxDecision(s)
		if !game.IsLegal(s, card) {
			t.Fatalf("seed %d: illegal decision %s", seed, card)
		}
		if value < s.Scores[s.ToMove] || value > game.TotalPoints-s.Scores[s.ToMove.Other()] {
			t.Errorf("seed %d: value %d outside [%d, %d]", seed, value,
				s.Scores[s.ToMove], game.TotalPoints-s.Scores[s.ToMove.Other()])
		}
		abCard, abValue := AlphaBetaFullSearch(s)
		if abValue != value {
			t.Errorf("seed %d: AlphaBetaFullSearch value %d, minimax %d", seed, abValue, value)
		}
		if !game.IsLegal(s, abCard) {
			t.Errorf("seed %d: illegal alpha-beta decision %s", seed, abCard)
		}
	}
}

func TestAlphaBetaCutoffUsesEval(t *testing.T) {
	s := game.NewGame(rand.New(rand.NewSource(9)))

	calls := 0
	maxDepth := 0
	eval := func(state game.GameState, player game.Seat) int {
		calls++
		return EvalScoreDiff(state, player)
	}
	cutoff := func(state game.GameState, depth int) bool {
		if depth > maxDepth {
			maxDepth = depth
		}
		return depth > 2 || game.IsTerminal(state)
	}

	card, value := AlphaBetaCutoff(s, Options{Cutoff: cutoff, Eval: eval})
	if !game.IsLegal(s, card) {
		t.Fatalf("Expected a legal move, got %s", card)
	}
	if calls == 0 {
		t.Error("Expected the evaluator to be called at the frontier")
	}
	if maxDepth > 3 {
		t.Errorf("Expected search to stop below depth 3, reached %d", maxDepth)
	}
	if value < -game.TotalPoints || value > game.TotalPoints {
		t.Errorf("Value %d out of range", value)
	}
}

func TestAlphaBetaDepthOption(t *testing.T) {
	s := game.NewGame(rand.New(rand.NewSource(4)))
	shallow := AlphaBeta(s, Options{Depth: 1})
	deeper := AlphaBeta(s, Options{Depth: 3})
	if !game.IsLegal(s, shallow.Card) || !game.IsLegal(s, deeper.Card) {
		t.Fatal("Expected legal moves at every depth")
	}
	if deeper.Nodes <= shallow.Nodes {
		t.Errorf("Expected deeper search to visit more nodes: %d vs %d", deeper.Nodes, shallow.Nodes)
	}
}

func TestAlphaBetaLastCard(t *testing.T) {
	// Last trick, second half: a single forced card.
	s := advance(t, 12, func(s game.GameState) bool {
		return len(s.Hands[game.SeatA])+len(s.Hands[game.SeatB]) == 1 && s.MidTrick()
	})
	m := AlphaBeta(s, Options{})
	if m.Card != s.Hands[s.ToMove][0] {
		t.Errorf("Expected the only card %s, got %s", s.Hands[s.ToMove][0], m.Card)
	}
	final := game.MustApply(s, m.Card)
	if m.Value != game.Utility(final, s.ToMove) {
		t.Errorf("Expected value %d, got %d", game.Utility(final, s.ToMove), m.Value)
	}
}

func TestSentinelsOutsideUtilityRange(t *testing.T) {
	if NegInf >= -game.TotalPoints || PosInf <= game.TotalPoints {
		t.Error("Sentinels collide with the utility range")
	}
}

func TestEvaluators(t *testing.T) {
	s := game.NewGameFromDeck(game.NewDeck())
	s.Scores = [2]int{30, 12}
	if got := EvalUtility(s, game.SeatB); got != 12 {
		t.Errorf("Expected utility 12, got %d", got)
	}
	if got := EvalScoreDiff(s, game.SeatA); got != 18 {
		t.Errorf("Expected diff 18, got %d", got)
	}
	if got := EvalScoreDiff(s, game.SeatB); got != -18 {
		t.Errorf("Expected diff -18, got %d", got)
	}
}

func TestAlphaBetaContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := AlphaBetaContext(ctx, game.NewGame(rand.New(rand.NewSource(6))), Options{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestAlphaBetaContextMatchesAlphaBeta(t *testing.T) {
	s := advance(t, 3, stockAtMost(1))
	m, err := AlphaBetaContext(context.Background(), s, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if want := AlphaBeta(s, Options{}); m != want {
		t.Errorf("Expected %+v, got %+v", want, m)
	}
}
