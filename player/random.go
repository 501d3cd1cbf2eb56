package player

import (
	"context"
	"math/rand"

	"briscola/game"
)

// Random plays a uniformly random legal card.
type Random struct {
	RNG   *rand.Rand
	Label string
}

// NewRandom creates a random player seeded with seed
func NewRandom(seed int64) *Random {
	return &Random{RNG: rand.New(rand.NewSource(seed))}
}

func (r *Random) Name() string {
	if r.Label != "" {
		return r.Label
	}
	return "random"
}

func (r *Random) ChooseMove(ctx context.Context, state game.GameState) (game.Card, error) {
	moves, err := ensureMoves(state)
	if err != nil {
		return game.Card{}, err
	}
	return moves[r.RNG.Intn(len(moves))], nil
}
