// Package player defines the move-selection contract shared by the console
// user, the baseline bots and the search-driven AI.
package player

import (
	"context"
	"fmt"

	"briscola/game"
)

// Player chooses one card to play. The returned card must be an element of
// game.LegalMoves(state).
type Player interface {
	Name() string
	ChooseMove(ctx context.Context, state game.GameState) (game.Card, error)
}

// ensureMoves returns the legal moves or an error when there are none
func ensureMoves(state game.GameState) ([]game.Card, error) {
	moves := game.LegalMoves(state)
	if len(moves) == 0 {
		return nil, fmt.Errorf("%s has no card to play: %w", state.ToMove, game.ErrGameOver)
	}
	return moves, nil
}
