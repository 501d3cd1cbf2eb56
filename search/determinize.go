package search

import (
	"errors"
	"fmt"
	"math/rand"

	"briscola/game"
)

// ErrInfeasible means the hidden cards cannot be dealt back into the public
// hand and stock sizes. It signals corrupted state, not a game event.
var ErrInfeasible = errors.New("determinization infeasible")

// Unseen returns the cards viewer cannot locate: everything except the
// viewer's hand, the cards on the table, completed tricks and the trump card.
// The result is in deck order.
func Unseen(state game.GameState, viewer game.Seat) []game.Card {
	known := make(map[game.Card]bool, game.DeckSize)
	for _, c := range state.Hands[viewer] {
		known[c] = true
	}
	for _, seat := range game.Seats() {
		if c, ok := state.PlayedCard(seat); ok {
			known[c] = true
		}
	}
	for _, t := range state.Tricks {
		known[t.A] = true
		known[t.B] = true
	}
	known[state.Trump] = true

	out := make([]game.Card, 0, game.DeckSize-len(known))
	for _, c := range game.NewDeck().Cards {
		if !known[c] {
			out = append(out, c)
		}
	}
	return out
}

// trumpHeldByOpponent reports whether the drawn trump card must be in the opponent's
// hand from viewer's point of view.
func trumpHeldByOpponent(state game.GameState, viewer game.Seat) bool {
	if state.TrumpReserved {
		return false
	}
	for _, c := range state.Hands[viewer] {
		if c == state.Trump {
			return false
		}
	}
	for _, seat := range game.Seats() {
		if c, ok := state.PlayedCard(seat); ok && c == state.Trump {
			return false
		}
	}
	for _, t := range state.Tricks {
		if t.A == state.Trump || t.B == state.Trump {
			return false
		}
	}
	return true
}

// Determinize builds one fully observable state consistent with what viewer
// has seen: the unseen cards are shuffled with rng and dealt into the
// opponent's hand and the stock at their real sizes. The viewer's hand, the
// table, the trick log, scores and turn are kept as they are.
//
// This assumes the hidden cards are uniformly distributed over the unseen
// set, which ignores anything the opponent's play reveals.
func Determinize(state game.GameState, viewer game.Seat, rng *rand.Rand) (game.GameState, error) {
	if !viewer.Valid() {
		return game.GameState{}, fmt.Errorf("%w: invalid viewer %d", ErrInfeasible, viewer)
	}
	opp := viewer.Other()
	unseen := Unseen(state, viewer)

	handSize := len(state.Hands[opp])
	fixed := 0
	if trumpHeldByOpponent(state, viewer) {
		fixed = 1
	}
	if handSize < fixed || len(unseen) != handSize-fixed+len(state.Stock) {
		return game.GameState{}, fmt.Errorf("%w: %d unseen cards for a hand of %d and a stock of %d",
			ErrInfeasible, len(unseen), handSize, len(state.Stock))
	}

	rng.Shuffle(len(unseen), func(i, j int) {
		unseen[i], unseen[j] = unseen[j], unseen[i]
	})

	hand := make([]game.Card, 0, handSize)
	if fixed == 1 {
		hand = append(hand, state.Trump)
	}
	hand = append(hand, unseen[:handSize-fixed]...)
	stock := append([]game.Card(nil), unseen[handSize-fixed:]...)

	synth := state.Clone()
	synth.Hands[opp] = hand
	synth.Stock = stock

	if err := synth.Validate(); err != nil {
		return game.GameState{}, fmt.Errorf("%w: %v", ErrInfeasible, err)
	}
	return synth, nil
}
