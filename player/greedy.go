package player

import (
	"context"

	"briscola/game"
)

// Greedy is a one-ply heuristic bot. Leading, it sheds its cheapest card.
// Replying, it takes the trick with the cheapest winning card when the trick
// is worth points, and otherwise throws away its cheapest card.
type Greedy struct{}

func (Greedy) Name() string { return "greedy" }

func (Greedy) ChooseMove(ctx context.Context, state game.GameState) (game.Card, error) {
	moves, err := ensureMoves(state)
	if err != nil {
		return game.Card{}, err
	}

	leader := state.ToMove.Other()
	lead, ok := state.PlayedCard(leader)
	if !ok {
		return cheapest(moves, state.TrumpSuit()), nil
	}

	var winners []game.Card
	for _, c := range moves {
		cardA, cardB := lead, c
		if leader == game.SeatB {
			cardA, cardB = c, lead
		}
		if w, _ := game.ResolveTrick(cardA, cardB, leader, state.TrumpSuit()); w == state.ToMove {
			winners = append(winners, c)
		}
	}
	if len(winners) > 0 && (lead.Points() > 0 || len(winners) == len(moves)) {
		return cheapest(winners, state.TrumpSuit()), nil
	}
	return cheapest(moves, state.TrumpSuit()), nil
}

// cheapest prefers the lowest point value, then non-trumps, then the lowest rank
func cheapest(cards []game.Card, trump game.Suit) game.Card {
	cost := func(c game.Card) int {
		v := c.Points()*100 + int(c.Rank)
		if c.Suit == trump {
			v += 50
		}
		return v
	}
	best := cards[0]
	for _, c := range cards[1:] {
		if cost(c) < cost(best) {
			best = c
		}
	}
	return best
}
