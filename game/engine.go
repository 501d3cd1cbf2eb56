package game

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrIllegalMove = errors.New("card not in hand")
	ErrGameOver    = errors.New("game is over")
)

// LegalMoves returns the cards the seat to move may play. Every held card is
// playable; there is no follow-suit obligation.
func LegalMoves(state GameState) []Card {
	return state.Hand(state.ToMove)
}

// IsLegal reports whether card is one of the legal moves in state
func IsLegal(state GameState, card Card) bool {
	return state.ToMove.Valid() && containsCard(state.Hands[state.ToMove], card)
}

// IsTerminal returns true once the stock is empty and both hands are played out
func IsTerminal(state GameState) bool {
	return len(state.Stock) == 0 && !state.TrumpReserved &&
		len(state.Hands[SeatA]) == 0 && len(state.Hands[SeatB]) == 0
}

// Utility returns the seat's cumulative score
func Utility(state GameState, seat Seat) int {
	return state.Scores[seat]
}

// ApplyMove plays card for the seat to move and returns the successor state.
// The input state is left untouched.
func ApplyMove(state GameState, card Card) (GameState, error) {
	if IsTerminal(state) {
		return GameState{}, ErrGameOver
	}
	mover := state.ToMove
	if !mover.Valid() {
		return GameState{}, fmt.Errorf("%w: no seat to move", ErrIllegalMove)
	}
	cardIdx := indexOf(state.Hands[mover], card)
	if cardIdx == -1 {
		return GameState{}, fmt.Errorf("%w: seat %s does not hold %s", ErrIllegalMove, mover, card)
	}

	next := state
	next.Hands[mover] = withoutIndex(state.Hands[mover], cardIdx)
	played := card
	next.Played[mover] = &played

	// Opening play of the trick
	if state.Played[mover.Other()] == nil {
		next.Leader = mover
		next.ToMove = mover.Other()
		return next, nil
	}

	return completeTrick(next), nil
}

// MustApply is ApplyMove for callers that only pass cards from LegalMoves.
// It panics on a rules violation.
func MustApply(state GameState, card Card) GameState {
	next, err := ApplyMove(state, card)
	if err != nil {
		panic(err)
	}
	return next
}

// ResolveTrick decides a trick from the two played cards.
//
// Tiers, in order: same suit compares rank; exactly one trump wins; otherwise
// the leader wins.
func ResolveTrick(cardA, cardB Card, leader Seat, trump Suit) (Seat, Outcome) {
	switch {
	case cardA.Suit == cardB.Suit:
		if cardA.Rank > cardB.Rank {
			return SeatA, OutcomeSameSuit
		}
		return SeatB, OutcomeSameSuit
	case cardA.Suit == trump:
		return SeatA, OutcomeTrump
	case cardB.Suit == trump:
		return SeatB, OutcomeTrump
	default:
		return leader, OutcomeLeaderDefault
	}
}

// completeTrick scores a trick with both cards on the table, replenishes the
// hands and hands the lead to the winner.
func completeTrick(state GameState) GameState {
	cardA := *state.Played[SeatA]
	cardB := *state.Played[SeatB]
	winner, outcome := ResolveTrick(cardA, cardB, state.Leader, state.Trump.Suit)

	record := TrickRecord{
		A:       cardA,
		B:       cardB,
		Leader:  state.Leader,
		Winner:  winner,
		Outcome: outcome,
	}
	tricks := make([]TrickRecord, len(state.Tricks), len(state.Tricks)+1)
	copy(tricks, state.Tricks)
	state.Tricks = append(tricks, record)
	state.Scores[winner] += record.Points()

	state = replenish(state, winner)

	state.Played = [2]*Card{}
	state.Leader = NoSeat
	state.ToMove = winner
	return state
}

// replenish deals one card to each seat after a trick, winner first. The
// reserved trump is the very last card and goes to the loser together with the
// winner taking the final stock card.
func replenish(state GameState, winner Seat) GameState {
	loser := winner.Other()
	n := len(state.Stock)

	switch {
	case n >= 2:
		state.Hands[winner] = withCard(state.Hands[winner], state.Stock[n-1])
		state.Hands[loser] = withCard(state.Hands[loser], state.Stock[n-2])
		state.Stock = state.Stock[:n-2]
	case n == 1:
		state.Hands[winner] = withCard(state.Hands[winner], state.Stock[0])
		state.Stock = nil
		if state.TrumpReserved {
			state.Hands[loser] = withCard(state.Hands[loser], state.Trump)
			state.TrumpReserved = false
		}
	case state.TrumpReserved:
		// Only reachable from hand-built states with an even stock
		state.Hands[winner] = withCard(state.Hands[winner], state.Trump)
		state.TrumpReserved = false
	}
	return state
}

// withCard returns a new slice holding hand plus c
func withCard(hand []Card, c Card) []Card {
	out := make([]Card, len(hand), len(hand)+1)
	copy(out, hand)
	return append(out, c)
}

// withoutIndex returns a new slice holding hand minus the card at i
func withoutIndex(hand []Card, i int) []Card {
	out := make([]Card, 0, len(hand)-1)
	out = append(out, hand[:i]...)
	return append(out, hand[i+1:]...)
}
