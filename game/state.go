package game

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
)

const (
	// DeckSize is the number of cards in the Spanish deck
	DeckSize = 40
	// HandSize is the number of cards held at the start of a trick
	HandSize = 3
	// TotalPoints is the sum of all card points in the deck
	TotalPoints = 120
)

// Seat identifies one of the two players
type Seat int

const (
	SeatA Seat = iota
	SeatB
	// NoSeat marks an undefined leader between tricks
	NoSeat Seat = -1
)

// Seats returns both seats in play order
func Seats() []Seat {
	return []Seat{SeatA, SeatB}
}

// Other returns the opponent seat
func (s Seat) Other() Seat {
	switch s {
	case SeatA:
		return SeatB
	case SeatB:
		return SeatA
	default:
		return NoSeat
	}
}

// Valid reports whether s is SeatA or SeatB.
func (s Seat) Valid() bool {
	return s == SeatA || s == SeatB
}

func (s Seat) String() string {
	switch s {
	case SeatA:
		return "A"
	case SeatB:
		return "B"
	default:
		return "-"
	}
}

// MarshalText renders the seat as "A", "B" or "-"
func (s Seat) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Outcome tags which tier of the trick rule decided a trick
type Outcome int

const (
	// OutcomeSameSuit: both cards share a suit, the higher rank wins
	OutcomeSameSuit Outcome = iota
	// OutcomeTrump: exactly one card is trump
	OutcomeTrump
	// OutcomeLeaderDefault: different non-trump suits, the leader wins
	OutcomeLeaderDefault
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSameSuit:
		return "sameSuit"
	case OutcomeTrump:
		return "trump"
	case OutcomeLeaderDefault:
		return "leaderDefault"
	default:
		return "?"
	}
}

// MarshalText renders the outcome tag
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// TrickRecord stores a completed trick
type TrickRecord struct {
	A       Card    `json:"a"`
	B       Card    `json:"b"`
	Leader  Seat    `json:"leader"`
	Winner  Seat    `json:"winner"`
	Outcome Outcome `json:"outcome"`
}

// Points returns the points captured by the trick winner
func (t TrickRecord) Points() int {
	return SumPoints(t.A, t.B)
}

// Card returns the card the given seat played in this trick
func (t TrickRecord) Card(s Seat) Card {
	if s == SeatB {
		return t.B
	}
	return t.A
}

// GameState is an immutable snapshot of a game.
//
// States are only derived through ApplyMove. Slices held by a state are never
// written after the state is built, so successors may share them.
type GameState struct {
	ToMove Seat      `json:"toMove"`
	Hands  [2][]Card `json:"hands"`
	// Played holds the card each seat committed to the current trick
	Played [2]*Card `json:"played"`
	// Trump fixes the trump suit for the whole game and stays visible after
	// it is drawn.
	Trump Card `json:"trump"`
	// TrumpReserved is true while the trump card sits under the stock
	TrumpReserved bool `json:"trumpReserved"`
	// Stock is drawn from its end
	Stock  []Card        `json:"stock"`
	Scores [2]int        `json:"scores"`
	Leader Seat          `json:"leader"`
	Tricks []TrickRecord `json:"tricks"`
}

// NewGame shuffles a fresh deck with rng and deals a game.
func NewGame(rng *rand.Rand) GameState {
	deck := NewDeck()
	deck.Shuffle(rng)
	return NewGameFromDeck(deck)
}

// NewGameFromDeck deals 3 cards to A, 3 to B, then turns the next card as
// trump and keeps the rest as stock. Seat A leads the first trick.
func NewGameFromDeck(deck *Deck) GameState {
	handA := deck.Deal(HandSize)
	handB := deck.Deal(HandSize)
	trump := deck.Deal(1)
	stock := deck.Deal(deck.Remaining())

	s := GameState{
		ToMove: SeatA,
		Hands:  [2][]Card{handA, handB},
		Stock:  stock,
		Leader: NoSeat,
	}
	if len(trump) == 1 {
		s.Trump = trump[0]
		s.TrumpReserved = true
	}
	return s
}

// TrumpSuit returns the trump suit
func (s GameState) TrumpSuit() Suit {
	return s.Trump.Suit
}

// Hand returns a copy of the seat's hand
func (s GameState) Hand(seat Seat) []Card {
	out := make([]Card, len(s.Hands[seat]))
	copy(out, s.Hands[seat])
	return out
}

// PlayedCard returns the card the seat has committed this trick, if any
func (s GameState) PlayedCard(seat Seat) (Card, bool) {
	if p := s.Played[seat]; p != nil {
		return *p, true
	}
	return Card{}, false
}

// MidTrick reports whether exactly one card of the current trick is on the table.
func (s GameState) MidTrick() bool {
	return (s.Played[SeatA] == nil) != (s.Played[SeatB] == nil)
}

// CardsInPlay counts cards still held or undealt (hands, stock, reserved trump).
func (s GameState) CardsInPlay() int {
	n := len(s.Hands[SeatA]) + len(s.Hands[SeatB]) + len(s.Stock)
	if s.TrumpReserved {
		n++
	}
	return n
}

// Clone returns a deep copy of the state
func (s GameState) Clone() GameState {
	out := s
	for _, seat := range Seats() {
		out.Hands[seat] = slices.Clone(s.Hands[seat])
		if p := s.Played[seat]; p != nil {
			c := *p
			out.Played[seat] = &c
		}
	}
	out.Stock = slices.Clone(s.Stock)
	out.Tricks = slices.Clone(s.Tricks)
	return out
}

// ErrInvariant is wrapped by every Validate failure
var ErrInvariant = errors.New("state invariant violated")

// Validate checks card conservation, uniqueness and score bookkeeping.
func (s GameState) Validate() error {
	if !s.ToMove.Valid() {
		return fmt.Errorf("%w: invalid seat to move %d", ErrInvariant, s.ToMove)
	}

	played := 0
	for _, seat := range Seats() {
		if s.Played[seat] != nil {
			played++
		}
	}
	if played > 1 {
		return fmt.Errorf("%w: both seats have a pending played card", ErrInvariant)
	}
	if played == 1 {
		if !s.Leader.Valid() || s.Played[s.Leader] == nil {
			return fmt.Errorf("%w: pending card does not belong to leader %s", ErrInvariant, s.Leader)
		}
		if s.ToMove != s.Leader.Other() {
			return fmt.Errorf("%w: seat %s to move mid-trick led by %s", ErrInvariant, s.ToMove, s.Leader)
		}
	} else if s.Leader != NoSeat {
		return fmt.Errorf("%w: leader %s set between tricks", ErrInvariant, s.Leader)
	}

	total := s.CardsInPlay() + 2*len(s.Tricks) + played
	if total != DeckSize {
		return fmt.Errorf("%w: card count %d, want %d", ErrInvariant, total, DeckSize)
	}

	seen := make(map[Card]string, DeckSize)
	mark := func(c Card, where string) error {
		if !c.Rank.Valid() || c.Suit < Swords || c.Suit > Clubs {
			return fmt.Errorf("%w: invalid card %v in %s", ErrInvariant, c, where)
		}
		if prev, ok := seen[c]; ok {
			return fmt.Errorf("%w: %s in both %s and %s", ErrInvariant, c, prev, where)
		}
		seen[c] = where
		return nil
	}
	for _, seat := range Seats() {
		for _, c := range s.Hands[seat] {
			if err := mark(c, "hand "+seat.String()); err != nil {
				return err
			}
		}
		if p := s.Played[seat]; p != nil {
			if err := mark(*p, "played "+seat.String()); err != nil {
				return err
			}
		}
	}
	for _, c := range s.Stock {
		if err := mark(c, "stock"); err != nil {
			return err
		}
	}
	if s.TrumpReserved {
		if err := mark(s.Trump, "reserved trump"); err != nil {
			return err
		}
	}
	captured := 0
	for i, t := range s.Tricks {
		where := fmt.Sprintf("trick %d", i)
		if err := mark(t.A, where); err != nil {
			return err
		}
		if err := mark(t.B, where); err != nil {
			return err
		}
		captured += t.Points()
	}

	if s.Scores[SeatA]+s.Scores[SeatB] != captured {
		return fmt.Errorf("%w: scores %d+%d do not match captured points %d",
			ErrInvariant, s.Scores[SeatA], s.Scores[SeatB], captured)
	}
	return nil
}
