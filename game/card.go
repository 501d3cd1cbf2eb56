package game

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// Suit represents a card suit of the Spanish deck
type Suit int

const (
	Swords Suit = iota
	Coins
	Cups
	Clubs
)

var suitNames = [...]string{"swords", "coins", "cups", "clubs"}

func (s Suit) String() string {
	if s < Swords || s > Clubs {
		return "?"
	}
	return suitNames[s]
}

// MarshalText renders the suit by name so JSON payloads stay readable.
func (s Suit) MarshalText() ([]byte, error) {
	if s < Swords || s > Clubs {
		return nil, fmt.Errorf("invalid suit %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText parses a suit name.
func (s *Suit) UnmarshalText(text []byte) error {
	parsed, err := ParseSuit(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSuit converts a suit name ("swords", "COINS") into a Suit.
func ParseSuit(name string) (Suit, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for i, n := range suitNames {
		if n == lower {
			return Suit(i), nil
		}
	}
	return 0, fmt.Errorf("unknown suit %q", name)
}

// AllSuits returns all suits in deck order
func AllSuits() []Suit {
	return []Suit{Swords, Coins, Cups, Clubs}
}

// Rank is the printed number of a card: 1-7, then 10 (jack), 11 (knight), 12 (king)
type Rank int

const (
	Ace    Rank = 1
	Two    Rank = 2
	Three  Rank = 3
	Four   Rank = 4
	Five   Rank = 5
	Six    Rank = 6
	Seven  Rank = 7
	Jack   Rank = 10
	Knight Rank = 11
	King   Rank = 12
)

func (r Rank) String() string {
	return strconv.Itoa(int(r))
}

// Valid reports whether r is one of the ten ranks of the 40-card deck.
func (r Rank) Valid() bool {
	return (r >= Ace && r <= Seven) || (r >= Jack && r <= King)
}

// AllRanks returns all ranks in ascending printed order
func AllRanks() []Rank {
	return []Rank{Ace, Two, Three, Four, Five, Six, Seven, Jack, Knight, King}
}

// Points returns the card point value of a rank.
// 1=11, 3=10, 12=4, 11=3, 10=2, all others=0
func (r Rank) Points() int {
	switch r {
	case Ace:
		return 11
	case Three:
		return 10
	case King:
		return 4
	case Knight:
		return 3
	case Jack:
		return 2
	default:
		return 0
	}
}

// Card represents a playing card. Cards are plain values and compare with ==.
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

// NewCard creates a card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Suit: suit, Rank: rank}
}

// Points returns the point value of the card
func (c Card) Points() int {
	return c.Rank.Points()
}

// ID returns a stable key such as "3_swords"
func (c Card) ID() string {
	return fmt.Sprintf("%d_%s", c.Rank, c.Suit)
}

// String returns a display label such as "3 of SWORDS"
func (c Card) String() string {
	return fmt.Sprintf("%d of %s", c.Rank, strings.ToUpper(c.Suit.String()))
}

// ParseCard is the inverse of ID.
func ParseCard(id string) (Card, error) {
	rankPart, suitPart, ok := strings.Cut(id, "_")
	if !ok {
		return Card{}, fmt.Errorf("malformed card id %q", id)
	}
	n, err := strconv.Atoi(rankPart)
	if err != nil || !Rank(n).Valid() {
		return Card{}, fmt.Errorf("malformed card rank in %q", id)
	}
	suit, err := ParseSuit(suitPart)
	if err != nil {
		return Card{}, err
	}
	return NewCard(Rank(n), suit), nil
}

// MustParseCard is ParseCard for literals; it panics on malformed input.
func MustParseCard(id string) Card {
	c, err := ParseCard(id)
	if err != nil {
		panic(err)
	}
	return c
}

// Deck represents a deck of cards
type Deck struct {
	Cards []Card
}

// NewDeck creates the ordered 40-card deck
func NewDeck() *Deck {
	d := &Deck{Cards: make([]Card, 0, DeckSize)}
	for _, suit := range AllSuits() {
		for _, rank := range AllRanks() {
			d.Cards = append(d.Cards, NewCard(rank, suit))
		}
	}
	return d
}

// Shuffle randomizes the deck order using the given source
func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.Cards), func(i, j int) {
		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	})
}

// Deal removes and returns n cards from the top of the deck
// Returns a copy of the cards to prevent slice aliasing issues
func (d *Deck) Deal(n int) []Card {
	if n > len(d.Cards) {
		n = len(d.Cards)
	}
	dealt := make([]Card, n)
	copy(dealt, d.Cards[:n])
	d.Cards = d.Cards[n:]
	return dealt
}

// Remaining returns how many cards are left
func (d *Deck) Remaining() int {
	return len(d.Cards)
}

// containsCard reports whether c is in cards.
func containsCard(cards []Card, c Card) bool {
	return indexOf(cards, c) >= 0
}

func indexOf(cards []Card, c Card) int {
	for i, x := range cards {
		if x == c {
			return i
		}
	}
	return -1
}

// SumPoints adds up the point values of cards.
func SumPoints(cards ...Card) int {
	total := 0
	for _, c := range cards {
		total += c.Points()
	}
	return total
}
