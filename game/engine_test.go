package game

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
)

func cards(ids ...string) []Card {
	out := make([]Card, len(ids))
	for i, id := range ids {
		out[i] = MustParseCard(id)
	}
	return out
}

// dealt builds a valid opening position with the given hands and trump; every
// other card goes to the stock in deck order.
func dealt(t *testing.T, toMove Seat, handA, handB []Card, trump Card) GameState {
	t.Helper()
	used := map[Card]bool{trump: true}
	for _, c := range handA {
		used[c] = true
	}
	for _, c := range handB {
		used[c] = true
	}
	var stock []Card
	for _, c := range NewDeck().Cards {
		if !used[c] {
			stock = append(stock, c)
		}
	}
	s := GameState{
		ToMove:        toMove,
		Hands:         [2][]Card{handA, handB},
		Trump:         trump,
		TrumpReserved: true,
		Stock:         stock,
		Leader:        NoSeat,
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("invalid test position: %v", err)
	}
	return s
}

func playTrick(t *testing.T, s GameState, first, second Card) GameState {
	t.Helper()
	s, err := ApplyMove(s, first)
	if err != nil {
		t.Fatalf("first play %s: %v", first, err)
	}
	s, err = ApplyMove(s, second)
	if err != nil {
		t.Fatalf("second play %s: %v", second, err)
	}
	return s
}

func TestResolveTrick(t *testing.T) {
	tests := []struct {
		name        string
		a, b        string
		leader      Seat
		trump       Suit
		wantWinner  Seat
		wantOutcome Outcome
	}{
		{"same suit higher rank", "3_swords", "1_swords", SeatB, Cups, SeatA, OutcomeSameSuit},
		{"same suit compares rank not points", "12_cups", "1_cups", SeatB, Coins, SeatA, OutcomeSameSuit},
		{"same suit trumps both", "2_coins", "7_coins", SeatA, Coins, SeatB, OutcomeSameSuit},
		{"trump override A", "2_coins", "12_swords", SeatB, Coins, SeatA, OutcomeTrump},
		{"trump override B", "12_swords", "2_coins", SeatA, Coins, SeatB, OutcomeTrump},
		{"leader A by default", "7_swords", "6_coins", SeatA, Cups, SeatA, OutcomeLeaderDefault},
		{"leader B by default", "1_swords", "2_coins", SeatB, Cups, SeatB, OutcomeLeaderDefault},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			winner, outcome := ResolveTrick(MustParseCard(tt.a), MustParseCard(tt.b), tt.leader, tt.trump)
			if winner != tt.wantWinner {
				t.Errorf("Expected winner %s, got %s", tt.wantWinner, winner)
			}
			if outcome != tt.wantOutcome {
				t.Errorf("Expected outcome %s, got %s", tt.wantOutcome, outcome)
			}
		})
	}
}

func TestApplyMoveSameSuit(t *testing.T) {
	s := dealt(t, SeatA,
		cards("3_swords", "4_cups", "5_cups"),
		cards("1_swords", "6_cups", "7_cups"),
		MustParseCard("2_coins"))

	s = playTrick(t, s, MustParseCard("3_swords"), MustParseCard("1_swords"))

	if s.Scores[SeatA] != 21 || s.Scores[SeatB] != 0 {
		t.Errorf("Expected scores 21-0, got %d-%d", s.Scores[SeatA], s.Scores[SeatB])
	}
	if s.ToMove != SeatA {
		t.Errorf("Expected winner A to lead, got %s", s.ToMove)
	}
	if got := s.Tricks[0].Outcome; got != OutcomeSameSuit {
		t.Errorf("Expected sameSuit outcome, got %s", got)
	}
}

func TestApplyMoveTrumpOverride(t *testing.T) {
	s := dealt(t, SeatA,
		cards("12_swords", "4_cups", "5_cups"),
		cards("2_coins", "6_cups", "7_cups"),
		MustParseCard("5_coins"))

	s = playTrick(t, s, MustParseCard("12_swords"), MustParseCard("2_coins"))

	if s.Scores[SeatB] != 4 || s.Scores[SeatA] != 0 {
		t.Errorf("Expected scores 0-4, got %d-%d", s.Scores[SeatA], s.Scores[SeatB])
	}
	if s.ToMove != SeatB {
		t.Errorf("Expected B to lead next, got %s", s.ToMove)
	}
}

func TestApplyMoveLeaderDefault(t *testing.T) {
	s := dealt(t, SeatA,
		cards("7_swords", "4_cups", "5_cups"),
		cards("6_coins", "6_cups", "7_cups"),
		MustParseCard("1_cups"))

	s = playTrick(t, s, MustParseCard("7_swords"), MustParseCard("6_coins"))

	if s.Scores != [2]int{0, 0} {
		t.Errorf("Expected scores 0-0, got %v", s.Scores)
	}
	if s.Tricks[0].Winner != SeatA || s.Tricks[0].Outcome != OutcomeLeaderDefault {
		t.Errorf("Expected A to win by leader default, got %+v", s.Tricks[0])
	}

	// B leading: B wins the same pair of off suits
	s2 := dealt(t, SeatB,
		cards("7_swords", "4_cups", "5_cups"),
		cards("6_coins", "6_cups", "7_cups"),
		MustParseCard("1_cups"))
	s2 = playTrick(t, s2, MustParseCard("6_coins"), MustParseCard("7_swords"))
	if s2.Tricks[0].Winner != SeatB {
		t.Errorf("Expected leader B to win, got %s", s2.Tricks[0].Winner)
	}
}

func TestApplyMoveHalfTrick(t *testing.T) {
	s := dealt(t, SeatB,
		cards("7_swords", "4_cups", "5_cups"),
		cards("6_coins", "6_cups", "7_cups"),
		MustParseCard("1_cups"))

	next, err := ApplyMove(s, MustParseCard("6_cups"))
	if err != nil {
		t.Fatal(err)
	}
	if next.ToMove != SeatA {
		t.Errorf("Expected A to move, got %s", next.ToMove)
	}
	if next.Leader != SeatB {
		t.Errorf("Expected B to lead, got %s", next.Leader)
	}
	if c, ok := next.PlayedCard(SeatB); !ok || c != MustParseCard("6_cups") {
		t.Errorf("Expected B to have played 6 of CUPS, got %v %v", c, ok)
	}
	if _, ok := next.PlayedCard(SeatA); ok {
		t.Error("Expected A to have no played card")
	}
	if len(next.Hands[SeatB]) != 2 {
		t.Errorf("Expected B to hold 2 cards, got %d", len(next.Hands[SeatB]))
	}
	if !next.MidTrick() {
		t.Error("Expected state to be mid-trick")
	}
	if err := next.Validate(); err != nil {
		t.Errorf("Half-trick state invalid: %v", err)
	}
}

func TestReplenishWinnerDrawsFirst(t *testing.T) {
	s := dealt(t, SeatA,
		cards("7_swords", "4_cups", "5_cups"),
		cards("6_coins", "6_cups", "7_cups"),
		MustParseCard("1_cups"))
	top := s.Stock[len(s.Stock)-1]
	second := s.Stock[len(s.Stock)-2]

	// B wins with a higher cup
	s = playTrick(t, s, MustParseCard("4_cups"), MustParseCard("6_cups"))

	handB := s.Hands[SeatB]
	handA := s.Hands[SeatA]
	if handB[len(handB)-1] != top {
		t.Errorf("Expected winner B to draw %s, got %s", top, handB[len(handB)-1])
	}
	if handA[len(handA)-1] != second {
		t.Errorf("Expected loser A to draw %s, got %s", second, handA[len(handA)-1])
	}
	if len(s.Stock) != 31 {
		t.Errorf("Expected 31 cards in stock, got %d", len(s.Stock))
	}
	if s.Leader != NoSeat {
		t.Errorf("Expected no leader between tricks, got %s", s.Leader)
	}
}

func TestStockExhaustionTrumpSwap(t *testing.T) {
	s := NewGameFromDeck(NewDeck())
	for len(s.Stock) > 1 || s.MidTrick() {
		s = MustApply(s, LegalMoves(s)[0])
	}
	if !s.TrumpReserved {
		t.Fatal("Expected trump to still be reserved with one stock card left")
	}
	last := s.Stock[0]
	trump := s.Trump

	first := LegalMoves(s)[0]
	s = MustApply(s, first)
	s = MustApply(s, LegalMoves(s)[0])

	winner := s.Tricks[len(s.Tricks)-1].Winner
	loser := winner.Other()
	if len(s.Hands[SeatA]) != 3 || len(s.Hands[SeatB]) != 3 {
		t.Errorf("Expected both hands at 3 cards, got %d and %d", len(s.Hands[SeatA]), len(s.Hands[SeatB]))
	}
	if s.TrumpReserved {
		t.Error("Expected trump to no longer be reserved")
	}
	if len(s.Stock) != 0 {
		t.Errorf("Expected empty stock, got %d", len(s.Stock))
	}
	if !containsCard(s.Hands[winner], last) {
		t.Errorf("Expected winner %s to draw the last stock card %s", winner, last)
	}
	if !containsCard(s.Hands[loser], trump) {
		t.Errorf("Expected loser %s to receive the trump card %s", loser, trump)
	}
	if err := s.Validate(); err != nil {
		t.Error(err)
	}
}

func TestNoReplenishWhenStockEmpty(t *testing.T) {
	s := NewGameFromDeck(NewDeck())
	for len(s.Stock) > 0 || s.TrumpReserved || s.MidTrick() {
		s = MustApply(s, LegalMoves(s)[0])
	}
	s = MustApply(s, LegalMoves(s)[0])
	s = MustApply(s, LegalMoves(s)[0])
	if len(s.Hands[SeatA]) != 2 || len(s.Hands[SeatB]) != 2 {
		t.Errorf("Expected hands to shrink to 2, got %d and %d", len(s.Hands[SeatA]), len(s.Hands[SeatB]))
	}
}

func TestApplyMoveIllegal(t *testing.T) {
	s := dealt(t, SeatA,
		cards("7_swords", "4_cups", "5_cups"),
		cards("6_coins", "6_cups", "7_cups"),
		MustParseCard("1_cups"))

	_, err := ApplyMove(s, MustParseCard("6_coins"))
	if !errors.Is(err, ErrIllegalMove) {
		t.Errorf("Expected ErrIllegalMove for opponent's card, got %v", err)
	}
	_, err = ApplyMove(s, MustParseCard("1_clubs"))
	if !errors.Is(err, ErrIllegalMove) {
		t.Errorf("Expected ErrIllegalMove for stock card, got %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("Expected MustApply to panic on an illegal card")
		}
	}()
	MustApply(s, MustParseCard("6_coins"))
}

func TestApplyMoveOnTerminal(t *testing.T) {
	s := playOut(t, rand.New(rand.NewSource(3)))
	if _, err := ApplyMove(s, NewCard(Ace, Coins)); !errors.Is(err, ErrGameOver) {
		t.Errorf("Expected ErrGameOver, got %v", err)
	}
	if len(LegalMoves(s)) != 0 {
		t.Errorf("Expected no legal moves at terminal, got %v", LegalMoves(s))
	}
}

func TestApplyMoveIsPure(t *testing.T) {
	s := NewGame(rand.New(rand.NewSource(11)))
	for i := 0; i < 9; i++ {
		s = MustApply(s, LegalMoves(s)[0])
	}
	before := s.Clone()

	move := LegalMoves(s)[len(LegalMoves(s))-1]
	next1, err1 := ApplyMove(s, move)
	next2, err2 := ApplyMove(s, move)
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors %v %v", err1, err2)
	}
	if !reflect.DeepEqual(next1, next2) {
		t.Error("Expected identical successors for identical inputs")
	}
	if !reflect.DeepEqual(before, s) {
		t.Error("ApplyMove mutated its input state")
	}

	// Sibling successors must not share writes
	moves := LegalMoves(s)
	var siblings []GameState
	for _, m := range moves {
		siblings = append(siblings, MustApply(s, m))
	}
	for i, sib := range siblings {
		if err := sib.Validate(); err != nil {
			t.Errorf("sibling %d invalid: %v", i, err)
		}
	}
	if !reflect.DeepEqual(before, s) {
		t.Error("Expanding siblings mutated the parent state")
	}
}

// playOut plays a game of uniformly random moves, validating every state.
func playOut(t *testing.T, rng *rand.Rand) GameState {
	t.Helper()
	s := NewGame(rng)
	for steps := 0; !IsTerminal(s); steps++ {
		if steps > 2*DeckSize {
			t.Fatal("game did not terminate")
		}
		moves := LegalMoves(s)
		if len(moves) == 0 {
			t.Fatalf("no legal moves in non-terminal state %+v", s)
		}
		s = MustApply(s, moves[rng.Intn(len(moves))])
		if err := s.Validate(); err != nil {
			t.Fatalf("after step %d: %v", steps, err)
		}
	}
	return s
}

func TestSelfPlayManySeeds(t *testing.T) {
	for seed := int64(1); seed <= 200; seed++ {
		s := playOut(t, rand.New(rand.NewSource(seed)))
		if s.Scores[SeatA]+s.Scores[SeatB] != TotalPoints {
			t.Fatalf("seed %d: expected %d total points, got %v", seed, TotalPoints, s.Scores)
		}
		if len(s.Tricks) != DeckSize/2 {
			t.Fatalf("seed %d: expected %d tricks, got %d", seed, DeckSize/2, len(s.Tricks))
		}
		if s.TrumpReserved {
			t.Fatalf("seed %d: trump still reserved at the end", seed)
		}
	}
}

func FuzzSelfPlay(f *testing.F) {
	f.Add(int64(1))
	f.Add(int64(42))
	f.Fuzz(func(t *testing.T, seed int64) {
		s := playOut(t, rand.New(rand.NewSource(seed)))
		if got := Utility(s, SeatA) + Utility(s, SeatB); got != TotalPoints {
			t.Fatalf("expected %d total points, got %d", TotalPoints, got)
		}
	})
}
