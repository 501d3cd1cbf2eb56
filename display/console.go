// Package display prints games to a terminal.
package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"briscola/game"
)

const (
	colReset  = "\033[0m"
	colBold   = "\033[1m"
	colDim    = "\033[2m"
	colGreen  = "\033[32m"
	colRed    = "\033[31m"
	colYellow = "\033[33m"
	colCyan   = "\033[36m"
)

// ColorFromEnv reports whether ANSI colors should be used: on unless
// NO_COLOR is set or USE_COLOR is 0.
func ColorFromEnv() bool {
	return os.Getenv("NO_COLOR") == "" && strings.TrimSpace(os.Getenv("USE_COLOR")) != "0"
}

// Console renders positions and final scores as text. Only the Viewer's hand
// is printed unless Reveal is set.
type Console struct {
	Out    io.Writer
	Color  bool
	Viewer game.Seat
	Reveal bool
	Names  [2]string
}

// NewConsole creates a console for viewer writing to out
func NewConsole(out io.Writer, viewer game.Seat) *Console {
	return &Console{
		Out:    out,
		Color:  ColorFromEnv(),
		Viewer: viewer,
		Names:  [2]string{"Player A", "Player B"},
	}
}

func (c *Console) paint(code, s string) string {
	if !c.Color {
		return s
	}
	return code + s + colReset
}

func (c *Console) bold(s string) string { return c.paint(colBold, s) }
func (c *Console) dim(s string) string  { return c.paint(colDim, s) }

func (c *Console) seatTag(seat game.Seat) string {
	if seat == game.SeatA {
		return c.paint(colCyan, c.Names[seat])
	}
	return c.paint(colYellow, c.Names[seat])
}

func (c *Console) card(card game.Card, trump game.Suit) string {
	s := "[" + card.String() + "]"
	if card.Suit == trump {
		return c.paint(colBold, s)
	}
	return s
}

func (c *Console) cards(cards []game.Card, trump game.Suit) string {
	parts := make([]string, len(cards))
	for i, card := range cards {
		parts[i] = c.card(card, trump)
	}
	return strings.Join(parts, " ")
}

// Start records the player names for the game about to begin
func (c *Console) Start(id uuid.UUID, names [2]string) {
	c.Names = names
	fmt.Fprintf(c.Out, "\n%s %s %s\n", c.dim("──"), c.bold(fmt.Sprintf("%s vs %s", names[0], names[1])), c.dim("──"))
	fmt.Fprintln(c.Out, c.dim("game "+id.String()))
}

// Render prints the scores, the table and the visible hands
func (c *Console) Render(state game.GameState) {
	trump := state.TrumpSuit()
	w := c.Out

	fmt.Fprintf(w, "\n%s\n", c.dim(strings.Repeat("=", 60)))
	for _, seat := range game.Seats() {
		fmt.Fprintf(w, "%s's points: %d\n", c.seatTag(seat), state.Scores[seat])
	}
	trumpLine := c.card(state.Trump, trump)
	if state.TrumpReserved {
		trumpLine += c.dim(" (under the stock)")
	}
	fmt.Fprintf(w, "Trump card: %s\n", trumpLine)
	fmt.Fprintf(w, "Cards left in deck: %d\n", StockLeft(state))

	for _, seat := range game.Seats() {
		if seat == c.Viewer || c.Reveal {
			fmt.Fprintf(w, "%s hand: %s\n", c.seatTag(seat), c.cards(state.Hands[seat], trump))
		} else {
			fmt.Fprintf(w, "%s hand: %s\n", c.seatTag(seat), c.dim(fmt.Sprintf("%d cards", len(state.Hands[seat]))))
		}
	}

	for _, seat := range game.Seats() {
		if card, ok := state.PlayedCard(seat); ok {
			fmt.Fprintf(w, "\t%s played: %s\n", c.seatTag(seat), c.card(card, trump))
		}
	}
	if n := len(state.Tricks); n > 0 && !state.MidTrick() {
		t := state.Tricks[n-1]
		fmt.Fprintf(w, "%s %s vs %s, %s took %d\n", c.dim("last trick:"),
			c.card(t.A, trump), c.card(t.B, trump), c.seatTag(t.Winner), t.Points())
	}

	if !game.IsTerminal(state) {
		fmt.Fprintf(w, "Turn: %s\n", c.seatTag(state.ToMove))
	}
}

// Report prints the final score and the winner
func (c *Console) Report(scoreA, scoreB int) {
	fmt.Fprintf(c.Out, "\n%s %s %d - %d %s\n", c.bold("Final:"),
		c.seatTag(game.SeatA), scoreA, scoreB, c.seatTag(game.SeatB))
	switch {
	case scoreA > scoreB:
		fmt.Fprintln(c.Out, c.paint(colGreen, c.Names[game.SeatA]+" wins"))
	case scoreB > scoreA:
		fmt.Fprintln(c.Out, c.paint(colGreen, c.Names[game.SeatB]+" wins"))
	default:
		fmt.Fprintln(c.Out, c.paint(colRed, "Draw"))
	}
}

// StockLeft counts the cards still to be drawn, the reserved trump included
func StockLeft(state game.GameState) int {
	n := len(state.Stock)
	if state.TrumpReserved {
		n++
	}
	return n
}
