package player

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"briscola/game"
)

// ErrInvalidInput is a line that does not name one of the offered cards.
// Human handles it by asking again.
var ErrInvalidInput = errors.New("invalid input")

// Human asks a person at the console for each move. Cards are offered by
// zero-based position in the hand.
type Human struct {
	Label string
	in    *bufio.Scanner
	out   io.Writer

	once  sync.Once
	lines chan inputLine
}

type inputLine struct {
	text string
	err  error
}

// NewHuman creates a console player reading choices from in and writing
// prompts to out.
func NewHuman(label string, in io.Reader, out io.Writer) *Human {
	return &Human{Label: label, in: bufio.NewScanner(in), out: out, lines: make(chan inputLine)}
}

// readLines feeds input lines to ChooseMove so a blocked read never holds up
// cancellation. It ends with the read error, io.ErrUnexpectedEOF at the end
// of input.
func (h *Human) readLines() {
	defer close(h.lines)
	for h.in.Scan() {
		h.lines <- inputLine{text: h.in.Text()}
	}
	err := h.in.Err()
	if err == nil {
		err = io.ErrUnexpectedEOF
	}
	h.lines <- inputLine{err: err}
}

func (h *Human) Name() string {
	if h.Label != "" {
		return h.Label
	}
	return "human"
}

// ChooseMove prompts until a valid position is entered. It fails only when
// the input ends or cannot be read, or ctx is done while waiting.
func (h *Human) ChooseMove(ctx context.Context, state game.GameState) (game.Card, error) {
	moves, err := ensureMoves(state)
	if err != nil {
		return game.Card{}, err
	}

	h.printOptions(moves)
	h.once.Do(func() { go h.readLines() })
	for {
		fmt.Fprintf(h.out, "Your move? [0-%d]: ", len(moves)-1)

		var line inputLine
		select {
		case <-ctx.Done():
			fmt.Fprintln(h.out)
			return game.Card{}, ctx.Err()
		case l, ok := <-h.lines:
			if !ok {
				l.err = io.ErrUnexpectedEOF
			}
			line = l
		}
		if line.err != nil {
			return game.Card{}, fmt.Errorf("reading move: %w", line.err)
		}

		idx, err := parseChoice(line.text, len(moves))
		if err != nil {
			fmt.Fprintln(h.out, "Please choose between the possible moves!")
			continue
		}
		return moves[idx], nil
	}
}

func (h *Human) printOptions(moves []game.Card) {
	names := make([]string, len(moves))
	for i, c := range moves {
		names[i] = fmt.Sprintf("(%d) %s", i, c)
	}
	fmt.Fprintf(h.out, "Available moves: %s\n", strings.Join(names, "  "))
}

func parseChoice(line string, n int) (int, error) {
	idx, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidInput, line)
	}
	if idx < 0 || idx >= n {
		return 0, fmt.Errorf("%w: %d is not between 0 and %d", ErrInvalidInput, idx, n-1)
	}
	return idx, nil
}
