// Package match drives games between two players, feeding every position
// to renderers and the final score to reporters.
package match

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"briscola/game"
	"briscola/player"
)

// Renderer is shown the state before every move and once at the end.
type Renderer interface {
	Render(state game.GameState)
}

// Reporter is told the final score of each game.
type Reporter interface {
	Report(scoreA, scoreB int)
}

// Starter is implemented by renderers that want to know which game begins.
type Starter interface {
	Start(id uuid.UUID, names [2]string)
}

// Renderers fans a state out to several renderers
type Renderers []Renderer

func (rs Renderers) Render(state game.GameState) {
	for _, r := range rs {
		r.Render(state)
	}
}

func (rs Renderers) Start(id uuid.UUID, names [2]string) {
	for _, r := range rs {
		if s, ok := r.(Starter); ok {
			s.Start(id, names)
		}
	}
}

// Reporters fans a final score out to several reporters
type Reporters []Reporter

func (rs Reporters) Report(scoreA, scoreB int) {
	for _, r := range rs {
		r.Report(scoreA, scoreB)
	}
}

// Match is one game between two players. Players[0] sits at seat A.
type Match struct {
	ID       uuid.UUID
	Players  [2]player.Player
	Renderer Renderer
	Reporter Reporter
	// Log receives one line per trick when set
	Log *log.Logger
}

// New creates a match with a fresh ID
func New(a, b player.Player) *Match {
	return &Match{
		ID:      uuid.New(),
		Players: [2]player.Player{a, b},
	}
}

// Names returns the player names by seat
func (m *Match) Names() [2]string {
	return [2]string{m.Players[game.SeatA].Name(), m.Players[game.SeatB].Name()}
}

// Run plays state to the end. A player error or an illegal card stops the
// game and is returned; the reporter is only called for finished games.
func (m *Match) Run(ctx context.Context, state game.GameState) (game.Result, error) {
	if err := state.Validate(); err != nil {
		return game.Result{}, fmt.Errorf("match %s: %w", m.ID, err)
	}
	if s, ok := m.Renderer.(Starter); ok {
		s.Start(m.ID, m.Names())
	}

	for !game.IsTerminal(state) {
		if err := ctx.Err(); err != nil {
			return game.CalculateResult(state), err
		}
		m.render(state)

		p := m.Players[state.ToMove]
		card, err := p.ChooseMove(ctx, state)
		if err != nil {
			return game.CalculateResult(state), fmt.Errorf("match %s: %s (%s): %w", m.ID, p.Name(), state.ToMove, err)
		}
		if !game.IsLegal(state, card) {
			return game.CalculateResult(state), fmt.Errorf("match %s: %s (%s) played %s: %w",
				m.ID, p.Name(), state.ToMove, card, game.ErrIllegalMove)
		}

		next, err := game.ApplyMove(state, card)
		if err != nil {
			return game.CalculateResult(state), fmt.Errorf("match %s: %w", m.ID, err)
		}
		if len(next.Tricks) > len(state.Tricks) {
			m.logTrick(next)
		}
		state = next
	}

	m.render(state)
	result := game.CalculateResult(state)
	if m.Reporter != nil {
		m.Reporter.Report(result.Scores[game.SeatA], result.Scores[game.SeatB])
	}
	if m.Log != nil {
		m.Log.Printf("Game %s over. %s %d - %s %d", m.ID,
			m.Players[game.SeatA].Name(), result.Scores[game.SeatA],
			m.Players[game.SeatB].Name(), result.Scores[game.SeatB])
	}
	return result, nil
}

func (m *Match) render(state game.GameState) {
	if m.Renderer != nil {
		m.Renderer.Render(state)
	}
}

func (m *Match) logTrick(state game.GameState) {
	if m.Log == nil {
		return
	}
	t := state.Tricks[len(state.Tricks)-1]
	m.Log.Printf("Trick %d: %s vs %s, %s wins %d (%s). Score %d-%d, stock %d",
		len(state.Tricks), t.A, t.B, m.Players[t.Winner].Name(), t.Points(), t.Outcome,
		state.Scores[game.SeatA], state.Scores[game.SeatB], len(state.Stock))
}
