package game

// WinningScore is the score that wins outright; 60-60 is a draw
const WinningScore = TotalPoints/2 + 1

// Result contains the scoring breakdown of a game
type Result struct {
	Scores    [2]int `json:"scores"`
	TricksWon [2]int `json:"tricksWon"`
	// Outcomes counts tricks decided per Outcome tier
	Outcomes [3]int `json:"outcomes"`
	// Winner is NoSeat on a draw or an unfinished game
	Winner   Seat `json:"winner"`
	Draw     bool `json:"draw"`
	Finished bool `json:"finished"`
}

// CalculateResult scores the game so far. Winner is only set once the game
// is terminal.
func CalculateResult(state GameState) Result {
	result := Result{
		Scores:   state.Scores,
		Winner:   NoSeat,
		Finished: IsTerminal(state),
	}

	for _, t := range state.Tricks {
		result.TricksWon[t.Winner]++
		result.Outcomes[t.Outcome]++
	}

	if !result.Finished {
		return result
	}

	switch {
	case result.Scores[SeatA] >= WinningScore:
		result.Winner = SeatA
	case result.Scores[SeatB] >= WinningScore:
		result.Winner = SeatB
	default:
		result.Draw = true
	}
	return result
}

// Margin returns the seat's score minus the opponent's
func (r Result) Margin(seat Seat) int {
	return r.Scores[seat] - r.Scores[seat.Other()]
}

// Winner reports the seat that won a finished game. ok is false while the
// game is still in progress; a 60-60 draw returns NoSeat with ok true.
func Winner(state GameState) (winner Seat, ok bool) {
	if !IsTerminal(state) {
		return NoSeat, false
	}
	return CalculateResult(state).Winner, true
}
