package server

import "briscola/game"

// MessageType identifies the type of WebSocket message
type MessageType string

const (
	MsgGameStart   MessageType = "gameStart"
	MsgStateUpdate MessageType = "stateUpdate"
	MsgGameOver    MessageType = "gameOver"
)

// ServerMessage represents a message from server to spectators
type ServerMessage struct {
	Type    MessageType  `json:"type"`
	GameID  string       `json:"gameId,omitempty"`
	Players [2]string    `json:"players"`
	State   *PublicState `json:"state,omitempty"`
	Final   *FinalScore  `json:"final,omitempty"`
}

// FinalScore is the end-of-game report
type FinalScore struct {
	Scores [2]int    `json:"scores"`
	Winner game.Seat `json:"winner"`
	Draw   bool      `json:"draw"`
}

// PublicState is the game as a spectator sees it. Hands are reduced to card
// counts unless the feed reveals them.
type PublicState struct {
	ToMove        game.Seat         `json:"toMove"`
	Scores        [2]int            `json:"scores"`
	Trump         game.Card         `json:"trump"`
	TrumpReserved bool              `json:"trumpReserved"`
	StockLeft     int               `json:"stockLeft"`
	HandCounts    [2]int            `json:"handCounts"`
	Hands         *[2][]game.Card   `json:"hands,omitempty"`
	Played        [2]*game.Card     `json:"played"`
	LastTrick     *game.TrickRecord `json:"lastTrick"`
	TricksPlayed  int               `json:"tricksPlayed"`
	Finished      bool              `json:"finished"`
}

// BuildPublicState creates the spectator view of a game state
func BuildPublicState(gs game.GameState, reveal bool) *PublicState {
	ps := &PublicState{
		ToMove:        gs.ToMove,
		Scores:        gs.Scores,
		Trump:         gs.Trump,
		TrumpReserved: gs.TrumpReserved,
		StockLeft:     len(gs.Stock),
		TricksPlayed:  len(gs.Tricks),
		Finished:      game.IsTerminal(gs),
	}
	if gs.TrumpReserved {
		ps.StockLeft++
	}

	for _, seat := range game.Seats() {
		ps.HandCounts[seat] = len(gs.Hands[seat])
		if c, ok := gs.PlayedCard(seat); ok {
			ps.Played[seat] = &c
		}
	}
	if reveal {
		hands := [2][]game.Card{gs.Hand(game.SeatA), gs.Hand(game.SeatB)}
		ps.Hands = &hands
	}

	// Last trick (for showing who won)
	if n := len(gs.Tricks); n > 0 {
		last := gs.Tricks[n-1]
		ps.LastTrick = &last
	}

	return ps
}

// NewStateUpdateMessage creates a state update message for a game
func NewStateUpdateMessage(gameID string, players [2]string, gs game.GameState, reveal bool) ServerMessage {
	return ServerMessage{
		Type:    MsgStateUpdate,
		GameID:  gameID,
		Players: players,
		State:   BuildPublicState(gs, reveal),
	}
}

// NewGameOverMessage creates the final score message for a game
func NewGameOverMessage(gameID string, players [2]string, scoreA, scoreB int) ServerMessage {
	final := &FinalScore{Scores: [2]int{scoreA, scoreB}, Winner: game.NoSeat}
	switch {
	case scoreA > scoreB:
		final.Winner = game.SeatA
	case scoreB > scoreA:
		final.Winner = game.SeatB
	default:
		final.Draw = true
	}
	return ServerMessage{
		Type:    MsgGameOver,
		GameID:  gameID,
		Players: players,
		Final:   final,
	}
}
