package server

import (
	"log"
	"sync"

	"github.com/google/uuid"

	"briscola/game"
)

// Spectator publishes a running match to the hub. It is a match renderer
// and reporter, and keeps the latest message for late joiners.
type Spectator struct {
	Hub    *Hub
	Reveal bool

	mu      sync.Mutex
	gameID  string
	players [2]string
	last    *ServerMessage
}

// NewSpectator creates a spectator feed on hub
func NewSpectator(hub *Hub, reveal bool) *Spectator {
	return &Spectator{Hub: hub, Reveal: reveal}
}

// Start announces a new game
func (s *Spectator) Start(id uuid.UUID, names [2]string) {
	s.mu.Lock()
	s.gameID = id.String()
	s.players = names
	msg := ServerMessage{Type: MsgGameStart, GameID: s.gameID, Players: names}
	s.last = &msg
	s.mu.Unlock()

	log.Printf("Spectating game %s: %s vs %s", id, names[0], names[1])
	s.Hub.BroadcastMessage(msg)
}

// Render broadcasts the current position
func (s *Spectator) Render(state game.GameState) {
	s.mu.Lock()
	msg := NewStateUpdateMessage(s.gameID, s.players, state, s.Reveal)
	s.last = &msg
	s.mu.Unlock()

	s.Hub.BroadcastMessage(msg)
}

// Report broadcasts the final score
func (s *Spectator) Report(scoreA, scoreB int) {
	s.mu.Lock()
	msg := NewGameOverMessage(s.gameID, s.players, scoreA, scoreB)
	s.last = &msg
	s.mu.Unlock()

	log.Printf("Game %s over: %d-%d", msg.GameID, scoreA, scoreB)
	s.Hub.BroadcastMessage(msg)
}

// Snapshot returns the most recent message, if any game has started
func (s *Spectator) Snapshot() (ServerMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return ServerMessage{}, false
	}
	return *s.last, true
}
