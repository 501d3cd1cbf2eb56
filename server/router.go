package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// Router serves the spectator feed:
//
//	GET /ws      websocket stream of ServerMessage
//	GET /state   latest ServerMessage as JSON
//	GET /health  liveness
func Router(hub *Hub, spectator *Spectator) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "spectators": hub.ClientCount()})
	})

	r.Get("/state", func(w http.ResponseWriter, r *http.Request) {
		msg, ok := spectator.Snapshot()
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]any{"error": "no game yet"})
			return
		}
		writeJSON(w, http.StatusOK, msg)
	})

	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("WebSocket upgrade error: %v", err)
			return
		}

		client := NewClient(hub, conn)
		// Queue the current position before the hub can broadcast to it
		if msg, ok := spectator.Snapshot(); ok {
			hub.SendToClient(client, msg)
		}
		if !hub.Join(client) {
			conn.Close()
			return
		}

		go client.WritePump()
		go client.ReadPump()
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
