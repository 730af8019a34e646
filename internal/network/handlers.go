package network

import (
	"encoding/json"
	"net/http"

	"github.com/pixelsoft/tycoon-server/internal/engine"
	"github.com/pixelsoft/tycoon-server/internal/platform/metrics"
)

// Routes registers the HTTP surface on the given mux.
func (h *Hub) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/ws", h.ServeWS)
	mux.HandleFunc("/state", h.handleState)
	mux.HandleFunc("/healthz", h.handleHealth)
	mux.HandleFunc("/metrics", metrics.Handler())
}

// ServeWS upgrades an HTTP request to a WebSocket connection and registers
// the client with the hub.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("WebSocket upgrade failed: %v", err)
		return
	}
	client := &Client{hub: h, conn: conn, send: make(chan []byte, 256)}
	h.register <- client

	go client.WritePump()
	go client.ReadPump()
}

// handleState serves a JSON snapshot of the full game state.
func (h *Hub) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var snapshot interface{}
	err := h.runner.Do(func(e *engine.Engine) error {
		s, err := e.Snapshot()
		if err != nil {
			return err
		}
		snapshot = s
		return nil
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snapshot)
}

func (h *Hub) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
