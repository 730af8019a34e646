// Package network exposes the simulation over WebSocket and plain HTTP.
// It is a thin collaborator: every read goes through a state snapshot and
// every mutation is funneled through the Runner's mutex, so the simulation
// core stays single-threaded.
package network

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pixelsoft/tycoon-server/internal/engine"
	"github.com/pixelsoft/tycoon-server/internal/events"
	"github.com/pixelsoft/tycoon-server/internal/platform/logger"
	"github.com/pixelsoft/tycoon-server/internal/platform/metrics"
)

// Hub maintains the set of active clients and broadcasts messages to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.Mutex

	runner  *engine.Runner
	logger  *logger.Logger
	metrics *metrics.Collector
}

// NewHub initializes a new WebSocket Hub.
func NewHub(runner *engine.Runner, log *logger.Logger, m *metrics.Collector) *Hub {
	return &Hub{
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		runner:     runner,
		logger:     log,
		metrics:    m,
	}
}

// Run starts the Hub's main loop to handle client connections and broadcasts.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.logger.Info("WebSocket Hub shutting down.")
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.metrics.RecordWSConnection(1)
			h.logger.Info("New WebSocket client connected")
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.metrics.RecordWSConnection(-1)
				h.logger.Info("WebSocket client disconnected")
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
					h.metrics.RecordWSMessage(false)
				default:
					close(client.send)
					delete(h.clients, client)
					h.metrics.RecordWSError()
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast serializes an envelope and queues it to all connected clients.
func (h *Hub) Broadcast(envelope interface{}) {
	payload, err := json.Marshal(envelope)
	if err != nil {
		h.logger.Error("Failed to serialize broadcast envelope: %v", err)
		return
	}
	h.broadcast <- payload
}

// StartSnapshotPusher periodically publishes a state snapshot plus any new
// audit-log entries to all connected clients.
func (h *Hub) StartSnapshotPusher(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		lastID := ""
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				h.mu.Lock()
				empty := len(h.clients) == 0
				h.mu.Unlock()
				if empty {
					continue
				}

				var snapshot interface{}
				var fresh []events.Entry
				err := h.runner.Do(func(e *engine.Engine) error {
					s, err := e.Snapshot()
					if err != nil {
						return err
					}
					snapshot = s
					fresh = entriesSince(s.EventLog, lastID)
					if len(s.EventLog) > 0 {
						lastID = s.EventLog[len(s.EventLog)-1].ID
					}
					return nil
				})
				if err != nil {
					h.logger.Error("Failed to snapshot state for broadcast: %v", err)
					continue
				}

				h.Broadcast(map[string]interface{}{"type": "state", "state": snapshot})
				if len(fresh) > 0 {
					h.Broadcast(map[string]interface{}{"type": "log", "entries": fresh})
				}
			}
		}
	}()
}

// entriesSince returns the log entries after the one with the given id.
// An unknown or empty id yields the whole log; the audit log is bounded, so
// a cursor that fell off the window simply resyncs from what remains.
func entriesSince(log []events.Entry, lastID string) []events.Entry {
	if lastID == "" {
		return log
	}
	for i := len(log) - 1; i >= 0; i-- {
		if log[i].ID == lastID {
			return log[i+1:]
		}
	}
	return log
}

// upgrader allows any origin: the browser client is served from a separate
// dev origin during development.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}
