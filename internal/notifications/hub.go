// Package notifications pushes trip change events to connected clients
// over websockets, fanned out across instances through Redis pub/sub.
package notifications

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"sync"

	"triphive/internal/observability"

	"github.com/gofiber/websocket/v2"
)

const (
	// Max connections per trip feed
	maxConnsPerTrip = 64
	// Max total connections
	maxTotalConns = 10000
)

// Hub maps tripID -> set of Clients watching that trip's feed.
type Hub struct {
	mu         sync.RWMutex
	conns      map[uint]map[*Client]struct{}
	totalConns int
	shutdown   chan struct{}
	done       chan struct{}
}

// NewHub creates a new Hub instance for trip feeds.
func NewHub() *Hub {
	return &Hub{
		conns:    make(map[uint]map[*Client]struct{}),
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Register adds a connection to a trip's feed. Returns the Client or an
// error if connection limits are exceeded.
func (h *Hub) Register(tripID, userID uint, conn *websocket.Conn) (*Client, error) {
	h.mu.Lock()

	if h.totalConns >= maxTotalConns {
		h.mu.Unlock()
		return nil, errors.New("server connection limit reached")
	}

	m, ok := h.conns[tripID]
	if !ok {
		m = make(map[*Client]struct{})
		h.conns[tripID] = m
	}

	if len(m) >= maxConnsPerTrip {
		h.mu.Unlock()
		return nil, errors.New("trip connection limit reached")
	}

	client := NewClient(h, conn, tripID, userID)
	m[client] = struct{}{}
	h.totalConns++
	h.mu.Unlock()

	observability.WebSocketTripConnections.WithLabelValues(tripLabel(tripID)).Inc()
	return client, nil
}

// UnregisterClient drops a client from its trip's feed.
func (h *Hub) UnregisterClient(client *Client) {
	h.mu.Lock()
	removed := false
	if m, ok := h.conns[client.TripID]; ok {
		if _, exists := m[client]; exists {
			delete(m, client)
			h.totalConns--
			removed = true
		}
		if len(m) == 0 {
			delete(h.conns, client.TripID)
		}
	}
	h.mu.Unlock()

	if removed {
		observability.WebSocketTripConnections.WithLabelValues(tripLabel(client.TripID)).Dec()
	}
}

// Broadcast sends message to every connection on a trip's feed.
func (h *Hub) Broadcast(tripID uint, message string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if clients, ok := h.conns[tripID]; ok {
		data := []byte(message)
		for c := range clients {
			c.TrySend(data)
		}
	}
}

// Watchers reports how many clients are on a trip's feed.
func (h *Hub) Watchers(tripID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[tripID])
}

// StartWiring connects the Notifier to this hub: it subscribes to the
// Redis trip pattern and forwards each message to the matching feed.
func (h *Hub) StartWiring(ctx context.Context, n *Notifier) error {
	return n.StartTripSubscriber(ctx, func(channel, payload string) {
		var tripID uint
		if _, err := fmt.Sscanf(channel, "trips:feed:%d", &tripID); err != nil {
			log.Printf("invalid trip feed channel: %s", channel)
			return
		}
		h.Broadcast(tripID, payload)
	})
}

// Shutdown gracefully closes all websocket connections
func (h *Hub) Shutdown(_ context.Context) error {
	close(h.shutdown)

	h.mu.Lock()
	for tripID, clients := range h.conns {
		for client := range clients {
			if client.Conn == nil {
				continue
			}
			if err := client.Conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "Server shutting down")); err != nil {
				log.Printf("failed to write close message for trip %d: %v", tripID, err)
			}
			if err := client.Conn.Close(); err != nil {
				log.Printf("failed to close websocket for trip %d: %v", tripID, err)
			}
		}
	}
	h.conns = make(map[uint]map[*Client]struct{})
	h.totalConns = 0
	h.mu.Unlock()

	close(h.done)
	return nil
}

func tripLabel(tripID uint) string {
	return strconv.FormatUint(uint64(tripID), 10)
}
