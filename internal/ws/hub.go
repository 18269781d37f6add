package ws

import (
	"log/slog"
	"sync"

	"github.com/mcoot/wordduel-go/internal/model"
)

const hubBufferSize = 256

// Hub fans committed snapshots of one room out to the room's connected
// players, in commit order
type Hub struct {
	roomID  model.RoomID
	clients *Directory
	logger  *slog.Logger

	broadcast chan *model.Room
	done      chan struct{}
	stopped   chan struct{}
}

// NewHub creates a new Hub for a room
func NewHub(roomID model.RoomID, clients *Directory, logger *slog.Logger) *Hub {
	return &Hub{
		roomID:    roomID,
		clients:   clients,
		logger:    logger.With(slog.String("room_id", string(roomID))),
		broadcast: make(chan *model.Room, hubBufferSize),
		done:      make(chan struct{}),
		stopped:   make(chan struct{}),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	defer close(h.stopped)
	h.logger.Debug("ws hub started")
	for {
		select {
		case room := <-h.broadcast:
			h.deliver(room)

		case <-h.done:
			// Deliver what was already committed before stopping
			for {
				select {
				case room := <-h.broadcast:
					h.deliver(room)
				default:
					h.logger.Debug("ws hub stopped")
					return
				}
			}
		}
	}
}

// deliver sends each connected member their own view of room
func (h *Hub) deliver(room *model.Room) {
	sentCount := 0
	droppedCount := 0
	for _, p := range room.Players {
		client := h.clients.Get(p.ID)
		if client == nil {
			continue
		}
		if client.Send(roomUpdate(room, p.ID)) {
			sentCount++
		} else {
			droppedCount++
		}
	}
	if droppedCount > 0 {
		h.logger.Error("ws broadcast partial failure",
			slog.Int("sent", sentCount),
			slog.Int("dropped", droppedCount))
	}
}

// Broadcast queues a committed room for delivery. If the hub is too far
// behind, the room's connected members are closed rather than left on a
// stale snapshot.
func (h *Hub) Broadcast(room *model.Room) {
	select {
	case h.broadcast <- room:
	default:
		h.logger.Error("ws broadcast dropped - hub buffer full, closing room clients")
		for _, p := range room.Players {
			if client := h.clients.Get(p.ID); client != nil {
				client.Close()
			}
		}
	}
}

// Close shuts down the hub once queued rooms are delivered
func (h *Hub) Close() {
	close(h.done)
	<-h.stopped
}

// Directory tracks connected clients by player id
type Directory struct {
	mu      sync.RWMutex
	clients map[model.PlayerID]*Client
}

// NewDirectory creates an empty Directory
func NewDirectory() *Directory {
	return &Directory{clients: make(map[model.PlayerID]*Client)}
}

// Add registers a client
func (d *Directory) Add(c *Client) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clients[c.id] = c
}

// Remove unregisters a client if it is still the one registered under
// its id
func (d *Directory) Remove(c *Client) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.clients[c.id] == c {
		delete(d.clients, c.id)
	}
}

// Get returns the client for a player, or nil
func (d *Directory) Get(id model.PlayerID) *Client {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.clients[id]
}

// Count returns the number of connected clients
func (d *Directory) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.clients)
}

// HubManager manages hubs for all rooms
type HubManager struct {
	hubs    map[model.RoomID]*Hub
	clients *Directory
	mu      sync.RWMutex
	closed  bool
	logger  *slog.Logger
}

// NewHubManager creates a new HubManager
func NewHubManager(logger *slog.Logger) *HubManager {
	return &HubManager{
		hubs:    make(map[model.RoomID]*Hub),
		clients: NewDirectory(),
		logger:  logger.With(slog.String("component", "ws")),
	}
}

// Clients returns the connected client directory
func (m *HubManager) Clients() *Directory {
	return m.clients
}

// Publish queues a committed room for its members. Register it with the
// room registry's commit hook so snapshots go out in commit order.
func (m *HubManager) Publish(room *model.Room) {
	if hub := m.GetOrCreateHub(room.ID); hub != nil {
		hub.Broadcast(room)
	}
}

// GetOrCreateHub returns the hub for a room, creating one if it doesn't
// exist. It returns nil once the manager is closed.
func (m *HubManager) GetOrCreateHub(roomID model.RoomID) *Hub {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	if hub, ok := m.hubs[roomID]; ok {
		return hub
	}

	hub := NewHub(roomID, m.clients, m.logger)
	m.hubs[roomID] = hub
	go hub.Run()
	return hub
}

// Close stops every hub after it delivers what is queued
func (m *HubManager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	hubs := m.hubs
	m.hubs = make(map[model.RoomID]*Hub)
	m.mu.Unlock()

	for _, hub := range hubs {
		hub.Close()
	}
	m.logger.Info("ws hubs stopped", slog.Int("hubs", len(hubs)))
}
