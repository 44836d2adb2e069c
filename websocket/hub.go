package websocket

import (
	"context"
	"log"
	"sync"

	"jukebox/types"
)

// Hub interface defines the methods for managing WebSocket connections
type Hub interface {
	Run(ctx context.Context)
	Broadcast(update types.LibraryUpdate)
	SendTo(client *Client, update types.LibraryUpdate)
	RegisterClient(client *Client)
	UnregisterClient(client *Client)
	ClientCount() int
}

// delivery is an update addressed to a single client
type delivery struct {
	client *Client
	update types.LibraryUpdate
}

// hub maintains the set of active clients and broadcasts library updates to them
type hub struct {
	// Registered clients
	clients map[*Client]bool

	// Broadcast channel for sending updates to every client
	broadcast chan types.LibraryUpdate

	// Updates for one client, such as the snapshot sent on connect
	direct chan delivery

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Closed once Run returns
	done chan struct{}

	mu sync.RWMutex
}

// NewHub creates a new WebSocket hub
func NewHub() Hub {
	return &hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan types.LibraryUpdate, 16),
		direct:     make(chan delivery),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's main event loop and blocks until ctx is cancelled
func (h *hub) Run(ctx context.Context) {
	defer func() {
		h.mu.Lock()
		for client := range h.clients {
			delete(h.clients, client)
			close(client.send)
		}
		h.mu.Unlock()
		close(h.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			log.Printf("WebSocket client %s connected", client.id)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			log.Printf("WebSocket client %s disconnected", client.id)

		case update := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				h.deliver(client, update)
			}
			h.mu.Unlock()

		case d := <-h.direct:
			h.mu.Lock()
			if h.clients[d.client] {
				h.deliver(d.client, d.update)
			}
			h.mu.Unlock()
		}
	}
}

// deliver hands an update to a client, dropping the client if its buffer is
// full. Callers hold h.mu.
func (h *hub) deliver(client *Client, update types.LibraryUpdate) {
	select {
	case client.send <- update:
	default:
		// Slow consumer; drop it rather than stall every other client
		close(client.send)
		delete(h.clients, client)
	}
}

// Broadcast queues an update for every connected client
func (h *hub) Broadcast(update types.LibraryUpdate) {
	select {
	case h.broadcast <- update:
	default:
		log.Printf("WebSocket broadcast channel full, dropping library update")
	}
}

// SendTo delivers an update to one registered client. Unknown or already
// dropped clients are ignored.
func (h *hub) SendTo(client *Client, update types.LibraryUpdate) {
	select {
	case h.direct <- delivery{client: client, update: update}:
	case <-h.done:
	}
}

// RegisterClient registers a new client with the hub
func (h *hub) RegisterClient(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

// UnregisterClient unregisters a client from the hub
func (h *hub) UnregisterClient(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// ClientCount returns the number of registered clients
func (h *hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
