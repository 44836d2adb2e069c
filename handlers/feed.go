package handlers

import (
	"context"
	"log"

	"jukebox/services"
	"jukebox/websocket"

	"github.com/gin-gonic/gin"
)

// FeedHandler streams library updates over WebSocket
type FeedHandler struct {
	index services.AudioIndex
	hub   websocket.Hub
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(index services.AudioIndex, hub websocket.Hub) *FeedHandler {
	return &FeedHandler{
		index: index,
		hub:   hub,
	}
}

// Subscribe upgrades the connection, registers the client for change
// notifications, then sends it the current listing. Registering first means a
// change that lands during the snapshot scan is still delivered.
func (h *FeedHandler) Subscribe(c *gin.Context) {
	conn, err := websocket.Upgrade(c.Writer, c.Request)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	client := websocket.NewClient(h.hub, conn)
	h.hub.RegisterClient(client)
	client.StartPumps()

	files, err := h.index.Scan(context.WithoutCancel(c.Request.Context()))
	if err != nil {
		log.Printf("Error reading audio files for feed: %v", err)
		h.hub.UnregisterClient(client)
		return
	}

	h.hub.SendTo(client, services.NewLibraryUpdate(files))
}
