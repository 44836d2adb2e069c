package handlers

import (
	"context"
	"log"
	"net/http"
	"os"

	"jukebox/services"

	"github.com/gin-gonic/gin"
)

// FileHandler handles the audio listing and audio file endpoints
type FileHandler struct {
	index services.AudioIndex
}

// NewFileHandler creates a new file handler
func NewFileHandler(index services.AudioIndex) *FileHandler {
	return &FileHandler{
		index: index,
	}
}

// ListAudioFiles returns a descriptor for every playable file in the audio root.
// The scan runs to completion even if the client goes away.
func (h *FileHandler) ListAudioFiles(c *gin.Context) {
	files, err := h.index.Scan(context.WithoutCancel(c.Request.Context()))
	if err != nil {
		log.Printf("Error reading audio files: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, files)
}

// ServeAudio serves a file from the audio root with range request support
func (h *FileHandler) ServeAudio(c *gin.Context) {
	fullPath, info, err := h.index.Resolve(c.Param("filepath"))
	if err != nil {
		respondError(c, err)
		return
	}

	file, err := os.Open(fullPath)
	if err != nil {
		log.Printf("Error opening %s: %v", fullPath, err)
		respondError(c, err)
		return
	}
	defer file.Close()

	c.Header("Content-Type", h.index.ContentType(info.Name()))
	c.Header("Cache-Control", "public, max-age=3600")

	// ServeContent handles Range, If-Modified-Since and HEAD
	http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), file)
}
