package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"jukebox/services"

	"github.com/gin-gonic/gin"
)

// AssetHandler serves the page, stylesheet and script from the public root
type AssetHandler struct {
	publicDir string
}

// NewAssetHandler creates an asset handler for publicDir
func NewAssetHandler(publicDir string) *AssetHandler {
	return &AssetHandler{
		publicDir: publicDir,
	}
}

// Index serves the main page
func (h *AssetHandler) Index(c *gin.Context) {
	h.serveFile(c, "index.html")
}

// Serve handles any path no route matched by looking it up in the public root.
// Only regular files are served; directories and dotfiles are reported as absent.
func (h *AssetHandler) Serve(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		respondError(c, fmt.Errorf("%w: %s %s", services.ErrNotFound, c.Request.Method, c.Request.URL.Path))
		return
	}

	// Cleaning against "/" drops any ".." that would climb out of the root
	name := path.Clean("/" + c.Request.URL.Path)[1:]
	if name == "" || services.IsHiddenPath(name) {
		respondError(c, fmt.Errorf("%w: %s", services.ErrNotFound, c.Request.URL.Path))
		return
	}

	h.serveFile(c, name)
}

// serveFile writes a regular file below the public root. ServeContent is used
// instead of http.ServeFile so /index.html is not redirected.
func (h *AssetHandler) serveFile(c *gin.Context, name string) {
	fullPath := filepath.Join(h.publicDir, filepath.FromSlash(name))

	info, err := os.Stat(fullPath)
	if err != nil || !info.Mode().IsRegular() {
		respondError(c, fmt.Errorf("%w: %s", services.ErrNotFound, name))
		return
	}

	file, err := os.Open(fullPath)
	if err != nil {
		respondError(c, fmt.Errorf("%w: %s", services.ErrNotFound, name))
		return
	}
	defer file.Close()

	http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), file)
}
