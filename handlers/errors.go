package handlers

import (
	"errors"
	"net/http"

	"jukebox/services"
	"jukebox/types"

	"github.com/gin-gonic/gin"
)

// errorMapping ties a service error kind to the response the client sees
type errorMapping struct {
	kind    error
	status  int
	message string
}

// errorTable is the single place service errors become HTTP responses.
// A traversal attempt is reported the same as a missing file.
var errorTable = []errorMapping{
	{services.ErrScanFailure, http.StatusInternalServerError, "Failed to retrieve audio files"},
	{services.ErrNotFound, http.StatusNotFound, "Not Found"},
	{services.ErrInvalidPath, http.StatusNotFound, "Not Found"},
}

// ErrorStatus returns the status code and client-facing message for err
func ErrorStatus(err error) (int, string) {
	for _, m := range errorTable {
		if errors.Is(err, m.kind) {
			return m.status, m.message
		}
	}
	return http.StatusInternalServerError, "Internal Server Error"
}

// respondError aborts the request with the JSON error mapped from err
func respondError(c *gin.Context, err error) {
	status, message := ErrorStatus(err)
	c.AbortWithStatusJSON(status, types.ErrorResponse{Error: message})
}
