package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Recovery is the catch-all boundary: any panic is logged and answered with a
// bare 500 so no internal detail reaches the client.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, err any) {
		log.Printf("Unhandled failure on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.String(http.StatusInternalServerError, "Internal Server Error")
		c.Abort()
	})
}
