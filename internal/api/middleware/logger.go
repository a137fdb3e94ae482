package middleware

import (
	"log"
	"net/http"
	"time"

	"vagas-rmc/internal/transport/dto"

	"github.com/gin-gonic/gin"
)

// Logger logs method, path, client IP, status, latency and the session user.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		user := "-"
		if principal, ok := GetPrincipal(c); ok {
			user = principal.UserID.String()
		}
		log.Printf(
			"[%s] %s %s %d %s user=%s",
			c.Request.Method,
			c.Request.URL.Path,
			c.ClientIP(),
			c.Writer.Status(),
			time.Since(start),
			user,
		)
	}
}

// Recovery turns a panic into the 500 envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Printf("Recovered from panic on %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.Response{
			Error: "Internal server error",
			Code:  "INTERNAL_ERROR",
		})
	})
}
