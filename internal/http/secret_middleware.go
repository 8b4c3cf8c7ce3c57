package http

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SharedSecretMiddleware exige el header de servicio con el valor acordado
// fuera de banda. Sin coincidencia exacta la llamada nunca se despacha.
func SharedSecretMiddleware(key, value string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if value == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "service auth not configured"})
			c.Abort()
			return
		}

		got := c.GetHeader(key)
		if subtle.ConstantTimeCompare([]byte(got), []byte(value)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid service credentials"})
			c.Abort()
			return
		}

		c.Next()
	}
}
