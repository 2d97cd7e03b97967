package middleware

import (
	"crypto/subtle"
	"net/http"

	"bravoo/pkg/logger"

	"github.com/gin-gonic/gin"
)

const maintenanceKeyHeader = "X-Maintenance-Key"

// MaintenanceGuard gates the scheduler-only endpoints behind a shared
// key so the decay/reset jobs cannot be triggered by arbitrary
// clients.
type MaintenanceGuard struct {
	key string
}

func NewMaintenanceGuard(key string) *MaintenanceGuard {
	return &MaintenanceGuard{
		key: key,
	}
}

func (g *MaintenanceGuard) Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.Logger()

		provided := c.GetHeader(maintenanceKeyHeader)
		if provided == "" {
			log.Info("missing maintenance key header")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "maintenance key is required"})
			return
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(g.key)) != 1 {
			log.Info("rejected maintenance request with wrong key")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid maintenance key"})
			return
		}

		c.Next()
	}
}
