package api

import (
	"net/http"

	"bravoo/internal/middleware"
	"bravoo/internal/service"
	"bravoo/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type maintenanceRoutes struct {
	ms service.MaintenanceServiceI
}

func NewMaintenanceRoutes(handler *gin.RouterGroup, ms service.MaintenanceServiceI, guard *middleware.MaintenanceGuard) {
	r := &maintenanceRoutes{ms: ms}
	h := handler.Group("/maintenance")
	h.Use(guard.Require())
	{
		h.POST("/daily-check", r.RunDailyCheck)
	}
}

// RunDailyCheck is invoked by the external scheduler once per day; it
// runs the monthly reset gate and the inactivity decay.
func (r *maintenanceRoutes) RunDailyCheck(c *gin.Context) {
	log := logger.Logger()

	report, err := r.ms.RunDailyCheck(c.Request.Context())
	if err != nil {
		log.Error("daily check failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "daily check failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"monthly_resets":  report.MonthlyResets,
		"star_deductions": report.StarDeductions,
	})
}
