package system_healthcheck

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthcheckController struct {
	healthcheckService *HealthcheckService
}

func (c *HealthcheckController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/system/health", c.GetHealth)
}

// GetHealth
// @Summary Get service health
// @Description Database and cache status plus host memory and disk usage
// @Tags system
// @Produce json
// @Success 200 {object} HealthcheckResponseDTO
// @Failure 503 {object} HealthcheckResponseDTO
// @Router /system/health [get]
func (c *HealthcheckController) GetHealth(ctx *gin.Context) {
	response := c.healthcheckService.GetHealth(ctx.Request.Context())

	if response.Status == HealthStatusDown {
		ctx.JSON(http.StatusServiceUnavailable, response)
		return
	}

	ctx.JSON(http.StatusOK, response)
}
