package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/boostline-inc/boostline/internal/interfaces/http/handlers"
)

func RegisterPlanRoutes(api *gin.RouterGroup, h *handlers.PlanHandler) {
	// Public catalog, no auth.
	api.GET("/plans", h.List)
}
