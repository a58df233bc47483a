package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/boostline-inc/boostline/internal/interfaces/http/handlers"
	"github.com/boostline-inc/boostline/internal/interfaces/http/middleware"
)

func RegisterSubscriptionRoutes(api *gin.RouterGroup, h *handlers.SubscriptionHandler, authMW *middleware.AuthMiddleware) {
	subscriptions := api.Group("/subscriptions")
	subscriptions.Use(authMW.RequireAuth())
	{
		subscriptions.POST("", h.Create)
		subscriptions.GET("", h.List)
		subscriptions.GET("/:id", h.Get)
		subscriptions.DELETE("/:id", h.Cancel)
	}
}
