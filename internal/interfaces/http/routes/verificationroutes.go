package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/boostline-inc/boostline/internal/interfaces/http/handlers"
	"github.com/boostline-inc/boostline/internal/interfaces/http/middleware"
)

func RegisterVerificationRoutes(api *gin.RouterGroup, h *handlers.VerificationHandler, authMW *middleware.AuthMiddleware) {
	verification := api.Group("/verification")
	verification.Use(authMW.RequireAuth())
	{
		verification.POST("/resend", h.Resend)
	}
}
