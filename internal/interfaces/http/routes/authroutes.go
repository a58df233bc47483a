package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/boostline-inc/boostline/internal/interfaces/http/handlers"
)

func RegisterAuthRoutes(api *gin.RouterGroup, h *handlers.AuthHandler) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.GET("/verify-email", h.VerifyEmail)
	}
}
