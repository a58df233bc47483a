package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/boostline-inc/boostline/internal/interfaces/http/handlers"
	"github.com/boostline-inc/boostline/internal/interfaces/http/middleware"
)

func RegisterPaymentRoutes(
	api *gin.RouterGroup,
	h *handlers.PaymentHandler,
	authMW *middleware.AuthMiddleware,
	permMW *middleware.PermissionMiddleware,
) {
	payments := api.Group("/payments")
	payments.Use(authMW.RequireAuth())
	{
		payments.GET("", h.List)
		// Refunds go through the shared authorization policy.
		payments.POST("/:id/refund", permMW.RequirePermission(), h.Refund)
	}
}
