package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/boostline-inc/boostline/internal/interfaces/http/handlers"
	"github.com/boostline-inc/boostline/internal/interfaces/http/middleware"
)

// RegisterAdminRoutes mounts the administrative surface. Authorization
// is decided once, by the permission middleware on the group; no
// handler under it repeats a role check.
func RegisterAdminRoutes(
	api *gin.RouterGroup,
	adminHandler *handlers.AdminHandler,
	planHandler *handlers.PlanHandler,
	authMW *middleware.AuthMiddleware,
	permMW *middleware.PermissionMiddleware,
) {
	admin := api.Group("/admin")
	admin.Use(authMW.RequireAuth(), permMW.RequirePermission())
	{
		admin.GET("/plans", planHandler.AdminList)
		admin.POST("/plans", planHandler.Create)
		admin.PUT("/plans/:id", planHandler.Update)
		admin.DELETE("/plans/:id", planHandler.Delete)

		admin.DELETE("/users/:id", adminHandler.DeleteUser)
		admin.DELETE("/invoices/:id", adminHandler.DeleteInvoice)
	}
}
