// Package http assembles the gin engine: middleware chain, route
// groups, handlers.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/boostline-inc/boostline/internal/interfaces/http/handlers"
	"github.com/boostline-inc/boostline/internal/interfaces/http/middleware"
	"github.com/boostline-inc/boostline/internal/interfaces/http/routes"
	"github.com/boostline-inc/boostline/internal/shared/logger"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth         *handlers.AuthHandler
	Plan         *handlers.PlanHandler
	Subscription *handlers.SubscriptionHandler
	Payment      *handlers.PaymentHandler
	Verification *handlers.VerificationHandler
	Admin        *handlers.AdminHandler
}

// Middlewares groups the stateful middleware the route groups share.
type Middlewares struct {
	Auth       *middleware.AuthMiddleware
	Permission *middleware.PermissionMiddleware
}

type Router struct {
	engine *gin.Engine
}

func NewRouter(h Handlers, mw Middlewares, log logger.Interface) *Router {
	engine := gin.New()
	engine.Use(
		middleware.Recovery(),
		middleware.Logger(log),
		middleware.CORS(),
	)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	routes.RegisterAuthRoutes(api, h.Auth)
	routes.RegisterPlanRoutes(api, h.Plan)
	routes.RegisterSubscriptionRoutes(api, h.Subscription, mw.Auth)
	routes.RegisterPaymentRoutes(api, h.Payment, mw.Auth, mw.Permission)
	routes.RegisterVerificationRoutes(api, h.Verification, mw.Auth)
	routes.RegisterAdminRoutes(api, h.Admin, h.Plan, mw.Auth, mw.Permission)

	return &Router{engine: engine}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
