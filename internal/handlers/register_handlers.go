package handlers

import (
	"github.com/gin-gonic/gin"
	portssvc "github.com/splitsum/splitsum_app/internal/core/ports/services"
	"github.com/splitsum/splitsum_app/internal/middleware"
	"github.com/splitsum/splitsum_app/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using
// interfaces.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceProvider) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Public authentication routes
	registerAuthRoutes(r, cfg, services.User)

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the entity
// route registrations.
func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceProvider) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerListRoutes(v1, services.List)
	registerExpenseRoutes(v1, services.Expense)
	registerBalanceRoutes(v1, services.Balance)
	registerDeletionRoutes(v1, services.Delete)
	registerAuditRoutes(v1, services.Audit)
	registerCatalogRoutes(v1, services.Catalog)
}
