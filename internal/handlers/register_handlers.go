package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"

	portssvc "github.com/SscSPs/coa_ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/coa_ledger_engine/internal/middleware"
	"github.com/SscSPs/coa_ledger_engine/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// db is pinged by the health check when cfg.EnableDBCheck is set; it may be nil.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	rateLimiter *limiter.Limiter,
	db Pinger,
) {
	var healthDB Pinger
	if cfg.EnableDBCheck {
		healthDB = db
	}
	r.GET("/health", healthCheck(healthDB))

	setupAPIV1Routes(r, cfg, services, rateLimiter)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	rateLimiter *limiter.Limiter,
) {
	v1 := r.Group("/api/v1", middleware.RateLimit(rateLimiter), middleware.AuthMiddleware(cfg.JWTSecret))

	RegisterAccountingRoutes(v1, services.Mapping, services.Accounting)
	RegisterCashierRoutes(v1, services.Teller)
}
