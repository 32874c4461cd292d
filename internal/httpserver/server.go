package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/PratikDhanave/sponsorship-service/internal/auth"
	"github.com/PratikDhanave/sponsorship-service/internal/config"
	"github.com/PratikDhanave/sponsorship-service/internal/handlers"
	"github.com/PratikDhanave/sponsorship-service/internal/metrics"
	"github.com/PratikDhanave/sponsorship-service/internal/registration"
)

// Store is the persistence the router depends on.
type Store interface {
	handlers.IdentityStore
	Ping(ctx context.Context) error
}

// Deps bundles everything NewRouter wires together.
type Deps struct {
	Config  config.Config
	Store   Store
	Tokens  registration.TokenIssuer
	Scanner handlers.Scanner
	Metrics *metrics.Metrics
	Log     *zap.Logger
}

// NewRouter wires public endpoints and authenticated APIs.
// Public: /health, /ready, /metrics, /api/auth/local/register
// Authenticated: /admin/duplicates
func NewRouter(d Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	if d.Metrics == nil {
		d.Metrics = metrics.New()
	}
	if d.Log == nil {
		d.Log = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), AccessLog(d.Log))

	// Liveness: confirms the process is running.
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Readiness: confirms the DB dependency is reachable.
	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()

		if err := d.Store.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	handlers.RegisterMetricRoutes(r, d.Metrics)
	handlers.RegisterAuthRoutes(r, d.Store, d.Tokens, d.Metrics, d.Log)

	// Admin group requires an operator API key.
	adminGroup := r.Group("/")
	adminGroup.Use(auth.APIKeyMiddleware(d.Config.APIKeys))

	handlers.RegisterDuplicateRoutes(adminGroup, d.Scanner, d.Metrics, d.Log)

	return r
}
