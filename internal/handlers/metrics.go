package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/PratikDhanave/sponsorship-service/internal/metrics"
)

// RegisterMetricRoutes exposes Prometheus counters.
//
// GET /metrics
func RegisterMetricRoutes(r gin.IRoutes, m *metrics.Metrics) {
	r.GET("/metrics", gin.WrapH(m.Handler()))
}
