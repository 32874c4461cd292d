package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/PratikDhanave/sponsorship-service/internal/auth"
	"github.com/PratikDhanave/sponsorship-service/internal/content"
	"github.com/PratikDhanave/sponsorship-service/internal/dupscan"
	"github.com/PratikDhanave/sponsorship-service/internal/metrics"
)

// Scanner runs one duplicate scan.
type Scanner interface {
	Run(ctx context.Context) (dupscan.Report, error)
}

// RegisterDuplicateRoutes registers the admin duplicate report.
//
// GET /admin/duplicates
// - Requires X-API-Key (operator context)
// - Runs a fresh scan against the content API on every call
// - 502 when the content API cannot be read
func RegisterDuplicateRoutes(r gin.IRoutes, sc Scanner, m *metrics.Metrics, log *zap.Logger) {
	r.GET("/admin/duplicates", func(c *gin.Context) {
		operator := auth.Operator(c)
		if operator == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		report, err := sc.Run(c.Request.Context())
		if err != nil {
			m.DuplicateScan("failed")
			status := http.StatusInternalServerError
			var fe *content.FetchError
			if errors.As(err, &fe) {
				status = http.StatusBadGateway
			}
			log.Warn("duplicate scan failed", zap.String("operator", operator), zap.Error(err))
			c.JSON(status, gin.H{"error": "content API unavailable"})
			return
		}

		outcome := "ok"
		if report.Truncated {
			outcome = "truncated"
		}
		m.DuplicateScan(outcome)

		c.JSON(http.StatusOK, report)
	})
}
