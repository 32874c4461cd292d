package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/PratikDhanave/sponsorship-service/internal/metrics"
	"github.com/PratikDhanave/sponsorship-service/internal/registration"
)

// IdentityStore is what the registration routes need from the user store.
type IdentityStore interface {
	registration.UserCreator
	registration.ProfileStore
}

// RegisterAuthRoutes registers the sign-up endpoint.
//
// POST /api/auth/local/register
// - Public
// - Base handler creates the user and issues a token
// - Augmenter then stores the profile fields and returns the full user
func RegisterAuthRoutes(r gin.IRoutes, st IdentityStore, tokens registration.TokenIssuer, m *metrics.Metrics, log *zap.Logger) {
	base := registration.RegisterHandler(st, tokens, log)
	augment := registration.Augment(st, log, m)

	r.POST("/api/auth/local/register", augment(base))
}
