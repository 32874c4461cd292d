// Package registration implements user sign-up and the profile enrichment
// that wraps it.
package registration

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/PratikDhanave/sponsorship-service/internal/models"
	"github.com/PratikDhanave/sponsorship-service/internal/store"
)

const minPasswordLen = 6

// UserCreator persists new users.
type UserCreator interface {
	CreateUser(ctx context.Context, u store.NewUser) (models.User, error)
}

// TokenIssuer issues session tokens for newly created users.
type TokenIssuer interface {
	Issue(userID int64) (string, error)
}

// RegisterHandler returns the base sign-up handler. It accepts username,
// email and password, ignores any other fields, and on success responds
// 200 with {"jwt": ..., "user": {id, username, email}}.
func RegisterHandler(users UserCreator, tokens TokenIssuer, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		var req models.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
			return
		}

		req.Username = strings.TrimSpace(req.Username)
		req.Email = strings.TrimSpace(req.Email)

		// Required fields per contract.
		if req.Username == "" || req.Email == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username, email and password are required"})
			return
		}
		if _, err := mail.ParseAddress(req.Email); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email is invalid"})
			return
		}
		if len(req.Password) < minPasswordLen {
			c.JSON(http.StatusBadRequest, gin.H{"error": "password must be at least 6 characters"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Error("hashing password", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
			return
		}

		user, err := users.CreateUser(c.Request.Context(), store.NewUser{
			Username:     req.Username,
			Email:        strings.ToLower(req.Email),
			PasswordHash: string(hash),
		})
		if errors.Is(err, store.ErrUserExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email or username already taken"})
			return
		}
		if err != nil {
			log.Error("creating user", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db insert failed"})
			return
		}

		token, err := tokens.Issue(user.ID)
		if err != nil {
			log.Error("issuing token", zap.Int64("user_id", user.ID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
			return
		}

		c.JSON(http.StatusOK, models.RegisterResponse{JWT: token, User: user})
	}
}
