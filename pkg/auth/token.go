package auth

import (
	"context"
	"net/http"
	"strings"

	"bravoo/internal/model"
	"bravoo/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

const userContextKey = "current_user"

// UserResolver maps an opaque bearer token to the user it belongs to.
type UserResolver interface {
	UserByToken(ctx context.Context, token string) (*model.User, error)
}

type TokenAuth struct {
	users UserResolver
}

func NewTokenAuth(users UserResolver) *TokenAuth {
	return &TokenAuth{
		users: users,
	}
}

func (t *TokenAuth) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.Logger()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Info("missing authorization header")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header is required"})
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			log.Info("invalid authorization header format")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		user, err := t.users.UserByToken(c.Request.Context(), token)
		if err != nil {
			log.Info("failed to resolve bearer token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user placed in the context by
// Middleware.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	v, exists := c.Get(userContextKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*model.User)
	if !ok {
		return nil, false
	}
	return user, true
}
