package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/synergysphere/synergysphere/internal/auth"
	"github.com/synergysphere/synergysphere/internal/models"
	"github.com/synergysphere/synergysphere/internal/types"
)

type AuthenticatedUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UserFinder interface {
	FindUserByID(ctx context.Context, id uint) (*models.User, error)
}

// AuthMiddleware resolves the caller from a Bearer token or, failing that,
// the token cookie set at login.
func AuthMiddleware(issuer *auth.TokenIssuer, users UserFinder) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, ok := bearerOrCookie(ctx)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token is required"})
			return
		}

		claims, err := issuer.Verify(tokenString)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		user, err := users.FindUserByID(ctx.Request.Context(), claims.UserID)
		if err != nil {
			zerolog.Ctx(ctx.Request.Context()).Error().Err(err).Msg("failed to load authenticated user")
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		if user == nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}

		ctx.Set(types.ContextUserKey, AuthenticatedUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		})
		ctx.Next()
	}
}

func bearerOrCookie(ctx *gin.Context) (string, bool) {
	if header := ctx.GetHeader("Authorization"); header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if !found || scheme != "Bearer" || token == "" {
			return "", false
		}
		return token, true
	}

	cookie, err := ctx.Cookie(types.TokenCookie)
	if err != nil || cookie == "" {
		return "", false
	}
	return cookie, true
}
