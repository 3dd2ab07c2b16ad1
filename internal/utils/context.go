package utils

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/synergysphere/synergysphere/internal/middleware"
	"github.com/synergysphere/synergysphere/internal/types"
)

var (
	ErrNotAuthenticated = errors.New("user not authenticated")
	ErrUnexpectedUser   = errors.New("unexpected user value in context")
)

// GetCurrentUser returns the user set by the auth middleware.
func GetCurrentUser(ctx *gin.Context) (middleware.AuthenticatedUser, error) {
	value, ok := ctx.Get(types.ContextUserKey)
	if !ok {
		return middleware.AuthenticatedUser{}, ErrNotAuthenticated
	}

	user, ok := value.(middleware.AuthenticatedUser)
	if !ok {
		return middleware.AuthenticatedUser{}, ErrUnexpectedUser
	}
	if user.ID == 0 {
		return middleware.AuthenticatedUser{}, ErrNotAuthenticated
	}

	return user, nil
}

func GetCurrentUserID(ctx *gin.Context) (uint, error) {
	user, err := GetCurrentUser(ctx)
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}
