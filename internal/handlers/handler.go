package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/synergysphere/synergysphere/internal/auth"
	"github.com/synergysphere/synergysphere/internal/realtime"
	"github.com/synergysphere/synergysphere/internal/rules"
	"github.com/synergysphere/synergysphere/internal/services"
	"github.com/synergysphere/synergysphere/internal/utils"
)

// Pinger reports whether the database answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

type CookieOptions struct {
	Domain string
	Secure bool
}

type Handler struct {
	services *services.Services
	issuer   *auth.TokenIssuer
	hub      *realtime.Hub
	db       Pinger
	cookies  CookieOptions
}

func New(svc *services.Services, issuer *auth.TokenIssuer, hub *realtime.Hub, db Pinger, cookies CookieOptions) *Handler {
	return &Handler{
		services: svc,
		issuer:   issuer,
		hub:      hub,
		db:       db,
		cookies:  cookies,
	}
}

var refusalStatus = map[error]int{
	rules.ErrNotFound:      http.StatusNotFound,
	rules.ErrForbidden:     http.StatusForbidden,
	rules.ErrValidation:    http.StatusBadRequest,
	rules.ErrAlreadyMember: http.StatusConflict,
}

// respondError maps a service error onto a status code. Unknown errors are
// logged and hidden behind a 500.
func respondError(ctx *gin.Context, err error) {
	var refusal *rules.Refusal
	if errors.As(err, &refusal) {
		status, ok := refusalStatus[refusal.Kind]
		if !ok {
			status = http.StatusForbidden
		}
		ctx.JSON(status, gin.H{"error": refusal.Reason})
		return
	}

	switch {
	case errors.Is(err, services.ErrEmailTaken):
		ctx.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
	case errors.Is(err, services.ErrInvalidCredentials):
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
	default:
		zerolog.Ctx(ctx.Request.Context()).Error().Err(err).Str("path", ctx.FullPath()).Msg("request failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func bindJSON(ctx *gin.Context, body any) bool {
	if err := ctx.ShouldBindJSON(body); err != nil {
		zerolog.Ctx(ctx.Request.Context()).Debug().Err(err).Msg("failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return false
	}
	return true
}

// actorAndIDs returns the authenticated user and the named path ids, or
// writes the error response and returns ok=false.
func actorAndIDs(ctx *gin.Context, names ...string) (uint, []uint, bool) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return 0, nil, false
	}

	ids, err := utils.GetIDParams(ctx, names...)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return 0, nil, false
	}

	return userID, ids, true
}
