package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/synergysphere/synergysphere/internal/utils"
)

// WebSocket streams the caller's new notifications as they are created.
func (h *Handler) WebSocket(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.hub.Serve(ctx.Writer, ctx.Request, userID); err != nil {
		// The upgrader has already written the error response.
		zerolog.Ctx(ctx.Request.Context()).Warn().Err(err).Msg("websocket upgrade failed")
	}
}
