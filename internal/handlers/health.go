package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const healthPingTimeout = 2 * time.Second

func (h *Handler) HealthCheck(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), healthPingTimeout)
	defer cancel()

	if err := h.db.Ping(pingCtx); err != nil {
		zerolog.Ctx(ctx.Request.Context()).Error().Err(err).Msg("database ping failed")
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "unavailable",
			"message":   "Database is unreachable",
			"timestamp": time.Now().Format(time.RFC3339),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"message":   "SynergySphere is running",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
