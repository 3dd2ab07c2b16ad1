package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/synergysphere/synergysphere/internal/types"
	"github.com/synergysphere/synergysphere/internal/utils"
)

func (h *Handler) ListNotifications(ctx *gin.Context) {
	userID, _, ok := actorAndIDs(ctx)
	if !ok {
		return
	}

	unreadOnly := ctx.Query("unread") == "true"

	notifications, err := h.services.Notifications.List(ctx.Request.Context(), userID, unreadOnly)
	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]types.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		response = append(response, types.NewNotificationResponse(n))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *Handler) MarkNotificationRead(ctx *gin.Context) {
	userID, ids, ok := actorAndIDs(ctx, utils.NotificationIDParam)
	if !ok {
		return
	}

	notification, err := h.services.Notifications.MarkRead(ctx.Request.Context(), userID, ids[0])
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewNotificationResponse(*notification))
}

func (h *Handler) MarkAllNotificationsRead(ctx *gin.Context) {
	userID, _, ok := actorAndIDs(ctx)
	if !ok {
		return
	}

	updated, err := h.services.Notifications.MarkAllRead(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"updated": updated})
}

func (h *Handler) DeleteNotification(ctx *gin.Context) {
	userID, ids, ok := actorAndIDs(ctx, utils.NotificationIDParam)
	if !ok {
		return
	}

	if err := h.services.Notifications.Delete(ctx.Request.Context(), userID, ids[0]); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
