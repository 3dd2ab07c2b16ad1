package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/synergysphere/synergysphere/internal/services"
	"github.com/synergysphere/synergysphere/internal/types"
	"github.com/synergysphere/synergysphere/internal/utils"
)

func (h *Handler) PostMessage(ctx *gin.Context) {
	userID, ids, ok := actorAndIDs(ctx, utils.ProjectIDParam)
	if !ok {
		return
	}

	var body services.MessageInput
	if !bindJSON(ctx, &body) {
		return
	}

	message, err := h.services.Discussions.Post(ctx.Request.Context(), userID, ids[0], body)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, types.NewMessageResponse(*message))
}

func (h *Handler) ListMessages(ctx *gin.Context) {
	userID, ids, ok := actorAndIDs(ctx, utils.ProjectIDParam)
	if !ok {
		return
	}

	threads, err := h.services.Discussions.Threads(ctx.Request.Context(), userID, ids[0])
	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]types.ThreadResponse, 0, len(threads))
	for _, thread := range threads {
		response = append(response, types.NewThreadResponse(thread))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *Handler) GetThread(ctx *gin.Context) {
	userID, ids, ok := actorAndIDs(ctx, utils.ProjectIDParam, utils.MessageIDParam)
	if !ok {
		return
	}

	thread, err := h.services.Discussions.Thread(ctx.Request.Context(), userID, ids[0], ids[1])
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewThreadResponse(thread))
}

func (h *Handler) DeleteMessage(ctx *gin.Context) {
	userID, ids, ok := actorAndIDs(ctx, utils.ProjectIDParam, utils.MessageIDParam)
	if !ok {
		return
	}

	if err := h.services.Discussions.Delete(ctx.Request.Context(), userID, ids[0], ids[1]); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
