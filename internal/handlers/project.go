package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/synergysphere/synergysphere/internal/services"
	"github.com/synergysphere/synergysphere/internal/types"
	"github.com/synergysphere/synergysphere/internal/utils"
)

func (h *Handler) CreateProject(ctx *gin.Context) {
	userID, _, ok := actorAndIDs(ctx)
	if !ok {
		return
	}

	var body services.ProjectInput
	if !bindJSON(ctx, &body) {
		return
	}

	project, err := h.services.Projects.Create(ctx.Request.Context(), userID, body)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, types.NewProjectResponse(*project, userID))
}

func (h *Handler) ListProjects(ctx *gin.Context) {
	userID, _, ok := actorAndIDs(ctx)
	if !ok {
		return
	}

	projects, err := h.services.Projects.List(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]types.ProjectResponse, 0, len(projects))
	for _, project := range projects {
		response = append(response, types.NewProjectResponse(project, userID))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *Handler) GetProject(ctx *gin.Context) {
	userID, ids, ok := actorAndIDs(ctx, utils.ProjectIDParam)
	if !ok {
		return
	}

	project, err := h.services.Projects.Get(ctx.Request.Context(), userID, ids[0])
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewProjectResponse(*project, userID))
}

func (h *Handler) UpdateProject(ctx *gin.Context) {
	userID, ids, ok := actorAndIDs(ctx, utils.ProjectIDParam)
	if !ok {
		return
	}

	var body services.ProjectUpdate
	if !bindJSON(ctx, &body) {
		return
	}

	project, err := h.services.Projects.Update(ctx.Request.Context(), userID, ids[0], body)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewProjectResponse(*project, userID))
}

func (h *Handler) DeleteProject(ctx *gin.Context) {
	userID, ids, ok := actorAndIDs(ctx, utils.ProjectIDParam)
	if !ok {
		return
	}

	if err := h.services.Projects.Delete(ctx.Request.Context(), userID, ids[0]); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
