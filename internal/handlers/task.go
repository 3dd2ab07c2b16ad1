package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/synergysphere/synergysphere/internal/models"
	"github.com/synergysphere/synergysphere/internal/services"
	"github.com/synergysphere/synergysphere/internal/types"
	"github.com/synergysphere/synergysphere/internal/utils"
)

func taskList(tasks []models.Task) []types.TaskResponse {
	response := make([]types.TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		response = append(response, types.NewTaskResponse(task))
	}
	return response
}

func (h *Handler) CreateTask(ctx *gin.Context) {
	userID, ids, ok := actorAndIDs(ctx, utils.ProjectIDParam)
	if !ok {
		return
	}

	var body services.TaskInput
	if !bindJSON(ctx, &body) {
		return
	}

	task, err := h.services.Tasks.Create(ctx.Request.Context(), userID, ids[0], body)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, types.NewTaskResponse(*task))
}

func (h *Handler) ListTasks(ctx *gin.Context) {
	userID, ids, ok := actorAndIDs(ctx, utils.ProjectIDParam)
	if !ok {
		return
	}

	tasks, err := h.services.Tasks.List(ctx.Request.Context(), userID, ids[0])
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, taskList(tasks))
}

func (h *Handler) GetTask(ctx *gin.Context) {
	userID, ids, ok := actorAndIDs(ctx, utils.ProjectIDParam, utils.TaskIDParam)
	if !ok {
		return
	}

	task, err := h.services.Tasks.Get(ctx.Request.Context(), userID, ids[0], ids[1])
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewTaskResponse(*task))
}

func (h *Handler) UpdateTask(ctx *gin.Context) {
	userID, ids, ok := actorAndIDs(ctx, utils.ProjectIDParam, utils.TaskIDParam)
	if !ok {
		return
	}

	var body services.TaskUpdate
	if !bindJSON(ctx, &body) {
		return
	}

	task, err := h.services.Tasks.Update(ctx.Request.Context(), userID, ids[0], ids[1], body)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewTaskResponse(*task))
}

func (h *Handler) DeleteTask(ctx *gin.Context) {
	userID, ids, ok := actorAndIDs(ctx, utils.ProjectIDParam, utils.TaskIDParam)
	if !ok {
		return
	}

	if err := h.services.Tasks.Delete(ctx.Request.Context(), userID, ids[0], ids[1]); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *Handler) MyTasks(ctx *gin.Context) {
	userID, _, ok := actorAndIDs(ctx)
	if !ok {
		return
	}

	tasks, err := h.services.Tasks.Mine(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, taskList(tasks))
}
