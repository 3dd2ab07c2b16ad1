package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/synergysphere/synergysphere/internal/services"
	"github.com/synergysphere/synergysphere/internal/types"
	"github.com/synergysphere/synergysphere/internal/utils"
)

func (h *Handler) ListTeamMembers(ctx *gin.Context) {
	userID, ids, ok := actorAndIDs(ctx, utils.ProjectIDParam)
	if !ok {
		return
	}

	members, err := h.services.Projects.ListTeam(ctx.Request.Context(), userID, ids[0])
	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]types.TeamMemberResponse, 0, len(members))
	for _, member := range members {
		response = append(response, types.NewTeamMemberResponse(member))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *Handler) AddTeamMember(ctx *gin.Context) {
	userID, ids, ok := actorAndIDs(ctx, utils.ProjectIDParam)
	if !ok {
		return
	}

	var body services.AddMemberInput
	if !bindJSON(ctx, &body) {
		return
	}

	member, err := h.services.Projects.AddMember(ctx.Request.Context(), userID, ids[0], body)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, types.NewTeamMemberResponse(*member))
}

func (h *Handler) RemoveTeamMember(ctx *gin.Context) {
	userID, ids, ok := actorAndIDs(ctx, utils.ProjectIDParam, utils.MemberIDParam)
	if !ok {
		return
	}

	if err := h.services.Projects.RemoveMember(ctx.Request.Context(), userID, ids[0], ids[1]); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
