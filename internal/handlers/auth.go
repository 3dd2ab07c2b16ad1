package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/synergysphere/synergysphere/internal/models"
	"github.com/synergysphere/synergysphere/internal/services"
	"github.com/synergysphere/synergysphere/internal/types"
	"github.com/synergysphere/synergysphere/internal/utils"
)

type LoginUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) setTokenCookie(ctx *gin.Context, token string, maxAge int) {
	sameSite := http.SameSiteLaxMode
	if h.cookies.Secure {
		sameSite = http.SameSiteNoneMode
	}

	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     types.TokenCookie,
		Value:    token,
		Path:     "/",
		Domain:   h.cookies.Domain,
		MaxAge:   maxAge,
		Secure:   h.cookies.Secure,
		HttpOnly: true,
		SameSite: sameSite,
	})
}

// signIn issues a token for user, sets the cookie and writes the response.
func (h *Handler) signIn(ctx *gin.Context, status int, user *models.User) {
	token, err := h.issuer.Generate(user.ID, user.Email)
	if err != nil {
		respondError(ctx, err)
		return
	}

	h.setTokenCookie(ctx, token, int(h.issuer.TTL().Seconds()))

	ctx.JSON(status, gin.H{
		"user":  types.NewUserResponse(*user),
		"token": token,
	})
}

func (h *Handler) Register(ctx *gin.Context) {
	var body services.RegisterInput
	if !bindJSON(ctx, &body) {
		return
	}

	user, err := h.services.Users.Register(ctx.Request.Context(), body)
	if err != nil {
		respondError(ctx, err)
		return
	}

	h.signIn(ctx, http.StatusCreated, user)
}

func (h *Handler) Login(ctx *gin.Context) {
	var body LoginUserRequest
	if !bindJSON(ctx, &body) {
		return
	}

	user, err := h.services.Users.Authenticate(ctx.Request.Context(), body.Email, body.Password)
	if err != nil {
		respondError(ctx, err)
		return
	}

	h.signIn(ctx, http.StatusOK, user)
}

func (h *Handler) Logout(ctx *gin.Context) {
	h.setTokenCookie(ctx, "", -1)
	ctx.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *Handler) Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user": types.UserResponse{
			ID:    currentUser.ID,
			Name:  currentUser.Name,
			Email: currentUser.Email,
		},
	})
}

func (h *Handler) UpdateMe(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body services.ProfileInput
	if !bindJSON(ctx, &body) {
		return
	}

	user, err := h.services.Users.UpdateProfile(ctx.Request.Context(), userID, body)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully",
		"user":    types.NewUserResponse(*user),
	})
}
