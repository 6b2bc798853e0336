package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zartof23/mytops-sub000/internal/http/response"
	"github.com/Zartof23/mytops-sub000/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GET /me
func (uh *UserHandler) GetMe(c *gin.Context) {
	me, err := uh.userService.GetMe(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"me": me})
}

// PATCH /me
// body: { "display_name": "...", "preferred_theme": "dark" } (both optional)
func (uh *UserHandler) UpdateProfile(c *gin.Context) {
	var req struct {
		DisplayName    *string `json:"display_name"`
		PreferredTheme *string `json:"preferred_theme"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	me, err := uh.userService.UpdateProfile(c.Request.Context(), services.ProfileUpdate{
		DisplayName:    req.DisplayName,
		PreferredTheme: req.PreferredTheme,
	})
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"me": me})
}

// POST /me/avatar
func (uh *UserHandler) RegenerateAvatar(c *gin.Context) {
	me, err := uh.userService.RegenerateAvatar(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"me": me})
}
