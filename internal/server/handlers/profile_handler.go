package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dilshanuk/salespoint/internal/server/middleware"
	"github.com/dilshanuk/salespoint/internal/service/auth"
)

// ProfileHandler exposes the actor's own account.
type ProfileHandler struct {
	svc    *auth.Service
	logger *zap.Logger
}

// NewProfileHandler constructs the HTTP handler adapter.
func NewProfileHandler(svc *auth.Service, logger *zap.Logger) *ProfileHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileHandler{svc: svc, logger: logger}
}

// Get returns the current user's profile.
func (h *ProfileHandler) Get(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)

	user, err := h.svc.Profile(c.Request.Context(), principal)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUsername changes the current user's username.
func (h *ProfileHandler) UpdateUsername(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)

	var req struct {
		Username string `json:"username"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	user, err := h.svc.ChangeUsername(c.Request.Context(), principal, req.Username)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Username updated successfully", "user": user})
}

// UpdatePassword changes the current user's password.
func (h *ProfileHandler) UpdatePassword(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)

	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	if err := h.svc.ChangePassword(c.Request.Context(), principal, req.CurrentPassword, req.NewPassword); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}
