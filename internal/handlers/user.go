package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/healthplus/identity/internal/config"
	"github.com/healthplus/identity/internal/handlers/dto"
	"github.com/healthplus/identity/internal/middleware"
)

type UserHandler struct {
	cfg *config.Config
}

func NewUserHandler(cfg *config.Config) *UserHandler {
	return &UserHandler{cfg: cfg}
}

// GetMe returns the authenticated account's projection.
func (h *UserHandler) GetMe(c *gin.Context) {
	user := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{
		"status": true,
		"user":   dto.NewUserProjection(user, h.cfg.DefaultProfileImageURL),
	})
}
