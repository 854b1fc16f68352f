package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/torkelwestby/christmas-rebus/internal/auth"
	"github.com/torkelwestby/christmas-rebus/internal/platform/logger"
)

type AuthHandler struct {
	log *logger.Logger
	svc *auth.Service
}

func NewAuthHandler(log *logger.Logger, svc *auth.Service) *AuthHandler {
	return &AuthHandler{log: log.With("handler", "auth"), svc: svc}
}

// Login hands out a role assertion; there are no sessions or tokens.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Brukernavn og passord er påkrevd"})
		return
	}
	if req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Brukernavn og passord er påkrevd"})
		return
	}

	role, err := h.svc.Login(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "Feil brukernavn eller passord"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "role": role, "username": req.Username})
}
