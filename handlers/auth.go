package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rmdorsey/dallas-ai-bootcamp-legislative-project-sub000/logger"
)

type LoginRequest struct {
	Name     string `json:"name"`
	Passcode string `json:"passcode" binding:"required"`
}

func (h *Handler) HandleLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := req.Name
	if name == "" {
		name = "Demo User"
	}

	token, err := h.Sessions.Login(name, req.Passcode)
	if err != nil {
		logger.Get().Info("login rejected", zap.String("name", name))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid passcode"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  h.Sessions.User(),
	})
}

func (h *Handler) HandleLogout(c *gin.Context) {
	h.Sessions.Logout()
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
