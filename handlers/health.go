package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HandleHealth reports service health and whether the agent backend is
// reachable. The service itself is healthy either way.
func (h *Handler) HandleHealth(c *gin.Context) {
	agentStatus := "unreachable"
	if h.Agent.Healthy(c.Request.Context()) {
		agentStatus = "healthy"
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"agent":  agentStatus,
	})
}
