package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rmdorsey/dallas-ai-bootcamp-legislative-project-sub000/agent"
	"github.com/rmdorsey/dallas-ai-bootcamp-legislative-project-sub000/logger"
)

// HandleAnalyzerMessage runs one bill-specific analysis turn. The :bill
// parameter is a bill code such as "SB7" or "HB450"; parsing it never fails
// the request.
func (h *Handler) HandleAnalyzerMessage(c *gin.Context) {
	billCode := c.Param("bill")

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query := strings.TrimSpace(req.Message)
	if query == "" {
		c.Status(http.StatusNoContent)
		return
	}

	bill := agent.ParseBillCode(billCode)
	content, err := h.Agent.Analysis(c.Request.Context(), bill, query)
	if err != nil {
		logger.Get().Error("analysis turn failed",
			zap.String("bill_code", billCode),
			zap.Error(err))
		content = agent.ErrorMessage("analyzing the bill", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"bill_number": bill.Number,
		"chamber":     bill.Chamber,
		"content":     content,
	})
}
