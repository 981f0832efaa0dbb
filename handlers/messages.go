package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/rmdorsey/dallas-ai-bootcamp-legislative-project-sub000/agent"
	"github.com/rmdorsey/dallas-ai-bootcamp-legislative-project-sub000/logger"
	"github.com/rmdorsey/dallas-ai-bootcamp-legislative-project-sub000/models"
	"github.com/rmdorsey/dallas-ai-bootcamp-legislative-project-sub000/store"
)

type SendMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

type AddressRequest struct {
	Address string `json:"address" binding:"required"`
}

// HandleSendMessage runs one chat turn: append the user message, ask the
// agent, append the assistant's answer. Agent failures degrade to a
// synthetic assistant message; the conversation stays usable.
func (h *Handler) HandleSendMessage(c *gin.Context) {
	id := c.Param("id")

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	text := strings.TrimSpace(req.Message)
	if text == "" {
		c.Status(http.StatusNoContent)
		return
	}

	h.runTurn(c, id, text)
}

// HandleAddressSubmit is the follow-up turn for a RequestAddress directive:
// the address becomes a user message with its own preview format.
func (h *Handler) HandleAddressSubmit(c *gin.Context) {
	id := c.Param("id")

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	address := strings.TrimSpace(req.Address)
	if address == "" {
		c.Status(http.StatusNoContent)
		return
	}

	text := "My address is: " + address
	preview := "Address provided: " + firstN(address, 50) + "..."

	h.runTurnWithPreview(c, id, text, preview)
}

func (h *Handler) runTurn(c *gin.Context, id, text string) {
	h.runTurnWithPreview(c, id, text, "")
}

func (h *Handler) runTurnWithPreview(c *gin.Context, id, text, preview string) {
	if err := h.Store.BeginTurn(id); err != nil {
		switch {
		case errors.Is(err, store.ErrTurnInFlight):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	defer h.Store.EndTurn(id)

	userMsg, err := h.Store.AppendUserMessage(id, text)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if preview != "" {
		h.Store.SetPreview(id, preview)
	}

	content, err := h.Agent.Overview(c.Request.Context(), id, text)
	directive := models.NoDirective()
	if err != nil {
		logger.Get().Error("agent turn failed",
			zap.String("conversation_id", id),
			zap.Error(err))
		content = agent.ErrorMessage("processing your request", err)
	} else {
		directive = h.detectDirective(text)
	}

	assistantMsg, err := h.Store.AppendAssistantMessage(id, content, directive)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_message":      userMsg,
		"assistant_message": assistantMsg,
	})
}

func firstN(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
