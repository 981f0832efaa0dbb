package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rmdorsey/dallas-ai-bootcamp-legislative-project-sub000/agent"
	"github.com/rmdorsey/dallas-ai-bootcamp-legislative-project-sub000/logger"
	"github.com/rmdorsey/dallas-ai-bootcamp-legislative-project-sub000/sse"
)

// HandleStream relays a streamed agent turn to the client as server-sent
// events. The question rides in the query string; the conversation id keys
// the stream.
func (h *Handler) HandleStream(c *gin.Context) {
	conversationID := c.Param("id")
	question := c.Query("question")
	if question == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.String(http.StatusInternalServerError, "Streaming unsupported!")
		return
	}

	stream := h.Streams.Register(conversationID)
	defer h.Streams.Unregister(conversationID)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	go func() {
		err := h.Agent.Stream(c.Request.Context(), conversationID, question, func(chunk agent.StreamChunk) {
			h.Streams.Publish(conversationID, sse.Event{Type: chunk.Type, Content: chunk.Content})
		})
		if err != nil {
			logger.Get().Error("agent stream failed",
				zap.String("conversation_id", conversationID),
				zap.Error(err))
			h.Streams.Publish(conversationID, sse.Event{
				Type:    "error",
				Content: agent.ErrorMessage("processing your request", err),
			})
		}
		h.Streams.Finish(conversationID)
	}()

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-stream.Events:
			if !ok {
				return false
			}
			payload, err := json.Marshal(event)
			if err != nil {
				return true
			}
			c.Writer.Write([]byte("data: " + string(payload) + "\n\n"))
			flusher.Flush()
			return true
		case <-c.Request.Context().Done():
			return false
		case <-stream.Done:
			return false
		}
	})
}

type DebugAgentRequest struct {
	Question string `json:"question" binding:"required"`
	ThreadID string `json:"thread_id"`
}

// HandleDebugAgent posts a question to the streaming endpoint and returns
// the concatenated event log, mirroring the debug console.
func (h *Handler) HandleDebugAgent(c *gin.Context) {
	var req DebugAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	threadID := req.ThreadID
	if threadID == "" {
		threadID = "debug-test"
	}

	response, err := h.Agent.CollectStream(c.Request.Context(), threadID, req.Question)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"response": "Error: " + err.Error()})
		return
	}
	if response == "" {
		response = "No response received"
	}
	c.JSON(http.StatusOK, gin.H{"response": response})
}
