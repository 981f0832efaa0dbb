package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/rmdorsey/dallas-ai-bootcamp-legislative-project-sub000/store"
)

type RenameRequest struct {
	Title string `json:"title" binding:"required"`
}

func (h *Handler) HandleGetConversations(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.List())
}

func (h *Handler) HandleCreateConversation(c *gin.Context) {
	conv := h.Store.Create()
	c.JSON(http.StatusOK, conv)
}

func (h *Handler) HandleSelectConversation(c *gin.Context) {
	id := c.Param("id")
	if err := h.Store.Select(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	conv, err := h.Store.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, conv)
}

func (h *Handler) HandleRenameConversation(c *gin.Context) {
	id := c.Param("id")

	var req RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.Store.Rename(id, req.Title)
	switch {
	case errors.Is(err, store.ErrBlankTitle):
		// Blank renames are ignored, not errors.
		c.Status(http.StatusNoContent)
		return
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	conv, err := h.Store.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, conv)
}

func (h *Handler) HandleDeleteConversation(c *gin.Context) {
	h.Store.Delete(c.Param("id"))
	c.JSON(http.StatusOK, h.Store.List())
}
