package handlers

import (
	"errors"
	"net/http"

	"cpr-rag-backend/service"

	"github.com/gin-gonic/gin"
)

// ChatHandler handles HTTP requests for question answering
type ChatHandler struct {
	chatService *service.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// AskRequest represents the request body for asking a question
type AskRequest struct {
	Question            string `json:"question" binding:"required"`
	SourceFile          string `json:"source_file"`
	UseSemanticCaptions bool   `json:"use_semantic_captions"`
}

// Ask handles POST /api/chat
func (h *ChatHandler) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	result, err := h.chatService.Ask(c.Request.Context(), service.AskRequest{
		Question:            req.Question,
		SourceFileFilter:    req.SourceFile,
		UseSemanticCaptions: req.UseSemanticCaptions,
	})
	if err != nil {
		status := http.StatusInternalServerError
		code := "CHAT_FAILED"
		switch {
		case errors.Is(err, service.ErrEmptyQuestion):
			status = http.StatusBadRequest
			code = "EMPTY_QUESTION"
		case errors.Is(err, service.ErrNoSources):
			status = http.StatusNotFound
			code = "NO_SOURCES"
		}
		c.JSON(status, gin.H{
			"success": false,
			"error": gin.H{
				"code":    code,
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"answer":  result.Answer,
		"sources": result.Sources,
	})
}
