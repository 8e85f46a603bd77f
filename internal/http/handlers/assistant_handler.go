// Assistant HTTP handlers.
//
// This file exposes POST /assistant/chat, the natural-language interface over
// the caller's own attendance and leave data. Conversation history is carried
// in the request body and never persisted; gateway failures surface as a
// fixed apology message with HTTP 200, so the chat UI never breaks.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zenwork/go-attendance-backend/internal/domain"
	"github.com/zenwork/go-attendance-backend/internal/services"
)

// AssistantService defines the chat operation consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type AssistantService interface {
	// Reply answers a prompt grounded on the user's own data.
	Reply(ctx context.Context, userID string, history []domain.ChatMessage, prompt string) (string, error)
}

// ChatRequest is the JSON payload for the assistant endpoint.
type ChatRequest struct {
	// Message is the user's current prompt.
	Message string `json:"message" binding:"required"`
	// History carries prior turns, oldest first. Optional.
	History []domain.ChatMessage `json:"history" binding:"omitempty,dive"`
}

// ChatResponse wraps the assistant's reply.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// Chat answers a natural-language question over the current user's attendance
// and leave data.
func (h *Handlers) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	reply, err := h.aiSvc.Reply(c.Request.Context(), userID(c), req.History, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyPrompt):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "message required")
		case errors.Is(err, services.ErrPromptTooLong):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "message too long")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}

	ok(c, http.StatusOK, ChatResponse{Reply: reply})
}
