package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"imovelmatch/models"
	"imovelmatch/services/chat"
	"imovelmatch/utils"
)

const apologyMessage = "An error occurred while processing your request. Please try again later."

// ChatHandler exposes the dialogue orchestrator over HTTP.
type ChatHandler struct {
	Orchestrator *chat.Orchestrator
}

func NewChatHandler(orc *chat.Orchestrator) *ChatHandler {
	return &ChatHandler{Orchestrator: orc}
}

// HandleChat resolves one conversation turn.
func (h *ChatHandler) HandleChat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid chat request", err.Error())
		return
	}

	resp, err := h.Orchestrator.HandleTurn(c.Request.Context(), req.SessionID, req.UserName, req.Message)
	if err != nil {
		if errors.Is(err, chat.ErrRetriesExhausted) {
			// A handled turn-level failure; the session stays usable.
			c.JSON(http.StatusOK, models.ChatResponse{
				SessionID: req.SessionID,
				Response:  apologyMessage,
			})
			return
		}
		utils.GetLogger().Error("chat turn failed", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, apologyMessage, "")
		return
	}
	if resp == nil {
		// Whitespace-only input produces no turn.
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// EndSession discards a session's conversation state.
func (h *ChatHandler) EndSession(c *gin.Context) {
	id := c.Param("id")
	if err := h.Orchestrator.EndSession(c.Request.Context(), id); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to end session", err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}
