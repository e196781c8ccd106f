package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/farouk/portfolio-relay/internal/api/dto/common"
	"github.com/farouk/portfolio-relay/internal/api/dto/v1/chat"
	"github.com/farouk/portfolio-relay/internal/logging"
	"github.com/farouk/portfolio-relay/internal/utils"
)

// Chat endpoint messages
const (
	ChatNoMessage      = "No message provided"
	ChatMessageTooLong = "Message is too long"
	ChatFailure        = "Failed to get response from AI"
	ChatBodyTooLarge   = "Request body too large"
)

// MaxChatMessageLength bounds a single visitor question, in characters
const MaxChatMessageLength = 2000

// ChatReplier answers one visitor question
type ChatReplier interface {
	Reply(ctx context.Context, message string) (string, error)
}

type ChatHandler struct {
	replier ChatReplier
	logger  *logging.Logger
}

func NewChatHandler(replier ChatReplier, logger *logging.Logger) *ChatHandler {
	return &ChatHandler{
		replier: replier,
		logger:  logger,
	}
}

func (h *ChatHandler) Chat(c *gin.Context) {
	var req chat.ChatRequest

	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		if utils.IsBodyTooLarge(err) {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				common.NewCodedErrorResponse(common.ErrCodeTooLarge, ChatBodyTooLarge))
			return
		}
		utils.HandleBadRequest(c, common.NewErrorResponse(ChatNoMessage))
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		utils.HandleBadRequest(c, common.NewErrorResponse(ChatNoMessage))
		return
	}

	if utf8.RuneCountInString(req.Message) > MaxChatMessageLength {
		utils.HandleBadRequest(c, common.NewErrorResponse(ChatMessageTooLong))
		return
	}

	reply, err := h.replier.Reply(c.Request.Context(), req.Message)
	if err != nil {
		// Provider details stay in the log
		utils.HandleAPIError(c, h.logger, err, http.StatusInternalServerError,
			"Chat completion failed", common.NewErrorResponse(ChatFailure))
		return
	}

	utils.HandleSuccess(c, chat.ChatResponse{Response: reply})
}
