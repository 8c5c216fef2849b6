package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/jobportal/backend/agent"
	"github.com/jobportal/backend/auth"
	"github.com/jobportal/backend/logger"
	"github.com/jobportal/backend/models"
)

// ChatService is the conversation surface the chat handler drives
type ChatService interface {
	CreateConversation(ctx context.Context, userID string) (*models.Conversation, error)
	Conversation(ctx context.Context, conversationID string) (*models.Conversation, error)
	ListConversations(ctx context.Context, userID string) ([]models.Conversation, error)
	GetMessages(ctx context.Context, conversationID string) ([]models.MessageResponse, error)
	DeleteConversation(ctx context.Context, conversationID string) error
	SendMessage(ctx context.Context, input agent.SendMessageInput) (*agent.SendMessageOutput, error)
}

// ChatHandler handles chat requests
type ChatHandler struct {
	chat ChatService
	log  zerolog.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chat ChatService) *ChatHandler {
	return &ChatHandler{
		chat: chat,
		log:  logger.Component("ChatHandler"),
	}
}

// CreateConversation starts a conversation for the authenticated user
// @Summary Create conversation
// @Description Start a new chat conversation owned by the caller
// @Tags Chat
// @Produce json
// @Security BearerAuth
// @Success 201 {object} models.Conversation "Created conversation"
// @Failure 401 {object} models.ErrorResponse "Not authenticated"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /chat/conversation [post]
func (h *ChatHandler) CreateConversation(c *gin.Context) {
	conv, err := h.chat.CreateConversation(c.Request.Context(), auth.UserID(c))
	if err != nil {
		respondServiceError(c, h.log, "create_conversation", err)
		return
	}
	c.JSON(http.StatusCreated, conv)
}

// SendMessage answers one chat message
// @Summary Send chat message
// @Description Send a message to the job assistant. A new conversation is started when conversationId is empty. Authentication optional.
// @Tags Chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.SendMessageRequest true "Chat message"
// @Success 200 {object} models.SendMessageResponse "Assistant reply"
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 403 {object} models.ErrorResponse "Conversation belongs to another user"
// @Failure 404 {object} models.ErrorResponse "Conversation not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /chat/send [post]
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respondError(c, http.StatusBadRequest, "Invalid request body", "message is required")
		return
	}

	out, err := h.chat.SendMessage(c.Request.Context(), agent.SendMessageInput{
		ConversationID: req.ConversationID,
		UserID:         auth.UserID(c),
		Message:        req.Message,
	})
	if err != nil {
		respondServiceError(c, h.log, "send_message", err)
		return
	}

	jobs := out.Jobs
	if jobs == nil {
		jobs = []models.JobSuggestion{}
	}
	c.JSON(http.StatusOK, models.SendMessageResponse{
		Reply:          out.Reply,
		Jobs:           jobs,
		ConversationID: out.ConversationID,
	})
}

// ListConversations lists the caller's conversations
// @Summary List conversations
// @Description List the caller's conversations, newest first
// @Tags Chat
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Conversation "Conversations"
// @Failure 401 {object} models.ErrorResponse "Not authenticated"
// @Router /chat/conversations [get]
func (h *ChatHandler) ListConversations(c *gin.Context) {
	convs, err := h.chat.ListConversations(c.Request.Context(), auth.UserID(c))
	if err != nil {
		respondServiceError(c, h.log, "list_conversations", err)
		return
	}
	if convs == nil {
		convs = []models.Conversation{}
	}
	c.JSON(http.StatusOK, convs)
}

// GetMessages returns a conversation's message log
// @Summary Get conversation messages
// @Description Get the messages of a conversation, oldest first, with job suggestions decoded
// @Tags Chat
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conversation ID"
// @Success 200 {array} models.MessageResponse "Messages"
// @Failure 403 {object} models.ErrorResponse "Conversation belongs to another user"
// @Failure 404 {object} models.ErrorResponse "Conversation not found"
// @Router /chat/conversations/{id}/messages [get]
func (h *ChatHandler) GetMessages(c *gin.Context) {
	id := c.Param("id")
	if !h.authorize(c, id) {
		return
	}

	msgs, err := h.chat.GetMessages(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.log, "get_messages", err)
		return
	}
	if msgs == nil {
		msgs = []models.MessageResponse{}
	}
	c.JSON(http.StatusOK, msgs)
}

// DeleteConversation removes a conversation with its messages
// @Summary Delete conversation
// @Description Delete a conversation together with its messages and search context
// @Tags Chat
// @Security BearerAuth
// @Param id path string true "Conversation ID"
// @Success 204 "Deleted"
// @Failure 403 {object} models.ErrorResponse "Conversation belongs to another user"
// @Failure 404 {object} models.ErrorResponse "Conversation not found"
// @Router /chat/conversation/{id} [delete]
func (h *ChatHandler) DeleteConversation(c *gin.Context) {
	id := c.Param("id")
	if !h.authorize(c, id) {
		return
	}

	if err := h.chat.DeleteConversation(c.Request.Context(), id); err != nil {
		respondServiceError(c, h.log, "delete_conversation", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// authorize checks the caller owns the conversation; admins may read any
func (h *ChatHandler) authorize(c *gin.Context, conversationID string) bool {
	conv, err := h.chat.Conversation(c.Request.Context(), conversationID)
	if err != nil {
		respondServiceError(c, h.log, "load_conversation", err)
		return false
	}

	claims := auth.GetAuthClaims(c)
	if claims != nil && strings.EqualFold(claims.Role, auth.RoleAdmin) {
		return true
	}
	if conv.UserID != auth.UserID(c) {
		respondError(c, http.StatusForbidden, "Access denied", "")
		return false
	}
	return true
}
