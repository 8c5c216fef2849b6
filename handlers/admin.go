package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/jobportal/backend/logger"
	"github.com/jobportal/backend/models"
)

// AdminService is the moderation surface over all conversations
type AdminService interface {
	ListConversations(ctx context.Context) ([]models.Conversation, error)
	ConversationDetail(ctx context.Context, conversationID string) (*models.ConversationDetailResponse, error)
	MarkUseful(ctx context.Context, conversationID string) (*models.Conversation, error)
	MarkSpam(ctx context.Context, conversationID string) (*models.Conversation, error)
}

// AdminHandler handles chat moderation requests
type AdminHandler struct {
	admin AdminService
	log   zerolog.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(admin AdminService) *AdminHandler {
	return &AdminHandler{
		admin: admin,
		log:   logger.Component("AdminHandler"),
	}
}

// ListConversations lists every conversation
// @Summary List all conversations
// @Description List all conversations with their message counts, newest first
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Conversation "Conversations"
// @Failure 403 {object} models.ErrorResponse "Admin role required"
// @Router /admin/chat/conversations [get]
func (h *AdminHandler) ListConversations(c *gin.Context) {
	convs, err := h.admin.ListConversations(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, "admin_list_conversations", err)
		return
	}
	if convs == nil {
		convs = []models.Conversation{}
	}
	c.JSON(http.StatusOK, convs)
}

// GetConversation returns one conversation with its messages
// @Summary Get conversation
// @Description Get a conversation with all of its messages
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conversation ID"
// @Success 200 {object} models.ConversationDetailResponse "Conversation"
// @Failure 404 {object} models.ErrorResponse "Conversation not found"
// @Router /admin/chat/conversations/{id} [get]
func (h *AdminHandler) GetConversation(c *gin.Context) {
	detail, err := h.admin.ConversationDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, h.log, "admin_get_conversation", err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// MarkUseful flags a conversation as useful
// @Summary Mark conversation useful
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conversation ID"
// @Success 200 {object} models.Conversation "Updated conversation"
// @Failure 404 {object} models.ErrorResponse "Conversation not found"
// @Router /admin/chat/conversations/{id}/mark-useful [put]
func (h *AdminHandler) MarkUseful(c *gin.Context) {
	h.review(c, "mark_useful", h.admin.MarkUseful)
}

// MarkSpam flags a conversation as spam
// @Summary Mark conversation spam
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conversation ID"
// @Success 200 {object} models.Conversation "Updated conversation"
// @Failure 404 {object} models.ErrorResponse "Conversation not found"
// @Router /admin/chat/conversations/{id}/mark-spam [put]
func (h *AdminHandler) MarkSpam(c *gin.Context) {
	h.review(c, "mark_spam", h.admin.MarkSpam)
}

func (h *AdminHandler) review(c *gin.Context, op string, mark func(context.Context, string) (*models.Conversation, error)) {
	conv, err := mark(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, h.log, op, err)
		return
	}
	c.JSON(http.StatusOK, conv)
}
