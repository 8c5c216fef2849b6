package agent

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jobportal/backend/logger"
	"github.com/jobportal/backend/models"
	"github.com/jobportal/backend/notify"
	"github.com/jobportal/backend/storage"
)

// Notifier pushes events to connected users
type Notifier interface {
	Send(userID string, evt notify.Event) bool
}

// ChatAdmin is the moderation view over all conversations
type ChatAdmin struct {
	store    storage.ChatStore
	notifier Notifier
	agent    *ChatAgent
	log      zerolog.Logger
}

// NewChatAdmin creates the admin service. notifier may be nil.
func NewChatAdmin(store storage.ChatStore, chatAgent *ChatAgent, notifier Notifier) *ChatAdmin {
	return &ChatAdmin{
		store:    store,
		notifier: notifier,
		agent:    chatAgent,
		log:      logger.Component("ChatAdmin"),
	}
}

// ListConversations returns every conversation with its message count
func (s *ChatAdmin) ListConversations(ctx context.Context) ([]models.Conversation, error) {
	return s.store.ListAllConversations(ctx)
}

// ConversationDetail returns a conversation with its full log
func (s *ChatAdmin) ConversationDetail(ctx context.Context, conversationID string) (*models.ConversationDetailResponse, error) {
	conv, err := s.store.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	msgs, err := s.agent.GetMessages(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	conv.MessageCount = len(msgs)
	return &models.ConversationDetailResponse{Conversation: *conv, Messages: msgs}, nil
}

// MarkUseful flags a conversation as useful and tells its owner
func (s *ChatAdmin) MarkUseful(ctx context.Context, conversationID string) (*models.Conversation, error) {
	return s.setStatus(ctx, conversationID, models.ConversationStatusUseful, reviewedUsefulText)
}

// MarkSpam flags a conversation as spam and tells its owner
func (s *ChatAdmin) MarkSpam(ctx context.Context, conversationID string) (*models.Conversation, error) {
	return s.setStatus(ctx, conversationID, models.ConversationStatusSpam, reviewedSpamText)
}

func (s *ChatAdmin) setStatus(ctx context.Context, conversationID string, status models.ConversationStatus, text string) (*models.Conversation, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid conversation status %q", status)
	}

	conv, err := s.store.UpdateConversationStatus(ctx, conversationID, status)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("conversation_id", conv.ID).Str("status", string(status)).Msg("conversation reviewed")

	if s.notifier != nil && conv.UserID != "" {
		delivered := s.notifier.Send(conv.UserID, notify.NewEvent(notify.TypeConversationReviewed, reviewedTitle, text))
		s.log.Debug().Str("user_id", conv.UserID).Bool("delivered", delivered).Msg("review notification")
	}
	return conv, nil
}
