package storage

import (
	"context"
	"errors"

	"github.com/jobportal/backend/models"
)

// ErrNotFound is returned when a conversation does not exist
var ErrNotFound = errors.New("not found")

// ChatStore persists conversations, their append-only message log and the
// carried-over search context
type ChatStore interface {
	CreateConversation(ctx context.Context, userID string) (*models.Conversation, error)
	GetConversation(ctx context.Context, conversationID string) (*models.Conversation, error)
	// ListConversations returns a user's conversations, newest first
	ListConversations(ctx context.Context, userID string) ([]models.Conversation, error)
	// ListAllConversations returns every conversation with its message count, newest first
	ListAllConversations(ctx context.Context) ([]models.Conversation, error)
	UpdateConversationStatus(ctx context.Context, conversationID string, status models.ConversationStatus) (*models.Conversation, error)
	// DeleteConversation removes the conversation, its messages and its context
	DeleteConversation(ctx context.Context, conversationID string) error

	AppendMessage(ctx context.Context, msg *models.Message) error
	// ListMessages returns the log oldest first
	ListMessages(ctx context.Context, conversationID string) ([]models.Message, error)
	CountMessages(ctx context.Context, conversationID string) (int, error)

	// GetContext returns the stored context, or a fresh one if none exists yet
	GetContext(ctx context.Context, conversationID string) (models.ChatContext, error)
	SaveContext(ctx context.Context, chatCtx models.ChatContext) error

	Close() error
}

// JobLookup reads job postings and the reference data used for keyword detection
type JobLookup interface {
	ByIndustry(ctx context.Context, industryID int64) ([]models.Job, error)
	ByLocation(ctx context.Context, location string) ([]models.Job, error)
	ByIndustryAndLocation(ctx context.Context, industryID int64, location string) ([]models.Job, error)
	// FallbackSearch matches free text against job titles and industry names
	FallbackSearch(ctx context.Context, text string) ([]models.Job, error)

	Industries(ctx context.Context) ([]models.Industry, error)
	Skills(ctx context.Context) ([]models.Skill, error)
}

// ImageResolver turns a stored job image reference into a URL clients can load
type ImageResolver interface {
	ResolveImage(ctx context.Context, ref string) string
}

// PassthroughImages returns image references unchanged
type PassthroughImages struct{}

// ResolveImage implements ImageResolver
func (PassthroughImages) ResolveImage(_ context.Context, ref string) string {
	return ref
}
