package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jobportal/backend/models"
)

type conversationRow struct {
	ID        string `gorm:"primaryKey"`
	UserID    string
	Status    string
	CreatedAt time.Time
}

func (conversationRow) TableName() string { return "chat_conversations" }

type conversationCountRow struct {
	conversationRow
	MessageCount int64
}

type messageRow struct {
	ID             string `gorm:"primaryKey"`
	ConversationID string
	UserID         string
	Sender         string
	Content        string
	Metadata       string
	CreatedAt      time.Time
}

func (messageRow) TableName() string { return "chat_messages" }

type chatContextRow struct {
	ConversationID string `gorm:"primaryKey"`
	LastIndustryID *int64
	LastLocation   string
	LastMessage    string
	LastShownIndex int
	ShownJobIDs    string `gorm:"column:shown_job_ids"`
	UpdatedAt      time.Time
}

func (chatContextRow) TableName() string { return "chat_contexts" }

// PostgresChatStore implements ChatStore on the job board's Postgres database
type PostgresChatStore struct {
	db *gorm.DB
}

// NewPostgresChatStore creates a chat store over an open connection
func NewPostgresChatStore(db *gorm.DB) *PostgresChatStore {
	return &PostgresChatStore{db: db}
}

// Close is a no-op; the pool is shared with the job lookup and closed by its owner
func (s *PostgresChatStore) Close() error {
	return nil
}

// CreateConversation starts a PENDING conversation for a user
func (s *PostgresChatStore) CreateConversation(ctx context.Context, userID string) (*models.Conversation, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate conversation id: %w", err)
	}

	row := conversationRow{
		ID:        id.String(),
		UserID:    userID,
		Status:    string(models.ConversationStatusPending),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}

	conv := row.toModel()
	return &conv, nil
}

// GetConversation loads a conversation by id
func (s *PostgresChatStore) GetConversation(ctx context.Context, conversationID string) (*models.Conversation, error) {
	var row conversationRow
	err := s.db.WithContext(ctx).First(&row, "id = ?", conversationID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}

	conv := row.toModel()
	return &conv, nil
}

// ListConversations returns a user's conversations, newest first
func (s *PostgresChatStore) ListConversations(ctx context.Context, userID string) ([]models.Conversation, error) {
	var rows []conversationRow
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}

	convs := make([]models.Conversation, 0, len(rows))
	for _, row := range rows {
		convs = append(convs, row.toModel())
	}
	return convs, nil
}

// ListAllConversations returns every conversation with its message count
func (s *PostgresChatStore) ListAllConversations(ctx context.Context) ([]models.Conversation, error) {
	var rows []conversationCountRow
	err := s.db.WithContext(ctx).
		Table("chat_conversations AS c").
		Select("c.id, c.user_id, c.status, c.created_at, COUNT(m.id) AS message_count").
		Joins("LEFT JOIN chat_messages AS m ON m.conversation_id = c.id").
		Group("c.id").
		Order("c.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list all conversations: %w", err)
	}

	convs := make([]models.Conversation, 0, len(rows))
	for _, row := range rows {
		conv := row.conversationRow.toModel()
		conv.MessageCount = int(row.MessageCount)
		convs = append(convs, conv)
	}
	return convs, nil
}

// UpdateConversationStatus sets the moderation status
func (s *PostgresChatStore) UpdateConversationStatus(ctx context.Context, conversationID string, status models.ConversationStatus) (*models.Conversation, error) {
	res := s.db.WithContext(ctx).
		Model(&conversationRow{}).
		Where("id = ?", conversationID).
		Update("status", string(status))
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update conversation status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetConversation(ctx, conversationID)
}

// DeleteConversation removes a conversation; messages and context cascade
func (s *PostgresChatStore) DeleteConversation(ctx context.Context, conversationID string) error {
	res := s.db.WithContext(ctx).Where("id = ?", conversationID).Delete(&conversationRow{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete conversation: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AppendMessage adds a message to the log, filling in id and timestamp
func (s *PostgresChatStore) AppendMessage(ctx context.Context, msg *models.Message) error {
	if err := prepareMessage(msg); err != nil {
		return err
	}

	row := messageRow{
		ID:             msg.ID,
		ConversationID: msg.ConversationID,
		UserID:         msg.UserID,
		Sender:         msg.Sender,
		Content:        msg.Content,
		Metadata:       msg.Metadata,
		CreatedAt:      msg.CreatedAt,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	return nil
}

// ListMessages returns the log oldest first
func (s *PostgresChatStore) ListMessages(ctx context.Context, conversationID string) ([]models.Message, error) {
	var rows []messageRow
	err := s.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	msgs := make([]models.Message, 0, len(rows))
	for _, row := range rows {
		msgs = append(msgs, models.Message{
			ID:             row.ID,
			ConversationID: row.ConversationID,
			UserID:         row.UserID,
			Sender:         row.Sender,
			Content:        row.Content,
			Metadata:       row.Metadata,
			CreatedAt:      row.CreatedAt,
		})
	}
	return msgs, nil
}

// CountMessages returns the length of a conversation's log
func (s *PostgresChatStore) CountMessages(ctx context.Context, conversationID string) (int, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&messageRow{}).
		Where("conversation_id = ?", conversationID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return int(count), nil
}

// GetContext returns the stored context or a fresh one
func (s *PostgresChatStore) GetContext(ctx context.Context, conversationID string) (models.ChatContext, error) {
	var row chatContextRow
	err := s.db.WithContext(ctx).First(&row, "conversation_id = ?", conversationID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewChatContext(conversationID), nil
	}
	if err != nil {
		return models.ChatContext{}, fmt.Errorf("failed to get chat context: %w", err)
	}

	shown, err := decodeJobIDs(row.ShownJobIDs)
	if err != nil {
		return models.ChatContext{}, fmt.Errorf("failed to decode shown job ids: %w", err)
	}

	return models.ChatContext{
		ConversationID: row.ConversationID,
		LastIndustryID: row.LastIndustryID,
		LastLocation:   row.LastLocation,
		LastMessage:    row.LastMessage,
		LastShownIndex: row.LastShownIndex,
		ShownJobIDs:    shown,
		UpdatedAt:      row.UpdatedAt,
	}, nil
}

// SaveContext upserts the context of a conversation
func (s *PostgresChatStore) SaveContext(ctx context.Context, chatCtx models.ChatContext) error {
	row := chatContextRow{
		ConversationID: chatCtx.ConversationID,
		LastIndustryID: chatCtx.LastIndustryID,
		LastLocation:   chatCtx.LastLocation,
		LastMessage:    chatCtx.LastMessage,
		LastShownIndex: chatCtx.LastShownIndex,
		ShownJobIDs:    encodeJobIDs(chatCtx.ShownJobIDs),
		UpdatedAt:      time.Now().UTC(),
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "conversation_id"}},
			UpdateAll: true,
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save chat context: %w", err)
	}
	return nil
}

func (r conversationRow) toModel() models.Conversation {
	return models.Conversation{
		ID:        r.ID,
		UserID:    r.UserID,
		Status:    models.ConversationStatus(r.Status),
		CreatedAt: r.CreatedAt,
	}
}

// prepareMessage assigns a time-ordered id and a timestamp when missing
func prepareMessage(msg *models.Message) error {
	if msg.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate message id: %w", err)
		}
		msg.ID = id.String()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	return nil
}

func encodeJobIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

func decodeJobIDs(raw string) ([]int64, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
