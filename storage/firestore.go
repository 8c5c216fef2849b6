package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jobportal/backend/config"
	"github.com/jobportal/backend/models"
)

const (
	conversationsCollection = "conversations"
	messagesCollection      = "messages"
	contextsCollection      = "chat_contexts"
)

type conversationDoc struct {
	UserID    string    `firestore:"userId"`
	Status    string    `firestore:"status"`
	CreatedAt time.Time `firestore:"createdAt"`
}

type messageDoc struct {
	UserID    string    `firestore:"userId"`
	Sender    string    `firestore:"sender"`
	Content   string    `firestore:"content"`
	Metadata  string    `firestore:"metadata"`
	CreatedAt time.Time `firestore:"createdAt"`
}

type contextDoc struct {
	LastIndustryID *int64    `firestore:"lastIndustryId"`
	LastLocation   string    `firestore:"lastLocation"`
	LastMessage    string    `firestore:"lastMessage"`
	LastShownIndex int64     `firestore:"lastShownIndex"`
	ShownJobIDs    []int64   `firestore:"shownJobIds"`
	UpdatedAt      time.Time `firestore:"updatedAt"`
}

// FirestoreChatStore implements ChatStore on Firestore. Messages live in a
// subcollection of their conversation; contexts in their own collection
// keyed by conversation id.
type FirestoreChatStore struct {
	client *firestore.Client
}

// NewFirestoreChatStore creates a new Firestore client
func NewFirestoreChatStore(ctx context.Context, cfg *config.Config) (*FirestoreChatStore, error) {
	client, err := firestore.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}

	return &FirestoreChatStore{client: client}, nil
}

// Close closes the Firestore client
func (f *FirestoreChatStore) Close() error {
	return f.client.Close()
}

func (f *FirestoreChatStore) conversationRef(id string) *firestore.DocumentRef {
	return f.client.Collection(conversationsCollection).Doc(id)
}

// CreateConversation starts a PENDING conversation for a user
func (f *FirestoreChatStore) CreateConversation(ctx context.Context, userID string) (*models.Conversation, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate conversation id: %w", err)
	}

	doc := conversationDoc{
		UserID:    userID,
		Status:    string(models.ConversationStatusPending),
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.conversationRef(id.String()).Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}

	conv := doc.toModel(id.String())
	return &conv, nil
}

// GetConversation loads a conversation by id
func (f *FirestoreChatStore) GetConversation(ctx context.Context, conversationID string) (*models.Conversation, error) {
	snap, err := f.conversationRef(conversationID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}

	var doc conversationDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse conversation data: %w", err)
	}

	conv := doc.toModel(snap.Ref.ID)
	return &conv, nil
}

// ListConversations returns a user's conversations, newest first
func (f *FirestoreChatStore) ListConversations(ctx context.Context, userID string) ([]models.Conversation, error) {
	query := f.client.Collection(conversationsCollection).
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc)
	return f.queryConversations(ctx, query, false)
}

// ListAllConversations returns every conversation with its message count
func (f *FirestoreChatStore) ListAllConversations(ctx context.Context) ([]models.Conversation, error) {
	query := f.client.Collection(conversationsCollection).OrderBy("createdAt", firestore.Desc)
	return f.queryConversations(ctx, query, true)
}

func (f *FirestoreChatStore) queryConversations(ctx context.Context, query firestore.Query, withCounts bool) ([]models.Conversation, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var convs []models.Conversation
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query conversations: %w", err)
		}

		var doc conversationDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("failed to parse conversation data: %w", err)
		}
		conv := doc.toModel(snap.Ref.ID)

		if withCounts {
			count, err := f.CountMessages(ctx, conv.ID)
			if err != nil {
				return nil, err
			}
			conv.MessageCount = count
		}
		convs = append(convs, conv)
	}

	if convs == nil {
		convs = []models.Conversation{}
	}
	return convs, nil
}

// UpdateConversationStatus sets the moderation status
func (f *FirestoreChatStore) UpdateConversationStatus(ctx context.Context, conversationID string, s models.ConversationStatus) (*models.Conversation, error) {
	_, err := f.conversationRef(conversationID).Update(ctx, []firestore.Update{
		{Path: "status", Value: string(s)},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update conversation status: %w", err)
	}
	return f.GetConversation(ctx, conversationID)
}

// DeleteConversation removes the conversation, its messages and its context
func (f *FirestoreChatStore) DeleteConversation(ctx context.Context, conversationID string) error {
	convRef := f.conversationRef(conversationID)
	if _, err := convRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get conversation: %w", err)
	}

	refs, err := convRef.Collection(messagesCollection).Select().Documents(ctx).GetAll()
	if err != nil {
		return fmt.Errorf("failed to list messages for delete: %w", err)
	}

	bw := f.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(refs)+2)
	enqueue := func(ref *firestore.DocumentRef) error {
		job, err := bw.Delete(ref)
		if err != nil {
			return err
		}
		jobs = append(jobs, job)
		return nil
	}

	for _, snap := range refs {
		if err := enqueue(snap.Ref); err != nil {
			bw.End()
			return fmt.Errorf("failed to enqueue message delete: %w", err)
		}
	}
	if err := enqueue(f.client.Collection(contextsCollection).Doc(conversationID)); err != nil {
		bw.End()
		return fmt.Errorf("failed to enqueue context delete: %w", err)
	}
	if err := enqueue(convRef); err != nil {
		bw.End()
		return fmt.Errorf("failed to enqueue conversation delete: %w", err)
	}
	bw.End()

	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return fmt.Errorf("failed to delete conversation: %w", err)
		}
	}
	return nil
}

// AppendMessage adds a message to the conversation's subcollection
func (f *FirestoreChatStore) AppendMessage(ctx context.Context, msg *models.Message) error {
	if err := prepareMessage(msg); err != nil {
		return err
	}

	doc := messageDoc{
		UserID:    msg.UserID,
		Sender:    msg.Sender,
		Content:   msg.Content,
		Metadata:  msg.Metadata,
		CreatedAt: msg.CreatedAt,
	}
	convRef := f.conversationRef(msg.ConversationID)
	msgRef := convRef.Collection(messagesCollection).Doc(msg.ID)

	// the parent read ties the write to the conversation still existing
	err := f.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(convRef); err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}
		return tx.Create(msgRef, doc)
	})
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	return nil
}

// ListMessages returns the log oldest first
func (f *FirestoreChatStore) ListMessages(ctx context.Context, conversationID string) ([]models.Message, error) {
	iter := f.conversationRef(conversationID).Collection(messagesCollection).
		OrderBy("createdAt", firestore.Asc).
		OrderBy(firestore.DocumentID, firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	msgs := []models.Message{}
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list messages: %w", err)
		}

		var doc messageDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("failed to parse message data: %w", err)
		}
		msgs = append(msgs, models.Message{
			ID:             snap.Ref.ID,
			ConversationID: conversationID,
			UserID:         doc.UserID,
			Sender:         doc.Sender,
			Content:        doc.Content,
			Metadata:       doc.Metadata,
			CreatedAt:      doc.CreatedAt,
		})
	}
	return msgs, nil
}

// CountMessages returns the length of a conversation's log
func (f *FirestoreChatStore) CountMessages(ctx context.Context, conversationID string) (int, error) {
	res, err := f.conversationRef(conversationID).Collection(messagesCollection).
		NewAggregationQuery().
		WithCount("count").
		Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}

	v, ok := res["count"].(*firestorepb.Value)
	if !ok {
		return 0, fmt.Errorf("unexpected count result %T", res["count"])
	}
	return int(v.GetIntegerValue()), nil
}

// GetContext returns the stored context or a fresh one
func (f *FirestoreChatStore) GetContext(ctx context.Context, conversationID string) (models.ChatContext, error) {
	snap, err := f.client.Collection(contextsCollection).Doc(conversationID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return models.NewChatContext(conversationID), nil
		}
		return models.ChatContext{}, fmt.Errorf("failed to get chat context: %w", err)
	}

	var doc contextDoc
	if err := snap.DataTo(&doc); err != nil {
		return models.ChatContext{}, fmt.Errorf("failed to parse chat context: %w", err)
	}

	return models.ChatContext{
		ConversationID: conversationID,
		LastIndustryID: doc.LastIndustryID,
		LastLocation:   doc.LastLocation,
		LastMessage:    doc.LastMessage,
		LastShownIndex: int(doc.LastShownIndex),
		ShownJobIDs:    doc.ShownJobIDs,
		UpdatedAt:      doc.UpdatedAt,
	}, nil
}

// SaveContext overwrites the context of a conversation
func (f *FirestoreChatStore) SaveContext(ctx context.Context, chatCtx models.ChatContext) error {
	doc := contextDoc{
		LastIndustryID: chatCtx.LastIndustryID,
		LastLocation:   chatCtx.LastLocation,
		LastMessage:    chatCtx.LastMessage,
		LastShownIndex: int64(chatCtx.LastShownIndex),
		ShownJobIDs:    chatCtx.ShownJobIDs,
		UpdatedAt:      time.Now().UTC(),
	}
	if _, err := f.client.Collection(contextsCollection).Doc(chatCtx.ConversationID).Set(ctx, doc); err != nil {
		return fmt.Errorf("failed to save chat context: %w", err)
	}
	return nil
}

func (d conversationDoc) toModel(id string) models.Conversation {
	return models.Conversation{
		ID:        id,
		UserID:    d.UserID,
		Status:    models.ConversationStatus(d.Status),
		CreatedAt: d.CreatedAt,
	}
}
