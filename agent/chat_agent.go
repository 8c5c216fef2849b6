package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jobportal/backend/keywords"
	"github.com/jobportal/backend/logger"
	"github.com/jobportal/backend/metrics"
	"github.com/jobportal/backend/models"
	"github.com/jobportal/backend/storage"
)

// PageSize is the number of jobs shown per reply
const PageSize = 5

// ErrForbidden is returned when a user writes to someone else's conversation
var ErrForbidden = errors.New("conversation belongs to another user")

// ChatAgent answers chat messages with job suggestions. It keeps per
// conversation search context so follow-ups can refine or page through
// earlier results.
type ChatAgent struct {
	store    storage.ChatStore
	jobs     storage.JobLookup
	composer *Composer
	images   storage.ImageResolver
	locks    *keyedMutex
	log      zerolog.Logger
}

// NewChatAgent creates a new chat agent. images may be nil.
func NewChatAgent(store storage.ChatStore, jobs storage.JobLookup, composer *Composer, images storage.ImageResolver) *ChatAgent {
	if images == nil {
		images = storage.PassthroughImages{}
	}
	return &ChatAgent{
		store:    store,
		jobs:     jobs,
		composer: composer,
		images:   images,
		locks:    newKeyedMutex(),
		log:      logger.Component("Agent"),
	}
}

// SendMessageInput is one inbound chat message
type SendMessageInput struct {
	ConversationID string
	UserID         string
	Message        string
}

// SendMessageOutput is the assistant's answer
type SendMessageOutput struct {
	Reply          string
	Jobs           []models.JobSuggestion
	ConversationID string
	Intent         keywords.Intent
}

// turn carries the state of one SendMessage call between steps
type turn struct {
	conv    *models.Conversation
	userID  string
	raw     string
	chatCtx models.ChatContext
}

// CreateConversation starts a new conversation for a user
func (a *ChatAgent) CreateConversation(ctx context.Context, userID string) (*models.Conversation, error) {
	conv, err := a.store.CreateConversation(ctx, userID)
	if err != nil {
		return nil, err
	}
	a.log.Info().Str("conversation_id", conv.ID).Str("user_id", userID).Msg("conversation created")
	return conv, nil
}

// Conversation loads a conversation, storage.ErrNotFound if unknown
func (a *ChatAgent) Conversation(ctx context.Context, conversationID string) (*models.Conversation, error) {
	return a.store.GetConversation(ctx, conversationID)
}

// ListConversations returns a user's conversations, newest first
func (a *ChatAgent) ListConversations(ctx context.Context, userID string) ([]models.Conversation, error) {
	return a.store.ListConversations(ctx, userID)
}

// GetMessages returns a conversation's log oldest first with decoded job suggestions
func (a *ChatAgent) GetMessages(ctx context.Context, conversationID string) ([]models.MessageResponse, error) {
	if _, err := a.store.GetConversation(ctx, conversationID); err != nil {
		return nil, err
	}

	msgs, err := a.store.ListMessages(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	return a.toMessageResponses(ctx, msgs), nil
}

// DeleteConversation removes a conversation with its log and context
func (a *ChatAgent) DeleteConversation(ctx context.Context, conversationID string) error {
	unlock := a.locks.Lock(conversationID)
	defer unlock()

	if err := a.store.DeleteConversation(ctx, conversationID); err != nil {
		return err
	}
	a.log.Info().Str("conversation_id", conversationID).Msg("conversation deleted")
	return nil
}

// SendMessage handles one user message. Exactly one user and one assistant
// message are appended to the log unless a collaborator fails.
func (a *ChatAgent) SendMessage(ctx context.Context, input SendMessageInput) (*SendMessageOutput, error) {
	raw := strings.TrimSpace(input.Message)
	if raw == "" {
		return nil, errors.New("message is empty")
	}

	conv, unlock, err := a.lockConversation(ctx, input)
	if err != nil {
		return nil, err
	}
	defer unlock()

	chatCtx, err := a.store.GetContext(ctx, conv.ID)
	if err != nil {
		return nil, err
	}

	if err := a.appendMessage(ctx, conv.ID, input.UserID, models.SenderUser, raw, nil); err != nil {
		return nil, err
	}

	t := &turn{conv: conv, userID: input.UserID, raw: raw, chatCtx: chatCtx}

	intent := keywords.Classify(raw)
	metrics.MessagesTotal.WithLabelValues(string(intent)).Inc()
	a.log.Info().
		Str("conversation_id", conv.ID).
		Str("intent", string(intent)).
		Msg("message received")

	var out *SendMessageOutput
	switch {
	case intent == keywords.IntentThanks:
		out, err = a.fastPath(ctx, t, ReplyThanks)
	case intent == keywords.IntentGoodbye:
		out, err = a.fastPath(ctx, t, ReplyGoodbye)
	default:
		if err = a.resolveFilters(ctx, t); err != nil {
			return nil, err
		}
		if intent == keywords.IntentShowMore {
			out, err = a.showMore(ctx, t)
		} else {
			out, err = a.search(ctx, t)
		}
	}
	if err != nil {
		return nil, err
	}

	out.Intent = intent
	return out, nil
}

// lockConversation holds the conversation lock while the conversation is
// loaded, so a concurrent delete either finishes first or waits for the turn.
func (a *ChatAgent) lockConversation(ctx context.Context, input SendMessageInput) (*models.Conversation, func(), error) {
	if input.ConversationID == "" {
		conv, err := a.CreateConversation(ctx, input.UserID)
		if err != nil {
			return nil, nil, err
		}
		return conv, a.locks.Lock(conv.ID), nil
	}

	unlock := a.locks.Lock(input.ConversationID)
	conv, err := a.store.GetConversation(ctx, input.ConversationID)
	if err != nil {
		unlock()
		return nil, nil, err
	}
	if conv.UserID != input.UserID {
		unlock()
		return nil, nil, ErrForbidden
	}
	return conv, unlock, nil
}

// fastPath answers thanks and goodbye without touching job data
func (a *ChatAgent) fastPath(ctx context.Context, t *turn, reply string) (*SendMessageOutput, error) {
	t.chatCtx = t.chatCtx.WithMessage(t.raw)
	if err := a.store.SaveContext(ctx, t.chatCtx); err != nil {
		return nil, err
	}
	return a.reply(ctx, t, reply, nil)
}

// resolveFilters detects industry and location in the message and merges
// them into the stored context, which is saved before any lookup
func (a *ChatAgent) resolveFilters(ctx context.Context, t *turn) error {
	industries, err := a.jobs.Industries(ctx)
	if err != nil {
		return a.lookupFailed(err)
	}
	skills, err := a.jobs.Skills(ctx)
	if err != nil {
		return a.lookupFailed(err)
	}

	if industry, ok := keywords.DetectIndustry(t.raw, industries, skills); ok {
		t.chatCtx = t.chatCtx.WithIndustry(industry.ID)
	}
	if location, ok := keywords.DetectLocation(t.raw); ok {
		t.chatCtx = t.chatCtx.WithLocation(location)
	}
	t.chatCtx = t.chatCtx.WithMessage(t.raw)

	return a.store.SaveContext(ctx, t.chatCtx)
}

// showMore pages through the full job list of the context's industry
func (a *ChatAgent) showMore(ctx context.Context, t *turn) (*SendMessageOutput, error) {
	if !t.chatCtx.HasIndustry() {
		return a.reply(ctx, t, ReplyShowMoreAsk, nil)
	}

	all, err := a.jobs.ByIndustry(ctx, *t.chatCtx.LastIndustryID)
	if err != nil {
		return nil, a.lookupFailed(err)
	}

	start := t.chatCtx.LastShownIndex
	if start >= len(all) {
		return a.reply(ctx, t, ReplyShowMoreDone, nil)
	}

	end := min(start+PageSize, len(all))
	page := all[start:end]

	t.chatCtx = t.chatCtx.Advance(end, models.JobIDs(page))
	if err := a.store.SaveContext(ctx, t.chatCtx); err != nil {
		return nil, err
	}
	return a.reply(ctx, t, ReplyShowMorePage, page)
}

// search runs the lookup that matches the resolved filters
func (a *ChatAgent) search(ctx context.Context, t *turn) (*SendMessageOutput, error) {
	var (
		found []models.Job
		err   error
	)

	industryID := t.chatCtx.LastIndustryID
	location := t.chatCtx.LastLocation
	switch {
	case industryID != nil && location != "":
		found, err = a.jobs.ByIndustryAndLocation(ctx, *industryID, location)
	case industryID != nil:
		found, err = a.jobs.ByIndustry(ctx, *industryID)
	case location != "":
		found, err = a.jobs.ByLocation(ctx, location)
	default:
		found, err = a.jobs.FallbackSearch(ctx, t.raw)
	}
	if err != nil {
		return nil, a.lookupFailed(err)
	}

	if len(found) == 0 {
		reply := ReplyNoMatch
		if keywords.IsGreeting(t.raw) {
			reply = ReplyGreeting
		}
		return a.reply(ctx, t, reply, nil)
	}

	page := found
	if len(page) > PageSize {
		page = page[:PageSize]
	}

	// an industry-only search shows the head of the list show-more pages through
	if industryID != nil && location == "" {
		t.chatCtx = t.chatCtx.StartPage(models.JobIDs(page))
		if err := a.store.SaveContext(ctx, t.chatCtx); err != nil {
			return nil, err
		}
	}

	return a.reply(ctx, t, a.composer.Compose(ctx, t.raw, page), page)
}

// reply appends the assistant message and builds the output
func (a *ChatAgent) reply(ctx context.Context, t *turn, text string, jobs []models.Job) (*SendMessageOutput, error) {
	suggestions := models.NewJobSuggestions(jobs)
	if err := a.appendMessage(ctx, t.conv.ID, t.userID, models.SenderAssistant, text, suggestions); err != nil {
		return nil, err
	}

	return &SendMessageOutput{
		Reply:          text,
		Jobs:           a.resolveImages(ctx, suggestions),
		ConversationID: t.conv.ID,
	}, nil
}

func (a *ChatAgent) appendMessage(ctx context.Context, conversationID, userID, sender, content string, suggestions []models.JobSuggestion) error {
	metadata, err := models.EncodeSuggestions(suggestions)
	if err != nil {
		return fmt.Errorf("failed to encode job suggestions: %w", err)
	}

	return a.store.AppendMessage(ctx, &models.Message{
		ConversationID: conversationID,
		UserID:         userID,
		Sender:         sender,
		Content:        content,
		Metadata:       metadata,
	})
}

func (a *ChatAgent) lookupFailed(err error) error {
	metrics.JobLookupErrorsTotal.Inc()
	return fmt.Errorf("job lookup failed: %w", err)
}

// resolveImages returns a copy with client-loadable image URLs
func (a *ChatAgent) resolveImages(ctx context.Context, suggestions []models.JobSuggestion) []models.JobSuggestion {
	out := make([]models.JobSuggestion, len(suggestions))
	for i, s := range suggestions {
		if s.JobIMG != "" {
			s.JobIMG = a.images.ResolveImage(ctx, s.JobIMG)
		}
		out[i] = s
	}
	return out
}

func (a *ChatAgent) toMessageResponses(ctx context.Context, msgs []models.Message) []models.MessageResponse {
	out := make([]models.MessageResponse, 0, len(msgs))
	for _, m := range msgs {
		suggestions, err := models.DecodeSuggestions(m.Metadata)
		if err != nil {
			a.log.Warn().Err(err).Str("message_id", m.ID).Msg("failed to decode message metadata")
			suggestions = nil
		}
		resp := models.MessageResponse{
			Sender:    m.Sender,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		}
		if len(suggestions) > 0 {
			resp.Jobs = a.resolveImages(ctx, suggestions)
		}
		out = append(out, resp)
	}
	return out
}
