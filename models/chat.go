package models

import (
	"encoding/json"
	"time"
)

// ConversationStatus is the moderation state of a conversation
type ConversationStatus string

const (
	ConversationStatusPending ConversationStatus = "PENDING"
	ConversationStatusUseful  ConversationStatus = "USEFUL"
	ConversationStatusSpam    ConversationStatus = "SPAM"
)

// IsValid reports whether s is a known status
func (s ConversationStatus) IsValid() bool {
	switch s {
	case ConversationStatusPending, ConversationStatusUseful, ConversationStatusSpam:
		return true
	}
	return false
}

// Sender values for chat messages
const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)

// Conversation is a chat session owned by a user
// @Description Chat conversation summary
type Conversation struct {
	ID           string             `json:"id" example:"0190f3a4-6c1e-7bd2-9a55-3f2f7c1d2e10"`
	UserID       string             `json:"userId" example:"42"`
	Status       ConversationStatus `json:"status" example:"PENDING"`
	CreatedAt    time.Time          `json:"createdAt"`
	MessageCount int                `json:"messageCount,omitempty"`
}

// Message is an append-only chat log entry
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	UserID         string    `json:"userId,omitempty"`
	Sender         string    `json:"sender"`
	Content        string    `json:"content"`
	Metadata       string    `json:"-"` // JSON array of JobSuggestion, empty when none
	CreatedAt      time.Time `json:"createdAt"`
}

// EncodeSuggestions serializes job suggestions for message metadata.
// An empty list encodes to the empty string (no metadata).
func EncodeSuggestions(suggestions []JobSuggestion) (string, error) {
	if len(suggestions) == 0 {
		return "", nil
	}
	data, err := json.Marshal(suggestions)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeSuggestions parses message metadata back into job suggestions
func DecodeSuggestions(metadata string) ([]JobSuggestion, error) {
	if metadata == "" {
		return nil, nil
	}
	var suggestions []JobSuggestion
	if err := json.Unmarshal([]byte(metadata), &suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}

// ChatContext is the carried-over search state of one conversation.
// Methods never mutate the receiver; each returns the updated copy.
type ChatContext struct {
	ConversationID string    `json:"conversationId"`
	LastIndustryID *int64    `json:"lastIndustryId,omitempty"`
	LastLocation   string    `json:"lastLocation,omitempty"`
	LastMessage    string    `json:"lastMessage,omitempty"`
	LastShownIndex int       `json:"lastShownIndex"`
	ShownJobIDs    []int64   `json:"shownJobIds,omitempty"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// NewChatContext creates an empty context for a conversation
func NewChatContext(conversationID string) ChatContext {
	return ChatContext{ConversationID: conversationID}
}

// HasIndustry reports whether an industry has been resolved
func (c ChatContext) HasIndustry() bool {
	return c.LastIndustryID != nil
}

// HasLocation reports whether a location has been resolved
func (c ChatContext) HasLocation() bool {
	return c.LastLocation != ""
}

// WithIndustry stores an industry. Pagination restarts when it differs
// from the stored one.
func (c ChatContext) WithIndustry(industryID int64) ChatContext {
	if c.LastIndustryID == nil || *c.LastIndustryID != industryID {
		c.LastShownIndex = 0
		c.ShownJobIDs = nil
	}
	id := industryID
	c.LastIndustryID = &id
	return c
}

// WithLocation stores a location; the cursor is industry-scoped and untouched
func (c ChatContext) WithLocation(location string) ChatContext {
	c.LastLocation = location
	return c
}

// WithMessage records the last inbound message
func (c ChatContext) WithMessage(message string) ChatContext {
	c.LastMessage = message
	return c
}

// Advance moves the pagination cursor to end and records the shown jobs.
// The cursor never moves backwards.
func (c ChatContext) Advance(end int, shown []int64) ChatContext {
	if end > c.LastShownIndex {
		c.LastShownIndex = end
	}
	ids := make([]int64, 0, len(c.ShownJobIDs)+len(shown))
	ids = append(ids, c.ShownJobIDs...)
	ids = append(ids, shown...)
	c.ShownJobIDs = ids
	return c
}

// StartPage resets the cursor to the first page of a fresh search
// and records the jobs it showed.
func (c ChatContext) StartPage(shown []int64) ChatContext {
	c.LastShownIndex = len(shown)
	c.ShownJobIDs = append([]int64(nil), shown...)
	return c
}
