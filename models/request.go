package models

import "time"

// SendMessageRequest represents the API request for a chat message
// @Description Chat message sent to the job assistant
type SendMessageRequest struct {
	ConversationID string `json:"conversationId,omitempty" example:"0190f3a4-6c1e-7bd2-9a55-3f2f7c1d2e10"`
	Message        string `json:"message" binding:"required" example:"tìm job IT ở Hà Nội"`
}

// SendMessageResponse represents the assistant reply
// @Description Assistant reply with job suggestions
type SendMessageResponse struct {
	Reply          string          `json:"reply" example:"Dưới đây là danh sách các job phù hợp với yêu cầu của bạn 👇"`
	Jobs           []JobSuggestion `json:"jobs"`
	ConversationID string          `json:"conversationId"`
}

// MessageResponse is a chat log entry with decoded job suggestions
// @Description Chat message
type MessageResponse struct {
	Sender    string          `json:"sender" example:"assistant"`
	Content   string          `json:"content"`
	CreatedAt time.Time       `json:"createdAt"`
	Jobs      []JobSuggestion `json:"jobs,omitempty"`
}

// ConversationDetailResponse is a conversation with its full message log
// @Description Conversation with messages (admin view)
type ConversationDetailResponse struct {
	Conversation
	Messages []MessageResponse `json:"messages"`
}

// ErrorResponse represents an API error response
// @Description Standard error response
type ErrorResponse struct {
	Error   string `json:"error" example:"Invalid request body"`
	Code    int    `json:"code" example:"400"`
	Details string `json:"details,omitempty" example:"message is required"`
}

// HealthResponse represents health check response
// @Description Server health status
type HealthResponse struct {
	Status    string `json:"status" example:"healthy"`
	Version   string `json:"version" example:"1.0.0"`
	Timestamp string `json:"timestamp" example:"2024-01-15T10:30:00Z"`
}
