package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jobportal/backend/keywords"
)

// ClassifyIntentTool exposes the chat intent classifier
type ClassifyIntentTool struct{}

// NewClassifyIntentTool creates a new intent classification tool
func NewClassifyIntentTool() *ClassifyIntentTool {
	return &ClassifyIntentTool{}
}

func (t *ClassifyIntentTool) Name() string {
	return "classify_intent"
}

func (t *ClassifyIntentTool) Description() string {
	return `Classify a job-seeker chat message into one of: thanks, goodbye, show_more, greeting, search.
Matching is keyword based and case-insensitive. Returns the intent and whether it is answered
without a job lookup.`
}

func (t *ClassifyIntentTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"message": map[string]interface{}{
				"type":        "string",
				"description": "The chat message to classify",
			},
		},
		"required": []string{"message"},
	}
}

// ClassifyIntentInput represents the input for intent classification
type ClassifyIntentInput struct {
	Message string `json:"message"`
}

// ClassifyIntentOutput represents the classified intent
type ClassifyIntentOutput struct {
	Intent   keywords.Intent `json:"intent"`
	FastPath bool            `json:"fastPath"`
}

func (t *ClassifyIntentTool) Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in ClassifyIntentInput
	if err := decodeInput(input, &in); err != nil {
		return NewErrorResult(fmt.Sprintf("invalid input: %v", err))
	}
	if strings.TrimSpace(in.Message) == "" {
		return NewErrorResult("message is required")
	}

	intent := keywords.Classify(in.Message)
	return NewSuccessResult(ClassifyIntentOutput{
		Intent:   intent,
		FastPath: intent.IsFastPath(),
	})
}
