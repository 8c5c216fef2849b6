package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jobportal/backend/keywords"
	"github.com/jobportal/backend/models"
	"github.com/jobportal/backend/storage"
)

// DetectFiltersTool extracts an industry and a city from free text
type DetectFiltersTool struct {
	jobs storage.JobLookup
}

// NewDetectFiltersTool creates a new filter detection tool
func NewDetectFiltersTool(jobs storage.JobLookup) *DetectFiltersTool {
	return &DetectFiltersTool{jobs: jobs}
}

func (t *DetectFiltersTool) Name() string {
	return "detect_filters"
}

func (t *DetectFiltersTool) Description() string {
	return `Detect the job industry and city mentioned in a message.
The industry is resolved against the job board's industries by name, keyword bundle or skill.
The city is resolved against a fixed list of Vietnamese cities and their aliases.`
}

func (t *DetectFiltersTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"message": map[string]interface{}{
				"type":        "string",
				"description": "Free text to scan for an industry and a city",
			},
		},
		"required": []string{"message"},
	}
}

// DetectFiltersInput represents the input for filter detection
type DetectFiltersInput struct {
	Message string `json:"message"`
}

// DetectFiltersOutput holds the detected filters; absent ones are omitted
type DetectFiltersOutput struct {
	Industry *models.Industry `json:"industry,omitempty"`
	Location string           `json:"location,omitempty"`
}

func (t *DetectFiltersTool) Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in DetectFiltersInput
	if err := decodeInput(input, &in); err != nil {
		return NewErrorResult(fmt.Sprintf("invalid input: %v", err))
	}
	if strings.TrimSpace(in.Message) == "" {
		return NewErrorResult("message is required")
	}

	industries, err := t.jobs.Industries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load industries: %w", err)
	}
	skills, err := t.jobs.Skills(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load skills: %w", err)
	}

	var out DetectFiltersOutput
	if industry, ok := keywords.DetectIndustry(in.Message, industries, skills); ok {
		out.Industry = industry
	}
	if location, ok := keywords.DetectLocation(in.Message); ok {
		out.Location = location
	}
	return NewSuccessResult(out)
}
