package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"github.com/rs/zerolog"

	"github.com/jobportal/backend/config"
	"github.com/jobportal/backend/logger"
	"github.com/jobportal/backend/prompts"
)

// Client wraps the Vertex AI Gemini client
type Client struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string
	log       zerolog.Logger
}

// NewClient creates a new Gemini client
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	client, err := genai.NewClient(ctx, cfg.ProjectID, cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.GeminiModel)

	// Short friendly replies, some variety between them
	model.SetTemperature(0.6)
	model.SetTopP(0.9)
	model.SetMaxOutputTokens(1024)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(prompts.SystemInstruction)},
	}

	return &Client{
		client:    client,
		model:     model,
		modelName: cfg.GeminiModel,
		log:       logger.Component("Gemini"),
	}, nil
}

// Close closes the Gemini client
func (c *Client) Close() error {
	return c.client.Close()
}

// Name identifies the provider in logs
func (c *Client) Name() string {
	return "gemini:" + c.modelName
}

// ComposeReply asks Gemini to phrase a reply presenting the given jobs
func (c *Client) ComposeReply(ctx context.Context, message string, summaries []string) (string, error) {
	prompt := prompts.ReplyPrompt(message, summaries)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := strings.TrimSpace(extractText(resp))
	if text == "" {
		return "", errors.New("no response from Gemini")
	}

	c.log.Debug().Int("jobs", len(summaries)).Int("chars", len(text)).Msg("composed reply")
	return text, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String()
}
