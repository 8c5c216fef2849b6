package openaiclient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"github.com/jobportal/backend/config"
	"github.com/jobportal/backend/logger"
	"github.com/jobportal/backend/prompts"
	"github.com/jobportal/backend/utils"
)

// Client phrases chat replies with an OpenAI chat model
type Client struct {
	client *openai.Client
	model  string
	log    zerolog.Logger
}

// NewClient creates a new OpenAI client
func NewClient(cfg *config.Config) *Client {
	clientCfg := openai.DefaultConfig(cfg.OpenAIAPIKey)
	httpClient := utils.NewHTTPClient(time.Duration(cfg.HTTPTimeoutSeconds) * time.Second)
	httpClient.Transport = utils.UserAgentMiddleware(httpClient.Transport)
	clientCfg.HTTPClient = httpClient

	return &Client{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.OpenAIModel,
		log:    logger.Component("OpenAI"),
	}
}

// Name identifies the provider in logs
func (c *Client) Name() string {
	return "openai:" + c.model
}

// ComposeReply asks the model to phrase a reply presenting the given jobs
func (c *Client) ComposeReply(ctx context.Context, message string, summaries []string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompts.SystemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: prompts.ReplyPrompt(message, summaries)},
		},
		Temperature: 0.6,
		MaxTokens:   512,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in OpenAI response")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New("empty OpenAI response")
	}

	c.log.Debug().Int("jobs", len(summaries)).Int("total_tokens", resp.Usage.TotalTokens).Msg("composed reply")
	return text, nil
}
