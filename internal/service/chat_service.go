package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/farouk/portfolio-relay/internal/prompt"
)

// Completer produces a single completion for one user message under a
// system prompt.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userMessage string, maxTokens int) (string, error)
}

// ChatService answers visitor questions with the portfolio system prompt
type ChatService struct {
	completer Completer
	prompt    prompt.Prompt
	maxTokens int
	timeout   time.Duration
}

// NewChatService creates a chat service
func NewChatService(completer Completer, p prompt.Prompt, maxTokens int, timeout time.Duration) *ChatService {
	return &ChatService{
		completer: completer,
		prompt:    p,
		maxTokens: maxTokens,
		timeout:   timeout,
	}
}

// Reply sends message with the system prompt and returns the completion text.
// No history is kept between calls.
func (s *ChatService) Reply(ctx context.Context, message string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	text, err := s.completer.Complete(ctx, s.prompt.String(), message, s.maxTokens)
	if err != nil {
		return "", wrapProvider("chat", err)
	}
	return text, nil
}

// OpenAIConfig configures an OpenAI-compatible chat completion endpoint
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// OpenAICompleter calls the chat/completions API of any OpenAI-compatible host
type OpenAICompleter struct {
	client *openai.Client
	model  string
	apiKey string
}

// NewOpenAICompleter creates a completer for cfg
func NewOpenAICompleter(cfg OpenAIConfig) *OpenAICompleter {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	clientConfig.HTTPClient = &http.Client{Timeout: timeout}

	return &OpenAICompleter{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
		apiKey: cfg.APIKey,
	}
}

// Complete sends a two-message conversation and returns the top choice
func (c *OpenAICompleter) Complete(ctx context.Context, systemPrompt, userMessage string, maxTokens int) (string, error) {
	if c.apiKey == "" {
		return "", ErrChatNotConfigured
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userMessage},
		},
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyCompletion
	}
	return content, nil
}
