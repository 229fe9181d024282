// Package narrative renders metrics reports into the fixed analysis prompt
// and hands it to an external language model for prose generation. The
// metrics computation never depends on this package; the generator is an
// outbound collaborator with its own timeout policy.
package narrative

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Generator produces prose from a rendered analysis prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// OpenAIGenerator is the chat-completions implementation of Generator.
type OpenAIGenerator struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	timeout     time.Duration
	logger      *slog.Logger
}

// GeneratorOptions configures the OpenAI-backed generator.
type GeneratorOptions struct {
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// NewOpenAIGenerator creates a generator with the given options. Model,
// token budget, and timeout fall back to sane defaults when zero.
func NewOpenAIGenerator(opts GeneratorOptions, logger *slog.Logger) (*OpenAIGenerator, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("narrative generator requires an API key")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Model == "" {
		opts.Model = openai.GPT4oMini
	}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = 2000
	}
	if opts.Timeout == 0 {
		opts.Timeout = 60 * time.Second
	}
	return &OpenAIGenerator{
		client:      openai.NewClient(opts.APIKey),
		model:       opts.Model,
		temperature: opts.Temperature,
		maxTokens:   opts.MaxTokens,
		timeout:     opts.Timeout,
		logger:      logger,
	}, nil
}

// Generate sends the prompt to the chat-completions API and returns the
// generated analysis text. The call is atomic from the engine's point of
// view: one request, one timeout, no internal retries.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	g.logger.InfoContext(ctx, "narrative generated",
		"model", g.model,
		"duration", time.Since(start),
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
	)
	return resp.Choices[0].Message.Content, nil
}
