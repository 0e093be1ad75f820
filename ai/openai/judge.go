package openai

import (
	"context"
	"log/slog"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/maivenlabs/relevancy/ai"
)

// Judge implements ai.Judge using OpenAI-compatible chat completion APIs.
type Judge struct {
	client      llms.Model
	temperature float64
	maxTokens   int
	logger      *slog.Logger
}

// newJudge is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newJudge(config *ai.Config) (*Judge, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that don't
	// require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.JudgeHost),
		openai.WithToken("none"),
		openai.WithModel(config.JudgeModel),
	)
	if err != nil {
		return nil, err
	}

	return &Judge{
		client:      client,
		temperature: config.JudgeTemperature,
		maxTokens:   config.JudgeMaxTokens,
		logger:      slog.Default().With("component", "openai-judge"),
	}, nil
}

// NewJudge creates a new judge using the provided configuration.
//
// Returns ai.Judge interface to enforce abstraction.
func NewJudge(config *ai.Config) (ai.Judge, error) {
	return newJudge(config)
}

// Complete sends a prompt to the judge model and returns its raw text
// response. The response is returned as-is: tolerating malformed judge
// output is the caller's concern, not the transport's.
func (j *Judge) Complete(ctx context.Context, prompt string) (string, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
			},
		},
	}

	response, err := j.client.GenerateContent(ctx, content,
		llms.WithTemperature(j.temperature),
		llms.WithMaxTokens(j.maxTokens),
	)
	if err != nil {
		j.logger.Error("judge call failed", "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		j.logger.Warn("judge returned no choices")
		return "", nil
	}

	return response.Choices[0].Content, nil
}
