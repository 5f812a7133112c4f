package openaiChat

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/physai/bookrag/internal/config"
	"github.com/physai/bookrag/pkg/logger_i"
)

type Client struct {
	api       openai.Client
	modelName string
	logger    *logger_i.Logger
}

func New(apiKey string) *Client {
	logger := logger_i.NewLogger("llm_openai")
	logger.Info("OpenAI chat client created", "model", config.OpenAIChatModel)
	return &Client{
		api:       openai.NewClient(option.WithAPIKey(apiKey)),
		modelName: config.OpenAIChatModel,
		logger:    logger,
	}
}

func (c *Client) Complete(ctx context.Context, systemInstruction string, userMessage string) (string, error) {
	log := c.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	completion, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemInstruction),
			openai.UserMessage(userMessage),
		},
		Temperature: openai.Float(config.ModelTemperature),
	})
	if err != nil {
		log.Error("OpenAI generation failed", "error", err.Error())
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	return completion.Choices[0].Message.Content, nil
}
