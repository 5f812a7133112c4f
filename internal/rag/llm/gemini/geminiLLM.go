package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/physai/bookrag/internal/config"
	"github.com/physai/bookrag/pkg/logger_i"
)

type Client struct {
	genAi     *genai.Client
	modelName string
	logger    *logger_i.Logger
}

func New(ctx context.Context, apiKey string) (*Client, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}
	logger := logger_i.NewLogger("llm_gemini")
	logger.Info("Gemini client created", "model", config.GeminiModelName)
	return &Client{
		genAi:     c,
		modelName: config.GeminiModelName,
		logger:    logger,
	}, nil
}

func (c *Client) Complete(ctx context.Context, systemInstruction string, userMessage string) (string, error) {
	log := c.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	temperature := float32(config.ModelTemperature)
	contentConfig := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{
				{Text: systemInstruction},
			},
		},
		Temperature: &temperature,
	}

	result, err := c.genAi.Models.GenerateContent(
		ctx,
		c.modelName,
		genai.Text(userMessage),
		contentConfig,
	)
	if err != nil {
		log.Error("Gemini generation failed", "error", err.Error())
		return "", err
	}
	return result.Text(), nil
}
