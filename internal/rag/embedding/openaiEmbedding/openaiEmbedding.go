package openaiEmbedding

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
	model     openai.EmbeddingModel
	dimension int64
	logger    *logger_i.Logger
}

func New(apiKey string) *Client {
	return &Client{
		api:       openai.NewClient(option.WithAPIKey(apiKey)),
		model:     openai.EmbeddingModel(config.OpenAIEmbeddingModel),
		dimension: int64(config.EmbeddingOutputDimensionality),
		logger:    logger_i.NewLogger("openai_embedding"),
	}
}

func (c *Client) Dimension() uint64 {
	return uint64(c.dimension)
}

func (c *Client) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	vectors, err := c.embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (c *Client) BatchEmbedding(ctx context.Context, texts []string) ([][]float32, error) {
	return c.embed(ctx, texts)
}

func (c *Client) embed(ctx context.Context, texts []string) ([][]float32, error) {
	log := c.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	res, err := c.api.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input:      openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
		Model:      c.model,
		Dimensions: openai.Int(c.dimension),
	})
	if err != nil {
		log.Error("Error getting Embeddings from OpenAI", "error", err.Error())
		return nil, err
	}
	if len(res.Data) != len(texts) {
		return nil, fmt.Errorf("openai returned %d embeddings for %d texts", len(res.Data), len(texts))
	}

	vectors := make([][]float32, len(res.Data))
	for i, d := range res.Data {
		vec := make([]float32, len(d.Embedding))
		for j, v := range d.Embedding {
			vec[j] = float32(v)
		}
		vectors[i] = vec
	}
	return vectors, nil
}
