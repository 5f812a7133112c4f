package googleEmbedding

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/physai/bookrag/internal/config"
	"github.com/physai/bookrag/pkg/logger_i"
)

type Client struct {
	genAi     *genai.Client
	model     string
	dimension int32
	logger    *logger_i.Logger
}

func New(ctx context.Context, apiKey string) (*Client, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("creating Google embedding client: %w", err)
	}
	logger := logger_i.NewLogger("google_embedding")
	logger.Debug("Google Embedding model name: " + config.GoogleEmbeddingModel)
	return &Client{
		genAi:     c,
		model:     config.GoogleEmbeddingModel,
		dimension: config.EmbeddingOutputDimensionality,
		logger:    logger,
	}, nil
}

func (c *Client) Dimension() uint64 {
	return uint64(c.dimension)
}

func (c *Client) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	log := c.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	result, err := c.genAi.Models.EmbedContent(ctx, c.model, genai.Text(query), &genai.EmbedContentConfig{
		OutputDimensionality: &c.dimension,
		TaskType:             "RETRIEVAL_QUERY",
	})
	if err != nil {
		log.Error("Error getting query embedding from Google", "error", err.Error())
		return nil, err
	}
	if len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("google returned no embedding for query")
	}
	return result.Embeddings[0].Values, nil
}

func (c *Client) BatchEmbedding(ctx context.Context, texts []string) ([][]float32, error) {
	log := c.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	res, err := c.doCall(ctx, getContent(texts))
	if err != nil && doRetry(err, log) {
		log.Debug("Retrying in 5 seconds")
		time.Sleep(5 * time.Second)
		res, err = c.doCall(ctx, getContent(texts))
	}
	if err != nil {
		log.Error("Error getting Embeddings from Google", "error", err.Error())
		return nil, err
	}
	if len(res.Embeddings) != len(texts) {
		return nil, fmt.Errorf("google returned %d embeddings for %d texts", len(res.Embeddings), len(texts))
	}

	embeddingResults := make([][]float32, 0, len(res.Embeddings))
	for _, r := range res.Embeddings {
		embeddingResults = append(embeddingResults, r.Values)
	}
	return embeddingResults, nil
}

func (c *Client) doCall(ctx context.Context, content []*genai.Content) (*genai.EmbedContentResponse, error) {
	return c.genAi.Models.EmbedContent(ctx, c.model, content, &genai.EmbedContentConfig{
		OutputDimensionality: &c.dimension,
		TaskType:             "RETRIEVAL_DOCUMENT",
	})
}
