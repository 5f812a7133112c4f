package retrieval

import (
	"context"
	"fmt"

	"github.com/physai/bookrag/internal/config"
	"github.com/physai/bookrag/internal/domain/ragmodel"
	"github.com/physai/bookrag/internal/rag/embedding"
	"github.com/physai/bookrag/internal/rag/vectorDB"
	"github.com/physai/bookrag/pkg/logger_i"
)

// Retriever embeds a query with the same model the index used and returns
// passages above the score threshold, best first. An empty result is a
// normal outcome, not an error.
type Retriever struct {
	embedder embedding.Embedder
	store    vectorDB.Store
	logger   *logger_i.Logger
}

func New(embedder embedding.Embedder, store vectorDB.Store) *Retriever {
	return &Retriever{
		embedder: embedder,
		store:    store,
		logger:   logger_i.NewLogger("Retriever :"),
	}
}

// Retrieve runs the full embed-then-search path. k <= 0 and
// threshold <= 0 fall back to the configured defaults.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int, scoreThreshold float32) ([]ragmodel.CandidatePassage, error) {
	vector, err := r.embedder.GetEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	return r.ByVector(ctx, vector, k, scoreThreshold)
}

// ByVector searches with an embedding the caller already holds, so the
// cache-check path does not pay for a second embedding call.
func (r *Retriever) ByVector(ctx context.Context, vector []float32, k int, scoreThreshold float32) ([]ragmodel.CandidatePassage, error) {
	if k <= 0 {
		k = config.TopKResults
	}
	if scoreThreshold <= 0 {
		scoreThreshold = config.SimilarityThreshold
	}

	passages, err := r.store.Search(ctx, vector, uint64(k), scoreThreshold)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	r.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY)).Debug("Retrieval done",
		"hits", len(passages), "k", k, "threshold", scoreThreshold)
	return passages, nil
}
