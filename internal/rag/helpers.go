package rag

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/physai/bookrag/internal/domain/ragmodel"
	"github.com/physai/bookrag/internal/metrics"
	"github.com/physai/bookrag/pkg/logger_i"
)

func wrapUnavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func (s *service) executeEmbeddingStep(ctx context.Context, question string) ([]float32, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("embedding", time.Since(start)) }()

	vector, err := s.embedder.GetEmbedding(ctx, question)
	if err != nil {
		return nil, wrapUnavailable(err)
	}
	return vector, nil
}

// executeCacheCheckStep is best-effort: a cache failure is a miss, never
// an error for the caller.
func (s *service) executeCacheCheckStep(ctx context.Context, vector []float32) (*ragmodel.Response, bool) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("cache_lookup", time.Since(start)) }()

	cached, found, err := s.vectorDB.GetCachedAnswer(ctx, vector)
	if err != nil || !found {
		return nil, false
	}
	return cached, true
}

func (s *service) executeSearchStep(ctx context.Context, vector []float32, k int, scoreThreshold float32) ([]ragmodel.CandidatePassage, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("vector_search", time.Since(start)) }()

	passages, err := s.retriever.ByVector(ctx, vector, k, scoreThreshold)
	if err != nil {
		return nil, wrapUnavailable(err)
	}
	return passages, nil
}

func (s *service) executeGlobalLLMStep(ctx context.Context, question string, passages []ragmodel.CandidatePassage, conversationId string) (*ragmodel.Response, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_generation", time.Since(start)) }()

	response, err := s.generator.AnswerGlobal(ctx, question, passages, conversationId)
	if err != nil {
		return nil, wrapUnavailable(err)
	}
	return response, nil
}

func (s *service) executeGroundedLLMStep(ctx context.Context, query GroundedQuery) (*ragmodel.Response, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_generation", time.Since(start)) }()

	response, err := s.generator.AnswerGrounded(ctx, query.Question, query.SelectedText, query.ConversationId)
	if err != nil {
		return nil, wrapUnavailable(err)
	}
	return response, nil
}

// saveToCache runs detached from the request context; the answer is
// already on its way to the caller.
func (s *service) saveToCache(vector []float32, response *ragmodel.Response, log *logger_i.Logger) {
	saveCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.vectorDB.SaveToCache(saveCtx, uuid.NewString(), vector, response); err != nil {
		log.Error("Failed to save to cache", "error", err)
	}
}
